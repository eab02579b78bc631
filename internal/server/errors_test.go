package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/briefly/internal/brief"
	"github.com/jonathan/briefly/internal/credits"
	"github.com/jonathan/briefly/internal/gateway"
	"github.com/jonathan/briefly/internal/rendering"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "email already registered: test@example.com", (&ErrEmailAlreadyExists{Email: "test@example.com"}).Error())
	assert.Equal(t, "invalid email or password", (&ErrInvalidCredentials{}).Error())
	assert.Equal(t, "user not found: abc", (&ErrUserNotFound{UserID: "abc"}).Error())
	assert.Equal(t, "current password is incorrect", (&ErrPasswordMismatch{}).Error())
	assert.Equal(t, "validation error: email - invalid format", (&ErrValidation{Field: "email", Message: "invalid format"}).Error())
	assert.Equal(t, "brief not found: b1", (&ErrBriefNotFound{ID: "b1"}).Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"email exists", &ErrEmailAlreadyExists{Email: "a@b.c"}, http.StatusConflict},
		{"invalid credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"password mismatch", &ErrPasswordMismatch{}, http.StatusUnauthorized},
		{"user not found", &ErrUserNotFound{UserID: "u"}, http.StatusNotFound},
		{"brief not found", &ErrBriefNotFound{ID: "b"}, http.StatusNotFound},
		{"validation", &ErrValidation{Field: "f", Message: "m"}, http.StatusBadRequest},
		{"unauthorized", &gateway.UnauthorizedError{Message: "missing credentials"}, http.StatusUnauthorized},
		{"insufficient credit", &credits.InsufficientCreditError{UserID: "u", Required: 1}, http.StatusPaymentRequired},
		{"invalid intake", &brief.InvalidIntakeError{Field: "client_name", Message: "is required"}, http.StatusBadRequest},
		{"composition", &gateway.CompositionError{Message: "boom"}, http.StatusInternalServerError},
		{"store", &gateway.StoreError{Message: "append failed"}, http.StatusServiceUnavailable},
		{"export format", &rendering.UnsupportedFormatError{Format: "pdf"}, http.StatusBadRequest},
		{"wrapped", fmt.Errorf("handler: %w", &credits.InsufficientCreditError{}), http.StatusPaymentRequired},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "insufficient_credits", errorCode(http.StatusPaymentRequired))
	assert.Equal(t, "unavailable", errorCode(http.StatusServiceUnavailable))
	assert.Equal(t, "internal_error", errorCode(http.StatusTeapot))
}
