// Package server provides the HTTP REST API for the briefly service.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/briefly/internal/brief"
	"github.com/jonathan/briefly/internal/credits"
	"github.com/jonathan/briefly/internal/gateway"
	"github.com/jonathan/briefly/internal/rendering"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID string
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrBriefNotFound indicates the brief does not exist or belongs to someone else
type ErrBriefNotFound struct {
	ID string
}

func (e *ErrBriefNotFound) Error() string {
	return fmt.Sprintf("brief not found: %s", e.ID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		emailExists  *ErrEmailAlreadyExists
		invalidCreds *ErrInvalidCredentials
		mismatch     *ErrPasswordMismatch
		userNotFound *ErrUserNotFound
		briefMissing *ErrBriefNotFound
		validation   *ErrValidation
		unauthorized *gateway.UnauthorizedError
		insufficient *credits.InsufficientCreditError
		invalid      *brief.InvalidIntakeError
		composition  *gateway.CompositionError
		storeErr     *gateway.StoreError
		badFormat    *rendering.UnsupportedFormatError
	)

	switch {
	case errors.As(err, &emailExists):
		return http.StatusConflict
	case errors.As(err, &invalidCreds), errors.As(err, &mismatch), errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &userNotFound), errors.As(err, &briefMissing):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &invalid), errors.As(err, &badFormat):
		return http.StatusBadRequest
	case errors.As(err, &insufficient):
		return http.StatusPaymentRequired
	case errors.As(err, &storeErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &composition):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// errorCode is the machine-readable error string sent to clients.
func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusPaymentRequired:
		return "insufficient_credits"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusServiceUnavailable:
		return "unavailable"
	default:
		return "internal_error"
	}
}
