package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/briefly/internal/config"
	"github.com/jonathan/briefly/internal/credits"
	"github.com/jonathan/briefly/internal/store"
	"github.com/stretchr/testify/assert"
)

// setupTestAuthHandler creates an AuthHandler backed by in-memory stores.
func setupTestAuthHandler(t *testing.T) *AuthHandler {
	userSvc := NewUserService(store.NewMemoryUsers(), credits.NewMemoryLedger(),
		&config.PasswordConfig{BcryptCost: config.MinBcryptCost}, CreditPolicy{StartingCredits: 5})
	return NewAuthHandler(userSvc, setupTestJWTService(t, 24))
}

func TestAuthHandler_InvalidJSON(t *testing.T) {
	handler := setupTestAuthHandler(t)

	for name, fn := range map[string]http.HandlerFunc{"register": handler.Register, "login": handler.Login} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/"+name, bytes.NewReader([]byte("invalid json")))
			w := httptest.NewRecorder()
			fn(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid request body")
		})
	}
}

func TestAuthHandler_Register_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		reqBody map[string]string
	}{
		{"missing name", map[string]string{"email": "test@example.com", "password": "password123"}},
		{"short name", map[string]string{"name": "A", "email": "test@example.com", "password": "password123"}},
		{"invalid email", map[string]string{"name": "Test User", "email": "invalid-email", "password": "password123"}},
		{"missing email", map[string]string{"name": "Test User", "password": "password123"}},
		{"password too short", map[string]string{"name": "Test User", "email": "test@example.com", "password": "short"}},
		{"missing password", map[string]string{"name": "Test User", "email": "test@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := setupTestAuthHandler(t)

			body, _ := json.Marshal(tt.reqBody)
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
			w := httptest.NewRecorder()

			handler.Register(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "validation error")
		})
	}
}

func TestAuthHandler_Login_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		reqBody map[string]string
	}{
		{"missing email", map[string]string{"password": "password123"}},
		{"invalid email", map[string]string{"email": "nope", "password": "password123"}},
		{"missing password", map[string]string{"email": "test@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := setupTestAuthHandler(t)

			body, _ := json.Marshal(tt.reqBody)
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
			w := httptest.NewRecorder()

			handler.Login(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "validation error")
		})
	}
}

func TestAuthHandler_UpdatePassword_NoUser(t *testing.T) {
	handler := setupTestAuthHandler(t)
	req := httptest.NewRequest(http.MethodPut, "/api/auth/password", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	handler.UpdatePassword(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
