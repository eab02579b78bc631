// Package identity resolves third-party ID tokens to briefly user ids.
package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// TokenVerifier verifies a Firebase ID token. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// Firebase resolves Firebase ID tokens to the token's UID.
type Firebase struct {
	verifier TokenVerifier
}

// NewFirebase wraps an existing verifier.
func NewFirebase(verifier TokenVerifier) *Firebase {
	return &Firebase{verifier: verifier}
}

// InitializeFirebase initializes the Firebase Admin SDK from a service account
// file and returns an identity backed by its Auth client.
func InitializeFirebase(ctx context.Context, credentialsPath string) (*Firebase, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	return NewFirebase(client), nil
}

// ResolveUserID verifies the ID token and returns its UID.
func (f *Firebase) ResolveUserID(ctx context.Context, credentials string) (string, error) {
	token, err := f.verifier.VerifyIDToken(ctx, credentials)
	if err != nil {
		return "", fmt.Errorf("failed to verify Firebase ID token: %w", err)
	}
	if token == nil || token.UID == "" {
		return "", fmt.Errorf("firebase token carries no uid")
	}
	return token.UID, nil
}
