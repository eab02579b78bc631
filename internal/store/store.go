// Package store defines the persistence contracts for briefs and users and
// provides in-memory implementations of both.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jonathan/briefly/internal/types"
)

// DefaultListLimit bounds ListByUser when the caller passes a non-positive limit.
const DefaultListLimit = 50

// ErrDuplicateEmail is returned by CreateUser when the email is already registered.
var ErrDuplicateEmail = errors.New("email already registered")

// BriefStore persists generated briefs.
type BriefStore interface {
	// Append stores a brief. A brief id is written at most once.
	Append(ctx context.Context, b *types.Brief) error
	// ListByUser returns up to limit briefs owned by userID, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]*types.Brief, error)
	// Get returns the brief with the given id, or nil if none exists.
	Get(ctx context.Context, id string) (*types.Brief, error)
}

// UserRepository persists registered users. Lookups return nil, nil when no
// user matches.
type UserRepository interface {
	CreateUser(ctx context.Context, name, email, phone string) (uuid.UUID, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	GetUser(ctx context.Context, userID uuid.UUID) (*types.UserRecord, error)
	GetUserByEmail(ctx context.Context, email string) (*types.UserRecord, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	// DeleteUser removes a user. Deleting an unknown id is not an error.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// NormalizeLimit maps a non-positive list limit onto DefaultListLimit.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
