package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/briefly/internal/types"
)

// MemoryUsers is an in-process UserRepository. Emails are matched
// case-insensitively.
type MemoryUsers struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]types.UserRecord
	byEmail map[string]uuid.UUID
}

// NewMemoryUsers creates an empty in-memory user repository.
func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{
		byID:    make(map[uuid.UUID]types.UserRecord),
		byEmail: make(map[string]uuid.UUID),
	}
}

// CreateUser implements UserRepository.
func (s *MemoryUsers) CreateUser(_ context.Context, name, email, phone string) (uuid.UUID, error) {
	key := strings.ToLower(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[key]; exists {
		return uuid.Nil, ErrDuplicateEmail
	}

	now := time.Now().UTC()
	rec := types.UserRecord{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Plan:      types.PlanFree,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.byID[rec.ID] = rec
	s.byEmail[key] = rec.ID
	return rec.ID, nil
}

// UpdatePassword implements UserRepository.
func (s *MemoryUsers) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[userID]
	if !ok {
		return &NotFoundError{Kind: "user", ID: userID.String()}
	}
	rec.PasswordHash = passwordHash
	rec.PasswordSet = true
	rec.UpdatedAt = time.Now().UTC()
	s.byID[userID] = rec
	return nil
}

// GetUser implements UserRepository.
func (s *MemoryUsers) GetUser(_ context.Context, userID uuid.UUID) (*types.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[userID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// GetUserByEmail implements UserRepository.
func (s *MemoryUsers) GetUserByEmail(_ context.Context, email string) (*types.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	rec := s.byID[id]
	return &rec, nil
}

// CheckEmailExists implements UserRepository.
func (s *MemoryUsers) CheckEmailExists(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byEmail[strings.ToLower(email)]
	return ok, nil
}

// DeleteUser implements UserRepository.
func (s *MemoryUsers) DeleteUser(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.byID[userID]; ok {
		delete(s.byEmail, strings.ToLower(rec.Email))
		delete(s.byID, userID)
	}
	return nil
}

var _ UserRepository = (*MemoryUsers)(nil)
