package server

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/briefly/internal/config"
	"github.com/jonathan/briefly/internal/credits"
	"github.com/jonathan/briefly/internal/store"
	"github.com/jonathan/briefly/internal/types"
)

// CreditPolicy sets the grants made at registration.
type CreditPolicy struct {
	StartingCredits int64
	ReferralBonus   int64
}

// UserService provides business logic for user authentication operations
type UserService struct {
	users          store.UserRepository
	ledger         credits.Ledger
	passwordConfig *config.PasswordConfig
	policy         CreditPolicy
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(users store.UserRepository, ledger credits.Ledger, passwordConfig *config.PasswordConfig, policy CreditPolicy) *UserService {
	return &UserService{
		users:          users,
		ledger:         ledger,
		passwordConfig: passwordConfig,
		policy:         policy,
	}
}

// normalizeEmail trims and lowercases an email address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user with password authentication and grants the
// signup credits. A non-blank referral code earns the referral bonus; the code
// itself is not checked. Returns the user and their resulting balance.
func (s *UserService) Register(ctx context.Context, req *types.CreateUserRequest) (*types.User, int64, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.users.CheckEmailExists(ctx, email)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, 0, &ErrEmailAlreadyExists{Email: email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.users.CreateUser(ctx, strings.TrimSpace(req.Name), email, strings.TrimSpace(req.Phone))
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, 0, &ErrEmailAlreadyExists{Email: email}
		}
		return nil, 0, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return nil, 0, s.abandonUser(ctx, userID, fmt.Errorf("failed to set password: %w", err))
	}

	balance, err := s.grantSignupCredits(ctx, userID.String(), req.ReferralCode)
	if err != nil {
		return nil, 0, s.abandonUser(ctx, userID, err)
	}

	record, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve created user: %w", err)
	}
	if record == nil {
		return nil, 0, fmt.Errorf("created user not found: %s", userID)
	}

	return record.Public(), balance, nil
}

// abandonUser deletes a partially registered user so the email can register
// again, and returns cause with any delete failure joined to it.
func (s *UserService) abandonUser(ctx context.Context, userID uuid.UUID, cause error) error {
	if err := s.users.DeleteUser(context.WithoutCancel(ctx), userID); err != nil {
		return errors.Join(cause, fmt.Errorf("failed to remove partially registered user: %w", err))
	}
	return cause
}

func (s *UserService) grantSignupCredits(ctx context.Context, userID, referralCode string) (int64, error) {
	var balance int64
	if s.policy.StartingCredits > 0 {
		b, err := s.ledger.Grant(ctx, userID, s.policy.StartingCredits, credits.ReasonSignup)
		if err != nil {
			return 0, fmt.Errorf("failed to grant signup credits: %w", err)
		}
		balance = b
	}
	if strings.TrimSpace(referralCode) != "" && s.policy.ReferralBonus > 0 {
		b, err := s.ledger.Grant(ctx, userID, s.policy.ReferralBonus, credits.ReasonReferral)
		if err != nil {
			return 0, fmt.Errorf("failed to grant referral bonus: %w", err)
		}
		balance = b
	}
	return balance, nil
}

// Login authenticates a user and returns user data with their current balance
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, int64, error) {
	record, err := s.users.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Same error whether the user is unknown or the password is wrong
	if record == nil || !record.PasswordSet {
		return nil, 0, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, record.PasswordHash) {
		return nil, 0, &ErrInvalidCredentials{}
	}

	balance, err := s.ledger.Balance(ctx, record.ID.String())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read balance: %w", err)
	}

	return record.Public(), balance, nil
}

// UpdatePassword updates a user's password
func (s *UserService) UpdatePassword(ctx context.Context, userID string, currentPassword, newPassword string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return &ErrUserNotFound{UserID: userID}
	}

	record, err := s.users.GetUser(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if record == nil {
		return &ErrUserNotFound{UserID: userID}
	}

	if !s.passwordConfig.VerifyPassword(currentPassword, record.PasswordHash) {
		return &ErrPasswordMismatch{}
	}

	newPasswordHash, err := s.passwordConfig.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, id, newPasswordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
