// Package credits tracks per-user generation credits. Every backend must make
// CheckAndDebit linearizable per user so concurrent generations can never
// drive a balance below zero.
package credits

import (
	"context"

	"github.com/jonathan/briefly/internal/types"
)

// Reasons recorded on ledger entries written by the service itself.
const (
	ReasonSignup     = "signup"
	ReasonReferral   = "referral bonus"
	ReasonGeneration = "brief generation"
	ReasonRollback   = "generation rollback"
	ReasonManual     = "manual grant"
)

// DefaultHistoryLimit bounds History when the caller passes a non-positive limit.
const DefaultHistoryLimit = 50

// Ledger is the authoritative store of credit balances. Accounts that were
// never written read as a zero balance.
type Ledger interface {
	// Balance returns the current balance.
	Balance(ctx context.Context, userID string) (int64, error)
	// Grant adds amount and returns the new balance.
	Grant(ctx context.Context, userID string, amount int64, reason string) (int64, error)
	// OpenAccount grants amount only if the account has never been credited.
	// It reports whether this call opened the account; for an existing
	// account it returns the current balance and false.
	OpenAccount(ctx context.Context, userID string, amount int64, reason string) (int64, bool, error)
	// CheckAndDebit atomically subtracts amount if the balance covers it and
	// returns the new balance. Otherwise it returns *InsufficientCreditError
	// and leaves the balance untouched.
	CheckAndDebit(ctx context.Context, userID string, amount int64) (int64, error)
	// Refund adds back a previously debited amount and returns the new balance.
	Refund(ctx context.Context, userID string, amount int64) (int64, error)
	// History returns up to limit entries, newest first.
	History(ctx context.Context, userID string, limit int) ([]types.LedgerEntry, error)
}

// ValidateAmount rejects non-positive mutation amounts.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// NormalizeLimit maps a non-positive history limit onto DefaultHistoryLimit.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	return limit
}
