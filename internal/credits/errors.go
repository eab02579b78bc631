package credits

import (
	"errors"
	"fmt"
)

// ErrInvalidAmount is returned for zero or negative credit amounts.
var ErrInvalidAmount = errors.New("credit amount must be positive")

// InsufficientCreditError is returned when a balance cannot cover a debit
type InsufficientCreditError struct {
	UserID   string
	Balance  int64
	Required int64
}

func (e *InsufficientCreditError) Error() string {
	return fmt.Sprintf("insufficient credits for user %s: have %d, need %d", e.UserID, e.Balance, e.Required)
}

// LedgerError wraps a backend failure
type LedgerError struct {
	Op    string
	Cause error
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger %s failed: %v", e.Op, e.Cause)
}

func (e *LedgerError) Unwrap() error {
	return e.Cause
}
