package credits

import (
	"context"
	"sync"
	"time"

	"github.com/jonathan/briefly/internal/types"
)

// MemoryLedger is an in-process Ledger guarded by a single mutex.
type MemoryLedger struct {
	mu       sync.Mutex
	balances map[string]int64
	entries  map[string][]types.LedgerEntry
	now      func() time.Time
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		balances: make(map[string]int64),
		entries:  make(map[string][]types.LedgerEntry),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Balance implements Ledger.
func (l *MemoryLedger) Balance(_ context.Context, userID string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[userID], nil
}

// Grant implements Ledger.
func (l *MemoryLedger) Grant(_ context.Context, userID string, amount int64, reason string) (int64, error) {
	if err := ValidateAmount(amount); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.apply(userID, types.EntryGrant, amount, reason), nil
}

// OpenAccount implements Ledger.
func (l *MemoryLedger) OpenAccount(_ context.Context, userID string, amount int64, reason string) (int64, bool, error) {
	if err := ValidateAmount(amount); err != nil {
		return 0, false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.entries[userID]; ok {
		return l.balances[userID], false, nil
	}
	return l.apply(userID, types.EntryGrant, amount, reason), true, nil
}

// CheckAndDebit implements Ledger.
func (l *MemoryLedger) CheckAndDebit(_ context.Context, userID string, amount int64) (int64, error) {
	if err := ValidateAmount(amount); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	balance := l.balances[userID]
	if balance < amount {
		return balance, &InsufficientCreditError{UserID: userID, Balance: balance, Required: amount}
	}
	return l.apply(userID, types.EntryDebit, -amount, ReasonGeneration), nil
}

// Refund implements Ledger.
func (l *MemoryLedger) Refund(_ context.Context, userID string, amount int64) (int64, error) {
	if err := ValidateAmount(amount); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.apply(userID, types.EntryRefund, amount, ReasonRollback), nil
}

// History implements Ledger.
func (l *MemoryLedger) History(_ context.Context, userID string, limit int) ([]types.LedgerEntry, error) {
	limit = NormalizeLimit(limit)

	l.mu.Lock()
	defer l.mu.Unlock()

	all := l.entries[userID]
	out := make([]types.LedgerEntry, 0, min(limit, len(all)))
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

// apply mutates the balance by delta and records an entry. Caller holds mu.
func (l *MemoryLedger) apply(userID string, kind types.EntryKind, delta int64, reason string) int64 {
	balance := l.balances[userID] + delta
	l.balances[userID] = balance

	amount := delta
	if amount < 0 {
		amount = -amount
	}
	l.entries[userID] = append(l.entries[userID], types.LedgerEntry{
		UserID:       userID,
		Kind:         kind,
		Amount:       amount,
		Reason:       reason,
		BalanceAfter: balance,
		CreatedAt:    l.now(),
	})
	return balance
}

var _ Ledger = (*MemoryLedger)(nil)
