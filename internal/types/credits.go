//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// EntryKind is the reason class of a ledger mutation.
type EntryKind string

const (
	EntryGrant  EntryKind = "grant"
	EntryDebit  EntryKind = "debit"
	EntryRefund EntryKind = "refund"
)

// LedgerEntry records a single credit mutation and the balance it produced.
type LedgerEntry struct {
	UserID       string    `json:"user_id"`
	Kind         EntryKind `json:"kind"`
	Amount       int64     `json:"amount"`
	Reason       string    `json:"reason,omitempty"`
	BalanceAfter int64     `json:"balance_after"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreditsResponse reports a user's current balance.
type CreditsResponse struct {
	Credits int64 `json:"credits"`
}

// CreditHistoryResponse lists recent ledger entries, newest first.
type CreditHistoryResponse struct {
	Entries []LedgerEntry `json:"entries"`
	Count   int           `json:"count"`
}
