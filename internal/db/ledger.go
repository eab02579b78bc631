package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/briefly/internal/credits"
	"github.com/jonathan/briefly/internal/types"
)

// Ledger is a credits.Ledger stored in credit_accounts. Debits are a single
// conditional UPDATE, so concurrent requests serialize on the account row.
type Ledger struct {
	db *DB
}

// NewLedger returns a ledger sharing db's pool.
func NewLedger(db *DB) *Ledger {
	return &Ledger{db: db}
}

// Balance implements credits.Ledger.
func (l *Ledger) Balance(ctx context.Context, userID string) (int64, error) {
	balance, err := currentBalance(ctx, l.db.pool, userID)
	if err != nil {
		return 0, &credits.LedgerError{Op: "balance", Cause: err}
	}
	return balance, nil
}

// Grant implements credits.Ledger.
func (l *Ledger) Grant(ctx context.Context, userID string, amount int64, reason string) (int64, error) {
	return l.credit(ctx, "grant", userID, types.EntryGrant, amount, reason)
}

// OpenAccount implements credits.Ledger.
func (l *Ledger) OpenAccount(ctx context.Context, userID string, amount int64, reason string) (int64, bool, error) {
	if err := credits.ValidateAmount(amount); err != nil {
		return 0, false, err
	}

	var balance int64
	var opened bool
	err := pgx.BeginFunc(ctx, l.db.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO credit_accounts (user_id, balance) VALUES ($1, $2)
			 ON CONFLICT (user_id) DO NOTHING
			 RETURNING balance`,
			userID, amount,
		).Scan(&balance)
		if errors.Is(err, pgx.ErrNoRows) {
			current, err := currentBalance(ctx, tx, userID)
			if err != nil {
				return err
			}
			balance = current
			return nil
		}
		if err != nil {
			return err
		}
		opened = true
		return recordEntry(ctx, tx, userID, types.EntryGrant, amount, reason, balance)
	})
	if err != nil {
		return 0, false, &credits.LedgerError{Op: "open", Cause: err}
	}
	return balance, opened, nil
}

// Refund implements credits.Ledger.
func (l *Ledger) Refund(ctx context.Context, userID string, amount int64) (int64, error) {
	return l.credit(ctx, "refund", userID, types.EntryRefund, amount, credits.ReasonRollback)
}

// CheckAndDebit implements credits.Ledger.
func (l *Ledger) CheckAndDebit(ctx context.Context, userID string, amount int64) (int64, error) {
	if err := credits.ValidateAmount(amount); err != nil {
		return 0, err
	}

	var balance int64
	var insufficient *credits.InsufficientCreditError
	err := pgx.BeginFunc(ctx, l.db.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`UPDATE credit_accounts SET balance = balance - $2, updated_at = NOW()
			 WHERE user_id = $1 AND balance >= $2
			 RETURNING balance`,
			userID, amount,
		).Scan(&balance)
		if errors.Is(err, pgx.ErrNoRows) {
			current, err := currentBalance(ctx, tx, userID)
			if err != nil {
				return err
			}
			balance = current
			insufficient = &credits.InsufficientCreditError{UserID: userID, Balance: current, Required: amount}
			return nil
		}
		if err != nil {
			return err
		}
		return recordEntry(ctx, tx, userID, types.EntryDebit, amount, credits.ReasonGeneration, balance)
	})
	if err != nil {
		return 0, &credits.LedgerError{Op: "debit", Cause: err}
	}
	if insufficient != nil {
		return balance, insufficient
	}
	return balance, nil
}

// History implements credits.Ledger.
func (l *Ledger) History(ctx context.Context, userID string, limit int) ([]types.LedgerEntry, error) {
	rows, err := l.db.pool.Query(ctx,
		`SELECT user_id, kind, amount, reason, balance_after, created_at
		 FROM credit_transactions WHERE user_id = $1
		 ORDER BY id DESC LIMIT $2`,
		userID, credits.NormalizeLimit(limit),
	)
	if err != nil {
		return nil, &credits.LedgerError{Op: "history", Cause: err}
	}
	defer rows.Close()

	entries := []types.LedgerEntry{}
	for rows.Next() {
		var e types.LedgerEntry
		if err := rows.Scan(&e.UserID, &e.Kind, &e.Amount, &e.Reason, &e.BalanceAfter, &e.CreatedAt); err != nil {
			return nil, &credits.LedgerError{Op: "history", Cause: fmt.Errorf("failed to scan entry: %w", err)}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &credits.LedgerError{Op: "history", Cause: err}
	}
	return entries, nil
}

func (l *Ledger) credit(ctx context.Context, op, userID string, kind types.EntryKind, amount int64, reason string) (int64, error) {
	if err := credits.ValidateAmount(amount); err != nil {
		return 0, err
	}

	var balance int64
	err := pgx.BeginFunc(ctx, l.db.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO credit_accounts (user_id, balance) VALUES ($1, $2)
			 ON CONFLICT (user_id) DO UPDATE
			 SET balance = credit_accounts.balance + EXCLUDED.balance, updated_at = NOW()
			 RETURNING balance`,
			userID, amount,
		).Scan(&balance)
		if err != nil {
			return err
		}
		return recordEntry(ctx, tx, userID, kind, amount, reason, balance)
	})
	if err != nil {
		return 0, &credits.LedgerError{Op: op, Cause: err}
	}
	return balance, nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func currentBalance(ctx context.Context, q querier, userID string) (int64, error) {
	var balance int64
	err := q.QueryRow(ctx, `SELECT balance FROM credit_accounts WHERE user_id = $1`, userID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read balance: %w", err)
	}
	return balance, nil
}

func recordEntry(ctx context.Context, tx pgx.Tx, userID string, kind types.EntryKind, amount int64, reason string, balanceAfter int64) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO credit_transactions (user_id, kind, amount, reason, balance_after)
		 VALUES ($1, $2, $3, $4, $5)`,
		userID, string(kind), amount, reason, balanceAfter,
	)
	if err != nil {
		return fmt.Errorf("failed to record %s entry: %w", kind, err)
	}
	return nil
}

var _ credits.Ledger = (*Ledger)(nil)
