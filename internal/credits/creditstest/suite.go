// Package creditstest holds the behavioural checks every credits.Ledger
// backend must pass.
package creditstest

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/briefly/internal/credits"
	"github.com/jonathan/briefly/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises a ledger produced by newLedger. Each subtest gets a fresh
// ledger and user ids unique to the run, so durable backends can share a
// database between runs.
func Run(t *testing.T, newLedger func(t *testing.T) credits.Ledger) {
	ctx := context.Background()
	id := func(name string) string { return name + "-" + uuid.NewString() }

	t.Run("absent account reads zero", func(t *testing.T) {
		l := newLedger(t)
		balance, err := l.Balance(ctx, id("nobody"))
		require.NoError(t, err)
		assert.Zero(t, balance)
	})

	t.Run("grant debit refund", func(t *testing.T) {
		l := newLedger(t)
		u1 := id("u1")

		balance, err := l.Grant(ctx, u1, 5, credits.ReasonSignup)
		require.NoError(t, err)
		assert.Equal(t, int64(5), balance)

		balance, err = l.CheckAndDebit(ctx, u1, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(4), balance)

		balance, err = l.Refund(ctx, u1, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(5), balance)

		balance, err = l.Balance(ctx, u1)
		require.NoError(t, err)
		assert.Equal(t, int64(5), balance)
	})

	t.Run("insufficient credit leaves balance unchanged", func(t *testing.T) {
		l := newLedger(t)
		broke := id("broke")

		_, err := l.CheckAndDebit(ctx, broke, 1)
		var insufficient *credits.InsufficientCreditError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, broke, insufficient.UserID)
		assert.Zero(t, insufficient.Balance)
		assert.Equal(t, int64(1), insufficient.Required)

		balance, err := l.Balance(ctx, broke)
		require.NoError(t, err)
		assert.Zero(t, balance)

		_, err = l.Grant(ctx, broke, 2, credits.ReasonManual)
		require.NoError(t, err)
		_, err = l.CheckAndDebit(ctx, broke, 3)
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, int64(2), insufficient.Balance)
	})

	t.Run("non-positive amounts rejected", func(t *testing.T) {
		l := newLedger(t)
		u2 := id("u2")
		for _, amount := range []int64{0, -1} {
			_, err := l.Grant(ctx, u2, amount, credits.ReasonManual)
			assert.ErrorIs(t, err, credits.ErrInvalidAmount)
			_, err = l.CheckAndDebit(ctx, u2, amount)
			assert.ErrorIs(t, err, credits.ErrInvalidAmount)
			_, err = l.Refund(ctx, u2, amount)
			assert.ErrorIs(t, err, credits.ErrInvalidAmount)
		}
		balance, err := l.Balance(ctx, u2)
		require.NoError(t, err)
		assert.Zero(t, balance)
	})

	t.Run("history newest first", func(t *testing.T) {
		l := newLedger(t)
		u3 := id("u3")
		_, err := l.Grant(ctx, u3, 5, credits.ReasonSignup)
		require.NoError(t, err)
		_, err = l.CheckAndDebit(ctx, u3, 1)
		require.NoError(t, err)
		_, err = l.Refund(ctx, u3, 1)
		require.NoError(t, err)

		entries, err := l.History(ctx, u3, 10)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, types.EntryRefund, entries[0].Kind)
		assert.Equal(t, int64(5), entries[0].BalanceAfter)
		assert.Equal(t, types.EntryDebit, entries[1].Kind)
		assert.Equal(t, int64(1), entries[1].Amount)
		assert.Equal(t, int64(4), entries[1].BalanceAfter)
		assert.Equal(t, types.EntryGrant, entries[2].Kind)
		assert.Equal(t, credits.ReasonSignup, entries[2].Reason)

		limited, err := l.History(ctx, u3, 2)
		require.NoError(t, err)
		assert.Len(t, limited, 2)

		empty, err := l.History(ctx, id("nobody"), 10)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("concurrent debits never overdraw", func(t *testing.T) {
		l := newLedger(t)
		racer := id("racer")
		_, err := l.Grant(ctx, racer, 5, credits.ReasonSignup)
		require.NoError(t, err)

		var succeeded atomic.Int64
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := l.CheckAndDebit(ctx, racer, 1); err == nil {
					succeeded.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(5), succeeded.Load())
		balance, err := l.Balance(ctx, racer)
		require.NoError(t, err)
		assert.Zero(t, balance)
	})

	t.Run("open account grants once", func(t *testing.T) {
		l := newLedger(t)
		fresh := id("fresh")

		balance, opened, err := l.OpenAccount(ctx, fresh, 5, credits.ReasonSignup)
		require.NoError(t, err)
		assert.True(t, opened)
		assert.Equal(t, int64(5), balance)

		_, err = l.CheckAndDebit(ctx, fresh, 5)
		require.NoError(t, err)

		balance, opened, err = l.OpenAccount(ctx, fresh, 5, credits.ReasonSignup)
		require.NoError(t, err)
		assert.False(t, opened)
		assert.Zero(t, balance)

		entries, err := l.History(ctx, fresh, 10)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("open account skips granted users", func(t *testing.T) {
		l := newLedger(t)
		existing := id("existing")
		_, err := l.Grant(ctx, existing, 3, credits.ReasonManual)
		require.NoError(t, err)

		balance, opened, err := l.OpenAccount(ctx, existing, 5, credits.ReasonSignup)
		require.NoError(t, err)
		assert.False(t, opened)
		assert.Equal(t, int64(3), balance)

		_, _, err = l.OpenAccount(ctx, id("zero"), 0, credits.ReasonSignup)
		assert.ErrorIs(t, err, credits.ErrInvalidAmount)
	})

	t.Run("concurrent opens grant once", func(t *testing.T) {
		l := newLedger(t)
		racer := id("opener")

		var openedCount atomic.Int64
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, opened, err := l.OpenAccount(ctx, racer, 5, credits.ReasonSignup); err == nil && opened {
					openedCount.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(1), openedCount.Load())
		balance, err := l.Balance(ctx, racer)
		require.NoError(t, err)
		assert.Equal(t, int64(5), balance)
	})
}
