package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/briefly/internal/credits"
	"github.com/jonathan/briefly/internal/types"
	"github.com/redis/go-redis/v9"
)

// DefaultHistoryCap is how many ledger entries are retained per user.
const DefaultHistoryCap = 500

// History elements are stored as "<balance_after>|<entry json>" so the
// scripts can stamp the balance they computed.
const historySep = "|"

// debitScript subtracts ARGV[1] only if the balance covers it.
// Returns {1, new_balance} on success and {0, balance} otherwise.
var debitScript = redis.NewScript(`
local balance = tonumber(redis.call('GET', KEYS[1]) or '0')
local amount = tonumber(ARGV[1])
if balance < amount then
  return {0, balance}
end
local after = redis.call('DECRBY', KEYS[1], amount)
redis.call('LPUSH', KEYS[2], after .. '|' .. ARGV[2])
redis.call('LTRIM', KEYS[2], 0, tonumber(ARGV[3]) - 1)
return {1, after}
`)

// creditScript adds ARGV[1] and returns the new balance.
var creditScript = redis.NewScript(`
local after = redis.call('INCRBY', KEYS[1], ARGV[1])
redis.call('LPUSH', KEYS[2], after .. '|' .. ARGV[2])
redis.call('LTRIM', KEYS[2], 0, tonumber(ARGV[3]) - 1)
return after
`)

// openScript credits ARGV[1] only when the balance key does not exist yet.
// Returns {1, new_balance} when it opened the account and {0, balance} otherwise.
var openScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
  return {0, tonumber(redis.call('GET', KEYS[1]))}
end
local after = redis.call('INCRBY', KEYS[1], ARGV[1])
redis.call('LPUSH', KEYS[2], after .. '|' .. ARGV[2])
redis.call('LTRIM', KEYS[2], 0, tonumber(ARGV[3]) - 1)
return {1, after}
`)

// Ledger is a credits.Ledger whose mutations run as Lua scripts, so each
// check-and-debit is atomic on the Redis server.
type Ledger struct {
	client     redis.UniversalClient
	historyCap int
	now        func() time.Time
}

// NewLedger creates a Redis ledger.
func NewLedger(client redis.UniversalClient) *Ledger {
	return &Ledger{
		client:     client,
		historyCap: DefaultHistoryCap,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Keys share a hash tag so both land in the same cluster slot.
func balanceKey(userID string) string { return "credits:{" + userID + "}:balance" }
func historyKey(userID string) string { return "credits:{" + userID + "}:history" }

// Balance implements credits.Ledger.
func (l *Ledger) Balance(ctx context.Context, userID string) (int64, error) {
	balance, err := l.client.Get(ctx, balanceKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
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

	entry, err := l.encodeEntry(userID, types.EntryGrant, amount, reason)
	if err != nil {
		return 0, false, err
	}

	res, err := openScript.Run(ctx, l.client,
		[]string{balanceKey(userID), historyKey(userID)},
		amount, entry, l.historyCap,
	).Int64Slice()
	if err != nil {
		return 0, false, &credits.LedgerError{Op: "open", Cause: err}
	}
	if len(res) != 2 {
		return 0, false, &credits.LedgerError{Op: "open", Cause: fmt.Errorf("unexpected script reply %v", res)}
	}
	return res[1], res[0] == 1, nil
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

	entry, err := l.encodeEntry(userID, types.EntryDebit, amount, credits.ReasonGeneration)
	if err != nil {
		return 0, err
	}

	res, err := debitScript.Run(ctx, l.client,
		[]string{balanceKey(userID), historyKey(userID)},
		amount, entry, l.historyCap,
	).Int64Slice()
	if err != nil {
		return 0, &credits.LedgerError{Op: "debit", Cause: err}
	}
	if len(res) != 2 {
		return 0, &credits.LedgerError{Op: "debit", Cause: fmt.Errorf("unexpected script reply %v", res)}
	}

	if res[0] == 0 {
		return res[1], &credits.InsufficientCreditError{UserID: userID, Balance: res[1], Required: amount}
	}
	return res[1], nil
}

// History implements credits.Ledger.
func (l *Ledger) History(ctx context.Context, userID string, limit int) ([]types.LedgerEntry, error) {
	limit = credits.NormalizeLimit(limit)

	raw, err := l.client.LRange(ctx, historyKey(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, &credits.LedgerError{Op: "history", Cause: err}
	}

	entries := make([]types.LedgerEntry, 0, len(raw))
	for _, item := range raw {
		entry, err := decodeEntry(item)
		if err != nil {
			return nil, &credits.LedgerError{Op: "history", Cause: err}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (l *Ledger) credit(ctx context.Context, op, userID string, kind types.EntryKind, amount int64, reason string) (int64, error) {
	if err := credits.ValidateAmount(amount); err != nil {
		return 0, err
	}

	entry, err := l.encodeEntry(userID, kind, amount, reason)
	if err != nil {
		return 0, err
	}

	balance, err := creditScript.Run(ctx, l.client,
		[]string{balanceKey(userID), historyKey(userID)},
		amount, entry, l.historyCap,
	).Int64()
	if err != nil {
		return 0, &credits.LedgerError{Op: op, Cause: err}
	}
	return balance, nil
}

func (l *Ledger) encodeEntry(userID string, kind types.EntryKind, amount int64, reason string) (string, error) {
	data, err := json.Marshal(types.LedgerEntry{
		UserID:    userID,
		Kind:      kind,
		Amount:    amount,
		Reason:    reason,
		CreatedAt: l.now(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal ledger entry: %w", err)
	}
	return string(data), nil
}

func decodeEntry(item string) (types.LedgerEntry, error) {
	var entry types.LedgerEntry

	balance, payload, ok := strings.Cut(item, historySep)
	if !ok {
		return entry, fmt.Errorf("malformed history item %q", item)
	}
	after, err := strconv.ParseInt(balance, 10, 64)
	if err != nil {
		return entry, fmt.Errorf("malformed history balance %q: %w", balance, err)
	}
	if err := json.Unmarshal([]byte(payload), &entry); err != nil {
		return entry, fmt.Errorf("failed to unmarshal ledger entry: %w", err)
	}
	entry.BalanceAfter = after
	return entry, nil
}

var _ credits.Ledger = (*Ledger)(nil)
