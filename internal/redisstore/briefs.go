package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/briefly/internal/store"
	"github.com/jonathan/briefly/internal/types"
	"github.com/redis/go-redis/v9"
)

const (
	briefKeyPrefix   = "brief:"       // Brief JSON: brief:{id}
	userBriefsPrefix = "briefs:user:" // Sorted set of brief ids scored by creation time
)

// BriefStore is a store.BriefStore backed by Redis.
type BriefStore struct {
	client redis.UniversalClient
}

// NewBriefStore creates a Redis brief store.
func NewBriefStore(client redis.UniversalClient) *BriefStore {
	return &BriefStore{client: client}
}

func briefKey(id string) string          { return briefKeyPrefix + id }
func userBriefsKey(userID string) string { return userBriefsPrefix + userID }

// Append implements store.BriefStore.
func (s *BriefStore) Append(ctx context.Context, b *types.Brief) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal brief: %w", err)
	}

	created, err := s.client.SetNX(ctx, briefKey(b.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to store brief: %w", err)
	}
	if !created {
		return fmt.Errorf("brief %s already stored", b.ID)
	}

	err = s.client.ZAdd(ctx, userBriefsKey(b.UserID), redis.Z{
		Score:  float64(b.CreatedAt.UnixMilli()),
		Member: b.ID,
	}).Err()
	if err != nil {
		s.client.Del(ctx, briefKey(b.ID))
		return fmt.Errorf("failed to index brief: %w", err)
	}
	return nil
}

// ListByUser implements store.BriefStore.
func (s *BriefStore) ListByUser(ctx context.Context, userID string, limit int) ([]*types.Brief, error) {
	limit = store.NormalizeLimit(limit)

	ids, err := s.client.ZRevRange(ctx, userBriefsKey(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list briefs: %w", err)
	}
	if len(ids) == 0 {
		return []*types.Brief{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = briefKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load briefs: %w", err)
	}

	briefs := make([]*types.Brief, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var b types.Brief
		if err := json.Unmarshal([]byte(raw), &b); err != nil {
			return nil, fmt.Errorf("failed to unmarshal brief: %w", err)
		}
		briefs = append(briefs, &b)
	}
	return briefs, nil
}

// Get implements store.BriefStore.
func (s *BriefStore) Get(ctx context.Context, id string) (*types.Brief, error) {
	data, err := s.client.Get(ctx, briefKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get brief: %w", err)
	}

	var b types.Brief
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal brief: %w", err)
	}
	return &b, nil
}

var _ store.BriefStore = (*BriefStore)(nil)
