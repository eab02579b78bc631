package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/briefly/internal/store"
	"github.com/jonathan/briefly/internal/types"
)

// BriefStore is a store.BriefStore persisting briefs as JSONB.
type BriefStore struct {
	db *DB
}

// NewBriefStore returns a brief store sharing db's pool.
func NewBriefStore(db *DB) *BriefStore {
	return &BriefStore{db: db}
}

// Append implements store.BriefStore.
func (s *BriefStore) Append(ctx context.Context, b *types.Brief) error {
	content, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal brief: %w", err)
	}

	_, err = s.db.pool.Exec(ctx,
		`INSERT INTO briefs (id, user_id, category, content, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		b.ID, b.UserID, b.Category, content, b.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("brief %s already stored", b.ID)
		}
		return fmt.Errorf("failed to save brief: %w", err)
	}
	return nil
}

// ListByUser implements store.BriefStore.
func (s *BriefStore) ListByUser(ctx context.Context, userID string, limit int) ([]*types.Brief, error) {
	rows, err := s.db.pool.Query(ctx,
		`SELECT content FROM briefs WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC LIMIT $2`,
		userID, store.NormalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list briefs: %w", err)
	}
	defer rows.Close()

	briefs := []*types.Brief{}
	for rows.Next() {
		var content []byte
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("failed to scan brief: %w", err)
		}
		b, err := decodeBrief(content)
		if err != nil {
			return nil, err
		}
		briefs = append(briefs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list briefs: %w", err)
	}
	return briefs, nil
}

// Get implements store.BriefStore.
func (s *BriefStore) Get(ctx context.Context, id string) (*types.Brief, error) {
	var content []byte
	err := s.db.pool.QueryRow(ctx, `SELECT content FROM briefs WHERE id = $1`, id).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get brief: %w", err)
	}
	return decodeBrief(content)
}

func decodeBrief(content []byte) (*types.Brief, error) {
	var b types.Brief
	if err := json.Unmarshal(content, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal brief: %w", err)
	}
	return &b, nil
}

var _ store.BriefStore = (*BriefStore)(nil)
