package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jonathan/briefly/internal/types"
)

// MemoryBriefs is an in-process BriefStore. Briefs are stored as JSON so
// callers never share memory with the store.
type MemoryBriefs struct {
	mu     sync.RWMutex
	byID   map[string][]byte
	byUser map[string][]string
}

// NewMemoryBriefs creates an empty in-memory brief store.
func NewMemoryBriefs() *MemoryBriefs {
	return &MemoryBriefs{
		byID:   make(map[string][]byte),
		byUser: make(map[string][]string),
	}
}

// Append implements BriefStore.
func (s *MemoryBriefs) Append(_ context.Context, b *types.Brief) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal brief: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[b.ID]; exists {
		return fmt.Errorf("brief %s already stored", b.ID)
	}
	s.byID[b.ID] = data
	s.byUser[b.UserID] = append(s.byUser[b.UserID], b.ID)
	return nil
}

// ListByUser implements BriefStore.
func (s *MemoryBriefs) ListByUser(_ context.Context, userID string, limit int) ([]*types.Brief, error) {
	limit = NormalizeLimit(limit)

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byUser[userID]
	out := make([]*types.Brief, 0, min(limit, len(ids)))
	for i := len(ids) - 1; i >= 0 && len(out) < limit; i-- {
		b, err := decodeBrief(s.byID[ids[i]])
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// Get implements BriefStore.
func (s *MemoryBriefs) Get(_ context.Context, id string) (*types.Brief, error) {
	s.mu.RLock()
	data, ok := s.byID[id]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	return decodeBrief(data)
}

func decodeBrief(data []byte) (*types.Brief, error) {
	var b types.Brief
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal brief: %w", err)
	}
	return &b, nil
}

var _ BriefStore = (*MemoryBriefs)(nil)
