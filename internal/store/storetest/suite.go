// Package storetest holds the behavioural checks every BriefStore and
// UserRepository backend must pass.
package storetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/briefly/internal/store"
	"github.com/jonathan/briefly/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewBrief returns a minimal brief owned by userID and created at the given
// offset from a fixed base time.
func NewBrief(userID string, offset time.Duration) *types.Brief {
	budget := 75000.0
	return &types.Brief{
		ID:        uuid.NewString(),
		Title:     "Logo Design Brief for Acme",
		Summary:   "Professional Logo Design project for Acme.",
		Category:  "Logo Design",
		UserID:    userID,
		CreatedAt: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC).Add(offset),
		Intake: types.ProjectIntake{
			ClientName:  "Acme",
			ProjectType: "Logo Design",
			Budget:      &budget,
		},
		Sections: types.BriefSections{
			Budget: types.BudgetSection{
				Title:       "Project Budget",
				TotalBudget: budget,
				Breakdown: []types.BudgetLine{
					{Item: "Design Development", Percentage: 50, Amount: 37500},
				},
			},
		},
	}
}

// RunBriefStore exercises a BriefStore produced by newStore.
func RunBriefStore(t *testing.T, newStore func(t *testing.T) store.BriefStore) {
	ctx := context.Background()

	t.Run("append and get", func(t *testing.T) {
		s := newStore(t)
		b := NewBrief("owner-"+uuid.NewString(), 0)
		require.NoError(t, s.Append(ctx, b))

		got, err := s.Get(ctx, b.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, b.ID, got.ID)
		assert.Equal(t, b.Title, got.Title)
		assert.Equal(t, b.UserID, got.UserID)
		assert.True(t, b.CreatedAt.Equal(got.CreatedAt))
		require.NotNil(t, got.Intake.Budget)
		assert.Equal(t, 75000.0, *got.Intake.Budget)
		assert.Equal(t, b.Sections.Budget.Breakdown, got.Sections.Budget.Breakdown)
	})

	t.Run("get missing returns nil", func(t *testing.T) {
		s := newStore(t)
		got, err := s.Get(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("list by user newest first", func(t *testing.T) {
		s := newStore(t)
		owner := "owner-" + uuid.NewString()
		other := "other-" + uuid.NewString()

		var ids []string
		for i := 0; i < 3; i++ {
			b := NewBrief(owner, time.Duration(i)*time.Minute)
			ids = append(ids, b.ID)
			require.NoError(t, s.Append(ctx, b))
		}
		require.NoError(t, s.Append(ctx, NewBrief(other, 0)))

		list, err := s.ListByUser(ctx, owner, 10)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, ids[2], list[0].ID)
		assert.Equal(t, ids[0], list[2].ID)

		limited, err := s.ListByUser(ctx, owner, 2)
		require.NoError(t, err)
		assert.Len(t, limited, 2)

		empty, err := s.ListByUser(ctx, "nobody-"+uuid.NewString(), 10)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		s := newStore(t)
		b := NewBrief("owner-"+uuid.NewString(), 0)
		require.NoError(t, s.Append(ctx, b))
		assert.Error(t, s.Append(ctx, b))
	})
}

// RunUserRepository exercises a UserRepository produced by newRepo.
func RunUserRepository(t *testing.T, newRepo func(t *testing.T) store.UserRepository) {
	ctx := context.Background()
	uniqueEmail := func() string { return fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8]) }

	t.Run("create and fetch", func(t *testing.T) {
		r := newRepo(t)
		email := uniqueEmail()

		id, err := r.CreateUser(ctx, "Ada Obi", email, "+2348000000000")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)

		rec, err := r.GetUser(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "Ada Obi", rec.Name)
		assert.Equal(t, email, rec.Email)
		assert.Equal(t, types.PlanFree, rec.Plan)
		assert.False(t, rec.PasswordSet)

		byEmail, err := r.GetUserByEmail(ctx, email)
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, id, byEmail.ID)

		exists, err := r.CheckEmailExists(ctx, email)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("missing user returns nil", func(t *testing.T) {
		r := newRepo(t)
		rec, err := r.GetUser(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, rec)

		rec, err = r.GetUserByEmail(ctx, uniqueEmail())
		require.NoError(t, err)
		assert.Nil(t, rec)

		exists, err := r.CheckEmailExists(ctx, uniqueEmail())
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		r := newRepo(t)
		email := uniqueEmail()
		_, err := r.CreateUser(ctx, "First", email, "")
		require.NoError(t, err)

		_, err = r.CreateUser(ctx, "Second", email, "")
		assert.ErrorIs(t, err, store.ErrDuplicateEmail)
	})

	t.Run("update password", func(t *testing.T) {
		r := newRepo(t)
		id, err := r.CreateUser(ctx, "Ada Obi", uniqueEmail(), "")
		require.NoError(t, err)

		require.NoError(t, r.UpdatePassword(ctx, id, "$2a$10$hash"))

		rec, err := r.GetUser(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "$2a$10$hash", rec.PasswordHash)
		assert.True(t, rec.PasswordSet)
	})

	t.Run("delete frees the email", func(t *testing.T) {
		r := newRepo(t)
		email := uniqueEmail()
		id, err := r.CreateUser(ctx, "Ada Obi", email, "")
		require.NoError(t, err)

		require.NoError(t, r.DeleteUser(ctx, id))

		rec, err := r.GetUser(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, rec)
		exists, err := r.CheckEmailExists(ctx, email)
		require.NoError(t, err)
		assert.False(t, exists)

		require.NoError(t, r.DeleteUser(ctx, id))
	})
}
