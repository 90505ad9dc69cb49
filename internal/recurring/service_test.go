package recurring

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/wesplit/wesplit/internal/ledger"
)

func newTestService(t *testing.T) (*Service, *ledger.Group) {
	t.Helper()

	store := ledger.NewStore(ledger.WithNow(func() time.Time {
		return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	}))
	g, err := store.CreateGroup("Flat", "", ledger.Member{ID: "alice", Name: "Alice"})
	require.NoError(t, err)
	_, err = store.AddMember(g.ID, ledger.Member{ID: "bob", Name: "Bob"})
	require.NoError(t, err)

	return NewService(store), g
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("parses the start date and schedules the template", func(t *testing.T) {
		svc, g := newTestService(t)

		tpl, err := svc.Create(ctx, &CreateTemplateRequest{
			GroupID:      g.ID,
			Title:        "Rent",
			Amount:       decimal.RequireFromString("900"),
			PaidBy:       "alice",
			SplitBetween: []string{"alice", "bob"},
			RepeatCycle:  "monthly",
			StartDate:    "2024-01-15",
		})
		require.NoError(t, err)
		require.True(t, tpl.IsActive)
		require.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), tpl.NextDueDate)
	})

	t.Run("rejects unknown cycles", func(t *testing.T) {
		svc, g := newTestService(t)

		_, err := svc.Create(ctx, &CreateTemplateRequest{
			GroupID:      g.ID,
			Title:        "Rent",
			Amount:       decimal.RequireFromString("900"),
			PaidBy:       "alice",
			SplitBetween: []string{"alice", "bob"},
			RepeatCycle:  "fortnightly",
		})
		require.ErrorIs(t, err, ledger.ErrValidation)
	})

	t.Run("rejects malformed start dates", func(t *testing.T) {
		svc, g := newTestService(t)

		_, err := svc.Create(ctx, &CreateTemplateRequest{
			GroupID:      g.ID,
			Title:        "Rent",
			Amount:       decimal.RequireFromString("900"),
			PaidBy:       "alice",
			SplitBetween: []string{"alice", "bob"},
			RepeatCycle:  "monthly",
			StartDate:    "Jan 15",
		})
		require.ErrorIs(t, err, ledger.ErrValidation)
	})
}

func TestMaterialize(t *testing.T) {
	ctx := context.Background()
	svc, g := newTestService(t)

	_, err := svc.Create(ctx, &CreateTemplateRequest{
		GroupID:      g.ID,
		Title:        "Coffee",
		Amount:       decimal.RequireFromString("6"),
		PaidBy:       "alice",
		SplitBetween: []string{"alice", "bob"},
		RepeatCycle:  "daily",
	})
	require.NoError(t, err)

	created, err := svc.Materialize(ctx, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, created, 2)
	for _, e := range created {
		require.Equal(t, "Coffee", e.Title)
	}

	created, err = svc.Materialize(ctx, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Empty(t, created)
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	svc, g := newTestService(t)

	tpl, err := svc.Create(ctx, &CreateTemplateRequest{
		GroupID:      g.ID,
		Title:        "Rent",
		Amount:       decimal.RequireFromString("900"),
		PaidBy:       "alice",
		SplitBetween: []string{"alice", "bob"},
		RepeatCycle:  "monthly",
	})
	require.NoError(t, err)

	got, err := svc.Toggle(ctx, tpl.ID, false)
	require.NoError(t, err)
	require.False(t, got.IsActive)

	_, err = svc.Toggle(ctx, tpl.ID, false)
	require.ErrorIs(t, err, ledger.ErrStateConflict)
}
