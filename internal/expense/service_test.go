package expense

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

	store := ledger.NewStore()
	g, err := store.CreateGroup("Trip", "", ledger.Member{ID: "alice", Name: "Alice"})
	require.NoError(t, err)
	_, err = store.AddMember(g.ID, ledger.Member{ID: "bob", Name: "Bob"})
	require.NoError(t, err)

	return NewService(store), g
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults the method to an equal split", func(t *testing.T) {
		svc, g := newTestService(t)

		e, err := svc.Create(ctx, &CreateExpenseRequest{
			GroupID:      g.ID,
			Title:        "Dinner",
			Amount:       decimal.RequireFromString("50"),
			PaidBy:       "alice",
			SplitBetween: []string{"alice", "bob"},
		})
		require.NoError(t, err)
		require.Equal(t, "equal", string(e.SplitMethod))
	})

	t.Run("parses the expense date", func(t *testing.T) {
		svc, g := newTestService(t)

		e, err := svc.Create(ctx, &CreateExpenseRequest{
			GroupID:      g.ID,
			Title:        "Dinner",
			Amount:       decimal.RequireFromString("50"),
			PaidBy:       "alice",
			SplitBetween: []string{"alice", "bob"},
			Date:         "2024-03-15",
		})
		require.NoError(t, err)
		require.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), e.Date)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		svc, g := newTestService(t)

		_, err := svc.Create(ctx, &CreateExpenseRequest{
			GroupID:      g.ID,
			Title:        "Dinner",
			Amount:       decimal.RequireFromString("50"),
			PaidBy:       "alice",
			SplitBetween: []string{"alice", "bob"},
			Date:         "15/03/2024",
		})
		require.ErrorIs(t, err, ledger.ErrValidation)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc, g := newTestService(t)

	e, err := svc.Create(ctx, &CreateExpenseRequest{
		GroupID:      g.ID,
		Title:        "Dinner",
		Amount:       decimal.RequireFromString("50"),
		PaidBy:       "alice",
		SplitBetween: []string{"alice", "bob"},
	})
	require.NoError(t, err)

	title := "Late dinner"
	got, err := svc.Update(ctx, g.ID, e.ID, &UpdateExpenseRequest{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "Late dinner", got.Title)
	require.NotNil(t, got.LastModified)

	list, err := svc.ListByGroup(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Late dinner", list[0].Title)
}
