package settlement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wesplit/wesplit/internal/ledger"
	"github.com/wesplit/wesplit/internal/ledger/split"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()

	store := ledger.NewStore()
	g, err := store.CreateGroup("Trip", "", ledger.Member{ID: "alice", Name: "Alice"})
	require.NoError(t, err)
	_, err = store.AddMember(g.ID, ledger.Member{ID: "bob", Name: "Bob"})
	require.NoError(t, err)
	_, err = store.AddMember(g.ID, ledger.Member{ID: "cara", Name: "Cara"})
	require.NoError(t, err)

	_, err = store.AddExpense(g.ID, ledger.ExpenseInput{
		Title:        "Dinner",
		Amount:       dec("90"),
		PaidBy:       "alice",
		SplitBetween: []string{"alice", "bob", "cara"},
		SplitMethod:  split.MethodEqual,
	})
	require.NoError(t, err)

	return NewService(store), g.ID
}

func TestServiceBalances(t *testing.T) {
	ctx := context.Background()
	svc, groupID := newTestService(t)

	balances, total, err := svc.Balances(ctx, groupID)
	require.NoError(t, err)
	require.True(t, total.Equal(dec("90")))
	require.Len(t, balances, 3)

	// Member order follows the group's display order.
	require.Equal(t, "alice", balances[0].MemberID)
	require.True(t, balances[0].NetBalance.Equal(dec("60")))
	require.True(t, balances[1].NetBalance.Equal(dec("-30")))
	require.True(t, balances[2].NetBalance.Equal(dec("-30")))

	_, _, err = svc.Balances(ctx, "nope")
	require.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestServiceSuggested(t *testing.T) {
	ctx := context.Background()
	svc, groupID := newTestService(t)

	transfers, err := svc.Suggested(ctx, groupID)
	require.NoError(t, err)
	require.Len(t, transfers, 2)
	require.Equal(t, "bob", transfers[0].FromID)
	require.Equal(t, "cara", transfers[1].FromID)
	for _, tr := range transfers {
		require.Equal(t, "alice", tr.ToID)
		require.True(t, tr.Amount.Equal(dec("30")), "got %s", tr.Amount)
	}
}
