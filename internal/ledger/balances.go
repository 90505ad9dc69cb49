package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wesplit/wesplit/internal/ledger/split"
)

// ProjectBalances derives every member's net position from the group's
// expense sequence. For each expense the payer gains the amount minus their
// own share and every other participant loses their share, so the balances
// of a group always sum to zero.
//
// The projection is the single source of balance truth: it is recomputed in
// full after every mutation rather than adjusted incrementally.
func ProjectBalances(g *Group) (map[string]decimal.Decimal, error) {
	balances := make(map[string]decimal.Decimal, len(g.Members))
	for _, m := range g.Members {
		balances[m.ID] = decimal.Zero
	}

	factory := split.NewFactory()
	for _, e := range g.Expenses {
		shares, err := expenseShares(factory, e)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}

		payerShare := decimal.Zero
		for _, sh := range shares {
			if sh.MemberID == e.PaidBy {
				payerShare = sh.Amount
				continue
			}
			balances[sh.MemberID] = balances[sh.MemberID].Sub(sh.Amount)
		}
		balances[e.PaidBy] = balances[e.PaidBy].Add(e.Amount.Sub(payerShare))
	}

	return balances, nil
}

// expenseShares calculates the per-participant shares of one expense.
func expenseShares(factory *split.Factory, e Expense) ([]split.Share, error) {
	strategy, err := factory.Create(e.SplitMethod)
	if err != nil {
		return nil, err
	}
	return strategy.Calculate(e.Amount, shareInputs(e.SplitBetween, e.Splits))
}

// shareInputs joins the participant list with any stored per-member split
// data, preserving splitBetween order.
func shareInputs(splitBetween []string, splits []split.ShareInput) []split.ShareInput {
	byMember := make(map[string]split.ShareInput, len(splits))
	for _, s := range splits {
		byMember[s.MemberID] = s
	}

	inputs := make([]split.ShareInput, len(splitBetween))
	for i, id := range splitBetween {
		in := split.ShareInput{MemberID: id}
		if s, ok := byMember[id]; ok {
			in.Amount = s.Amount
			in.Percentage = s.Percentage
		}
		inputs[i] = in
	}
	return inputs
}
