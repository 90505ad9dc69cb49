package settlement

import (
	"sort"

	"github.com/shopspring/decimal"
)

// MemberBalance is one member's net position in a group. Positive means
// the group owes the member, negative means the member owes the group.
type MemberBalance struct {
	MemberID   string          `json:"member_id"`
	Name       string          `json:"name"`
	NetBalance decimal.Decimal `json:"net_balance"`
}

// Transfer is one suggested repayment from a debtor to a creditor.
type Transfer struct {
	FromID string          `json:"from_id"`
	ToID   string          `json:"to_id"`
	Amount decimal.Decimal `json:"amount"`
}

// SuggestTransfers matches debtors against creditors greedily, largest
// positions first, producing a short list of transfers that settles every
// balance. Ties are broken by member id so the output is deterministic.
//
// The input balances must sum to zero; the projection guarantees that.
func SuggestTransfers(balances []MemberBalance) []Transfer {
	var debtors, creditors []MemberBalance
	for _, b := range balances {
		switch {
		case b.NetBalance.IsNegative():
			debtors = append(debtors, b)
		case b.NetBalance.IsPositive():
			creditors = append(creditors, b)
		}
	}

	sort.Slice(debtors, func(i, j int) bool {
		if !debtors[i].NetBalance.Equal(debtors[j].NetBalance) {
			return debtors[i].NetBalance.LessThan(debtors[j].NetBalance)
		}
		return debtors[i].MemberID < debtors[j].MemberID
	})
	sort.Slice(creditors, func(i, j int) bool {
		if !creditors[i].NetBalance.Equal(creditors[j].NetBalance) {
			return creditors[i].NetBalance.GreaterThan(creditors[j].NetBalance)
		}
		return creditors[i].MemberID < creditors[j].MemberID
	})

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		owed := debtors[i].NetBalance.Neg()
		due := creditors[j].NetBalance

		amount := decimal.Min(owed, due)
		if amount.IsPositive() {
			transfers = append(transfers, Transfer{
				FromID: debtors[i].MemberID,
				ToID:   creditors[j].MemberID,
				Amount: amount,
			})
		}

		debtors[i].NetBalance = debtors[i].NetBalance.Add(amount)
		creditors[j].NetBalance = creditors[j].NetBalance.Sub(amount)

		if debtors[i].NetBalance.IsZero() {
			i++
		}
		if creditors[j].NetBalance.IsZero() {
			j++
		}
	}

	return transfers
}
