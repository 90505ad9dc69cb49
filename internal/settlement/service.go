package settlement

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/wesplit/wesplit/internal/ledger"
)

// Service projects balances and settlement suggestions from the ledger.
// It never mutates anything: suggested transfers are advisory, there is no
// payment rail behind them.
type Service struct {
	store *ledger.Store
}

// NewService creates a new settlement service
func NewService(store *ledger.Store) *Service {
	return &Service{store: store}
}

// Balances returns every member's net position plus the group total.
func (s *Service) Balances(ctx context.Context, groupID string) ([]MemberBalance, decimal.Decimal, error) {
	g, err := s.store.GetGroup(groupID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	projected, err := s.store.Balances(groupID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	// Member order follows the group's display order.
	out := make([]MemberBalance, len(g.Members))
	for i, m := range g.Members {
		out[i] = MemberBalance{
			MemberID:   m.ID,
			Name:       m.Name,
			NetBalance: projected[m.ID],
		}
	}
	return out, g.TotalBalance, nil
}

// Suggested returns a minimal transfer list that settles the group.
func (s *Service) Suggested(ctx context.Context, groupID string) ([]Transfer, error) {
	balances, _, err := s.Balances(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return SuggestTransfers(balances), nil
}
