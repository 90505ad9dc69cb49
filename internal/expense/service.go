package expense

import (
	"context"
	"log/slog"

	"github.com/wesplit/wesplit/internal/ledger"
	"github.com/wesplit/wesplit/internal/ledger/split"
)

// Service handles expense business logic
type Service struct {
	store *ledger.Store
}

// NewService creates a new expense service
func NewService(store *ledger.Store) *Service {
	return &Service{store: store}
}

// Create records a new expense in the ledger
func (s *Service) Create(ctx context.Context, req *CreateExpenseRequest) (*ledger.Expense, error) {
	in := ledger.ExpenseInput{
		Title:        req.Title,
		Amount:       req.Amount,
		PaidBy:       req.PaidBy,
		SplitBetween: req.SplitBetween,
		SplitMethod:  methodOrDefault(req.SplitMethod),
		Splits:       toShareInputs(req.Splits),
		Category:     req.Category,
	}
	if req.Date != "" {
		d, err := parseDate(req.Date)
		if err != nil {
			return nil, err
		}
		in.Date = &d
	}

	e, err := s.store.AddExpense(req.GroupID, in)
	if err != nil {
		return nil, err
	}
	slog.Info("expense added", "group_id", req.GroupID, "expense_id", e.ID, "amount", e.Amount)
	return e, nil
}

// Update applies a partial edit to an expense
func (s *Service) Update(ctx context.Context, groupID, expenseID string, req *UpdateExpenseRequest) (*ledger.Expense, error) {
	patch := ledger.ExpensePatch{
		Title:        req.Title,
		Amount:       req.Amount,
		PaidBy:       req.PaidBy,
		SplitBetween: req.SplitBetween,
		Splits:       toShareInputs(req.Splits),
		Category:     req.Category,
	}
	if req.SplitMethod != nil {
		m := split.Method(*req.SplitMethod)
		patch.SplitMethod = &m
	}
	if req.Date != nil {
		d, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		patch.Date = &d
	}

	e, err := s.store.EditExpense(groupID, expenseID, patch)
	if err != nil {
		return nil, err
	}
	slog.Info("expense edited", "group_id", groupID, "expense_id", expenseID)
	return e, nil
}

// Delete removes an expense from the ledger
func (s *Service) Delete(ctx context.Context, groupID, expenseID string) error {
	if err := s.store.DeleteExpense(groupID, expenseID); err != nil {
		return err
	}
	slog.Info("expense deleted", "group_id", groupID, "expense_id", expenseID)
	return nil
}

// ListByGroup retrieves the expense sequence of a group
func (s *Service) ListByGroup(ctx context.Context, groupID string) ([]ledger.Expense, error) {
	return s.store.ListExpenses(groupID)
}

// methodOrDefault falls back to an equal split when no method is supplied
func methodOrDefault(m string) split.Method {
	if m == "" {
		return split.MethodEqual
	}
	return split.Method(m)
}
