package recurring

import (
	"context"
	"log/slog"
	"time"

	"github.com/wesplit/wesplit/internal/expense"
	"github.com/wesplit/wesplit/internal/ledger"
	"github.com/wesplit/wesplit/internal/ledger/recurrence"
	"github.com/wesplit/wesplit/internal/ledger/split"
)

// Service handles recurring template business logic
type Service struct {
	store *ledger.Store
}

// NewService creates a new recurring template service
func NewService(store *ledger.Store) *Service {
	return &Service{store: store}
}

// Create records a new recurring template
func (s *Service) Create(ctx context.Context, req *CreateTemplateRequest) (*ledger.RecurringTemplate, error) {
	in := ledger.TemplateInput{
		Title:        req.Title,
		Amount:       req.Amount,
		PaidBy:       req.PaidBy,
		SplitBetween: req.SplitBetween,
		SplitMethod:  methodOrDefault(req.SplitMethod),
		Splits:       toShareInputs(req.Splits),
		Category:     req.Category,
		RepeatCycle:  recurrence.Cycle(req.RepeatCycle),
		IsActive:     req.IsActive,
	}
	if req.StartDate != "" {
		d, err := parseDate(req.StartDate)
		if err != nil {
			return nil, err
		}
		in.StartDate = &d
	}

	t, err := s.store.AddRecurringTemplate(req.GroupID, in)
	if err != nil {
		return nil, err
	}
	slog.Info("recurring template added",
		"group_id", req.GroupID, "template_id", t.ID,
		"cycle", t.RepeatCycle, "next_due", t.NextDueDate.Format(dateLayout))
	return t, nil
}

// Update applies a partial edit to a template
func (s *Service) Update(ctx context.Context, templateID string, req *UpdateTemplateRequest) (*ledger.RecurringTemplate, error) {
	patch := ledger.TemplatePatch{
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
	if req.RepeatCycle != nil {
		c := recurrence.Cycle(*req.RepeatCycle)
		patch.RepeatCycle = &c
	}
	if req.StartDate != nil {
		d, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		patch.StartDate = &d
	}

	t, err := s.store.EditRecurringTemplate(templateID, patch)
	if err != nil {
		return nil, err
	}
	slog.Info("recurring template edited", "template_id", templateID, "next_due", t.NextDueDate.Format(dateLayout))
	return t, nil
}

// Delete removes a template permanently; already materialized expenses stay
func (s *Service) Delete(ctx context.Context, templateID string) error {
	if err := s.store.DeleteRecurringTemplate(templateID); err != nil {
		return err
	}
	slog.Info("recurring template deleted", "template_id", templateID)
	return nil
}

// Toggle flips a template's active flag
func (s *Service) Toggle(ctx context.Context, templateID string, isActive bool) (*ledger.RecurringTemplate, error) {
	t, err := s.store.ToggleRecurringTemplate(templateID, isActive)
	if err != nil {
		return nil, err
	}
	slog.Info("recurring template toggled", "template_id", templateID, "is_active", isActive)
	return t, nil
}

// ListByGroup retrieves a group's templates, optionally active-only
func (s *Service) ListByGroup(ctx context.Context, groupID string, activeOnly bool) ([]*ledger.RecurringTemplate, error) {
	return s.store.ListRecurringTemplates(groupID, activeOnly)
}

// Materialize turns every due active template into concrete expenses.
// Safe to call repeatedly: a due date is materialized at most once.
func (s *Service) Materialize(ctx context.Context, referenceDate time.Time) ([]ledger.Expense, error) {
	created, err := s.store.MaterializeDueRecurring(referenceDate)
	if err != nil {
		return nil, err
	}
	if len(created) > 0 {
		slog.Info("recurring templates materialized", "created", len(created))
	}
	return created, nil
}

func methodOrDefault(m string) split.Method {
	if m == "" {
		return split.MethodEqual
	}
	return split.Method(m)
}

func toShareInputs(reqs []expense.SplitShareRequest) []split.ShareInput {
	if len(reqs) == 0 {
		return nil
	}
	out := make([]split.ShareInput, len(reqs))
	for i, r := range reqs {
		out[i] = split.ShareInput{
			MemberID:   r.MemberID,
			Amount:     r.Amount,
			Percentage: r.Percentage,
		}
	}
	return out
}
