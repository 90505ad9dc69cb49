package recurring

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wesplit/wesplit/internal/expense"
	"github.com/wesplit/wesplit/internal/ledger"
)

const dateLayout = "2006-01-02"

// CreateTemplateRequest represents the request to create a recurring
// expense template.
type CreateTemplateRequest struct {
	GroupID      string                      `json:"group_id" validate:"required"`
	Title        string                      `json:"title" validate:"required,min=1,max=200"`
	Amount       decimal.Decimal             `json:"amount" validate:"required"`
	PaidBy       string                      `json:"paid_by" validate:"required"`
	SplitBetween []string                    `json:"split_between" validate:"required,min=1"`
	SplitMethod  string                      `json:"split_method"`
	Splits       []expense.SplitShareRequest `json:"splits,omitempty"`
	Category     string                      `json:"category,omitempty"`
	RepeatCycle  string                      `json:"repeat_cycle" validate:"required"` // daily, weekly, monthly, yearly
	StartDate    string                      `json:"start_date,omitempty"`             // YYYY-MM-DD, defaults to today
	IsActive     *bool                       `json:"is_active,omitempty"`
}

// UpdateTemplateRequest represents a partial template edit. Changing the
// start date or repeat cycle recomputes the next due date.
type UpdateTemplateRequest struct {
	Title        *string                     `json:"title,omitempty"`
	Amount       *decimal.Decimal            `json:"amount,omitempty"`
	PaidBy       *string                     `json:"paid_by,omitempty"`
	SplitBetween []string                    `json:"split_between,omitempty"`
	SplitMethod  *string                     `json:"split_method,omitempty"`
	Splits       []expense.SplitShareRequest `json:"splits,omitempty"`
	Category     *string                     `json:"category,omitempty"`
	RepeatCycle  *string                     `json:"repeat_cycle,omitempty"`
	StartDate    *string                     `json:"start_date,omitempty"`
}

// ToggleTemplateRequest flips a template's active flag.
type ToggleTemplateRequest struct {
	IsActive bool `json:"is_active"`
}

// MaterializeRequest optionally overrides the reference date for
// materialization. Empty means today.
type MaterializeRequest struct {
	ReferenceDate string `json:"reference_date,omitempty"` // YYYY-MM-DD
}

// TemplateResponse represents the response for a recurring template
type TemplateResponse struct {
	ID           string                      `json:"id"`
	GroupID      string                      `json:"group_id"`
	Title        string                      `json:"title"`
	Amount       decimal.Decimal             `json:"amount"`
	PaidBy       string                      `json:"paid_by"`
	SplitBetween []string                    `json:"split_between"`
	SplitMethod  string                      `json:"split_method"`
	Splits       []expense.SplitShareRequest `json:"splits,omitempty"`
	Category     string                      `json:"category"`
	RepeatCycle  string                      `json:"repeat_cycle"`
	StartDate    string                      `json:"start_date"`
	IsActive     bool                        `json:"is_active"`
	NextDueDate  string                      `json:"next_due_date"`
	CreatedAt    string                      `json:"created_at"`
	LastModified string                      `json:"last_modified,omitempty"`
}

// MaterializeResponse reports the expenses created by a materialization run.
type MaterializeResponse struct {
	Created []*expense.ExpenseResponse `json:"created"`
	Count   int                        `json:"count"`
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ledger.ErrValidation)
	}
	return t, nil
}

// ToResponse converts a ledger template to its API representation.
func ToResponse(t *ledger.RecurringTemplate) *TemplateResponse {
	resp := &TemplateResponse{
		ID:           t.ID,
		GroupID:      t.GroupID,
		Title:        t.Title,
		Amount:       t.Amount,
		PaidBy:       t.PaidBy,
		SplitBetween: t.SplitBetween,
		SplitMethod:  string(t.SplitMethod),
		Category:     t.Category,
		RepeatCycle:  string(t.RepeatCycle),
		StartDate:    t.StartDate.Format(dateLayout),
		IsActive:     t.IsActive,
		NextDueDate:  t.NextDueDate.Format(dateLayout),
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
	}
	for _, s := range t.Splits {
		resp.Splits = append(resp.Splits, expense.SplitShareRequest{
			MemberID:   s.MemberID,
			Amount:     s.Amount,
			Percentage: s.Percentage,
		})
	}
	if t.LastModified != nil {
		resp.LastModified = t.LastModified.Format(time.RFC3339)
	}
	return resp
}
