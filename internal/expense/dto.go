package expense

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wesplit/wesplit/internal/ledger"
	"github.com/wesplit/wesplit/internal/ledger/split"
)

// dateLayout is the day-granular wire format for expense dates.
const dateLayout = "2006-01-02"

// SplitShareRequest carries per-member split data for unequal and
// percentage methods.
type SplitShareRequest struct {
	MemberID   string           `json:"member_id" validate:"required"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

// CreateExpenseRequest represents the request to create a new expense
type CreateExpenseRequest struct {
	GroupID      string              `json:"group_id" validate:"required"`
	Title        string              `json:"title" validate:"required,min=1,max=200"`
	Amount       decimal.Decimal     `json:"amount" validate:"required"`
	PaidBy       string              `json:"paid_by" validate:"required"`
	SplitBetween []string            `json:"split_between" validate:"required,min=1"`
	SplitMethod  string              `json:"split_method"` // equal, unequal, percentage
	Splits       []SplitShareRequest `json:"splits,omitempty"`
	Category     string              `json:"category,omitempty"`
	Date         string              `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
}

// UpdateExpenseRequest represents a partial expense edit. Absent fields
// are left untouched.
type UpdateExpenseRequest struct {
	Title        *string             `json:"title,omitempty"`
	Amount       *decimal.Decimal    `json:"amount,omitempty"`
	PaidBy       *string             `json:"paid_by,omitempty"`
	SplitBetween []string            `json:"split_between,omitempty"`
	SplitMethod  *string             `json:"split_method,omitempty"`
	Splits       []SplitShareRequest `json:"splits,omitempty"`
	Category     *string             `json:"category,omitempty"`
	Date         *string             `json:"date,omitempty"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Amount       decimal.Decimal     `json:"amount"`
	PaidBy       string              `json:"paid_by"`
	SplitBetween []string            `json:"split_between"`
	SplitMethod  string              `json:"split_method"`
	Splits       []SplitShareRequest `json:"splits,omitempty"`
	Category     string              `json:"category"`
	Date         string              `json:"date"`
	LastModified string              `json:"last_modified,omitempty"`
}

func toShareInputs(reqs []SplitShareRequest) []split.ShareInput {
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

func fromShareInputs(inputs []split.ShareInput) []SplitShareRequest {
	if len(inputs) == 0 {
		return nil
	}
	out := make([]SplitShareRequest, len(inputs))
	for i, in := range inputs {
		out[i] = SplitShareRequest{
			MemberID:   in.MemberID,
			Amount:     in.Amount,
			Percentage: in.Percentage,
		}
	}
	return out
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ledger.ErrValidation)
	}
	return t, nil
}

// ToResponse converts a ledger expense to its API representation.
func ToResponse(e *ledger.Expense) *ExpenseResponse {
	resp := &ExpenseResponse{
		ID:           e.ID,
		Title:        e.Title,
		Amount:       e.Amount,
		PaidBy:       e.PaidBy,
		SplitBetween: e.SplitBetween,
		SplitMethod:  string(e.SplitMethod),
		Splits:       fromShareInputs(e.Splits),
		Category:     e.Category,
		Date:         e.Date.Format(dateLayout),
	}
	if e.LastModified != nil {
		resp.LastModified = e.LastModified.Format(time.RFC3339)
	}
	return resp
}
