package group

import (
	"github.com/shopspring/decimal"

	"github.com/wesplit/wesplit/internal/ledger"
)

// MemberRequest describes a member to create or add. ID is optional; the
// ledger assigns one when empty.
type MemberRequest struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// CreateGroupRequest represents the request to create a new group
type CreateGroupRequest struct {
	Name        string        `json:"name" validate:"required,min=1,max=100"`
	Description string        `json:"description,omitempty"`
	Creator     MemberRequest `json:"creator"`
}

// UpdateGroupRequest represents the request to update a group
type UpdateGroupRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty"`
}

// MemberResponse represents a member in a group response
type MemberResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone,omitempty"`
	Balance decimal.Decimal `json:"balance"`
}

// GroupResponse represents the response for a group
type GroupResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	Members      []MemberResponse `json:"members"`
	ExpenseCount int              `json:"expense_count"`
	TotalBalance decimal.Decimal  `json:"total_balance"`
	CreatedAt    string           `json:"created_at"`
}

func (r MemberRequest) toMember() ledger.Member {
	return ledger.Member{
		ID:    r.ID,
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
	}
}

// ToResponse converts a ledger group to its API representation.
func ToResponse(g *ledger.Group) *GroupResponse {
	members := make([]MemberResponse, len(g.Members))
	for i, m := range g.Members {
		members[i] = MemberResponse{
			ID:      m.ID,
			Name:    m.Name,
			Email:   m.Email,
			Phone:   m.Phone,
			Balance: m.Balance,
		}
	}
	return &GroupResponse{
		ID:           g.ID,
		Name:         g.Name,
		Description:  g.Description,
		Members:      members,
		ExpenseCount: len(g.Expenses),
		TotalBalance: g.TotalBalance,
		CreatedAt:    g.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
