package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wesplit/wesplit/internal/ledger/recurrence"
	"github.com/wesplit/wesplit/internal/ledger/split"
)

// Member is a participant in a group. Balance is derived: positive means
// the group owes the member, negative means the member owes the group.
type Member struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone,omitempty"`
	Balance decimal.Decimal `json:"balance"`
}

// Group owns its member list and expense sequence. Insertion order is
// display order. TotalBalance is the sum of all recorded expense amounts.
type Group struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Members      []Member        `json:"members"`
	Expenses     []Expense       `json:"expenses"`
	TotalBalance decimal.Decimal `json:"total_balance"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Expense is a concrete ledger entry within a group.
type Expense struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Amount       decimal.Decimal    `json:"amount"`
	PaidBy       string             `json:"paid_by"`
	SplitBetween []string           `json:"split_between"`
	SplitMethod  split.Method       `json:"split_method"`
	// Splits carries the per-member amounts or percentages for unequal and
	// percentage methods. Empty for equal splits.
	Splits       []split.ShareInput `json:"splits,omitempty"`
	Category     string             `json:"category"`
	Date         time.Time          `json:"date"`
	LastModified *time.Time         `json:"last_modified,omitempty"`
}

// RecurringTemplate periodically generates concrete expenses in its owning
// group. It is not itself a ledger entry and never affects balances until
// materialized.
type RecurringTemplate struct {
	ID           string             `json:"id"`
	GroupID      string             `json:"group_id"`
	Title        string             `json:"title"`
	Amount       decimal.Decimal    `json:"amount"`
	PaidBy       string             `json:"paid_by"`
	SplitBetween []string           `json:"split_between"`
	SplitMethod  split.Method       `json:"split_method"`
	Splits       []split.ShareInput `json:"splits,omitempty"`
	Category     string             `json:"category"`
	RepeatCycle  recurrence.Cycle   `json:"repeat_cycle"`
	StartDate    time.Time          `json:"start_date"`
	IsActive     bool               `json:"is_active"`
	NextDueDate  time.Time          `json:"next_due_date"`
	CreatedAt    time.Time          `json:"created_at"`
	LastModified *time.Time         `json:"last_modified,omitempty"`
}

// SuggestedCategories is the category list offered by the UI. Categories
// are free-form tags; this list is advisory, not enforced.
var SuggestedCategories = []string{
	"General",
	"Food",
	"Transportation",
	"Accommodation",
	"Entertainment",
	"Utilities",
	"Shopping",
}

func (m Member) clone() Member {
	return m
}

func (e Expense) clone() Expense {
	c := e
	c.SplitBetween = append([]string(nil), e.SplitBetween...)
	c.Splits = append([]split.ShareInput(nil), e.Splits...)
	if e.LastModified != nil {
		t := *e.LastModified
		c.LastModified = &t
	}
	return c
}

func (g *Group) clone() *Group {
	c := &Group{
		ID:           g.ID,
		Name:         g.Name,
		Description:  g.Description,
		TotalBalance: g.TotalBalance,
		CreatedAt:    g.CreatedAt,
		Members:      make([]Member, len(g.Members)),
		Expenses:     make([]Expense, len(g.Expenses)),
	}
	for i, m := range g.Members {
		c.Members[i] = m.clone()
	}
	for i, e := range g.Expenses {
		c.Expenses[i] = e.clone()
	}
	return c
}

func (t *RecurringTemplate) clone() *RecurringTemplate {
	c := *t
	c.SplitBetween = append([]string(nil), t.SplitBetween...)
	c.Splits = append([]split.ShareInput(nil), t.Splits...)
	if t.LastModified != nil {
		lm := *t.LastModified
		c.LastModified = &lm
	}
	return &c
}

// memberIDs returns the group's member id set for validation lookups.
func (g *Group) memberIDs() map[string]bool {
	ids := make(map[string]bool, len(g.Members))
	for _, m := range g.Members {
		ids[m.ID] = true
	}
	return ids
}

// hasMember reports whether id is a current member of the group.
func (g *Group) hasMember(id string) bool {
	for _, m := range g.Members {
		if m.ID == id {
			return true
		}
	}
	return false
}

// DateOnly truncates t to midnight UTC. All ledger dates are day-granular.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
