// Package ledger owns the authoritative in-memory collections of groups,
// expenses and recurring templates, and every operation that mutates them.
//
// All state lives for the process lifetime only. Operations are serialized
// by a single mutex: each one runs to completion before the next is
// accepted, and readers always observe a fully applied state. Returned
// values are deep copies; callers can never mutate store internals.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wesplit/wesplit/internal/ledger/recurrence"
	"github.com/wesplit/wesplit/internal/ledger/split"
)

// Store is the ledger's single writer. The host application creates one
// instance and injects it into every feature service.
type Store struct {
	mu sync.Mutex

	groups     map[string]*Group
	groupOrder []string

	templates     map[string]*RecurringTemplate
	templateOrder []string

	factory *split.Factory
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithNow overrides the clock, used by tests for deterministic dates.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty ledger store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		groups:    make(map[string]*Group),
		templates: make(map[string]*RecurringTemplate),
		factory:   split.NewFactory(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExpenseInput carries the caller-supplied fields for a new expense.
// Date defaults to today when nil.
type ExpenseInput struct {
	Title        string
	Amount       decimal.Decimal
	PaidBy       string
	SplitBetween []string
	SplitMethod  split.Method
	Splits       []split.ShareInput
	Category     string
	Date         *time.Time
}

// ExpensePatch carries optional replacement fields for an expense edit.
// Nil fields are left untouched.
type ExpensePatch struct {
	Title        *string
	Amount       *decimal.Decimal
	PaidBy       *string
	SplitBetween []string
	SplitMethod  *split.Method
	Splits       []split.ShareInput
	Category     *string
	Date         *time.Time
}

// TemplateInput carries the caller-supplied fields for a new recurring
// template. StartDate defaults to today; IsActive defaults to true.
type TemplateInput struct {
	Title        string
	Amount       decimal.Decimal
	PaidBy       string
	SplitBetween []string
	SplitMethod  split.Method
	Splits       []split.ShareInput
	Category     string
	RepeatCycle  recurrence.Cycle
	StartDate    *time.Time
	IsActive     *bool
}

// TemplatePatch carries optional replacement fields for a template edit.
type TemplatePatch struct {
	Title        *string
	Amount       *decimal.Decimal
	PaidBy       *string
	SplitBetween []string
	SplitMethod  *split.Method
	Splits       []split.ShareInput
	Category     *string
	RepeatCycle  *recurrence.Cycle
	StartDate    *time.Time
}

// CreateGroup creates a group with the creator as its first member.
func (s *Store) CreateGroup(name, description string, creator Member) (*Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", ErrValidation)
	}
	if creator.Name == "" {
		return nil, fmt.Errorf("%w: creator name is required", ErrValidation)
	}
	if creator.ID == "" {
		creator.ID = uuid.NewString()
	}
	creator.Balance = decimal.Zero

	g := &Group{
		ID:           uuid.NewString(),
		Name:         name,
		Description:  description,
		Members:      []Member{creator},
		Expenses:     []Expense{},
		TotalBalance: decimal.Zero,
		CreatedAt:    s.now().UTC(),
	}
	s.groups[g.ID] = g
	s.groupOrder = append(s.groupOrder, g.ID)

	return g.clone(), nil
}

// UpdateGroup renames or re-describes a group. Nil fields are untouched.
func (s *Store) UpdateGroup(groupID string, name, description *string) (*Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.group(groupID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		if *name == "" {
			return nil, fmt.Errorf("%w: group name is required", ErrValidation)
		}
		g.Name = *name
	}
	if description != nil {
		g.Description = *description
	}
	return g.clone(), nil
}

// AddMember appends a member to the group. An id is assigned when empty;
// adding an id that is already a member is a conflict.
func (s *Store) AddMember(groupID string, m Member) (*Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.group(groupID)
	if err != nil {
		return nil, err
	}
	if m.Name == "" {
		return nil, fmt.Errorf("%w: member name is required", ErrValidation)
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	} else if g.hasMember(m.ID) {
		return nil, fmt.Errorf("%w: member %s already belongs to group %s", ErrStateConflict, m.ID, groupID)
	}
	m.Balance = decimal.Zero
	g.Members = append(g.Members, m)

	return g.clone(), nil
}

// RemoveMember removes a member from the group's member set. Members still
// referenced by an expense or recurring template cannot be removed.
func (s *Store) RemoveMember(groupID, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.group(groupID)
	if err != nil {
		return err
	}
	idx := -1
	for i, m := range g.Members {
		if m.ID == memberID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: member %s in group %s", ErrNotFound, memberID, groupID)
	}
	for _, e := range g.Expenses {
		if references(e.PaidBy, e.SplitBetween, memberID) {
			return fmt.Errorf("%w: member %s is referenced by expense %s", ErrValidation, memberID, e.ID)
		}
	}
	for _, id := range s.templateOrder {
		t := s.templates[id]
		if t.GroupID == groupID && references(t.PaidBy, t.SplitBetween, memberID) {
			return fmt.Errorf("%w: member %s is referenced by recurring template %s", ErrValidation, memberID, t.ID)
		}
	}

	g.Members = append(g.Members[:idx], g.Members[idx+1:]...)
	return nil
}

// AddExpense validates and records a new expense, updating the group total
// and all member balances before returning.
func (s *Store) AddExpense(groupID string, in ExpenseInput) (*Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.group(groupID)
	if err != nil {
		return nil, err
	}

	e := Expense{
		ID:           uuid.NewString(),
		Title:        in.Title,
		Amount:       in.Amount,
		PaidBy:       in.PaidBy,
		SplitBetween: append([]string(nil), in.SplitBetween...),
		SplitMethod:  in.SplitMethod,
		Splits:       append([]split.ShareInput(nil), in.Splits...),
		Category:     in.Category,
		Date:         DateOnly(s.now()),
	}
	if in.Date != nil {
		e.Date = DateOnly(*in.Date)
	}
	if e.Category == "" {
		e.Category = "General"
	}

	if err := s.validateExpense(g, &e); err != nil {
		return nil, err
	}
	if err := s.recordExpense(g, e); err != nil {
		return nil, err
	}

	out := e.clone()
	return &out, nil
}

// EditExpense applies the non-nil patch fields, re-validates, reconciles
// the group total against the amount delta and recomputes balances. The
// whole patch is rejected if any resulting field is invalid.
func (s *Store) EditExpense(groupID, expenseID string, patch ExpensePatch) (*Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.group(groupID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, e := range g.Expenses {
		if e.ID == expenseID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: expense %s in group %s", ErrNotFound, expenseID, groupID)
	}

	old := g.Expenses[idx]
	next := old.clone()
	if patch.Title != nil {
		next.Title = *patch.Title
	}
	if patch.Amount != nil {
		next.Amount = *patch.Amount
	}
	if patch.PaidBy != nil {
		next.PaidBy = *patch.PaidBy
	}
	if patch.SplitBetween != nil {
		next.SplitBetween = append([]string(nil), patch.SplitBetween...)
	}
	if patch.SplitMethod != nil {
		next.SplitMethod = *patch.SplitMethod
	}
	if patch.Splits != nil {
		next.Splits = append([]split.ShareInput(nil), patch.Splits...)
	}
	if patch.Category != nil {
		next.Category = *patch.Category
	}
	if patch.Date != nil {
		next.Date = DateOnly(*patch.Date)
	}
	modified := s.now().UTC()
	next.LastModified = &modified

	if err := s.validateExpense(g, &next); err != nil {
		return nil, err
	}

	g.Expenses[idx] = next
	g.TotalBalance = g.TotalBalance.Sub(old.Amount).Add(next.Amount)
	if err := s.recomputeBalances(g); err != nil {
		return nil, err
	}

	out := next.clone()
	return &out, nil
}

// DeleteExpense removes an expense, retracting its amount from the group
// total and recomputing balances.
func (s *Store) DeleteExpense(groupID, expenseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.group(groupID)
	if err != nil {
		return err
	}
	for i, e := range g.Expenses {
		if e.ID == expenseID {
			g.Expenses = append(g.Expenses[:i], g.Expenses[i+1:]...)
			g.TotalBalance = g.TotalBalance.Sub(e.Amount)
			return s.recomputeBalances(g)
		}
	}
	return fmt.Errorf("%w: expense %s in group %s", ErrNotFound, expenseID, groupID)
}

// AddRecurringTemplate validates and records a recurring template. The
// template does not affect the group total until materialized.
func (s *Store) AddRecurringTemplate(groupID string, in TemplateInput) (*RecurringTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.group(groupID)
	if err != nil {
		return nil, err
	}
	if _, err := recurrence.ParseCycle(string(in.RepeatCycle)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	t := &RecurringTemplate{
		ID:           uuid.NewString(),
		GroupID:      groupID,
		Title:        in.Title,
		Amount:       in.Amount,
		PaidBy:       in.PaidBy,
		SplitBetween: append([]string(nil), in.SplitBetween...),
		SplitMethod:  in.SplitMethod,
		Splits:       append([]split.ShareInput(nil), in.Splits...),
		Category:     in.Category,
		RepeatCycle:  in.RepeatCycle,
		StartDate:    DateOnly(s.now()),
		IsActive:     true,
		CreatedAt:    s.now().UTC(),
	}
	if in.StartDate != nil {
		t.StartDate = DateOnly(*in.StartDate)
	}
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}
	if t.Category == "" {
		t.Category = "General"
	}

	if err := s.validateTemplate(g, t); err != nil {
		return nil, err
	}
	next, err := recurrence.NextDueDate(t.StartDate, t.RepeatCycle, DateOnly(s.now()))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	t.NextDueDate = next

	s.templates[t.ID] = t
	s.templateOrder = append(s.templateOrder, t.ID)

	return t.clone(), nil
}

// EditRecurringTemplate applies the non-nil patch fields. When the start
// date or repeat cycle changes, the next due date is recomputed from
// scratch relative to today.
func (s *Store) EditRecurringTemplate(templateID string, patch TemplatePatch) (*RecurringTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.template(templateID)
	if err != nil {
		return nil, err
	}
	g, err := s.group(t.GroupID)
	if err != nil {
		return nil, err
	}

	next := t.clone()
	scheduleChanged := false
	if patch.Title != nil {
		next.Title = *patch.Title
	}
	if patch.Amount != nil {
		next.Amount = *patch.Amount
	}
	if patch.PaidBy != nil {
		next.PaidBy = *patch.PaidBy
	}
	if patch.SplitBetween != nil {
		next.SplitBetween = append([]string(nil), patch.SplitBetween...)
	}
	if patch.SplitMethod != nil {
		next.SplitMethod = *patch.SplitMethod
	}
	if patch.Splits != nil {
		next.Splits = append([]split.ShareInput(nil), patch.Splits...)
	}
	if patch.Category != nil {
		next.Category = *patch.Category
	}
	if patch.RepeatCycle != nil && *patch.RepeatCycle != next.RepeatCycle {
		if _, err := recurrence.ParseCycle(string(*patch.RepeatCycle)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		next.RepeatCycle = *patch.RepeatCycle
		scheduleChanged = true
	}
	if patch.StartDate != nil && !DateOnly(*patch.StartDate).Equal(next.StartDate) {
		next.StartDate = DateOnly(*patch.StartDate)
		scheduleChanged = true
	}

	if err := s.validateTemplate(g, next); err != nil {
		return nil, err
	}
	if scheduleChanged {
		due, err := recurrence.NextDueDate(next.StartDate, next.RepeatCycle, DateOnly(s.now()))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		next.NextDueDate = due
	}
	modified := s.now().UTC()
	next.LastModified = &modified

	s.templates[templateID] = next
	return next.clone(), nil
}

// DeleteRecurringTemplate removes a template permanently. Expenses it
// already materialized are untouched.
func (s *Store) DeleteRecurringTemplate(templateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.template(templateID); err != nil {
		return err
	}
	delete(s.templates, templateID)
	for i, id := range s.templateOrder {
		if id == templateID {
			s.templateOrder = append(s.templateOrder[:i], s.templateOrder[i+1:]...)
			break
		}
	}
	return nil
}

// ToggleRecurringTemplate flips a template's active flag. The next due date
// is left untouched. Toggling to the current state is a conflict.
func (s *Store) ToggleRecurringTemplate(templateID string, isActive bool) (*RecurringTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.template(templateID)
	if err != nil {
		return nil, err
	}
	if t.IsActive == isActive {
		state := "inactive"
		if isActive {
			state = "active"
		}
		return nil, fmt.Errorf("%w: template %s is already %s", ErrStateConflict, templateID, state)
	}
	t.IsActive = isActive
	return t.clone(), nil
}

// MaterializeDueRecurring turns every active template whose next due date
// is on or before referenceDate into concrete expenses, one per elapsed
// due date, advancing the due date past referenceDate as it goes. Calling
// it again with the same reference date creates nothing.
//
// Templates whose members no longer validate against their group are
// skipped; the others still materialize.
func (s *Store) MaterializeDueRecurring(referenceDate time.Time) ([]Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref := DateOnly(referenceDate)
	if referenceDate.IsZero() {
		ref = DateOnly(s.now())
	}

	var created []Expense
	for _, id := range s.templateOrder {
		t := s.templates[id]
		if !t.IsActive {
			continue
		}
		g, err := s.group(t.GroupID)
		if err != nil {
			continue
		}

		for !t.NextDueDate.After(ref) {
			e := Expense{
				ID:           uuid.NewString(),
				Title:        t.Title,
				Amount:       t.Amount,
				PaidBy:       t.PaidBy,
				SplitBetween: append([]string(nil), t.SplitBetween...),
				SplitMethod:  t.SplitMethod,
				Splits:       append([]split.ShareInput(nil), t.Splits...),
				Category:     t.Category,
				Date:         t.NextDueDate,
			}
			if err := s.validateExpense(g, &e); err != nil {
				break
			}
			if err := s.recordExpense(g, e); err != nil {
				break
			}
			created = append(created, e.clone())

			due, err := recurrence.NextDueDate(t.StartDate, t.RepeatCycle, t.NextDueDate)
			if err != nil || !due.After(t.NextDueDate) {
				break
			}
			t.NextDueDate = due
		}
	}

	return created, nil
}

// ListGroups returns all groups in creation order.
func (s *Store) ListGroups() []*Group {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Group, 0, len(s.groupOrder))
	for _, id := range s.groupOrder {
		out = append(out, s.groups[id].clone())
	}
	return out
}

// GetGroup returns a group by id.
func (s *Store) GetGroup(groupID string) (*Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.group(groupID)
	if err != nil {
		return nil, err
	}
	return g.clone(), nil
}

// ListExpenses returns a group's expenses in insertion order.
func (s *Store) ListExpenses(groupID string) ([]Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.group(groupID)
	if err != nil {
		return nil, err
	}
	out := make([]Expense, len(g.Expenses))
	for i, e := range g.Expenses {
		out[i] = e.clone()
	}
	return out, nil
}

// ListRecurringTemplates returns a group's templates, optionally filtered
// to active ones, in creation order.
func (s *Store) ListRecurringTemplates(groupID string, activeOnly bool) ([]*RecurringTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.group(groupID); err != nil {
		return nil, err
	}
	out := []*RecurringTemplate{}
	for _, id := range s.templateOrder {
		t := s.templates[id]
		if t.GroupID != groupID {
			continue
		}
		if activeOnly && !t.IsActive {
			continue
		}
		out = append(out, t.clone())
	}
	return out, nil
}

// GetRecurringTemplate returns a template by id.
func (s *Store) GetRecurringTemplate(templateID string) (*RecurringTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.template(templateID)
	if err != nil {
		return nil, err
	}
	return t.clone(), nil
}

// Balances returns the projected net balance of every member of a group.
func (s *Store) Balances(groupID string) (map[string]decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.group(groupID)
	if err != nil {
		return nil, err
	}
	return ProjectBalances(g)
}

// group and template look up internal records; callers must hold the lock.

func (s *Store) group(id string) (*Group, error) {
	g, ok := s.groups[id]
	if !ok {
		return nil, fmt.Errorf("%w: group %s", ErrNotFound, id)
	}
	return g, nil
}

func (s *Store) template(id string) (*RecurringTemplate, error) {
	t, ok := s.templates[id]
	if !ok {
		return nil, fmt.Errorf("%w: recurring template %s", ErrNotFound, id)
	}
	return t, nil
}

// recordExpense appends a validated expense, updates the group total and
// recomputes balances. Callers must hold the lock.
func (s *Store) recordExpense(g *Group, e Expense) error {
	g.Expenses = append(g.Expenses, e)
	g.TotalBalance = g.TotalBalance.Add(e.Amount)
	return s.recomputeBalances(g)
}

// recomputeBalances refreshes the derived Balance field of every member
// from a full projection.
func (s *Store) recomputeBalances(g *Group) error {
	balances, err := ProjectBalances(g)
	if err != nil {
		return err
	}
	for i := range g.Members {
		g.Members[i].Balance = balances[g.Members[i].ID]
	}
	return nil
}

// validateExpense checks an expense's fields against its group. Nothing is
// mutated on failure.
func (s *Store) validateExpense(g *Group, e *Expense) error {
	return s.validateSplitFields(g, e.Title, e.Amount, e.PaidBy, e.SplitBetween, e.SplitMethod, e.Splits)
}

func (s *Store) validateTemplate(g *Group, t *RecurringTemplate) error {
	return s.validateSplitFields(g, t.Title, t.Amount, t.PaidBy, t.SplitBetween, t.SplitMethod, t.Splits)
}

func (s *Store) validateSplitFields(g *Group, title string, amount decimal.Decimal, paidBy string, splitBetween []string, method split.Method, splits []split.ShareInput) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if len(splitBetween) == 0 {
		return fmt.Errorf("%w: split between must not be empty", ErrValidation)
	}
	if !g.hasMember(paidBy) {
		return fmt.Errorf("%w: payer %s is not a member of group %s", ErrValidation, paidBy, g.ID)
	}
	members := g.memberIDs()
	seen := make(map[string]bool, len(splitBetween))
	for _, id := range splitBetween {
		if !members[id] {
			return fmt.Errorf("%w: participant %s is not a member of group %s", ErrValidation, id, g.ID)
		}
		if seen[id] {
			return fmt.Errorf("%w: participant %s listed twice", ErrValidation, id)
		}
		seen[id] = true
	}
	for _, sp := range splits {
		if !seen[sp.MemberID] {
			return fmt.Errorf("%w: split data for %s, who is not among the participants", ErrValidation, sp.MemberID)
		}
	}

	strategy, err := s.factory.Create(method)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := strategy.Validate(amount, shareInputs(splitBetween, splits)); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// references reports whether memberID is the payer or a participant.
func references(paidBy string, splitBetween []string, memberID string) bool {
	if paidBy == memberID {
		return true
	}
	for _, id := range splitBetween {
		if id == memberID {
			return true
		}
	}
	return false
}
