// Package split computes per-member owed shares for an expense.
//
// Each split method is a Strategy; a Factory maps the method name to its
// implementation. Calculations are pure and always return shares that sum
// exactly to the expense amount.
package split

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Method identifies how an expense is divided among its participants.
type Method string

const (
	MethodEqual      Method = "equal"
	MethodUnequal    Method = "unequal"
	MethodPercentage Method = "percentage"
)

// ShareInput names a participant together with the optional per-member
// split data their method requires.
type ShareInput struct {
	MemberID   string           `json:"member_id"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`     // for unequal
	Percentage *decimal.Decimal `json:"percentage,omitempty"` // for percentage
}

// Share is the calculated amount one participant owes.
type Share struct {
	MemberID string          `json:"member_id"`
	Amount   decimal.Decimal `json:"amount"`
}

// Strategy is implemented by every split method.
type Strategy interface {
	// Calculate computes each participant's share of totalAmount.
	// Output order follows input order; any rounding remainder is
	// assigned to the first participant.
	Calculate(totalAmount decimal.Decimal, participants []ShareInput) ([]Share, error)

	// Method returns the method identifier for this strategy.
	Method() Method

	// Validate checks the inputs without calculating.
	Validate(totalAmount decimal.Decimal, participants []ShareInput) error
}

// Factory creates split strategies by method name.
type Factory struct{}

// NewFactory creates a new factory instance.
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the strategy implementation for the given method.
func (f *Factory) Create(method Method) (Strategy, error) {
	switch method {
	case MethodEqual:
		return &EqualStrategy{}, nil
	case MethodUnequal:
		return &UnequalStrategy{}, nil
	case MethodPercentage:
		return &PercentageStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
}

// CreateFromString creates a strategy from a raw method string.
func (f *Factory) CreateFromString(method string) (Strategy, error) {
	return f.Create(Method(method))
}

var (
	ErrUnknownMethod        = errors.New("unknown split method")
	ErrNoParticipants       = errors.New("at least one participant is required")
	ErrNonPositiveAmount    = errors.New("amount must be positive")
	ErrNegativeShare        = errors.New("share amounts cannot be negative")
	ErrMissingAmount        = errors.New("amount required for all participants")
	ErrMissingPercentage    = errors.New("percentage required for all participants")
	ErrPercentageOutOfRange = errors.New("percentage must be between 0 and 100")
	ErrAmountsMismatch      = errors.New("share amounts must sum to the total amount")
	ErrPercentagesMismatch  = errors.New("percentages must sum to 100")
)

// epsilon is the tolerance for user-supplied sums (amounts against the
// total, percentages against 100).
var epsilon = decimal.New(1, -2) // 0.01

var hundred = decimal.NewFromInt(100)

// withinEpsilon reports whether a and b differ by at most epsilon.
func withinEpsilon(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(epsilon)
}

// validateCommon checks the constraints shared by every method.
func validateCommon(totalAmount decimal.Decimal, participants []ShareInput) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if !totalAmount.IsPositive() {
		return ErrNonPositiveAmount
	}
	return nil
}

// hasNoSplitData reports whether none of the participants carries explicit
// amount or percentage data. The UI submits such requests for unequal and
// percentage methods before the user fills in the breakdown; they degrade
// to an equal split.
func hasNoSplitData(participants []ShareInput) bool {
	for _, p := range participants {
		if p.Amount != nil || p.Percentage != nil {
			return false
		}
	}
	return true
}
