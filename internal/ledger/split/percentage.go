package split

import "github.com/shopspring/decimal"

// =============================================================================
// PERCENTAGE SPLIT STRATEGY
// Divides the expense based on stated percentages for each participant
// =============================================================================

// PercentageStrategy implements the Strategy interface for percentage-based
// splits.
type PercentageStrategy struct{}

// Method returns the split method identifier.
func (s *PercentageStrategy) Method() Method {
	return MethodPercentage
}

// Validate checks if the inputs are valid for a percentage split.
// Participants without any split data at all are valid and degrade to an
// equal split; partially filled data is rejected.
func (s *PercentageStrategy) Validate(totalAmount decimal.Decimal, participants []ShareInput) error {
	if err := validateCommon(totalAmount, participants); err != nil {
		return err
	}
	if hasNoSplitData(participants) {
		return nil
	}

	sum := decimal.Zero
	for _, p := range participants {
		if p.Percentage == nil {
			return ErrMissingPercentage
		}
		if p.Percentage.IsNegative() || p.Percentage.GreaterThan(hundred) {
			return ErrPercentageOutOfRange
		}
		sum = sum.Add(*p.Percentage)
	}
	if !withinEpsilon(sum, hundred) {
		return ErrPercentagesMismatch
	}
	return nil
}

// Calculate divides the total amount by each participant's percentage,
// rounding to two decimals. Rounding drift against the total is assigned
// to the first participant so the shares sum exactly to the total.
func (s *PercentageStrategy) Calculate(totalAmount decimal.Decimal, participants []ShareInput) ([]Share, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}
	if hasNoSplitData(participants) {
		return (&EqualStrategy{}).Calculate(totalAmount, participants)
	}

	shares := make([]Share, len(participants))
	sum := decimal.Zero
	for i, p := range participants {
		amount := totalAmount.Mul(*p.Percentage).Div(hundred).Round(2)
		sum = sum.Add(amount)
		shares[i] = Share{MemberID: p.MemberID, Amount: amount}
	}

	if residual := totalAmount.Sub(sum); !residual.IsZero() {
		shares[0].Amount = shares[0].Amount.Add(residual)
	}

	return shares, nil
}
