package split

import "github.com/shopspring/decimal"

// =============================================================================
// UNEQUAL SPLIT STRATEGY
// Each participant owes an explicitly stated amount (must sum to total)
// =============================================================================

// UnequalStrategy implements the Strategy interface for explicitly stated
// per-member amounts.
type UnequalStrategy struct{}

// Method returns the split method identifier.
func (s *UnequalStrategy) Method() Method {
	return MethodUnequal
}

// Validate checks if the inputs are valid for an unequal split.
// Participants without any split data at all are valid and degrade to an
// equal split; partially filled data is rejected.
func (s *UnequalStrategy) Validate(totalAmount decimal.Decimal, participants []ShareInput) error {
	if err := validateCommon(totalAmount, participants); err != nil {
		return err
	}
	if hasNoSplitData(participants) {
		return nil
	}

	sum := decimal.Zero
	for _, p := range participants {
		if p.Amount == nil {
			return ErrMissingAmount
		}
		if p.Amount.IsNegative() {
			return ErrNegativeShare
		}
		sum = sum.Add(*p.Amount)
	}
	if !withinEpsilon(sum, totalAmount) {
		return ErrAmountsMismatch
	}
	return nil
}

// Calculate returns the stated amount for each participant, rounded to two
// decimals. Any sub-cent residual against the total is assigned to the
// first participant so the shares sum exactly to the total.
func (s *UnequalStrategy) Calculate(totalAmount decimal.Decimal, participants []ShareInput) ([]Share, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}
	if hasNoSplitData(participants) {
		return (&EqualStrategy{}).Calculate(totalAmount, participants)
	}

	shares := make([]Share, len(participants))
	sum := decimal.Zero
	for i, p := range participants {
		amount := p.Amount.Round(2)
		sum = sum.Add(amount)
		shares[i] = Share{MemberID: p.MemberID, Amount: amount}
	}

	if residual := totalAmount.Sub(sum); !residual.IsZero() {
		shares[0].Amount = shares[0].Amount.Add(residual)
	}

	return shares, nil
}
