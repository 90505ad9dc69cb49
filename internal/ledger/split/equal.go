package split

import "github.com/shopspring/decimal"

// =============================================================================
// EQUAL SPLIT STRATEGY
// Divides the expense evenly among all participants
// =============================================================================

// EqualStrategy implements the Strategy interface for equal splits.
type EqualStrategy struct{}

// Method returns the split method identifier.
func (s *EqualStrategy) Method() Method {
	return MethodEqual
}

// Validate checks if the inputs are valid for an equal split.
func (s *EqualStrategy) Validate(totalAmount decimal.Decimal, participants []ShareInput) error {
	return validateCommon(totalAmount, participants)
}

// Calculate divides the total amount evenly among all participants.
// Each share is floored to two decimals and the remainder goes to the
// first participant, so the shares always sum exactly to the total.
func (s *EqualStrategy) Calculate(totalAmount decimal.Decimal, participants []ShareInput) ([]Share, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}

	count := decimal.NewFromInt(int64(len(participants)))
	base := totalAmount.Div(count).RoundDown(2)
	remainder := totalAmount.Sub(base.Mul(count))

	shares := make([]Share, len(participants))
	for i, p := range participants {
		amount := base
		if i == 0 {
			amount = amount.Add(remainder)
		}
		shares[i] = Share{MemberID: p.MemberID, Amount: amount}
	}

	return shares, nil
}
