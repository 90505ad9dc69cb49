package ledger

import "errors"

// Error categories. Specific failures wrap one of these so callers can
// classify with errors.Is without matching on message text.
var (
	// ErrNotFound indicates an unknown group, expense or template id.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates rejected input: a non-member payer or
	// participant, an empty split list, a non-positive amount, or split
	// data that does not sum to the expense total.
	ErrValidation = errors.New("validation failed")

	// ErrStateConflict indicates an operation that contradicts current
	// state, such as toggling a template to the state it already has.
	ErrStateConflict = errors.New("state conflict")
)
