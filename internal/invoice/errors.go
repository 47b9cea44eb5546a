package invoice

import "errors"

var (
	// ErrNotFound is returned when no invoice matches the given id.
	ErrNotFound = errors.New("invoice not found")

	// ErrValidation wraps rejected input: empty item lists, non-positive
	// quantities, negative prices, unknown bill types.
	ErrValidation = errors.New("invalid invoice")
)
