package medicine

import "errors"

var (
	// ErrNotFound is returned when no medicine matches the given id.
	ErrNotFound = errors.New("medicine not found")

	// ErrInsufficientStock is returned by Reserve when quantity on hand is
	// lower than the requested quantity.
	ErrInsufficientStock = errors.New("insufficient stock")
)
