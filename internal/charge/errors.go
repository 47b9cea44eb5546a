package charge

import "errors"

// ErrNotFound is returned when no charge matches the given id.
var ErrNotFound = errors.New("service not found")
