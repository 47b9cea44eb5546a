package charge

import (
	"time"

	"github.com/google/uuid"
)

// Charge is a flat-priced billable hospital service (consultation, room
// rent, dressing, ...). Price is in paise. There is no stock concept.
type Charge struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       int64
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
