package medicine

import (
	"time"

	"github.com/google/uuid"
)

// Schedule is the Indian drug schedule classification printed on the label.
type Schedule string

const (
	ScheduleNone Schedule = ""
	ScheduleH    Schedule = "H"
	ScheduleH1   Schedule = "H1"
	ScheduleX    Schedule = "X"
	ScheduleY    Schedule = "Y"
	ScheduleZ    Schedule = "Z"
)

// Valid reports whether s is a known schedule classification.
func (s Schedule) Valid() bool {
	switch s {
	case ScheduleNone, ScheduleH, ScheduleH1, ScheduleX, ScheduleY, ScheduleZ:
		return true
	}

	return false
}

// Medicine is a stocked pharmacy item. Prices are in paise.
type Medicine struct {
	ID            uuid.UUID
	Name          string
	Description   string
	Price         int64
	PurchasePrice int64
	Quantity      int
	ExpiryDate    time.Time
	Manufacturer  string
	BatchNumber   string
	Schedule      Schedule
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
