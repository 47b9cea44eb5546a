package invoice

import (
	"time"

	"github.com/google/uuid"
)

// BillType selects which patient fields apply on the printed bill.
type BillType string

const (
	BillTypeHospital BillType = "hospital"
	BillTypeMedical  BillType = "medical"
)

// Valid reports whether b is a known bill type.
func (b BillType) Valid() bool {
	return b == BillTypeHospital || b == BillTypeMedical
}

// MedicineRef is the resolved summary of a stocked medicine referenced by a
// line item. Loaded via JOIN on the read side.
type MedicineRef struct {
	ID          uuid.UUID
	Name        string
	BatchNumber string
	Schedule    string
	ExpiryDate  time.Time
}

// LineItem is a single billed entry. MedicineID is nil for free-text
// hospital charges; Name overrides the display name either way.
type LineItem struct {
	MedicineID *uuid.UUID
	Name       string
	Quantity   int
	Price      int64
	Medicine   *MedicineRef
}

// DisplayName returns the name to print for the line.
func (li LineItem) DisplayName() string {
	if li.Name != "" {
		return li.Name
	}

	if li.Medicine != nil {
		return li.Medicine.Name
	}

	return ""
}

// Amount is the line total in paise.
func (li LineItem) Amount() int64 {
	return int64(li.Quantity) * li.Price
}

// Invoice is a hospital or pharmacy bill. All amounts are in paise.
// TotalAmount is the subtotal over line items; GrandTotal applies discount
// and tax and may be negative.
type Invoice struct {
	ID              uuid.UUID
	CustomerName    string
	CustomerContact string
	PatientAge      string
	PatientSex      string
	PatientAddress  string
	ConsultantName  string
	AdmitDate       string
	DischargeDate   string
	IPDNo           string
	RegNo           string
	BillType        BillType
	Items           []LineItem
	TotalAmount     int64
	Discount        int64
	Tax             int64
	GrandTotal      int64
	AmountInWords   string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
