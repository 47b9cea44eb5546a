package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error)
	ReplaceInvoice(ctx context.Context, inv *Invoice) error
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
}

// StockLedger is the slice of the medicine service the reconciler needs.
type StockLedger interface {
	Reserve(ctx context.Context, id uuid.UUID, qty int) error
	Release(ctx context.Context, id uuid.UUID, qty int) error
}

// Service keeps the stock ledger consistent with invoice lifecycle events
// and computes monetary totals.
type Service struct {
	repo   Repository
	ledger StockLedger
}

func NewService(repo Repository, ledger StockLedger) *Service {
	return &Service{repo: repo, ledger: ledger}
}

type ItemParams struct {
	MedicineID *uuid.UUID
	Name       string
	Quantity   int
	Price      int64
}

type CreateParams struct {
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
	Items           []ItemParams
	Discount        int64
	Tax             int64
	AmountInWords   string
}

type UpdateParams struct {
	CustomerName    *string
	CustomerContact *string
	PatientAge      *string
	PatientSex      *string
	PatientAddress  *string
	ConsultantName  *string
	AdmitDate       *string
	DischargeDate   *string
	IPDNo           *string
	RegNo           *string
	BillType        *BillType
	Items           []ItemParams // nil means the item list is untouched
	Discount        *int64
	Tax             *int64
	AmountInWords   *string
}

type ListFilter struct {
	BillType  *BillType
	StartDate *time.Time
	EndDate   *time.Time
}

func validateItems(items []ItemParams) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrValidation)
	}

	for i, it := range items {
		if it.Quantity < 1 {
			return fmt.Errorf("%w: item %d: quantity must be at least 1", ErrValidation, i+1)
		}

		if it.Price < 0 {
			return fmt.Errorf("%w: item %d: price cannot be negative", ErrValidation, i+1)
		}

		if it.MedicineID == nil && it.Name == "" {
			return fmt.Errorf("%w: item %d: a name is required when no medicine is referenced", ErrValidation, i+1)
		}
	}

	return nil
}

func subtotal(items []ItemParams) int64 {
	var total int64
	for _, it := range items {
		total += int64(it.Quantity) * it.Price
	}

	return total
}

func toLineItems(items []ItemParams) []LineItem {
	lis := make([]LineItem, len(items))
	for i, it := range items {
		lis[i] = LineItem{
			MedicineID: it.MedicineID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			Price:      it.Price,
		}
	}

	return lis
}

type reservation struct {
	medicineID uuid.UUID
	quantity   int
}

// reserveItems stages a reservation for every medicine-referencing item.
// On any failure the reservations staged so far are released again, so a
// failed call leaves stock exactly as it found it.
func (s *Service) reserveItems(ctx context.Context, items []ItemParams) ([]reservation, error) {
	var staged []reservation

	for i, it := range items {
		if it.MedicineID == nil {
			continue
		}

		if err := s.ledger.Reserve(ctx, *it.MedicineID, it.Quantity); err != nil {
			s.releaseReservations(ctx, staged)
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}

		staged = append(staged, reservation{medicineID: *it.MedicineID, quantity: it.Quantity})
	}

	return staged, nil
}

func (s *Service) releaseReservations(ctx context.Context, staged []reservation) {
	for _, r := range staged {
		// Release tolerates missing medicines and only fails on storage
		// errors; nothing useful can be done with one here.
		_ = s.ledger.Release(ctx, r.medicineID, r.quantity)
	}
}

func (s *Service) releaseLineItems(ctx context.Context, items []LineItem) {
	for _, li := range items {
		if li.MedicineID == nil {
			continue
		}

		_ = s.ledger.Release(ctx, *li.MedicineID, li.Quantity)
	}
}

// Create validates the item list, reserves stock for every
// medicine-referencing line all-or-nothing, then persists the invoice.
// Line prices are taken as supplied by the caller; they are not checked
// against the stored medicine price.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Invoice, error) {
	if params.CustomerName == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrValidation)
	}

	if err := validateItems(params.Items); err != nil {
		return nil, err
	}

	billType := params.BillType
	if billType == "" {
		billType = BillTypeMedical
	}

	if !billType.Valid() {
		return nil, fmt.Errorf("%w: unknown bill type %q", ErrValidation, params.BillType)
	}

	staged, err := s.reserveItems(ctx, params.Items)
	if err != nil {
		return nil, err
	}

	total := subtotal(params.Items)

	inv := &Invoice{
		CustomerName:    params.CustomerName,
		CustomerContact: params.CustomerContact,
		PatientAge:      params.PatientAge,
		PatientSex:      params.PatientSex,
		PatientAddress:  params.PatientAddress,
		ConsultantName:  params.ConsultantName,
		AdmitDate:       params.AdmitDate,
		DischargeDate:   params.DischargeDate,
		IPDNo:           params.IPDNo,
		RegNo:           params.RegNo,
		BillType:        billType,
		Items:           toLineItems(params.Items),
		TotalAmount:     total,
		Discount:        params.Discount,
		Tax:             params.Tax,
		GrandTotal:      total - params.Discount + params.Tax,
		AmountInWords:   params.AmountInWords,
	}

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		s.releaseReservations(ctx, staged)
		return nil, err
	}

	// Re-read so line items carry resolved medicine references.
	return s.repo.GetInvoice(ctx, inv.ID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, filter)
}

// Update applies partial-update semantics: a supplied field overwrites the
// stored value, an omitted field is kept. When a new item list is supplied
// the previous lines are released first and the new lines reserved
// all-or-nothing; on reservation failure the stored invoice is left
// unmodified (the old stock has already been returned to the shelf, which
// matches a failed re-bill: the goods go back until billing succeeds).
// A persist failure releases the newly reserved lines again.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	var staged []reservation

	if params.Items != nil {
		if err := validateItems(params.Items); err != nil {
			return nil, err
		}

		s.releaseLineItems(ctx, inv.Items)

		staged, err = s.reserveItems(ctx, params.Items)
		if err != nil {
			return nil, err
		}

		inv.Items = toLineItems(params.Items)
		inv.TotalAmount = subtotal(params.Items)
	}

	if params.CustomerName != nil {
		inv.CustomerName = *params.CustomerName
	}

	if params.CustomerContact != nil {
		inv.CustomerContact = *params.CustomerContact
	}

	if params.PatientAge != nil {
		inv.PatientAge = *params.PatientAge
	}

	if params.PatientSex != nil {
		inv.PatientSex = *params.PatientSex
	}

	if params.PatientAddress != nil {
		inv.PatientAddress = *params.PatientAddress
	}

	if params.ConsultantName != nil {
		inv.ConsultantName = *params.ConsultantName
	}

	if params.AdmitDate != nil {
		inv.AdmitDate = *params.AdmitDate
	}

	if params.DischargeDate != nil {
		inv.DischargeDate = *params.DischargeDate
	}

	if params.IPDNo != nil {
		inv.IPDNo = *params.IPDNo
	}

	if params.RegNo != nil {
		inv.RegNo = *params.RegNo
	}

	if params.BillType != nil {
		if !params.BillType.Valid() {
			return nil, fmt.Errorf("%w: unknown bill type %q", ErrValidation, *params.BillType)
		}

		inv.BillType = *params.BillType
	}

	if params.Discount != nil {
		inv.Discount = *params.Discount
	}

	if params.Tax != nil {
		inv.Tax = *params.Tax
	}

	if params.AmountInWords != nil {
		inv.AmountInWords = *params.AmountInWords
	}

	inv.GrandTotal = inv.TotalAmount - inv.Discount + inv.Tax

	if err := s.repo.ReplaceInvoice(ctx, inv); err != nil {
		s.releaseReservations(ctx, staged)
		return nil, err
	}

	return s.repo.GetInvoice(ctx, inv.ID)
}

// Delete releases the stock held by every surviving medicine-referencing
// line, then removes the invoice.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return err
	}

	s.releaseLineItems(ctx, inv.Items)

	return s.repo.DeleteInvoice(ctx, id)
}
