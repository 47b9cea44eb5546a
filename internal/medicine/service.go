package medicine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=medicine
type Repository interface {
	CreateMedicine(ctx context.Context, m *Medicine) error
	GetMedicine(ctx context.Context, id uuid.UUID) (*Medicine, error)
	ListMedicines(ctx context.Context, filter ListFilter) ([]*Medicine, error)
	UpdateMedicine(ctx context.Context, m *Medicine) error
	DeleteMedicine(ctx context.Context, id uuid.UUID) error

	// FindMedicineByBatch looks a delivery line up by its name and batch
	// number. The name match is case-insensitive.
	FindMedicineByBatch(ctx context.Context, name, batch string) (*Medicine, error)

	// DecrementStock subtracts qty from quantity on hand only if enough is
	// available, in a single statement. It reports whether the decrement
	// was applied.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error)

	// IncrementStock adds qty back. It reports whether a row was touched;
	// a missing medicine is not an error.
	IncrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error)

	MedicineExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name          string
	Description   string
	Price         int64
	PurchasePrice int64
	Quantity      int
	ExpiryDate    time.Time
	Manufacturer  string
	BatchNumber   string
	Schedule      Schedule
}

type ListFilter struct {
	Name           *string
	ExpiringBefore *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Medicine, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	if params.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}

	if !params.Schedule.Valid() {
		return nil, fmt.Errorf("unknown schedule %q", params.Schedule)
	}

	m := &Medicine{
		Name:          params.Name,
		Description:   params.Description,
		Price:         params.Price,
		PurchasePrice: params.PurchasePrice,
		Quantity:      params.Quantity,
		ExpiryDate:    params.ExpiryDate,
		Manufacturer:  params.Manufacturer,
		BatchNumber:   params.BatchNumber,
		Schedule:      params.Schedule,
	}
	if err := s.repo.CreateMedicine(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

// Receive records a stock delivery. A row already holding the same name
// and batch number has its quantity topped up; anything else, including
// lines without a batch number, becomes a new medicine.
func (s *Service) Receive(ctx context.Context, params CreateParams) (*Medicine, error) {
	if params.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}

	if params.Name == "" || params.BatchNumber == "" {
		return s.Create(ctx, params)
	}

	existing, err := s.repo.FindMedicineByBatch(ctx, params.Name, params.BatchNumber)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return s.Create(ctx, params)
		}

		return nil, err
	}

	if params.Quantity > 0 {
		if _, err := s.repo.IncrementStock(ctx, existing.ID, params.Quantity); err != nil {
			return nil, fmt.Errorf("restocking %s: %w", existing.Name, err)
		}
	}

	return s.repo.GetMedicine(ctx, existing.ID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	return s.repo.GetMedicine(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Medicine, error) {
	return s.repo.ListMedicines(ctx, filter)
}

func (s *Service) Update(ctx context.Context, m *Medicine) error {
	if !m.Schedule.Valid() {
		return fmt.Errorf("unknown schedule %q", m.Schedule)
	}

	return s.repo.UpdateMedicine(ctx, m)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteMedicine(ctx, id)
}

// Reserve takes qty units out of stock. The decrement is conditional on
// availability so concurrent reservations cannot drive quantity below zero.
func (s *Service) Reserve(ctx context.Context, id uuid.UUID, qty int) error {
	if qty < 1 {
		return fmt.Errorf("reserve quantity must be at least 1, got %d", qty)
	}

	applied, err := s.repo.DecrementStock(ctx, id, qty)
	if err != nil {
		return fmt.Errorf("reserving stock: %w", err)
	}

	if applied {
		return nil
	}

	// Distinguish a missing medicine from one that is simply short.
	exists, err := s.repo.MedicineExists(ctx, id)
	if err != nil {
		return fmt.Errorf("checking medicine: %w", err)
	}

	if !exists {
		return ErrNotFound
	}

	return ErrInsufficientStock
}

// Release returns qty units to stock. A medicine that was deleted after
// being invoiced is silently skipped: the stock it would restore no longer
// exists anywhere.
func (s *Service) Release(ctx context.Context, id uuid.UUID, qty int) error {
	if qty < 1 {
		return fmt.Errorf("release quantity must be at least 1, got %d", qty)
	}

	if _, err := s.repo.IncrementStock(ctx, id, qty); err != nil {
		return fmt.Errorf("releasing stock: %w", err)
	}

	return nil
}
