package charge

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=charge
type Repository interface {
	CreateCharge(ctx context.Context, c *Charge) error
	GetCharge(ctx context.Context, id uuid.UUID) (*Charge, error)
	ListCharges(ctx context.Context) ([]*Charge, error)
	UpdateCharge(ctx context.Context, c *Charge) error
	DeleteCharge(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name        string
	Description string
	Price       int64
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Charge, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	if params.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}

	c := &Charge{
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
	}
	if err := s.repo.CreateCharge(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Charge, error) {
	return s.repo.GetCharge(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Charge, error) {
	return s.repo.ListCharges(ctx)
}

func (s *Service) Update(ctx context.Context, c *Charge) error {
	if c.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}

	return s.repo.UpdateCharge(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCharge(ctx, id)
}
