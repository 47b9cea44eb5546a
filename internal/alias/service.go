// Package alias maps the item names suppliers print on stock exports to the
// names the pharmacy catalogue uses. Distributors abbreviate freely
// ("PARA 500 TAB"), so imports run raw names through here before staff see
// the preview.
package alias

import (
	"context"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=alias
type Repository interface {
	FindCanonical(ctx context.Context, rawName string) (string, error)
	CreateAlias(ctx context.Context, rawPattern, canonicalName string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest tries to find the catalogue name for a raw supplier item name.
// Returns empty string if no alias matches.
func (s *Service) Suggest(ctx context.Context, rawName string) (string, error) {
	return s.repo.FindCanonical(ctx, rawName)
}

// Learn remembers a new mapping between a raw supplier pattern and the
// catalogue name staff corrected it to.
func (s *Service) Learn(ctx context.Context, rawPattern, canonicalName string) error {
	return s.repo.CreateAlias(ctx, rawPattern, canonicalName)
}
