package app

import (
	"context"
	"fmt"
	"time"

	"github.com/dotgov/registrar/internal/domain"
)

// DomainService serves the registered domains listings.
type DomainService struct {
	repo domain.DomainRepository
}

// NewDomainService creates a service over the given repository.
func NewDomainService(repo domain.DomainRepository) *DomainService {
	return &DomainService{repo: repo}
}

// Create persists a new registered domain.
func (s *DomainService) Create(ctx context.Context, name, portfolioID, memberID string, expiration time.Time) (domain.Domain, error) {
	id, err := generateID()
	if err != nil {
		return domain.Domain{}, fmt.Errorf("generating domain id: %w", err)
	}

	d := domain.NewDomain(id, name, portfolioID, memberID, expiration)

	if err := s.repo.Create(ctx, d); err != nil {
		return domain.Domain{}, fmt.Errorf("creating domain: %w", err)
	}

	return d, nil
}

// GetByID returns a domain by its unique identifier.
func (s *DomainService) GetByID(ctx context.Context, id string) (domain.Domain, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns one page of domains matching the query. A member filter in
// the query narrows the listing to domains that member manages.
func (s *DomainService) List(ctx context.Context, query domain.ListQuery) (domain.Page[domain.Domain], error) {
	return s.repo.List(ctx, query)
}
