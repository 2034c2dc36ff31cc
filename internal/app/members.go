package app

import (
	"context"
	"fmt"

	"github.com/dotgov/registrar/internal/domain"
)

// MemberService serves the portfolio members listings.
type MemberService struct {
	repo domain.MemberRepository
}

// NewMemberService creates a service over the given repository.
func NewMemberService(repo domain.MemberRepository) *MemberService {
	return &MemberService{repo: repo}
}

// Create persists a new portfolio member.
func (s *MemberService) Create(ctx context.Context, email, displayName, portfolioID string, isAdmin bool) (domain.Member, error) {
	id, err := generateID()
	if err != nil {
		return domain.Member{}, fmt.Errorf("generating member id: %w", err)
	}

	m := domain.NewMember(id, email, displayName, portfolioID, isAdmin)

	if err := s.repo.Create(ctx, m); err != nil {
		return domain.Member{}, fmt.Errorf("creating member: %w", err)
	}

	return m, nil
}

// List returns one page of members matching the query.
func (s *MemberService) List(ctx context.Context, query domain.ListQuery) (domain.Page[domain.Member], error) {
	return s.repo.List(ctx, query)
}

// Remove deletes a member from their portfolio. The member's domains stay
// behind unassigned.
func (s *MemberService) Remove(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("removing member: %w", err)
	}

	return nil
}
