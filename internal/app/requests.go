package app

import (
	"context"
	"fmt"

	"github.com/dotgov/registrar/internal/domain"
)

// RequestService orchestrates the domain request lifecycle.
type RequestService struct {
	repo      domain.RequestRepository
	publisher domain.EventPublisher
	validator domain.TransitionValidator
}

// NewRequestService creates a service with the given adapters.
func NewRequestService(repo domain.RequestRepository, publisher domain.EventPublisher, validator domain.TransitionValidator) *RequestService {
	return &RequestService{
		repo:      repo,
		publisher: publisher,
		validator: validator,
	}
}

// Create persists a new request in the "started" state.
func (s *RequestService) Create(ctx context.Context, requestedDomain, portfolioID, creatorEmail string) (domain.Request, error) {
	id, err := generateID()
	if err != nil {
		return domain.Request{}, fmt.Errorf("generating request id: %w", err)
	}

	req := domain.NewRequest(id, requestedDomain, portfolioID, creatorEmail)

	if err := s.repo.Create(ctx, req); err != nil {
		return domain.Request{}, fmt.Errorf("creating request: %w", err)
	}

	return req, nil
}

// GetByID returns a request by its unique identifier.
func (s *RequestService) GetByID(ctx context.Context, id string) (domain.Request, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns one page of requests matching the query. Approved requests
// never appear: the repository excludes them from the filtered set.
func (s *RequestService) List(ctx context.Context, query domain.ListQuery) (domain.Page[domain.Request], error) {
	return s.repo.List(ctx, query)
}

// Transition applies a lifecycle event to a request, changing its status
// and notifying the requester asynchronously.
func (s *RequestService) Transition(ctx context.Context, id string, event domain.Event) (domain.Request, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Request{}, err
	}

	newStatus, err := s.validator.Apply(ctx, req.Status, event)
	if err != nil {
		return domain.Request{}, err
	}

	req.Status = newStatus
	if event == domain.EventSubmit {
		req.SubmissionDate = nowUTC()
	}

	if err := s.repo.Update(ctx, req); err != nil {
		return domain.Request{}, fmt.Errorf("updating request: %w", err)
	}

	if err := s.publisher.Publish(ctx, event, req); err != nil {
		return domain.Request{}, fmt.Errorf("publishing event %q: %w", event, err)
	}

	return req, nil
}

// Delete removes a request. Only started and withdrawn requests may be
// deleted; anything further along belongs to the review pipeline.
func (s *RequestService) Delete(ctx context.Context, id string) error {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !req.IsDeletable() {
		return &domain.NotDeletableError{ID: id, Status: req.Status}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting request: %w", err)
	}

	return nil
}
