package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dotgov/registrar/internal/app"
	"github.com/dotgov/registrar/internal/domain"
)

// --- Mocks ---

type mockRequestRepo struct {
	requests map[string]domain.Request
	deleted  []string
}

func newMockRequestRepo() *mockRequestRepo {
	return &mockRequestRepo{requests: make(map[string]domain.Request)}
}

func (m *mockRequestRepo) Create(_ context.Context, req domain.Request) error {
	m.requests[req.ID] = req
	return nil
}

func (m *mockRequestRepo) GetByID(_ context.Context, id string) (domain.Request, error) {
	req, ok := m.requests[id]
	if !ok {
		return domain.Request{}, domain.ErrRequestNotFound
	}
	return req, nil
}

func (m *mockRequestRepo) List(_ context.Context, _ domain.ListQuery) (domain.Page[domain.Request], error) {
	out := make([]domain.Request, 0, len(m.requests))
	for _, req := range m.requests {
		out = append(out, req)
	}
	return domain.NewPage(out, 1, len(out), len(out)), nil
}

func (m *mockRequestRepo) Update(_ context.Context, req domain.Request) error {
	m.requests[req.ID] = req
	return nil
}

func (m *mockRequestRepo) Delete(_ context.Context, id string) error {
	delete(m.requests, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockPublisher struct {
	events []publishedEvent
}

type publishedEvent struct {
	event domain.Event
	req   domain.Request
}

func (m *mockPublisher) Publish(_ context.Context, e domain.Event, req domain.Request) error {
	m.events = append(m.events, publishedEvent{event: e, req: req})
	return nil
}

// passValidator applies the transition table directly, without the FSM adapter.
type passValidator struct{}

func (passValidator) Apply(_ context.Context, current domain.RequestStatus, event domain.Event) (domain.RequestStatus, error) {
	for _, tr := range domain.Transitions {
		if tr.Event == event && tr.Src == current {
			return tr.Dst, nil
		}
	}
	return "", &domain.TransitionError{Event: event, Current: current}
}

func newService(repo *mockRequestRepo, pub *mockPublisher) *app.RequestService {
	return app.NewRequestService(repo, pub, passValidator{})
}

// --- Tests ---

func TestCreate_Success(t *testing.T) {
	repo := newMockRequestRepo()
	pub := &mockPublisher{}
	svc := newService(repo, pub)

	req, err := svc.Create(context.Background(), "city.gov", "p-1", "mayor@city.gov")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if req.ID == "" {
		t.Error("ID should not be empty")
	}
	if req.Status != domain.StatusStarted {
		t.Errorf("Status = %q, want %q", req.Status, domain.StatusStarted)
	}
	if _, ok := repo.requests[req.ID]; !ok {
		t.Error("request was not persisted")
	}
	if len(pub.events) != 0 {
		t.Errorf("creation should not publish lifecycle events, got %d", len(pub.events))
	}
}

func TestTransition_SubmitSetsSubmissionDate(t *testing.T) {
	repo := newMockRequestRepo()
	pub := &mockPublisher{}
	svc := newService(repo, pub)

	created, err := svc.Create(context.Background(), "city.gov", "p-1", "mayor@city.gov")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	submitted, err := svc.Transition(context.Background(), created.ID, domain.EventSubmit)
	if err != nil {
		t.Fatalf("Transition failed: %v", err)
	}

	if submitted.Status != domain.StatusSubmitted {
		t.Errorf("Status = %q, want %q", submitted.Status, domain.StatusSubmitted)
	}
	if submitted.SubmissionDate.IsZero() {
		t.Error("SubmissionDate should be set on submit")
	}
	if len(pub.events) != 1 || pub.events[0].event != domain.EventSubmit {
		t.Errorf("expected one submit event, got %+v", pub.events)
	}
}

func TestTransition_Invalid(t *testing.T) {
	repo := newMockRequestRepo()
	svc := newService(repo, &mockPublisher{})

	created, _ := svc.Create(context.Background(), "city.gov", "p-1", "mayor@city.gov")

	_, err := svc.Transition(context.Background(), created.ID, domain.EventApprove)

	var trErr *domain.TransitionError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if trErr.Current != domain.StatusStarted {
		t.Errorf("Current = %q, want %q", trErr.Current, domain.StatusStarted)
	}
}

func TestTransition_NotFound(t *testing.T) {
	svc := newService(newMockRequestRepo(), &mockPublisher{})

	_, err := svc.Transition(context.Background(), "nonexistent", domain.EventSubmit)
	if !errors.Is(err, domain.ErrRequestNotFound) {
		t.Errorf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestDelete_Started(t *testing.T) {
	repo := newMockRequestRepo()
	svc := newService(repo, &mockPublisher{})

	created, _ := svc.Create(context.Background(), "city.gov", "p-1", "mayor@city.gov")

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != created.ID {
		t.Errorf("deleted = %v, want [%s]", repo.deleted, created.ID)
	}
}

func TestDelete_RefusedAfterSubmit(t *testing.T) {
	repo := newMockRequestRepo()
	svc := newService(repo, &mockPublisher{})

	created, _ := svc.Create(context.Background(), "city.gov", "p-1", "mayor@city.gov")
	if _, err := svc.Transition(context.Background(), created.ID, domain.EventSubmit); err != nil {
		t.Fatalf("Transition failed: %v", err)
	}

	err := svc.Delete(context.Background(), created.ID)

	var ndErr *domain.NotDeletableError
	if !errors.As(err, &ndErr) {
		t.Fatalf("expected NotDeletableError, got %v", err)
	}
	if ndErr.Status != domain.StatusSubmitted {
		t.Errorf("Status = %q, want %q", ndErr.Status, domain.StatusSubmitted)
	}
	if len(repo.deleted) != 0 {
		t.Error("request must not be deleted")
	}
}

func TestDelete_WithdrawnAllowed(t *testing.T) {
	repo := newMockRequestRepo()
	svc := newService(repo, &mockPublisher{})

	created, _ := svc.Create(context.Background(), "city.gov", "p-1", "mayor@city.gov")
	if _, err := svc.Transition(context.Background(), created.ID, domain.EventSubmit); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := svc.Transition(context.Background(), created.ID, domain.EventWithdraw); err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete of withdrawn request failed: %v", err)
	}
}
