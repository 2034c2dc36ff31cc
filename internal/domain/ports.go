package domain

import "context"

// RequestRepository defines the persistence contract for domain requests.
// List excludes approved requests: once approved, a request materializes as
// a Domain and leaves the requests listing.
type RequestRepository interface {
	Create(ctx context.Context, req Request) error
	GetByID(ctx context.Context, id string) (Request, error)
	List(ctx context.Context, query ListQuery) (Page[Request], error)
	Update(ctx context.Context, req Request) error
	Delete(ctx context.Context, id string) error
}

// DomainRepository defines the persistence contract for registered domains.
type DomainRepository interface {
	Create(ctx context.Context, d Domain) error
	GetByID(ctx context.Context, id string) (Domain, error)
	List(ctx context.Context, query ListQuery) (Page[Domain], error)
}

// MemberRepository defines the persistence contract for portfolio members.
type MemberRepository interface {
	Create(ctx context.Context, m Member) error
	GetByID(ctx context.Context, id string) (Member, error)
	List(ctx context.Context, query ListQuery) (Page[Member], error)
	Delete(ctx context.Context, id string) error
}

// EventPublisher defines the contract for emitting request lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, event Event, req Request) error
}

// TransitionValidator checks whether a lifecycle event is allowed from the
// current status and returns the destination status.
type TransitionValidator interface {
	Apply(ctx context.Context, current RequestStatus, event Event) (RequestStatus, error)
}
