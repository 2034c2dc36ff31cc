package river

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river"

	"github.com/dotgov/registrar/internal/domain"
)

// Compile-time check: Publisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*Publisher)(nil)

// LifecycleJobArgs carries the data needed to notify a requester about a
// lifecycle change asynchronously. River serializes this as JSON into its
// job queue table. It includes a snapshot of the request at the time the
// event was published, so the worker never needs to query the database.
type LifecycleJobArgs struct {
	Event           string `json:"event"`
	RequestID       string `json:"request_id"`
	RequestedDomain string `json:"requested_domain"`
	PortfolioID     string `json:"portfolio_id"`
	CreatorEmail    string `json:"creator_email"`
	Status          string `json:"status"`
}

// Kind returns the unique job type identifier used by River's job routing.
func (LifecycleJobArgs) Kind() string { return "request.lifecycle" }

// Client is the River client type parameterized for SQLite (*sql.Tx).
type Client = river.Client[*sql.Tx]

// Publisher implements domain.EventPublisher by enqueuing River jobs.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher backed by the given River client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish enqueues a lifecycle event as an async job in River.
func (p *Publisher) Publish(ctx context.Context, event domain.Event, req domain.Request) error {
	_, err := p.client.Insert(ctx, LifecycleJobArgs{
		Event:           string(event),
		RequestID:       req.ID,
		RequestedDomain: req.RequestedDomain,
		PortfolioID:     req.PortfolioID,
		CreatorEmail:    req.CreatorEmail,
		Status:          string(req.Status),
	}, nil)
	if err != nil {
		return fmt.Errorf("enqueuing lifecycle job: %w", err)
	}
	return nil
}
