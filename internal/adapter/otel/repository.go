package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dotgov/registrar/internal/domain"
)

const tracerName = "github.com/dotgov/registrar/internal/adapter/otel"

// TracingRequestRepository wraps a domain.RequestRepository with OpenTelemetry
// tracing. Each method creates a span with semantic attributes and records
// errors.
type TracingRequestRepository struct {
	next   domain.RequestRepository
	tracer trace.Tracer
}

// Compile-time check: TracingRequestRepository implements domain.RequestRepository.
var _ domain.RequestRepository = (*TracingRequestRepository)(nil)

// NewTracingRequestRepository creates a tracing decorator around the given repository.
func NewTracingRequestRepository(next domain.RequestRepository) *TracingRequestRepository {
	return &TracingRequestRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingRequestRepository) Create(ctx context.Context, req domain.Request) error {
	ctx, span := r.tracer.Start(ctx, "RequestRepository.Create",
		trace.WithAttributes(
			attribute.String("request.id", req.ID),
			attribute.String("request.domain", req.RequestedDomain),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingRequestRepository) GetByID(ctx context.Context, id string) (domain.Request, error) {
	ctx, span := r.tracer.Start(ctx, "RequestRepository.GetByID",
		trace.WithAttributes(attribute.String("request.id", id)),
	)
	defer span.End()

	req, err := r.next.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return req, err
}

func (r *TracingRequestRepository) List(ctx context.Context, query domain.ListQuery) (domain.Page[domain.Request], error) {
	ctx, span := r.tracer.Start(ctx, "RequestRepository.List",
		trace.WithAttributes(
			attribute.Int("query.page", query.Page),
			attribute.String("query.sort_by", query.SortBy),
		),
	)
	defer span.End()

	if query.SearchTerm != "" {
		span.SetAttributes(attribute.Bool("query.has_search", true))
	}
	if query.Status != "" {
		span.SetAttributes(attribute.String("query.status", query.Status))
	}

	page, err := r.next.List(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(
			attribute.Int("result.count", len(page.Items)),
			attribute.Int("result.total", page.Total),
		)
	}
	return page, err
}

func (r *TracingRequestRepository) Update(ctx context.Context, req domain.Request) error {
	ctx, span := r.tracer.Start(ctx, "RequestRepository.Update",
		trace.WithAttributes(
			attribute.String("request.id", req.ID),
			attribute.String("request.status", string(req.Status)),
		),
	)
	defer span.End()

	err := r.next.Update(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingRequestRepository) Delete(ctx context.Context, id string) error {
	ctx, span := r.tracer.Start(ctx, "RequestRepository.Delete",
		trace.WithAttributes(attribute.String("request.id", id)),
	)
	defer span.End()

	err := r.next.Delete(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
