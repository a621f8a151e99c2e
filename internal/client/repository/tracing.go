package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/favorites-service/internal/client/domain"
)

var tracer = otel.Tracer("client-repository")

// TracingClientRepository decorates a ClientRepository with spans
type TracingClientRepository struct {
	next domain.ClientRepository
}

// NewTracingClientRepository wraps next with tracing
func NewTracingClientRepository(next domain.ClientRepository) *TracingClientRepository {
	return &TracingClientRepository{next: next}
}

// Create traces the wrapped Create
func (r *TracingClientRepository) Create(ctx context.Context, client *domain.Client) error {
	ctx, span := tracer.Start(ctx, "repository.Client.Create",
		trace.WithAttributes(attribute.String("client.email", client.Email)),
	)
	defer span.End()

	err := r.next.Create(ctx, client)
	recordError(span, err)
	if err == nil {
		span.SetAttributes(attribute.Int("client.id", int(client.ID)))
	}
	return err
}

// FindByID traces the wrapped FindByID
func (r *TracingClientRepository) FindByID(ctx context.Context, id uint) (*domain.Client, error) {
	ctx, span := tracer.Start(ctx, "repository.Client.FindByID",
		trace.WithAttributes(attribute.Int("client.id", int(id))),
	)
	defer span.End()

	client, err := r.next.FindByID(ctx, id)
	recordError(span, err)
	return client, err
}

// FindByEmail traces the wrapped FindByEmail
func (r *TracingClientRepository) FindByEmail(ctx context.Context, email string) (*domain.Client, error) {
	ctx, span := tracer.Start(ctx, "repository.Client.FindByEmail",
		trace.WithAttributes(attribute.String("client.email", email)),
	)
	defer span.End()

	client, err := r.next.FindByEmail(ctx, email)
	recordError(span, err)
	return client, err
}

// Update traces the wrapped Update
func (r *TracingClientRepository) Update(ctx context.Context, client *domain.Client) error {
	ctx, span := tracer.Start(ctx, "repository.Client.Update",
		trace.WithAttributes(attribute.Int("client.id", int(client.ID))),
	)
	defer span.End()

	err := r.next.Update(ctx, client)
	recordError(span, err)
	return err
}

// Delete traces the wrapped Delete
func (r *TracingClientRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "repository.Client.Delete",
		trace.WithAttributes(attribute.Int("client.id", int(id))),
	)
	defer span.End()

	err := r.next.Delete(ctx, id)
	recordError(span, err)
	return err
}

// Count traces the wrapped Count
func (r *TracingClientRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Client.Count")
	defer span.End()

	count, err := r.next.Count(ctx)
	recordError(span, err)
	if err == nil {
		span.SetAttributes(attribute.Int64("result.count", count))
	}
	return count, err
}

// recordError marks the span failed; not-found lookups are expected outcomes
func recordError(span trace.Span, err error) {
	if err == nil || err == domain.ErrClientNotFound {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
