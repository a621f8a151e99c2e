package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/favorites-service/internal/favorite/domain"
)

var tracer = otel.Tracer("favorite-repository")

// TracingLedger decorates a Ledger with spans
type TracingLedger struct {
	next domain.Ledger
}

// NewTracingLedger wraps next with tracing
func NewTracingLedger(next domain.Ledger) *TracingLedger {
	return &TracingLedger{next: next}
}

// ListProductIDs traces the wrapped ListProductIDs
func (l *TracingLedger) ListProductIDs(ctx context.Context, clientID uint) ([]uint, error) {
	ctx, span := tracer.Start(ctx, "repository.Favorite.ListProductIDs",
		trace.WithAttributes(attribute.Int("client.id", int(clientID))),
	)
	defer span.End()

	ids, err := l.next.ListProductIDs(ctx, clientID)
	recordError(span, err)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(ids)))
	}
	return ids, err
}

// Contains traces the wrapped Contains
func (l *TracingLedger) Contains(ctx context.Context, clientID, productID uint) (bool, error) {
	ctx, span := l.startPair(ctx, "repository.Favorite.Contains", clientID, productID)
	defer span.End()

	ok, err := l.next.Contains(ctx, clientID, productID)
	recordError(span, err)
	span.SetAttributes(attribute.Bool("result.contains", ok))
	return ok, err
}

// Add traces the wrapped Add and records whether a row was inserted
func (l *TracingLedger) Add(ctx context.Context, clientID, productID uint) (*domain.Favorite, error) {
	ctx, span := l.startPair(ctx, "repository.Favorite.Add", clientID, productID)
	defer span.End()

	favorite, err := l.next.Add(ctx, clientID, productID)
	recordError(span, err)
	span.SetAttributes(attribute.Bool("result.inserted", favorite != nil))
	return favorite, err
}

// Remove traces the wrapped Remove
func (l *TracingLedger) Remove(ctx context.Context, clientID, productID uint) (*domain.Favorite, error) {
	ctx, span := l.startPair(ctx, "repository.Favorite.Remove", clientID, productID)
	defer span.End()

	favorite, err := l.next.Remove(ctx, clientID, productID)
	recordError(span, err)
	span.SetAttributes(attribute.Bool("result.removed", favorite != nil))
	return favorite, err
}

func (l *TracingLedger) startPair(ctx context.Context, name string, clientID, productID uint) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithAttributes(
			attribute.Int("client.id", int(clientID)),
			attribute.Int("product.id", int(productID)),
		),
	)
}

func recordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
