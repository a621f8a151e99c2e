package command

import (
	"context"
	"fmt"

	"github.com/tair/favorites-service/internal/favorite/domain"
	"github.com/tair/favorites-service/kafka"
	"github.com/tair/favorites-service/pkg/logger"
)

// EventPublisher publishes favorites events
type EventPublisher interface {
	Publish(ctx context.Context, event kafka.Event) error
}

// AddFavoriteCommand represents the command to favorite a product
type AddFavoriteCommand struct {
	ClientID  uint
	ProductID uint
}

// AddFavoriteHandler handles adding a product to a client's favorites
type AddFavoriteHandler struct {
	ledger    domain.Ledger
	catalog   domain.Catalog
	publisher EventPublisher
}

// NewAddFavoriteHandler creates a new add favorite handler
func NewAddFavoriteHandler(ledger domain.Ledger, catalog domain.Catalog, publisher EventPublisher) *AddFavoriteHandler {
	return &AddFavoriteHandler{ledger: ledger, catalog: catalog, publisher: publisher}
}

// Handle checks the product against the catalog before touching the ledger.
// The order of the checks decides which error the caller sees.
func (h *AddFavoriteHandler) Handle(ctx context.Context, cmd AddFavoriteCommand) (*domain.Favorite, error) {
	if cmd.ProductID == 0 {
		return nil, domain.ErrInvalidProductID
	}

	lookup, err := h.catalog.FetchOne(ctx, cmd.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product %d: %w", cmd.ProductID, err)
	}
	if !lookup.Found() {
		return nil, domain.ErrProductNotFound
	}

	exists, err := h.ledger.Contains(ctx, cmd.ClientID, cmd.ProductID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrFavoriteAlreadyExists
	}

	favorite, err := h.ledger.Add(ctx, cmd.ClientID, cmd.ProductID)
	if err != nil {
		return nil, err
	}
	// a concurrent add of the same pair won the race
	if favorite == nil {
		return nil, domain.ErrFavoriteAlreadyExists
	}

	logger.Info(ctx).
		Uint("client_id", cmd.ClientID).
		Uint("product_id", cmd.ProductID).
		Msg("Favorite added")
	publish(ctx, h.publisher, kafka.FavoriteAdded(cmd.ClientID, cmd.ProductID))

	return favorite, nil
}

func publish(ctx context.Context, publisher EventPublisher, event kafka.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn(ctx).Err(err).Str("event_type", event.EventType).Msg("Failed to publish event")
	}
}
