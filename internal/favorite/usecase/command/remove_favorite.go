package command

import (
	"context"

	"github.com/tair/favorites-service/internal/favorite/domain"
	"github.com/tair/favorites-service/kafka"
)

// RemoveFavoriteCommand represents the command to unfavorite a product
type RemoveFavoriteCommand struct {
	ClientID  uint
	ProductID uint
}

// RemoveFavoriteHandler handles removing a product from a client's favorites
type RemoveFavoriteHandler struct {
	ledger    domain.Ledger
	publisher EventPublisher
}

// NewRemoveFavoriteHandler creates a new remove favorite handler
func NewRemoveFavoriteHandler(ledger domain.Ledger, publisher EventPublisher) *RemoveFavoriteHandler {
	return &RemoveFavoriteHandler{ledger: ledger, publisher: publisher}
}

// Handle removes the pair. The catalog is not consulted.
func (h *RemoveFavoriteHandler) Handle(ctx context.Context, cmd RemoveFavoriteCommand) error {
	removed, err := h.ledger.Remove(ctx, cmd.ClientID, cmd.ProductID)
	if err != nil {
		return err
	}
	if removed == nil {
		return domain.ErrFavoriteNotFound
	}

	publish(ctx, h.publisher, kafka.FavoriteRemoved(cmd.ClientID, cmd.ProductID))
	return nil
}
