package command

import (
	"context"

	"github.com/tair/favorites-service/internal/client/domain"
	"github.com/tair/favorites-service/kafka"
	"github.com/tair/favorites-service/pkg/logger"
)

// EventPublisher publishes client lifecycle events
type EventPublisher interface {
	Publish(ctx context.Context, event kafka.Event) error
}

// DeleteClientCommand represents the command to delete the authenticated client
type DeleteClientCommand struct {
	ID uint
}

// DeleteClientHandler handles client deletion
type DeleteClientHandler struct {
	repo      domain.ClientRepository
	publisher EventPublisher
}

// NewDeleteClientHandler creates a new delete client handler
func NewDeleteClientHandler(repo domain.ClientRepository, publisher EventPublisher) *DeleteClientHandler {
	return &DeleteClientHandler{repo: repo, publisher: publisher}
}

// Handle deletes the client and, through the repository, every favorite it owns
func (h *DeleteClientHandler) Handle(ctx context.Context, cmd DeleteClientCommand) error {
	if err := h.repo.Delete(ctx, cmd.ID); err != nil {
		return err
	}

	if h.publisher != nil {
		if err := h.publisher.Publish(ctx, kafka.ClientDeleted(cmd.ID)); err != nil {
			logger.Warn(ctx).Err(err).Uint("client_id", cmd.ID).Msg("Failed to publish client deleted event")
		}
	}
	return nil
}
