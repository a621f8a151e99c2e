package query

import (
	"context"

	"github.com/tair/favorites-service/internal/client/domain"
)

// CountClientsQuery represents the query for the number of registered clients
type CountClientsQuery struct{}

// CountClientsHandler handles count clients query
type CountClientsHandler struct {
	repo domain.ClientRepository
}

// NewCountClientsHandler creates a new count clients handler
func NewCountClientsHandler(repo domain.ClientRepository) *CountClientsHandler {
	return &CountClientsHandler{repo: repo}
}

// Handle executes the count clients query
func (h *CountClientsHandler) Handle(ctx context.Context, _ CountClientsQuery) (int64, error) {
	return h.repo.Count(ctx)
}
