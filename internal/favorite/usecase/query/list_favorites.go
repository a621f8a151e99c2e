package query

import (
	"context"

	"github.com/tair/favorites-service/internal/catalog"
	"github.com/tair/favorites-service/internal/favorite/domain"
)

// ListFavoritesQuery represents the query to list a client's favorite products
type ListFavoritesQuery struct {
	ClientID uint
}

// ListFavoritesHandler handles list favorites query
type ListFavoritesHandler struct {
	ledger  domain.Ledger
	catalog domain.Catalog
}

// NewListFavoritesHandler creates a new list favorites handler
func NewListFavoritesHandler(ledger domain.Ledger, catalog domain.Catalog) *ListFavoritesHandler {
	return &ListFavoritesHandler{ledger: ledger, catalog: catalog}
}

// Handle returns the favorites the catalog could resolve. The result may be
// shorter than the stored list when some products are unavailable.
func (h *ListFavoritesHandler) Handle(ctx context.Context, q ListFavoritesQuery) ([]catalog.Product, error) {
	ids, err := h.ledger.ListProductIDs(ctx, q.ClientID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	return h.catalog.FetchMany(ctx, ids), nil
}
