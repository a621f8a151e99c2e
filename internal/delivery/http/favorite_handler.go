package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	favoritedomain "github.com/tair/favorites-service/internal/favorite/domain"
	favoritecommand "github.com/tair/favorites-service/internal/favorite/usecase/command"
	favoritequery "github.com/tair/favorites-service/internal/favorite/usecase/query"
)

type addFavoriteRequest struct {
	ProductID *int64 `json:"product_id"`
}

// AddFavorite handles POST /clients/me/favorites/
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var req addFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, detailInvalidBody)
		return
	}
	if req.ProductID == nil || *req.ProductID <= 0 {
		respondError(w, http.StatusUnprocessableEntity, detailInvalidProductID)
		return
	}
	productID := uint(*req.ProductID)

	_, err := h.commands.AddFavorite.Handle(r.Context(), favoritecommand.AddFavoriteCommand{
		ClientID:  currentClient(r).ID,
		ProductID: productID,
	})
	if err != nil {
		if errors.Is(err, favoritedomain.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, fmt.Sprintf("Product with id %d not found.", productID))
			return
		}
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, messageResponse{Message: "Product added to favorites successfully"})
}

// ListFavorites handles GET /clients/me/favorites/
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	products, err := h.queries.ListFavorites.Handle(r.Context(), favoritequery.ListFavoritesQuery{
		ClientID: currentClient(r).ID,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// RemoveFavorite handles DELETE /clients/me/favorites/{productId}
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseUint(mux.Vars(r)["productId"], 10, 0)
	if err != nil || productID == 0 {
		respondError(w, http.StatusUnprocessableEntity, detailInvalidProductID)
		return
	}

	err = h.commands.RemoveFavorite.Handle(r.Context(), favoritecommand.RemoveFavoriteCommand{
		ClientID:  currentClient(r).ID,
		ProductID: uint(productID),
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
