package http

import (
	"errors"
	"net/http"

	"github.com/tair/favorites-service/internal/catalog"
	clientdomain "github.com/tair/favorites-service/internal/client/domain"
	favoritedomain "github.com/tair/favorites-service/internal/favorite/domain"
	"github.com/tair/favorites-service/pkg/logger"
)

const (
	detailUnauthenticated    = "Could not validate credentials"
	detailInvalidCredentials = "Incorrect email or password"
	detailEmailRegistered    = "Email already registered"
	detailEmailInUse         = "This email is already in use."
	detailAlreadyFavorite    = "Product already in favorites."
	detailFavoriteNotFound   = "Favorite product not found."
	detailInvalidProductID   = "product_id must be a positive integer"
	detailInvalidBody        = "Invalid request body"
	detailInternal           = "Internal server error"
	detailTooManyLogins      = "Too many login attempts"
)

func respondUnauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	respondError(w, http.StatusUnauthorized, detail)
}

// respondDomainError maps domain errors to status codes. Anything unrecognized
// is logged and hidden behind a generic 500.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, clientdomain.ErrUnauthenticated),
		errors.Is(err, clientdomain.ErrClientNotFound):
		respondUnauthorized(w, detailUnauthenticated)
	case errors.Is(err, clientdomain.ErrInvalidCredentials):
		respondUnauthorized(w, detailInvalidCredentials)
	case errors.Is(err, clientdomain.ErrEmailAlreadyRegistered):
		respondError(w, http.StatusBadRequest, detailEmailRegistered)
	case errors.Is(err, clientdomain.ErrInvalidClientData):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, favoritedomain.ErrInvalidProductID):
		respondError(w, http.StatusUnprocessableEntity, detailInvalidProductID)
	case errors.Is(err, favoritedomain.ErrFavoriteAlreadyExists):
		respondError(w, http.StatusConflict, detailAlreadyFavorite)
	case errors.Is(err, favoritedomain.ErrFavoriteNotFound):
		respondError(w, http.StatusNotFound, detailFavoriteNotFound)
	default:
		event := logger.Error(r.Context()).Err(err).Str("method", r.Method).Str("path", r.URL.Path)
		if errors.Is(err, catalog.ErrCatalogUnavailable) {
			event = event.Bool("catalog_unavailable", true)
		}
		event.Msg("Request failed")
		respondError(w, http.StatusInternalServerError, detailInternal)
	}
}
