package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// RegisterClient godoc
// @Summary Register a new client
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body object{name=string,email=string,password=string} true "Client registration data"
// @Success 201 {object} object{id=int,name=string,email=string}
// @Failure 400 {object} object{detail=string}
// @Failure 422 {object} object{detail=string}
// @Router /clients/ [post]
func (h *Handler) RegisterClientDoc() {}

// Login godoc
// @Summary Obtain an access token
// @Description Authenticate with email and password and receive a bearer token
// @Tags Authentication
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Client email"
// @Param password formData string true "Password"
// @Success 200 {object} object{access_token=string,token_type=string}
// @Failure 401 {object} object{detail=string}
// @Failure 429 {object} object{detail=string}
// @Router /token [post]
func (h *Handler) LoginDoc() {}

// GetMe godoc
// @Summary Get the authenticated client
// @Tags Clients
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{id=int,name=string,email=string}
// @Failure 401 {object} object{detail=string}
// @Router /clients/me [get]
func (h *Handler) GetMeDoc() {}

// UpdateMe godoc
// @Summary Update the authenticated client
// @Description Only the supplied fields are changed
// @Tags Clients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,email=string} true "Fields to update"
// @Success 200 {object} object{id=int,name=string,email=string}
// @Failure 400 {object} object{detail=string}
// @Failure 401 {object} object{detail=string}
// @Router /clients/me [put]
func (h *Handler) UpdateMeDoc() {}

// DeleteMe godoc
// @Summary Delete the authenticated client and all of its favorites
// @Tags Clients
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} object{detail=string}
// @Router /clients/me [delete]
func (h *Handler) DeleteMeDoc() {}

// AddFavorite godoc
// @Summary Add a product to the authenticated client's favorites
// @Tags Favorites
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{product_id=int} true "Product to favorite"
// @Success 201 {object} object{message=string}
// @Failure 401 {object} object{detail=string}
// @Failure 404 {object} object{detail=string}
// @Failure 409 {object} object{detail=string}
// @Router /clients/me/favorites/ [post]
func (h *Handler) AddFavoriteDoc() {}

// ListFavorites godoc
// @Summary List the authenticated client's favorite products
// @Description Products the catalog cannot serve right now are left out
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Success 200 {array} object{id=int,title=string,price=number,description=string,category=string,image=string,rating=object{rate=number,count=int}}
// @Failure 401 {object} object{detail=string}
// @Router /clients/me/favorites/ [get]
func (h *Handler) ListFavoritesDoc() {}

// RemoveFavorite godoc
// @Summary Remove a product from the authenticated client's favorites
// @Tags Favorites
// @Security BearerAuth
// @Param productId path int true "Product ID"
// @Success 204
// @Failure 401 {object} object{detail=string}
// @Failure 404 {object} object{detail=string}
// @Router /clients/me/favorites/{productId} [delete]
func (h *Handler) RemoveFavoriteDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string}
// @Failure 503 {object} object{status=string,error=string}
// @Router /health [get]
func (h *Handler) HealthCheckDoc() {}
