package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RouterConfig holds the optional collaborators of the router
type RouterConfig struct {
	EnableLogging  bool
	EnableTracing  bool
	RateLimiter    *LoginRateLimiter
	DB             Pinger
	MetricsHandler http.Handler
	SwaggerHandler http.Handler
}

// NewRouter builds the full HTTP surface
func NewRouter(h *Handler, config RouterConfig) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Not Found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	router.Use(RequestIDMiddleware)
	if config.EnableLogging {
		router.Use(LoggingMiddleware)
	}
	if config.EnableTracing {
		router.Use(func(next http.Handler) http.Handler {
			return TracingMiddleware("http-request", next)
		})
	}

	h.RegisterRoutes(router, config.RateLimiter)
	router.HandleFunc("/health", h.HealthCheck(config.DB)).Methods(http.MethodGet)
	if config.MetricsHandler != nil {
		router.Handle("/metrics", config.MetricsHandler).Methods(http.MethodGet)
	}
	if config.SwaggerHandler != nil {
		RegisterSwaggerDocs(router, config.SwaggerHandler)
	}

	return router
}

// RegisterRoutes registers the client, token and favorites routes
func (h *Handler) RegisterRoutes(router *mux.Router, limiter *LoginRateLimiter) {
	router.HandleFunc("/", h.metricsMiddleware("/", h.Root)).Methods(http.MethodGet)

	// Public routes
	for _, path := range []string{"/clients", "/clients/"} {
		router.HandleFunc(path, h.metricsMiddleware("/clients/", h.RegisterClient)).Methods(http.MethodPost)
	}
	router.HandleFunc("/token", h.metricsMiddleware("/token", limiter.Middleware(h.Login))).Methods(http.MethodPost)

	// Authenticated client routes
	router.HandleFunc("/clients/me", h.metricsMiddleware("/clients/me", h.AuthMiddleware(h.GetMe))).Methods(http.MethodGet)
	router.HandleFunc("/clients/me", h.metricsMiddleware("/clients/me", h.AuthMiddleware(h.UpdateMe))).Methods(http.MethodPut)
	router.HandleFunc("/clients/me", h.metricsMiddleware("/clients/me", h.AuthMiddleware(h.DeleteMe))).Methods(http.MethodDelete)

	// Favorites
	for _, path := range []string{"/clients/me/favorites", "/clients/me/favorites/"} {
		router.HandleFunc(path, h.metricsMiddleware("/clients/me/favorites/", h.AuthMiddleware(h.AddFavorite))).Methods(http.MethodPost)
		router.HandleFunc(path, h.metricsMiddleware("/clients/me/favorites/", h.AuthMiddleware(h.ListFavorites))).Methods(http.MethodGet)
	}
	router.HandleFunc("/clients/me/favorites/{productId}",
		h.metricsMiddleware("/clients/me/favorites/{productId}", h.AuthMiddleware(h.RemoveFavorite))).Methods(http.MethodDelete)
}
