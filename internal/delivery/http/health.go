package http

import (
	"context"
	"net/http"
	"time"

	"github.com/tair/favorites-service/pkg/logger"
)

// Pinger reports whether a backing store is reachable; *sql.DB satisfies it
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				logger.Error(r.Context()).Err(err).Msg("Health check database ping failed")
				respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
				return
			}
		}

		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}
