package http

import (
	"encoding/json"
	"net/http"

	clientcommand "github.com/tair/favorites-service/internal/client/usecase/command"
	clientquery "github.com/tair/favorites-service/internal/client/usecase/query"
	favoritecommand "github.com/tair/favorites-service/internal/favorite/usecase/command"
	favoritequery "github.com/tair/favorites-service/internal/favorite/usecase/query"
)

// CommandHandlers holds every command handler served over HTTP
type CommandHandlers struct {
	RegisterClient *clientcommand.RegisterClientHandler
	LoginClient    *clientcommand.LoginClientHandler
	UpdateClient   *clientcommand.UpdateClientHandler
	DeleteClient   *clientcommand.DeleteClientHandler
	AddFavorite    *favoritecommand.AddFavoriteHandler
	RemoveFavorite *favoritecommand.RemoveFavoriteHandler
}

// QueryHandlers holds every query handler served over HTTP
type QueryHandlers struct {
	GetClient         *clientquery.GetClientHandler
	CountClients      *clientquery.CountClientsHandler
	AuthenticateToken *clientquery.AuthenticateTokenHandler
	ListFavorites     *favoritequery.ListFavoritesHandler
}

// Handler handles HTTP requests for clients and their favorites
type Handler struct {
	commands *CommandHandlers
	queries  *QueryHandlers
	metrics  *Metrics
}

// NewHandler creates a new HTTP handler
func NewHandler(commands *CommandHandlers, queries *QueryHandlers, metrics *Metrics) *Handler {
	return &Handler{
		commands: commands,
		queries:  queries,
		metrics:  metrics,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Root handles GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, messageResponse{Message: "Favorites API"})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends a {"detail": ...} error response
func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, errorResponse{Detail: detail})
}
