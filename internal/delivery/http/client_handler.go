package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	clientdomain "github.com/tair/favorites-service/internal/client/domain"
	clientcommand "github.com/tair/favorites-service/internal/client/usecase/command"
	clientquery "github.com/tair/favorites-service/internal/client/usecase/query"
	"github.com/tair/favorites-service/pkg/logger"
)

type registerClientRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateClientRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// RegisterClient handles POST /clients/
func (h *Handler) RegisterClient(w http.ResponseWriter, r *http.Request) {
	var req registerClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, detailInvalidBody)
		return
	}

	client, err := h.commands.RegisterClient.Handle(r.Context(), clientcommand.RegisterClientCommand{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	h.updateRegisteredClientsMetric(r.Context())
	respondJSON(w, http.StatusCreated, client)
}

// Login handles POST /token with a form encoded username and password
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, detailInvalidBody)
		return
	}
	username, password := r.PostForm.Get("username"), r.PostForm.Get("password")
	if username == "" || password == "" {
		respondError(w, http.StatusUnprocessableEntity, "username and password are required")
		return
	}

	token, err := h.commands.LoginClient.Handle(r.Context(), clientcommand.LoginClientCommand{
		Email:    username,
		Password: password,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, token)
}

// GetMe handles GET /clients/me
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	client, err := h.queries.GetClient.Handle(r.Context(), clientquery.GetClientQuery{ID: currentClient(r).ID})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

// UpdateMe handles PUT /clients/me. Only the supplied fields change.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req updateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, detailInvalidBody)
		return
	}

	client, err := h.commands.UpdateClient.Handle(r.Context(), clientcommand.UpdateClientCommand{
		ID:    currentClient(r).ID,
		Patch: clientdomain.ClientPatch{Name: req.Name, Email: req.Email},
	})
	if err != nil {
		if errors.Is(err, clientdomain.ErrEmailAlreadyRegistered) {
			respondError(w, http.StatusBadRequest, detailEmailInUse)
			return
		}
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, client)
}

// DeleteMe handles DELETE /clients/me. Favorites are removed with the client.
func (h *Handler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	if err := h.commands.DeleteClient.Handle(r.Context(), clientcommand.DeleteClientCommand{ID: currentClient(r).ID}); err != nil {
		respondDomainError(w, r, err)
		return
	}

	h.updateRegisteredClientsMetric(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// updateRegisteredClientsMetric updates the registered clients gauge
func (h *Handler) updateRegisteredClientsMetric(ctx context.Context) {
	if h.metrics == nil || h.queries.CountClients == nil {
		return
	}
	count, err := h.queries.CountClients.Handle(ctx, clientquery.CountClientsQuery{})
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to count clients")
		return
	}
	h.metrics.registeredClients.Set(float64(count))
}
