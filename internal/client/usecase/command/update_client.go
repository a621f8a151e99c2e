package command

import (
	"context"
	"errors"

	"github.com/tair/favorites-service/internal/client/domain"
)

// UpdateClientCommand applies a partial update to the authenticated client
type UpdateClientCommand struct {
	ID    uint
	Patch domain.ClientPatch
}

// UpdateClientHandler handles self-service client updates
type UpdateClientHandler struct {
	repo domain.ClientRepository
}

// NewUpdateClientHandler creates a new update client handler
func NewUpdateClientHandler(repo domain.ClientRepository) *UpdateClientHandler {
	return &UpdateClientHandler{repo: repo}
}

// Handle executes the update client command
func (h *UpdateClientHandler) Handle(ctx context.Context, cmd UpdateClientCommand) (*domain.Client, error) {
	patch := cmd.Patch
	if patch.Name != nil {
		if err := validateName(*patch.Name); err != nil {
			return nil, err
		}
	}
	if patch.Email != nil {
		normalized := domain.NormalizeEmail(*patch.Email)
		if err := validateEmail(normalized); err != nil {
			return nil, err
		}
		patch.Email = &normalized
	}

	client, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return client, nil
	}

	if patch.Email != nil && *patch.Email != client.Email {
		other, err := h.repo.FindByEmail(ctx, *patch.Email)
		if err != nil && !errors.Is(err, domain.ErrClientNotFound) {
			return nil, err
		}
		if other != nil && other.ID != client.ID {
			return nil, domain.ErrEmailAlreadyRegistered
		}
	}

	patch.Apply(client)
	if err := h.repo.Update(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}
