package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/favorites-service/internal/client/domain"
)

// RegisterClientCommand represents the command to register a new client
type RegisterClientCommand struct {
	Email    string
	Name     string
	Password string
}

// RegisterClientHandler handles client registration
type RegisterClientHandler struct {
	repo domain.ClientRepository
	auth domain.Authenticator
}

// NewRegisterClientHandler creates a new register client handler
func NewRegisterClientHandler(repo domain.ClientRepository, auth domain.Authenticator) *RegisterClientHandler {
	return &RegisterClientHandler{repo: repo, auth: auth}
}

// Handle executes the register client command
func (h *RegisterClientHandler) Handle(ctx context.Context, cmd RegisterClientCommand) (*domain.Client, error) {
	email := domain.NormalizeEmail(cmd.Email)
	if err := validateName(cmd.Name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(cmd.Password); err != nil {
		return nil, err
	}

	existing, err := h.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrClientNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyRegistered
	}

	credential, err := h.auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, err
	}

	client := &domain.Client{
		Name:       cmd.Name,
		Email:      email,
		Credential: credential,
	}
	// A concurrent registration of the same email surfaces here as ErrEmailAlreadyRegistered
	if err := h.repo.Create(ctx, client); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to register client: %w", err)
	}

	return client, nil
}
