package query

import (
	"context"
	"errors"

	"github.com/tair/favorites-service/internal/client/domain"
)

// AuthenticateTokenQuery resolves a bearer token to its client
type AuthenticateTokenQuery struct {
	Token string
}

// AuthenticateTokenHandler verifies tokens and loads the client they identify
type AuthenticateTokenHandler struct {
	repo domain.ClientRepository
	auth domain.Authenticator
}

// NewAuthenticateTokenHandler creates a new token authentication handler
func NewAuthenticateTokenHandler(repo domain.ClientRepository, auth domain.Authenticator) *AuthenticateTokenHandler {
	return &AuthenticateTokenHandler{repo: repo, auth: auth}
}

// Handle returns ErrUnauthenticated for every invalid, expired or orphaned token
func (h *AuthenticateTokenHandler) Handle(ctx context.Context, q AuthenticateTokenQuery) (*domain.Client, error) {
	if q.Token == "" {
		return nil, domain.ErrUnauthenticated
	}

	email, err := h.auth.VerifyToken(q.Token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	client, err := h.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	return client, nil
}
