package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/favorites-service/internal/client/domain"
)

// TokenTypeBearer is the only token type issued
const TokenTypeBearer = "bearer"

// LoginClientCommand represents the command to authenticate a client
type LoginClientCommand struct {
	Email    string
	Password string
}

// TokenResponse is returned after a successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LoginClientHandler handles client authentication
type LoginClientHandler struct {
	repo domain.ClientRepository
	auth domain.Authenticator
}

// NewLoginClientHandler creates a new login client handler
func NewLoginClientHandler(repo domain.ClientRepository, auth domain.Authenticator) *LoginClientHandler {
	return &LoginClientHandler{repo: repo, auth: auth}
}

// Handle executes the login command. Unknown emails and wrong passwords fail identically.
func (h *LoginClientHandler) Handle(ctx context.Context, cmd LoginClientCommand) (*TokenResponse, error) {
	if cmd.Email == "" || cmd.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	client, err := h.repo.FindByEmail(ctx, cmd.Email)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !h.auth.CheckPassword(client.Credential, cmd.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := h.auth.IssueToken(client.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &TokenResponse{AccessToken: token, TokenType: TokenTypeBearer}, nil
}
