package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrClientNotFound         = errors.New("client not found")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidClientData      = errors.New("invalid client data")
	ErrUnauthenticated        = errors.New("unauthenticated")
)

// Client represents a registered end-user of the favorites service
type Client struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"not null"`
	Email      string    `json:"email" gorm:"uniqueIndex;not null"`
	Credential string    `json:"-" gorm:"column:hashed_password;not null"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

// TableName specifies the table name
func (Client) TableName() string {
	return "clients"
}

// ClientPatch carries a partial self-service update. Nil fields are left unchanged.
type ClientPatch struct {
	Name  *string
	Email *string
}

// IsEmpty reports whether the patch changes nothing
func (p ClientPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil
}

// Apply copies the supplied fields onto c
func (p ClientPatch) Apply(c *Client) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = NormalizeEmail(*p.Email)
	}
}

// NormalizeEmail is the canonical form used for storage and comparison
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ClientRepository defines the contract for client data access
type ClientRepository interface {
	Create(ctx context.Context, client *Client) error
	FindByID(ctx context.Context, id uint) (*Client, error)
	FindByEmail(ctx context.Context, email string) (*Client, error)
	Update(ctx context.Context, client *Client) error
	// Delete removes the client together with every favorite it owns
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// Authenticator is the credential and token collaborator of the client directory
type Authenticator interface {
	HashPassword(password string) (string, error)
	CheckPassword(credential, password string) bool
	IssueToken(identity string) (string, error)
	VerifyToken(token string) (string, error)
}
