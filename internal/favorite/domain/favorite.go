package domain

import (
	"context"
	"errors"
	"time"

	"github.com/tair/favorites-service/internal/catalog"
	clientdomain "github.com/tair/favorites-service/internal/client/domain"
)

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrFavoriteAlreadyExists = errors.New("product already in favorites")
	ErrFavoriteNotFound      = errors.New("favorite product not found")
	ErrInvalidProductID      = errors.New("invalid product id")
)

// Favorite is a (client, product) relation row. The pair is unique.
type Favorite struct {
	ID        uint                 `json:"id" gorm:"primaryKey"`
	ClientID  uint                 `json:"client_id" gorm:"not null;uniqueIndex:unic_client_product"`
	ProductID uint                 `json:"product_id" gorm:"not null;uniqueIndex:unic_client_product"`
	CreatedAt time.Time            `json:"created_at"`
	Client    *clientdomain.Client `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorite_products"
}

// Ledger owns the favorites relation. Product existence is not checked here.
type Ledger interface {
	ListProductIDs(ctx context.Context, clientID uint) ([]uint, error)
	Contains(ctx context.Context, clientID, productID uint) (bool, error)
	// Add returns nil without error when the pair already exists
	Add(ctx context.Context, clientID, productID uint) (*Favorite, error)
	// Remove returns nil without error when there was nothing to remove
	Remove(ctx context.Context, clientID, productID uint) (*Favorite, error)
}

// Catalog is the gateway to the external product catalog
type Catalog interface {
	FetchOne(ctx context.Context, productID uint) (catalog.Lookup, error)
	FetchMany(ctx context.Context, productIDs []uint) []catalog.Product
}
