package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/favorites-service/internal/favorite/domain"
	"github.com/tair/favorites-service/pkg/database"
)

// GormLedger implements the favorites Ledger using GORM
type GormLedger struct {
	db *gorm.DB
}

// NewGormLedger creates a new GORM favorites ledger
func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

// ListProductIDs returns the client's product ids in the order they were added
func (l *GormLedger) ListProductIDs(ctx context.Context, clientID uint) ([]uint, error) {
	ids := []uint{}
	err := l.db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Where("client_id = ?", clientID).
		Order("id").
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return ids, nil
}

// Contains reports whether the pair is recorded
func (l *GormLedger) Contains(ctx context.Context, clientID, productID uint) (bool, error) {
	var count int64
	err := l.db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Where("client_id = ? AND product_id = ?", clientID, productID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

// Add records the pair. It returns nil, nil when the pair already exists,
// including when a concurrent add won the race.
func (l *GormLedger) Add(ctx context.Context, clientID, productID uint) (*domain.Favorite, error) {
	favorite := &domain.Favorite{ClientID: clientID, ProductID: productID}

	result := l.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(favorite)
	if result.Error != nil {
		if database.IsUniqueViolation(result.Error) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to add favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return favorite, nil
}

// Remove deletes the pair and returns the removed row, or nil, nil when absent
func (l *GormLedger) Remove(ctx context.Context, clientID, productID uint) (*domain.Favorite, error) {
	var removed *domain.Favorite

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var favorite domain.Favorite
		err := tx.Where("client_id = ? AND product_id = ?", clientID, productID).
			First(&favorite).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		result := tx.Delete(&domain.Favorite{}, favorite.ID)
		if result.Error != nil {
			return result.Error
		}
		// lost a race with a concurrent remove
		if result.RowsAffected == 0 {
			return nil
		}
		removed = &favorite
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to remove favorite: %w", err)
	}
	return removed, nil
}

// AutoMigrate runs database migrations for the favorites table
func (l *GormLedger) AutoMigrate() error {
	return l.db.AutoMigrate(&domain.Favorite{})
}
