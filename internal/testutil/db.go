// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	clientdomain "github.com/tair/favorites-service/internal/client/domain"
	favoritedomain "github.com/tair/favorites-service/internal/favorite/domain"
	"github.com/tair/favorites-service/pkg/database"
)

// OpenTestDB returns a migrated in-memory sqlite database private to the test
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), database.GormConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&clientdomain.Client{}, &favoritedomain.Favorite{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// SeedClient inserts a client row with a placeholder credential
func SeedClient(t *testing.T, db *gorm.DB, name, email string) *clientdomain.Client {
	t.Helper()

	client := &clientdomain.Client{Name: name, Email: email, Credential: "x"}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return client
}
