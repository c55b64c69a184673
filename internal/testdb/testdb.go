// Package testdb opens in-memory SQLite databases for tests.
package testdb

import (
	"context"
	"testing"

	"github.com/inkwell-shop/storefront/infrastructure/persistence"
	"github.com/inkwell-shop/storefront/internal/database"
)

// New creates an in-memory SQLite database with the storefront schema
// migrated. The database is closed when the test finishes.
func New(t *testing.T) database.Database {
	t.Helper()
	db := NewPlain(t)
	if err := persistence.AutoMigrate(db); err != nil {
		t.Fatalf("testdb.New: auto migrate: %v", err)
	}
	return db
}

// NewPlain creates an in-memory SQLite database without a schema.
func NewPlain(t *testing.T) database.Database {
	t.Helper()
	db, err := database.NewDatabase(context.Background(), "sqlite:///:memory:")
	if err != nil {
		t.Fatalf("testdb.NewPlain: open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
