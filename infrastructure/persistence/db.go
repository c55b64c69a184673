// Package persistence provides database storage implementations.
package persistence

import (
	"fmt"

	"github.com/inkwell-shop/storefront/internal/database"
)

// AutoMigrate runs GORM auto migration for all models.
func AutoMigrate(db database.Database) error {
	if err := db.GORM().AutoMigrate(
		&NavLinkModel{},
		&ProductModel{},
		&UserModel{},
		&OrderModel{},
		&OrderItemModel{},
		&ReviewModel{},
	); err != nil {
		return err
	}
	return postMigrate(db)
}

// postMigrate adds indexes GORM tags cannot express.
func postMigrate(db database.Database) error {
	statements := []string{
		`CREATE INDEX IF NOT EXISTS idx_products_category_lower ON products (LOWER(category_slug))`,
		`CREATE INDEX IF NOT EXISTS idx_nav_links_tree ON nav_links (parent_id, display_order)`,
	}
	for _, stmt := range statements {
		if err := db.GORM().Exec(stmt).Error; err != nil {
			return fmt.Errorf("post migrate: %w", err)
		}
	}
	return nil
}
