package persistence

import (
	"context"
	"fmt"

	"github.com/inkwell-shop/storefront/domain/navigation"
	"github.com/inkwell-shop/storefront/domain/repository"
	"github.com/inkwell-shop/storefront/internal/database"
	"gorm.io/gorm"
)

// NavigationStore implements navigation.Store using GORM.
type NavigationStore struct {
	database.Repository[navigation.NavNode, NavLinkModel]
}

// NewNavigationStore creates a new NavigationStore.
func NewNavigationStore(db database.Database) NavigationStore {
	return NavigationStore{
		Repository: database.NewRepository[navigation.NavNode, NavLinkModel](db, NavLinkMapper{}, "nav link"),
	}
}

// InsertTree writes the submission inside a single transaction. Any error
// rolls back every row written so far. Cancelling ctx does not abort a
// write that has started.
func (s NavigationStore) InsertTree(ctx context.Context, sub navigation.Submission) (string, error) {
	return database.WithTransactionResult(context.WithoutCancel(ctx), s.Database(), func(tx *gorm.DB) (string, error) {
		return navigation.WriteTree(sub, func(node navigation.NavNode) (navigation.NavNode, error) {
			model := s.Mapper().ToModel(node)
			if err := tx.Create(&model).Error; err != nil {
				return navigation.NavNode{}, fmt.Errorf("insert nav link %s: %w", node.Slug(), err)
			}
			return s.Mapper().ToDomain(model), nil
		})
	})
}

// Leaves returns published rows that no other row references as parent.
func (s NavigationStore) Leaves(ctx context.Context) ([]navigation.NavNode, error) {
	return s.Find(ctx,
		repository.WithPublished(true),
		repository.WithWhere("NOT EXISTS (SELECT 1 FROM nav_links AS child WHERE child.parent_id = nav_links.id)"),
		repository.WithOrderAsc("label"),
	)
}
