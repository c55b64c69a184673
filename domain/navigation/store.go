package navigation

import (
	"context"

	"github.com/inkwell-shop/storefront/domain/repository"
)

// Store defines persistence for navigation links.
type Store interface {
	repository.Store[NavNode]
	// InsertTree writes sub atomically and returns the root id.
	InsertTree(ctx context.Context, sub Submission) (string, error)
	// Leaves returns published nodes that no row references as parent.
	Leaves(ctx context.Context) ([]NavNode, error)
}

// WithRoots restricts results to nodes without a parent.
func WithRoots() repository.Option {
	return repository.WithWhere("parent_id IS NULL")
}

// WithSlug filters by the "slug" column.
func WithSlug(slug string) repository.Option {
	return repository.WithCondition("slug", slug)
}

// WithTreeOrder orders rows the way BuildMenu expects them: roots first,
// then grouped by parent, then by display order.
func WithTreeOrder() []repository.Option {
	return []repository.Option{
		repository.WithOrderExpr("parent_id IS NOT NULL"),
		repository.WithOrderAsc("parent_id"),
		repository.WithOrderAsc("display_order"),
		repository.WithOrderAsc("created_at"),
	}
}
