package review

import (
	"context"

	"github.com/inkwell-shop/storefront/domain/repository"
)

// Page size bounds for review listings.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Store defines persistence for reviews.
type Store interface {
	repository.Store[Review]
	Save(ctx context.Context, r Review) (Review, error)
	// IncrementHelpful adds one to the helpful counter and returns the
	// updated review.
	IncrementHelpful(ctx context.Context, id string) (Review, error)
}

// WithProductID filters by the "product_id" column.
func WithProductID(id string) repository.Option {
	return repository.WithCondition("product_id", id)
}
