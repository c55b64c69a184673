package order

import (
	"context"

	"github.com/inkwell-shop/storefront/domain/repository"
)

// Store defines persistence for orders.
type Store interface {
	repository.Store[Order]
	// Place writes the order and all of its items atomically.
	Place(ctx context.Context, o Order) (Order, error)
}

// WithEmail filters by the "email" column.
func WithEmail(email string) repository.Option {
	return repository.WithCondition("email", email)
}
