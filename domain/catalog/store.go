package catalog

import (
	"context"

	"github.com/inkwell-shop/storefront/domain/repository"
)

// ProductStore defines persistence for products.
type ProductStore interface {
	repository.Store[Product]
	Save(ctx context.Context, product Product) (Product, error)
	// LatestImages maps each lower-cased category identifier in keys to the
	// first image of the newest published product filed under it. Keys with
	// no matching product are absent.
	LatestImages(ctx context.Context, keys []string) (map[string]string, error)
}
