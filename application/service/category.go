package service

import (
	"context"
	"fmt"

	"github.com/inkwell-shop/storefront/domain/catalog"
	"github.com/inkwell-shop/storefront/domain/navigation"
)

// Categories derives the category list from navigation leaves.
type Categories struct {
	nav      navigation.Store
	products catalog.ProductStore
}

// NewCategories creates a new Categories service.
func NewCategories(nav navigation.Store, products catalog.ProductStore) *Categories {
	return &Categories{nav: nav, products: products}
}

// List returns "All Categories" followed by every published leaf, sorted by
// label, each with the newest matching product image when there is one.
func (s *Categories) List(ctx context.Context) ([]catalog.Category, error) {
	leaves, err := s.nav.Leaves(ctx)
	if err != nil {
		return nil, fmt.Errorf("load leaves: %w", err)
	}

	seen := map[string]bool{}
	var keys []string
	for _, leaf := range leaves {
		for _, k := range catalog.CategoryKeys(leaf) {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}

	images, err := s.products.LatestImages(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load category images: %w", err)
	}
	return catalog.DeriveCategories(leaves, images), nil
}
