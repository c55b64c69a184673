package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkwell-shop/storefront/domain/catalog"
	"github.com/inkwell-shop/storefront/domain/repository"
	"github.com/inkwell-shop/storefront/internal/database"
)

// ProductStore implements catalog.ProductStore using GORM.
type ProductStore struct {
	database.Repository[catalog.Product, ProductModel]
}

// NewProductStore creates a new ProductStore.
func NewProductStore(db database.Database) ProductStore {
	return ProductStore{
		Repository: database.NewRepository[catalog.Product, ProductModel](db, ProductMapper{}, "product"),
	}
}

// Save inserts a new product or updates an existing one.
func (s ProductStore) Save(ctx context.Context, product catalog.Product) (catalog.Product, error) {
	model := s.Mapper().ToModel(product)

	db := s.DB(ctx)
	if product.ID() == "" {
		db = db.Create(&model)
	} else {
		db = db.Save(&model)
	}
	if db.Error != nil {
		return catalog.Product{}, fmt.Errorf("save product: %w", db.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// LatestImages runs a single query over every key and keeps, per key, the
// first image of the newest published product.
func (s ProductStore) LatestImages(ctx context.Context, keys []string) (map[string]string, error) {
	images := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return images, nil
	}

	lowered := make([]string, len(keys))
	for i, k := range keys {
		lowered[i] = strings.ToLower(k)
	}

	var models []ProductModel
	db := database.ApplyOptions(s.DB(ctx).Model(&ProductModel{}).Select("category_slug", "images", "created_at"),
		repository.WithPublished(true),
		repository.WithWhere("LOWER(category_slug) IN ?", lowered),
		repository.WithOrderDesc("created_at"),
	)
	if err := db.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("find category images: %w", err)
	}

	for _, m := range models {
		key := strings.ToLower(m.CategorySlug)
		if _, seen := images[key]; seen || len(m.Images) == 0 {
			continue
		}
		images[key] = m.Images[0]
	}
	return images, nil
}
