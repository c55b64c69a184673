// Package catalog provides the product and category domain types.
package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/inkwell-shop/storefront/domain"
)

// Product is a sellable item listed under a category slug.
type Product struct {
	id           string
	name         string
	modelName    string
	brand        string
	categorySlug string
	price        *float64
	images       []string
	published    bool
	createdAt    time.Time
}

// NewProduct validates and creates a published product that has not been
// persisted yet. Name, category and at least one image are required.
func NewProduct(name, modelName, brand, category string, price *float64, images []string) (Product, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	if name == "" || category == "" {
		return Product{}, fmt.Errorf("%w: name and category are required", domain.ErrValidation)
	}
	if price != nil && *price < 0 {
		return Product{}, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}

	cleaned := make([]string, 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			cleaned = append(cleaned, img)
		}
	}
	if len(cleaned) == 0 {
		return Product{}, fmt.Errorf("%w: at least one image is required", domain.ErrValidation)
	}

	return Product{
		name:         name,
		modelName:    strings.TrimSpace(modelName),
		brand:        strings.TrimSpace(brand),
		categorySlug: category,
		price:        price,
		images:       cleaned,
		published:    true,
	}, nil
}

// ReconstructProduct recreates a Product from persistence.
func ReconstructProduct(
	id, name, modelName, brand, categorySlug string,
	price *float64,
	images []string,
	published bool,
	createdAt time.Time,
) Product {
	return Product{
		id:           id,
		name:         name,
		modelName:    modelName,
		brand:        brand,
		categorySlug: categorySlug,
		price:        price,
		images:       images,
		published:    published,
		createdAt:    createdAt,
	}
}

// ID returns the product identifier.
func (p Product) ID() string { return p.id }

// Name returns the product name.
func (p Product) Name() string { return p.name }

// ModelName returns the model name, possibly empty.
func (p Product) ModelName() string { return p.modelName }

// Brand returns the brand, possibly empty.
func (p Product) Brand() string { return p.brand }

// CategorySlug returns the category the product is listed under.
func (p Product) CategorySlug() string { return p.categorySlug }

// Price returns the price and whether one was set.
func (p Product) Price() (float64, bool) {
	if p.price == nil {
		return 0, false
	}
	return *p.price, true
}

// Images returns the image URLs in display order.
func (p Product) Images() []string {
	result := make([]string, len(p.images))
	copy(result, p.images)
	return result
}

// Published reports whether the product is listed.
func (p Product) Published() bool { return p.published }

// CreatedAt returns the creation time.
func (p Product) CreatedAt() time.Time { return p.createdAt }

// WithPublished returns a copy with the published flag set.
func (p Product) WithPublished(published bool) Product {
	p.published = published
	return p
}
