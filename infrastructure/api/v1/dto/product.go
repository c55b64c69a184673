package dto

import (
	"time"

	"github.com/inkwell-shop/storefront/domain/catalog"
)

// ProductRequest is the JSON body of POST /products. Multipart submissions
// use the same field names.
type ProductRequest struct {
	Name      string   `json:"name" validate:"required"`
	ModelName string   `json:"model_name"`
	Brand     string   `json:"brand"`
	Category  string   `json:"category" validate:"required"`
	Price     *float64 `json:"price"`
	Images    []string `json:"images"`
	Published *bool    `json:"published"`
}

// ProductSummary is a product as it appears in the listing.
type ProductSummary struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	ModelName string   `json:"model_name"`
	Brand     string   `json:"brand"`
	Price     *float64 `json:"price"`
	Images    []string `json:"images"`
}

// ProductResponse is a single product.
type ProductResponse struct {
	ProductSummary
	Category  string    `json:"category_slug"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductListResponse is one page of the listing.
type ProductListResponse struct {
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Total int64            `json:"total"`
	Items []ProductSummary `json:"items"`
}

// NewProductSummary converts a product for the listing.
func NewProductSummary(p catalog.Product) ProductSummary {
	s := ProductSummary{
		ID:        p.ID(),
		Name:      p.Name(),
		ModelName: p.ModelName(),
		Brand:     p.Brand(),
		Images:    p.Images(),
	}
	if price, ok := p.Price(); ok {
		s.Price = &price
	}
	if s.Images == nil {
		s.Images = []string{}
	}
	return s
}

// NewProductResponse converts a single product.
func NewProductResponse(p catalog.Product) ProductResponse {
	return ProductResponse{
		ProductSummary: NewProductSummary(p),
		Category:       p.CategorySlug(),
		Published:      p.Published(),
		CreatedAt:      p.CreatedAt(),
	}
}

// NewProductListResponse converts a listing page.
func NewProductListResponse(page, limit int, total int64, items []catalog.Product) ProductListResponse {
	out := ProductListResponse{Page: page, Limit: limit, Total: total, Items: make([]ProductSummary, len(items))}
	for i, p := range items {
		out.Items[i] = NewProductSummary(p)
	}
	return out
}

// UploadResponse is the result of POST /upload.
type UploadResponse struct {
	URL string `json:"url"`
}
