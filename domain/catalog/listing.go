package catalog

import (
	"strings"

	"github.com/inkwell-shop/storefront/domain/repository"
)

// Listing page bounds. MaxPage keeps Offset well inside a 32-bit int.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxPage         = 1_000_000
)

// Listing describes one page of the published product listing.
type Listing struct {
	category string
	brand    string
	page     int
	limit    int
}

// NewListing normalises raw listing parameters: an empty category means
// "all", page is clamped to [1, MaxPage] and limit is clamped to [1, MaxPageSize] with
// DefaultPageSize when unset.
func NewListing(category, brand string, page, limit int) Listing {
	category = strings.TrimSpace(category)
	if category == "" {
		category = AllCategoriesValue
	}
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return Listing{category: category, brand: strings.TrimSpace(brand), page: page, limit: limit}
}

// Category returns the requested category.
func (l Listing) Category() string { return l.category }

// Brand returns the requested brand, empty for any.
func (l Listing) Brand() string { return l.brand }

// Page returns the 1-based page number.
func (l Listing) Page() int { return l.page }

// Limit returns the page size.
func (l Listing) Limit() int { return l.limit }

// Offset returns (page-1)*limit.
func (l Listing) Offset() int { return (l.page - 1) * l.limit }

// AllCategories reports whether the category filter is disabled.
func (l Listing) AllCategories() bool {
	return strings.EqualFold(l.category, AllCategoriesValue)
}

// Filters returns the WHERE options shared by the page and count queries.
func (l Listing) Filters() []repository.Option {
	opts := []repository.Option{repository.WithPublished(true)}
	if l.brand != "" {
		opts = append(opts, WithBrand(l.brand))
	}
	if !l.AllCategories() {
		opts = append(opts, WithCategory(l.category))
	}
	return opts
}

// Options returns filters plus newest-first ordering and pagination.
func (l Listing) Options() []repository.Option {
	opts := append(l.Filters(), repository.WithOrderDesc("created_at"))
	return append(opts, repository.WithPagination(l.limit, l.Offset())...)
}

// WithBrand filters by the "brand" column.
func WithBrand(brand string) repository.Option {
	return repository.WithCondition("brand", brand)
}

// WithCategory filters by category slug, ignoring case.
func WithCategory(category string) repository.Option {
	return repository.WithWhere("LOWER(category_slug) = ?", strings.ToLower(category))
}
