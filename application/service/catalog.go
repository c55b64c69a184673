package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inkwell-shop/storefront/domain/catalog"
	"github.com/inkwell-shop/storefront/domain/repository"
	"golang.org/x/sync/errgroup"
)

// ProductParams configures a new product.
type ProductParams struct {
	Name      string
	ModelName string
	Brand     string
	Category  string
	Price     *float64
	Images    []string
	Published *bool
}

// ProductPage is one page of the product listing.
type ProductPage struct {
	Page  int
	Limit int
	Total int64
	Items []catalog.Product
}

// Catalog manages products.
type Catalog struct {
	repository.Collection[catalog.Product]
	store  catalog.ProductStore
	logger *slog.Logger
}

// NewCatalog creates a new Catalog service.
func NewCatalog(store catalog.ProductStore, logger *slog.Logger) *Catalog {
	return &Catalog{
		Collection: repository.NewCollection[catalog.Product](store),
		store:      store,
		logger:     logger,
	}
}

// Create validates and stores a product.
func (s *Catalog) Create(ctx context.Context, params ProductParams) (catalog.Product, error) {
	product, err := catalog.NewProduct(params.Name, params.ModelName, params.Brand, params.Category, params.Price, params.Images)
	if err != nil {
		return catalog.Product{}, err
	}
	if params.Published != nil {
		product = product.WithPublished(*params.Published)
	}

	saved, err := s.store.Save(ctx, product)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("create product: %w", err)
	}
	s.logger.InfoContext(ctx, "product saved", "product_id", saved.ID(), "category", saved.CategorySlug())
	return saved, nil
}

// List returns one page of published products and the total matching count.
// The page and the count are fetched concurrently.
func (s *Catalog) List(ctx context.Context, listing catalog.Listing) (ProductPage, error) {
	page := ProductPage{Page: listing.Page(), Limit: listing.Limit()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.store.Find(gctx, listing.Options()...)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		page.Items = items
		return nil
	})
	g.Go(func() error {
		total, err := s.store.Count(gctx, listing.Filters()...)
		if err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		page.Total = total
		return nil
	})
	if err := g.Wait(); err != nil {
		return ProductPage{}, err
	}
	return page, nil
}

// Get returns a product by id.
func (s *Catalog) Get(ctx context.Context, id string) (catalog.Product, error) {
	return s.store.FindOne(ctx, repository.WithID(id))
}
