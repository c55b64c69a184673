package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inkwell-shop/storefront/domain"
	"github.com/inkwell-shop/storefront/domain/catalog"
	"github.com/inkwell-shop/storefront/domain/repository"
	"github.com/inkwell-shop/storefront/domain/review"
)

// ReviewParams is a review submission.
type ReviewParams struct {
	ProductID string
	UserName  string
	UserEmail string
	Rating    int
	Title     string
	Body      string
	Images    []string
}

// ReviewQuery selects reviews. An empty ProductID lists all reviews.
type ReviewQuery struct {
	ProductID string
	Limit     int
	Offset    int
}

// Reviews manages product reviews.
type Reviews struct {
	store    review.Store
	products catalog.ProductStore
	logger   *slog.Logger
}

// NewReviews creates a new Reviews service.
func NewReviews(store review.Store, products catalog.ProductStore, logger *slog.Logger) *Reviews {
	return &Reviews{store: store, products: products, logger: logger}
}

// Create validates the review, checks the product exists and stores it.
func (s *Reviews) Create(ctx context.Context, params ReviewParams) (review.Review, error) {
	r, err := review.NewReview(params.ProductID, params.UserName, params.UserEmail, params.Rating, params.Title, params.Body, params.Images)
	if err != nil {
		return review.Review{}, err
	}

	exists, err := s.products.Exists(ctx, repository.WithID(r.ProductID()))
	if err != nil {
		return review.Review{}, fmt.Errorf("check product: %w", err)
	}
	if !exists {
		return review.Review{}, fmt.Errorf("%w: unknown product_id", domain.ErrValidation)
	}

	saved, err := s.store.Save(ctx, r)
	if err != nil {
		return review.Review{}, fmt.Errorf("create review: %w", err)
	}
	s.logger.InfoContext(ctx, "review created", "review_id", saved.ID(), "product_id", saved.ProductID(), "rating", saved.Rating())
	return saved, nil
}

// List returns reviews newest first. Limit defaults to DefaultPageSize and
// is capped at MaxPageSize; a negative offset is treated as zero.
func (s *Reviews) List(ctx context.Context, q ReviewQuery) ([]review.Review, error) {
	limit := q.Limit
	if limit < 1 {
		limit = review.DefaultPageSize
	}
	if limit > review.MaxPageSize {
		limit = review.MaxPageSize
	}
	offset := max(q.Offset, 0)

	opts := []repository.Option{repository.WithOrderDesc("created_at")}
	if q.ProductID != "" {
		opts = append(opts, review.WithProductID(q.ProductID))
	}
	opts = append(opts, repository.WithPagination(limit, offset)...)
	return s.store.Find(ctx, opts...)
}

// MarkHelpful increments the helpful counter.
func (s *Reviews) MarkHelpful(ctx context.Context, id string) (review.Review, error) {
	return s.store.IncrementHelpful(ctx, id)
}
