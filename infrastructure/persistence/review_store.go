package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/inkwell-shop/storefront/domain/repository"
	"github.com/inkwell-shop/storefront/domain/review"
	"github.com/inkwell-shop/storefront/internal/database"
	"gorm.io/gorm"
)

// ReviewStore implements review.Store using GORM.
type ReviewStore struct {
	database.Repository[review.Review, ReviewModel]
}

// NewReviewStore creates a new ReviewStore.
func NewReviewStore(db database.Database) ReviewStore {
	return ReviewStore{
		Repository: database.NewRepository[review.Review, ReviewModel](db, ReviewMapper{}, "review"),
	}
}

// Save inserts a new review or updates an existing one.
func (s ReviewStore) Save(ctx context.Context, r review.Review) (review.Review, error) {
	model := s.Mapper().ToModel(r)

	db := s.DB(ctx)
	if r.ID() == "" {
		db = db.Create(&model)
	} else {
		db = db.Save(&model)
	}
	if db.Error != nil {
		return review.Review{}, fmt.Errorf("save review: %w", db.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// IncrementHelpful bumps the counter with a single UPDATE and reads the row
// back in the same transaction.
func (s ReviewStore) IncrementHelpful(ctx context.Context, id string) (review.Review, error) {
	return database.WithTransactionResult(context.WithoutCancel(ctx), s.Database(), func(tx *gorm.DB) (review.Review, error) {
		result := tx.Model(&ReviewModel{}).
			Where("id = ?", id).
			UpdateColumns(map[string]any{
				"helpful":    gorm.Expr("helpful + ?", 1),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return review.Review{}, fmt.Errorf("increment helpful: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return review.Review{}, fmt.Errorf("%w: review %s", database.ErrNotFound, id)
		}

		var model ReviewModel
		if err := database.ApplyOptions(tx, repository.WithID(id)).First(&model).Error; err != nil {
			return review.Review{}, fmt.Errorf("reload review: %w", err)
		}
		return s.Mapper().ToDomain(model), nil
	})
}
