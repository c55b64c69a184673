package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/inkwell-shop/storefront/domain"
	"github.com/inkwell-shop/storefront/domain/account"
	"github.com/inkwell-shop/storefront/internal/database"
	"gorm.io/gorm"
)

// UserStore implements account.Store using GORM.
type UserStore struct {
	database.Repository[account.User, UserModel]
}

// NewUserStore creates a new UserStore.
func NewUserStore(db database.Database) UserStore {
	return UserStore{
		Repository: database.NewRepository[account.User, UserModel](db, UserMapper{}, "user"),
	}
}

// Save creates or updates a user. A second account with the same email and
// user type is reported as domain.ErrConflict.
func (s UserStore) Save(ctx context.Context, u account.User) (account.User, error) {
	model := s.Mapper().ToModel(u)

	db := s.DB(ctx)
	if u.ID() == "" {
		db = db.Create(&model)
	} else {
		db = db.Save(&model)
	}
	if db.Error != nil {
		if errors.Is(db.Error, gorm.ErrDuplicatedKey) {
			return account.User{}, fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}
		return account.User{}, fmt.Errorf("save user: %w", db.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// ClaimResetAttempt increments the attempt counter with a single conditional
// UPDATE, so concurrent confirmations cannot use more than limit attempts.
func (s UserStore) ClaimResetAttempt(ctx context.Context, id string, limit int) (bool, error) {
	result := s.DB(ctx).Model(&UserModel{}).
		Where("id = ? AND reset_code_hash IS NOT NULL AND reset_attempts < ?", id, limit).
		UpdateColumn("reset_attempts", gorm.Expr("reset_attempts + ?", 1))
	if result.Error != nil {
		return false, fmt.Errorf("claim reset attempt: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// ClearReset removes the pending reset code and its attempt count.
func (s UserStore) ClearReset(ctx context.Context, id string) error {
	result := s.DB(ctx).Model(&UserModel{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"reset_code_hash":  nil,
			"reset_expires_at": nil,
			"reset_attempts":   0,
		})
	if result.Error != nil {
		return fmt.Errorf("clear reset: %w", result.Error)
	}
	return nil
}
