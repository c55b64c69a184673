package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/inkwell-shop/storefront/domain/order"
	"github.com/inkwell-shop/storefront/domain/repository"
	"github.com/inkwell-shop/storefront/internal/database"
	"gorm.io/gorm"
)

// OrderStore implements order.Store using GORM.
type OrderStore struct {
	database.Repository[order.Order, OrderModel]
}

// NewOrderStore creates a new OrderStore.
func NewOrderStore(db database.Database) OrderStore {
	return OrderStore{
		Repository: database.NewRepository[order.Order, OrderModel](db, OrderMapper{}, "order"),
	}
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	})
}

// Find returns orders with their items.
func (s OrderStore) Find(ctx context.Context, options ...repository.Option) ([]order.Order, error) {
	var models []OrderModel
	db := database.ApplyOptions(withItems(s.DB(ctx)), options...)
	if err := db.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	orders := make([]order.Order, len(models))
	for i, m := range models {
		orders[i] = s.Mapper().ToDomain(m)
	}
	return orders, nil
}

// FindOne returns a single order with its items.
func (s OrderStore) FindOne(ctx context.Context, options ...repository.Option) (order.Order, error) {
	var model OrderModel
	db := database.ApplyOptions(withItems(s.DB(ctx)), options...)
	if err := db.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return order.Order{}, fmt.Errorf("%w: order", database.ErrNotFound)
		}
		return order.Order{}, fmt.Errorf("find order: %w", err)
	}
	return s.Mapper().ToDomain(model), nil
}

// Place writes the order row and its item rows in one transaction. The
// write runs to completion even if ctx is cancelled.
func (s OrderStore) Place(ctx context.Context, o order.Order) (order.Order, error) {
	return database.WithTransactionResult(context.WithoutCancel(ctx), s.Database(), func(tx *gorm.DB) (order.Order, error) {
		model := s.Mapper().ToModel(o)
		items := model.Items
		model.Items = nil

		if err := tx.Create(&model).Error; err != nil {
			return order.Order{}, fmt.Errorf("insert order: %w", err)
		}
		for i := range items {
			items[i].OrderID = model.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return order.Order{}, fmt.Errorf("insert order items: %w", err)
			}
		}

		model.Items = items
		return s.Mapper().ToDomain(model), nil
	})
}
