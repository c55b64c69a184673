package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inkwell-shop/storefront/domain/order"
	"github.com/inkwell-shop/storefront/domain/repository"
)

// CheckoutItem is one cart line as submitted by the client. Money is in
// minor units.
type CheckoutItem struct {
	ProductID      string
	ProductName    string
	UnitPriceMinor int64
	Quantity       int
	SubtotalMinor  int64
	ImageURL       string
}

// CheckoutParams is a checkout submission.
type CheckoutParams struct {
	Billing       order.Contact
	Shipping      order.Address
	PaymentMethod string
	Items         []CheckoutItem
	Total         float64
}

// Checkout places and lists orders.
type Checkout struct {
	repository.Collection[order.Order]
	store  order.Store
	logger *slog.Logger
}

// NewCheckout creates a new Checkout service.
func NewCheckout(store order.Store, logger *slog.Logger) *Checkout {
	return &Checkout{
		Collection: repository.NewCollection[order.Order](store),
		store:      store,
		logger:     logger,
	}
}

// Place writes the order and its items in one transaction.
func (s *Checkout) Place(ctx context.Context, params CheckoutParams) (order.Order, error) {
	items := make([]order.Item, len(params.Items))
	for i, it := range params.Items {
		items[i] = order.NewItem(it.ProductID, it.ProductName, it.UnitPriceMinor, it.Quantity, it.SubtotalMinor, it.ImageURL)
	}

	o, err := order.NewOrder(params.Billing, params.Shipping, params.PaymentMethod, items, params.Total)
	if err != nil {
		return order.Order{}, err
	}

	placed, err := s.store.Place(ctx, o)
	if err != nil {
		return order.Order{}, fmt.Errorf("place order: %w", err)
	}
	s.logger.InfoContext(ctx, "order placed", "order_id", placed.ID(), "items", len(items), "total", placed.TotalAmount())
	return placed, nil
}

// Orders returns every order with its items, newest first.
func (s *Checkout) Orders(ctx context.Context) ([]order.Order, error) {
	return s.store.Find(ctx, repository.WithOrderDesc("created_at"))
}
