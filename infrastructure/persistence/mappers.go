package persistence

import (
	"time"

	"github.com/inkwell-shop/storefront/domain/account"
	"github.com/inkwell-shop/storefront/domain/catalog"
	"github.com/inkwell-shop/storefront/domain/navigation"
	"github.com/inkwell-shop/storefront/domain/order"
	"github.com/inkwell-shop/storefront/domain/review"
)

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NavLinkMapper maps between navigation.NavNode and NavLinkModel.
type NavLinkMapper struct{}

// ToDomain converts a NavLinkModel to a NavNode.
func (NavLinkMapper) ToDomain(m NavLinkModel) navigation.NavNode {
	return navigation.ReconstructNavNode(m.ID, deref(m.ParentID), m.Label, m.Slug, m.DisplayOrder, m.Published, m.CreatedAt)
}

// ToModel converts a NavNode to a NavLinkModel.
func (NavLinkMapper) ToModel(n navigation.NavNode) NavLinkModel {
	return NavLinkModel{
		ID:           n.ID(),
		ParentID:     optional(n.ParentID()),
		Label:        n.Label(),
		Slug:         n.Slug(),
		DisplayOrder: n.DisplayOrder(),
		Published:    n.Published(),
		CreatedAt:    n.CreatedAt(),
	}
}

// ProductMapper maps between catalog.Product and ProductModel.
type ProductMapper struct{}

// ToDomain converts a ProductModel to a Product.
func (ProductMapper) ToDomain(m ProductModel) catalog.Product {
	return catalog.ReconstructProduct(
		m.ID, m.Name, deref(m.ModelName), deref(m.Brand), m.CategorySlug,
		m.Price, m.Images, m.Published, m.CreatedAt,
	)
}

// ToModel converts a Product to a ProductModel.
func (ProductMapper) ToModel(p catalog.Product) ProductModel {
	var price *float64
	if v, ok := p.Price(); ok {
		price = &v
	}
	return ProductModel{
		ID:           p.ID(),
		Name:         p.Name(),
		ModelName:    optional(p.ModelName()),
		Brand:        optional(p.Brand()),
		CategorySlug: p.CategorySlug(),
		Price:        price,
		Images:       p.Images(),
		Published:    p.Published(),
		CreatedAt:    p.CreatedAt(),
	}
}

// UserMapper maps between account.User and UserModel.
type UserMapper struct{}

// ToDomain converts a UserModel to a User.
func (UserMapper) ToDomain(m UserModel) account.User {
	var expires time.Time
	if m.ResetExpiresAt != nil {
		expires = *m.ResetExpiresAt
	}
	return account.ReconstructUser(m.ID, m.Name, m.Email, m.Password, m.UserType, deref(m.ResetCodeHash), expires, m.ResetAttempts, m.CreatedAt)
}

// ToModel converts a User to a UserModel.
func (UserMapper) ToModel(u account.User) UserModel {
	var expires *time.Time
	if t := u.ResetExpiresAt(); !t.IsZero() {
		expires = &t
	}
	return UserModel{
		ID:             u.ID(),
		Name:           u.Name(),
		Email:          u.Email(),
		Password:       u.PasswordHash(),
		UserType:       u.UserType(),
		ResetCodeHash:  optional(u.ResetCodeHash()),
		ResetExpiresAt: expires,
		ResetAttempts:  u.ResetAttempts(),
		CreatedAt:      u.CreatedAt(),
	}
}

// OrderMapper maps between order.Order and OrderModel with its items.
type OrderMapper struct{}

// ToDomain converts an OrderModel to an Order.
func (OrderMapper) ToDomain(m OrderModel) order.Order {
	items := make([]order.Item, len(m.Items))
	for i, it := range m.Items {
		items[i] = order.NewItem(it.ProductID, it.ProductName, it.UnitPriceMinor, it.Quantity, it.SubtotalMinor, it.ImageURL)
	}
	billing := order.Contact{
		Name:    m.BillingAddr.Name,
		Email:   m.BillingAddr.Email,
		Address: addressFromColumn(m.BillingAddr.Address),
	}
	return order.ReconstructOrder(
		m.ID, deref(m.Email), m.TotalAmount, m.Currency,
		order.PaymentStatus(m.PaymentStatus),
		order.OrderStatus(m.OrderStatus),
		order.FulfillStatus(m.FulfillStatus),
		deref(m.PaymentMethod),
		addressFromColumn(m.ShippingAddr),
		billing,
		items,
		m.CreatedAt,
	)
}

// ToModel converts an Order to an OrderModel. Item order is kept in Position.
func (OrderMapper) ToModel(o order.Order) OrderModel {
	items := make([]OrderItemModel, len(o.Items()))
	for i, it := range o.Items() {
		items[i] = OrderItemModel{
			OrderID:        o.ID(),
			Position:       i,
			ProductID:      it.ProductID(),
			ProductName:    it.ProductName(),
			UnitPriceMinor: it.UnitPriceMinor(),
			Quantity:       it.Quantity(),
			SubtotalMinor:  it.SubtotalMinor(),
			ImageURL:       it.ImageURL(),
		}
	}
	billing := o.Billing()
	return OrderModel{
		ID:            o.ID(),
		Email:         optional(o.Email()),
		TotalAmount:   o.TotalAmount(),
		Currency:      o.Currency(),
		PaymentStatus: string(o.PaymentStatus()),
		OrderStatus:   string(o.OrderStatus()),
		FulfillStatus: string(o.FulfillStatus()),
		PaymentMethod: optional(o.PaymentMethod()),
		ShippingAddr:  addressToColumn(o.Shipping()),
		BillingAddr: BillingColumn{
			Name:    billing.Name,
			Email:   billing.Email,
			Address: addressToColumn(billing.Address),
		},
		Items:     items,
		CreatedAt: o.CreatedAt(),
	}
}

func addressToColumn(a order.Address) AddressColumn {
	return AddressColumn(a)
}

func addressFromColumn(c AddressColumn) order.Address {
	return order.Address(c)
}

// ReviewMapper maps between review.Review and ReviewModel.
type ReviewMapper struct{}

// ToDomain converts a ReviewModel to a Review.
func (ReviewMapper) ToDomain(m ReviewModel) review.Review {
	return review.ReconstructReview(
		m.ID, m.ProductID, m.UserName, deref(m.UserEmail),
		m.Rating, deref(m.Title), m.Body, m.Images,
		m.Helpful, m.CreatedAt, m.UpdatedAt,
	)
}

// ToModel converts a Review to a ReviewModel. Blank optional strings and an
// empty image list are stored as NULL.
func (ReviewMapper) ToModel(r review.Review) ReviewModel {
	images := r.Images()
	if len(images) == 0 {
		images = nil
	}
	return ReviewModel{
		ID:        r.ID(),
		ProductID: r.ProductID(),
		UserName:  r.UserName(),
		UserEmail: optional(r.UserEmail()),
		Rating:    r.Rating(),
		Title:     optional(r.Title()),
		Body:      r.Body(),
		Images:    images,
		Helpful:   r.Helpful(),
		CreatedAt: r.CreatedAt(),
		UpdatedAt: r.UpdatedAt(),
	}
}
