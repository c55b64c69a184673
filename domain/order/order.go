// Package order provides the checkout order aggregate.
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/inkwell-shop/storefront/domain"
)

// DefaultCurrency is the currency every order is placed in.
const DefaultCurrency = "INR"

// PaymentStatus is the payment state of an order.
type PaymentStatus string

// OrderStatus is the processing state of an order.
type OrderStatus string

// FulfillStatus is the warehouse state of an order.
type FulfillStatus string

// Initial states assigned at checkout.
const (
	PaymentPending   PaymentStatus = "PENDING"
	OrderPending     OrderStatus   = "PENDING"
	FulfillNotPacked FulfillStatus = "NOT_PACKED"
)

// Address is a postal address as entered at checkout.
type Address struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
}

// Contact is the billing party of an order.
type Contact struct {
	Name    string
	Email   string
	Address Address
}

// Item is one order line. Money is in minor units.
type Item struct {
	productID      string
	productName    string
	unitPriceMinor int64
	quantity       int
	subtotalMinor  int64
	imageURL       string
}

// NewItem creates an order line.
func NewItem(productID, productName string, unitPriceMinor int64, quantity int, subtotalMinor int64, imageURL string) Item {
	return Item{
		productID:      strings.TrimSpace(productID),
		productName:    strings.TrimSpace(productName),
		unitPriceMinor: unitPriceMinor,
		quantity:       quantity,
		subtotalMinor:  subtotalMinor,
		imageURL:       strings.TrimSpace(imageURL),
	}
}

// ProductID returns the ordered product's id.
func (i Item) ProductID() string { return i.productID }

// ProductName returns the product name at the time of ordering.
func (i Item) ProductName() string { return i.productName }

// UnitPriceMinor returns the unit price in minor units.
func (i Item) UnitPriceMinor() int64 { return i.unitPriceMinor }

// Quantity returns the quantity ordered.
func (i Item) Quantity() int { return i.quantity }

// SubtotalMinor returns the line total in minor units.
func (i Item) SubtotalMinor() int64 { return i.subtotalMinor }

// ImageURL returns the product image shown at checkout.
func (i Item) ImageURL() string { return i.imageURL }

// Order is a placed checkout.
type Order struct {
	id            string
	email         string
	totalAmount   float64
	currency      string
	paymentStatus PaymentStatus
	orderStatus   OrderStatus
	fulfillStatus FulfillStatus
	paymentMethod string
	shipping      Address
	billing       Contact
	items         []Item
	createdAt     time.Time
}

// NewOrder creates a pending order. At least one item is required.
func NewOrder(billing Contact, shipping Address, paymentMethod string, items []Item, total float64) (Order, error) {
	if len(items) == 0 {
		return Order{}, fmt.Errorf("%w: no items in order", domain.ErrValidation)
	}
	if total < 0 {
		total = 0
	}
	billing.Email = strings.TrimSpace(billing.Email)
	return Order{
		email:         billing.Email,
		totalAmount:   total,
		currency:      DefaultCurrency,
		paymentStatus: PaymentPending,
		orderStatus:   OrderPending,
		fulfillStatus: FulfillNotPacked,
		paymentMethod: strings.TrimSpace(paymentMethod),
		shipping:      shipping,
		billing:       billing,
		items:         items,
	}, nil
}

// ReconstructOrder recreates an Order from persistence.
func ReconstructOrder(
	id, email string,
	totalAmount float64,
	currency string,
	paymentStatus PaymentStatus,
	orderStatus OrderStatus,
	fulfillStatus FulfillStatus,
	paymentMethod string,
	shipping Address,
	billing Contact,
	items []Item,
	createdAt time.Time,
) Order {
	return Order{
		id:            id,
		email:         email,
		totalAmount:   totalAmount,
		currency:      currency,
		paymentStatus: paymentStatus,
		orderStatus:   orderStatus,
		fulfillStatus: fulfillStatus,
		paymentMethod: paymentMethod,
		shipping:      shipping,
		billing:       billing,
		items:         items,
		createdAt:     createdAt,
	}
}

// ID returns the order identifier.
func (o Order) ID() string { return o.id }

// Email returns the billing e-mail, possibly empty.
func (o Order) Email() string { return o.email }

// TotalAmount returns the order total in major units.
func (o Order) TotalAmount() float64 { return o.totalAmount }

// Currency returns the ISO currency code.
func (o Order) Currency() string { return o.currency }

// PaymentStatus returns the payment state.
func (o Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// OrderStatus returns the processing state.
func (o Order) OrderStatus() OrderStatus { return o.orderStatus }

// FulfillStatus returns the warehouse state.
func (o Order) FulfillStatus() FulfillStatus { return o.fulfillStatus }

// PaymentMethod returns the payment method chosen at checkout.
func (o Order) PaymentMethod() string { return o.paymentMethod }

// Shipping returns the shipping address.
func (o Order) Shipping() Address { return o.shipping }

// Billing returns the billing contact.
func (o Order) Billing() Contact { return o.billing }

// Items returns the order lines.
func (o Order) Items() []Item {
	result := make([]Item, len(o.items))
	copy(result, o.items)
	return result
}

// CreatedAt returns when the order was placed.
func (o Order) CreatedAt() time.Time { return o.createdAt }
