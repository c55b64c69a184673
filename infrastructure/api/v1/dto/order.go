package dto

import (
	"time"

	"github.com/inkwell-shop/storefront/domain/order"
)

// Address is a postal address.
type Address struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// Domain converts to order.Address.
func (a Address) Domain() order.Address {
	return order.Address{
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Phone:      a.Phone,
	}
}

// Billing is the buyer's contact block.
type Billing struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Address Address `json:"address"`
}

// Shipping is the delivery block.
type Shipping struct {
	Address Address `json:"address"`
}

// CheckoutItem is one cart line. Money is in minor units.
type CheckoutItem struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	UnitPriceMinor int64  `json:"unit_price_minor"`
	Quantity       int    `json:"quantity"`
	SubtotalMinor  int64  `json:"subtotal_minor"`
	ImageURL       string `json:"image_url"`
}

// CheckoutRequest is the body of POST /checkout.
type CheckoutRequest struct {
	Billing  Billing        `json:"billing"`
	Shipping Shipping       `json:"shipping"`
	Payment  string         `json:"payment"`
	Items    []CheckoutItem `json:"items"`
	Total    float64        `json:"total"`
}

// CheckoutResponse acknowledges a placed order.
type CheckoutResponse struct {
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}

// OrderItemResponse is one line of a listed order.
type OrderItemResponse struct {
	ProductName    string `json:"product_name"`
	ImageURL       string `json:"image_url"`
	Quantity       int    `json:"quantity"`
	UnitPriceMinor int64  `json:"unit_price_minor"`
}

// OrderResponse is a listed order.
type OrderResponse struct {
	ID            string              `json:"id"`
	CreatedAt     time.Time           `json:"created_at"`
	Email         string              `json:"email"`
	TotalAmount   float64             `json:"total_amount"`
	Currency      string              `json:"currency"`
	PaymentStatus string              `json:"payment_status"`
	OrderStatus   string              `json:"order_status"`
	FulfillStatus string              `json:"fulfill_status"`
	Items         []OrderItemResponse `json:"items"`
}

// OrderListResponse is the body of GET /orders.
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// NewOrderListResponse converts orders.
func NewOrderListResponse(orders []order.Order) OrderListResponse {
	out := OrderListResponse{Orders: make([]OrderResponse, len(orders))}
	for i, o := range orders {
		items := o.Items()
		resp := OrderResponse{
			ID:            o.ID(),
			CreatedAt:     o.CreatedAt(),
			Email:         o.Email(),
			TotalAmount:   o.TotalAmount(),
			Currency:      o.Currency(),
			PaymentStatus: string(o.PaymentStatus()),
			OrderStatus:   string(o.OrderStatus()),
			FulfillStatus: string(o.FulfillStatus()),
			Items:         make([]OrderItemResponse, len(items)),
		}
		for j, it := range items {
			resp.Items[j] = OrderItemResponse{
				ProductName:    it.ProductName(),
				ImageURL:       it.ImageURL(),
				Quantity:       it.Quantity(),
				UnitPriceMinor: it.UnitPriceMinor(),
			}
		}
		out.Orders[i] = resp
	}
	return out
}
