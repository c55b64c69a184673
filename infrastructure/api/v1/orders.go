package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/inkwell-shop/storefront"
	"github.com/inkwell-shop/storefront/application/service"
	"github.com/inkwell-shop/storefront/domain/order"
	"github.com/inkwell-shop/storefront/infrastructure/api/middleware"
	"github.com/inkwell-shop/storefront/infrastructure/api/v1/dto"
)

// OrdersRouter handles checkout and the order list.
type OrdersRouter struct {
	client *storefront.Client
	logger *slog.Logger
}

// NewOrdersRouter creates a new OrdersRouter.
func NewOrdersRouter(client *storefront.Client) *OrdersRouter {
	return &OrdersRouter{client: client, logger: client.Logger()}
}

// CheckoutRoutes returns the chi router mounted at /checkout.
func (r *OrdersRouter) CheckoutRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", r.Checkout)
	return router
}

// Routes returns the chi router mounted at /orders.
func (r *OrdersRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", r.List)
	return router
}

// Checkout handles POST /api/checkout. The order and its items are written
// in one transaction.
//
//	@Summary		Place an order
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.CheckoutRequest	true	"Cart and contact details"
//	@Success		201		{object}	dto.CheckoutResponse
//	@Failure		400		{object}	middleware.ErrorResponse
//	@Failure		500		{object}	middleware.ErrorResponse
//	@Router			/checkout [post]
func (r *OrdersRouter) Checkout(w http.ResponseWriter, req *http.Request) {
	var body dto.CheckoutRequest
	if err := decodeJSON(w, req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	items := make([]service.CheckoutItem, len(body.Items))
	for i, it := range body.Items {
		items[i] = service.CheckoutItem{
			ProductID:      it.ProductID,
			ProductName:    it.ProductName,
			UnitPriceMinor: it.UnitPriceMinor,
			Quantity:       it.Quantity,
			SubtotalMinor:  it.SubtotalMinor,
			ImageURL:       it.ImageURL,
		}
	}

	placed, err := r.client.Checkout.Place(req.Context(), service.CheckoutParams{
		Billing: order.Contact{
			Name:    body.Billing.Name,
			Email:   body.Billing.Email,
			Address: body.Billing.Address.Domain(),
		},
		Shipping:      body.Shipping.Address.Domain(),
		PaymentMethod: body.Payment,
		Items:         items,
		Total:         body.Total,
	})
	if err != nil {
		middleware.WriteError(w, req, middleware.ServerMessage(err, "Order failed"), r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, dto.CheckoutResponse{
		Message: "Order placed successfully",
		OrderID: placed.ID(),
	})
}

// List handles GET /api/orders.
//
//	@Summary		List orders
//	@Tags			orders
//	@Produce		json
//	@Success		200	{object}	dto.OrderListResponse
//	@Failure		500	{object}	middleware.ErrorResponse
//	@Router			/orders [get]
func (r *OrdersRouter) List(w http.ResponseWriter, req *http.Request) {
	orders, err := r.client.Checkout.Orders(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NewOrderListResponse(orders))
}
