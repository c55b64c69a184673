package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/inkwell-shop/storefront"
	"github.com/inkwell-shop/storefront/application/service"
	"github.com/inkwell-shop/storefront/domain/review"
	"github.com/inkwell-shop/storefront/infrastructure/api/middleware"
	"github.com/inkwell-shop/storefront/infrastructure/api/v1/dto"
)

// ReviewsRouter handles product review endpoints.
type ReviewsRouter struct {
	client *storefront.Client
	logger *slog.Logger
}

// NewReviewsRouter creates a new ReviewsRouter.
func NewReviewsRouter(client *storefront.Client) *ReviewsRouter {
	return &ReviewsRouter{client: client, logger: client.Logger()}
}

// Routes returns the chi router for review endpoints.
func (r *ReviewsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Post("/", r.Create)
	router.Patch("/{id}/helpful", r.MarkHelpful)

	return router
}

// Create handles POST /api/reviews.
//
//	@Summary		Create review
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.ReviewRequest	true	"Review"
//	@Success		201		{object}	dto.ReviewResponse
//	@Failure		400		{object}	middleware.ErrorResponse
//	@Failure		500		{object}	middleware.ErrorResponse
//	@Router			/reviews [post]
func (r *ReviewsRouter) Create(w http.ResponseWriter, req *http.Request) {
	var body dto.ReviewRequest
	if err := decodeJSON(w, req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	created, err := r.client.Reviews.Create(req.Context(), service.ReviewParams{
		ProductID: body.ProductID,
		UserName:  body.UserName,
		UserEmail: body.UserEmail,
		Rating:    int(body.Rating),
		Title:     body.Title,
		Body:      body.Body,
		Images:    body.Images,
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, dto.NewReviewResponse(created))
}

// List handles GET /api/reviews?productId&limit&offset.
//
//	@Summary		List reviews
//	@Tags			reviews
//	@Produce		json
//	@Param			productId	query		string	false	"Product ID"
//	@Param			limit		query		int		false	"Results per page (default: 20)"
//	@Param			offset		query		int		false	"Offset (default: 0)"
//	@Success		200			{array}	dto.ReviewResponse
//	@Failure		400			{object}	middleware.ErrorResponse
//	@Failure		500			{object}	middleware.ErrorResponse
//	@Router			/reviews [get]
func (r *ReviewsRouter) List(w http.ResponseWriter, req *http.Request) {
	reviews, err := r.client.Reviews.List(req.Context(), service.ReviewQuery{
		ProductID: req.URL.Query().Get("productId"),
		Limit:     queryInt(req, "limit", review.DefaultPageSize),
		Offset:    queryInt(req, "offset", 0),
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NewReviewsResponse(reviews))
}

// MarkHelpful handles PATCH /api/reviews/{id}/helpful.
//
//	@Summary		Mark review helpful
//	@Tags			reviews
//	@Produce		json
//	@Param			id	path		string	true	"Review ID"
//	@Success		200	{object}	dto.HelpfulResponse
//	@Failure		404	{object}	middleware.ErrorResponse
//	@Failure		500	{object}	middleware.ErrorResponse
//	@Router			/reviews/{id}/helpful [patch]
func (r *ReviewsRouter) MarkHelpful(w http.ResponseWriter, req *http.Request) {
	updated, err := r.client.Reviews.MarkHelpful(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.HelpfulResponse{ID: updated.ID(), Helpful: updated.Helpful()})
}
