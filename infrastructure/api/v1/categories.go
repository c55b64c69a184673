package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/inkwell-shop/storefront"
	"github.com/inkwell-shop/storefront/infrastructure/api/middleware"
	"github.com/inkwell-shop/storefront/infrastructure/api/v1/dto"
)

// CategoriesRouter serves the category list derived from menu leaves.
type CategoriesRouter struct {
	client *storefront.Client
	logger *slog.Logger
}

// NewCategoriesRouter creates a new CategoriesRouter.
func NewCategoriesRouter(client *storefront.Client) *CategoriesRouter {
	return &CategoriesRouter{client: client, logger: client.Logger()}
}

// Routes returns the chi router for category endpoints.
func (r *CategoriesRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", r.List)
	return router
}

// List handles GET /api/categories.
//
//	@Summary		List categories
//	@Description	Categories derived from the leaves of the navigation menu, led by "All Categories"
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{array}	dto.CategoryResponse
//	@Failure		500	{object}	middleware.ErrorResponse
//	@Router			/categories [get]
func (r *CategoriesRouter) List(w http.ResponseWriter, req *http.Request) {
	categories, err := r.client.Categories.List(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	cacheFor(w, categoryCacheSeconds)
	middleware.WriteJSON(w, http.StatusOK, dto.NewCategoriesResponse(categories))
}
