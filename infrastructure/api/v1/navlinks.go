// Package v1 provides the storefront HTTP routes.
package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/inkwell-shop/storefront"
	"github.com/inkwell-shop/storefront/infrastructure/api/middleware"
	"github.com/inkwell-shop/storefront/infrastructure/api/v1/dto"
)

// NavLinksRouter handles the navigation menu endpoints.
type NavLinksRouter struct {
	client *storefront.Client
	logger *slog.Logger
}

// NewNavLinksRouter creates a new NavLinksRouter.
func NewNavLinksRouter(client *storefront.Client) *NavLinksRouter {
	return &NavLinksRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for navigation endpoints.
func (r *NavLinksRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Post("/", r.Create)

	return router
}

// List handles GET /api/navlinks.
//
//	@Summary		Navigation menu
//	@Description	Published menu entries as a nested tree
//	@Tags			navigation
//	@Produce		json
//	@Success		200	{array}	dto.MenuNodeResponse
//	@Failure		500	{object}	middleware.ErrorResponse
//	@Router			/navlinks [get]
func (r *NavLinksRouter) List(w http.ResponseWriter, req *http.Request) {
	menu, err := r.client.Navigation.Menu(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	cacheFor(w, navCacheSeconds)
	middleware.WriteJSON(w, http.StatusOK, dto.NewMenuResponse(menu))
}

// Create handles POST /api/navlinks. The whole subtree is written in one
// transaction.
//
//	@Summary		Save a menu tree
//	@Description	Insert a root entry and its nested submenu. Nothing is kept if any entry fails.
//	@Tags			navigation
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.MenuSubmission	true	"Menu tree"
//	@Success		201		{object}	dto.CreatedResponse
//	@Failure		400		{object}	middleware.ErrorResponse
//	@Failure		401		{object}	middleware.ErrorResponse
//	@Failure		500		{object}	middleware.ErrorResponse
//	@Security		APIKeyAuth
//	@Router			/navlinks [post]
func (r *NavLinksRouter) Create(w http.ResponseWriter, req *http.Request) {
	var body dto.MenuSubmission
	if err := decodeJSON(w, req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	id, err := r.client.Navigation.Save(req.Context(), body.Domain())
	if err != nil {
		middleware.WriteError(w, req, middleware.ServerMessage(err, "Insert failed"), r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, dto.CreatedResponse{Message: "Menu saved", ID: id})
}
