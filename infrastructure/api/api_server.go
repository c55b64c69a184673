package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/inkwell-shop/storefront"
	apimiddleware "github.com/inkwell-shop/storefront/infrastructure/api/middleware"
	v1 "github.com/inkwell-shop/storefront/infrastructure/api/v1"
	"github.com/inkwell-shop/storefront/internal/config"
	mcpinternal "github.com/inkwell-shop/storefront/internal/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status string `json:"status"`
}

// APIServer provides the storefront HTTP API backed by a Client.
type APIServer struct {
	client      *storefront.Client
	corsOrigins []string
	version     string
	server      *Server
	router      chi.Router
	logger      *slog.Logger
}

// APIServerOption configures an APIServer.
type APIServerOption func(*APIServer)

// WithCORSOrigins sets the allowed CORS origins. Defaults to "*".
func WithCORSOrigins(origins []string) APIServerOption {
	return func(a *APIServer) { a.corsOrigins = origins }
}

// WithVersion sets the version reported by the MCP endpoint.
func WithVersion(version string) APIServerOption {
	return func(a *APIServer) { a.version = version }
}

// NewAPIServer creates a new APIServer wired to the given Client. The
// client's API keys write-protect the navigation and product routes:
// POST, PUT, PATCH and DELETE there need a valid X-API-KEY. Customer
// facing routes (auth, checkout, reviews) and MCP stay open.
func NewAPIServer(client *storefront.Client, opts ...APIServerOption) *APIServer {
	a := &APIServer{
		client:  client,
		version: "dev",
		logger:  client.Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handler returns every route as an http.Handler without the outer
// middleware stack, for tests and custom servers.
func (a *APIServer) Handler() http.Handler {
	if a.router == nil {
		a.router = chi.NewRouter()
		a.mountRoutes(a.router)
	}
	return a.router
}

func (a *APIServer) mountRoutes(router chi.Router) {
	c := a.client

	navRouter := v1.NewNavLinksRouter(c)
	categoriesRouter := v1.NewCategoriesRouter(c)
	productsRouter := v1.NewProductsRouter(c)
	uploadRouter := v1.NewUploadRouter(c)
	authRouter := v1.NewAuthRouter(c)
	ordersRouter := v1.NewOrdersRouter(c)
	reviewsRouter := v1.NewReviewsRouter(c)

	router.Get("/health", a.health)
	router.Get("/healthz", a.health)
	router.Mount("/docs", NewDocsRouter("/docs/openapi.json").Routes())

	router.Route("/api", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(config.DefaultRequestTimeout))

		r.Mount("/categories", categoriesRouter.Routes())
		r.Mount("/auth", authRouter.Routes())
		r.Mount("/checkout", ordersRouter.CheckoutRoutes())
		r.Mount("/orders", ordersRouter.Routes())
		r.Mount("/reviews", reviewsRouter.Routes())

		r.Group(func(r chi.Router) {
			r.Use(apimiddleware.WriteProtectAuth(c.APIKeys()))
			r.Mount("/navlinks", navRouter.Routes())
			r.Mount("/products", productsRouter.Routes())
			r.Mount("/upload", uploadRouter.Routes())
		})
	})

	if filesRouter, ok := v1.NewFilesRouter(c); ok {
		router.Mount("/uploads", filesRouter.Routes())
	}

	// No timeout: MCP streams responses and keeps session state in headers.
	mcpSrv := mcpinternal.NewServer(c.Navigation, c.Categories, c.Catalog, a.version, a.logger)
	router.Mount("/mcp", server.NewStreamableHTTPServer(mcpSrv.MCPServer()))
}

func (a *APIServer) health(w http.ResponseWriter, r *http.Request) {
	if err := a.client.Ping(r.Context()); err != nil {
		a.logger.ErrorContext(r.Context(), "health check failed", "error", err)
		apimiddleware.WriteError(w, r, apimiddleware.NewServerError(http.StatusServiceUnavailable, "database unavailable"), nil)
		return
	}
	apimiddleware.WriteJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

// Run serves on addr until ctx is cancelled.
func (a *APIServer) Run(ctx context.Context, addr string) error {
	srv := NewServer(addr, a.corsOrigins, a.logger)
	a.server = &srv
	a.mountRoutes(srv.Router())
	return srv.Run(ctx)
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}
