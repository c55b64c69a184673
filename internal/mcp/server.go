// Package mcp exposes read-only catalog tools over the Model Context
// Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/inkwell-shop/storefront/application/service"
	"github.com/inkwell-shop/storefront/domain"
	"github.com/inkwell-shop/storefront/domain/catalog"
	"github.com/inkwell-shop/storefront/domain/navigation"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MenuReader builds the navigation menu.
type MenuReader interface {
	Menu(ctx context.Context) ([]navigation.MenuNode, error)
}

// CategoryLister lists derived categories.
type CategoryLister interface {
	List(ctx context.Context) ([]catalog.Category, error)
}

// ProductCatalog lists and fetches products.
type ProductCatalog interface {
	List(ctx context.Context, listing catalog.Listing) (service.ProductPage, error)
	Get(ctx context.Context, id string) (catalog.Product, error)
}

// Server wraps the MCP server with storefront tools.
type Server struct {
	mcpServer  *server.MCPServer
	menu       MenuReader
	categories CategoryLister
	products   ProductCatalog
	logger     *slog.Logger
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(menu MenuReader, categories CategoryLister, products ProductCatalog, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		menu:       menu,
		categories: categories,
		products:   products,
		logger:     logger,
	}

	mcpServer := server.NewMCPServer(
		"storefront",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
	)

	s.registerTools(mcpServer)
	s.registerResources(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(mcp.NewTool("list_navigation",
		mcp.WithDescription("Return the published navigation menu as a nested tree"),
	), s.handleListNavigation)

	mcpServer.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List product categories derived from the menu leaves, each with a representative image"),
	), s.handleListCategories)

	mcpServer.AddTool(mcp.NewTool("list_products",
		mcp.WithDescription("List published products, newest first"),
		mcp.WithString("category",
			mcp.Description("Category slug, or \"all\" (default)"),
		),
		mcp.WithString("brand",
			mcp.Description("Exact brand filter"),
		),
		mcp.WithNumber("page",
			mcp.Description("Page number (default: 1)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Results per page (default: 20, max: 100)"),
		),
	), s.handleListProducts)

	mcpServer.AddTool(mcp.NewTool("get_product",
		mcp.WithDescription("Get a product by its ID"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The product UUID"),
		),
	), s.handleGetProduct)
}

type menuResult struct {
	Title   string       `json:"title"`
	Path    string       `json:"path"`
	Submenu []menuResult `json:"submenu,omitempty"`
}

func toMenuResults(nodes []navigation.MenuNode) []menuResult {
	out := make([]menuResult, len(nodes))
	for i, n := range nodes {
		out[i] = menuResult{Title: n.Title(), Path: n.Path()}
		if children := n.Submenu(); len(children) > 0 {
			out[i].Submenu = toMenuResults(children)
		}
	}
	return out
}

func (s *Server) handleListNavigation(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	menu, err := s.menu.Menu(ctx)
	if err != nil {
		s.logger.Error("failed to build menu", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("failed to build menu: %v", err)), nil
	}
	return jsonResult(toMenuResults(menu))
}

type categoryResult struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Image string `json:"image,omitempty"`
}

func (s *Server) handleListCategories(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		s.logger.Error("failed to list categories", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("failed to list categories: %v", err)), nil
	}

	results := make([]categoryResult, len(categories))
	for i, c := range categories {
		results[i] = categoryResult{Label: c.Label(), Value: c.Value(), Image: c.Image()}
	}
	return jsonResult(results)
}

type productResult struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ModelName string    `json:"model_name,omitempty"`
	Brand     string    `json:"brand,omitempty"`
	Category  string    `json:"category_slug"`
	Price     *float64  `json:"price"`
	Images    []string  `json:"images"`
	URI       string    `json:"uri"`
	CreatedAt time.Time `json:"created_at"`
}

func toProductResult(p catalog.Product) productResult {
	r := productResult{
		ID:        p.ID(),
		Name:      p.Name(),
		ModelName: p.ModelName(),
		Brand:     p.Brand(),
		Category:  p.CategorySlug(),
		Images:    p.Images(),
		URI:       NewProductURI(p.ID()).String(),
		CreatedAt: p.CreatedAt(),
	}
	if price, ok := p.Price(); ok {
		r.Price = &price
	}
	return r
}

type productPageResult struct {
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
	Total int64           `json:"total"`
	Items []productResult `json:"items"`
}

func (s *Server) handleListProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	listing := catalog.NewListing(
		request.GetString("category", catalog.AllCategoriesValue),
		request.GetString("brand", ""),
		request.GetInt("page", 1),
		request.GetInt("limit", catalog.DefaultPageSize),
	)

	page, err := s.products.List(ctx, listing)
	if err != nil {
		s.logger.Error("failed to list products", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("failed to list products: %v", err)), nil
	}

	result := productPageResult{
		Page:  page.Page,
		Limit: page.Limit,
		Total: page.Total,
		Items: make([]productResult, len(page.Items)),
	}
	for i, p := range page.Items {
		result.Items[i] = toProductResult(p)
	}
	return jsonResult(result)
}

func (s *Server) handleGetProduct(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}

	p, err := s.products.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("product %s not found", id)), nil
		}
		s.logger.Error("failed to get product", slog.String("id", id), slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("failed to get product: %v", err)), nil
	}
	return jsonResult(toProductResult(p))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// MCPServer returns the underlying MCP server for stdio serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
