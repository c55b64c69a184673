package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const productScheme = "product://"

// ProductURI names a product resource: product://<id>.
type ProductURI struct {
	id string
}

// NewProductURI creates a ProductURI.
func NewProductURI(id string) ProductURI {
	return ProductURI{id: id}
}

// ParseProductURI parses a product://<id> string.
func ParseProductURI(raw string) (ProductURI, error) {
	id, ok := strings.CutPrefix(raw, productScheme)
	id = strings.Trim(id, "/")
	if !ok || id == "" || strings.Contains(id, "/") {
		return ProductURI{}, fmt.Errorf("invalid product uri %q", raw)
	}
	return ProductURI{id: id}, nil
}

// ID returns the product id.
func (u ProductURI) ID() string { return u.id }

func (u ProductURI) String() string { return productScheme + u.id }

func (s *Server) registerResources(mcpServer *server.MCPServer) {
	mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(productScheme+"{id}", "product",
			mcp.WithTemplateDescription("A published product as JSON"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.handleReadProduct,
	)
}

func (s *Server) handleReadProduct(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri, err := ParseProductURI(request.Params.URI)
	if err != nil {
		return nil, err
	}
	p, err := s.products.Get(ctx, uri.ID())
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", uri, err)
	}
	b, err := json.Marshal(toProductResult(p))
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri.String(),
			MIMEType: "application/json",
			Text:     string(b),
		},
	}, nil
}
