package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/inkwell-shop/storefront/application/service"
	"github.com/inkwell-shop/storefront/domain"
	"github.com/inkwell-shop/storefront/domain/catalog"
	"github.com/inkwell-shop/storefront/domain/navigation"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMenu struct {
	menu []navigation.MenuNode
}

func (f *fakeMenu) Menu(context.Context) ([]navigation.MenuNode, error) {
	return f.menu, nil
}

type fakeCategories struct {
	categories []catalog.Category
	err        error
}

func (f *fakeCategories) List(context.Context) ([]catalog.Category, error) {
	return f.categories, f.err
}

// fakeProducts records the last listing it was asked for.
type fakeProducts struct {
	products    []catalog.Product
	lastListing catalog.Listing
}

func (f *fakeProducts) List(_ context.Context, listing catalog.Listing) (service.ProductPage, error) {
	f.lastListing = listing
	return service.ProductPage{
		Page:  listing.Page(),
		Limit: listing.Limit(),
		Total: int64(len(f.products)),
		Items: f.products,
	}, nil
}

func (f *fakeProducts) Get(_ context.Context, id string) (catalog.Product, error) {
	for _, p := range f.products {
		if p.ID() == id {
			return p, nil
		}
	}
	return catalog.Product{}, fmt.Errorf("find product: %w", domain.ErrNotFound)
}

const penID = "6f1c2a52-8d4b-4c1e-9a57-2f0f3e1b9c10"

func testProduct() catalog.Product {
	price := 249.5
	return catalog.ReconstructProduct(
		penID, "Fountain Pen", "FP-200", "Lamy", "pens",
		&price,
		[]string{"https://cdn.example.com/products/pen.jpg"},
		true,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	)
}

func testServer() (*Server, *fakeProducts) {
	products := &fakeProducts{products: []catalog.Product{testProduct()}}
	srv := NewServer(
		&fakeMenu{menu: []navigation.MenuNode{
			navigation.NewMenuNode("Stationery", "/stationery",
				navigation.NewMenuNode("Pens", "pens"),
			),
		}},
		&fakeCategories{categories: []catalog.Category{
			catalog.NewCategory(catalog.AllCategoriesLabel, catalog.AllCategoriesValue, ""),
			catalog.NewCategory("Pens", "stationery/pens", "https://cdn.example.com/products/pen.jpg"),
		}},
		products,
		"0.1.0-test",
		nil,
	)
	return srv, products
}

// sendMessage sends a JSON-RPC request through HandleMessage and returns the
// response.
func sendMessage(t *testing.T, srv *Server, method string, id int, params map[string]any) mcp.JSONRPCResponse {
	t.Helper()

	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		msg["params"] = params
	}
	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	result := srv.MCPServer().HandleMessage(context.Background(), raw)
	resp, ok := result.(mcp.JSONRPCResponse)
	require.Truef(t, ok, "expected JSONRPCResponse, got %T: %+v", result, result)
	return resp
}

func resultJSON(t *testing.T, resp mcp.JSONRPCResponse, dst any) {
	t.Helper()
	b, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, dst))
}

type toolResult struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	IsError bool `json:"isError"`
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) toolResult {
	t.Helper()
	params := map[string]any{"name": name}
	if args != nil {
		params["arguments"] = args
	}
	var result toolResult
	resultJSON(t, sendMessage(t, srv, "tools/call", 2, params), &result)
	require.NotEmpty(t, result.Content)
	return result
}

func TestServer_Initialize(t *testing.T) {
	srv, _ := testServer()
	resp := sendMessage(t, srv, "initialize", 1, map[string]any{
		"protocolVersion": "2025-06-18",
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "test-client", "version": "0.0.1"},
	})

	var result mcp.InitializeResult
	resultJSON(t, resp, &result)
	assert.Equal(t, "storefront", result.ServerInfo.Name)
	assert.Equal(t, "0.1.0-test", result.ServerInfo.Version)
}

func TestServer_ListTools(t *testing.T) {
	srv, _ := testServer()

	var result struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	resultJSON(t, sendMessage(t, srv, "tools/list", 1, nil), &result)

	var names []string
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"list_navigation", "list_categories", "list_products", "get_product"}, names)
}

func TestServer_ListNavigation(t *testing.T) {
	srv, _ := testServer()
	result := callTool(t, srv, "list_navigation", nil)
	require.False(t, result.IsError)

	var menu []menuResult
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &menu))
	require.Len(t, menu, 1)
	assert.Equal(t, "Stationery", menu[0].Title)
	require.Len(t, menu[0].Submenu, 1)
	assert.Equal(t, "pens", menu[0].Submenu[0].Path)
}

func TestServer_ListCategories(t *testing.T) {
	srv, _ := testServer()
	result := callTool(t, srv, "list_categories", nil)
	require.False(t, result.IsError)

	var categories []categoryResult
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &categories))
	require.Len(t, categories, 2)
	assert.Equal(t, "all", categories[0].Value)
	assert.Empty(t, categories[0].Image)
	assert.Equal(t, "stationery/pens", categories[1].Value)
}

func TestServer_ListCategoriesError(t *testing.T) {
	srv := NewServer(&fakeMenu{}, &fakeCategories{err: errors.New("db down")}, &fakeProducts{}, "test", nil)
	result := callTool(t, srv, "list_categories", nil)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "db down")
}

func TestServer_ListProductsNormalisesArguments(t *testing.T) {
	srv, products := testServer()
	result := callTool(t, srv, "list_products", map[string]any{
		"category": "pens",
		"page":     0,
		"limit":    500,
	})
	require.False(t, result.IsError)

	assert.Equal(t, "pens", products.lastListing.Category())
	assert.Equal(t, 1, products.lastListing.Page())
	assert.Equal(t, catalog.MaxPageSize, products.lastListing.Limit())

	var page productPageResult
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &page))
	assert.EqualValues(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "product://"+penID, page.Items[0].URI)
	require.NotNil(t, page.Items[0].Price)
	assert.InDelta(t, 249.5, *page.Items[0].Price, 0.001)
}

func TestServer_GetProduct(t *testing.T) {
	srv, _ := testServer()

	result := callTool(t, srv, "get_product", map[string]any{"id": penID})
	require.False(t, result.IsError)
	var p productResult
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &p))
	assert.Equal(t, "Fountain Pen", p.Name)

	missing := callTool(t, srv, "get_product", map[string]any{"id": "00000000-0000-4000-8000-000000000000"})
	assert.True(t, missing.IsError)
	assert.Contains(t, missing.Content[0].Text, "not found")

	noID := callTool(t, srv, "get_product", map[string]any{})
	assert.True(t, noID.IsError)
}

func TestServer_ReadProductResource(t *testing.T) {
	srv, _ := testServer()
	resp := sendMessage(t, srv, "resources/read", 3, map[string]any{"uri": "product://" + penID})

	var result struct {
		Contents []struct {
			URI      string `json:"uri"`
			MIMEType string `json:"mimeType"`
			Text     string `json:"text"`
		} `json:"contents"`
	}
	resultJSON(t, resp, &result)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	assert.Contains(t, result.Contents[0].Text, "Fountain Pen")
}

func TestParseProductURI(t *testing.T) {
	uri, err := ParseProductURI("product://" + penID)
	require.NoError(t, err)
	assert.Equal(t, penID, uri.ID())
	assert.Equal(t, "product://"+penID, uri.String())

	for _, bad := range []string{"", "product://", "file://x", "product://a/b"} {
		_, err := ParseProductURI(bad)
		assert.Error(t, err, bad)
	}
}
