package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inkwell-shop/storefront/infrastructure/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mcpRequest(t *testing.T, method string, id int, params map[string]any) []byte {
	t.Helper()
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		msg["params"] = params
	}
	b, err := json.Marshal(msg)
	require.NoError(t, err)
	return b
}

func postMCP(t *testing.T, handler http.Handler, body []byte, sessionID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/mcp", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("Mcp-Session-Id", sessionID)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func initMCPSession(t *testing.T, handler http.Handler) string {
	t.Helper()
	body := mcpRequest(t, "initialize", 1, map[string]any{
		"protocolVersion": "2025-06-18",
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "test", "version": "0.0.1"},
	})
	w := postMCP(t, handler, body, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Result struct {
			ServerInfo struct {
				Name    string `json:"name"`
				Version string `json:"version"`
			} `json:"serverInfo"`
		} `json:"result"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "storefront", resp.Result.ServerInfo.Name)
	assert.Equal(t, "1.2.3", resp.Result.ServerInfo.Version)

	sessionID := w.Header().Get("Mcp-Session-Id")
	require.NotEmpty(t, sessionID, "initialize did not return a session ID")
	return sessionID
}

func TestMCPEndpoint_ListTools(t *testing.T) {
	client := newTestClient(t)
	handler := api.NewAPIServer(client, api.WithVersion("1.2.3")).Handler()
	sessionID := initMCPSession(t, handler)

	w := postMCP(t, handler, mcpRequest(t, "tools/list", 2, nil), sessionID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	var names []string
	for _, tool := range resp.Result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"list_navigation", "list_categories", "list_products", "get_product"}, names)
}

func TestMCPEndpoint_ListCategoriesReadsTheDatabase(t *testing.T) {
	client := newTestClient(t)
	handler := api.NewAPIServer(client, api.WithVersion("1.2.3")).Handler()
	sessionID := initMCPSession(t, handler)

	w := postMCP(t, handler, mcpRequest(t, "tools/call", 2, map[string]any{"name": "list_categories"}), sessionID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Result struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Result.Content, 1)
	assert.JSONEq(t, `[{"label":"All Categories","value":"all"}]`, resp.Result.Content[0].Text)
}

func TestMCPEndpoint_RejectsInvalidContentType(t *testing.T) {
	handler := api.NewAPIServer(newTestClient(t)).Handler()

	req := httptest.NewRequest(http.MethodPost, "/mcp", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
