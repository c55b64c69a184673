package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serve(h http.Handler, method, key string) int {
	req := httptest.NewRequest(method, "/api/navlinks", nil)
	if key != "" {
		req.Header.Set(APIKeyHeader, key)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Code
}

func TestWriteProtect_ReadOnlyMethodsPassWithoutKey(t *testing.T) {
	handler := WriteProtect(NewAuthConfigWithKeys([]string{"secret"}))(okHandler())

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		assert.Equal(t, http.StatusOK, serve(handler, method, ""), method)
	}
}

func TestWriteProtect_MutatingMethodsRequireKey(t *testing.T) {
	handler := WriteProtect(NewAuthConfigWithKeys([]string{"secret"}))(okHandler())

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		assert.Equal(t, http.StatusUnauthorized, serve(handler, method, ""), method)
		assert.Equal(t, http.StatusUnauthorized, serve(handler, method, "wrong"), method)
		assert.Equal(t, http.StatusOK, serve(handler, method, "secret"), method)
	}
}

func TestWriteProtect_DisabledPassesAll(t *testing.T) {
	for _, keys := range [][]string{nil, {""}} {
		config := NewAuthConfigWithKeys(keys)
		assert.False(t, config.Enabled())

		handler := WriteProtect(config)(okHandler())
		assert.Equal(t, http.StatusOK, serve(handler, http.MethodPost, ""))
	}
}

func TestWriteProtectAuth_AcceptsAnyConfiguredKey(t *testing.T) {
	handler := WriteProtectAuth([]string{"one", "two"})(okHandler())

	assert.Equal(t, http.StatusOK, serve(handler, http.MethodPost, "two"))
	assert.Equal(t, http.StatusUnauthorized, serve(handler, http.MethodPost, "three"))
}
