package v1

import (
	"net/http"
	"strconv"
)

// queryInt parses a query parameter, returning fallback when it is absent
// or not an integer.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// cacheFor sets a public Cache-Control header.
func cacheFor(w http.ResponseWriter, seconds int) {
	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(seconds))
}

// Cache lifetimes in seconds.
const (
	navCacheSeconds      = 3600
	categoryCacheSeconds = 60
	productCacheSeconds  = 300
)
