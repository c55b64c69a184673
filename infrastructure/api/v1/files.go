package v1

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/inkwell-shop/storefront"
	"github.com/inkwell-shop/storefront/application/service"
	"github.com/inkwell-shop/storefront/domain/media"
	"github.com/inkwell-shop/storefront/infrastructure/api/middleware"
)

// FilesRouter serves stored uploads back over HTTP. It only has routes when
// the image store can open its objects; remote stores serve their own URLs.
type FilesRouter struct {
	server media.Server
	logger *slog.Logger
}

// NewFilesRouter creates a FilesRouter, reporting false when the client's
// image store cannot serve files.
func NewFilesRouter(client *storefront.Client) (*FilesRouter, bool) {
	server, ok := client.Media().(media.Server)
	if !ok {
		return nil, false
	}
	return &FilesRouter{server: server, logger: client.Logger()}, true
}

// Routes returns the chi router mounted at /uploads.
func (r *FilesRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/{name}", r.Get)
	return router
}

// Get handles GET /uploads/{name}.
func (r *FilesRouter) Get(w http.ResponseWriter, req *http.Request) {
	rc, err := r.server.Open(req.Context(), chi.URLParam(req, "name"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	defer func() { _ = rc.Close() }()

	contentType, body, err := service.Sniff(rc)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	if req.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, body); err != nil {
		r.logger.WarnContext(req.Context(), "failed to stream upload", "error", err)
	}
}
