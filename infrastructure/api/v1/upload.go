package v1

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/inkwell-shop/storefront"
	"github.com/inkwell-shop/storefront/domain"
	"github.com/inkwell-shop/storefront/infrastructure/api/middleware"
	"github.com/inkwell-shop/storefront/infrastructure/api/v1/dto"
)

// UploadRouter accepts single image uploads.
type UploadRouter struct {
	client *storefront.Client
	logger *slog.Logger
}

// NewUploadRouter creates a new UploadRouter.
func NewUploadRouter(client *storefront.Client) *UploadRouter {
	return &UploadRouter{client: client, logger: client.Logger()}
}

// Routes returns the chi router for the upload endpoint.
func (r *UploadRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", r.Upload)
	return router
}

// Upload handles POST /api/upload with a multipart "file" field.
//
//	@Summary		Upload image
//	@Tags			catalog
//	@Accept			mpfd
//	@Produce		json
//	@Param			file	formData	file	true	"Image file"
//	@Success		200		{object}	dto.UploadResponse
//	@Failure		400		{object}	middleware.ErrorResponse
//	@Failure		401		{object}	middleware.ErrorResponse
//	@Failure		500		{object}	middleware.ErrorResponse
//	@Security		APIKeyAuth
//	@Router			/upload [post]
func (r *UploadRouter) Upload(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(maxMultipartMemory); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: no file uploaded", domain.ErrValidation), r.logger)
		return
	}
	defer func() { _ = req.MultipartForm.RemoveAll() }()

	file, header, err := req.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			err = fmt.Errorf("%w: no file uploaded", domain.ErrValidation)
		}
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	defer func() { _ = file.Close() }()

	img, err := r.client.Uploads.Store(req.Context(), baseURL(req), header.Filename, header.Size, file)
	if err != nil {
		middleware.WriteError(w, req, middleware.ServerMessage(err, "Upload failed"), r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.UploadResponse{URL: img.URL()})
}
