package v1

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/inkwell-shop/storefront"
	"github.com/inkwell-shop/storefront/application/service"
	"github.com/inkwell-shop/storefront/domain"
	"github.com/inkwell-shop/storefront/domain/catalog"
	"github.com/inkwell-shop/storefront/infrastructure/api/middleware"
	"github.com/inkwell-shop/storefront/infrastructure/api/v1/dto"
)

// maxMultipartMemory is how much of a multipart form is buffered in memory
// before spilling to temporary files.
const maxMultipartMemory = 32 << 20

// ProductsRouter handles product catalog endpoints.
type ProductsRouter struct {
	client *storefront.Client
	logger *slog.Logger
}

// NewProductsRouter creates a new ProductsRouter.
func NewProductsRouter(client *storefront.Client) *ProductsRouter {
	return &ProductsRouter{client: client, logger: client.Logger()}
}

// Routes returns the chi router for product endpoints.
func (r *ProductsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Post("/", r.Create)
	router.Get("/{id}", r.Get)

	return router
}

// List handles GET /api/products.
//
//	@Summary		List products
//	@Description	Published products, newest first
//	@Tags			catalog
//	@Produce		json
//	@Param			category	query		string	false	"Category slug or all (default: all)"
//	@Param			brand		query		string	false	"Brand"
//	@Param			page		query		int		false	"Page number (default: 1)"
//	@Param			limit		query		int		false	"Results per page (default: 20, max: 100)"
//	@Success		200			{object}	dto.ProductListResponse
//	@Failure		500			{object}	middleware.ErrorResponse
//	@Router			/products [get]
func (r *ProductsRouter) List(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	listing := catalog.NewListing(
		q.Get("category"),
		q.Get("brand"),
		queryInt(req, "page", 1),
		queryInt(req, "limit", catalog.DefaultPageSize),
	)

	page, err := r.client.Catalog.List(req.Context(), listing)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	cacheFor(w, productCacheSeconds)
	middleware.WriteJSON(w, http.StatusOK, dto.NewProductListResponse(page.Page, page.Limit, page.Total, page.Items))
}

// Get handles GET /api/products/{id}.
//
//	@Summary		Get product
//	@Tags			catalog
//	@Produce		json
//	@Param			id	path		string	true	"Product ID"
//	@Success		200	{object}	dto.ProductResponse
//	@Failure		404	{object}	middleware.ErrorResponse
//	@Failure		500	{object}	middleware.ErrorResponse
//	@Router			/products/{id} [get]
func (r *ProductsRouter) Get(w http.ResponseWriter, req *http.Request) {
	product, err := r.client.Catalog.Get(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NewProductResponse(product))
}

// Create handles POST /api/products. It accepts a JSON body or a multipart
// form whose "images" or "file" parts are stored through the image store.
//
//	@Summary		Create product
//	@Tags			catalog
//	@Accept			json,mpfd
//	@Produce		json
//	@Param			body	body		dto.ProductRequest	true	"Product"
//	@Success		201		{object}	dto.CreatedResponse
//	@Failure		400		{object}	middleware.ErrorResponse
//	@Failure		401		{object}	middleware.ErrorResponse
//	@Failure		500		{object}	middleware.ErrorResponse
//	@Security		APIKeyAuth
//	@Router			/products [post]
func (r *ProductsRouter) Create(w http.ResponseWriter, req *http.Request) {
	var (
		body dto.ProductRequest
		err  error
	)
	if isMultipart(req) {
		body, err = r.fromForm(req)
	} else {
		err = decodeJSON(w, req, &body)
	}
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	product, err := r.client.Catalog.Create(req.Context(), service.ProductParams{
		Name:      body.Name,
		ModelName: body.ModelName,
		Brand:     body.Brand,
		Category:  body.Category,
		Price:     body.Price,
		Images:    body.Images,
		Published: body.Published,
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, dto.CreatedResponse{Message: "Product saved", ID: product.ID()})
}

func (r *ProductsRouter) fromForm(req *http.Request) (dto.ProductRequest, error) {
	if err := req.ParseMultipartForm(maxMultipartMemory); err != nil {
		return dto.ProductRequest{}, fmt.Errorf("%w: invalid multipart form: %v", domain.ErrValidation, err)
	}
	form := req.MultipartForm
	defer func() { _ = form.RemoveAll() }()

	body := dto.ProductRequest{
		Name:      req.FormValue("name"),
		ModelName: req.FormValue("model_name"),
		Brand:     req.FormValue("brand"),
		Category:  req.FormValue("category"),
	}
	if raw := strings.TrimSpace(req.FormValue("price")); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return dto.ProductRequest{}, fmt.Errorf("%w: price must be a number", domain.ErrValidation)
		}
		body.Price = &price
	}
	if raw := strings.TrimSpace(req.FormValue("published")); raw != "" {
		published, err := strconv.ParseBool(raw)
		if err != nil {
			return dto.ProductRequest{}, fmt.Errorf("%w: published must be a boolean", domain.ErrValidation)
		}
		body.Published = &published
	}
	if err := validateStruct(body); err != nil {
		return dto.ProductRequest{}, err
	}

	body.Images = append(body.Images, form.Value["images"]...)
	for _, field := range []string{"images", "file"} {
		for _, fh := range form.File[field] {
			url, err := r.storeFile(req, fh)
			if err != nil {
				return dto.ProductRequest{}, err
			}
			body.Images = append(body.Images, url)
		}
	}
	return body, nil
}

func (r *ProductsRouter) storeFile(req *http.Request, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer func() { _ = f.Close() }()

	img, err := r.client.Uploads.Store(req.Context(), baseURL(req), fh.Filename, fh.Size, f)
	if err != nil {
		return "", err
	}
	return img.URL(), nil
}
