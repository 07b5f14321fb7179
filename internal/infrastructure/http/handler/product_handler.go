package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/catalogd/products-api/internal/app/dto"
	"github.com/catalogd/products-api/internal/app/service"
	"github.com/catalogd/products-api/internal/domain"
	"github.com/catalogd/products-api/internal/infrastructure/http/response"
)

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	data, ok := h.decodeBody(w, r)
	if !ok {
		return
	}

	product, err := h.service.CreateProduct(r.Context(), data)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, dto.ToProductResponse(product))
}

// GetProduct handles GET /products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.service.GetProductByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.ToProductResponse(product))
}

// ListProducts handles GET /products with optional name, category or
// available query parameters
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := dto.FilterFromQuery(r.URL.Query())
	if err != nil {
		h.writeError(w, err)
		return
	}

	products, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.ToProductResponseList(products))
}

// UpdateProduct handles PUT /products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	data, ok := h.decodeBody(w, r)
	if !ok {
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), id, data)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.ToProductResponse(product))
}

// DeleteProduct handles DELETE /products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// productID parses the {id} route parameter. A non-numeric id never matches
// a product, so it is reported as not found rather than as a bad request.
func (h *ProductHandler) productID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.Error(w, http.StatusNotFound, domain.ErrProductNotFound)
		return 0, false
	}
	return uint(id), true
}

// decodeBody enforces the JSON content type and decodes the request body into
// a wire mapping. UseNumber keeps prices exact instead of coercing them to
// float64.
func (h *ProductHandler) decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		h.logger.WarnContext(r.Context(), "Unsupported media type",
			slog.String("content_type", r.Header.Get("Content-Type")),
		)
		response.Error(w, http.StatusUnsupportedMediaType,
			errors.New("content-type must be application/json"))
		return nil, false
	}

	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	var data map[string]any
	if err := decoder.Decode(&data); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, err)
		return nil, false
	}
	return data, true
}

// writeError maps service errors to status codes: not-found results become
// 404, every DataValidationError becomes 400, anything else 500.
func (h *ProductHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		response.Error(w, http.StatusNotFound, err)
	case domain.IsDataValidation(err):
		response.Error(w, http.StatusBadRequest, err)
	default:
		response.Error(w, http.StatusInternalServerError, err)
	}
}
