// internal/adapters/in/http/handler/product_handler.go
package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	usecase "storefront/internal/application/usecase"
	proddom "storefront/internal/domain/product"
)

// maxImageBytes bounds an uploaded product image.
const maxImageBytes = 5 << 20

// ProductHandler serves the public catalog and the admin catalog writes.
type ProductHandler struct {
	catalog *usecase.CatalogUsecase
}

func NewProductHandler(catalog *usecase.CatalogUsecase) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List handles GET /api/products.
// Query: category, minPrice, maxPrice, color, size, search, sort, order,
// page, perPage.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := proddom.Filter{
		Category: q.Get("category"),
		Color:    q.Get("color"),
		Size:     q.Get("size"),
		Search:   q.Get("search"),
	}
	if v := strings.TrimSpace(q.Get("minPrice")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "minPrice must be an integer")
			return
		}
		filter.MinPrice = &n
	}
	if v := strings.TrimSpace(q.Get("maxPrice")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "maxPrice must be an integer")
			return
		}
		filter.MaxPrice = &n
	}
	if c := strings.TrimSpace(filter.Category); c != "" {
		if _, err := proddom.ParseCategory(c); err != nil {
			writeErr(w, http.StatusBadRequest, "category must be one of: men, women")
			return
		}
	}

	sort := proddom.Sort{
		Field: proddom.SortField(strings.TrimSpace(q.Get("sort"))),
		Desc:  strings.EqualFold(q.Get("order"), "desc"),
	}
	page := proddom.Page{
		Number:  parseIntDefault(q.Get("page"), 1),
		PerPage: parseIntDefault(q.Get("perPage"), 0),
	}

	res, err := h.catalog.ListProducts(r.Context(), filter, sort, page)
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"products":   res.Items,
		"totalCount": res.TotalCount,
		"page":       res.Page,
		"perPage":    res.PerPage,
		"totalPages": res.TotalPages,
	})
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type productBody struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int      `json:"price"`
	Stock       int      `json:"stock"`
	Sizes       []string `json:"sizes"`
	Color       string   `json:"color"`
	Categories  []string `json:"categories"`
}

// Create handles POST /api/products (admin).
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body productBody
	if !decodeBody(w, r, &body) {
		return
	}

	p, err := h.catalog.CreateProduct(r.Context(), usecase.CreateProductInput{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Stock:       body.Stock,
		Sizes:       body.Sizes,
		Color:       body.Color,
		Categories:  body.Categories,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// Update handles PUT /api/products/{id} (admin).
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body productBody
	if !decodeBody(w, r, &body) {
		return
	}

	p, err := h.catalog.UpdateProduct(r.Context(), chi.URLParam(r, "id"), usecase.CreateProductInput{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Sizes:       body.Sizes,
		Color:       body.Color,
		Categories:  body.Categories,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /api/products/{id} (admin).
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// UploadImage handles POST /api/products/{id}/image (admin). The body is
// the raw image; Content-Type selects the stored extension.
func (h *ProductHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImageBytes+1))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "could not read image body")
		return
	}
	if len(data) == 0 {
		writeErr(w, http.StatusBadRequest, "image body is empty")
		return
	}
	if len(data) > maxImageBytes {
		writeErr(w, http.StatusBadRequest, "image exceeds 5MiB")
		return
	}

	p, err := h.catalog.AttachImage(r.Context(), chi.URLParam(r, "id"), r.Header.Get("Content-Type"), data)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
