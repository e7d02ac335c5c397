// internal/adapters/in/http/handler/cart_handler.go
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/adapters/in/http/middleware"
	usecase "storefront/internal/application/usecase"
)

// CartHandler serves the authenticated user's cart. The owning user is
// always the verified caller; a cart can never be addressed by id.
type CartHandler struct {
	carts *usecase.CartUsecase
}

func NewCartHandler(carts *usecase.CartUsecase) *CartHandler {
	return &CartHandler{carts: carts}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())

	c, err := h.carts.Get(r.Context(), u.ID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type addLineBody struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Qty       int    `json:"qty"`
}

// AddLine handles POST /api/cart/items.
func (h *CartHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())

	var body addLineBody
	if !decodeBody(w, r, &body) {
		return
	}
	if body.ProductID == "" || body.Size == "" {
		writeErr(w, http.StatusBadRequest, "productId and size are required")
		return
	}

	c, err := h.carts.AddLine(r.Context(), u.ID, usecase.AddLineInput{
		ProductID: body.ProductID,
		Size:      body.Size,
		Qty:       body.Qty,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type setQtyBody struct {
	Qty int `json:"qty"`
}

// SetLineQty handles PUT /api/cart/items/{lineId}. qty 0 removes the line.
func (h *CartHandler) SetLineQty(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())

	var body setQtyBody
	if !decodeBody(w, r, &body) {
		return
	}

	c, err := h.carts.SetLineQty(r.Context(), u.ID, chi.URLParam(r, "lineId"), body.Qty)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// RemoveLine handles DELETE /api/cart/items/{lineId}.
func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())

	c, err := h.carts.RemoveLine(r.Context(), u.ID, chi.URLParam(r, "lineId"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())

	c, err := h.carts.Clear(r.Context(), u.ID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
