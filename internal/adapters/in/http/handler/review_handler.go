// internal/adapters/in/http/handler/review_handler.go
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/adapters/in/http/middleware"
	usecase "storefront/internal/application/usecase"
)

// ReviewHandler serves product reviews. Listing is public; writing
// requires a registered account.
type ReviewHandler struct {
	reviews *usecase.ReviewUsecase
}

func NewReviewHandler(reviews *usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// ListForProduct handles GET /api/products/{id}/reviews.
func (h *ReviewHandler) ListForProduct(w http.ResponseWriter, r *http.Request) {
	res, err := h.reviews.ListForProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Add handles POST /api/products/{id}/reviews.
func (h *ReviewHandler) Add(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())

	var body usecase.AddInput
	if !decodeBody(w, r, &body) {
		return
	}

	rv, err := h.reviews.Add(r.Context(), u, chi.URLParam(r, "id"), body)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

// Delete handles DELETE /api/reviews/{id} (author or admin).
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())

	if err := h.reviews.Delete(r.Context(), u, chi.URLParam(r, "id")); err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
