// internal/adapters/in/http/handler/order_handler.go
package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"storefront/internal/adapters/in/http/middleware"
	usecase "storefront/internal/application/usecase"
	orderdom "storefront/internal/domain/order"
)

// OrderHandler serves the order workflow, the status engine, and the
// admin order queries.
type OrderHandler struct {
	orders *usecase.OrderUsecase
}

func NewOrderHandler(orders *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type placeBody struct {
	Lines []usecase.PlaceLineInput `json:"lines"`
}

// Place handles POST /api/orders.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())

	var body placeBody
	if !decodeBody(w, r, &body) {
		return
	}

	o, err := h.orders.Place(r.Context(), u, body.Lines)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

// ListMine handles GET /api/orders.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())

	orders, err := h.orders.ListMine(r.Context(), u)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	if orders == nil {
		orders = []orderdom.Order{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// Get handles GET /api/orders/{id} (owner or admin).
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())

	o, err := h.orders.Get(r.Context(), u, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

type statusBody struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /api/orders/{id}/status (admin).
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())

	var body statusBody
	if !decodeBody(w, r, &body) {
		return
	}
	to, err := orderdom.ParseStatus(body.Status)
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), u, chi.URLParam(r, "id"), to)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// Cancel handles POST /api/orders/{id}/cancel (owner or admin).
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())

	o, err := h.orders.Cancel(r.Context(), u, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// Delete handles DELETE /api/orders/{id} (owner or admin).
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())

	if err := h.orders.Delete(r.Context(), u, chi.URLParam(r, "id")); err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AdminList handles GET /api/orders/admin/all.
// Query: status, from, to (RFC 3339), page, perPage.
func (h *OrderHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	q := r.URL.Query()

	var filter orderdom.Filter
	if raw := strings.TrimSpace(q.Get("status")); raw != "" {
		st, err := orderdom.ParseStatus(raw)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		filter.Status = st
	}
	var ok bool
	if filter.From, ok = parseTimeParam(w, q.Get("from"), "from"); !ok {
		return
	}
	if filter.To, ok = parseTimeParam(w, q.Get("to"), "to"); !ok {
		return
	}

	page := orderdom.Page{
		Number:  parseIntDefault(q.Get("page"), 1),
		PerPage: parseIntDefault(q.Get("perPage"), 0),
	}

	res, err := h.orders.AdminList(r.Context(), u, filter, page)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	if res.Items == nil {
		res.Items = []orderdom.Order{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"orders":     res.Items,
		"totalCount": res.TotalCount,
		"page":       res.Page,
		"perPage":    res.PerPage,
		"totalPages": res.TotalPages,
	})
}

// AdminStats handles GET /api/orders/admin/stats.
// Query: from, to (RFC 3339).
func (h *OrderHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	q := r.URL.Query()

	from, ok := parseTimeParam(w, q.Get("from"), "from")
	if !ok {
		return
	}
	to, ok := parseTimeParam(w, q.Get("to"), "to")
	if !ok {
		return
	}

	stats, err := h.orders.AdminStats(r.Context(), u, from, to)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// parseTimeParam parses an optional RFC 3339 query value. The bool result
// is false when the value was present but malformed (response already
// written).
func parseTimeParam(w http.ResponseWriter, raw, name string) (*time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		writeErr(w, http.StatusBadRequest, name+" must be RFC 3339")
		return nil, false
	}
	return &t, true
}
