// internal/adapters/in/http/handler/helpers.go
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	usecase "storefront/internal/application/usecase"
	cartdom "storefront/internal/domain/cart"
	orderdom "storefront/internal/domain/order"
	proddom "storefront/internal/domain/product"
	revdom "storefront/internal/domain/review"
	userdom "storefront/internal/domain/user"
)

// ============================================================
// JSON helpers
// ============================================================

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": strings.TrimSpace(msg)})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return false
	}
	return true
}

func parseIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// ============================================================
// Domain error -> HTTP status mapping
// ============================================================

// writeDomainErr maps the sentinel error taxonomy to the response status:
// validation 400, not-found 404, authorization 403, conflict 409,
// everything else 500 with internals suppressed from the client.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case isValidationErr(err):
		writeErr(w, http.StatusBadRequest, err.Error())
	case isNotFoundErr(err):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, usecase.ErrForbidden):
		writeErr(w, http.StatusForbidden, "forbidden")
	case isConflictErr(err):
		writeErr(w, http.StatusConflict, err.Error())
	default:
		log.Printf("[handler] ERROR: %v", err)
		writeErr(w, http.StatusInternalServerError, "internal server error")
	}
}

func isValidationErr(err error) bool {
	for _, target := range []error{
		proddom.ErrInvalidName,
		proddom.ErrInvalidPrice,
		proddom.ErrInvalidStock,
		proddom.ErrInvalidSizes,
		proddom.ErrInvalidCategory,
		cartdom.ErrInvalidLine,
		cartdom.ErrQtyOutOfRange,
		cartdom.ErrQtyExceedsCap,
		orderdom.ErrEmptyLines,
		orderdom.ErrInvalidLine,
		orderdom.ErrQtyOutOfRange,
		orderdom.ErrInvalidStatus,
		orderdom.ErrInvalidTransition,
		revdom.ErrInvalidRating,
		userdom.ErrInvalidEmail,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isNotFoundErr(err error) bool {
	for _, target := range []error{
		proddom.ErrNotFound,
		orderdom.ErrNotFound,
		orderdom.ErrSizeUnavailable,
		revdom.ErrNotFound,
		userdom.ErrNotFound,
		cartdom.ErrLineNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isConflictErr(err error) bool {
	return errors.Is(err, proddom.ErrInsufficientStock) || errors.Is(err, revdom.ErrDuplicate)
}
