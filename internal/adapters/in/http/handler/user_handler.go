// internal/adapters/in/http/handler/user_handler.go
package handler

import (
	"net/http"

	"storefront/internal/adapters/in/http/middleware"
	usecase "storefront/internal/application/usecase"
)

// UserHandler serves account registration and the caller's profile.
type UserHandler struct {
	users *usecase.UserUsecase
}

func NewUserHandler(users *usecase.UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// Register handles POST /api/users/register. Runs behind VerifyToken
// only: the account document may not exist yet.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UIDFrom(r.Context())
	email := middleware.EmailFrom(r.Context())

	var body usecase.RegisterInput
	if !decodeBody(w, r, &body) {
		return
	}

	u, err := h.users.Register(r.Context(), uid, email, body)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// Me handles GET /api/users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	writeJSON(w, http.StatusOK, u)
}
