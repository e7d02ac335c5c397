// internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	userdom "storefront/internal/domain/user"
)

// TokenVerifier abstracts Firebase ID token verification so the
// middleware can be exercised without a live Firebase project.
// *fbauth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// SessionCookieName carries the ID token when no Authorization header is
// present (browser clients).
const SessionCookieName = "session"

// context keys use a private type to avoid collisions.
type ctxKey struct{ name string }

var (
	ctxKeyUID   = ctxKey{name: "uid"}
	ctxKeyEmail = ctxKey{name: "email"}
	ctxKeyUser  = ctxKey{name: "currentUser"}
)

// Auth verifies the caller's ID token and, for user-scoped routes, loads
// the account document into the request context.
type Auth struct {
	Verifier TokenVerifier
	Users    userdom.Repository
}

// tokenFromRequest prefers the bearer header over the session cookie.
func tokenFromRequest(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(SessionCookieName); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}

// VerifyToken authenticates the request and stores uid + email in the
// context. It does not require an account document to exist yet (the
// register endpoint runs behind this alone).
func (m *Auth) VerifyToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || m.Verifier == nil {
			http.Error(w, "auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		idToken := tokenFromRequest(r)
		if idToken == "" {
			unauthorized(w, "missing token")
			return
		}

		token, err := m.Verifier.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			unauthorized(w, "invalid token")
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			unauthorized(w, "invalid uid in token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUID, uid)
		if emailRaw, ok := token.Claims["email"]; ok {
			if e, ok2 := emailRaw.(string); ok2 && strings.TrimSpace(e) != "" {
				ctx = context.WithValue(ctx, ctxKeyEmail, strings.TrimSpace(e))
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LoadUser resolves uid -> account document. Runs inside VerifyToken.
func (m *Auth) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || m.Users == nil {
			http.Error(w, "auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		uid := UIDFrom(r.Context())
		if uid == "" {
			unauthorized(w, "missing token")
			return
		}

		u, err := m.Users.GetByID(r.Context(), uid)
		if err != nil {
			forbidden(w, "account not registered")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUser, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates a subtree on the admin role. Must run inside
// LoadUser.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFrom(r.Context())
		if !ok {
			unauthorized(w, "missing token")
			return
		}
		if !u.IsAdmin() {
			forbidden(w, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UIDFrom returns the verified token uid, or "".
func UIDFrom(ctx context.Context) string {
	uid, _ := ctx.Value(ctxKeyUID).(string)
	return uid
}

// EmailFrom returns the verified token email claim, or "".
func EmailFrom(ctx context.Context) string {
	email, _ := ctx.Value(ctxKeyEmail).(string)
	return email
}

// UserFrom returns the loaded account document.
func UserFrom(ctx context.Context) (userdom.User, bool) {
	u, ok := ctx.Value(ctxKeyUser).(userdom.User)
	return u, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	writeAuthErr(w, http.StatusUnauthorized, msg)
}

func forbidden(w http.ResponseWriter, msg string) {
	writeAuthErr(w, http.StatusForbidden, msg)
}

func writeAuthErr(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
