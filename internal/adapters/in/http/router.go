// internal/adapters/in/http/router.go
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"storefront/internal/adapters/in/http/handler"
	"storefront/internal/adapters/in/http/middleware"
)

// RouterDeps carries everything the HTTP surface needs. All fields are
// required except as noted on the handlers themselves.
type RouterDeps struct {
	Auth     *middleware.Auth
	Products *handler.ProductHandler
	Carts    *handler.CartHandler
	Orders   *handler.OrderHandler
	Reviews  *handler.ReviewHandler
	Users    *handler.UserHandler

	// AllowedOrigins feeds CORS; empty means same-origin only.
	AllowedOrigins []string
}

// NewRouter wires the full route table.
//
// Route tiers:
//   - public:            catalog reads, review reads, health
//   - token:             register (account doc may not exist yet)
//   - token + account:   cart, orders, reviews writes, profile
//   - token + admin:     catalog writes, status engine, back office
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recover)
	if len(deps.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   deps.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(api chi.Router) {
		// Public catalog reads.
		api.Get("/products", deps.Products.List)
		api.Get("/products/{id}", deps.Products.Get)
		api.Get("/products/{id}/reviews", deps.Reviews.ListForProduct)

		// Token only: the account document may not exist yet.
		api.Group(func(tok chi.Router) {
			tok.Use(deps.Auth.VerifyToken)
			tok.Post("/users/register", deps.Users.Register)
		})

		// Token + account document.
		api.Group(func(auth chi.Router) {
			auth.Use(deps.Auth.VerifyToken)
			auth.Use(deps.Auth.LoadUser)

			auth.Get("/users/me", deps.Users.Me)

			auth.Get("/cart", deps.Carts.Get)
			auth.Delete("/cart", deps.Carts.Clear)
			auth.Post("/cart/items", deps.Carts.AddLine)
			auth.Put("/cart/items/{lineId}", deps.Carts.SetLineQty)
			auth.Delete("/cart/items/{lineId}", deps.Carts.RemoveLine)

			auth.Post("/orders", deps.Orders.Place)
			auth.Get("/orders", deps.Orders.ListMine)

			auth.Post("/products/{id}/reviews", deps.Reviews.Add)
			auth.Delete("/reviews/{id}", deps.Reviews.Delete)

			// Admin back office. Registered before the {id} routes so
			// /orders/admin/* never matches {id}.
			auth.Group(func(admin chi.Router) {
				admin.Use(middleware.RequireAdmin)

				admin.Post("/products", deps.Products.Create)
				admin.Put("/products/{id}", deps.Products.Update)
				admin.Delete("/products/{id}", deps.Products.Delete)
				admin.Post("/products/{id}/image", deps.Products.UploadImage)

				admin.Get("/orders/admin/all", deps.Orders.AdminList)
				admin.Get("/orders/admin/stats", deps.Orders.AdminStats)
				admin.Put("/orders/{id}/status", deps.Orders.UpdateStatus)
			})

			auth.Get("/orders/{id}", deps.Orders.Get)
			auth.Post("/orders/{id}/cancel", deps.Orders.Cancel)
			auth.Delete("/orders/{id}", deps.Orders.Delete)
		})
	})

	return r
}
