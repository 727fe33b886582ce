package api

import (
	"net/http"

	"github.com/crlapples/commerce/internal/logger"
	"github.com/crlapples/commerce/internal/middleware"
	"github.com/crlapples/commerce/internal/scope"

	"github.com/go-chi/chi/v5"
)

// NewRouter assembles the storefront API behind the shared middlewares.
func NewRouter(h *Handler, issuer *scope.Issuer) http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.ScopeMiddleware(issuer))
	r.Use(middleware.RateLimitMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/products/{id}", h.GetProduct)

		r.Get("/cart", h.GetCart)
		r.Post("/cart/items", h.AddItem)
		r.Patch("/cart/items", h.UpdateItem)
		r.Delete("/cart", h.ClearCart)
		r.Post("/cart/open", h.OpenCart)
		r.Post("/cart/close", h.CloseCart)

		r.Post("/paypal/create-order", h.CreateOrder)
		r.Post("/paypal/capture-order", h.CaptureOrder)
	})

	return r
}
