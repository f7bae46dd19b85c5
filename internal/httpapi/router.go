package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikolayk812/shop-checkout/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// NewRouter wires the handler routes. Recoverer runs inside the logging and
// metrics middleware.
func NewRouter(h *Handler, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(instrument(h.metrics))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler(gatherer))
	r.Post("/webhook", h.Webhook)

	r.Route("/shop", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/product/{productId}", h.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(h.requireOwner)

			r.Get("/cart", h.GetCart)
			r.Post("/cart", h.AddToCart)
			r.Patch("/cart", h.DecreaseCartItem)
			r.Delete("/cart", h.RemoveCartItem)

			r.Get("/orders", h.ListOrders)
			r.Get("/orders/{orderId}", h.GetOrder)

			r.Post("/checkout", h.Checkout)
		})
	})

	return r
}
