package router

import (
	"net/http"

	"github.com/orderflow-tech/orderflow-application/internal/handler"
	"github.com/orderflow-tech/orderflow-application/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
// Middleware order: Recovery -> Logging -> CORS -> APIKeyAuth.
func New(
	orderHandler *handler.OrderHandler,
	paymentHandler *handler.PaymentHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.APIKeyAuth(apiKey, logger))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/checkout", orderHandler.Checkout)
			r.Get("/", orderHandler.List)
			r.Get("/code/{code}", orderHandler.GetByCode)
			r.Get("/{id}", orderHandler.GetByID)
			r.Patch("/{id}/status", orderHandler.UpdateStatus)
			r.Get("/{id}/payment/status", paymentHandler.GetStatus)
		})

		r.Post("/webhooks/payment", paymentHandler.Webhook)
	})

	return r
}
