package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/middleware"
)

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	pageService *service.PageService,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	pageHandler := NewPageHandler(pageService, logger)

	r.Group(func(r chi.Router) {
		r.Use(SessionCookie(pageService, logger))

		r.Get("/", pageHandler.Page)
		r.Get("/api/v1/page", pageHandler.State)
		r.Get("/api/v1/products/{productID}/reviews", pageHandler.ListReviews)

		r.Route("/products/{productID}", func(r chi.Router) {
			r.Post("/variant", pageHandler.SelectVariant)
			r.Post("/cart/add", pageHandler.AddToCart)
			r.Post("/cart/remove", pageHandler.RemoveFromCart)
			r.Post("/tabs/reviews", pageHandler.SelectReviewsTab)
			r.Post("/tabs/details", pageHandler.SelectDetailsTab)
			r.Post("/reviews", pageHandler.SubmitReview)
		})
	})

	return r
}
