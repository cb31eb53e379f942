package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mpulse/internal/config"
	"mpulse/internal/middleware"
	"mpulse/internal/services"
)

// NewRouter assembles the API router with the standard middleware
// chain and all handlers wired to their services.
func NewRouter(cfg *config.Config, logger *slog.Logger) http.Handler {
	analyticsService := services.NewAnalyticsService(cfg.Paths, logger)
	healthService := services.NewHealthService(config.Version, cfg.Paths, logger)

	analyticsHandler := NewAnalyticsHandler(analyticsService, logger)
	healthHandler := NewHealthHandler(healthService, logger)

	rateLimiter := middleware.NewRateLimiter(
		cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Compress(5))
	r.Use(rateLimiter.Handler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/analytics", analyticsHandler.Analytics)
		r.Get("/analytics/errors", analyticsHandler.ProcessingErrors)
		r.Get("/cleaning/report", analyticsHandler.CleaningReport)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
