package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fleet-allocation-service/internal/api/handlers"
	"fleet-allocation-service/internal/platform/metrics"
	"fleet-allocation-service/internal/ports"
	"fleet-allocation-service/internal/services"
)

type RouterConfig struct {
	Repo           ports.CatalogRepository
	Solver         services.Solver
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg RouterConfig) http.Handler {
	metrics.RegisterDefault()

	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(requestIDMiddleware)
	r.Use(tracingMiddleware)
	r.Use(loggingMiddleware)
	r.Use(metricsMiddleware)

	vehicleTypes := &handlers.VehicleTypeHandler{Repo: cfg.Repo}
	allocations := &handlers.AllocationHandler{Repo: cfg.Repo, Solver: cfg.Solver}

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Use(rateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
		r.Get("/vehicle-types", vehicleTypes.List)
		r.Post("/allocations", allocations.Create)
	})

	return r
}
