package health

import (
	"lojastreet_server/services"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HealthRoutesManager struct {
	healthService *services.HealthService
	metrics       *Metrics
}

func NewHealthRoutesManager(healthService *services.HealthService, metrics *Metrics) *HealthRoutesManager {
	return &HealthRoutesManager{
		healthService: healthService,
		metrics:       metrics,
	}
}

func (hrm *HealthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/api/health", hrm.Liveness)
	r.Get("/health/server", hrm.GetServerHealth)
	r.Get("/health/database", hrm.GetDatabaseHealth)

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.HandlerFor(hrm.metrics.Registry, promhttp.HandlerOpts{}).ServeHTTP)
}
