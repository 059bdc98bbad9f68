package debug

import (
	"lojastreet_server/config"
	"lojastreet_server/services"
	"lojastreet_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type DebugRoutesManager struct {
	logger         *gecho.Logger
	cfg            *structs.Config
	paymentService *services.PaymentService
	cacheService   *services.CacheService // nil when caching is disabled
}

func NewDebugRoutesManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	paymentService *services.PaymentService,
	cacheService *services.CacheService,
) *DebugRoutesManager {
	return &DebugRoutesManager{
		logger:         logger,
		cfg:            cfg,
		paymentService: paymentService,
		cacheService:   cacheService,
	}
}

func (drm *DebugRoutesManager) RegisterRoutes(r chi.Router) {
	// Debug routes - only in non-production environments
	if config.IsProduction(drm.cfg) {
		return
	}

	r.Route("/api/debug", func(r chi.Router) {
		r.Get("/mp", drm.PaymentTokenStatus)
		if drm.cacheService != nil {
			r.Post("/cache/clear", drm.ClearCache)
		}
	})
}
