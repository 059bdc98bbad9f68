package api

import (
	"lojastreet_server/api/admin"
	"lojastreet_server/api/checkout"
	"lojastreet_server/api/debug"
	"lojastreet_server/api/health"
	"lojastreet_server/api/middleware"
	"lojastreet_server/api/products"
	"lojastreet_server/api/uploads"
	"lojastreet_server/config"
	"lojastreet_server/services"
	"lojastreet_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
)

func App(cfg *structs.Config, logger *gecho.Logger, svc *services.ServiceManager) chi.Router {
	r := chi.NewRouter()

	// the request logger does not need caller locations
	mwLogger := config.NewLogger(cfg, false)

	metrics := health.NewMetrics()

	var limiter middleware.RateLimiter
	if svc.CacheService != nil {
		limiter = svc.CacheService
	}

	// Initialize middleware
	mw := middleware.NewMiddleware(cfg, mwLogger, svc.AuthService, limiter, metrics)

	// Core infra
	r.Use(chiware.RequestID)
	r.Use(chiware.RealIP)
	r.Use(chiware.Recoverer)

	// Limits & security
	r.Use(mw.BodyLimit(cfg.Server.MaxBodyBytes))
	r.Use(mw.SecurityHeaders())

	// Observability
	r.Use(mw.MetricsMiddleware)
	r.Use(mw.SetupLoggerMiddleware())

	// CORS (must be before auth)
	r.Use(mw.SetupCORS().Handler)

	r.Use(mw.RateLimitMiddleware())

	// Register all routes
	NewRouterManager(
		products.NewProductRoutesManager(logger, svc.ProductService, mw),
		admin.NewAdminRoutesManager(logger, svc.AuthService, svc.ProductService, mw),
		uploads.NewUploadRoutesManager(logger, svc.UploadService, mw),
		checkout.NewCheckoutRoutesManager(logger, svc.CheckoutService),
		health.NewHealthRoutesManager(svc.HealthService, metrics),
		debug.NewDebugRoutesManager(logger, cfg, svc.PaymentService, svc.CacheService),
	).RegisterRoutes(r)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		gecho.Success(w,
			gecho.WithMessage("Welcome to the "+cfg.Server.AppName+" API"),
			gecho.Send(),
		)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		gecho.NotFound(w,
			gecho.Send(),
		)
	})

	return r
}
