package api

import (
	"lojastreet_server/api/admin"
	"lojastreet_server/api/checkout"
	"lojastreet_server/api/debug"
	"lojastreet_server/api/health"
	"lojastreet_server/api/products"
	"lojastreet_server/api/uploads"

	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	productRoutes  *products.ProductRoutesManager
	adminRoutes    *admin.AdminRoutesManager
	uploadRoutes   *uploads.UploadRoutesManager
	checkoutRoutes *checkout.CheckoutRoutesManager
	healthRoutes   *health.HealthRoutesManager
	debugRoutes    *debug.DebugRoutesManager
}

func NewRouterManager(
	productRoutes *products.ProductRoutesManager,
	adminRoutes *admin.AdminRoutesManager,
	uploadRoutes *uploads.UploadRoutesManager,
	checkoutRoutes *checkout.CheckoutRoutesManager,
	healthRoutes *health.HealthRoutesManager,
	debugRoutes *debug.DebugRoutesManager,
) *routerManager {
	return &routerManager{
		productRoutes:  productRoutes,
		adminRoutes:    adminRoutes,
		uploadRoutes:   uploadRoutes,
		checkoutRoutes: checkoutRoutes,
		healthRoutes:   healthRoutes,
		debugRoutes:    debugRoutes,
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.productRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
	rm.uploadRoutes.RegisterRoutes(r)
	rm.checkoutRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.debugRoutes.RegisterRoutes(r)
}
