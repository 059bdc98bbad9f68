package services

import (
	"lojastreet_server/database"
	"lojastreet_server/lib"
	"lojastreet_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	AuthService      *AuthService
	EmailService     *EmailService
	CacheService     *CacheService // nil when caching is disabled
	HealthService    *HealthService
	ProductService   *ProductService
	PaymentService   *PaymentService
	CheckoutService  *CheckoutService
	UploadService    *UploadService
	BootstrapService *BootstrapService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	clock := lib.RealClock{}
	productStore := database.NewProductRepository(db)
	adminStore := database.NewAdminRepository(db)

	// Interfaces only receive the cache when it exists
	var cacheService *CacheService
	var catalogCache CatalogCache
	var blacklist TokenBlacklist
	if cfg.Cache.Enabled {
		cacheService = NewCacheService(logger, cfg)
		catalogCache = cacheService
		blacklist = cacheService
	}

	emailService := NewEmailService(logger, cfg)
	paymentService := NewPaymentService(logger, cfg)

	return &ServiceManager{
		AuthService:      NewAuthService(cfg, logger, adminStore, blacklist, clock),
		EmailService:     emailService,
		CacheService:     cacheService,
		HealthService:    NewHealthService(logger, db),
		ProductService:   NewProductService(logger, productStore, clock, catalogCache),
		PaymentService:   paymentService,
		CheckoutService:  NewCheckoutService(logger, cfg, paymentService, emailService),
		UploadService:    NewUploadService(logger, cfg),
		BootstrapService: NewBootstrapService(logger, cfg, adminStore, productStore, clock),
	}
}

// Close releases connections held by the services.
func (sm *ServiceManager) Close() error {
	if sm.CacheService != nil {
		return sm.CacheService.Close()
	}
	return nil
}
