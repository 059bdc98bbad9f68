package products

import (
	"lojastreet_server/api/middleware"
	"lojastreet_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ProductRoutesManager struct {
	logger         *gecho.Logger
	productService *services.ProductService
	mw             *middleware.Middleware
}

func NewProductRoutesManager(
	logger *gecho.Logger,
	productService *services.ProductService,
	mw *middleware.Middleware,
) *ProductRoutesManager {
	return &ProductRoutesManager{
		logger:         logger,
		productService: productService,
		mw:             mw,
	}
}

func (prm *ProductRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		// Public catalog, admins may see inactive products
		r.Group(func(r chi.Router) {
			r.Use(prm.mw.OptionalAuthMiddleware)
			r.Get("/", prm.ListProducts)
			r.Get("/{id}", prm.GetProduct)
		})

		r.Group(func(r chi.Router) {
			r.Use(prm.mw.AdminAuthMiddleware)
			r.Post("/", prm.CreateProduct)
			r.Put("/{id}", prm.UpdateProduct)
			r.Patch("/{id}/discount", prm.PatchDiscount)
			r.Patch("/{id}/toggle", prm.ToggleActive)
			r.Delete("/{id}", prm.DeleteProduct)
		})
	})
}
