package admin

import (
	"lojastreet_server/api/middleware"
	"lojastreet_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AdminRoutesManager struct {
	logger         *gecho.Logger
	authService    *services.AuthService
	productService *services.ProductService
	mw             *middleware.Middleware
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	authService *services.AuthService,
	productService *services.ProductService,
	mw *middleware.Middleware,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:         logger,
		authService:    authService,
		productService: productService,
		mw:             mw,
	}
}

func (ar *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/login", ar.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(ar.mw.AdminAuthMiddleware)
			r.Post("/logout", ar.HandleLogout)
			r.Get("/me", ar.HandleMe)
			r.Get("/products/{id}", ar.GetProductForEdit)
		})
	})
}
