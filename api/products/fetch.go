package products

import (
	"lojastreet_server/api/middleware"
	"lojastreet_server/handling"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// ListProducts handles GET /api/products
func (prm *ProductRoutesManager) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := handling.ParseCatalogFilter(r)

	// Only admins may widen the listing to inactive products
	isAdmin := middleware.IsAdmin(r.Context())
	if filter.IncludeInactive && !isAdmin {
		filter.IncludeInactive = false
	}

	prm.logger.Debug("Fetching products",
		gecho.Field("category", filter.Category),
		gecho.Field("featured", filter.Featured),
		gecho.Field("discounted", filter.Discounted),
		gecho.Field("include_inactive", filter.IncludeInactive),
		gecho.Field("limit", filter.Limit),
	)

	products, err := prm.productService.ListProducts(r.Context(), filter)
	if err != nil {
		handling.HandleServiceError(w, prm.logger, err, "failed to list products")
		return
	}

	gecho.Success(w,
		gecho.WithData(products),
		gecho.Send(),
	)
}

// GetProduct handles GET /api/products/{id}
func (prm *ProductRoutesManager) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := handling.ParseID(r, "id")
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	product, err := prm.productService.GetProduct(r.Context(), id, middleware.IsAdmin(r.Context()))
	if err != nil {
		handling.HandleServiceError(w, prm.logger, err, "failed to fetch product")
		return
	}

	gecho.Success(w,
		gecho.WithData(product),
		gecho.Send(),
	)
}
