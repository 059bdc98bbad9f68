package products

import (
	"lojastreet_server/handling"
	"lojastreet_server/lib"
	"lojastreet_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// CreateProduct handles POST /api/products
func (prm *ProductRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.ProductRequest](r)
	if err != nil {
		handling.HandleServiceError(w, prm.logger, err, "invalid product body")
		return
	}

	product, err := prm.productService.CreateProduct(r.Context(), body)
	if err != nil {
		handling.HandleServiceError(w, prm.logger, err, "failed to create product")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product created"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

// UpdateProduct handles PUT /api/products/{id}
func (prm *ProductRoutesManager) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := handling.ParseID(r, "id")
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ProductRequest](r)
	if err != nil {
		handling.HandleServiceError(w, prm.logger, err, "invalid product body")
		return
	}

	product, err := prm.productService.UpdateProduct(r.Context(), id, body)
	if err != nil {
		handling.HandleServiceError(w, prm.logger, err, "failed to update product")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product updated"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

// PatchDiscount handles PATCH /api/products/{id}/discount
func (prm *ProductRoutesManager) PatchDiscount(w http.ResponseWriter, r *http.Request) {
	id, ok := handling.ParseID(r, "id")
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.DiscountRequest](r)
	if err != nil {
		handling.HandleServiceError(w, prm.logger, err, "invalid discount body")
		return
	}

	product, err := prm.productService.PatchDiscount(r.Context(), id, body.DiscountPrice)
	if err != nil {
		handling.HandleServiceError(w, prm.logger, err, "failed to patch discount")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Discount updated"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

// ToggleActive handles PATCH /api/products/{id}/toggle
func (prm *ProductRoutesManager) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id, ok := handling.ParseID(r, "id")
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	product, err := prm.productService.ToggleActive(r.Context(), id)
	if err != nil {
		handling.HandleServiceError(w, prm.logger, err, "failed to toggle product")
		return
	}

	gecho.Success(w,
		gecho.WithData(product),
		gecho.Send(),
	)
}

// DeleteProduct handles DELETE /api/products/{id}
func (prm *ProductRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := handling.ParseID(r, "id")
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	if err := prm.productService.DeleteProduct(r.Context(), id); err != nil {
		handling.HandleServiceError(w, prm.logger, err, "failed to delete product")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product deleted"),
		gecho.Send(),
	)
}
