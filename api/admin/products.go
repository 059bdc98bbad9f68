package admin

import (
	"lojastreet_server/handling"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// GetProductForEdit returns a product regardless of its active flag.
func (ar *AdminRoutesManager) GetProductForEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := handling.ParseID(r, "id")
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	product, err := ar.productService.GetProduct(r.Context(), id, true)
	if err != nil {
		handling.HandleServiceError(w, ar.logger, err, "failed to fetch product")
		return
	}

	gecho.Success(w,
		gecho.WithData(product),
		gecho.Send(),
	)
}
