package checkout

import (
	"lojastreet_server/handling"
	"lojastreet_server/lib"
	"lojastreet_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// CreatePix handles POST /api/checkout/pix
func (crm *CheckoutRoutesManager) CreatePix(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.PixCheckoutRequest](r)
	if err != nil {
		handling.HandleServiceError(w, crm.logger, err, "invalid checkout body")
		return
	}

	payment, err := crm.checkoutService.CreatePix(r.Context(), body)
	if err != nil {
		handling.HandleServiceError(w, crm.logger, err, "failed to create pix payment")
		return
	}

	gecho.Success(w,
		gecho.WithData(payment),
		gecho.Send(),
	)
}
