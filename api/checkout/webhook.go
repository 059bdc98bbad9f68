package checkout

import (
	"encoding/json"
	"lojastreet_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// PaymentWebhook handles POST /api/webhooks/mp. Every notification is
// acknowledged with 200.
func (crm *CheckoutRoutesManager) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var notification structs.PaymentNotification
	if err := json.NewDecoder(r.Body).Decode(&notification); err != nil {
		crm.logger.Warn("Ignoring malformed payment notification", gecho.Field("error", err))
		gecho.Success(w, gecho.Send())
		return
	}

	crm.checkoutService.HandleNotification(r.Context(), &notification)

	gecho.Success(w, gecho.Send())
}
