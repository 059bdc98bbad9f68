package debug

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// PaymentTokenStatus reports whether the provider token is well-formed.
func (drm *DebugRoutesManager) PaymentTokenStatus(w http.ResponseWriter, r *http.Request) {
	gecho.Success(w,
		gecho.WithData(drm.paymentService.TokenStatus()),
		gecho.Send(),
	)
}
