package admin

import (
	"lojastreet_server/api/middleware"
	"lojastreet_server/handling"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (ar *AdminRoutesManager) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	profile, err := ar.authService.Me(r.Context(), claims)
	if err != nil {
		handling.HandleServiceError(w, ar.logger, err, "failed to load admin profile")
		return
	}

	gecho.Success(w,
		gecho.WithData(profile),
		gecho.Send(),
	)
}
