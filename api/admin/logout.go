package admin

import (
	"lojastreet_server/api/middleware"
	"lojastreet_server/handling"
	"lojastreet_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleLogout revokes the current token and clears the session cookie.
func (ar *AdminRoutesManager) HandleLogout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	if err := ar.authService.Logout(r.Context(), claims); err != nil {
		handling.HandleServiceError(w, ar.logger, err, "logout failed")
		return
	}

	lib.ClearCookie(lib.AccessCookieName, ar.authService.CookieOptions(), w)

	gecho.Success(w,
		gecho.WithMessage("Logout successful"),
		gecho.Send(),
	)
}
