package admin

import (
	"lojastreet_server/handling"
	"lojastreet_server/lib"
	"lojastreet_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleLogin handles POST /api/admin/login. The token is returned in the body
// and also set as the session cookie.
func (ar *AdminRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.AuthRequest](r)
	if err != nil {
		ar.logger.Warn("Failed to extract login body", gecho.Field("error", err))
		handling.HandleServiceError(w, ar.logger, err, "invalid login body")
		return
	}

	login, err := ar.authService.Login(r.Context(), body)
	if err != nil {
		handling.HandleServiceError(w, ar.logger, err, "login failed")
		return
	}

	lib.SetCookie(lib.AccessCookieName, login.Token, login.ExpiresAt, ar.authService.CookieOptions(), w)

	gecho.Success(w,
		gecho.WithMessage("Login successful"),
		gecho.WithData(login),
		gecho.Send(),
	)
}
