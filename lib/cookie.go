package lib

import (
	"errors"
	"net/http"
	"time"
)

const AccessCookieName = "ls_admin_token"

// CookieOptions mirrors the deployment specific parts of a session cookie.
type CookieOptions struct {
	Production bool
	Domain     string
}

func (o CookieOptions) apply(cookie *http.Cookie) {
	cookie.SameSite = http.SameSiteLaxMode
	if o.Production {
		// admin panel and API live on different subdomains
		cookie.SameSite = http.SameSiteNoneMode
		cookie.Secure = true
		cookie.Domain = o.Domain
	}
}

// SetCookie sets a secure, HttpOnly cookie for authentication/session usage
func SetCookie(key, val string, expiry time.Time, opts CookieOptions, w http.ResponseWriter) {
	cookie := &http.Cookie{
		Name:     key,
		Value:    val,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
	}
	opts.apply(cookie)

	http.SetCookie(w, cookie)
}

func GetCookieValue(key string, r *http.Request) (string, error) {
	cookie, err := r.Cookie(key)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrInvalidToken
		}
		return "", err
	}
	return cookie.Value, nil
}

// ClearCookie removes the cookie from the browser
func ClearCookie(key string, opts CookieOptions, w http.ResponseWriter) {
	cookie := &http.Cookie{
		Name:     key,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		HttpOnly: true,
	}
	opts.apply(cookie)

	http.SetCookie(w, cookie)
}
