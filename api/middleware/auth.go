package middleware

import (
	"context"
	"lojastreet_server/lib"
	"lojastreet_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// Context keys for storing admin data in request context
type contextKey string

const ClaimsContextKey contextKey = "claims"

// AdminAuthMiddleware protects routes to only authenticated admins
func (mw *Middleware) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := mw.authenticate(r)
		if err != nil {
			mw.logger.Warn("Rejected admin request", gecho.Field("error", err), gecho.Field("path", r.URL.Path))
			gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthMiddleware attaches admin claims when a valid token is present
// and lets every request through.
func (mw *Middleware) OptionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := mw.authenticate(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (mw *Middleware) authenticate(r *http.Request) (*structs.AuthClaims, error) {
	token, err := lib.TokenFromRequest(r)
	if err != nil {
		return nil, err
	}
	return mw.authService.ValidateToken(r.Context(), token)
}

// GetClaimsFromContext is a helper function to extract the claims from request context
func GetClaimsFromContext(ctx context.Context) (*structs.AuthClaims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*structs.AuthClaims)
	return claims, ok
}

// IsAdmin reports whether the request carries validated admin claims.
func IsAdmin(ctx context.Context) bool {
	claims, ok := GetClaimsFromContext(ctx)
	return ok && claims.Role == lib.AdminRole
}
