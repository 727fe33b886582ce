package middleware

import (
	"net/http"

	"github.com/crlapples/commerce/internal/logger"
	"github.com/crlapples/commerce/internal/scope"

	"go.uber.org/zap"
)

// ScopeMiddleware pins every request to a cart scope. A valid cookie
// keeps its scope; anything else gets a fresh one, so a tampered or
// expired token silently becomes an empty cart rather than an error.
func ScopeMiddleware(issuer *scope.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var scopeID string

			if cookie, err := r.Cookie(scope.CookieName); err == nil && cookie.Value != "" {
				scopeID, _ = issuer.Verify(cookie.Value)
			}

			if scopeID == "" {
				token, newID, err := issuer.Issue()
				if err != nil {
					logger.FromCtx(r.Context()).Error("failed to issue scope token", zap.Error(err))
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				scopeID = newID
				http.SetCookie(w, &http.Cookie{
					Name:     scope.CookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   30 * 24 * 3600,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := scope.WithID(r.Context(), scopeID)
			ctx = logger.WithScopeID(ctx, scopeID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
