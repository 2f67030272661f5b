package middleware

import (
	"net/http"

	"github.com/mkovaleva/classtrack/internal/handlers/render"
	"github.com/mkovaleva/classtrack/internal/models"
	"github.com/mkovaleva/classtrack/internal/service/auth"
)

type principalResolver interface {
	Resolve(authorization string) *models.Principal
}

// Principal resolves the bearer token into a caller identity, once per
// request, before any gate runs. A missing or invalid token leaves the
// principal nil instead of failing the call: public operations must stay
// reachable without a token
func Principal(resolver principalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := resolver.Resolve(r.Header.Get("Authorization"))
			ctx := NewContextWithPrincipal(r.Context(), p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Require admits the request only when the resolved principal satisfies the
// tier. 401 without a principal, 403 with one of an insufficient role
func Require(tier auth.Tier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := PrincipalFromContext(r.Context())

			if err := auth.Require(tier, p); err != nil {
				if p == nil {
					render.ServiceError(w, "Not authenticated", http.StatusUnauthorized)
					return
				}
				render.ServiceError(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
