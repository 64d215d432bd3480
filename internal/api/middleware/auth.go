package middleware

import (
	"context"
	"errors"
	"net/http"

	"docuverify/internal/common"
	"docuverify/internal/common/security"
	"docuverify/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const principalCtxKey contextKey = "principal"

// Authenticator resolves the verified token from the request context into a
// Principal. It must sit below the router's jwtauth.Verify middleware.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		if err != nil {
			if errors.Is(err, jwtauth.ErrNoTokenFound) {
				common.RespondWithKind(w, common.KindMissingToken, "Authentication token missing")
			} else {
				common.RespondWithKind(w, common.KindInvalidToken, "Invalid or expired token")
			}
			return
		}
		if token == nil {
			common.RespondWithKind(w, common.KindMissingToken, "Authentication token missing")
			return
		}

		principal, err := security.PrincipalFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), principalCtxKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects principals whose role is not exactly the given one.
// Checks are structural, not hierarchical.
func RequireRole(role model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipalFromContext(r.Context())
			if !ok || principal.Role != role {
				common.RespondWithKind(w, common.KindForbidden, "You do not have permission to perform this action.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetPrincipalFromContext returns the authenticated principal, if any.
func GetPrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	principal, ok := ctx.Value(principalCtxKey).(model.Principal)
	return principal, ok
}
