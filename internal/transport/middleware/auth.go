package middleware

import (
	"net/http"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/pkg/logger"
)

// PrincipalContext tags the request logger with the authenticated principal.
// It must run after auth.Handler.Authenticate.
func PrincipalContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := internal.PrincipalFromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.With(r.Context(), "principal_id", principal.ID, "principal_role", principal.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
