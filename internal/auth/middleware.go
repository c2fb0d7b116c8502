package auth

import (
	"context"
	"net/http"
	"strings"

	"bookvault/internal/domain"
)

type contextKey struct{}

// IdentityFrom returns the acting-user identity stored by Middleware.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(domain.Identity)
	return id, ok
}

// Middleware extracts and validates the bearer token, storing the decoded
// identity in the request context. Missing or invalid tokens get a 401
// with a bearer challenge.
func (t *Tokens) Middleware(unauthorized func(w http.ResponseWriter, r *http.Request)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				w.Header().Set("WWW-Authenticate", "Bearer")
				unauthorized(w, r)
				return
			}
			identity, err := t.Identity(raw)
			if err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				unauthorized(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), contextKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
