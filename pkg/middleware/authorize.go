package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/iota-uz/sitecms/pkg/auth"
	"github.com/iota-uz/sitecms/pkg/composables"
	"github.com/iota-uz/sitecms/pkg/httpapi"
	"github.com/iota-uz/sitecms/pkg/ordering"
)

// SessionResolver turns a session token into the caller's auth context.
type SessionResolver interface {
	Authorize(ctx context.Context, token string) (auth.Context, error)
}

// SessionToken reads the session from the cookie named cookieName, then from a
// bearer Authorization header.
func SessionToken(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) > len("bearer ") && strings.EqualFold(h[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(h[len("bearer "):])
	}
	return ""
}

// Authorize attaches the caller's auth context to the request. Requests
// without a valid session continue anonymously; admin operations reject them.
func Authorize(resolver SessionResolver, cookieName string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a := auth.Anonymous()
			if token := SessionToken(r, cookieName); token != "" {
				resolved, err := resolver.Authorize(r.Context(), token)
				if err == nil {
					a = resolved
				} else {
					composables.UseLogger(r.Context()).WithError(err).Debug("session rejected")
				}
			}
			next.ServeHTTP(w, r.WithContext(composables.WithAuth(r.Context(), a)))
		})
	}
}

// RequireAuth answers 401 for anonymous callers.
func RequireAuth() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !composables.UseAuth(r.Context()).Authenticated() {
				_ = httpapi.WriteServiceError(w, ordering.ErrUnauthorized, w.Header().Get("X-Request-Id"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
