package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dermacart/dermacart-backend/pkg/logger"
)

const cartSessionHeader = "X-Cart-Session"

type sessionKey struct{}

// CartSession copies the storefront's session header into the request context
// and onto the log context. An absent header is fine; the cart service mints a
// session on first use.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(cartSessionHeader))
			ctx := r.Context()
			if sessionID != "" {
				ctx = context.WithValue(ctx, sessionKey{}, sessionID)
				if logg != nil {
					ctx = logg.WithCartSession(ctx, sessionID)
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session id carried by the request, if any.
func SessionFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(sessionKey{}).(string); ok {
		return v
	}
	return ""
}
