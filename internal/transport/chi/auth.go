package chi

import (
	"net/http"
	"strings"

	"github.com/sichrplace/discovery/internal/domain"
)

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// IdentityMiddleware returns a middleware that validates Bearer tokens and
// attaches the caller identity to the request context. apiKeys maps token
// to actor label. If apiKeys is empty, authentication is disabled and all
// requests pass through anonymously.
func IdentityMiddleware(apiKeys map[string]string) func(http.Handler) http.Handler {
	validKeys := make(map[string]string, len(apiKeys))
	for token, actor := range apiKeys {
		if token != "" {
			validKeys[token] = actor
		}
	}

	return func(next http.Handler) http.Handler {
		// Auth disabled: pass everything through
		if len(validKeys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Exempt paths
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeError(w, http.StatusUnauthorized, codeBadRequest, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized,
					codeBadRequest, "authorization header must use Bearer scheme")
				return
			}

			token := auth[len(bearerPrefix):]
			actor, ok := validKeys[token]
			if !ok {
				writeError(w, http.StatusUnauthorized, codeBadRequest, "invalid api key")
				return
			}

			ctx := domain.ContextWithIdentity(r.Context(), actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
