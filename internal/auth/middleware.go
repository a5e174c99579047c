package auth

import (
	"fmt"
	"log"
	"net/http"
	"strings"
)

const (
	// AuthTypeHeader is the HTTP header for specifying auth provider type
	AuthTypeHeader = "X-Auth-Type"

	// DefaultAuthType is used when X-Auth-Type header is not provided
	DefaultAuthType = "k8s-sa"
)

// Middleware creates an HTTP middleware that validates authentication on every request.
// A request naming no provider uses DefaultAuthType, or the only provider
// when exactly one is registered.
func Middleware(providers map[string]AuthProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token from Authorization header
			token, err := extractBearerToken(r)
			if err != nil {
				log.Printf("Auth failed: %v", err)
				http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
				return
			}

			authType := r.Header.Get(AuthTypeHeader)
			if authType == "" {
				authType = defaultType(providers)
			}

			provider, ok := providers[authType]
			if !ok {
				log.Printf("Auth failed: unknown auth type %q", authType)
				http.Error(w, fmt.Sprintf("Unauthorized: unknown auth type %q", authType), http.StatusUnauthorized)
				return
			}

			identity, err := provider.Authenticate(r.Context(), token)
			if err != nil {
				log.Printf("Auth failed with %s provider: %v", authType, err)
				http.Error(w, "Unauthorized: authentication failed", http.StatusUnauthorized)
				return
			}

			log.Printf("Authenticated: %s", identity)

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

func defaultType(providers map[string]AuthProvider) string {
	if len(providers) == 1 {
		for name := range providers {
			return name
		}
	}
	return DefaultAuthType
}

// extractBearerToken extracts the bearer token from the Authorization header
// Expected format: "Authorization: Bearer <token>"
func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("missing Authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid Authorization header format")
	}

	if strings.ToLower(parts[0]) != "bearer" {
		return "", fmt.Errorf("authorization scheme must be Bearer")
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", fmt.Errorf("empty bearer token")
	}

	return token, nil
}

// RequireAuthentication is a helper that returns 401 if no identity in context
func RequireAuthentication(w http.ResponseWriter, r *http.Request) (*Identity, bool) {
	identity, ok := GetIdentityFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	return identity, true
}
