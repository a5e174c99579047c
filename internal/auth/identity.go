package auth

import (
	"context"
	"fmt"
)

// Identity represents an authenticated caller
type Identity struct {
	// Type of authentication (e.g., "k8s-sa", "static")
	Type string `json:"type"`

	// Username is the full identifier (e.g., system:serviceaccount:ns:name)
	Username string `json:"username"`

	// Namespace is the Kubernetes namespace (for k8s-sa type)
	Namespace string `json:"namespace,omitempty"`

	// Attributes holds additional metadata/claims
	Attributes map[string]string `json:"attributes,omitempty"`
}

// String returns a human-readable representation of the identity
func (i *Identity) String() string {
	return fmt.Sprintf("%s:%s", i.Type, i.Username)
}

// contextKey is used for storing identity in request context
type contextKey string

// IdentityContextKey is the key for storing Identity in context
const IdentityContextKey contextKey = "identity"

// GetIdentityFromContext extracts the Identity from the request context
func GetIdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(IdentityContextKey).(*Identity)
	return identity, ok
}

// WithIdentity returns a new context with the identity stored
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, IdentityContextKey, identity)
}
