package auth

import (
	"context"
	"crypto/subtle"
)

// StaticProvider accepts a single shared token.
type StaticProvider struct {
	token    string
	username string
}

// NewStaticProvider creates a provider accepting token and identifying its
// bearer as username.
func NewStaticProvider(token, username string) *StaticProvider {
	if username == "" {
		username = "static"
	}
	return &StaticProvider{token: token, username: username}
}

// Authenticate compares token with the configured one in constant time.
func (p *StaticProvider) Authenticate(_ context.Context, token string) (*Identity, error) {
	if token == "" || p.token == "" {
		return nil, NewAuthError(p.Type(), "empty token", nil)
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(p.token)) != 1 {
		return nil, NewAuthError(p.Type(), "token mismatch", nil)
	}
	return &Identity{Type: p.Type(), Username: p.username}, nil
}

// Name returns the human-readable name of the provider
func (p *StaticProvider) Name() string {
	return "Shared Token"
}

// Type returns the provider type identifier
func (p *StaticProvider) Type() string {
	return "static"
}
