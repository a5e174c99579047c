package auth

import (
	"context"
	"fmt"
	"slices"
	"strings"

	authv1 "k8s.io/api/authentication/v1"

	"github.com/nauticalab/envschema/internal/k8s"
)

// DefaultAudience is the token audience expected when none is configured.
const DefaultAudience = "envschema"

// K8sSAProvider implements authentication via Kubernetes service account tokens
type K8sSAProvider struct {
	// client is the Kubernetes client used for TokenReview
	client *k8s.Client
	// audience is the expected audience for tokens
	audience string
	// namespaces restricts accepted service accounts; empty accepts all
	namespaces []string
}

// NewK8sSAProvider creates a new Kubernetes service account authentication provider
func NewK8sSAProvider(client *k8s.Client, audience string, namespaces ...string) *K8sSAProvider {
	if audience == "" {
		audience = DefaultAudience
	}

	return &K8sSAProvider{
		client:     client,
		audience:   audience,
		namespaces: slices.Clone(namespaces),
	}
}

// Authenticate validates a Kubernetes service account token using TokenReview API
func (p *K8sSAProvider) Authenticate(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, NewAuthError(p.Type(), "empty token", nil)
	}

	tr := &authv1.TokenReview{
		Spec: authv1.TokenReviewSpec{
			Token:     token,
			Audiences: []string{p.audience},
		},
	}

	result, err := p.client.ValidateToken(ctx, tr)
	if err != nil {
		return nil, NewAuthError(p.Type(), "token validation failed", err)
	}

	if !result.Status.Authenticated {
		return nil, NewAuthError(p.Type(), "token not authenticated", nil)
	}

	if len(result.Status.Audiences) > 0 && !slices.Contains(result.Status.Audiences, p.audience) {
		return nil, NewAuthError(p.Type(), fmt.Sprintf("token audience mismatch, expected %q", p.audience), nil)
	}

	// Username format: system:serviceaccount:<namespace>:<sa-name>
	username := result.Status.User.Username
	saName, namespace, err := parseServiceAccountUsername(username)
	if err != nil {
		return nil, NewAuthError(p.Type(), "failed to parse service account", err)
	}

	if len(p.namespaces) > 0 && !slices.Contains(p.namespaces, namespace) {
		return nil, NewAuthError(p.Type(), fmt.Sprintf("namespace %q is not allowed", namespace), nil)
	}

	return &Identity{
		Type:      p.Type(),
		Username:  username,
		Namespace: namespace,
		Attributes: map[string]string{
			"sa_name": saName,
			"uid":     result.Status.User.UID,
		},
	}, nil
}

// Name returns the human-readable name of the provider
func (p *K8sSAProvider) Name() string {
	return "Kubernetes Service Account"
}

// Type returns the provider type identifier
func (p *K8sSAProvider) Type() string {
	return "k8s-sa"
}

// parseServiceAccountUsername parses a Kubernetes service account username
// Format: system:serviceaccount:<namespace>:<sa-name>
// Returns: (sa-name, namespace, error)
func parseServiceAccountUsername(username string) (string, string, error) {
	const prefix = "system:serviceaccount:"

	remainder, ok := strings.CutPrefix(username, prefix)
	if !ok {
		return "", "", fmt.Errorf("not a service account username: %q", username)
	}

	namespace, saName, found := strings.Cut(remainder, ":")
	if !found {
		return "", "", fmt.Errorf("invalid service account format: %q", username)
	}

	if namespace == "" || saName == "" {
		return "", "", fmt.Errorf("empty namespace or service account name in: %q", username)
	}

	return saName, namespace, nil
}
