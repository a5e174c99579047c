package k8s

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	authv1 "k8s.io/api/authentication/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/nauticalab/envschema/pkg/schema"
)

// DefaultNamespace is used when an object reference names no namespace.
const DefaultNamespace = "default"

// Client wraps the Kubernetes clientset and reads ConfigMaps and Secrets as
// schema snapshots.
type Client struct {
	clientset kubernetes.Interface
}

// NewClient creates a new Kubernetes client using the standard kubeconfig location
// or in-cluster config if running inside a Kubernetes cluster.
func NewClient() (*Client, error) {
	config, err := getKubeConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes client: %w", err)
	}

	return &Client{clientset: clientset}, nil
}

// NewClientWithInterface wraps an existing clientset, such as a fake one.
func NewClientWithInterface(clientset kubernetes.Interface) *Client {
	return &Client{clientset: clientset}
}

// getKubeConfig attempts to load Kubernetes configuration from the following sources in order:
// 1. In-cluster config (if running inside a pod)
// 2. KUBECONFIG environment variable
// 3. ~/.kube/config (default kubeconfig location)
func getKubeConfig() (*rest.Config, error) {
	// Try in-cluster config first
	config, err := rest.InClusterConfig()
	if err == nil {
		return config, nil
	}

	// Fall back to kubeconfig file
	kubeconfig := os.Getenv("KUBECONFIG")
	if kubeconfig == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		kubeconfig = filepath.Join(home, ".kube", "config")
	}

	config, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build config from kubeconfig: %w", err)
	}

	return config, nil
}

// ObjectRef names a namespaced object.
type ObjectRef struct {
	Namespace string
	Name      string
}

func (r ObjectRef) String() string {
	return r.Namespace + "/" + r.Name
}

// ParseObjectRef parses "namespace/name" or "name". A missing namespace
// defaults to DefaultNamespace.
func ParseObjectRef(ref string) (ObjectRef, error) {
	namespace, name, found := strings.Cut(ref, "/")
	if !found {
		namespace, name = DefaultNamespace, ref
	}
	if namespace == "" || name == "" || strings.Contains(name, "/") {
		return ObjectRef{}, fmt.Errorf("invalid object reference %q, expected namespace/name", ref)
	}
	return ObjectRef{Namespace: namespace, Name: name}, nil
}

// ConfigMapSnapshot returns the data of a ConfigMap. Binary data is skipped.
func (c *Client) ConfigMapSnapshot(ctx context.Context, ref ObjectRef) (schema.Snapshot, error) {
	configMap, err := c.clientset.CoreV1().ConfigMaps(ref.Namespace).Get(ctx, ref.Name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get configmap %s: %w", ref, err)
	}
	return configMapData(configMap), nil
}

// ConfigMapsSnapshotWithLabels merges the data of every ConfigMap in namespace
// matching labelSelector. ConfigMaps are applied in name order, so on
// conflicting keys the last name wins.
// Example labelSelector: "app=billing,tier=backend"
func (c *Client) ConfigMapsSnapshotWithLabels(ctx context.Context, namespace, labelSelector string) (schema.Snapshot, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	list, err := c.clientset.CoreV1().ConfigMaps(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: labelSelector,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list configmaps with labels %s in namespace %s: %w", labelSelector, namespace, err)
	}

	items := slices.Clone(list.Items)
	slices.SortFunc(items, func(a, b corev1.ConfigMap) int {
		return strings.Compare(a.Name, b.Name)
	})

	out := schema.Snapshot{}
	for i := range items {
		maps.Copy(out, configMapData(&items[i]))
	}
	return out, nil
}

// SecretSnapshot returns the decoded data of a Secret. StringData, which the
// API server folds into Data on write, takes precedence when present.
func (c *Client) SecretSnapshot(ctx context.Context, ref ObjectRef) (schema.Snapshot, error) {
	secret, err := c.clientset.CoreV1().Secrets(ref.Namespace).Get(ctx, ref.Name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret %s: %w", ref, err)
	}

	out := make(schema.Snapshot, len(secret.Data)+len(secret.StringData))
	for key, value := range secret.Data {
		out[key] = string(value)
	}
	maps.Copy(out, secret.StringData)
	return out, nil
}

// ValidateToken validates a service account token using the TokenReview API
func (c *Client) ValidateToken(ctx context.Context, tokenReview *authv1.TokenReview) (*authv1.TokenReview, error) {
	result, err := c.clientset.AuthenticationV1().TokenReviews().Create(ctx, tokenReview, metav1.CreateOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create TokenReview: %w", err)
	}
	return result, nil
}

func configMapData(configMap *corev1.ConfigMap) schema.Snapshot {
	out := make(schema.Snapshot, len(configMap.Data))
	maps.Copy(out, configMap.Data)
	return out
}
