package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nauticalab/envschema/internal/api"
	"github.com/nauticalab/envschema/internal/auth"
	"github.com/nauticalab/envschema/internal/config"
	"github.com/nauticalab/envschema/internal/git"
	"github.com/nauticalab/envschema/internal/k8s"
)

// ServeOptions holds configuration for the serve command
type ServeOptions struct {
	SchemaPath string
	Port       int
	Stamp      bool
	// Cluster enables the ConfigMap endpoints and is required by k8s-sa auth
	Cluster bool
	// AuthK8s enables service account tokens; Audience and Namespaces tune it
	AuthK8s    bool
	Audience   string
	Namespaces []string
	// StaticTokenPath enables a shared token read from this file
	StaticTokenPath string
	Version         string
	BuildTime       string
	GitCommit       string
	GoVersion       string
}

// RunServer starts the check service and blocks until SIGINT or SIGTERM
func RunServer(opts ServeOptions) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	_, root, err := config.LoadSchema(opts.SchemaPath)
	if err != nil {
		return err
	}

	template := root.Template()
	if opts.Stamp {
		template = git.Stamp(template, opts.SchemaPath)
	}

	var k8sClient *k8s.Client
	if opts.Cluster || opts.AuthK8s {
		if k8sClient, err = k8s.NewClient(); err != nil {
			return fmt.Errorf("failed to create k8s client: %w", err)
		}
	}

	providers, err := buildProviders(opts, k8sClient)
	if err != nil {
		return err
	}

	serverConfig := api.ServerConfig{
		Port:      opts.Port,
		Schema:    root,
		Template:  template,
		Providers: providers,
		Version:   opts.Version,
		GitCommit: opts.GitCommit,
		BuildTime: opts.BuildTime,
		GoVersion: opts.GoVersion,
	}
	if opts.Cluster {
		serverConfig.K8sClient = k8sClient
	}

	server, err := api.NewServer(serverConfig)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	fmt.Printf("Starting envschema check service on :%d\n", opts.Port)
	fmt.Printf("Schema: %s (%d fields)\n", opts.SchemaPath, len(root.FieldNames()))
	fmt.Printf("\nEndpoints:\n")
	fmt.Printf("  GET  /api/v1/health\n")
	fmt.Printf("  GET  /api/v1/version\n")
	fmt.Printf("  GET  /api/v1/template\n")
	fmt.Printf("  GET  /api/v1/schema\n")
	fmt.Printf("  POST /api/v1/check\n")
	if opts.Cluster {
		fmt.Printf("  GET  /api/v1/check/configmaps/{namespace}/{name}\n")
	}
	if len(providers) > 0 {
		fmt.Printf("  GET  /api/v1/auth/whoami\n")
	}
	fmt.Println()

	return server.StartWithContext(ctx)
}

// buildProviders creates the auth providers requested by opts
func buildProviders(opts ServeOptions, k8sClient *k8s.Client) (map[string]auth.AuthProvider, error) {
	providers := map[string]auth.AuthProvider{}

	if opts.AuthK8s {
		provider := auth.NewK8sSAProvider(k8sClient, opts.Audience, opts.Namespaces...)
		providers[provider.Type()] = provider
	}

	if opts.StaticTokenPath != "" {
		token, err := os.ReadFile(opts.StaticTokenPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read token file %s: %w", opts.StaticTokenPath, err)
		}
		provider := auth.NewStaticProvider(strings.TrimSpace(string(token)), "")
		providers[provider.Type()] = provider
	}

	return providers, nil
}

