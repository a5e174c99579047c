package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nauticalab/envschema/internal/client"
	"github.com/nauticalab/envschema/internal/config"
	"github.com/nauticalab/envschema/internal/k8s"
	"github.com/nauticalab/envschema/internal/snapshot"
	"github.com/nauticalab/envschema/internal/validation"
	"github.com/nauticalab/envschema/pkg/schema"
)

// CheckOptions holds configuration for the check command
type CheckOptions struct {
	SchemaPath string
	// Snapshot sources, merged in this order; later sources win
	NoEnviron         bool
	EnvFiles          []string
	ValuesFile        string
	ConfigMaps        []string
	ConfigMapSelector string
	Namespace         string
	Secrets           []string
	// Print writes the parsed values as yaml or json when the check passes
	Print       string
	ShowSecrets bool
	// Remote checks against a running check service instead of a local schema
	Remote   string
	Token     string
	TokenPath string
	AuthType  string
	Verbose  bool

	// KubeClient is used for cluster sources; created on demand when nil
	KubeClient *k8s.Client
}

// CheckRun checks the environment and exits non-zero if it is invalid
func CheckRun(opts CheckOptions) {
	result, err := Check(context.Background(), os.Stdout, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Check failed: %v\n", err)
		os.Exit(1)
	}
	if !result.IsValid {
		os.Exit(1)
	}
}

// Check builds the snapshot described by opts, checks it and writes the log
// lines and a summary to w. The error is only set when the check could not
// run at all.
func Check(ctx context.Context, w io.Writer, opts CheckOptions) (*validation.ValidationResult, error) {
	if opts.Print != "" && opts.Print != FormatYAML && opts.Print != FormatJSON {
		return nil, fmt.Errorf("unknown output format %q, expected %s or %s", opts.Print, FormatYAML, FormatJSON)
	}

	env, err := buildSnapshot(ctx, opts)
	if err != nil {
		return nil, err
	}

	if opts.Remote != "" {
		return checkRemote(ctx, w, env, opts)
	}

	_, root, err := config.LoadSchema(opts.SchemaPath)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(w, "🔍 Checking environment against %s\n", opts.SchemaPath)
	if opts.Verbose {
		fmt.Fprintf(w, "   %d variables in snapshot\n", len(env))
	}

	result := validation.NewChecker(root).Check(env, schema.NewConsoleLogger(w))
	printValidationResult(w, result, opts.Verbose)

	if result.IsValid && opts.Print != "" {
		values := result.Values
		if !opts.ShowSecrets {
			values = root.Redact(values)
		}
		if err := printValues(w, values, opts.Print); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func checkRemote(ctx context.Context, w io.Writer, env schema.Snapshot, opts CheckOptions) (*validation.ValidationResult, error) {
	c := client.NewClient(client.ClientConfig{
		BaseURL:  opts.Remote,
		Token:     opts.Token,
		TokenPath: opts.TokenPath,
		AuthType:  opts.AuthType,
	})

	fmt.Fprintf(w, "🔍 Checking environment against %s\n", opts.Remote)
	resp, err := c.Check(ctx, env, opts.Print != "")
	if err != nil {
		return nil, fmt.Errorf("remote check failed: %w", err)
	}

	console := schema.NewConsoleLogger(w)
	for _, line := range resp.Log {
		if line.Error {
			console.Error(line.Text)
		} else {
			console.Info(line.Text)
		}
	}

	result := &validation.ValidationResult{
		Errors:   resp.Errors,
		Warnings: resp.Warnings,
		IsValid:  resp.Valid,
		Values:   resp.Values,
		Log:      resp.Log,
	}
	printValidationResult(w, result, opts.Verbose)

	if result.IsValid && opts.Print != "" {
		if err := printValues(w, result.Values, opts.Print); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// buildSnapshot merges every source named in opts
func buildSnapshot(ctx context.Context, opts CheckOptions) (schema.Snapshot, error) {
	var parts []schema.Snapshot

	if !opts.NoEnviron {
		parts = append(parts, snapshot.FromEnviron())
	}

	if len(opts.EnvFiles) > 0 {
		env, err := snapshot.LoadDotenv(opts.EnvFiles...)
		if err != nil {
			return nil, err
		}
		parts = append(parts, env)
	}

	if opts.ValuesFile != "" {
		values, err := snapshot.LoadValues(opts.ValuesFile)
		if err != nil {
			return nil, err
		}
		parts = append(parts, values)
	}

	if len(opts.ConfigMaps) > 0 || len(opts.Secrets) > 0 || opts.ConfigMapSelector != "" {
		kube := opts.KubeClient
		if kube == nil {
			var err error
			if kube, err = k8s.NewClient(); err != nil {
				return nil, err
			}
		}

		if opts.ConfigMapSelector != "" {
			data, err := kube.ConfigMapsSnapshotWithLabels(ctx, opts.Namespace, opts.ConfigMapSelector)
			if err != nil {
				return nil, err
			}
			parts = append(parts, data)
		}

		for _, name := range opts.ConfigMaps {
			ref, err := parseRef(name, opts.Namespace)
			if err != nil {
				return nil, err
			}
			data, err := kube.ConfigMapSnapshot(ctx, ref)
			if err != nil {
				return nil, err
			}
			parts = append(parts, data)
		}

		for _, name := range opts.Secrets {
			ref, err := parseRef(name, opts.Namespace)
			if err != nil {
				return nil, err
			}
			data, err := kube.SecretSnapshot(ctx, ref)
			if err != nil {
				return nil, err
			}
			parts = append(parts, data)
		}
	}

	return snapshot.Merge(parts...), nil
}

// parseRef parses an object reference, applying namespace to bare names
func parseRef(ref, namespace string) (k8s.ObjectRef, error) {
	parsed, err := k8s.ParseObjectRef(ref)
	if err != nil {
		return k8s.ObjectRef{}, err
	}
	if namespace != "" && !strings.Contains(ref, "/") {
		parsed.Namespace = namespace
	}
	return parsed, nil
}
