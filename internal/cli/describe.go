package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/nauticalab/envschema/internal/client"
	"github.com/nauticalab/envschema/internal/config"
	"github.com/nauticalab/envschema/internal/git"
)

// DescribeOptions holds configuration for the describe command
type DescribeOptions struct {
	SchemaPath string
	// Stamp prefixes the template with the manifest's git revision
	Stamp bool
	// Output is a file to write; empty writes to stdout
	Output string
	// Remote fetches the template from a running check service
	Remote   string
	Token     string
	TokenPath string
	AuthType  string
}

// DescribeRun prints the schema's dotenv template
func DescribeRun(opts DescribeOptions) {
	w := io.Writer(os.Stdout)
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Failed to create %s: %v\n", opts.Output, err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	if err := Describe(context.Background(), w, opts); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Describe failed: %v\n", err)
		os.Exit(1)
	}

	if opts.Output != "" {
		fmt.Printf("✅ Wrote template to %s\n", opts.Output)
	}
}

// Describe writes the schema's template to w
func Describe(ctx context.Context, w io.Writer, opts DescribeOptions) error {
	template, err := renderTemplate(ctx, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, template)
	return err
}

func renderTemplate(ctx context.Context, opts DescribeOptions) (string, error) {
	if opts.Remote != "" {
		c := client.NewClient(client.ClientConfig{
			BaseURL:   opts.Remote,
			Token:     opts.Token,
			TokenPath: opts.TokenPath,
			AuthType:  opts.AuthType,
		})
		template, err := c.Template(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to fetch template: %w", err)
		}
		return template, nil
	}

	_, root, err := config.LoadSchema(opts.SchemaPath)
	if err != nil {
		return "", err
	}

	template := root.Template()
	if opts.Stamp {
		template = git.Stamp(template, opts.SchemaPath)
	}
	return template, nil
}
