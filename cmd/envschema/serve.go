package main

import (
	"fmt"

	"github.com/nauticalab/envschema/internal/cli"
	"github.com/spf13/cobra"
)

var serveOpts cli.ServeOptions

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the envschema check HTTP API server",
	Long: `Start the envschema check HTTP API server.

The server checks snapshots posted as JSON objects against the loaded schema
and serves the schema's template:
  - Health and version endpoints
  - Template and schema description
  - Snapshot checks, optionally returning the parsed values
  - ConfigMap checks when --cluster is set

Without any auth flag the API is open. --auth-k8s accepts Kubernetes service
account tokens and --token-file accepts a shared static token.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := serveOpts
		opts.SchemaPath = schemaPath
		opts.Version = version
		opts.GitCommit = gitCommit
		opts.BuildTime = buildTime
		opts.GoVersion = goVersion

		if err := cli.RunServer(opts); err != nil {
			return fmt.Errorf("server error: %w", err)
		}

		fmt.Println("Server shutdown complete")
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&serveOpts.Port, "port", "p", 8080, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveOpts.Stamp, "stamp", false, "Prefix the served template with the manifest's git revision")
	serveCmd.Flags().BoolVar(&serveOpts.Cluster, "cluster", false, "Enable ConfigMap checks against the current cluster")
	serveCmd.Flags().BoolVar(&serveOpts.AuthK8s, "auth-k8s", false, "Accept Kubernetes service account tokens")
	serveCmd.Flags().StringVar(&serveOpts.Audience, "audience", "envschema", "Expected token audience for service account tokens")
	serveCmd.Flags().StringSliceVar(&serveOpts.Namespaces, "allow-namespace", nil, "Namespaces whose service accounts may call the API (default all)")
	serveCmd.Flags().StringVar(&serveOpts.StaticTokenPath, "token-file", "", "File holding a shared bearer token")
}
