package main

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags (available to all commands)
	verbose    bool
	schemaPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "envschema",
	Short: "Check environment variables against a declarative schema",
	Long: `envschema turns a flat set of environment variables into typed, nested
configuration described by a YAML schema manifest.

It reports every missing, invalid or unused variable in one pass, renders a
commented .env template from the schema, and can serve checks over HTTP.`,
	SilenceUsage: true,
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&schemaPath, "schema", "s", "envschema.yaml", "Path to the schema manifest")

	// Add subcommands to root
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
