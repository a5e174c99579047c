package main

import (
	"fmt"

	"github.com/nauticalab/envschema/internal/cli"
	"github.com/spf13/cobra"
)

var generateOpts cli.GenerateOptions

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate .env templates for every service in a directory",
	Long: `Generate looks for <schema-dir>/<service>/envschema.yaml and writes
<output>/<service>/.env.example for each service found. With --configmap a
<output>/<service>/configmap.yaml carrying the template is written as well.

Examples:
  envschema generate --schema-dir ./services
  envschema generate --schema-dir ./services --output ./build --stamp`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts := generateOpts
		opts.Verbose = verbose

		fmt.Println("Generating templates for all services...")
		if verbose {
			fmt.Printf("Schema directory: %s\n", opts.SchemaDir)
			fmt.Printf("Output directory: %s\n", opts.OutputDir)
			fmt.Printf("Dry run mode: %t\n", opts.DryRun)
		}
		cli.GenerateRunAll(opts)
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateOpts.SchemaDir, "schema-dir", "./services", "Directory containing one subdirectory per service")
	generateCmd.Flags().StringVarP(&generateOpts.OutputDir, "output", "o", "./build", "Output directory for generated templates")
	generateCmd.Flags().BoolVar(&generateOpts.DryRun, "dry-run", false, "Show what would be generated without creating files")
	generateCmd.Flags().BoolVar(&generateOpts.Stamp, "stamp", false, "Prefix each template with its manifest's git revision")
	generateCmd.Flags().BoolVar(&generateOpts.ConfigMap, "configmap", false, "Also write a ConfigMap manifest carrying each template")
	generateCmd.Flags().StringVarP(&generateOpts.Namespace, "namespace", "n", "", "Namespace of the generated ConfigMaps")
	generateCmd.Flags().IntVar(&generateOpts.Workers, "workers", 4, "Number of services processed in parallel")
}
