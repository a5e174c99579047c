package main

import (
	"github.com/nauticalab/envschema/internal/cli"
	"github.com/spf13/cobra"
)

var describeOpts cli.DescribeOptions

var describeCmd = &cobra.Command{
	Use:     "describe",
	Aliases: []string{"template"},
	Short:   "Print a commented .env template for the schema",
	Long: `Describe renders the schema as a dotenv template: one KEY=placeholder line
per variable, preceded by its description. Optional variables and the
non-default options of a union are commented out.

Examples:
  envschema describe --schema service/envschema.yaml
  envschema describe --stamp --output .env.example`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts := describeOpts
		opts.SchemaPath = schemaPath
		opts.Remote, opts.TokenPath, opts.AuthType = remoteSettings()
		cli.DescribeRun(opts)
	},
}

func init() {
	describeCmd.Flags().BoolVar(&describeOpts.Stamp, "stamp", false, "Prefix the template with the manifest's git revision")
	describeCmd.Flags().StringVarP(&describeOpts.Output, "output", "o", "", "Write the template to a file instead of stdout")
	addRemoteFlags(describeCmd)
}
