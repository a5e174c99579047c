package main

import (
	"github.com/nauticalab/envschema/internal/cli"
	"github.com/spf13/cobra"
)

var checkOpts cli.CheckOptions

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the environment against the schema",
	Long: `Check builds an environment snapshot and parses it with the schema.

Sources are merged in order, later sources winning: the process environment
(unless --no-environ), --env-file files, the --values file, ConfigMaps matched
by --selector, --configmap objects and finally --secret objects.

Examples:
  envschema check
  envschema check --no-environ --env-file .env --env-file .env.local
  envschema check --configmap billing/app-env --secret billing/app-secrets --print yaml
  envschema check --remote https://envschema.internal --env-file .env`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts := checkOpts
		opts.SchemaPath = schemaPath
		opts.Verbose = verbose
		opts.Remote, opts.TokenPath, opts.AuthType = remoteSettings()
		cli.CheckRun(opts)
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkOpts.NoEnviron, "no-environ", false, "Ignore the process environment")
	checkCmd.Flags().StringArrayVar(&checkOpts.EnvFiles, "env-file", nil, "Dotenv file to read (repeatable)")
	checkCmd.Flags().StringVar(&checkOpts.ValuesFile, "values", "", "YAML file of KEY: value pairs")
	checkCmd.Flags().StringArrayVar(&checkOpts.ConfigMaps, "configmap", nil, "ConfigMap to read as [namespace/]name (repeatable)")
	checkCmd.Flags().StringArrayVar(&checkOpts.Secrets, "secret", nil, "Secret to read as [namespace/]name (repeatable)")
	checkCmd.Flags().StringVarP(&checkOpts.ConfigMapSelector, "selector", "l", "", "Label selector for ConfigMaps to read")
	checkCmd.Flags().StringVarP(&checkOpts.Namespace, "namespace", "n", "", "Namespace for bare object names and --selector")
	checkCmd.Flags().StringVarP(&checkOpts.Print, "print", "p", "", "Print the parsed values as yaml or json")
	checkCmd.Flags().BoolVar(&checkOpts.ShowSecrets, "show-secrets", false, "Print secret values instead of redacting them")
	addRemoteFlags(checkCmd)
}
