package main

import (
	"fmt"
	"os"

	"github.com/nauticalab/envschema/internal/cli"
	"github.com/spf13/cobra"
)

var (
	// Flags shared by commands that can talk to a check service
	remoteURL  string
	remoteAuth string
	tokenPath  string
)

func addRemoteFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&remoteURL, "remote", "", "URL of a check service to use instead of a local schema; bare --remote uses the CLI config")
	cmd.Flags().Lookup("remote").NoOptDefVal = useConfigURL
	cmd.Flags().StringVar(&remoteAuth, "auth-type", "", "Auth provider to request from the check service")
	cmd.Flags().StringVar(&tokenPath, "token-path", "", "File holding the bearer token for the check service")
}

// useConfigURL is the value of a bare --remote flag.
const useConfigURL = "config"

// remoteSettings resolves the remote flags against the CLI config file.
// Remote mode is off unless --remote is given.
func remoteSettings() (url, path, authType string) {
	cfg, err := cli.LoadCLIConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	url = remoteURL
	if url == useConfigURL {
		url = cfg.ServerURL
		if url == "" {
			fmt.Fprintln(os.Stderr, "❌ --remote without a URL requires serverURL in ~/.envschema/config.yaml or ENVSCHEMA_SERVER_URL")
			os.Exit(1)
		}
	}

	path = tokenPath
	if path == "" {
		path = cfg.TokenPath
	}
	authType = remoteAuth
	if authType == "" {
		authType = cfg.AuthType
	}
	return url, path, authType
}
