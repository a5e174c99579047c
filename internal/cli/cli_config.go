package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CLIConfig represents the configuration for the CLI
type CLIConfig struct {
	ServerURL string `yaml:"serverURL"`
	TokenPath string `yaml:"tokenPath"`
	AuthType  string `yaml:"authType"`
}

// LoadCLIConfig loads configuration from multiple sources in order of precedence:
// 1. Flags (handled by caller)
// 2. Environment variables
// 3. Config file (~/.envschema/config.yaml)
func LoadCLIConfig() (*CLIConfig, error) {
	path := ""
	if homeDir, err := os.UserHomeDir(); err == nil {
		path = filepath.Join(homeDir, ".envschema", "config.yaml")
	}
	return LoadCLIConfigFrom(path)
}

// LoadCLIConfigFrom is LoadCLIConfig with an explicit config file path. A
// missing file is not an error.
func LoadCLIConfigFrom(path string) (*CLIConfig, error) {
	config := &CLIConfig{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	// Environment variables override the config file
	if v := os.Getenv("ENVSCHEMA_SERVER_URL"); v != "" {
		config.ServerURL = v
	}
	if v := os.Getenv("ENVSCHEMA_TOKEN_PATH"); v != "" {
		config.TokenPath = v
	}
	if v := os.Getenv("ENVSCHEMA_AUTH_TYPE"); v != "" {
		config.AuthType = v
	}

	return config, nil
}
