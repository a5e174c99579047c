package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCLIConfigFrom(t *testing.T) {
	clearEnv := func(t *testing.T) {
		t.Setenv("ENVSCHEMA_SERVER_URL", "")
		t.Setenv("ENVSCHEMA_TOKEN_PATH", "")
		t.Setenv("ENVSCHEMA_AUTH_TYPE", "")
	}

	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)
		cfg, err := LoadCLIConfigFrom(filepath.Join(t.TempDir(), "config.yaml"))
		require.NoError(t, err)
		assert.Equal(t, &CLIConfig{}, cfg)
	})

	t.Run("file values", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, t.TempDir(), "config.yaml",
			"serverURL: https://envschema.example.com\ntokenPath: /var/run/token\nauthType: static\n")

		cfg, err := LoadCLIConfigFrom(path)
		require.NoError(t, err)
		assert.Equal(t, "https://envschema.example.com", cfg.ServerURL)
		assert.Equal(t, "/var/run/token", cfg.TokenPath)
		assert.Equal(t, "static", cfg.AuthType)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, t.TempDir(), "config.yaml", "serverURL: https://a.example.com\nauthType: static\n")
		t.Setenv("ENVSCHEMA_SERVER_URL", "https://b.example.com")

		cfg, err := LoadCLIConfigFrom(path)
		require.NoError(t, err)
		assert.Equal(t, "https://b.example.com", cfg.ServerURL)
		assert.Equal(t, "static", cfg.AuthType)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, t.TempDir(), "config.yaml", "serverURL: [unclosed\n")
		_, err := LoadCLIConfigFrom(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}
