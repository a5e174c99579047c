package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nauticalab/envschema/pkg/schema"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFromEnviron(t *testing.T) {
	t.Setenv("ENVSCHEMA_SNAPSHOT_TEST", "a=b")

	snapshot := FromEnviron()
	assert.Equal(t, "a=b", snapshot["ENVSCHEMA_SNAPSHOT_TEST"])
}

func TestLoadDotenv(t *testing.T) {
	t.Run("single file", func(t *testing.T) {
		path := writeFile(t, ".env", `# service
PORT=8080
export HOST=localhost
GREETING="hello world"
`)
		snapshot, err := LoadDotenv(path)
		require.NoError(t, err)
		assert.Equal(t, schema.Snapshot{
			"PORT":     "8080",
			"HOST":     "localhost",
			"GREETING": "hello world",
		}, snapshot)
	})

	t.Run("later files override earlier ones", func(t *testing.T) {
		base := writeFile(t, ".env", "PORT=8080\nHOST=localhost\n")
		local := writeFile(t, ".env.local", "PORT=9090\n")

		snapshot, err := LoadDotenv(base, local)
		require.NoError(t, err)
		assert.Equal(t, schema.Snapshot{"PORT": "9090", "HOST": "localhost"}, snapshot)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadDotenv(filepath.Join(t.TempDir(), "nope.env"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read env file")
	})

	t.Run("no files", func(t *testing.T) {
		snapshot, err := LoadDotenv()
		require.NoError(t, err)
		assert.Empty(t, snapshot)
	})
}

func TestParseDotenv(t *testing.T) {
	snapshot, err := ParseDotenv("A=1\nB='two words'\n")
	require.NoError(t, err)
	assert.Equal(t, schema.Snapshot{"A": "1", "B": "two words"}, snapshot)
}

func TestParseValues(t *testing.T) {
	t.Run("scalars keep their literal form", func(t *testing.T) {
		snapshot, err := ParseValues([]byte(`PORT: 8080
DEBUG: true
RATIO: 0.50
HOST: localhost
EMPTY:
TIMEOUT: 1m30s
`))
		require.NoError(t, err)
		assert.Equal(t, schema.Snapshot{
			"PORT":    "8080",
			"DEBUG":   "true",
			"RATIO":   "0.50",
			"HOST":    "localhost",
			"EMPTY":   "",
			"TIMEOUT": "1m30s",
		}, snapshot)
	})

	t.Run("empty document", func(t *testing.T) {
		snapshot, err := ParseValues(nil)
		require.NoError(t, err)
		assert.Empty(t, snapshot)
	})

	t.Run("nested values are rejected", func(t *testing.T) {
		_, err := ParseValues([]byte("SERVER:\n  PORT: 80\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "value of SERVER must be a scalar")
	})

	t.Run("top level must be a mapping", func(t *testing.T) {
		_, err := ParseValues([]byte("- a\n- b\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected a mapping")
	})
}

func TestLoadValues(t *testing.T) {
	path := writeFile(t, "values.yaml", "PORT: 8080\n")

	snapshot, err := LoadValues(path)
	require.NoError(t, err)
	assert.Equal(t, schema.Snapshot{"PORT": "8080"}, snapshot)

	_, err = LoadValues(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestMerge(t *testing.T) {
	merged := Merge(
		schema.Snapshot{"A": "1", "B": "1"},
		nil,
		schema.Snapshot{"B": "2", "C": "2"},
	)
	assert.Equal(t, schema.Snapshot{"A": "1", "B": "2", "C": "2"}, merged)
}
