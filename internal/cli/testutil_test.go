package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const billingManifest = `description: Billing service
fields:
  PORT:
    type: integer
    default: "8080"
    validate: "min=1,max=65535"
  DB_PASSWORD:
    type: string
    secret: true
`

// writeFile writes content to name inside dir, creating parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
