package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAll(t *testing.T) {
	schemaDir := t.TempDir()
	writeFile(t, schemaDir, "billing/"+ManifestFileName, billingManifest)
	writeFile(t, schemaDir, "search/"+ManifestFileName, "fields:\n  INDEX:\n    type: string\n    default: products\n")
	writeFile(t, schemaDir, "broken/"+ManifestFileName, "fields:\n  PORT:\n    type: bogus\n")
	writeFile(t, schemaDir, "docs/README.md", "not a service\n")

	t.Run("writes templates", func(t *testing.T) {
		outputDir := t.TempDir()
		results, err := GenerateAll(GenerateOptions{SchemaDir: schemaDir, OutputDir: outputDir, Workers: 2})
		require.NoError(t, err)

		require.Len(t, results, 3)
		assert.Equal(t, "billing", results[0].Service)
		assert.True(t, results[0].Success)
		assert.Equal(t, "broken", results[1].Service)
		assert.False(t, results[1].Success)
		assert.Contains(t, results[1].Error.Error(), "failed to load schema")
		assert.Equal(t, "search", results[2].Service)
		assert.True(t, results[2].Success)

		content, err := os.ReadFile(filepath.Join(outputDir, "search", TemplateFileName))
		require.NoError(t, err)
		assert.Contains(t, string(content), "INDEX=products")

		assert.NoFileExists(t, filepath.Join(outputDir, "broken", TemplateFileName))
		assert.NoDirExists(t, filepath.Join(outputDir, "docs"))
	})

	t.Run("configmap", func(t *testing.T) {
		outputDir := t.TempDir()
		_, err := GenerateAll(GenerateOptions{
			SchemaDir: schemaDir,
			OutputDir: outputDir,
			ConfigMap: true,
			Namespace: "payments",
		})
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(outputDir, "billing", "configmap.yaml"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "name: billing-env-template")
		assert.Contains(t, string(content), "namespace: payments")
		assert.Contains(t, string(content), "    PORT=8080")
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		outputDir := filepath.Join(t.TempDir(), "build")
		results, err := GenerateAll(GenerateOptions{SchemaDir: schemaDir, OutputDir: outputDir, DryRun: true})
		require.NoError(t, err)
		assert.Len(t, results, 3)
		assert.NoDirExists(t, outputDir)
	})

	t.Run("empty directory", func(t *testing.T) {
		results, err := GenerateAll(GenerateOptions{SchemaDir: t.TempDir(), OutputDir: t.TempDir()})
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := GenerateAll(GenerateOptions{SchemaDir: filepath.Join(t.TempDir(), "nope")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read schema directory")
	})
}
