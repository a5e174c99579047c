// Package templates renders Kubernetes manifests that ship a schema's
// .env template into a cluster.
package templates

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
)

// Embed all templates at compile time
//
//go:embed *.tmpl
var templates embed.FS

// ConfigMapData is the input of the configmap template
type ConfigMapData struct {
	// Name of the service; the ConfigMap is named <Name>-env-template
	Name      string
	Namespace string
	// Template is the rendered .env template
	Template string
	// Revision annotates the ConfigMap with the manifest's commit, if known
	Revision string
}

var funcs = template.FuncMap{
	"indent": indent,
	"quote":  strconv.Quote,
}

// Renderer handles template operations
type Renderer struct {
	outputDir string
}

// NewRenderer creates a new template renderer writing into outputDir
func NewRenderer(outputDir string) *Renderer {
	return &Renderer{
		outputDir: outputDir,
	}
}

// Render executes the named template with data and writes the result to w
func Render(w io.Writer, templateName string, data any) error {
	// Read from embedded filesystem
	templateContent, err := templates.ReadFile(templateName + ".tmpl")
	if err != nil {
		return err
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(templateContent))
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render template %s: %w", templateName, err)
	}
	return nil
}

// RenderTemplate renders the named template to <outputDir>/<templateName>.yaml
// and returns the written path.
func (r *Renderer) RenderTemplate(templateName string, data any) (string, error) {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", r.outputDir, err)
	}

	outputPath := filepath.Join(r.outputDir, templateName+".yaml")
	outputFile, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create output file %s: %w", outputPath, err)
	}
	defer outputFile.Close()

	if err := Render(outputFile, templateName, data); err != nil {
		return "", err
	}
	return outputPath, nil
}

// RenderConfigMap writes configmap.yaml for data
func (r *Renderer) RenderConfigMap(data ConfigMapData) (string, error) {
	return r.RenderTemplate("configmap", data)
}

// indent prefixes every non-empty line of s with n spaces and drops the
// trailing newline.
func indent(n int, s string) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}
