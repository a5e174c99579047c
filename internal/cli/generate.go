package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/nauticalab/envschema/internal/config"
	"github.com/nauticalab/envschema/internal/git"
	"github.com/nauticalab/envschema/internal/templates"
)

// ManifestFileName is the manifest looked up in each service directory.
const ManifestFileName = "envschema.yaml"

// TemplateFileName is the file generated next to each service's output.
const TemplateFileName = ".env.example"

// ServiceJob represents work to be done for one service
type ServiceJob struct {
	Name string
}

// ProcessingResult represents the outcome of processing one service
type ProcessingResult struct {
	Service  string
	Success  bool
	Error    error
	Duration time.Duration
}

// GenerateOptions holds configuration for the generate command
type GenerateOptions struct {
	SchemaDir string
	OutputDir string
	DryRun    bool
	Stamp     bool
	Verbose   bool
	Workers   int
	// ConfigMap also writes a ConfigMap manifest carrying the template
	ConfigMap bool
	Namespace string
}

// GenerateRunAll writes a template for every service and exits non-zero if
// any failed
func GenerateRunAll(opts GenerateOptions) {
	results, err := GenerateAll(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error discovering services: %v\n", err)
		os.Exit(1)
	}

	if len(results) == 0 {
		fmt.Printf("No services found in %s\n", opts.SchemaDir)
		return
	}

	var failures []ProcessingResult
	for i, result := range results {
		if result.Success {
			fmt.Printf("[%d/%d] ✅ %s (%.1fs)\n", i+1, len(results), result.Service, result.Duration.Seconds())
		} else {
			failures = append(failures, result)
			fmt.Printf("[%d/%d] ❌ %s (%.1fs): %v\n", i+1, len(results), result.Service, result.Duration.Seconds(), result.Error)
		}
	}

	fmt.Printf("\n🎉 Batch processing complete!\n")
	fmt.Printf("✅ Successful: %d\n", len(results)-len(failures))

	if len(failures) > 0 {
		fmt.Printf("❌ Failed: %d\n", len(failures))
		fmt.Printf("\nFailures:\n")
		for _, failure := range failures {
			fmt.Printf("  - %s: %v\n", failure.Service, failure.Error)
		}
		os.Exit(1)
	}
}

// GenerateAll processes every service directory under opts.SchemaDir with a
// pool of workers. Results are sorted by service name.
func GenerateAll(opts GenerateOptions) ([]ProcessingResult, error) {
	services, err := findAllServices(opts.SchemaDir)
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, nil
	}

	numWorkers := opts.Workers
	if numWorkers <= 0 {
		numWorkers = 4
	}

	jobs := make(chan ServiceJob, len(services))
	results := make(chan ProcessingResult, len(services))

	for i := 0; i < numWorkers; i++ {
		go serviceWorker(jobs, results, opts)
	}

	for _, service := range services {
		jobs <- ServiceJob{Name: service}
	}
	close(jobs)

	collected := make([]ProcessingResult, 0, len(services))
	for i := 0; i < len(services); i++ {
		collected = append(collected, <-results)
	}
	sort.Slice(collected, func(i, j int) bool {
		return collected[i].Service < collected[j].Service
	})
	return collected, nil
}

func serviceWorker(jobs <-chan ServiceJob, results chan<- ProcessingResult, opts GenerateOptions) {
	for job := range jobs {
		startTime := time.Now()
		err := generateService(job.Name, opts)

		results <- ProcessingResult{
			Service:  job.Name,
			Success:  err == nil,
			Error:    err,
			Duration: time.Since(startTime),
		}
	}
}

// generateService writes the template of a single service
func generateService(service string, opts GenerateOptions) error {
	manifestPath := filepath.Join(opts.SchemaDir, service, ManifestFileName)

	_, root, err := config.LoadSchema(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	template := root.Template()
	if opts.Stamp {
		template = git.Stamp(template, manifestPath)
	}

	outputPath := filepath.Join(opts.OutputDir, service, TemplateFileName)
	if opts.DryRun {
		if opts.Verbose {
			fmt.Printf("🔍 Dry run - would write %s\n", outputPath)
			if opts.ConfigMap {
				fmt.Printf("🔍 Dry run - would write %s\n", filepath.Join(filepath.Dir(outputPath), "configmap.yaml"))
			}
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(template), 0o644); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}

	if opts.ConfigMap {
		data := templates.ConfigMapData{
			Name:      service,
			Namespace: opts.Namespace,
			Template:  template,
		}
		if info, err := git.Inspect(manifestPath); err == nil {
			data.Revision = info.ShortHash()
		}
		renderer := templates.NewRenderer(filepath.Dir(outputPath))
		if _, err := renderer.RenderConfigMap(data); err != nil {
			return fmt.Errorf("failed to render configmap: %w", err)
		}
	}
	return nil
}

// findAllServices lists the directories of schemaDir holding a manifest
func findAllServices(schemaDir string) ([]string, error) {
	var services []string

	entries, err := os.ReadDir(schemaDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			manifestPath := filepath.Join(schemaDir, entry.Name(), ManifestFileName)
			if _, err := os.Stat(manifestPath); err == nil {
				services = append(services, entry.Name())
			}
		}
	}

	return services, nil
}
