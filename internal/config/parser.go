package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadManifest reads, parses and validates the schema manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	// Check if the manifest exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("schema manifest not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema manifest %s: %w", path, err)
	}

	manifest, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("invalid schema manifest %s: %w", path, err)
	}
	manifest.path = path

	return manifest, nil
}

// ParseManifest parses and validates a manifest held in memory.
func ParseManifest(data []byte) (*Manifest, error) {
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ValidateManifest(&manifest); err != nil {
		return nil, err
	}

	return &manifest, nil
}
