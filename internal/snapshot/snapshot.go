// Package snapshot assembles the flat key/value maps a schema is parsed
// against, from the process environment, dotenv files and YAML values files.
package snapshot

import (
	"fmt"
	"maps"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nauticalab/envschema/pkg/schema"
)

// FromEnviron returns the current process environment.
func FromEnviron() schema.Snapshot {
	return schema.Environ()
}

// LoadDotenv reads each dotenv file in order. Later files override earlier
// ones. Variables are not exported to the process environment.
func LoadDotenv(paths ...string) (schema.Snapshot, error) {
	out := schema.Snapshot{}
	for _, path := range paths {
		values, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
		}
		maps.Copy(out, values)
	}
	return out, nil
}

// ParseDotenv parses dotenv content held in memory.
func ParseDotenv(content string) (schema.Snapshot, error) {
	values, err := godotenv.Unmarshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse env content: %w", err)
	}
	return values, nil
}

// LoadValues reads a YAML mapping of keys to scalar values. Scalars are kept
// in their literal form, so "port: 8080" yields "8080" and null yields "".
func LoadValues(path string) (schema.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read values file %s: %w", path, err)
	}

	values, err := ParseValues(data)
	if err != nil {
		return nil, fmt.Errorf("invalid values file %s: %w", path, err)
	}
	return values, nil
}

// ParseValues is LoadValues for content held in memory.
func ParseValues(data []byte) (schema.Snapshot, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	out := schema.Snapshot{}
	if doc.Kind == 0 {
		// Empty document
		return out, nil
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of keys to values", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if value.Kind == yaml.AliasNode {
			value = value.Alias
		}
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: value of %s must be a scalar", value.Line, key.Value)
		}
		if value.Tag == "!!null" {
			out[key.Value] = ""
			continue
		}
		out[key.Value] = value.Value
	}
	return out, nil
}

// Merge combines snapshots in order. A key present in several snapshots takes
// the value of the last one.
func Merge(snapshots ...schema.Snapshot) schema.Snapshot {
	out := schema.Snapshot{}
	for _, s := range snapshots {
		maps.Copy(out, s)
	}
	return out
}
