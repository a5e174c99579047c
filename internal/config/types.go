package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Node types accepted in a manifest field.
const (
	TypeString   = "string"
	TypeNumber   = "number"
	TypeInteger  = "integer"
	TypeBoolean  = "boolean"
	TypeDuration = "duration"
	TypeEnum     = "enum"
	TypeObject   = "object"
	TypeUnion    = "union"
)

// Unused-variable modes of a manifest.
const (
	UnusedReport = "report"
	UnusedReject = "reject"
)

// Manifest is the YAML description of a schema tree.
type Manifest struct {
	Description  string   `yaml:"description,omitempty"`
	AssumePrefix []string `yaml:"assumePrefix,omitempty" validate:"dive,required"`
	IgnoreUnused []string `yaml:"ignoreUnused,omitempty" validate:"dive,env_key"`
	Unused       string   `yaml:"unused,omitempty" validate:"omitempty,oneof=report reject"`
	Fields       Fields   `yaml:"fields" validate:"required,min=1,dive"`

	path string `yaml:"-"` // File the manifest was loaded from
}

// FieldSpec describes one node of the tree. Which keys apply depends on Type.
type FieldSpec struct {
	Name        string  `yaml:"-" validate:"required,env_key"`
	Type        string  `yaml:"type" validate:"required,oneof=string number integer boolean duration enum object union"`
	Env         string  `yaml:"env,omitempty" validate:"omitempty,env_key"`
	Description string  `yaml:"description,omitempty"`
	Metavar     string  `yaml:"metavar,omitempty"`
	Default     *string `yaml:"default,omitempty"` // Raw value, converted like a snapshot value
	Optional    bool    `yaml:"optional,omitempty"`
	Secret      bool    `yaml:"secret,omitempty"`
	Validate    string  `yaml:"validate,omitempty"`

	// Enum
	Values []string `yaml:"values,omitempty" validate:"required_if=Type enum,dive,required"`

	// Object
	Fields Fields `yaml:"fields,omitempty" validate:"dive"`

	// Union
	Options       Options `yaml:"options,omitempty" validate:"required_if=Type union,dive"`
	DefaultOption string  `yaml:"defaultOption,omitempty"`
	Tag           string  `yaml:"tag,omitempty"`
}

// OptionSpec is one variant of a union.
type OptionSpec struct {
	Name        string `yaml:"-" validate:"required"`
	Description string `yaml:"description,omitempty"`
	Fields      Fields `yaml:"fields,omitempty" validate:"dive"`
}

// Fields keeps the document order of a YAML mapping of field specs.
type Fields []FieldSpec

// Options keeps the document order of a YAML mapping of union variants.
type Options []OptionSpec

// Path returns the file the manifest was loaded from, if any.
func (m *Manifest) Path() string {
	return m.path
}

// UnmarshalYAML decodes a mapping of name → FieldSpec, preserving order.
func (f *Fields) UnmarshalYAML(value *yaml.Node) error {
	var out Fields
	err := decodeOrderedMapping(value, func(name string, node *yaml.Node) error {
		var spec FieldSpec
		if err := node.Decode(&spec); err != nil {
			return err
		}
		spec.Name = name
		out = append(out, spec)
		return nil
	})
	if err != nil {
		return err
	}
	*f = out
	return nil
}

// UnmarshalYAML decodes a mapping of name → OptionSpec, preserving order.
func (o *Options) UnmarshalYAML(value *yaml.Node) error {
	var out Options
	err := decodeOrderedMapping(value, func(name string, node *yaml.Node) error {
		var spec OptionSpec
		if node.Kind != yaml.ScalarNode || node.Tag != "!!null" {
			if err := node.Decode(&spec); err != nil {
				return err
			}
		}
		spec.Name = name
		out = append(out, spec)
		return nil
	})
	if err != nil {
		return err
	}
	*o = out
	return nil
}

// decodeOrderedMapping calls fn for each key/value pair of a mapping node in
// document order, rejecting duplicate keys.
func decodeOrderedMapping(value *yaml.Node, fn func(name string, node *yaml.Node) error) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", value.Line)
	}

	seen := make(map[string]bool)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valueNode := value.Content[i], value.Content[i+1]
		name := keyNode.Value
		if seen[name] {
			return fmt.Errorf("line %d: duplicate key %q", keyNode.Line, name)
		}
		seen[name] = true

		if err := fn(name, valueNode); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
