package config

import (
	"fmt"

	"github.com/nauticalab/envschema/pkg/schema"
)

// Build turns a validated manifest into a schema tree. Defaults are
// converted with the same conversion the field applies to snapshot values,
// so an unparsable default is reported here rather than at parse time.
func (m *Manifest) Build() (schema.Object, error) {
	root, err := buildObject("fields", m.Fields)
	if err != nil {
		return schema.Object{}, err
	}

	if m.Description != "" {
		root = root.Description(m.Description)
	}
	if len(m.AssumePrefix) > 0 {
		root = root.AssumePrefix(m.AssumePrefix...)
	}
	if len(m.IgnoreUnused) > 0 {
		root = root.IgnoreUnused(m.IgnoreUnused...)
	}
	if m.Unused == UnusedReject {
		root = root.RejectUnused()
	}
	return root, nil
}

func buildObject(path string, fields Fields) (schema.Object, error) {
	object := schema.NewObject()
	for _, spec := range fields {
		node, err := buildNode(path+"."+spec.Name, spec)
		if err != nil {
			return schema.Object{}, err
		}
		object = object.Field(spec.Name, node)
	}
	return object, nil
}

func buildNode(path string, spec FieldSpec) (schema.Node, error) {
	switch spec.Type {
	case TypeString:
		return buildLeaf(path, schema.String(), spec)
	case TypeNumber:
		return buildLeaf(path, schema.Number(), spec)
	case TypeInteger:
		return buildLeaf(path, schema.Integer(), spec)
	case TypeBoolean:
		return buildLeaf(path, schema.Boolean(), spec)
	case TypeDuration:
		return buildLeaf(path, schema.Duration(), spec)
	case TypeEnum:
		return buildLeaf(path, schema.Enum(spec.Values...), spec)

	case TypeObject:
		object, err := buildObject(path+".fields", spec.Fields)
		if err != nil {
			return nil, err
		}
		if spec.Description != "" {
			object = object.Description(spec.Description)
		}
		return object, nil

	case TypeUnion:
		return buildUnion(path, spec)

	default:
		return nil, fmt.Errorf("'%s' has unknown type %q", path, spec.Type)
	}
}

func buildLeaf[T any](path string, v schema.Variable[T], spec FieldSpec) (schema.Node, error) {
	if spec.Env != "" {
		v = v.Env(spec.Env)
	}
	if spec.Description != "" {
		v = v.Description(spec.Description)
	}
	if spec.Metavar != "" {
		v = v.Metavar(spec.Metavar)
	}
	if spec.Secret {
		v = v.Secret()
	}
	if spec.Validate != "" {
		v = v.Validate(spec.Validate)
	}

	switch {
	case spec.Optional:
		v = v.Optional()
	case spec.Default != nil:
		value, err := v.Convert(*spec.Default)
		if err != nil {
			if spec.Secret {
				return nil, fmt.Errorf("'%s' has an invalid default: %s", path, schema.RedactedMessage(err))
			}
			return nil, fmt.Errorf("'%s' has an invalid default %q: %w", path, *spec.Default, err)
		}
		v = v.Default(value)
	}
	return v, nil
}

func buildUnion(path string, spec FieldSpec) (schema.Node, error) {
	union := schema.NewUnion()
	for _, option := range spec.Options {
		object, err := buildObject(path+".options."+option.Name+".fields", option.Fields)
		if err != nil {
			return nil, err
		}
		if option.Description != "" {
			object = object.Description(option.Description)
		}
		union = union.Option(option.Name, object)
	}

	if spec.DefaultOption != "" {
		union = union.Default(spec.DefaultOption)
	}
	if spec.Env != "" {
		union = union.Env(spec.Env)
	}
	if spec.Tag != "" {
		union = union.Tag(spec.Tag)
	}
	if spec.Description != "" {
		union = union.Description(spec.Description)
	}
	return union, nil
}

// LoadSchema loads the manifest at path and builds its schema tree.
func LoadSchema(path string) (*Manifest, schema.Object, error) {
	manifest, err := LoadManifest(path)
	if err != nil {
		return nil, schema.Object{}, err
	}
	root, err := manifest.Build()
	if err != nil {
		return nil, schema.Object{}, fmt.Errorf("invalid schema manifest %s: %w", path, err)
	}
	return manifest, root, nil
}
