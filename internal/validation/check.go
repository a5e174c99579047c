// Package validation checks environment snapshots against a schema and
// classifies every failure, so callers can render them or return them over
// the wire.
package validation

import (
	"errors"
	"fmt"

	"github.com/nauticalab/envschema/pkg/schema"
)

// Error types reported in ValidationError.Type.
const (
	TypeMissing        = "missing"
	TypeInvalid        = "invalid"
	TypeInvalidVariant = "invalid_variant"
	TypeUnused         = "unused"
)

// ValidationResult contains all validation results
type ValidationResult struct {
	// Errors is a list of fatal validation errors
	Errors []ValidationError `json:"errors"`
	// Warnings is a list of non-fatal validation warnings
	Warnings []ValidationWarning `json:"warnings"`
	// IsValid indicates if the validation passed (no errors)
	IsValid bool `json:"valid"`
	// Values holds the parsed configuration when IsValid is true
	Values schema.Values `json:"values,omitempty"`
	// Log holds every line the parse emitted, in order
	Log []schema.Line `json:"log"`
}

// ValidationError represents a validation failure
type ValidationError struct {
	// Type is the category of error (e.g., "missing", "invalid", "unused")
	Type string `json:"type"`
	// Field is the dotted path of the failing field, empty for unused keys
	Field string `json:"field,omitempty"`
	// Key is the environment key involved (if known)
	Key string `json:"key,omitempty"`
	// Message is a human-readable error description
	Message string `json:"message"`
}

// ValidationWarning represents a non-fatal validation issue
type ValidationWarning struct {
	// Type is the category of warning
	Type string `json:"type"`
	// Key is the environment key the warning is about
	Key string `json:"key"`
	// Message is a human-readable warning description
	Message string `json:"message"`
}

// Checker validates snapshots against a schema tree.
type Checker struct {
	root schema.Object
}

// NewChecker creates a checker for root.
func NewChecker(root schema.Object) *Checker {
	return &Checker{root: root}
}

// Check parses snapshot and classifies the outcome. Lines are recorded in the
// result and forwarded to each extra logger as they are emitted.
func (c *Checker) Check(snapshot schema.Snapshot, loggers ...schema.Logger) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationWarning{},
		IsValid:  true,
	}

	memory := &schema.MemoryLogger{}
	logger := teeLogger(append([]schema.Logger{memory}, loggers...))

	var unused []string
	parsed := c.root.SafeParse(snapshot,
		schema.WithLogger(logger),
		schema.OnUnused(func(keys []string) { unused = keys }),
	)
	result.Log = memory.Lines()
	if result.Log == nil {
		result.Log = []schema.Line{}
	}

	if values, ok := parsed.Value(); ok {
		result.Values = values
	} else {
		result.IsValid = false
		result.Errors = classify("", parsed.Err())
	}

	// Unused keys only warn in report mode; in reject mode they are errors
	// once every field resolved.
	if !c.root.Rejects() {
		for _, key := range unused {
			result.Warnings = append(result.Warnings, ValidationWarning{
				Type:    TypeUnused,
				Key:     key,
				Message: fmt.Sprintf("%s is set but not used by any variable", key),
			})
		}
	}

	return result
}

// classify flattens a parse error into one ValidationError per failing leaf.
func classify(path string, err error) []ValidationError {
	var (
		aggregate *schema.AggregateError
		unused    *schema.UnusedVariablesError
		invalid   *schema.InvalidValueError
		variant   *schema.InvalidVariantError
	)

	switch {
	case errors.As(err, &aggregate):
		var out []ValidationError
		for _, cause := range aggregate.Causes {
			var fieldErr *schema.FieldError
			if !errors.As(cause, &fieldErr) {
				out = append(out, ValidationError{Type: TypeInvalid, Field: path, Message: cause.Error()})
				continue
			}
			out = append(out, classify(joinPath(path, fieldErr.Field), fieldErr.Err)...)
		}
		return out

	case errors.As(err, &unused):
		out := make([]ValidationError, 0, len(unused.Keys))
		for _, key := range unused.Keys {
			out = append(out, ValidationError{
				Type:    TypeUnused,
				Key:     key,
				Message: fmt.Sprintf("%s is set but not used by any variable", key),
			})
		}
		return out

	case errors.As(err, &invalid):
		return []ValidationError{{
			Type:    TypeInvalid,
			Field:   path,
			Key:     invalid.Key,
			Message: invalid.Err.Error(),
		}}

	case errors.As(err, &variant):
		return []ValidationError{{
			Type:    TypeInvalidVariant,
			Field:   path,
			Key:     variant.Key,
			Message: variant.Error(),
		}}

	case errors.Is(err, schema.ErrMissingVariable):
		return []ValidationError{{
			Type:    TypeMissing,
			Field:   path,
			Message: fmt.Sprintf("%s is missing", path),
		}}

	default:
		return []ValidationError{{Type: TypeInvalid, Field: path, Message: err.Error()}}
	}
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// teeLogger forwards every line to each of its loggers.
type teeLogger []schema.Logger

func (t teeLogger) Info(msg string) {
	for _, l := range t {
		l.Info(msg)
	}
}

func (t teeLogger) Error(msg string) {
	for _, l := range t {
		l.Error(msg)
	}
}
