package config

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Package-level validator used by ValidateManifest.
var validate *validator.Validate

// tagProbe mirrors the validator leaves run their checks with, which knows
// none of the manifest-only tags.
var tagProbe = validator.New(validator.WithRequiredStructEnabled())

// envKeyRegex matches a portable environment variable name.
var envKeyRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	if err := validate.RegisterValidation("env_key", validateEnvKey); err != nil {
		panic(fmt.Errorf("register validator env_key: %w", err))
	}
}

// validateEnvKey implements the "env_key" tag.
func validateEnvKey(fl validator.FieldLevel) bool {
	return envKeyRegex.MatchString(fl.Field().String())
}

// ValidateManifest runs tag-based validation and then the structural checks
// that depend on a field's type.
func ValidateManifest(manifest *Manifest) error {
	if err := validate.Struct(manifest); err != nil {
		return formatValidationError(err)
	}

	var problems []string
	checkFields("fields", manifest.Fields, &problems)
	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s",
			strings.Join(problems, "\n  - "))
	}
	return nil
}

func checkFields(path string, fields Fields, problems *[]string) {
	for _, spec := range fields {
		checkField(path+"."+spec.Name, spec, problems)
	}
}

func checkField(path string, spec FieldSpec, problems *[]string) {
	report := func(format string, args ...any) {
		*problems = append(*problems, fmt.Sprintf("'%s' ", path)+fmt.Sprintf(format, args...))
	}

	leaf := spec.Type != TypeObject && spec.Type != TypeUnion

	if len(spec.Values) > 0 && spec.Type != TypeEnum {
		report("only enum fields accept 'values'")
	}
	if len(spec.Fields) > 0 && spec.Type != TypeObject {
		report("only object fields accept 'fields'")
	}
	if len(spec.Options) > 0 && spec.Type != TypeUnion {
		report("only union fields accept 'options'")
	}
	if spec.DefaultOption != "" && spec.Type != TypeUnion {
		report("only union fields accept 'defaultOption'")
	}
	if spec.Tag != "" && spec.Type != TypeUnion {
		report("only union fields accept 'tag'")
	}

	if !leaf {
		if spec.Default != nil || spec.Optional || spec.Secret || spec.Validate != "" || spec.Metavar != "" {
			report("%s fields accept none of 'default', 'optional', 'secret', 'validate' or 'metavar'", spec.Type)
		}
	}
	if spec.Type == TypeObject && spec.Env != "" {
		report("object fields have no key of their own, remove 'env'")
	}
	if spec.Default != nil && spec.Optional {
		report("'default' and 'optional' are mutually exclusive")
	}
	if spec.Validate != "" {
		if err := checkValidateTag(spec.Type, spec.Validate); err != nil {
			report("has an invalid 'validate' tag %q: %v", spec.Validate, err)
		}
	}

	switch spec.Type {
	case TypeEnum:
		if dup := firstDuplicate(spec.Values); dup != "" {
			report("lists enum value %q twice", dup)
		}
	case TypeObject:
		if len(spec.Fields) == 0 {
			report("object fields need at least one entry in 'fields'")
		}
		checkFields(path+".fields", spec.Fields, problems)
	case TypeUnion:
		names := make([]string, 0, len(spec.Options))
		for _, option := range spec.Options {
			names = append(names, option.Name)
			for _, field := range option.Fields {
				if spec.Tag != "" && field.Name == spec.Tag {
					report("option %q has a field named like the tag %q", option.Name, spec.Tag)
				}
			}
			checkFields(path+".options."+option.Name+".fields", option.Fields, problems)
		}
		if spec.DefaultOption != "" && !slices.Contains(names, spec.DefaultOption) {
			report("defaultOption %q is not one of the options (%s)", spec.DefaultOption, strings.Join(names, ", "))
		}
	}
}

// probeValues holds a zero value of the Go type each leaf type converts to.
var probeValues = map[string]any{
	TypeString:   "",
	TypeEnum:     "",
	TypeNumber:   float64(0),
	TypeInteger:  0,
	TypeBoolean:  false,
	TypeDuration: time.Duration(0),
}

// checkValidateTag reports tags the validator cannot run against values of
// the field's type. The validator panics on undefined tags and malformed
// parameters, so the probe recovers.
func checkValidateTag(fieldType, tag string) (err error) {
	probe, ok := probeValues[fieldType]
	if !ok {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	_ = tagProbe.Var(probe, tag)
	return nil
}

func firstDuplicate(values []string) string {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			return v
		}
		seen[v] = true
	}
	return ""
}

// formatValidationError renders go-playground/validator errors as concise, user-facing text.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	var errorMessages []string
	for _, fieldError := range validationErrors {
		errorMessages = append(errorMessages, formatFieldError(fieldError))
	}

	return fmt.Errorf("configuration validation failed:\n  - %s",
		strings.Join(errorMessages, "\n  - "))
}

// formatFieldError creates user-friendly error messages for field validation failures
func formatFieldError(fieldError validator.FieldError) string {
	fieldName := strings.TrimPrefix(fieldError.Namespace(), "Manifest.")
	tag := fieldError.Tag()
	param := fieldError.Param()
	value := fieldError.Value()

	switch tag {
	case "required":
		return fmt.Sprintf("'%s' is required", fieldName)
	case "required_if":
		return fmt.Sprintf("'%s' is required when %s", fieldName, strings.Replace(param, " ", " is ", 1))
	case "min":
		return fmt.Sprintf("'%s' must have at least %s entries", fieldName, param)
	case "oneof":
		return fmt.Sprintf("'%s' must be one of [%s], got '%v'", fieldName, param, value)
	case "env_key":
		return fmt.Sprintf("'%s' must be a valid environment variable name, got '%v'", fieldName, value)

	default:
		return fmt.Sprintf("'%s' failed validation '%s', got '%v'", fieldName, tag, value)
	}
}
