package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/nauticalab/envschema/internal/validation"
	"github.com/nauticalab/envschema/pkg/schema"
)

// Output formats accepted by --print.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// printValidationResult prints the validation results in a user-friendly format
func printValidationResult(w io.Writer, result *validation.ValidationResult, verbose bool) {
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "⚠️  Warning: %s\n", warning.Message)
	}

	for _, err := range result.Errors {
		switch err.Type {
		case validation.TypeMissing:
			fmt.Fprintf(w, "❌ Missing: %s\n", err.Field)
		case validation.TypeInvalid:
			fmt.Fprintf(w, "❌ Invalid Value: %s: %s\n", err.Key, err.Message)
		case validation.TypeInvalidVariant:
			fmt.Fprintf(w, "❌ Invalid Option: %s: %s\n", err.Key, err.Message)
		case validation.TypeUnused:
			fmt.Fprintf(w, "❌ Unused Variable: %s\n", err.Key)
		default:
			fmt.Fprintf(w, "❌ Error: %s\n", err.Message)
		}
		if verbose && err.Field != "" && err.Type != validation.TypeMissing {
			fmt.Fprintf(w, "   Field: %s\n", err.Field)
		}
	}

	// Print summary
	switch {
	case len(result.Errors) == 0 && len(result.Warnings) == 0:
		fmt.Fprintln(w, "✅ Environment is valid!")
	case result.IsValid:
		fmt.Fprintf(w, "✅ Environment is valid (%d warnings)\n", len(result.Warnings))
	default:
		fmt.Fprintf(w, "❌ Validation failed with %d errors and %d warnings\n", len(result.Errors), len(result.Warnings))
		printSuggestions(w, result)
	}
}

// printSuggestions prints one hint per kind of error present
func printSuggestions(w io.Writer, result *validation.ValidationResult) {
	seen := map[string]bool{}
	var hints []string
	for _, err := range result.Errors {
		if seen[err.Type] {
			continue
		}
		seen[err.Type] = true
		switch err.Type {
		case validation.TypeMissing:
			hints = append(hints, "Set the missing variables, or give them a default in the schema")
		case validation.TypeInvalid, validation.TypeInvalidVariant:
			hints = append(hints, "Run 'envschema describe' to see the accepted values")
		case validation.TypeUnused:
			hints = append(hints, "Remove unused variables, fix their spelling, or list them under ignoreUnused")
		}
	}
	if len(hints) == 0 {
		return
	}

	fmt.Fprintln(w, "\n💡 Suggestions:")
	for _, hint := range hints {
		fmt.Fprintf(w, "   • %s\n", hint)
	}
}

// printValues writes values in the requested format
func printValues(w io.Writer, values schema.Values, format string) error {
	values = validation.Printable(values)

	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(values); err != nil {
			return fmt.Errorf("failed to encode values as YAML: %w", err)
		}
		return encoder.Close()

	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(values); err != nil {
			return fmt.Errorf("failed to encode values as JSON: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unknown output format %q, expected %s or %s", format, FormatYAML, FormatJSON)
	}
}
