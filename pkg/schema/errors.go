package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingVariable is reported for a key that is absent from the snapshot and
// has no default.
var ErrMissingVariable = errors.New("variable is missing")

// InvalidValueError is returned when a leaf's conversion rejects its raw value.
// Value is empty for secret leaves.
type InvalidValueError struct {
	Key   string
	Value string
	Err   error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s: %v", e.Key, e.Err)
}

func (e *InvalidValueError) Unwrap() error { return e.Err }

// InvalidVariantError is returned when a union selector names no configured
// option.
type InvalidVariantError struct {
	Key     string
	Got     string
	Options []string
}

func (e *InvalidVariantError) Error() string {
	return fmt.Sprintf("it must be {%s}, but got %s", joinVariants(e.Options), e.Got)
}

// AggregateError names every field of an object that failed to resolve.
type AggregateError struct {
	// Fields lists the failing field names in declaration order.
	Fields []string
	// Causes holds one *FieldError per entry in Fields.
	Causes []error
}

func (e *AggregateError) Error() string {
	return "Unable to fill the following fields: " + strings.Join(e.Fields, ", ")
}

func (e *AggregateError) Unwrap() []error { return e.Causes }

// UnusedVariablesError fails a parse that otherwise succeeded because the
// snapshot contains prefixed keys no leaf consumed.
type UnusedVariablesError struct {
	Keys []string
}

func (e *UnusedVariablesError) Error() string {
	return "Unused variables with an assumed prefix: " + strings.Join(e.Keys, ", ")
}

// FieldError attaches a field name to a cause recorded in an AggregateError.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }

func (e *FieldError) Unwrap() error { return e.Err }

// joinNatural joins items in prose: "a", "a or b", "a, b, or c".
func joinNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
	}
}

// joinVariants joins union option names, always separating the last one with
// ", or ".
func joinVariants(items []string) string {
	if len(items) < 2 {
		return strings.Join(items, "")
	}
	return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
}

// valueError is a conversion or check failure whose message may quote the
// input. redacted is the same message with the input left out.
type valueError struct {
	msg      string
	redacted string
}

func (e *valueError) Error() string { return e.msg }

// fixedError returns a valueError whose message never depends on the input.
func fixedError(msg string) error {
	return &valueError{msg: msg, redacted: msg}
}

// RedactedMessage returns a message for err that is safe to show for a
// secret value. Failures raised by the built-in conversions and checks keep
// their wording without the value; any other error becomes "invalid value".
func RedactedMessage(err error) string {
	var ve *valueError
	if errors.As(err, &ve) {
		return ve.redacted
	}
	return "invalid value"
}
