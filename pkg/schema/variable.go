package schema

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Redacted replaces the value of secret leaves in log lines.
const Redacted = "<redacted>"

type defaultMode int

const (
	noDefault defaultMode = iota
	valueDefault
	optionalDefault
)

// Variable is a leaf node resolving a single key to a value of type T.
//
// Variable is an immutable value: every modifier returns a modified copy, so a
// base leaf can be reused across many fields without aliasing.
type Variable[T any] struct {
	convert     func(string) (T, error)
	mode        defaultMode
	def         T
	secret      bool
	description string
	metavar     string
	env         string
	checks      []string
}

// Var returns a leaf converting its raw string with convert. An error returned
// by convert marks the value as invalid; its message is reported to the user.
func Var[T any](convert func(string) (T, error)) Variable[T] {
	return Variable[T]{convert: convert}
}

// Secret hides the value of the leaf from every log line.
func (v Variable[T]) Secret() Variable[T] {
	v.secret = true
	return v
}

// Default makes the leaf resolve to value when its key is absent.
func (v Variable[T]) Default(value T) Variable[T] {
	v.mode = valueDefault
	v.def = value
	return v
}

// Optional makes the leaf resolve to nil when its key is absent. Its help line
// is rendered commented out.
func (v Variable[T]) Optional() Variable[T] {
	var zero T
	v.mode = optionalDefault
	v.def = zero
	return v
}

// Description sets the comment shown above the leaf in help output.
func (v Variable[T]) Description(text string) Variable[T] {
	v.description = text
	return v
}

// Metavar sets the placeholder shown for the leaf in help output.
func (v Variable[T]) Metavar(text string) Variable[T] {
	v.metavar = text
	return v
}

// Env binds the leaf to an explicit key instead of the field name it is
// mounted under.
func (v Variable[T]) Env(name string) Variable[T] {
	v.env = name
	return v
}

// Validate adds a go-playground/validator tag (for example "min=1,max=65535")
// checked against the converted value. A failing check is reported like a
// conversion error. An unknown tag panics on first use.
func (v Variable[T]) Validate(tag string) Variable[T] {
	v.checks = append(slices.Clip(v.checks), tag)
	return v
}

// IsSecret reports whether the leaf is secret.
func (v Variable[T]) IsSecret() bool { return v.secret }

// Map post-processes the converted value of v with f. An error returned by f
// is reported as a conversion failure.
//
// Defaults are never passed through f: a default configured on v is dropped,
// and a default for the mapped leaf must be set after Map, in type U.
func Map[T, U any](v Variable[T], f func(T) (U, error)) Variable[U] {
	inner := v.parse
	return Variable[U]{
		convert: func(raw string) (U, error) {
			t, err := inner(raw)
			if err != nil {
				var zero U
				return zero, err
			}
			return f(t)
		},
		secret:      v.secret,
		description: v.description,
		metavar:     v.metavar,
		env:         v.env,
	}
}

// Convert runs the leaf's conversion and checks on raw without touching any
// snapshot or logger.
func (v Variable[T]) Convert(raw string) (T, error) {
	return v.parse(raw)
}

// parse converts raw and applies the configured checks.
func (v Variable[T]) parse(raw string) (T, error) {
	value, err := v.convert(raw)
	if err != nil {
		return value, err
	}
	for _, tag := range v.checks {
		if err := checkValue(value, tag); err != nil {
			var zero T
			return zero, err
		}
	}
	return value, nil
}

func (v Variable[T]) key(fallback string) string {
	if v.env != "" {
		return v.env
	}
	return fallback
}

// Resolve looks up the leaf's key in ctx, converts it and logs the outcome.
func (v Variable[T]) Resolve(ctx *Context, fallbackKey string) Result[any] {
	key := v.key(fallbackKey)
	log := ctx.Logger()

	raw, ok := ctx.lookup(key)
	if !ok {
		switch v.mode {
		case valueDefault:
			log.Info(fmt.Sprintf("%s=%s (default)", key, v.display(fmt.Sprint(v.def))))
			return Success[any](v.def)
		case optionalDefault:
			log.Info(fmt.Sprintf("%s is not set (optional)", key))
			return Success[any](nil)
		default:
			log.Error(fmt.Sprintf("%s is missing", key))
			return Missing[any]()
		}
	}

	value, err := v.parse(raw)
	if err != nil {
		if v.secret {
			// Messages may quote the converted or mapped value, not only raw.
			msg := RedactedMessage(err)
			log.Error(fmt.Sprintf("%s=%s ERROR: %s", key, Redacted, msg))
			return Failure[any](&InvalidValueError{Key: key, Err: errors.New(msg)})
		}
		log.Error(fmt.Sprintf("%s=%s ERROR: %s", key, raw, err.Error()))
		return Failure[any](&InvalidValueError{Key: key, Value: raw, Err: err})
	}

	log.Info(fmt.Sprintf("%s=%s", key, v.display(raw)))
	return Success[any](value)
}

func (v Variable[T]) display(s string) string {
	if v.secret {
		return Redacted
	}
	return s
}

// Describe renders the leaf as a dotenv line, preceded by its description.
func (v Variable[T]) Describe(key string) string {
	key = v.key(key)

	placeholder := v.metavar
	if placeholder == "" && v.mode == valueDefault && !v.secret {
		placeholder = fmt.Sprint(v.def)
	}

	var b strings.Builder
	if v.description != "" {
		b.WriteString(commentLines(v.description))
		b.WriteString("\n")
	}
	line := key + "=" + placeholder
	if v.mode == optionalDefault {
		line = "# " + line
	}
	b.WriteString(line)
	return b.String()
}
