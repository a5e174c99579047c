package schema

import (
	"fmt"
	"slices"
	"strings"
)

// Node is implemented by every element of a schema tree.
type Node interface {
	// Resolve computes the node's value from ctx. fallbackKey is the field name
	// the node is mounted under; leaves use it unless they carry an explicit key.
	Resolve(ctx *Context, fallbackKey string) Result[any]
	// Describe renders the node's help text for the given key.
	Describe(key string) string
}

// Values is the parsed form of an Object: field name to scalar value, nested
// Values for nested objects and unions.
type Values = map[string]any

type field struct {
	name string
	node Node
}

type unusedMode int

const (
	unusedReport unusedMode = iota
	unusedReject
)

// Object is a composite node mapping ordered field names to child nodes.
// Fields are resolved and described in the order they were added.
type Object struct {
	fields      []field
	description string
	prefixes    []string
	ignored     []string
	unused      unusedMode
}

// NewObject returns an empty Object.
func NewObject() Object {
	return Object{}
}

// Field returns a copy of o with name bound to node. Adding an existing name
// replaces the node in place, keeping its position.
func (o Object) Field(name string, node Node) Object {
	fields := slices.Clone(o.fields)
	for i := range fields {
		if fields[i].name == name {
			fields[i].node = node
			o.fields = fields
			return o
		}
	}
	o.fields = append(fields, field{name: name, node: node})
	return o
}

// Description sets the comment rendered above the object's fields.
func (o Object) Description(text string) Object {
	o.description = text
	return o
}

// AssumePrefix declares that snapshot keys starting with any of prefixes are
// meant for this schema. Such keys left unused after a parse are reported.
func (o Object) AssumePrefix(prefixes ...string) Object {
	o.prefixes = append(slices.Clip(o.prefixes), prefixes...)
	return o
}

// IgnoreUnused excludes keys from unused-variable reporting.
func (o Object) IgnoreUnused(keys ...string) Object {
	o.ignored = append(slices.Clip(o.ignored), keys...)
	return o
}

// ReportUnused makes unused prefixed keys advisory: they are logged but do not
// fail the parse. This is the default.
func (o Object) ReportUnused() Object {
	o.unused = unusedReport
	return o
}

// RejectUnused makes unused prefixed keys fail an otherwise successful parse.
func (o Object) RejectUnused() Object {
	o.unused = unusedReject
	return o
}

// FieldNames returns the field names in declaration order.
func (o Object) FieldNames() []string {
	names := make([]string, len(o.fields))
	for i, f := range o.fields {
		names[i] = f.name
	}
	return names
}

// Resolve resolves every field, never stopping at the first failure, and
// combines the outcomes.
func (o Object) Resolve(ctx *Context, _ string) Result[any] {
	return mapResult(o.resolveValues(ctx), func(v Values) any { return v })
}

func (o Object) resolveValues(ctx *Context) Result[Values] {
	entries := make([]Entry[any], 0, len(o.fields))
	for _, f := range o.fields {
		entries = append(entries, Entry[any]{Name: f.name, Result: f.node.Resolve(ctx, f.name)})
	}
	return Combine(entries)
}

// ParseOption configures a single Parse or SafeParse call.
type ParseOption func(*parseConfig)

type parseConfig struct {
	logger   Logger
	onUnused func(keys []string)
}

// WithLogger sends the lines of the call to logger instead of the console.
func WithLogger(logger Logger) ParseOption {
	return func(c *parseConfig) {
		c.logger = logger
	}
}

// OnUnused registers fn to receive the unused prefixed keys found by the call,
// whether or not they fail it. fn is not called when there are none.
func OnUnused(fn func(keys []string)) ParseOption {
	return func(c *parseConfig) {
		c.onUnused = fn
	}
}

// SafeParse resolves o against snapshot and returns the outcome as a Result.
// It never returns an error value for invalid input: failures are carried by
// the Result.
func (o Object) SafeParse(snapshot Snapshot, opts ...ParseOption) Result[Values] {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = DefaultLogger()
	}

	ctx := NewContext(snapshot, cfg.logger)
	result := o.resolveValues(ctx)

	unused := ctx.Unused(o.prefixes, o.ignored)
	for _, key := range unused {
		msg := fmt.Sprintf("%s is set but not used by any variable", key)
		if o.unused == unusedReject {
			cfg.logger.Error(msg)
		} else {
			cfg.logger.Info(msg)
		}
	}
	if len(unused) > 0 && cfg.onUnused != nil {
		cfg.onUnused(unused)
	}
	if len(unused) > 0 && o.unused == unusedReject && result.IsSuccess() {
		return Failure[Values](&UnusedVariablesError{Keys: unused})
	}
	return result
}

// Parse resolves o against snapshot. On failure the error is an
// *AggregateError naming every field that could not be filled, or an
// *UnusedVariablesError in reject mode.
func (o Object) Parse(snapshot Snapshot, opts ...ParseOption) (Values, error) {
	result := o.SafeParse(snapshot, opts...)
	values, ok := result.Value()
	if !ok {
		return nil, result.Err()
	}
	return values, nil
}

// MustParse is like Parse but panics on failure.
func (o Object) MustParse(snapshot Snapshot, opts ...ParseOption) Values {
	values, err := o.Parse(snapshot, opts...)
	if err != nil {
		panic(err)
	}
	return values
}

// Rejects reports whether unused prefixed keys fail a parse of o.
func (o Object) Rejects() bool { return o.unused == unusedReject }

// Describe renders the object's description followed by every field.
func (o Object) Describe(_ string) string {
	parts := make([]string, 0, len(o.fields)+1)
	if o.description != "" {
		parts = append(parts, commentLines(o.description))
	}
	for _, f := range o.fields {
		if d := f.node.Describe(f.name); d != "" {
			parts = append(parts, d)
		}
	}
	return strings.Join(parts, "\n")
}

// Template returns the full dotenv-style help text of o.
func (o Object) Template() string {
	d := o.Describe("")
	if d == "" {
		return ""
	}
	return d + "\n"
}
