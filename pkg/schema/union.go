package schema

import (
	"fmt"
	"slices"
	"strings"
)

type variant struct {
	name   string
	object Object
}

// Union selects one of several Objects by the value of a selector key. The
// selected variant's fields are read from the same snapshot as plain keys.
//
// A Union with a discriminator (see Tag) is tagged: its result also records
// the selected variant name under the discriminator field.
type Union struct {
	options     []variant
	defaultName string
	env         string
	tag         string
	description string
}

// NewUnion returns a Union without options.
func NewUnion() Union {
	return Union{}
}

// Option returns a copy of u with a variant named name. Re-adding a name
// replaces that variant in place.
func (u Union) Option(name string, object Object) Union {
	options := slices.Clone(u.options)
	for i := range options {
		if options[i].name == name {
			options[i].object = object
			u.options = options
			return u
		}
	}
	u.options = append(options, variant{name: name, object: object})
	return u
}

// Default selects the variant name when the selector key is absent.
func (u Union) Default(name string) Union {
	u.defaultName = name
	return u
}

// Env binds the selector to an explicit key instead of the field name.
func (u Union) Env(name string) Union {
	u.env = name
	return u
}

// Tag makes u tagged: the selected variant name is merged into the result under
// the discriminator field.
func (u Union) Tag(discriminator string) Union {
	u.tag = discriminator
	return u
}

// Description sets the comment rendered above the variants in help output.
func (u Union) Description(text string) Union {
	u.description = text
	return u
}

// OptionNames returns the variant names in declaration order.
func (u Union) OptionNames() []string {
	names := make([]string, len(u.options))
	for i, o := range u.options {
		names[i] = o.name
	}
	return names
}

func (u Union) option(name string) (Object, bool) {
	for _, o := range u.options {
		if o.name == name {
			return o.object, true
		}
	}
	return Object{}, false
}

func (u Union) key(fallback string) string {
	if u.env != "" {
		return u.env
	}
	return fallback
}

// Resolve reads the selector, then resolves the selected variant against the
// same ctx.
func (u Union) Resolve(ctx *Context, fallbackKey string) Result[any] {
	key := u.key(fallbackKey)
	log := ctx.Logger()

	name, ok := ctx.lookup(key)
	defaulted := false
	if !ok {
		if u.defaultName == "" {
			log.Error(fmt.Sprintf("%s is missing", key))
			return Missing[any]()
		}
		name = u.defaultName
		defaulted = true
	}

	object, found := u.option(name)
	if !found {
		err := &InvalidVariantError{Key: key, Got: name, Options: u.OptionNames()}
		log.Error(fmt.Sprintf("%s=%s ERROR: %s", key, name, err.Error()))
		return Failure[any](err)
	}

	if defaulted {
		log.Info(fmt.Sprintf("%s=%s (default)", key, name))
	} else {
		log.Info(fmt.Sprintf("%s=%s", key, name))
	}

	result := object.resolveValues(ctx)
	if u.tag == "" {
		return mapResult(result, func(v Values) any { return v })
	}
	return mapResult(result, func(v Values) any {
		tagged := make(Values, len(v)+1)
		for k, val := range v {
			tagged[k] = val
		}
		tagged[u.tag] = name
		return tagged
	})
}

// Describe renders one block per variant, each starting with the selector
// line. Every variant but the default is commented out.
func (u Union) Describe(key string) string {
	key = u.key(key)

	blocks := make([]string, 0, len(u.options))
	for _, o := range u.options {
		block := key + "=" + o.name
		if d := o.object.Describe(key); d != "" {
			block += "\n" + d
		}
		if o.name != u.defaultName {
			block = commentOut(block)
		}
		blocks = append(blocks, block)
	}

	out := strings.Join(blocks, "\n\n")
	if u.description != "" {
		out = commentLines(u.description) + "\n" + out
	}
	return out
}
