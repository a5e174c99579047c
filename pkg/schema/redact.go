package schema

// secretive is implemented by leaves that can hide their value.
type secretive interface {
	IsSecret() bool
}

// Redact returns a copy of values, a result of parsing o, with the value of
// every secret leaf replaced by Redacted. Unset optional secrets stay nil.
func (o Object) Redact(values Values) Values {
	out := make(Values, len(values))
	for k, v := range values {
		out[k] = v
	}
	for _, f := range o.fields {
		v, ok := out[f.name]
		if !ok || v == nil {
			continue
		}
		out[f.name] = redactNode(f.node, v)
	}
	return out
}

func redactNode(node Node, value any) any {
	switch n := node.(type) {
	case secretive:
		if n.IsSecret() {
			return Redacted
		}
		return value
	case Object:
		if nested, ok := value.(Values); ok {
			return n.Redact(nested)
		}
	case Union:
		if nested, ok := value.(Values); ok {
			return n.redact(nested)
		}
	}
	return value
}

// redact hides the secrets of the selected variant. Without a discriminator
// the variant is unknown, so secrets of every variant are hidden.
func (u Union) redact(values Values) Values {
	if u.tag != "" {
		if name, ok := values[u.tag].(string); ok {
			if object, found := u.option(name); found {
				return object.Redact(values)
			}
		}
	}
	for _, o := range u.options {
		values = o.object.Redact(values)
	}
	return values
}
