package validation

import (
	"time"

	"github.com/nauticalab/envschema/pkg/schema"
)

// Printable returns a copy of values suitable for YAML or JSON output:
// durations are rendered in their string form ("1m30s") instead of
// nanoseconds.
func Printable(values schema.Values) schema.Values {
	if values == nil {
		return nil
	}
	out := make(schema.Values, len(values))
	for k, v := range values {
		switch v := v.(type) {
		case time.Duration:
			out[k] = v.String()
		case schema.Values:
			out[k] = Printable(v)
		default:
			out[k] = v
		}
	}
	return out
}
