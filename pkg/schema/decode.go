package schema

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Decode copies parsed values into out, a pointer to a struct. Struct fields
// are matched by their `env` tag, falling back to a case-insensitive match on
// the field name.
func Decode(values Values, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "env",
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(values); err != nil {
		return fmt.Errorf("failed to decode parsed values: %w", err)
	}
	return nil
}

// ParseInto parses snapshot with o and decodes the result into a new T.
func ParseInto[T any](o Object, snapshot Snapshot, opts ...ParseOption) (*T, error) {
	values, err := o.Parse(snapshot, opts...)
	if err != nil {
		return nil, err
	}
	var out T
	if err := Decode(values, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
