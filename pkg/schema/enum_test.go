package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnum(t *testing.T) {
	t.Run("member accepted", func(t *testing.T) {
		r, _, _ := resolveLeaf(Enum("debug", "info"), "LEVEL", Snapshot{"LEVEL": "info"})
		v, ok := r.Value()
		require.True(t, ok)
		assert.Equal(t, "info", v)
	})

	tests := []struct {
		name    string
		allowed []string
		want    string
	}{
		{"one", []string{"a"}, "it must be {a}, but got x"},
		{"two", []string{"a", "b"}, "it must be {a or b}, but got x"},
		{"three", []string{"a", "b", "c"}, "it must be {a, b, or c}, but got x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, logger, _ := resolveLeaf(Enum(tt.allowed...), "K", Snapshot{"K": "x"})
			require.True(t, r.IsError())

			var ive *InvalidValueError
			require.ErrorAs(t, r.Err(), &ive)
			assert.EqualError(t, ive.Err, tt.want)
			assert.Equal(t, "K=x ERROR: "+tt.want, logger.Texts()[0])
		})
	}

	t.Run("metavar lists alternatives", func(t *testing.T) {
		assert.Equal(t, "LEVEL=debug|info|warn", Enum("debug", "info", "warn").Describe("LEVEL"))
	})

	t.Run("caller slice is copied", func(t *testing.T) {
		values := []string{"a", "b"}
		e := Enum(values...)
		values[0] = "z"
		r, _, _ := resolveLeaf(e, "K", Snapshot{"K": "a"})
		assert.True(t, r.IsSuccess())
	})
}
