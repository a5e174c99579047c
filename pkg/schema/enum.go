package schema

import (
	"fmt"
	"slices"
	"strings"
)

// Enum returns a leaf accepting only one of values. Its help placeholder lists
// the alternatives separated by '|'.
func Enum(values ...string) Variable[string] {
	allowed := slices.Clone(values)
	return Var(func(raw string) (string, error) {
		if slices.Contains(allowed, raw) {
			return raw, nil
		}
		choices := fmt.Sprintf("it must be {%s}", joinNatural(allowed))
		return "", &valueError{msg: choices + ", but got " + raw, redacted: choices}
	}).Metavar(strings.Join(allowed, "|"))
}
