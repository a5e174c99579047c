package schema

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// String returns a leaf taking the raw value as is.
func String() Variable[string] {
	return Var(func(raw string) (string, error) { return raw, nil })
}

// Number returns a leaf parsing a floating point number.
func Number() Variable[float64] {
	return Var(parseNumber)
}

// Integer returns a leaf parsing a base 10 integer.
func Integer() Variable[int] {
	return Var(func(raw string) (int, error) {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return 0, fixedError("invalid integer")
		}
		return n, nil
	})
}

// Boolean returns a leaf accepting true/yes/on/1 and false/no/off/0, ignoring
// case.
func Boolean() Variable[bool] {
	return Var(parseBoolean)
}

// Duration returns a leaf parsing a Go duration such as "1m30s".
func Duration() Variable[time.Duration] {
	return Var(func(raw string) (time.Duration, error) {
		d, err := time.ParseDuration(strings.TrimSpace(raw))
		if err != nil {
			return 0, fixedError("invalid duration")
		}
		return d, nil
	})
}

func parseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fixedError("invalid number")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fixedError("invalid number")
	}
	return f, nil
}

func parseBoolean(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return false, fixedError("invalid boolean")
	}
}
