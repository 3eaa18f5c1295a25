package script

import (
	"errors"
	"fmt"
	"math"
)

// ErrArgument is returned for a missing or mistyped argument.
var ErrArgument = errors.New("bad argument")

// Args are the Go values a script passed to a host function.
type Args []any

func (a Args) get(i int) any {
	if i < 0 || i >= len(a) {
		return nil
	}
	return a[i]
}

func argError(i int, want string, got any) error {
	return fmt.Errorf("%w #%d: expected %s, got %s", ErrArgument, i+1, want, typeName(got))
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, int32, uint8:
		return "number"
	case map[string]any:
		return "table"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Any returns the i-th argument, nil when missing.
func (a Args) Any(i int) any {
	return a.get(i)
}

// String returns the i-th argument as a string.
func (a Args) String(i int) (string, error) {
	s, ok := a.get(i).(string)
	if !ok {
		return "", argError(i, "string", a.get(i))
	}
	return s, nil
}

// OptString returns the i-th argument, or def when it is missing or nil.
func (a Args) OptString(i int, def string) (string, error) {
	if a.get(i) == nil {
		return def, nil
	}
	return a.String(i)
}

// Number returns the i-th argument as a float64.
func (a Args) Number(i int) (float64, error) {
	switch v := a.get(i).(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	default:
		return 0, argError(i, "number", v)
	}
}

// OptNumber returns the i-th argument, or def when it is missing or nil.
func (a Args) OptNumber(i int, def float64) (float64, error) {
	if a.get(i) == nil {
		return def, nil
	}
	return a.Number(i)
}

// Int returns the i-th argument truncated toward zero.
func (a Args) Int(i int) (int, error) {
	n, err := a.Number(i)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, argError(i, "finite number", n)
	}
	return int(n), nil
}

// Bool returns the i-th argument as a boolean.
func (a Args) Bool(i int) (bool, error) {
	b, ok := a.get(i).(bool)
	if !ok {
		return false, argError(i, "boolean", a.get(i))
	}
	return b, nil
}
