// Package field implements bounded configuration values and the validation
// error taxonomy shared by every configuration section.
//
// A raw value is whatever an editing surface collected for a field: nil when
// the field was omitted, a Go number, or a decimal string. Checks are pure.
package field

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Int is an integer field with an inclusive range and a default
type Int struct {
	Name    string
	Min     int64
	Max     int64
	Default int64
}

// Check returns the value of raw when it is a whole number within [Min, Max].
// A nil raw value resolves to Default.
func (f Int) Check(raw interface{}) (int64, *Error) {
	if raw == nil {
		return f.Default, nil
	}

	if exceedsInt64(raw) {
		return f.Default, OutOfRange(f.Name, raw, f.Min, f.Max)
	}

	v, err := toInt64(raw)
	if err != nil {
		return f.Default, InvalidValue(f.Name, raw, err.Error())
	}
	if v < f.Min || v > f.Max {
		return f.Default, OutOfRange(f.Name, v, f.Min, f.Max)
	}
	return v, nil
}

// Contains reports whether v lies within the field's range
func (f Int) Contains(v int64) bool {
	return v >= f.Min && v <= f.Max
}

// exceedsInt64 reports unsigned values that cannot be represented as int64
func exceedsInt64(raw interface{}) bool {
	switch v := raw.(type) {
	case uint:
		return uint64(v) > math.MaxInt64
	case uint64:
		return v > math.MaxInt64
	case uintptr:
		return uint64(v) > math.MaxInt64
	}
	return false
}

func toInt64(raw interface{}) (int64, error) {
	switch v := raw.(type) {
	case bool:
		return 0, fmt.Errorf("expected a whole number, got boolean %v", v)
	case float32:
		return wholeFloat(float64(v))
	case float64:
		return wholeFloat(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, fmt.Errorf("expected a whole number, got empty text")
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("expected a whole number, got %q", v)
		}
		return n, nil
	}

	n, err := cast.ToInt64E(raw)
	if err != nil {
		return 0, fmt.Errorf("expected a whole number, got %T", raw)
	}
	return n, nil
}

func wholeFloat(v float64) (int64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, fmt.Errorf("expected a whole number, got %v", v)
	}
	if v < math.MinInt64 || v >= math.MaxInt64 {
		return 0, fmt.Errorf("value %v does not fit a 64-bit integer", v)
	}
	return int64(v), nil
}

// Bool is a two-valued field
type Bool struct {
	Name    string
	Default bool
}

var boolEnumeration = []string{"false", "true"}

// Check returns the boolean held by raw. Text is accepted in any form
// strconv.ParseBool understands; a nil raw value resolves to Default.
func (f Bool) Check(raw interface{}) (bool, *Error) {
	switch v := raw.(type) {
	case nil:
		return f.Default, nil
	case bool:
		return v, nil
	case string:
		b, err := cast.ToBoolE(strings.TrimSpace(v))
		if err == nil {
			return b, nil
		}
	}
	return f.Default, InvalidEnumeration(f.Name, raw, boolEnumeration)
}

// OneOf checks that value is a member of allowed
func OneOf[T comparable](name string, value T, allowed []T) *Error {
	for _, a := range allowed {
		if a == value {
			return nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = fmt.Sprint(a)
	}
	return InvalidEnumeration(name, value, names)
}
