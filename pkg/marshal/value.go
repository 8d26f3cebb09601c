package marshal

import (
	"fmt"
	"math"
)

// Value coercion helpers. Callers hand in whatever their application uses
// natively (int, float64 from config files, sized ints from sensors), so
// the numeric paths accept the full set of Go numeric types.

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// toUint64 coerces integer-valued inputs to uint64.
// Floats are rounded to the nearest integer; negative inputs are out of
// range rather than a type error.
func toUint64(v any) (uint64, error) {
	switch n := v.(type) {
	case uint:
		return uint64(n), nil
	case uint8:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case uint64:
		return n, nil
	case int:
		if n < 0 {
			return 0, fmt.Errorf("marshal: %w: %d", ErrValueOutOfRange, n)
		}
		return uint64(n), nil
	case int8:
		if n < 0 {
			return 0, fmt.Errorf("marshal: %w: %d", ErrValueOutOfRange, n)
		}
		return uint64(n), nil
	case int16:
		if n < 0 {
			return 0, fmt.Errorf("marshal: %w: %d", ErrValueOutOfRange, n)
		}
		return uint64(n), nil
	case int32:
		if n < 0 {
			return 0, fmt.Errorf("marshal: %w: %d", ErrValueOutOfRange, n)
		}
		return uint64(n), nil
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("marshal: %w: %d", ErrValueOutOfRange, n)
		}
		return uint64(n), nil
	case float32:
		return floatToUint64(float64(n))
	case float64:
		return floatToUint64(n)
	default:
		return 0, fmt.Errorf("marshal: %w: %T", ErrValueType, v)
	}
}

// toInt64 coerces integer-valued inputs to int64.
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return uintToInt64(uint64(n))
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return uintToInt64(n)
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	default:
		return 0, fmt.Errorf("marshal: %w: %T", ErrValueType, v)
	}
}

func floatToUint64(f float64) (uint64, error) {
	r := math.Round(f)
	if r < 0 || r >= math.MaxUint64 || math.IsNaN(r) {
		return 0, fmt.Errorf("marshal: %w: %v", ErrValueOutOfRange, f)
	}
	return uint64(r), nil
}

func floatToInt64(f float64) (int64, error) {
	r := math.Round(f)
	if r < math.MinInt64 || r >= math.MaxInt64 || math.IsNaN(r) {
		return 0, fmt.Errorf("marshal: %w: %v", ErrValueOutOfRange, f)
	}
	return int64(r), nil
}

func uintToInt64(u uint64) (int64, error) {
	if u > math.MaxInt64 {
		return 0, fmt.Errorf("marshal: %w: %d", ErrValueOutOfRange, u)
	}
	return int64(u), nil
}
