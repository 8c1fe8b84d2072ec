package variable

import (
	"fmt"
	"math"
)

// Kind is the scalar type held by a Descriptor.
type Kind int

const (
	// KindBool holds a bool.
	KindBool Kind = iota
	// KindInt holds an int64.
	KindInt
	// KindFloat holds a float64.
	KindFloat
	// KindString holds a string.
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// KindOf infers the kind of v.
func KindOf(v any) (Kind, error) {
	switch v.(type) {
	case bool:
		return KindBool, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32:
		return KindInt, nil
	case float32, float64:
		return KindFloat, nil
	case string:
		return KindString, nil
	default:
		return 0, fmt.Errorf("unsupported value %v (%T): %w", v, v, ErrTypeMismatch)
	}
}

// Coerce converts v to the canonical Go type of k. Integers widen to float;
// every other cross-kind conversion fails with ErrTypeMismatch.
func (k Kind) Coerce(v any) (any, error) {
	switch k {
	case KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case KindInt:
		if i, ok := toInt64(v); ok {
			return i, nil
		}
	case KindFloat:
		switch t := v.(type) {
		case float64:
			return t, nil
		case float32:
			return float64(t), nil
		}
		if i, ok := toInt64(v); ok {
			return float64(i), nil
		}
	case KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("cannot use %v (%T) as %s: %w", v, v, k, ErrTypeMismatch)
}

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		if uint64(t) > math.MaxInt64 {
			return 0, false
		}
		return int64(t), true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	}
	return 0, false
}
