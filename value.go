package mapjson

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Value is a JSON-representable tree. The set of implementations is closed:
// Null, Bool, Int, Double, String, Array and Map. Anything else that manages
// to satisfy the interface (a pointer to a variant, a struct embedding one)
// is rejected by the encoder with CodeIncompatibleType.
//
// Trees must be finite and acyclic; the encoder does not detect cycles.
type Value interface {
	isValue()
}

type (
	// Null is JSON null.
	Null struct{}
	// Bool is true or false.
	Bool bool
	// Int is a 64-bit signed integer, written as an exact decimal literal.
	Int int64
	// Double is an IEEE-754 double. NaN and infinities cannot be encoded.
	Double float64
	// String is UTF-8 text.
	String string
	// Array is an ordered sequence; order is always preserved on output.
	Array []Value
	// Map is a keyed mapping. Iteration order of a Go map is unspecified, so
	// output order is arbitrary unless EncodeOpt.OrderKeys is set.
	Map map[string]Value
)

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Int) isValue()    {}
func (Double) isValue() {}
func (String) isValue() {}
func (Array) isValue()  {}
func (Map) isValue()    {}

// FromAny converts a Go-native tree (as produced by encoding/json with
// UseNumber, or built by hand) into a Value. Supported leaves are nil, bool,
// signed and unsigned integers, floats, strings and json.Number; containers
// are []any, map[string]any, and their Value counterparts.
func FromAny(v any) (Value, error) {
	val, err := fromAny(v)
	if err != nil {
		return nil, rooted(err)
	}
	return val, nil
}

func fromAny(v any) (Value, error) {
	switch v := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case int:
		return Int(v), nil
	case int8:
		return Int(v), nil
	case int16:
		return Int(v), nil
	case int32:
		return Int(v), nil
	case int64:
		return Int(v), nil
	case uint:
		return fromUint(uint64(v)), nil
	case uint8:
		return Int(v), nil
	case uint16:
		return Int(v), nil
	case uint32:
		return Int(v), nil
	case uint64:
		return fromUint(v), nil
	case float32:
		return Double(v), nil
	case float64:
		return Double(v), nil
	case string:
		return String(v), nil
	case json.Number:
		return fromNumberText(string(v))
	case []any:
		arr := make(Array, len(v))
		for i, item := range v {
			iv, err := fromAny(item)
			if err != nil {
				return nil, atIndex(err, i)
			}
			arr[i] = iv
		}
		return arr, nil
	case map[string]any:
		m := make(Map, len(v))
		for k, item := range v {
			iv, err := fromAny(item)
			if err != nil {
				return nil, atField(err, k)
			}
			m[k] = iv
		}
		return m, nil
	}
	return nil, incompatible(v)
}

func fromUint(u uint64) Value {
	if u > math.MaxInt64 {
		return Double(u)
	}
	return Int(u)
}

func fromNumberText(s string) (Value, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, newEncodeError(CodeInvalidNumber, fmt.Errorf("number %q: %w", s, err))
	}
	return Double(f), nil
}

// ToAny converts a Value into plain Go values: nil, bool, int64, float64,
// string, []any and map[string]any. Values outside the closed set map to nil.
func ToAny(v Value) any {
	switch v := v.(type) {
	case Bool:
		return bool(v)
	case Int:
		return int64(v)
	case Double:
		return float64(v)
	case String:
		return string(v)
	case Array:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = ToAny(item)
		}
		return out
	case Map:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = ToAny(item)
		}
		return out
	}
	return nil
}
