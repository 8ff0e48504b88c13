package features

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Kind identifies one of the four scalar kinds a feature value may hold.
type Kind uint8

const (
	// KindInvalid guards against zero-value misuse so call sites can detect
	// unclassified values.
	KindInvalid Kind = iota
	KindString
	KindBool
	KindInt
	KindDouble
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	default:
		return "invalid"
	}
}

// Value is a tagged variant over the supported feature scalar kinds. The zero
// Value has KindInvalid and matches no typed request.
type Value struct {
	kind Kind
	str  string
	b    bool
	i    int64
	f    float64
}

// String constructs a string Value.
func String(v string) Value { return Value{kind: KindString, str: v} }

// Bool constructs a boolean Value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Int constructs an integer Value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Double constructs a floating-point Value.
func Double(v float64) Value { return Value{kind: KindDouble, f: v} }

// Kind reports the kind tag of the value.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether the value holds one of the four supported kinds.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// AsString returns the string payload. The boolean reports an exact kind match.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsBool returns the boolean payload. The boolean reports an exact kind match.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the integer payload. The boolean reports an exact kind match.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsDouble returns the floating-point payload. The boolean reports an exact
// kind match.
func (v Value) AsDouble() (float64, bool) { return v.f, v.kind == KindDouble }

// Interface returns the payload as a plain Go value (string, bool, int64 or
// float64), or nil when the value is invalid.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindDouble:
		return v.f
	default:
		return nil
	}
}

// GoString renders the value for diagnostics.
func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		return fmt.Sprintf("features.String(%q)", v.str)
	case KindBool:
		return fmt.Sprintf("features.Bool(%t)", v.b)
	case KindInt:
		return fmt.Sprintf("features.Int(%d)", v.i)
	case KindDouble:
		return fmt.Sprintf("features.Double(%g)", v.f)
	default:
		return "features.Value{}"
	}
}

// FromJSONNumber classifies a json.Number literal using the fixed rule: the
// literal is an integer iff it contains none of '.', 'e' or 'E'; otherwise it
// is a double. A bare `0` is an Int, `0.0` is a Double.
func FromJSONNumber(n json.Number) (Value, bool) {
	literal := n.String()
	if strings.ContainsAny(literal, ".eE") {
		f, err := n.Float64()
		if err != nil {
			return Value{}, false
		}
		return Double(f), true
	}
	i, err := n.Int64()
	if err != nil {
		return Value{}, false
	}
	return Int(i), true
}

// ValueOf classifies an arbitrary runtime value into a tagged Value. Probing
// order is fixed: bool, string, integer widths, floats, json.Number (via
// FromJSONNumber), Value itself. Anything else is not representable and
// returns ok=false, including unsigned values above math.MaxInt64. There is
// no cross-kind coercion: "true" stays a string, float64(1) stays a double.
func ValueOf(value any) (Value, bool) {
	switch v := value.(type) {
	case Value:
		return v, v.IsValid()
	case bool:
		return Bool(v), true
	case string:
		return String(v), true
	case int:
		return Int(int64(v)), true
	case int8:
		return Int(int64(v)), true
	case int16:
		return Int(int64(v)), true
	case int32:
		return Int(int64(v)), true
	case int64:
		return Int(v), true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return Value{}, false
		}
		return Int(int64(v)), true
	case uint8:
		return Int(int64(v)), true
	case uint16:
		return Int(int64(v)), true
	case uint32:
		return Int(int64(v)), true
	case uint64:
		if v > math.MaxInt64 {
			return Value{}, false
		}
		return Int(int64(v)), true
	case float32:
		return Double(float64(v)), true
	case float64:
		return Double(v), true
	case json.Number:
		return FromJSONNumber(v)
	default:
		return Value{}, false
	}
}

// MarshalJSON renders the payload as the corresponding JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.IsValid() {
		return nil, fmt.Errorf("features: cannot marshal invalid value")
	}
	return json.Marshal(v.Interface())
}

// UnmarshalJSON decodes a JSON scalar applying the documented probing order.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("features: decode value: %w", err)
	}
	decoded, ok := ValueOf(raw)
	if !ok {
		return fmt.Errorf("features: unsupported value type %T", raw)
	}
	*v = decoded
	return nil
}
