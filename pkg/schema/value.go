package schema

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindFloat:
		return "number"
	case KindBool:
		return "boolean"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a single configuration value. It always holds exactly one of a
// string, an int64, a float64 or a bool; Kind reports which. The zero Value is
// the empty string.
type Value struct {
	kind Kind
	str  string
	i    int64
	f    float64
	b    bool
}

func StringValue(s string) Value { return Value{kind: KindString, str: s} }
func IntValue(i int64) Value     { return Value{kind: KindInt, i: i} }
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }
func BoolValue(b bool) Value     { return Value{kind: KindBool, b: b} }

func (v Value) Kind() Kind { return v.kind }

// String returns the held string, or the textual form of any other variant.
// The textual form is what a form control displays for the value.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.str
	}
}

// Int returns the integer and whether the value holds one.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInt }

// Float returns the float and whether the value holds one.
func (v Value) Float() (float64, bool) { return v.f, v.kind == KindFloat }

// Bool returns the boolean and whether the value holds one.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Str returns the string and whether the value holds one.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Interface returns the held value as a plain Go value.
func (v Value) Interface() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	default:
		return v.str
	}
}

// Equal reports whether both values hold the same variant and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f || (math.IsNaN(v.f) && math.IsNaN(other.f))
	case KindBool:
		return v.b == other.b
	default:
		return v.str == other.str
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return nil, fmt.Errorf("schema: cannot encode non-finite number %v", v.f)
		}
		return []byte(formatFloat(v.f)), nil
	case KindBool:
		return []byte(strconv.FormatBool(v.b)), nil
	default:
		return json.Marshal(v.str)
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	value, ok := ValueOf(raw)
	if !ok {
		return fmt.Errorf("schema: unsupported value %s", string(data))
	}
	*v = value
	return nil
}

// ValueOf wraps a decoded JSON or YAML scalar. json.Number becomes an integer
// when it has no fractional part or exponent, a float otherwise. Nil, slices
// and maps are not representable.
func ValueOf(raw any) (Value, bool) {
	switch v := raw.(type) {
	case Value:
		return v, true
	case string:
		return StringValue(v), true
	case bool:
		return BoolValue(v), true
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return IntValue(i), true
		}
		f, err := v.Float64()
		if err != nil {
			return Value{}, false
		}
		return FloatValue(f), true
	case int:
		return IntValue(int64(v)), true
	case int32:
		return IntValue(int64(v)), true
	case int64:
		return IntValue(v), true
	case uint64:
		if v > math.MaxInt64 {
			return FloatValue(float64(v)), true
		}
		return IntValue(int64(v)), true
	case float32:
		return FloatValue(float64(v)), true
	case float64:
		return FloatValue(v), true
	default:
		return Value{}, false
	}
}

// formatFloat renders floats the way JSON documents conventionally show them:
// integral values keep a trailing ".0" so they stay distinguishable from
// integers.
func formatFloat(f float64) string {
	out := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(out, ".eEnN") {
		out += ".0"
	}
	return out
}

// Values maps property names to typed configuration values.
type Values map[string]Value

// Keys returns the property names in sorted order.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for key := range v {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Map returns the values as plain Go values.
func (v Values) Map() map[string]any {
	out := make(map[string]any, len(v))
	for key, value := range v {
		out[key] = value.Interface()
	}
	return out
}

// MarshalIndent renders the values as a two-space indented JSON object.
func (v Values) MarshalIndent() ([]byte, error) {
	if v == nil {
		v = Values{}
	}
	return json.MarshalIndent(map[string]Value(v), "", "  ")
}
