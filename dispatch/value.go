package dispatch

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Value is a converted argument: a tagged variant holding exactly one of
// bool, int, float, string, duration, enum member or array items, or null.
type Value struct {
	typ   Type
	null  bool
	b     bool
	i     int64
	f     float64
	s     string
	d     time.Duration
	m     EnumMember
	items []Value
}

// StringValue wraps s
func StringValue(s string) Value { return Value{typ: String, s: s} }

// BoolValue wraps b
func BoolValue(b bool) Value { return Value{typ: Bool, b: b} }

// IntValue wraps i
func IntValue(i int64) Value { return Value{typ: Int, i: i} }

// FloatValue wraps f
func FloatValue(f float64) Value { return Value{typ: Float, f: f} }

// DurationValue wraps d
func DurationValue(d time.Duration) Value { return Value{typ: Duration, d: d} }

// EnumValue wraps a member of e
func EnumValue(e *Enum, m EnumMember) Value { return Value{typ: EnumOf(e), m: m} }

// ArrayValue wraps items of the given element type
func ArrayValue(elem Type, items ...Value) Value {
	return Value{typ: ArrayOf(elem), items: append([]Value(nil), items...)}
}

// Null returns the null value of type t
func Null(t Type) Value { return Value{typ: t, null: true} }

// Type returns the runtime type of v
func (v Value) Type() Type { return v.typ }

// IsNull reports whether v carries no value
func (v Value) IsNull() bool { return v.null }

// AsString returns the string payload
func (v Value) AsString() string { return v.s }

// AsBool returns the bool payload
func (v Value) AsBool() bool { return v.b }

// AsInt returns the int payload
func (v Value) AsInt() int64 { return v.i }

// AsFloat returns the float payload
func (v Value) AsFloat() float64 { return v.f }

// AsDuration returns the duration payload
func (v Value) AsDuration() time.Duration { return v.d }

// AsEnum returns the enum member payload
func (v Value) AsEnum() EnumMember { return v.m }

// Items returns the array payload
func (v Value) Items() []Value { return v.items }

// Interface unwraps v into a plain Go value: string, bool, int64, float64,
// time.Duration, EnumMember, []any, or nil for null values.
func (v Value) Interface() any {
	if v.null {
		return nil
	}
	switch v.typ.kind {
	case KindString:
		return v.s
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindDuration:
		return v.d
	case KindEnum:
		return v.m
	case KindArray:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	default:
		return nil
	}
}

// Equal reports whether v and other have the same type and payload.
func (v Value) Equal(other Value) bool {
	if !v.typ.Equal(other.typ) || v.null != other.null {
		return false
	}
	if v.null {
		return true
	}
	switch v.typ.kind {
	case KindString:
		return v.s == other.s
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindDuration:
		return v.d == other.d
	case KindEnum:
		return v.m == other.m
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders v the way it would be typed on the command line.
func (v Value) String() string {
	if v.null {
		return NullMarker
	}
	switch v.typ.kind {
	case KindString:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindDuration:
		return v.d.String()
	case KindEnum:
		return v.m.Token()
	case KindArray:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			parts[i] = item.String()
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}

// ValueOf converts a Go value into a Value of type t. It accepts the Go
// types matching t (int, int64, float64, string, bool, time.Duration,
// EnumMember, enum member name, slices) and string tokens, which go through
// Convert.
func ValueOf(t Type, raw any) (Value, error) {
	if raw == nil {
		return Null(t), nil
	}
	if v, ok := raw.(Value); ok {
		if !v.typ.Equal(t) {
			return Value{}, fmt.Errorf("value of type %s is not assignable to %s", v.typ, t)
		}
		return v, nil
	}

	switch t.kind {
	case KindString:
		if s, ok := raw.(string); ok {
			return StringValue(s), nil
		}
	case KindBool:
		if b, ok := raw.(bool); ok {
			return BoolValue(b), nil
		}
	case KindInt:
		switch n := raw.(type) {
		case int:
			return IntValue(int64(n)), nil
		case int32:
			return IntValue(int64(n)), nil
		case int64:
			return IntValue(n), nil
		}
	case KindFloat:
		switch n := raw.(type) {
		case float64:
			return FloatValue(n), nil
		case float32:
			return FloatValue(float64(n)), nil
		case int:
			return FloatValue(float64(n)), nil
		}
	case KindDuration:
		if d, ok := raw.(time.Duration); ok {
			return DurationValue(d), nil
		}
	case KindEnum:
		switch m := raw.(type) {
		case EnumMember:
			return EnumValue(t.enum, m), nil
		case string:
			if member, ok := t.enum.ByName(m); ok {
				return EnumValue(t.enum, member), nil
			}
		}
	case KindArray:
		return arrayValueOf(t, raw)
	}

	if s, ok := raw.(string); ok {
		return Convert(s, t)
	}
	return Value{}, fmt.Errorf("%T is not assignable to %s", raw, t)
}

func arrayValueOf(t Type, raw any) (Value, error) {
	var elems []any
	switch s := raw.(type) {
	case []string:
		for _, e := range s {
			elems = append(elems, e)
		}
	case []int:
		for _, e := range s {
			elems = append(elems, e)
		}
	case []int64:
		for _, e := range s {
			elems = append(elems, e)
		}
	case []float64:
		for _, e := range s {
			elems = append(elems, e)
		}
	case []bool:
		for _, e := range s {
			elems = append(elems, e)
		}
	case []any:
		elems = s
	default:
		return Value{}, fmt.Errorf("%T is not assignable to %s", raw, t)
	}

	items := make([]Value, 0, len(elems))
	for _, e := range elems {
		item, err := ValueOf(t.Elem(), e)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
	return ArrayValue(t.Elem(), items...), nil
}
