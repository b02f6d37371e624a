package dispatch

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// NullMarker is the rendering of a null result or value.
const NullMarker = "null"

type voidType struct{}

func (voidType) String() string { return "" }

// Void is returned by Execute for commands that produce no result.
var Void any = voidType{}

// KeyValue is one entry of an ordered key/value result.
type KeyValue struct {
	Key   string
	Value any
}

// KeyValues is a key/value result rendered in insertion order.
type KeyValues []KeyValue

// Get returns the value stored under key
func (kv KeyValues) Get(key string) (any, bool) {
	for _, entry := range kv {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return nil, false
}

// Result wraps the outcome of an invocation.
type Result struct {
	value any
	void  bool
}

// NewResult wraps a command return value; Void yields a void result.
func NewResult(value any) *Result {
	if _, ok := value.(voidType); ok {
		return VoidResult()
	}
	return &Result{value: value}
}

// VoidResult returns a result carrying no value
func VoidResult() *Result { return &Result{void: true, value: Void} }

// IsVoid reports whether the command produced no result
func (r *Result) IsVoid() bool { return r == nil || r.void }

// Value returns the raw value; Void for void results.
func (r *Result) Value() any {
	if r.IsVoid() {
		return Void
	}
	return r.value
}

// Format renders the result as text. Void renders as an empty string.
func (r *Result) Format() (string, error) {
	if r.IsVoid() {
		return "", nil
	}
	return Format(r.value)
}

// Format renders v the way results are printed: nil as "null", maps as
// sorted key=value lines, KeyValues in order, other collections one element
// per line and everything else through fmt.
func Format(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return NullMarker, nil
	case voidType:
		return "", nil
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case Value:
		return formatValue(x)
	case KeyValues:
		return formatPairs(x)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return NullMarker, nil
		}
	case reflect.Map:
		if rv.IsNil() {
			return NullMarker, nil
		}
		return formatMap(rv)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return NullMarker, nil
		}
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return formatLines(items)
	}
	return scalar(v), nil
}

func formatValue(v Value) (string, error) {
	if v.IsNull() {
		return NullMarker, nil
	}
	if !v.Type().IsArray() {
		return v.String(), nil
	}
	items := make([]any, len(v.Items()))
	for i, item := range v.Items() {
		items[i] = item
	}
	return formatLines(items)
}

func formatMap(rv reflect.Value) (string, error) {
	pairs := make(KeyValues, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		pairs = append(pairs, KeyValue{Key: scalar(iter.Key().Interface()), Value: iter.Value().Interface()})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })
	return formatPairs(pairs)
}

func formatPairs(pairs KeyValues) (string, error) {
	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		value := scalar(p.Value)
		if strings.ContainsAny(p.Key, "=\n") {
			return "", NewError(ErrorTypeFormat, "key %q cannot be rendered as key=value", p.Key)
		}
		if strings.ContainsAny(value, "=\n") {
			return "", NewError(ErrorTypeFormat, "value %q of key %q cannot be rendered as key=value", value, p.Key)
		}
		lines = append(lines, p.Key+"="+value)
	}
	return strings.Join(lines, "\n"), nil
}

func formatLines(items []any) (string, error) {
	lines := make([]string, len(items))
	for i, item := range items {
		line := scalar(item)
		if strings.Contains(line, "\n") {
			return "", NewError(ErrorTypeFormat, "element %d spans multiple lines", i)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n"), nil
}

// scalar renders a single element; nil elements render as NullMarker.
func scalar(v any) string {
	switch x := v.(type) {
	case nil:
		return NullMarker
	case string:
		return x
	case Value:
		return x.String()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}
