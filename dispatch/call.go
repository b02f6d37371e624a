package dispatch

import (
	"context"
	"time"
)

// Call is a bound invocation: one Value per option of the target command,
// in declaration order.
type Call struct {
	ctx     context.Context
	command *CommandInfo
	options []*OptionInfo
	values  []Value
}

// Context returns the context the invocation runs under
func (c *Call) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// Command returns the target command; nil for calls produced by Conform.
func (c *Call) Command() *CommandInfo { return c.command }

// Values returns the bound values in option order
func (c *Call) Values() []Value { return append([]Value(nil), c.values...) }

// Value returns the value bound to the i-th option
func (c *Call) Value(i int) Value { return c.values[i] }

// Len returns the number of bound values
func (c *Call) Len() int { return len(c.values) }

// Equal reports whether two calls bound the same values
func (c *Call) Equal(other *Call) bool {
	if len(c.values) != len(other.values) {
		return false
	}
	for i := range c.values {
		if !c.values[i].Equal(other.values[i]) {
			return false
		}
	}
	return true
}

// Get returns the value bound to the named option
func (c *Call) Get(name string) (Value, bool) {
	name = Signature(name)
	for i, opt := range c.options {
		if opt.Name == name {
			return c.values[i], true
		}
	}
	return Value{}, false
}

// IsNull reports whether the named option is unknown or bound to null
func (c *Call) IsNull(name string) bool {
	v, ok := c.Get(name)
	return !ok || v.IsNull()
}

// KeyValues returns the bound values keyed by option name in option order
func (c *Call) KeyValues() KeyValues {
	out := make(KeyValues, len(c.values))
	for i, opt := range c.options {
		out[i] = KeyValue{Key: opt.Name, Value: c.values[i]}
	}
	return out
}

func lookup[T any](c *Call, name string) T {
	var zero T
	v, ok := c.Get(name)
	if !ok || v.IsNull() {
		return zero
	}
	typed, _ := as[T](v)
	return typed
}

// String returns the named string option
func (c *Call) String(name string) string { return lookup[string](c, name) }

// Bool returns the named bool option
func (c *Call) Bool(name string) bool { return lookup[bool](c, name) }

// Int returns the named int option
func (c *Call) Int(name string) int { return lookup[int](c, name) }

// Float returns the named float option
func (c *Call) Float(name string) float64 { return lookup[float64](c, name) }

// Duration returns the named duration option
func (c *Call) Duration(name string) time.Duration { return lookup[time.Duration](c, name) }

// Enum returns the named enum option
func (c *Call) Enum(name string) EnumMember { return lookup[EnumMember](c, name) }

// Strings returns the named string array option
func (c *Call) Strings(name string) []string { return lookup[[]string](c, name) }

// Ints returns the named int array option
func (c *Call) Ints(name string) []int { return lookup[[]int](c, name) }
