package dispatch

import (
	"fmt"
	"strings"
	"time"
)

// OptionInfo describes one parameter of a command. It is built once at
// registration time and must not be modified after the command is
// registered.
type OptionInfo struct {
	Name        string // kebab-case signature, matched as --name
	Type        Type
	Description string
	Index       int // declared position, matched by positional arguments

	Default    Value
	HasDefault bool
	Nullable   bool

	Short     string // matched as -short
	AntiName  string // matched as --anti-name, binds the negation
	AntiShort string // matched as -anti-short

	Implicit    Value // bound when the option is given without a value
	HasImplicit bool

	EnvVars   []string // consulted in order before the default
	Validator func(Value) error
	Hidden    bool
}

// NewOption creates an option; the name is converted to its signature.
func NewOption(name string, t Type) *OptionInfo {
	return &OptionInfo{Name: Signature(name), Type: t}
}

// Required reports whether the option must be supplied by the caller
func (o *OptionInfo) Required() bool {
	return !o.HasDefault && !o.Nullable && len(o.EnvVars) == 0
}

// Usage renders the option for help output: <name:type> when required,
// [name:type=default] otherwise.
func (o *OptionInfo) Usage() string {
	var b strings.Builder
	b.WriteString(o.Name)
	if o.Short != "" {
		b.WriteString("|-")
		b.WriteString(o.Short)
	}
	if o.AntiName != "" {
		b.WriteString("|no:")
		b.WriteString(o.AntiName)
	}
	b.WriteByte(':')
	b.WriteString(o.Type.String())

	if o.Required() {
		return "<" + b.String() + ">"
	}
	if o.HasDefault {
		b.WriteByte('=')
		b.WriteString(o.Default.String())
	}
	return "[" + b.String() + "]"
}

// names returns every spelling that addresses the option, for suggestions
func (o *OptionInfo) names() []string {
	names := []string{o.Name}
	if o.AntiName != "" {
		names = append(names, o.AntiName)
	}
	return names
}

// OptionBuilder configures an option of Go type T and returns to the
// command builder with Back.
type OptionBuilder[T any] struct {
	opt    *OptionInfo
	parent *CommandBuilder
}

func newOptionBuilder[T any](parent *CommandBuilder, name, description string, t Type) *OptionBuilder[T] {
	opt := NewOption(name, t)
	opt.Description = description
	opt.Index = len(parent.info.Options)
	parent.info.Options = append(parent.info.Options, opt)
	return &OptionBuilder[T]{opt: opt, parent: parent}
}

// Default sets the value bound when the option is not supplied
func (b *OptionBuilder[T]) Default(value T) *OptionBuilder[T] {
	v, err := ValueOf(b.opt.Type, any(value))
	if err != nil {
		b.parent.fail(fmt.Errorf("option %q default: %w", b.opt.Name, err))
		return b
	}
	b.opt.Default = v
	b.opt.HasDefault = true
	return b
}

// Implicit sets the value bound when the option is named without a value
func (b *OptionBuilder[T]) Implicit(value T) *OptionBuilder[T] {
	v, err := ValueOf(b.opt.Type, any(value))
	if err != nil {
		b.parent.fail(fmt.Errorf("option %q implicit value: %w", b.opt.Name, err))
		return b
	}
	b.opt.Implicit = v
	b.opt.HasImplicit = true
	return b
}

// Short sets the single-dash shorthand
func (b *OptionBuilder[T]) Short(short string) *OptionBuilder[T] {
	b.opt.Short = short
	return b
}

// Anti sets the anti-name that binds the negated value (bool options only)
func (b *OptionBuilder[T]) Anti(name string) *OptionBuilder[T] {
	b.opt.AntiName = Signature(name)
	return b
}

// AntiShort sets the single-dash form of the anti-name
func (b *OptionBuilder[T]) AntiShort(short string) *OptionBuilder[T] {
	b.opt.AntiShort = short
	return b
}

// Nullable lets the option bind a null value when not supplied
func (b *OptionBuilder[T]) Nullable() *OptionBuilder[T] {
	b.opt.Nullable = true
	return b
}

// Env binds the option to environment variables (checked in order)
func (b *OptionBuilder[T]) Env(vars ...string) *OptionBuilder[T] {
	b.opt.EnvVars = append(b.opt.EnvVars, vars...)
	return b
}

// Hidden hides the option from help output
func (b *OptionBuilder[T]) Hidden() *OptionBuilder[T] {
	b.opt.Hidden = true
	return b
}

// Validate adds a validation function run after conversion. Null values are
// not validated.
func (b *OptionBuilder[T]) Validate(fn func(T) error) *OptionBuilder[T] {
	b.opt.Validator = func(v Value) error {
		typed, ok := as[T](v)
		if !ok {
			return fmt.Errorf("value %s is not a %T", v, *new(T))
		}
		return fn(typed)
	}
	return b
}

// Info returns the option being built
func (b *OptionBuilder[T]) Info() *OptionInfo { return b.opt }

// Back returns to the command builder for continued chaining.
func (b *OptionBuilder[T]) Back() *CommandBuilder {
	return b.parent
}

// as converts a Value into the Go type used by option builders and Call
// accessors.
func as[T any](v Value) (T, bool) {
	var zero T
	var out any
	switch any(zero).(type) {
	case int:
		out = int(v.AsInt())
	case int64:
		out = v.AsInt()
	case string:
		out = v.AsString()
	case bool:
		out = v.AsBool()
	case float64:
		out = v.AsFloat()
	case time.Duration:
		out = v.AsDuration()
	case EnumMember:
		out = v.AsEnum()
	case []string:
		items := make([]string, len(v.Items()))
		for i, item := range v.Items() {
			items[i] = item.AsString()
		}
		out = items
	case []int:
		items := make([]int, len(v.Items()))
		for i, item := range v.Items() {
			items[i] = int(item.AsInt())
		}
		out = items
	case Value:
		out = v
	default:
		out = v.Interface()
	}
	typed, ok := out.(T)
	return typed, ok
}
