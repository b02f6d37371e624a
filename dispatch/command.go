package dispatch

import (
	"strings"
	"time"
)

// Action is the body of a command returning a result.
type Action func(call *Call) (any, error)

// VoidAction is the body of a command without a result.
type VoidAction func(call *Call) error

// CommandInfo is the registered description of a command. Ids may contain
// spaces ("remote add"); every word except the last names a group.
type CommandInfo struct {
	ID          string
	Aliases     []string
	Description string
	Options     []*OptionInfo
	Hidden      bool

	action Action
	void   bool
}

// NewCommand creates a command returning a result. Option indexes are
// assigned from their order.
func NewCommand(id, description string, action Action, options ...*OptionInfo) *CommandInfo {
	for i, opt := range options {
		opt.Index = i
	}
	return &CommandInfo{
		ID:          id,
		Description: description,
		Options:     options,
		action:      action,
	}
}

// NewVoidCommand creates a command that produces no result.
func NewVoidCommand(id, description string, action VoidAction, options ...*OptionInfo) *CommandInfo {
	info := NewCommand(id, description, nil, options...)
	info.setVoid(action)
	return info
}

func (c *CommandInfo) setVoid(action VoidAction) {
	c.void = true
	if action == nil {
		c.action = nil
		return
	}
	c.action = func(call *Call) (any, error) {
		return Void, action(call)
	}
}

// IsVoid reports whether the command produces no result
func (c *CommandInfo) IsVoid() bool { return c.void }

// Words splits the id into its group path and name
func (c *CommandInfo) Words() []string { return strings.Fields(c.ID) }

// Group returns the id of the enclosing group, "" for top-level commands
func (c *CommandInfo) Group() string {
	words := c.Words()
	if len(words) < 2 {
		return ""
	}
	return strings.Join(words[:len(words)-1], " ")
}

// IsGenericFlag reports whether the command takes no options and is
// therefore also reachable as --<id>.
func (c *CommandInfo) IsGenericFlag() bool { return len(c.Options) == 0 }

// FlagAlias returns the synthesized --<id> alias of a zero-option command
func (c *CommandInfo) FlagAlias() string {
	return "--" + strings.Join(c.Words(), "-")
}

// Option returns the option with the given name
func (c *CommandInfo) Option(name string) *OptionInfo {
	for _, opt := range c.Options {
		if opt.Name == name {
			return opt
		}
	}
	return nil
}

// Usage renders the single help line of the command:
// id (aliases) <name:type> [name:type=default] - description
func (c *CommandInfo) Usage() string {
	var b strings.Builder
	b.WriteString(c.ID)
	if len(c.Aliases) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(c.Aliases, ", "))
		b.WriteByte(')')
	}
	for _, opt := range c.Options {
		if opt.Hidden {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(opt.Usage())
	}
	if c.Description != "" {
		b.WriteString(" - ")
		b.WriteString(c.Description)
	}
	return b.String()
}

// registrar accepts built commands; implemented by Engine and CommandGroup.
type registrar interface {
	Register(info *CommandInfo) error
}

// CommandBuilder provides the fluent API for building commands
type CommandBuilder struct {
	info   *CommandInfo
	target registrar
	err    error
}

func newCommandBuilder(target registrar, id, description string) *CommandBuilder {
	return &CommandBuilder{
		info:   &CommandInfo{ID: id, Description: description},
		target: target,
	}
}

// fail records the first builder error; it is reported by Register.
func (c *CommandBuilder) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// Alias adds aliases for the command
func (c *CommandBuilder) Alias(aliases ...string) *CommandBuilder {
	c.info.Aliases = append(c.info.Aliases, aliases...)
	return c
}

// Hidden marks the command as hidden from help
func (c *CommandBuilder) Hidden() *CommandBuilder {
	c.info.Hidden = true
	return c
}

// Action sets a result-producing action
func (c *CommandBuilder) Action(fn Action) *CommandBuilder {
	c.info.void = false
	c.info.action = fn
	return c
}

// VoidAction sets an action that produces no result
func (c *CommandBuilder) VoidAction(fn VoidAction) *CommandBuilder {
	c.info.setVoid(fn)
	return c
}

// Option builders

// StringOption adds a string option to the command
func (c *CommandBuilder) StringOption(name, description string) *OptionBuilder[string] {
	return newOptionBuilder[string](c, name, description, String)
}

// BoolOption adds a boolean option to the command
func (c *CommandBuilder) BoolOption(name, description string) *OptionBuilder[bool] {
	return newOptionBuilder[bool](c, name, description, Bool)
}

// IntOption adds an integer option to the command
func (c *CommandBuilder) IntOption(name, description string) *OptionBuilder[int] {
	return newOptionBuilder[int](c, name, description, Int)
}

// FloatOption adds a float64 option to the command
func (c *CommandBuilder) FloatOption(name, description string) *OptionBuilder[float64] {
	return newOptionBuilder[float64](c, name, description, Float)
}

// DurationOption adds a duration option to the command
func (c *CommandBuilder) DurationOption(name, description string) *OptionBuilder[time.Duration] {
	return newOptionBuilder[time.Duration](c, name, description, Duration)
}

// EnumOption adds an option accepting members of e
func (c *CommandBuilder) EnumOption(name, description string, e *Enum) *OptionBuilder[EnumMember] {
	return newOptionBuilder[EnumMember](c, name, description, EnumOf(e))
}

// StringsOption adds a string array option to the command
func (c *CommandBuilder) StringsOption(name, description string) *OptionBuilder[[]string] {
	return newOptionBuilder[[]string](c, name, description, ArrayOf(String))
}

// IntsOption adds an integer array option to the command
func (c *CommandBuilder) IntsOption(name, description string) *OptionBuilder[[]int] {
	return newOptionBuilder[[]int](c, name, description, ArrayOf(Int))
}

// Option adds an option of an arbitrary type; values are handled as Value.
func (c *CommandBuilder) Option(name, description string, t Type) *OptionBuilder[Value] {
	return newOptionBuilder[Value](c, name, description, t)
}

// Info returns the command being built
func (c *CommandBuilder) Info() *CommandInfo { return c.info }

// Register validates the command and adds it to the engine or group the
// builder came from.
func (c *CommandBuilder) Register() (*CommandInfo, error) {
	if c.err != nil {
		return nil, NewError(ErrorTypeRegistration, "command '%s' is invalid", c.info.ID).
			WithCommand(c.info.ID).
			WithCause(c.err)
	}
	if err := c.target.Register(c.info); err != nil {
		return nil, err
	}
	return c.info, nil
}

// MustRegister is like Register but panics on error
func (c *CommandBuilder) MustRegister() *CommandInfo {
	info, err := c.Register()
	if err != nil {
		panic(err)
	}
	return info
}
