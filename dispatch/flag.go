package dispatch

// FlagHandler reacts to a global option present on an invocation. The value
// is the option's bound value (true for flag-only options).
type FlagHandler interface {
	PreCommand(ctx *Context, value Value) error
	OnReturned(ctx *Context, value Value, result *Result) (*Result, error)
	PostCommand(ctx *Context, value Value) error
}

// FlagFuncs adapts plain functions to FlagHandler; nil hooks are no-ops.
type FlagFuncs struct {
	Pre      func(ctx *Context, value Value) error
	Returned func(ctx *Context, value Value, result *Result) (*Result, error)
	Post     func(ctx *Context, value Value) error
}

// PreCommand implements FlagHandler
func (f FlagFuncs) PreCommand(ctx *Context, value Value) error {
	if f.Pre == nil {
		return nil
	}
	return f.Pre(ctx, value)
}

// OnReturned implements FlagHandler
func (f FlagFuncs) OnReturned(ctx *Context, value Value, result *Result) (*Result, error) {
	if f.Returned == nil {
		return result, nil
	}
	return f.Returned(ctx, value, result)
}

// PostCommand implements FlagHandler
func (f FlagFuncs) PostCommand(ctx *Context, value Value) error {
	if f.Post == nil {
		return nil
	}
	return f.Post(ctx, value)
}

// GlobalOption is an option accepted by every command and handled outside
// the command itself. Without Option it is a flag that binds true; a false
// value ("--flag false") leaves the handler out of the invocation.
type GlobalOption struct {
	Long        string
	Short       string
	Description string
	Option      *OptionInfo
	Handler     FlagHandler
}

// Usage renders the option for help output
func (g *GlobalOption) Usage() string {
	s := "--" + g.Long
	if g.Short != "" {
		s += ", -" + g.Short
	}
	if g.Option != nil {
		s += " <" + g.Option.Type.String() + ">"
	}
	if g.Description != "" {
		s += " - " + g.Description
	}
	return s
}

func (g *GlobalOption) matches(target ArgumentTarget) bool {
	if !target.IsNamed() {
		return false
	}
	if target.IsShort() {
		return g.Short != "" && target.Name() == g.Short
	}
	return target.Name() == g.Long
}

// bind converts the argument for this global option
func (g *GlobalOption) bind(arg Argument) (Value, *CommandError) {
	if g.Option == nil {
		if arg.Implicit {
			return BoolValue(true), nil
		}
		opt := &OptionInfo{Name: g.Long, Type: Bool}
		return convertArgument(opt, arg, false)
	}
	return finish(g.Option, arg, false)
}

// invocation is a global option matched on a command line
type invocation struct {
	option *GlobalOption
	value  Value
}

// extractGlobals removes global options from args, returning a new
// ArgumentsInfo and the matched options in registration order.
func (e *Engine) extractGlobals(args *ArgumentsInfo) (*ArgumentsInfo, []invocation, *CommandError) {
	rest := &ArgumentsInfo{Command: args.Command, Arguments: make([]Argument, 0, len(args.Arguments))}
	found := make(map[*GlobalOption][]Argument)

	for _, arg := range args.Arguments {
		taken := false
		for _, g := range e.globals {
			if g.matches(arg.Target) {
				found[g] = append(found[g], arg)
				taken = true
				break
			}
		}
		if !taken {
			rest.Arguments = append(rest.Arguments, arg)
		}
	}

	var matched []invocation
	for _, g := range e.globals {
		args := found[g]
		switch len(args) {
		case 0:
			continue
		case 1:
		default:
			return nil, nil, NewError(ErrorTypeDuplicateArgument, "global option '--%s' given more than once", g.Long).
				WithArguments("--" + g.Long)
		}
		v, err := g.bind(args[0])
		if err != nil {
			return nil, nil, err
		}
		if g.Option == nil && !v.AsBool() {
			continue
		}
		matched = append(matched, invocation{option: g, value: v})
	}
	return rest, matched, nil
}
