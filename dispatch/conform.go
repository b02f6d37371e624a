package dispatch

import (
	"os"
	"strings"
)

const defaultSuggestDistance = 2

// Conform binds parsed arguments to the options of a command. Options are
// resolved in declaration order: a named argument, then the positional
// argument at the option's index, then its environment variables, default
// or null. Arguments left over afterwards are an error.
func Conform(args *ArgumentsInfo, options []*OptionInfo) (*Call, error) {
	call, err := conform(args, options, suggester{maxDistance: defaultSuggestDistance})
	if err != nil {
		return nil, err
	}
	return call, nil
}

func conform(args *ArgumentsInfo, options []*OptionInfo, s suggester) (*Call, *CommandError) {
	consumed := make([]bool, len(args.Arguments))
	values := make([]Value, len(options))

	for i, opt := range options {
		v, err := bindOption(args, opt, consumed)
		if err != nil {
			return nil, err.WithCommand(args.Command)
		}
		values[i] = v
	}

	var (
		leftover []string
		named    []string
	)
	for j, arg := range args.Arguments {
		if consumed[j] {
			continue
		}
		leftover = append(leftover, arg.Target.String())
		if arg.Target.IsNamed() {
			named = append(named, arg.Target.Name())
		}
	}
	if len(leftover) > 0 {
		err := NewError(ErrorTypeUnknownArgument, "unknown arguments: %s", strings.Join(leftover, ", ")).
			WithCommand(args.Command).
			WithArguments(leftover...)
		if len(named) > 0 {
			s.argument(err, named[0], optionNames(options))
		}
		return nil, err
	}

	return &Call{options: options, values: values}, nil
}

type match int

const (
	matchNone match = iota
	matchNormal
	matchAnti
)

func matchTarget(opt *OptionInfo, target ArgumentTarget) match {
	if !target.IsNamed() {
		return matchNone
	}
	name := target.Name()
	if target.IsShort() {
		switch {
		case opt.Short != "" && name == opt.Short:
			return matchNormal
		case opt.AntiShort != "" && name == opt.AntiShort:
			return matchAnti
		}
		return matchNone
	}
	switch {
	case name == opt.Name:
		return matchNormal
	case opt.AntiName != "" && name == opt.AntiName:
		return matchAnti
	}
	return matchNone
}

func bindOption(args *ArgumentsInfo, opt *OptionInfo, consumed []bool) (Value, *CommandError) {
	var normal, anti []int
	for j, arg := range args.Arguments {
		if consumed[j] {
			continue
		}
		switch matchTarget(opt, arg.Target) {
		case matchNormal:
			normal = append(normal, j)
		case matchAnti:
			anti = append(anti, j)
		}
	}

	targets := func(idx ...[]int) []string {
		var out []string
		for _, list := range idx {
			for _, j := range list {
				out = append(out, args.Arguments[j].Target.String())
			}
		}
		return out
	}

	switch {
	case len(normal) > 0 && len(anti) > 0:
		t := targets(normal, anti)
		return Value{}, NewError(ErrorTypeAmbiguousArgument, "option '%s' given both as %s", opt.Name, strings.Join(t, " and ")).
			WithArguments(t...)
	case len(normal) > 1 || len(anti) > 1:
		t := targets(normal, anti)
		return Value{}, NewError(ErrorTypeDuplicateArgument, "option '%s' given more than once: %s", opt.Name, strings.Join(t, ", ")).
			WithArguments(t...)
	case len(normal) == 1:
		consumed[normal[0]] = true
		return finish(opt, args.Arguments[normal[0]], false)
	case len(anti) == 1:
		consumed[anti[0]] = true
		return finish(opt, args.Arguments[anti[0]], true)
	}

	for j, arg := range args.Arguments {
		if consumed[j] || arg.Target.IsNamed() || arg.Target.Index() != opt.Index {
			continue
		}
		consumed[j] = true
		return finish(opt, arg, false)
	}

	return fallback(opt)
}

func finish(opt *OptionInfo, arg Argument, negate bool) (Value, *CommandError) {
	v, err := convertArgument(opt, arg, negate)
	if err != nil {
		return Value{}, err
	}
	return v, validate(opt, v)
}

func convertArgument(opt *OptionInfo, arg Argument, negate bool) (Value, *CommandError) {
	target := arg.Target.String()

	if negate {
		if len(arg.Values) != 1 {
			return Value{}, NewError(ErrorTypeInvalidValue, "option '%s' expects a single value", target).
				WithArguments(target)
		}
		truth, err := Truthy(arg.Values[0])
		if err != nil {
			return Value{}, NewError(ErrorTypeInvalidValue, "invalid value for '%s'", target).
				WithArguments(target).
				WithCause(err)
		}
		return BoolValue(!truth), nil
	}

	if arg.Implicit {
		switch {
		case opt.HasImplicit:
			return opt.Implicit, nil
		case opt.Type.Kind() == KindBool:
			return BoolValue(true), nil
		default:
			return Value{}, NewError(ErrorTypeMissingValue, "option '%s' requires a value", target).
				WithArguments(target)
		}
	}

	v, err := ConvertAll(arg.Values, opt.Type)
	if err != nil {
		return Value{}, NewError(ErrorTypeInvalidValue, "invalid value for '%s'", target).
			WithArguments(target).
			WithCause(err)
	}
	return v, nil
}

func fallback(opt *OptionInfo) (Value, *CommandError) {
	for _, name := range opt.EnvVars {
		raw, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		tokens := []string{raw}
		if opt.Type.IsArray() {
			tokens = splitList(raw)
		}
		v, err := ConvertAll(tokens, opt.Type)
		if err != nil {
			return Value{}, NewError(ErrorTypeInvalidValue, "invalid value for '%s' from $%s", opt.Name, name).
				WithArguments("$" + name).
				WithCause(err)
		}
		return v, validate(opt, v)
	}

	switch {
	case opt.HasDefault:
		return opt.Default, nil
	case opt.Nullable:
		return Null(opt.Type), nil
	}
	return Value{}, NewError(ErrorTypeMissingRequired, "missing required parameter '%s'", opt.Name).
		WithArguments("--" + opt.Name)
}

func validate(opt *OptionInfo, v Value) *CommandError {
	if opt.Validator == nil || v.IsNull() {
		return nil
	}
	if err := opt.Validator(v); err != nil {
		return NewError(ErrorTypeValidation, "invalid value for '%s'", opt.Name).
			WithArguments("--" + opt.Name).
			WithCause(err)
	}
	return nil
}

// splitList splits comma separated environment values for array options
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func optionNames(options []*OptionInfo) []string {
	var names []string
	for _, opt := range options {
		names = append(names, opt.names()...)
	}
	return names
}
