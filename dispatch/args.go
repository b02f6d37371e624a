package dispatch

import (
	"strconv"
	"strings"
)

const implicitTrue = "true"

// ArgumentTarget identifies what a parsed argument refers to: either a name
// (long `--name` or short `-n`) or a positional index. Exactly one is set.
type ArgumentTarget struct {
	name  string
	short bool
	index int // -1 for named targets
}

// NamedTarget returns a target referring to an option by name.
func NamedTarget(name string, short bool) ArgumentTarget {
	return ArgumentTarget{name: name, short: short, index: -1}
}

// PositionalTarget returns a target referring to a position.
func PositionalTarget(index int) ArgumentTarget {
	return ArgumentTarget{index: index}
}

// IsNamed reports whether the target is a name rather than a position
func (t ArgumentTarget) IsNamed() bool { return t.index < 0 }

// Name returns the name without leading dashes ("" for positional targets)
func (t ArgumentTarget) Name() string { return t.name }

// IsShort reports whether the name was given in single-dash form
func (t ArgumentTarget) IsShort() bool { return t.short }

// Index returns the position (-1 for named targets)
func (t ArgumentTarget) Index() int { return t.index }

// String renders the target as typed: "--name", "-n" or "#index".
func (t ArgumentTarget) String() string {
	switch {
	case !t.IsNamed():
		return "#" + strconv.Itoa(t.index)
	case t.short:
		return "-" + t.name
	default:
		return "--" + t.name
	}
}

// Argument pairs a target with its raw value tokens. Implicit is set when a
// named argument was given without values and received the implicit "true".
type Argument struct {
	Target   ArgumentTarget
	Values   []string
	Implicit bool
}

// ArgumentsInfo is the parse result of one invocation: the command id plus
// the arguments in encounter order.
type ArgumentsInfo struct {
	Command   string
	Arguments []Argument
}

// Parse splits a token list into the command id (always the first token)
// and its arguments. A token starting with "-" opens a named argument, a
// standalone "--" makes every following token positional, and other tokens
// are values of the open named argument or new positional arguments.
func Parse(tokens []string) (*ArgumentsInfo, error) {
	if len(tokens) == 0 {
		return nil, NewError(ErrorTypeNoCommand, "no command provided")
	}

	info := &ArgumentsInfo{
		Command:   tokens[0],
		Arguments: make([]Argument, 0, len(tokens)-1),
	}

	var (
		open        *Argument
		position    int
		onlyPosArgs bool
	)

	flush := func() {
		if open == nil {
			return
		}
		if len(open.Values) == 0 {
			open.Values = []string{implicitTrue}
			open.Implicit = true
		}
		info.Arguments = append(info.Arguments, *open)
		open = nil
	}

	for _, token := range tokens[1:] {
		switch {
		case onlyPosArgs || !isNamedToken(token):
			if open != nil && !onlyPosArgs {
				open.Values = append(open.Values, token)
				continue
			}
			info.Arguments = append(info.Arguments, Argument{
				Target: PositionalTarget(position),
				Values: []string{token},
			})
			position++
		case token == "--":
			flush()
			onlyPosArgs = true
		default:
			flush()
			open = openNamed(token)
		}
	}
	flush()

	return info, nil
}

// isNamedToken reports whether token opens a named argument ("--" included,
// which the caller handles as the end of named options).
func isNamedToken(token string) bool {
	return len(token) >= 2 && token[0] == '-'
}

func openNamed(token string) *Argument {
	short := !strings.HasPrefix(token, "--")
	name := strings.TrimPrefix(strings.TrimPrefix(token, "-"), "-")

	arg := &Argument{}
	if key, value, found := strings.Cut(name, "="); found && key != "" {
		name = key
		arg.Values = []string{value}
	}
	arg.Target = NamedTarget(name, short)
	return arg
}
