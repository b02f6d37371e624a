package manifest

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dzonerzy/go-dispatch/dispatch"
)

type builder struct {
	enums   map[string]*dispatch.Enum
	actions *Actions
}

func (b *builder) command(spec CommandSpec) (*dispatch.CommandInfo, error) {
	options := make([]*dispatch.OptionInfo, 0, len(spec.Options))
	for _, o := range spec.Options {
		opt, err := b.option(o)
		if err != nil {
			return nil, registrationError("command '%s'", spec.ID).WithCommand(spec.ID).WithCause(err)
		}
		options = append(options, opt)
	}

	var info *dispatch.CommandInfo
	if spec.Void {
		fn, ok := b.actions.void(spec.Action)
		if !ok {
			return nil, registrationError("command '%s' uses unknown void action '%s'", spec.ID, spec.Action).
				WithCommand(spec.ID)
		}
		info = dispatch.NewVoidCommand(spec.ID, spec.Description, fn, options...)
	} else {
		fn, ok := b.actions.action(spec.Action)
		if !ok {
			return nil, registrationError("command '%s' uses unknown action '%s'", spec.ID, spec.Action).
				WithCommand(spec.ID)
		}
		info = dispatch.NewCommand(spec.ID, spec.Description, fn, options...)
	}
	info.Aliases = spec.Aliases
	info.Hidden = spec.Hidden
	return info, nil
}

func (b *builder) option(spec OptionSpec) (*dispatch.OptionInfo, error) {
	if spec.Name == "" {
		return nil, errors.New("option without a name")
	}
	t, err := b.typeOf(spec.Type)
	if err != nil {
		return nil, fmt.Errorf("option '%s': %w", spec.Name, err)
	}

	opt := dispatch.NewOption(spec.Name, t)
	opt.Description = spec.Description
	opt.Short = spec.Short
	opt.AntiShort = spec.AntiShort
	opt.EnvVars = spec.Env
	opt.Nullable = spec.Nullable
	opt.Hidden = spec.Hidden
	if spec.Anti != "" {
		opt.AntiName = dispatch.Signature(spec.Anti)
	}

	if v, ok, err := value(t, &spec.Default); err != nil {
		return nil, fmt.Errorf("option '%s' default: %w", spec.Name, err)
	} else if ok {
		opt.Default, opt.HasDefault = v, true
	}
	if v, ok, err := value(t, &spec.Implicit); err != nil {
		return nil, fmt.Errorf("option '%s' implicit value: %w", spec.Name, err)
	} else if ok {
		opt.Implicit, opt.HasImplicit = v, true
	}
	return opt, nil
}

// typeOf resolves a declared type name; "" means string.
func (b *builder) typeOf(name string) (dispatch.Type, error) {
	if elem, ok := strings.CutPrefix(name, "[]"); ok {
		t, err := b.typeOf(elem)
		if err != nil {
			return dispatch.Type{}, err
		}
		if t.IsArray() {
			return dispatch.Type{}, fmt.Errorf("nested array type '%s'", name)
		}
		return dispatch.ArrayOf(t), nil
	}

	switch strings.ToLower(name) {
	case "", "string":
		return dispatch.String, nil
	case "bool":
		return dispatch.Bool, nil
	case "int":
		return dispatch.Int, nil
	case "float":
		return dispatch.Float, nil
	case "duration":
		return dispatch.Duration, nil
	}
	if e, ok := b.enums[dispatch.Signature(name)]; ok {
		return dispatch.EnumOf(e), nil
	}
	return dispatch.Type{}, fmt.Errorf("unknown type '%s'", name)
}

// value decodes an optional YAML node into a value of type t. An absent
// node reports false; an explicit null yields the null value.
func value(t dispatch.Type, node *yaml.Node) (dispatch.Value, bool, error) {
	if node.Kind == 0 {
		return dispatch.Value{}, false, nil
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return dispatch.Null(t), true, nil
	}
	if node.Kind == yaml.ScalarNode {
		// tokens go through the same conversion as the command line
		v, err := dispatch.Convert(node.Value, t)
		return v, err == nil, err
	}

	if node.Kind != yaml.SequenceNode {
		return dispatch.Value{}, false, fmt.Errorf("expected a scalar or a list, got %s", nodeKind(node))
	}
	tokens := make([]string, len(node.Content))
	for i, item := range node.Content {
		if item.Kind != yaml.ScalarNode {
			return dispatch.Value{}, false, fmt.Errorf("list item %d is not a scalar", i)
		}
		tokens[i] = item.Value
	}
	v, err := dispatch.ConvertAll(tokens, t)
	return v, err == nil, err
}

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.MappingNode:
		return "a mapping"
	case yaml.AliasNode:
		return "an alias"
	default:
		return "a document"
	}
}
