// Package manifest registers commands declared in YAML. Each command names
// an action from an Actions catalog; options, enums and groups are declared
// alongside.
//
//	enums:
//	  color: [red, green, {name: light-blue, value: 5, signature: lb}]
//	commands:
//	  - id: paint
//	    action: paint
//	    options:
//	      - {name: color, type: color, default: red}
//	groups:
//	  - namespace: db
//	    commands:
//	      - {id: db migrate, action: migrate, void: true}
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dzonerzy/go-dispatch/dispatch"
)

// Manifest is the decoded form of a manifest file
type Manifest struct {
	Enums    map[string][]MemberSpec `yaml:"enums"`
	Commands []CommandSpec           `yaml:"commands"`
	Groups   []GroupSpec             `yaml:"groups"`
}

// MemberSpec declares an enum member. A bare string is a member whose value
// is its position.
type MemberSpec struct {
	Name      string `yaml:"name"`
	Value     *int64 `yaml:"value"`
	Signature string `yaml:"signature"`
}

// UnmarshalYAML accepts either a scalar name or a mapping
func (m *MemberSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		m.Name = node.Value
		return nil
	}
	type plain MemberSpec
	return node.Decode((*plain)(m))
}

// CommandSpec declares one command
type CommandSpec struct {
	ID          string       `yaml:"id"`
	Description string       `yaml:"description"`
	Aliases     []string     `yaml:"aliases"`
	Action      string       `yaml:"action"`
	Void        bool         `yaml:"void"`
	Hidden      bool         `yaml:"hidden"`
	Options     []OptionSpec `yaml:"options"`
}

// OptionSpec declares one command option. Type is a scalar type name, an
// enum declared in the manifest, or either prefixed with "[]".
type OptionSpec struct {
	Name        string    `yaml:"name"`
	Type        string    `yaml:"type"`
	Description string    `yaml:"description"`
	Default     yaml.Node `yaml:"default"`
	Implicit    yaml.Node `yaml:"implicit"`
	Short       string    `yaml:"short"`
	Anti        string    `yaml:"anti"`
	AntiShort   string    `yaml:"anti_short"`
	Env         []string  `yaml:"env"`
	Nullable    bool      `yaml:"nullable"`
	Hidden      bool      `yaml:"hidden"`
}

// GroupSpec declares a command group; every command id must start with the
// namespace.
type GroupSpec struct {
	Namespace string        `yaml:"namespace"`
	Commands  []CommandSpec `yaml:"commands"`
}

// Parse decodes a manifest. Unknown keys are rejected.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}

// Load reads and decodes the manifest at path
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Apply builds every declared command and registers it with e. Top-level
// commands are registered first, then each group as a provider. Commands
// registered before a failure stay registered.
func (m *Manifest) Apply(e *dispatch.Engine, actions *Actions) error {
	enums, err := m.buildEnums()
	if err != nil {
		return err
	}
	b := &builder{enums: enums, actions: actions}

	for _, spec := range m.Commands {
		info, err := b.command(spec)
		if err != nil {
			return err
		}
		if err := e.Register(info); err != nil {
			return err
		}
	}
	for _, g := range m.Groups {
		group := dispatch.NewGroup(g.Namespace)
		for _, spec := range g.Commands {
			info, err := b.command(spec)
			if err != nil {
				return err
			}
			if err := group.Register(info); err != nil {
				return err
			}
		}
		if err := e.AddProvider(group); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manifest) buildEnums() (map[string]*dispatch.Enum, error) {
	enums := make(map[string]*dispatch.Enum, len(m.Enums))
	for name, specs := range m.Enums {
		if len(specs) == 0 {
			return nil, registrationError("enum '%s' has no members", name)
		}
		members := make([]dispatch.EnumMember, len(specs))
		for i, s := range specs {
			if s.Name == "" {
				return nil, registrationError("enum '%s' member %d has no name", name, i)
			}
			value := int64(i)
			if s.Value != nil {
				value = *s.Value
			}
			members[i] = dispatch.Member(s.Name, value)
			if s.Signature != "" {
				members[i] = members[i].WithSignature(s.Signature)
			}
		}
		enums[dispatch.Signature(name)] = dispatch.NewEnum(name, members...)
	}
	return enums, nil
}

func registrationError(format string, args ...any) *dispatch.CommandError {
	return dispatch.NewError(dispatch.ErrorTypeRegistration, "manifest: "+format, args...)
}
