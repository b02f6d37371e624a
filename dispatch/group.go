package dispatch

import (
	"fmt"
	"strings"
)

// CommandProvider supplies a set of commands registered and removed together.
type CommandProvider interface {
	Namespace() string
	Commands() []*CommandInfo
}

// CommandGroup is a CommandProvider whose command ids are prefixed with the
// group name ("remote add", "remote remove").
type CommandGroup struct {
	name     string
	commands []*CommandInfo
}

// NewGroup creates an empty group. The name may itself contain spaces for
// nested groups.
func NewGroup(name string) *CommandGroup {
	return &CommandGroup{name: strings.Join(strings.Fields(name), " ")}
}

// Namespace returns the group name
func (g *CommandGroup) Namespace() string { return g.name }

// Commands returns the commands added so far in order
func (g *CommandGroup) Commands() []*CommandInfo {
	return append([]*CommandInfo(nil), g.commands...)
}

// Command starts building a subcommand with id "<group> <name>"
func (g *CommandGroup) Command(name, description string) *CommandBuilder {
	return newCommandBuilder(g, g.name+" "+name, description)
}

// Main starts building the command invoked by the bare group name. Only a
// zero-option main command can coexist with subcommands.
func (g *CommandGroup) Main(description string) *CommandBuilder {
	return newCommandBuilder(g, g.name, description)
}

// Register adds a built command to the group. Engine-level validation runs
// when the group is added with Engine.AddProvider.
func (g *CommandGroup) Register(info *CommandInfo) error {
	if info.ID != g.name && !strings.HasPrefix(info.ID, g.name+" ") {
		return NewError(ErrorTypeRegistration, "command '%s' is outside group '%s'", info.ID, g.name).
			WithCommand(info.ID)
	}
	for _, existing := range g.commands {
		if existing.ID == info.ID {
			return NewError(ErrorTypeRegistration, "command '%s' already exists in group '%s'", info.ID, g.name).
				WithCommand(info.ID)
		}
	}
	g.commands = append(g.commands, info)
	return nil
}

func (g *CommandGroup) String() string {
	return fmt.Sprintf("group %s (%d commands)", g.name, len(g.commands))
}
