package dispatch

// HelpID is the id of the built-in help command.
const HelpID = "help"

// Help returns one usage line per visible command in registration order.
func (e *Engine) Help() []string {
	lines := make([]string, 0, len(e.order))
	for _, id := range e.order {
		if info := e.commands[id]; !info.Hidden {
			lines = append(lines, info.Usage())
		}
	}
	return lines
}

func (e *Engine) helpCommand() *CommandInfo {
	info := NewCommand(HelpID, "Lists the available commands", func(*Call) (any, error) {
		return e.Help(), nil
	})
	info.Aliases = []string{"?", "h"}
	return info
}
