package dispatchio

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/dzonerzy/go-dispatch/dispatch"
)

// Printer writes invocation results to Out and errors to Err.
type Printer struct {
	io *IOManager

	errTag     *color.Color
	suggestion *color.Color
	heading    *color.Color
}

// NewPrinter creates a printer for m
func NewPrinter(m *IOManager) *Printer {
	p := &Printer{
		io:         m,
		errTag:     color.New(color.FgRed, color.Bold),
		suggestion: color.New(color.FgYellow),
		heading:    color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.errTag, p.suggestion, p.heading} {
		if m.SupportsColor() {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Result prints a formatted result followed by a newline. Void results print
// nothing.
func (p *Printer) Result(res *dispatch.Result) error {
	if res.IsVoid() {
		return nil
	}
	text, err := res.Format()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.io.Out(), text)
	return err
}

// Error prints err with its suggestions. Dispatch errors get their type and
// command; others are printed as they are.
func (p *Printer) Error(err error) {
	if err == nil {
		return
	}
	w := p.io.Err()

	var cmdErr *dispatch.CommandError
	if !errors.As(err, &cmdErr) {
		fmt.Fprintf(w, "%s %s\n", p.errTag.Sprint("Error:"), err)
		return
	}

	fmt.Fprintf(w, "%s %s\n", p.errTag.Sprint("Error:"), cmdErr.Error())
	for _, s := range cmdErr.Suggestions {
		fmt.Fprintf(w, "  %s\n", p.suggestion.Sprint(s))
	}
	if cmdErr.Type == dispatch.ErrorTypeUnknownCommand || cmdErr.Type == dispatch.ErrorTypeNoCommand {
		fmt.Fprintf(w, "  Run '%s' to list the available commands.\n", dispatch.HelpID)
	}
}

// Commands prints command usage lines under a heading, truncated to the
// terminal width.
func (p *Printer) Commands(heading string, lines []string) {
	w := p.io.Out()
	if heading != "" {
		fmt.Fprintln(w, p.heading.Sprint(heading))
	}
	width := p.io.Width()
	for _, line := range lines {
		line = "  " + line
		if p.io.IsTTY() && len(line) > width && width > 3 {
			line = line[:width-3] + "..."
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}
