package dispatch

import (
	"fmt"
	"sort"
	"strings"
)

// Logger receives debug output about registration and dispatch.
type Logger interface {
	Debug(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithLogger routes engine debug output to logger
func WithLogger(logger Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRecovery converts panics in command actions into *RecoveryError
func WithRecovery() EngineOption {
	return func(e *Engine) { e.recovery = true }
}

// WithoutHelp skips registration of the built-in help command
func WithoutHelp() EngineOption {
	return func(e *Engine) { e.help = false }
}

// WithSuggestions sets the maximum edit distance of "did you mean" hints;
// zero disables them.
func WithSuggestions(maxDistance int) EngineOption {
	return func(e *Engine) { e.suggest = suggester{maxDistance: maxDistance} }
}

// WithExitCodes replaces the exit code manager
func WithExitCodes(m *ExitCodeManager) EngineOption {
	return func(e *Engine) {
		if m != nil {
			e.exitCodes = m
		}
	}
}

// Engine owns the command registry and global options and runs invocations.
//
// Registration is not synchronized. Register everything during setup and
// call Seal before executing from several goroutines.
type Engine struct {
	commands  map[string]*CommandInfo
	aliases   map[string]string // alias -> id, synthesized --<id> aliases included
	order     []string
	providers map[string][]string
	globals   []*GlobalOption
	maxWords  int

	logger    Logger
	suggest   suggester
	exitCodes *ExitCodeManager
	recovery  bool
	help      bool
	sealed    bool
}

// New creates an engine. The built-in help command is registered unless
// WithoutHelp is given.
func New(opts ...EngineOption) *Engine {
	e := &Engine{
		commands:  make(map[string]*CommandInfo),
		aliases:   make(map[string]string),
		providers: make(map[string][]string),
		logger:    nopLogger{},
		suggest:   suggester{maxDistance: defaultSuggestDistance},
		exitCodes: NewExitCodeManager(),
		help:      true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.help {
		if err := e.Register(e.helpCommand()); err != nil {
			panic(err)
		}
	}
	return e
}

// ExitCodes returns the exit code manager
func (e *Engine) ExitCodes() *ExitCodeManager { return e.exitCodes }

// Seal freezes registration. Later Register, Unregister, AddProvider,
// RemoveProvider and AddGlobalOption calls fail.
func (e *Engine) Seal() { e.sealed = true }

// Sealed reports whether registration is frozen
func (e *Engine) Sealed() bool { return e.sealed }

// Command starts building a top-level command
func (e *Engine) Command(id, description string) *CommandBuilder {
	return newCommandBuilder(e, id, description)
}

func (e *Engine) checkSealed(what string) *CommandError {
	if e.sealed {
		return NewError(ErrorTypeRegistration, "engine is sealed, cannot %s", what)
	}
	return nil
}

// Register validates and adds a command.
func (e *Engine) Register(info *CommandInfo) error {
	if err := e.checkSealed("register '" + info.ID + "'"); err != nil {
		return err
	}
	if err := e.validate(info); err != nil {
		return err
	}
	e.insert(info)
	return nil
}

// MustRegister is like Register but panics on error
func (e *Engine) MustRegister(info *CommandInfo) {
	if err := e.Register(info); err != nil {
		panic(err)
	}
}

func (e *Engine) insert(info *CommandInfo) {
	e.commands[info.ID] = info
	e.order = append(e.order, info.ID)
	for _, alias := range info.Aliases {
		e.aliases[alias] = info.ID
	}
	if info.IsGenericFlag() {
		e.aliases[info.FlagAlias()] = info.ID
	}
	if n := len(info.Words()); n > e.maxWords {
		e.maxWords = n
	}
	e.logger.Debug("registered command %q (%d options)", info.ID, len(info.Options))
}

func (e *Engine) validate(info *CommandInfo) *CommandError {
	fail := func(format string, args ...any) *CommandError {
		return NewError(ErrorTypeRegistration, format, args...).WithCommand(info.ID)
	}

	if strings.TrimSpace(info.ID) == "" {
		return fail("command id cannot be empty")
	}
	if strings.Join(info.Words(), " ") != info.ID {
		return fail("command id '%s' must be words separated by single spaces", info.ID)
	}
	if info.action == nil {
		return fail("command '%s' has no action", info.ID)
	}

	names := append([]string{info.ID}, info.Aliases...)
	if info.IsGenericFlag() {
		names = append(names, info.FlagAlias())
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" {
			return fail("command '%s' has an empty alias", info.ID)
		}
		if seen[name] || e.taken(name) {
			return fail("command name '%s' is already registered", name)
		}
		seen[name] = true
	}

	if err := validateOptions(info.Options); err != nil {
		return fail("command '%s': %s", info.ID, err)
	}

	if len(info.Options) > 0 {
		for id := range e.commands {
			if strings.HasPrefix(id, info.ID+" ") {
				return fail("command '%s' takes options and cannot be the main command of group '%s'", info.ID, info.ID)
			}
		}
	}
	words := info.Words()
	for i := 1; i < len(words); i++ {
		parent := strings.Join(words[:i], " ")
		if cmd, ok := e.commands[parent]; ok && len(cmd.Options) > 0 {
			return fail("command '%s' takes options, cannot register '%s' under it", parent, info.ID)
		}
	}
	return nil
}

func (e *Engine) taken(name string) bool {
	if _, ok := e.commands[name]; ok {
		return true
	}
	_, ok := e.aliases[name]
	return ok
}

func validateOptions(options []*OptionInfo) error {
	long := make(map[string]bool)
	short := make(map[string]bool)
	for i, opt := range options {
		if opt.Index != i {
			return fmt.Errorf("option '%s' has index %d, expected %d", opt.Name, opt.Index, i)
		}
		if opt.Name == "" {
			return fmt.Errorf("option %d has no name", i)
		}
		if (opt.AntiName != "" || opt.AntiShort != "") && opt.Type.Kind() != KindBool {
			return fmt.Errorf("option '%s' has an anti-name but is not a bool", opt.Name)
		}
		if opt.Type.Kind() == KindEnum && opt.Type.Enum() == nil {
			return fmt.Errorf("option '%s' has no enum definition", opt.Name)
		}
		if opt.Type.IsArray() && opt.Type.Elem().IsArray() {
			return fmt.Errorf("option '%s' is an array of arrays", opt.Name)
		}
		for _, n := range []string{opt.Name, opt.AntiName} {
			if n == "" {
				continue
			}
			if long[n] {
				return fmt.Errorf("option name '%s' is used twice", n)
			}
			long[n] = true
		}
		for _, s := range []string{opt.Short, opt.AntiShort} {
			if s == "" {
				continue
			}
			if short[s] {
				return fmt.Errorf("option shorthand '%s' is used twice", s)
			}
			short[s] = true
		}
	}
	return nil
}

// Unregister removes a command and its aliases.
func (e *Engine) Unregister(id string) error {
	if err := e.checkSealed("unregister '" + id + "'"); err != nil {
		return err
	}
	if _, ok := e.commands[id]; !ok {
		return NewError(ErrorTypeUnknownCommand, "command '%s' is not registered", id).WithCommand(id)
	}
	e.remove(id)
	for ns, ids := range e.providers {
		e.providers[ns] = without(ids, id)
	}
	return nil
}

func (e *Engine) remove(id string) {
	delete(e.commands, id)
	for alias, target := range e.aliases {
		if target == id {
			delete(e.aliases, alias)
		}
	}
	e.order = without(e.order, id)
	e.maxWords = 0
	for _, info := range e.commands {
		e.maxWords = max(e.maxWords, len(info.Words()))
	}
	e.logger.Debug("unregistered command %q", id)
}

func without(ids []string, id string) []string {
	out := ids[:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}

// AddProvider registers every command of p, or none of them when one fails.
func (e *Engine) AddProvider(p CommandProvider) error {
	ns := p.Namespace()
	if err := e.checkSealed("add provider '" + ns + "'"); err != nil {
		return err
	}
	if _, ok := e.providers[ns]; ok {
		return NewError(ErrorTypeRegistration, "provider '%s' is already registered", ns)
	}

	var added []string
	for _, info := range p.Commands() {
		if err := e.validate(info); err != nil {
			for _, id := range added {
				e.remove(id)
			}
			return NewError(ErrorTypeRegistration, "provider '%s' rejected", ns).
				WithCommand(info.ID).
				WithCause(err)
		}
		e.insert(info)
		added = append(added, info.ID)
	}
	e.providers[ns] = added
	return nil
}

// RemoveProvider removes every command registered by the named provider.
func (e *Engine) RemoveProvider(namespace string) error {
	if err := e.checkSealed("remove provider '" + namespace + "'"); err != nil {
		return err
	}
	ids, ok := e.providers[namespace]
	if !ok {
		return NewError(ErrorTypeRegistration, "provider '%s' is not registered", namespace)
	}
	for _, id := range ids {
		e.remove(id)
	}
	delete(e.providers, namespace)
	return nil
}

// AddGlobalOption registers an option handled for every command.
func (e *Engine) AddGlobalOption(g *GlobalOption) error {
	if err := e.checkSealed("add global option '--" + g.Long + "'"); err != nil {
		return err
	}
	if g.Long == "" || g.Handler == nil {
		return NewError(ErrorTypeRegistration, "global option needs a long name and a handler")
	}
	for _, existing := range e.globals {
		if existing.Long == g.Long || (g.Short != "" && existing.Short == g.Short) {
			return NewError(ErrorTypeRegistration, "global option '--%s' is already registered", g.Long)
		}
	}
	if g.Option != nil && g.Option.Name != g.Long {
		opt := *g.Option
		opt.Name = g.Long
		named := *g
		named.Option = &opt
		g = &named
	}
	e.globals = append(e.globals, g)
	e.logger.Debug("registered global option --%s", g.Long)
	return nil
}

// GlobalOptions returns the global options in registration order
func (e *Engine) GlobalOptions() []*GlobalOption {
	return append([]*GlobalOption(nil), e.globals...)
}

// Lookup returns a command by id or alias
func (e *Engine) Lookup(name string) (*CommandInfo, bool) {
	if info, ok := e.commands[name]; ok {
		return info, true
	}
	if id, ok := e.aliases[name]; ok {
		return e.commands[id], true
	}
	return nil, false
}

// Commands returns the registered commands in registration order
func (e *Engine) Commands() []*CommandInfo {
	out := make([]*CommandInfo, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.commands[id])
	}
	return out
}

// resolve finds the command named by the longest run of leading tokens.
func (e *Engine) resolve(tokens []string) (*CommandInfo, []string, *CommandError) {
	if len(tokens) == 0 {
		return nil, nil, NewError(ErrorTypeNoCommand, "no command provided")
	}
	for n := min(e.maxWords, len(tokens)); n >= 1; n-- {
		if info, ok := e.Lookup(strings.Join(tokens[:n], " ")); ok {
			return info, tokens[n:], nil
		}
	}

	err := NewError(ErrorTypeUnknownCommand, "unknown command '%s'", tokens[0]).WithCommand(tokens[0])
	candidates := make([]string, 0, len(e.commands)+len(e.aliases))
	for _, id := range e.order {
		if !e.commands[id].Hidden {
			candidates = append(candidates, id)
		}
	}
	var aliases []string
	for alias := range e.aliases {
		if !strings.HasPrefix(alias, "-") {
			aliases = append(aliases, alias)
		}
	}
	sort.Strings(aliases)
	candidates = append(candidates, aliases...)
	e.suggest.command(err, tokens[0], candidates)
	return nil, nil, err
}
