package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dzonerzy/go-dispatch/dispatch"
	"github.com/dzonerzy/go-dispatch/handlers"
	dispatchio "github.com/dzonerzy/go-dispatch/io"
	"github.com/dzonerzy/go-dispatch/log"
	"github.com/dzonerzy/go-dispatch/manifest"
)

const defaultConfigFile = "dispatch.yaml"

type app struct {
	io      *dispatchio.IOManager
	printer *dispatchio.Printer

	configPath string
	manifest   string
	logLevel   string
	logFormat  string
	logFile    string
	noColor    bool

	log    *log.Logger
	engine *dispatch.Engine
}

// run executes the host with args and returns the process exit code.
func run(ctx context.Context, args []string, m *dispatchio.IOManager) int {
	a := &app{io: m}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(m.In())
	root.SetOut(m.Out())
	root.SetErr(m.Err())

	err := root.ExecuteContext(ctx)
	if a.log != nil {
		defer a.log.Close()
	}
	if err == nil {
		return 0
	}
	if a.printer == nil {
		a.printer = dispatchio.NewPrinter(m)
	}
	a.printer.Error(err)
	if a.engine == nil {
		return 1
	}
	return a.engine.ExitCodes().Resolve(err)
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "dispatch",
		Short: "Run commands through a dispatch engine",
		Long: `dispatch resolves a command line against registered commands, binds its
arguments and prints the result.

Commands come from the built-in set and from an optional YAML manifest.

Examples:
  dispatch run echo --words hello world
  dispatch --manifest commands.yaml run deploy staging --dry-run
  dispatch repl`,
		Args:              cobra.NoArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		TraverseChildren:  true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML config file (default "+defaultConfigFile+" if present)")
	flags.StringVar(&a.manifest, "manifest", "", "YAML manifest declaring extra commands")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "Log format: text, json")
	flags.StringVar(&a.logFile, "log-file", "", "Also write logs to this file, rotated")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		&cobra.Command{
			Use:                "run <command> [arguments...]",
			Short:              "Run a single command line",
			Args:               cobra.MinimumNArgs(1),
			DisableFlagParsing: true,
			RunE:               a.runOnce,
		},
		&cobra.Command{
			Use:   "repl",
			Short: "Read command lines from standard input",
			Args:  cobra.NoArgs,
			RunE:  a.repl,
		},
		&cobra.Command{
			Use:   "commands",
			Short: "List the registered commands and global options",
			Args:  cobra.NoArgs,
			RunE:  a.commands,
		},
	)
	return root
}

// setup loads the config, applies flag overrides and builds the logger and
// the engine.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.noColor {
		a.io.NoColor()
	}
	a.printer = dispatchio.NewPrinter(a.io)

	path, required := a.configPath, true
	if path == "" {
		path, required = defaultConfigFile, false
	}
	cfg, err := loadConfig(path, required)
	if err != nil {
		return err
	}
	if err := a.override(&cfg); err != nil {
		return err
	}

	if cfg.Log.Output == nil {
		cfg.Log.Output = a.io.Err()
	}
	if !a.io.SupportsColor() {
		cfg.Log.NoColor = true
	}
	a.log, err = log.New(cfg.Log)
	if err != nil {
		return err
	}

	a.engine, err = a.buildEngine(cfg)
	if err != nil {
		return err
	}
	a.log.Debug("host ready with %d commands", len(a.engine.Commands()))
	return nil
}

func (a *app) override(cfg *Config) error {
	if a.manifest != "" {
		cfg.Manifest = a.manifest
	}
	if a.logLevel != "" {
		level, err := log.ParseLevel(a.logLevel)
		if err != nil {
			return err
		}
		cfg.Log.Level = level
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if a.logFile != "" {
		cfg.Log.File = a.logFile
	}
	return nil
}

func (a *app) buildEngine(cfg Config) (*dispatch.Engine, error) {
	opts := []dispatch.EngineOption{
		dispatch.WithLogger(a.log.Named("engine")),
		dispatch.WithSuggestions(cfg.Suggestions),
	}
	if cfg.Recovery {
		opts = append(opts, dispatch.WithRecovery())
	}
	e := dispatch.New(opts...)

	if err := registerBuiltins(e); err != nil {
		return nil, err
	}
	if cfg.Manifest != "" {
		m, err := manifest.Load(cfg.Manifest)
		if err != nil {
			return nil, err
		}
		if err := m.Apply(e, builtinActions()); err != nil {
			return nil, fmt.Errorf("apply %s: %w", cfg.Manifest, err)
		}
	}

	for _, name := range cfg.Handlers {
		opt, err := a.handler(name, cfg)
		if err != nil {
			return nil, err
		}
		if err := e.AddGlobalOption(opt); err != nil {
			return nil, err
		}
	}
	e.Seal()
	return e, nil
}

func (a *app) handler(name string, cfg Config) (*dispatch.GlobalOption, error) {
	switch name {
	case "help":
		return handlers.Help(), nil
	case "dry-run":
		return handlers.DryRun(), nil
	case "quiet":
		return handlers.Quiet(), nil
	case "test":
		return handlers.TestValue(cfg.Test), nil
	case "verbose":
		return a.log.VerboseOption(), nil
	default:
		return nil, fmt.Errorf("unknown handler %q", name)
	}
}

func (a *app) runOnce(cmd *cobra.Command, args []string) error {
	res, err := a.engine.ExecuteContext(cmd.Context(), args)
	if err != nil {
		return err
	}
	return a.printer.Result(res)
}

// repl executes one command line per input line until EOF or "exit".
// Failed lines are reported and the loop continues.
func (a *app) repl(cmd *cobra.Command, _ []string) error {
	interactive := a.io.IsInteractive()
	scanner := bufio.NewScanner(a.io.In())
	prompt := func() {
		if interactive {
			fmt.Fprint(a.io.Out(), "> ")
		}
	}

	for prompt(); scanner.Scan(); prompt() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		res, err := a.engine.ExecuteLine(cmd.Context(), line)
		if err == nil {
			err = a.printer.Result(res)
		}
		if err != nil {
			a.printer.Error(err)
		}
		if cmd.Context().Err() != nil {
			return cmd.Context().Err()
		}
	}
	return scanner.Err()
}

func (a *app) commands(*cobra.Command, []string) error {
	a.printer.Commands("Commands:", a.engine.Help())
	globals := a.engine.GlobalOptions()
	if len(globals) == 0 {
		return nil
	}
	lines := make([]string, len(globals))
	for i, g := range globals {
		lines[i] = g.Usage()
	}
	a.printer.Commands("Global options:", lines)
	return nil
}
