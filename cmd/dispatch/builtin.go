package main

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/dzonerzy/go-dispatch/dispatch"
	"github.com/dzonerzy/go-dispatch/manifest"
)

func echo(c *dispatch.Call) (any, error) {
	return strings.Join(c.Strings("words"), " "), nil
}

func sum(c *dispatch.Call) (any, error) {
	total := 0
	for _, n := range c.Ints("numbers") {
		total += n
	}
	return total, nil
}

func env(c *dispatch.Call) (any, error) {
	name := c.String("name")
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil, nil
	}
	return dispatch.KeyValues{{Key: name, Value: v}}, nil
}

func sleep(c *dispatch.Call) error {
	select {
	case <-time.After(c.Duration("for")):
		return nil
	case <-c.Context().Done():
		return c.Context().Err()
	}
}

func fail(c *dispatch.Call) error {
	return &dispatch.ExitError{Code: c.Int("code"), Err: errors.New("failed on request")}
}

// builtinActions is the catalog manifests can refer to
func builtinActions() *manifest.Actions {
	return manifest.NewActions().
		Add("echo", echo).
		Add("sum", sum).
		Add("env", env).
		AddVoid("sleep", sleep).
		AddVoid("fail", fail)
}

// registerBuiltins registers the commands available without a manifest
func registerBuiltins(e *dispatch.Engine) error {
	commands := []*dispatch.CommandBuilder{
		e.Command("echo", "Prints its arguments").
			StringsOption("words", "words to print").Default(nil).Back().
			Action(echo),
		e.Command("sum", "Adds integers").
			IntsOption("numbers", "integers to add").Back().
			Action(sum),
		e.Command("env", "Shows an environment variable").
			StringOption("name", "variable name").Back().
			Action(env),
		e.Command("sleep", "Waits for a duration").
			DurationOption("for", "how long to wait").Default(time.Second).Back().
			VoidAction(sleep),
		e.Command("fail", "Exits with the given code").
			IntOption("code", "exit code").Default(1).Back().
			VoidAction(fail),
	}
	for _, cmd := range commands {
		if _, err := cmd.Register(); err != nil {
			return err
		}
	}
	return nil
}
