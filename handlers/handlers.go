// Package handlers provides ready-made global options for a dispatch engine:
// Help, DryRun, TestValue, Quiet and Validate.
package handlers

import (
	"github.com/dzonerzy/go-dispatch/dispatch"
)

// Register adds every option to e, stopping at the first error.
func Register(e *dispatch.Engine, options ...*dispatch.GlobalOption) error {
	for _, opt := range options {
		if err := e.AddGlobalOption(opt); err != nil {
			return err
		}
	}
	return nil
}

// Help returns the --help/-h option. The command is not run and the result
// is its usage line, so it works even when the arguments do not bind.
func Help() *dispatch.GlobalOption {
	return &dispatch.GlobalOption{
		Long:        "help",
		Short:       "h",
		Description: "Show the usage of the command instead of running it",
		Handler: dispatch.FlagFuncs{
			Pre: prevent,
			Returned: func(ctx *dispatch.Context, _ dispatch.Value, _ *dispatch.Result) (*dispatch.Result, error) {
				return dispatch.NewResult(ctx.Command().Usage()), nil
			},
		},
	}
}

// DryRun returns the --dry-run option. The command is not run; the result is
// the bound values in declaration order. Binding errors are still reported.
func DryRun() *dispatch.GlobalOption {
	return &dispatch.GlobalOption{
		Long:        "dry-run",
		Description: "Print the bound values instead of running the command",
		Handler: dispatch.FlagFuncs{
			Pre: prevent,
			Returned: func(ctx *dispatch.Context, _ dispatch.Value, _ *dispatch.Result) (*dispatch.Result, error) {
				if err := ctx.BindError(); err != nil {
					return nil, err
				}
				return dispatch.NewResult(ctx.Call().KeyValues()), nil
			},
		},
	}
}

// TestValue returns the --test option, which replaces the command with a
// fixed result.
func TestValue(v any) *dispatch.GlobalOption {
	return &dispatch.GlobalOption{
		Long:        "test",
		Description: "Return a canned value instead of running the command",
		Handler: dispatch.FlagFuncs{
			Pre: prevent,
			Returned: func(*dispatch.Context, dispatch.Value, *dispatch.Result) (*dispatch.Result, error) {
				return dispatch.NewResult(v), nil
			},
		},
	}
}

// Quiet returns the --quiet/-q option. The command runs but its result is
// discarded.
func Quiet() *dispatch.GlobalOption {
	return &dispatch.GlobalOption{
		Long:        "quiet",
		Short:       "q",
		Description: "Discard the command result",
		Handler: dispatch.FlagFuncs{
			Returned: func(*dispatch.Context, dispatch.Value, *dispatch.Result) (*dispatch.Result, error) {
				return dispatch.VoidResult(), nil
			},
		},
	}
}

func prevent(ctx *dispatch.Context, _ dispatch.Value) error {
	ctx.PreventExecution()
	return nil
}
