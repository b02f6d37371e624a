package handlers

import (
	"errors"

	"github.com/dzonerzy/go-dispatch/dispatch"
)

// ValidatorFunc checks a bound call before its command runs. Use it for
// checks the option types cannot express: files that must exist, options
// that only make sense together.
type ValidatorFunc func(call *dispatch.Call) error

// Validate returns the --validate option. Validators are keyed by command id;
// when the option is given, the validator for the target command runs
// against the bound call and a failure stops the invocation.
//
// Errors that are already a *dispatch.CommandError are returned as they are;
// others are wrapped in a validation error.
func Validate(validators map[string]ValidatorFunc) *dispatch.GlobalOption {
	return &dispatch.GlobalOption{
		Long:        "validate",
		Description: "Run extra checks before the command",
		Handler: dispatch.FlagFuncs{
			Pre: func(ctx *dispatch.Context, _ dispatch.Value) error {
				// binding errors are reported by the engine
				if ctx.BindError() != nil {
					return nil
				}
				id := ctx.Command().ID
				check, ok := validators[id]
				if !ok {
					return nil
				}
				if err := check(ctx.Call()); err != nil {
					var cmdErr *dispatch.CommandError
					if errors.As(err, &cmdErr) {
						return cmdErr
					}
					return dispatch.NewError(dispatch.ErrorTypeValidation, "validation of '%s' failed", id).
						WithCommand(id).
						WithCause(err)
				}
				return nil
			},
		},
	}
}
