package log

import (
	"time"

	"github.com/dzonerzy/go-dispatch/dispatch"
)

// VerboseOption returns the --verbose/-v global option. A command run with it
// has its dispatch traced at debug level through a per-invocation logger; the
// shared level is left untouched.
func (l *Logger) VerboseOption() *dispatch.GlobalOption {
	return &dispatch.GlobalOption{
		Long:        "verbose",
		Short:       "v",
		Description: "Log dispatch details",
		Handler:     verbose{log: l.Debugging()},
	}
}

type verbose struct {
	log *Logger
}

func (v verbose) PreCommand(ctx *dispatch.Context, _ dispatch.Value) error {
	args := ctx.Arguments()
	v.log.Debug("dispatching %q with %d arguments", ctx.Command().ID, len(args.Arguments))
	if err := ctx.BindError(); err != nil {
		v.log.Debug("binding failed: %v", err)
	}
	return nil
}

func (v verbose) OnReturned(ctx *dispatch.Context, _ dispatch.Value, res *dispatch.Result) (*dispatch.Result, error) {
	switch {
	case ctx.ExecutionPrevented():
		v.log.Debug("%q was not executed", ctx.Command().ID)
	case res.IsVoid():
		v.log.Debug("%q returned no result", ctx.Command().ID)
	default:
		v.log.Debug("%q returned %T", ctx.Command().ID, res.Value())
	}
	return res, nil
}

func (v verbose) PostCommand(ctx *dispatch.Context, _ dispatch.Value) error {
	v.log.Debug("%q finished in %s", ctx.Command().ID, time.Since(ctx.Started()).Round(time.Microsecond))
	return nil
}
