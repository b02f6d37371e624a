package dispatch

import (
	"context"
	"runtime/debug"
	"time"
)

// Execute runs one invocation and returns the raw command value; void
// commands return Void.
func (e *Engine) Execute(args ...string) (any, error) {
	res, err := e.ExecuteContext(context.Background(), args)
	if err != nil {
		return nil, err
	}
	return res.Value(), nil
}

// ExecuteAndCapture runs one invocation and returns its Result.
func (e *Engine) ExecuteAndCapture(args ...string) (*Result, error) {
	return e.ExecuteContext(context.Background(), args)
}

// ExecuteLine splits a command line and executes it
func (e *Engine) ExecuteLine(ctx context.Context, line string) (*Result, error) {
	return e.ExecuteContext(ctx, Split(line))
}

// Output runs one invocation and formats its result.
func (e *Engine) Output(args ...string) (string, error) {
	res, err := e.ExecuteContext(context.Background(), args)
	if err != nil {
		return "", err
	}
	return res.Format()
}

// AsyncResult is delivered by RunAsync once the invocation finishes
type AsyncResult struct {
	Result *Result
	Err    error
}

// RunAsync runs one invocation on its own goroutine. The channel receives
// exactly one AsyncResult and is then closed. The engine should be sealed.
func (e *Engine) RunAsync(ctx context.Context, args ...string) <-chan AsyncResult {
	ch := make(chan AsyncResult, 1)
	go func() {
		defer close(ch)
		res, err := e.ExecuteContext(ctx, args)
		ch <- AsyncResult{Result: res, Err: err}
	}()
	return ch
}

// ExecuteContext runs one invocation: resolve the command, parse its
// arguments, extract global options, bind, run PreCommand hooks, invoke the
// action unless prevented, then run OnReturned and PostCommand hooks.
func (e *Engine) ExecuteContext(ctx context.Context, args []string) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cmd, rest, rerr := e.resolve(args)
	if rerr != nil {
		return nil, rerr
	}
	e.logger.Debug("dispatching %q with %d argument tokens", cmd.ID, len(rest))

	parsed, err := Parse(append([]string{cmd.ID}, rest...))
	if err != nil {
		return nil, err
	}

	remaining, matched, gerr := e.extractGlobals(parsed)
	if gerr != nil {
		return nil, gerr.WithCommand(cmd.ID)
	}

	call, bindErr := conform(remaining, cmd.Options, e.suggest)
	if call != nil {
		call.ctx = ctx
		call.command = cmd
	}

	hctx := &Context{
		ctx:     ctx,
		engine:  e,
		command: cmd,
		args:    remaining,
		call:    call,
		bindErr: bindErr,
		flags:   make(map[string]Value, len(matched)),
		started: time.Now(),
	}
	for _, inv := range matched {
		hctx.flags[inv.option.Long] = inv.value
	}

	for _, inv := range matched {
		if err := inv.option.Handler.PreCommand(hctx, inv.value); err != nil {
			return nil, err
		}
	}

	result := VoidResult()
	if !hctx.prevented {
		if bindErr != nil {
			return nil, bindErr
		}
		result, err = e.invoke(cmd, call)
		if err != nil {
			return nil, err
		}
	} else {
		e.logger.Debug("execution of %q prevented by a global option", cmd.ID)
	}

	if hctx.suppressed {
		return result, nil
	}
	for _, inv := range matched {
		result, err = inv.option.Handler.OnReturned(hctx, inv.value, result)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = VoidResult()
		}
	}
	for _, inv := range matched {
		if err := inv.option.Handler.PostCommand(hctx, inv.value); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (e *Engine) invoke(cmd *CommandInfo, call *Call) (res *Result, err error) {
	if e.recovery {
		defer func() {
			if r := recover(); r != nil {
				res = nil
				err = &RecoveryError{Panic: r, Command: cmd.ID, Stack: debug.Stack()}
			}
		}()
	}

	value, err := cmd.action(call)
	if err != nil {
		return nil, err
	}
	if cmd.void {
		return VoidResult(), nil
	}
	return NewResult(value), nil
}
