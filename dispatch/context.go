package dispatch

import (
	"context"
	"time"
)

// Context is passed to global option handlers for the lifetime of one
// invocation.
type Context struct {
	ctx      context.Context
	engine   *Engine
	command  *CommandInfo
	args     *ArgumentsInfo
	call     *Call
	bindErr  *CommandError
	flags    map[string]Value
	metadata map[string]any
	started  time.Time

	prevented  bool
	suppressed bool
}

// Context returns the underlying Go context
func (c *Context) Context() context.Context { return c.ctx }

// Engine returns the engine running the invocation
func (c *Context) Engine() *Engine { return c.engine }

// Command returns the resolved target command
func (c *Context) Command() *CommandInfo { return c.command }

// Arguments returns the parsed arguments, global options removed
func (c *Context) Arguments() *ArgumentsInfo { return c.args }

// Call returns the bound call, or nil when binding failed.
func (c *Context) Call() *Call { return c.call }

// BindError returns the binding error, if any. It is returned to the caller
// only when execution is not prevented.
func (c *Context) BindError() error {
	if c.bindErr == nil {
		return nil
	}
	return c.bindErr
}

// Flag returns the value of a global option given on this invocation, keyed
// by its long name.
func (c *Context) Flag(long string) (Value, bool) {
	v, ok := c.flags[long]
	return v, ok
}

// Started returns the time the invocation began
func (c *Context) Started() time.Time { return c.started }

// PreventExecution skips the command action. Post hooks still run.
func (c *Context) PreventExecution() { c.prevented = true }

// ExecutionPrevented reports whether a handler prevented execution
func (c *Context) ExecutionPrevented() bool { return c.prevented }

// SuppressPostHooks skips every OnReturned and PostCommand hook.
func (c *Context) SuppressPostHooks() { c.suppressed = true }

// PostHooksSuppressed reports whether post hooks are suppressed
func (c *Context) PostHooksSuppressed() bool { return c.suppressed }

// Set stores a key-value pair shared between handlers
func (c *Context) Set(key string, value any) {
	if c.metadata == nil {
		c.metadata = make(map[string]any)
	}
	c.metadata[key] = value
}

// Get retrieves a value stored with Set
func (c *Context) Get(key string) any {
	if c.metadata == nil {
		return nil
	}
	return c.metadata[key]
}
