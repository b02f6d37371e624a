package manifest

import (
	"fmt"

	"github.com/dzonerzy/go-dispatch/dispatch"
)

// Actions is the catalog of functions a manifest can refer to by name
type Actions struct {
	actions map[string]dispatch.Action
	voids   map[string]dispatch.VoidAction
}

// NewActions creates an empty catalog
func NewActions() *Actions {
	return &Actions{
		actions: make(map[string]dispatch.Action),
		voids:   make(map[string]dispatch.VoidAction),
	}
}

// Add registers an action returning a result. It panics on a duplicate
// name, like registering the same route twice.
func (a *Actions) Add(name string, fn dispatch.Action) *Actions {
	a.checkFree(name)
	a.actions[name] = fn
	return a
}

// AddVoid registers an action producing no result
func (a *Actions) AddVoid(name string, fn dispatch.VoidAction) *Actions {
	a.checkFree(name)
	a.voids[name] = fn
	return a
}

// Len returns the number of registered actions
func (a *Actions) Len() int { return len(a.actions) + len(a.voids) }

func (a *Actions) checkFree(name string) {
	_, taken := a.actions[name]
	_, takenVoid := a.voids[name]
	if taken || takenVoid {
		panic(fmt.Sprintf("manifest: action %q registered twice", name))
	}
}

func (a *Actions) action(name string) (dispatch.Action, bool) {
	if a == nil {
		return nil, false
	}
	fn, ok := a.actions[name]
	return fn, ok
}

func (a *Actions) void(name string) (dispatch.VoidAction, bool) {
	if a == nil {
		return nil, false
	}
	fn, ok := a.voids[name]
	return fn, ok
}
