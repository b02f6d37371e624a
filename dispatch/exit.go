package dispatch

import (
	"errors"
	"reflect"
)

// ExitError is a sentinel used to request a specific exit code from inside actions.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit"
}

// Unwrap returns the wrapped error
func (e *ExitError) Unwrap() error { return e.Err }

// ExitCodeDefaults holds common default codes.
type ExitCodeDefaults struct {
	Success         int // default: 0
	GeneralError    int // default: 1
	MisusageError   int // default: 2
	ValidationError int // default: 3
	NotFoundError   int // default: 127
}

func defaultExitDefaults() ExitCodeDefaults {
	return ExitCodeDefaults{Success: 0, GeneralError: 1, MisusageError: 2, ValidationError: 3, NotFoundError: 127}
}

// ExitCodeManager maps errors and categories to process exit codes.
type ExitCodeManager struct {
	codesByType  map[reflect.Type]int
	codesByError map[ErrorType]int
	defaults     ExitCodeDefaults
}

// NewExitCodeManager returns a manager prewired for dispatch error types
func NewExitCodeManager() *ExitCodeManager {
	m := &ExitCodeManager{
		codesByType:  make(map[reflect.Type]int),
		codesByError: make(map[ErrorType]int),
		defaults:     defaultExitDefaults(),
	}
	m.prewire()
	return m
}

func (m *ExitCodeManager) prewire() {
	for _, typ := range []ErrorType{
		ErrorTypeNoCommand,
		ErrorTypeUnknownArgument,
		ErrorTypeMissingRequired,
		ErrorTypeMissingValue,
		ErrorTypeAmbiguousArgument,
		ErrorTypeDuplicateArgument,
		ErrorTypeInvalidValue,
	} {
		m.codesByError[typ] = m.defaults.MisusageError
	}
	m.codesByError[ErrorTypeValidation] = m.defaults.ValidationError
	m.codesByError[ErrorTypeUnknownCommand] = m.defaults.NotFoundError
	m.codesByType[reflect.TypeOf(&RecoveryError{})] = m.defaults.GeneralError
}

// DefineError maps a concrete error value (by its dynamic type) to an exit
// code. A matching type takes precedence over the defaults but not over an
// explicit ExitError.
func (m *ExitCodeManager) DefineError(err error, code int) *ExitCodeManager {
	if err == nil {
		return m
	}
	m.codesByType[reflect.TypeOf(err)] = code
	return m
}

// DefineType overrides the exit code used for a CommandError category.
func (m *ExitCodeManager) DefineType(typ ErrorType, code int) *ExitCodeManager {
	m.codesByError[typ] = code
	return m
}

// Default replaces the manager's default codes and rewires the categories.
func (m *ExitCodeManager) Default(d ExitCodeDefaults) *ExitCodeManager {
	m.defaults = d
	m.prewire()
	return m
}

// Resolve converts an error to an exit code according to registered mappings.
// Precedence:
//  1. ExitError (requested code)
//  2. CommandError category mapping (DefineType)
//  3. Concrete error type mapping (DefineError)
//  4. Default codes
func (m *ExitCodeManager) Resolve(err error) int {
	if err == nil {
		return m.defaults.Success
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		if code, ok := m.codesByError[cmdErr.Type]; ok {
			return code
		}
		return m.defaults.GeneralError
	}

	for t, code := range m.codesByType {
		if errors.As(err, reflect.New(t).Interface()) {
			return code
		}
	}

	return m.defaults.GeneralError
}
