package dispatch

import (
	"fmt"
	"strings"

	"github.com/dzonerzy/go-dispatch/internal/fuzzy"
)

// ErrorType represents error categories for dispatch operations.
// These categories drive suggestion logic and exit-code mapping (via ExitCodeManager).
type ErrorType string

const (
	ErrorTypeNoCommand         ErrorType = "no_command"
	ErrorTypeUnknownCommand    ErrorType = "unknown_command"
	ErrorTypeUnknownArgument   ErrorType = "unknown_argument"
	ErrorTypeMissingRequired   ErrorType = "missing_required"
	ErrorTypeMissingValue      ErrorType = "missing_value"
	ErrorTypeAmbiguousArgument ErrorType = "ambiguous_argument"
	ErrorTypeDuplicateArgument ErrorType = "duplicate_argument"
	ErrorTypeInvalidValue      ErrorType = "invalid_value"
	ErrorTypeValidation        ErrorType = "validation"
	ErrorTypeRegistration      ErrorType = "registration"
	ErrorTypeFormat            ErrorType = "format"
	ErrorTypeInternal          ErrorType = "internal_error"
)

// CommandError is returned by every stage of an invocation: parsing,
// resolution, binding, formatting and registration.
type CommandError struct {
	Type        ErrorType
	Message     string
	Command     string   // command id, when known
	Arguments   []string // offending argument targets, e.g. "--foo" or "#1"
	Suggestions []string
	Cause       error
}

func (e *CommandError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause (e.g. a *ConversionError)
func (e *CommandError) Unwrap() error { return e.Cause }

// Error builders for fluent API

// NewError creates a new CommandError with the given type and message
func NewError(typ ErrorType, format string, args ...any) *CommandError {
	return &CommandError{
		Type:    typ,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithCommand records the command id the error belongs to
func (e *CommandError) WithCommand(id string) *CommandError {
	e.Command = id
	return e
}

// WithArguments records the offending argument targets
func (e *CommandError) WithArguments(targets ...string) *CommandError {
	e.Arguments = append(e.Arguments, targets...)
	return e
}

// WithSuggestion adds a suggestion to the error
func (e *CommandError) WithSuggestion(suggestion string) *CommandError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithCause adds an underlying cause to the error
func (e *CommandError) WithCause(cause error) *CommandError {
	e.Cause = cause
	return e
}

// Describe renders the error followed by its suggestions, one per line.
func (e *CommandError) Describe() string {
	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(e.Error())
	for _, s := range e.Suggestions {
		b.WriteString("\n  ")
		b.WriteString(s)
	}
	return b.String()
}

// RecoveryError represents a panic recovered from a command action
type RecoveryError struct {
	Panic   any
	Command string
	Stack   []byte
}

func (e *RecoveryError) Error() string {
	return fmt.Sprintf("command '%s' panicked: %v", e.Command, e.Panic)
}

// suggester adds fuzzy "did you mean" hints to unknown-command and
// unknown-argument errors. A zero maxDistance disables suggestions.
type suggester struct {
	maxDistance int
}

func (s suggester) command(err *CommandError, input string, candidates []string) {
	if s.maxDistance <= 0 {
		return
	}
	if best := fuzzy.FindBest(input, candidates, s.maxDistance); best != "" {
		err.Suggestions = append(err.Suggestions, fmt.Sprintf("Did you mean '%s'?", best))
	}
}

func (s suggester) argument(err *CommandError, input string, candidates []string) {
	if s.maxDistance <= 0 {
		return
	}
	if best := fuzzy.FindBest(input, candidates, s.maxDistance); best != "" {
		err.Suggestions = append(err.Suggestions, fmt.Sprintf("Did you mean '--%s'?", best))
	}
}
