//nolint:testpackage // using package name 'dispatch' to access unexported fields for testing
package dispatch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(name string, values ...string) Argument {
	return Argument{Target: NamedTarget(name, false), Values: values}
}

func short(name string, values ...string) Argument {
	return Argument{Target: NamedTarget(name, true), Values: values}
}

func implicit(name string) Argument {
	return Argument{Target: NamedTarget(name, false), Values: []string{"true"}, Implicit: true}
}

func positional(i int, value string) Argument {
	return Argument{Target: PositionalTarget(i), Values: []string{value}}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   []Argument
	}{
		{
			name:   "command only",
			tokens: []string{"void"},
			want:   []Argument{},
		},
		{
			name:   "positional then implicit flag",
			tokens: []string{"print", "hello", "--upper-case"},
			want:   []Argument{positional(0, "hello"), implicit("upper-case")},
		},
		{
			name:   "named collects values until the next name",
			tokens: []string{"cmd", "--a", "1", "2", "-b", "x"},
			want:   []Argument{named("a", "1", "2"), short("b", "x")},
		},
		{
			name:   "named arguments take no position",
			tokens: []string{"cmd", "a", "--f", "b", "c"},
			want:   []Argument{positional(0, "a"), named("f", "b", "c")},
		},
		{
			name:   "equals form",
			tokens: []string{"cmd", "--name=value", "--empty="},
			want:   []Argument{named("name", "value"), named("empty", "")},
		},
		{
			name:   "double dash ends named options",
			tokens: []string{"cmd", "--f", "x", "--", "--y", "z"},
			want:   []Argument{named("f", "x"), positional(0, "--y"), positional(1, "z")},
		},
		{
			name:   "single dash is a value",
			tokens: []string{"cmd", "-", "--in", "-"},
			want:   []Argument{positional(0, "-"), named("in", "-")},
		},
		{
			name:   "negative numbers open names",
			tokens: []string{"cmd", "-5"},
			want:   []Argument{{Target: NamedTarget("5", true), Values: []string{"true"}, Implicit: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Parse(tt.tokens)
			require.NoError(t, err)
			assert.Equal(t, tt.tokens[0], info.Command)
			assert.Equal(t, tt.want, info.Arguments)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(nil)
	require.Error(t, err)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, ErrorTypeNoCommand, cmdErr.Type)
}

func TestParseCommandMayStartWithDash(t *testing.T) {
	info, err := Parse([]string{"--void", "x"})
	require.NoError(t, err)
	assert.Equal(t, "--void", info.Command)
	assert.Equal(t, []Argument{positional(0, "x")}, info.Arguments)
}

func TestArgumentTargetString(t *testing.T) {
	assert.Equal(t, "--name", NamedTarget("name", false).String())
	assert.Equal(t, "-n", NamedTarget("n", true).String())
	assert.Equal(t, "#2", PositionalTarget(2).String())
	assert.False(t, PositionalTarget(0).IsNamed())
	assert.Equal(t, -1, NamedTarget("x", false).Index())
}
