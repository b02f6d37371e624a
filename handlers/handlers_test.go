package handlers

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dzonerzy/go-dispatch/dispatch"
)

func newEngine(t *testing.T, runs *int, options ...*dispatch.GlobalOption) *dispatch.Engine {
	t.Helper()
	e := dispatch.New()
	e.Command("greet", "Greets someone").
		StringOption("name", "who to greet").Back().
		IntOption("times", "repetitions").Default(1).Back().
		Action(func(c *dispatch.Call) (any, error) {
			*runs++
			return strings.Repeat("hi "+c.String("name")+" ", c.Int("times")), nil
		}).
		MustRegister()
	require.NoError(t, Register(e, options...))
	return e
}

func requireType(t *testing.T, err error, typ dispatch.ErrorType) {
	t.Helper()
	var cmdErr *dispatch.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, typ, cmdErr.Type)
}

func TestHelp(t *testing.T) {
	var runs int
	e := newEngine(t, &runs, Help())

	for _, args := range [][]string{{"greet", "--help"}, {"greet", "-h"}, {"greet", "bob", "--help"}} {
		out, err := e.Output(args...)
		require.NoError(t, err, args)
		assert.Equal(t, "greet <name:string> [times:int=1] - Greets someone", out)
	}
	assert.Zero(t, runs)

	_, err := e.Output("greet", "--help", "false")
	requireType(t, err, dispatch.ErrorTypeMissingRequired)
}

func TestDryRun(t *testing.T) {
	var runs int
	e := newEngine(t, &runs, DryRun())

	out, err := e.Output("greet", "bob", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "name=bob\ntimes=1", out)

	res, err := e.ExecuteAndCapture("greet", "--times", "3", "--name", "amy", "--dry-run")
	require.NoError(t, err)
	kv, ok := res.Value().(dispatch.KeyValues)
	require.True(t, ok)
	times, ok := kv.Get("times")
	require.True(t, ok)
	assert.Equal(t, int64(3), times.(dispatch.Value).AsInt())

	_, err = e.Output("greet", "--dry-run")
	requireType(t, err, dispatch.ErrorTypeMissingRequired)
	assert.Zero(t, runs)
}

func TestTestValue(t *testing.T) {
	var runs int
	e := newEngine(t, &runs, TestValue([]int{1, 2}))

	out, err := e.Output("greet", "--test")
	require.NoError(t, err)
	assert.Equal(t, "1\n2", out)
	assert.Zero(t, runs)
}

func TestQuiet(t *testing.T) {
	var runs int
	e := newEngine(t, &runs, Quiet())

	res, err := e.ExecuteAndCapture("greet", "bob", "-q")
	require.NoError(t, err)
	assert.True(t, res.IsVoid())
	assert.Equal(t, 1, runs)

	res, err = e.ExecuteAndCapture("greet", "bob")
	require.NoError(t, err)
	assert.False(t, res.IsVoid())
}

func TestValidate(t *testing.T) {
	var runs int
	e := newEngine(t, &runs, Validate(map[string]ValidatorFunc{
		"greet": func(c *dispatch.Call) error {
			if c.String("name") == "nobody" {
				return errors.New("cannot greet nobody")
			}
			if c.Int("times") > 10 {
				return dispatch.NewError(dispatch.ErrorTypeInvalidValue, "too many greetings")
			}
			return nil
		},
	}))

	_, err := e.Output("greet", "nobody", "--validate")
	requireType(t, err, dispatch.ErrorTypeValidation)
	assert.Contains(t, err.Error(), "cannot greet nobody")

	_, err = e.Output("greet", "bob", "--times", "11", "--validate")
	requireType(t, err, dispatch.ErrorTypeInvalidValue)
	assert.Zero(t, runs)

	_, err = e.Output("greet", "bob", "--validate")
	require.NoError(t, err)
	_, err = e.Output("greet", "nobody")
	require.NoError(t, err, "validators only run with --validate")
	assert.Equal(t, 2, runs)

	_, err = e.Output("greet", "--validate")
	requireType(t, err, dispatch.ErrorTypeMissingRequired)
	_, err = e.Output("help", "--validate")
	require.NoError(t, err)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	e := dispatch.New()
	err := Register(e, Help(), DryRun(), Help())
	requireType(t, err, dispatch.ErrorTypeRegistration)
	assert.Len(t, e.GlobalOptions(), 2)
}

func TestHandlersCompose(t *testing.T) {
	var runs int
	e := newEngine(t, &runs, Help(), Quiet())

	res, err := e.ExecuteAndCapture("greet", "-h", "-q")
	require.NoError(t, err)
	assert.True(t, res.IsVoid(), "quiet runs after help")
	assert.Zero(t, runs)
}
