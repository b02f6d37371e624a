package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dzonerzy/go-dispatch/dispatch"
)

const paintManifest = `
enums:
  color: [red, green, {name: light-blue, value: 5, signature: lb}]
commands:
  - id: paint
    description: Paints a wall
    aliases: [p]
    action: paint
    options:
      - {name: color, type: color, default: red}
      - {name: coats, type: int, default: 1, short: c}
      - {name: walls, type: "[]string", default: [north, south]}
  - id: touch
    action: touch
    void: true
    options:
      - {name: force, type: bool, default: false, anti: careful}
groups:
  - namespace: db
    commands:
      - id: db migrate
        action: migrate
        options:
          - {name: steps, type: int, nullable: true, default: null, env: [DB_STEPS]}
`

func paintActions(forced *bool) *Actions {
	return NewActions().
		Add("paint", func(c *dispatch.Call) (any, error) {
			return fmt.Sprintf("%s x%d on %s", c.Enum("color").Name, c.Int("coats"), strings.Join(c.Strings("walls"), "+")), nil
		}).
		AddVoid("touch", func(c *dispatch.Call) error {
			*forced = c.Bool("force")
			return nil
		}).
		Add("migrate", func(c *dispatch.Call) (any, error) {
			if c.IsNull("steps") {
				return "all", nil
			}
			return c.Int("steps"), nil
		})
}

func loadEngine(t *testing.T, src string, actions *Actions) *dispatch.Engine {
	t.Helper()
	m, err := Parse([]byte(src))
	require.NoError(t, err)
	e := dispatch.New()
	require.NoError(t, m.Apply(e, actions))
	return e
}

func requireRegistrationError(t *testing.T, err error) *dispatch.CommandError {
	t.Helper()
	var cmdErr *dispatch.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, dispatch.ErrorTypeRegistration, cmdErr.Type)
	return cmdErr
}

func TestApplyRegistersCommands(t *testing.T) {
	var forced bool
	e := loadEngine(t, paintManifest, paintActions(&forced))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"defaults", []string{"paint"}, "red x1 on north+south"},
		{"alias and positional enum signature", []string{"p", "lb", "-c", "2"}, "light-blue x2 on north+south"},
		{"array option", []string{"paint", "--walls", "east", "west"}, "red x1 on east+west"},
		{"null default", []string{"db", "migrate"}, "all"},
		{"group command", []string{"db", "migrate", "--steps", "3"}, "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := e.Output(tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	info, ok := e.Lookup("paint")
	require.True(t, ok)
	assert.Equal(t, "paint (p) [color:color=red] [coats|-c:int=1] [walls:[]string=north,south] - Paints a wall", info.Usage())
}

func TestApplyVoidAndAnti(t *testing.T) {
	var forced bool
	e := loadEngine(t, paintManifest, paintActions(&forced))

	res, err := e.ExecuteAndCapture("touch", "--force")
	require.NoError(t, err)
	assert.True(t, res.IsVoid())
	assert.True(t, forced)

	_, err = e.Execute("touch", "--careful")
	require.NoError(t, err)
	assert.False(t, forced)
}

func TestApplyEnvDefault(t *testing.T) {
	t.Setenv("DB_STEPS", "4")
	var forced bool
	e := loadEngine(t, paintManifest, paintActions(&forced))

	v, err := e.Execute("db", "migrate")
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

func TestApplyErrors(t *testing.T) {
	var forced bool
	actions := paintActions(&forced)

	tests := []struct {
		name    string
		src     string
		message string
	}{
		{"unknown action", "commands: [{id: x, action: nope}]", "unknown action 'nope'"},
		{"unknown void action", "commands: [{id: x, action: paint, void: true}]", "unknown void action 'paint'"},
		{"unknown type", "commands: [{id: x, action: paint, options: [{name: c, type: colour}]}]", "unknown type 'colour'"},
		{"nested array", "commands: [{id: x, action: paint, options: [{name: c, type: '[][]int'}]}]", "nested array type"},
		{"bad default", "commands: [{id: x, action: paint, options: [{name: n, type: int, default: abc}]}]", "default"},
		{"mapping default", "commands: [{id: x, action: paint, options: [{name: n, default: {a: 1}}]}]", "expected a scalar or a list"},
		{"empty enum", "enums: {color: []}", "enum 'color' has no members"},
		{"group outside namespace", "groups: [{namespace: db, commands: [{id: migrate, action: paint}]}]", "outside group"},
		{"duplicate command", "commands: [{id: x, action: paint}, {id: x, action: paint}]", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(tt.src))
			require.NoError(t, err)
			err = m.Apply(dispatch.New(), actions)
			cmdErr := requireRegistrationError(t, err)
			assert.Contains(t, cmdErr.Error(), tt.message)
		})
	}
}

func TestParse(t *testing.T) {
	m, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, m.Commands)

	_, err = Parse([]byte("commands: [{id: x, acton: paint}]"))
	require.Error(t, err, "unknown keys are rejected")

	m, err = Parse([]byte("enums: {level: [low, {name: high, value: 10}]}"))
	require.NoError(t, err)
	require.Len(t, m.Enums["level"], 2)
	assert.Equal(t, "low", m.Enums["level"][0].Name)
	assert.Equal(t, int64(10), *m.Enums["level"][1].Value)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.yaml")
	require.NoError(t, os.WriteFile(path, []byte(paintManifest), 0o600))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, m.Commands, 2)
	assert.Len(t, m.Groups, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestActions(t *testing.T) {
	a := NewActions().AddVoid("noop", func(*dispatch.Call) error { return nil })
	assert.Equal(t, 1, a.Len())
	assert.Panics(t, func() {
		a.Add("noop", func(*dispatch.Call) (any, error) { return nil, nil })
	})

	var nilActions *Actions
	_, ok := nilActions.action("noop")
	assert.False(t, ok)
}
