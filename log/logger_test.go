//nolint:testpackage // using package name 'log' to access unexported fields for testing
package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dzonerzy/go-dispatch/dispatch"
)

func newBufferLogger(t *testing.T, cfg Config) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg.Output = &buf
	cfg.NoColor = true
	l, err := New(cfg)
	require.NoError(t, err)
	return l, &buf
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newBufferLogger(t, Config{Level: Warn})

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown %d", 1)
	l.Error("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN  shown 1")
	assert.Contains(t, out, "ERROR shown 2")
}

func TestNamedSharesLevelAndWriter(t *testing.T) {
	l, buf := newBufferLogger(t, Config{Name: "host", Level: Info})
	child := l.Named("engine")
	assert.Equal(t, "host/engine", child.Name())

	child.Info("ready")
	assert.Contains(t, buf.String(), "[host/engine] ready")

	child.SetLevel(Error)
	assert.Equal(t, Error, l.Level())
}

func TestJSONFormat(t *testing.T) {
	l, buf := newBufferLogger(t, Config{Name: "svc", Format: "json"})
	l.Info("hello %s", "world")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "svc", entry.Service)
	assert.Equal(t, "hello world", entry.Message)
}

func TestInvalidFormat(t *testing.T) {
	_, err := New(Config{Format: "xml"})
	require.Error(t, err)
}

func TestFileOutputIsPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dispatch.log")
	l, err := New(Config{File: path, NoTerminal: true, Rotation: &Rotation{MaxSize: 1}})
	require.NoError(t, err)

	l.Error("written to disk")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ERROR written to disk")
	assert.NotContains(t, string(data), "\x1b[", "no color codes in files")
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"debug": Debug, "INFO": Info, "warning": Warn, "Error": Error, "": Info} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestConfigFromYAML(t *testing.T) {
	var cfg Config
	err := yaml.Unmarshal([]byte("name: host\nlevel: debug\nformat: json\nrotation:\n  max_size: 10\n"), &cfg)
	require.NoError(t, err)
	assert.Equal(t, Debug, cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 10, cfg.Rotation.MaxSize)

	err = yaml.Unmarshal([]byte("level: loud\n"), &cfg)
	require.Error(t, err)
}

func TestVerboseOption(t *testing.T) {
	l, buf := newBufferLogger(t, Config{Level: Warn})

	e := dispatch.New()
	e.Command("greet", "").StringOption("name", "").Back().
		Action(func(c *dispatch.Call) (any, error) { return "hi " + c.String("name"), nil }).
		MustRegister()
	require.NoError(t, e.AddGlobalOption(l.VerboseOption()))

	out, err := e.Output("greet", "bob", "-v")
	require.NoError(t, err)
	assert.Equal(t, "hi bob", out)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `dispatching "greet" with 1 arguments`)
	assert.Contains(t, lines[1], `"greet" returned string`)
	assert.Contains(t, lines[2], `"greet" finished in`)
	assert.Equal(t, Warn, l.Level(), "level restored after the command")

	buf.Reset()
	_, err = e.Output("greet", "bob")
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestEngineLogger(t *testing.T) {
	l, buf := newBufferLogger(t, Config{Level: Debug})
	e := dispatch.New(dispatch.WithLogger(l.Named("engine")))

	_, err := e.Execute("help")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `[engine] registered command "help"`)
	assert.Contains(t, buf.String(), `dispatching "help"`)
}

func TestVerboseOptionFailureKeepsLevel(t *testing.T) {
	l, buf := newBufferLogger(t, Config{Level: Warn})

	e := dispatch.New()
	e.Command("boom", "").StringOption("name", "").Back().
		Action(func(*dispatch.Call) (any, error) { return nil, errors.New("boom") }).
		MustRegister()
	require.NoError(t, e.AddGlobalOption(l.VerboseOption()))

	_, err := e.Output("boom", "x", "-v")
	require.EqualError(t, err, "boom")
	assert.Equal(t, Warn, l.Level())

	_, err = e.Output("boom", "-v")
	require.Error(t, err)
	assert.Contains(t, buf.String(), "binding failed")
	assert.Equal(t, Warn, l.Level())

	buf.Reset()
	l.Info("quiet")
	l.Debug("quiet")
	assert.Empty(t, buf.String())
}

func TestDebuggingCopy(t *testing.T) {
	l, buf := newBufferLogger(t, Config{Name: "host", Level: Error})
	d := l.Debugging()

	d.Named("engine").Debug("traced")
	l.Debug("hidden")

	assert.Contains(t, buf.String(), "[host/engine] traced")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Equal(t, Error, l.Level())
}
