package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dispatchio "github.com/dzonerzy/go-dispatch/io"
)

type hostRun struct {
	code int
	out  string
	err  string
}

func runHost(t *testing.T, stdin string, args ...string) hostRun {
	t.Helper()
	var out, errOut bytes.Buffer
	m := dispatchio.New().WithIn(strings.NewReader(stdin)).WithOut(&out).WithErr(&errOut).NoColor()
	code := run(context.Background(), args, m)
	return hostRun{code: code, out: out.String(), err: errOut.String()}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunBuiltins(t *testing.T) {
	tests := []struct {
		name string
		args []string
		out  string
	}{
		{"echo", []string{"run", "echo", "--words", "hello", "world"}, "hello world\n"},
		{"sum", []string{"run", "sum", "--numbers", "1", "2", "3"}, "6\n"},
		{"dry run", []string{"run", "echo", "--words", "a", "b", "--dry-run"}, "words=a,b\n"},
		{"quiet", []string{"run", "echo", "--words", "a", "-q"}, ""},
		{"void", []string{"run", "sleep", "--for", "1ms"}, ""},
		{"command help", []string{"run", "sum", "--help"}, "sum <numbers:[]int> - Adds integers\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runHost(t, "", tt.args...)
			require.Equal(t, 0, res.code, res.err)
			assert.Equal(t, tt.out, res.out)
		})
	}
}

func TestRunExitCodes(t *testing.T) {
	res := runHost(t, "", "run", "ecko")
	assert.Equal(t, 127, res.code)
	assert.Contains(t, res.err, "Error: unknown command 'ecko'")
	assert.Contains(t, res.err, "Did you mean 'echo'?")

	res = runHost(t, "", "run", "sum")
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.err, "missing required parameter 'numbers'")

	res = runHost(t, "", "run", "fail", "--code", "7")
	assert.Equal(t, 7, res.code)
	assert.Equal(t, "Error: failed on request\n", res.err)

	res = runHost(t, "", "bogus")
	assert.Equal(t, 1, res.code)
}

func TestCommandsListing(t *testing.T) {
	res := runHost(t, "", "commands")
	require.Equal(t, 0, res.code, res.err)
	assert.Contains(t, res.out, "Commands:\n  help (?, h) - Lists the available commands\n  echo [words:[]string=] - Prints its arguments\n")
	assert.Contains(t, res.out, "Global options:\n  --help, -h - ")
	assert.Contains(t, res.out, "  --verbose, -v - Log dispatch details\n")
}

func TestREPL(t *testing.T) {
	input := "echo --words hi\n\nsum --numbers x\n  sum --numbers 2 3\nexit\necho --words never\n"
	res := runHost(t, input, "repl")
	require.Equal(t, 0, res.code, res.err)
	assert.Equal(t, "hi\n5\n", res.out, "no prompt without a terminal")
	assert.Contains(t, res.err, "invalid value for '--numbers'")
	assert.NotContains(t, res.out, "never")
}

func TestManifestFlag(t *testing.T) {
	path := writeFile(t, "commands.yaml", `
commands:
  - id: greet
    description: Greets
    action: echo
    options:
      - {name: words, type: "[]string", short: w}
`)
	res := runHost(t, "", "--manifest", path, "run", "greet", "-w", "hi", "there")
	require.Equal(t, 0, res.code, res.err)
	assert.Equal(t, "hi there\n", res.out)

	bad := writeFile(t, "bad.yaml", "commands: [{id: greet, action: nope}]")
	res = runHost(t, "", "--manifest", bad, "run", "echo")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.err, "unknown action 'nope'")
}

func TestConfigFile(t *testing.T) {
	path := writeFile(t, "dispatch.yaml", `
handlers: [test, quiet]
test: canned
suggestions: 0
`)
	res := runHost(t, "", "--config", path, "run", "echo", "--test")
	require.Equal(t, 0, res.code, res.err)
	assert.Equal(t, "canned\n", res.out)

	res = runHost(t, "", "--config", path, "run", "ecko")
	assert.Equal(t, 127, res.code)
	assert.NotContains(t, res.err, "Did you mean", "suggestions disabled")

	res = runHost(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "commands")
	assert.Equal(t, 1, res.code)

	unknown := writeFile(t, "unknown.yaml", "handlers: [shout]")
	res = runHost(t, "", "--config", unknown, "commands")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.err, `unknown handler "shout"`)
}

func TestLogging(t *testing.T) {
	res := runHost(t, "", "run", "echo", "--words", "x", "-v")
	require.Equal(t, 0, res.code, res.err)
	assert.Equal(t, "x\n", res.out)
	assert.Contains(t, res.err, `dispatching "echo" with 1 arguments`)

	logFile := filepath.Join(t.TempDir(), "dispatch.log")
	res = runHost(t, "", "--log-level", "debug", "--log-format", "json", "--log-file", logFile, "run", "echo")
	require.Equal(t, 0, res.code, res.err)
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `registered command \"echo\"`)

	res = runHost(t, "", "--log-level", "loud", "commands")
	assert.Equal(t, 1, res.code)

	res = runHost(t, "", "--log-format", "xml", "commands")
	assert.Equal(t, 1, res.code)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	_, err = loadConfig(writeFile(t, "broken.yaml", "handlers: {"), true)
	require.Error(t, err)
}
