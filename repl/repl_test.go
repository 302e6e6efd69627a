// Copyright © 2024 The gmlfmt authors

package repl

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/luthersystems/gmlfmt/diagnostic"
	"github.com/luthersystems/gmlfmt/formatter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runReplWithString(t *testing.T, input string) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	inR, inW := io.Pipe()
	outR, outW := io.Pipe()

	go func() {
		defer inW.Close() //nolint:errcheck // test cleanup
		_, _ = io.WriteString(inW, input)
	}()

	go func() {
		RunRepl("gml> ", WithStdin(inR), WithStderr(outW), WithColor(diagnostic.ColorNever))
		inR.Close()  //nolint:errcheck,gosec // test cleanup
		outW.Close() //nolint:errcheck,gosec // test cleanup
	}()

	var output bytes.Buffer
	_, _ = io.Copy(&output, outR)
	outR.Close() //nolint:errcheck,gosec // test cleanup
	return output.String()
}

func TestEnsureHistoryFilePermissions_CreatesWithRestrictedMode(t *testing.T) {
	dir := t.TempDir()
	histFile := filepath.Join(dir, ".gmlfmt_history")

	ensureHistoryFilePermissions(histFile)

	info, err := os.Stat(histFile)
	require.NoError(t, err, "history file should be created")
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "new history file should have mode 0600")
}

func TestEnsureHistoryFilePermissions_RestrictsExistingFile(t *testing.T) {
	dir := t.TempDir()
	histFile := filepath.Join(dir, ".gmlfmt_history")

	err := os.WriteFile(histFile, []byte("some history"), 0644)
	require.NoError(t, err)

	ensureHistoryFilePermissions(histFile)

	info, err := os.Stat(histFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "existing history file should be restricted to 0600")

	data, err := os.ReadFile(histFile)
	require.NoError(t, err)
	assert.Equal(t, "some history", string(data))
}

func TestEnsureHistoryFilePermissions_EmptyPathNoOp(t *testing.T) {
	ensureHistoryFilePermissions("")
}

func TestRunRepl(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Simple Statement",
			input:    "x=1\n",
			expected: "x = 1;\n",
		},
		{
			name:     "Multi-line Input",
			input:    "if (a) {\nb()\n}\n",
			expected: "if (a) {\n    b();\n}\n",
		},
		{
			name:     "Syntax Error",
			input:    "x = ;\n",
			expected: "error: expected expression",
		},
		{
			name:     "Unfinished Input Is Formatted At End",
			input:    "f(1,\n2)",
			expected: "f(1, 2);\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := runReplWithString(t, tc.input)
			require.Contains(t, got, tc.expected)
		})
	}
}

func newTestSession() (*session, *bytes.Buffer) {
	var out bytes.Buffer
	s := newSession(formatter.DefaultConfig(), &out)
	s.renderer.Color = diagnostic.ColorNever
	return s, &out
}

func TestSessionFeed(t *testing.T) {
	s, out := newTestSession()

	require.NoError(t, s.feed("function f(a) {"))
	assert.True(t, s.pending())
	assert.Empty(t, out.String())
	require.NoError(t, s.feed("return a"))
	require.NoError(t, s.feed("}"))
	assert.False(t, s.pending())
	assert.Equal(t, "function f(a) {\n    return a;\n}\n", out.String())

	out.Reset()
	require.NoError(t, s.feed("x = (1 +"))
	require.NoError(t, s.feed(""))
	assert.False(t, s.pending())
	assert.Contains(t, out.String(), "error:")
	assert.Contains(t, out.String(), "<stdin>:")
}

func TestSessionCommands(t *testing.T) {
	s, out := newTestSession()

	require.NoError(t, s.feed(":width 20"))
	require.NoError(t, s.feed(":tabs"))
	require.NoError(t, s.feed(":braces new-line"))
	assert.Equal(t, 20, s.cfg.PrintWidth)
	assert.True(t, s.cfg.UseTabs)
	assert.Equal(t, formatter.NewLine, s.cfg.BraceStyle)

	require.NoError(t, s.feed(":spaces 2"))
	assert.False(t, s.cfg.UseTabs)
	assert.Equal(t, 2, s.cfg.TabWidth)

	out.Reset()
	require.NoError(t, s.feed(":config"))
	assert.Equal(t, "width 20, 2 spaces, braces new-line\n", out.String())

	out.Reset()
	require.NoError(t, s.feed(":width zero"))
	assert.Equal(t, "usage: :width N\n", out.String())

	out.Reset()
	require.NoError(t, s.feed(":braces sideways"))
	assert.Contains(t, out.String(), "unknown brace style")

	out.Reset()
	require.NoError(t, s.feed(":bogus"))
	assert.Equal(t, "unknown command :bogus (try :help)\n", out.String())

	out.Reset()
	require.NoError(t, s.feed(":doc"))
	require.NoError(t, s.feed("x = 1;"))
	assert.Contains(t, out.String(), "document tree on\n")
	assert.Contains(t, out.String(), "x = 1;\n")

	assert.Equal(t, errQuit, s.feed(":quit"))
}

func TestWithConfigCopies(t *testing.T) {
	base := formatter.DefaultConfig()
	cfg := newConfig(WithConfig(base))
	cfg.format.PrintWidth = 10
	assert.Equal(t, 80, base.PrintWidth)
}

func TestComplete(t *testing.T) {
	for src, want := range map[string]bool{
		"x = 1;\n":              true,
		"if (a) {\n":            false,
		"f(1,\n":                false,
		"a = [1,\n2]\n":         true,
		"/* open comment\n":     false,
		"s = \"unterminated":    false,
		"s = $\"{a}\";\n":       true,
		"x = 1; }\n":            true,
		"m = ds_map[? \"k\"\n":  false,
		"m = ds_map[? \"k\"]\n": true,
	} {
		assert.Equal(t, want, complete(src), "%q", src)
	}
}
