// Copyright © 2024 The gmlfmt authors

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/luthersystems/gmlfmt/docs"
	"github.com/luthersystems/gmlfmt/formatter"
	"github.com/luthersystems/gmlfmt/parser"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func testViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(keyBraceStyle, "same-line")
	v.SetDefault(keyTabWidth, 4)
	v.SetDefault(keyPrintWidth, 80)
	v.SetDefault(keyCheckRoundTrip, true)
	return v
}

func testConfig(t *testing.T) *formatter.Config {
	t.Helper()
	cfg, err := formatConfig(testViper())
	require.NoError(t, err)
	cfg.Logger = nil
	return cfg
}

func TestFormatConfig(t *testing.T) {
	v := testViper()
	v.Set(keyBraceStyle, "allman")
	v.Set(keyUseTabs, true)
	v.Set(keyTabWidth, 2)
	v.Set(keyPrintWidth, 100)
	v.Set(keyCheckRoundTrip, false)
	cfg, err := formatConfig(v)
	require.NoError(t, err)
	assert.Equal(t, formatter.NewLine, cfg.BraceStyle)
	assert.True(t, cfg.UseTabs)
	assert.Equal(t, 2, cfg.TabWidth)
	assert.Equal(t, 100, cfg.PrintWidth)
	assert.False(t, cfg.CheckRoundTrip)

	v.Set(keyBraceStyle, "sideways")
	_, err = formatConfig(v)
	assert.EqualError(t, err, `unknown brace style "sideways"`)

	v = testViper()
	v.Set(keyPrintWidth, 0)
	_, err = formatConfig(v)
	assert.EqualError(t, err, "print_width must be positive, got 0")
}

func TestFormatConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gmlfmt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("print_width: 60\nuse_tabs: true\nbrace_style: new-line\n"), 0o600))

	v := testViper()
	v.SetConfigFile(path)
	require.NoError(t, v.MergeInConfig())
	cfg, err := formatConfig(v)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.PrintWidth)
	assert.True(t, cfg.UseTabs)
	assert.Equal(t, formatter.NewLine, cfg.BraceStyle)
	assert.Equal(t, 4, cfg.TabWidth)
}

func TestConfigureLogging(t *testing.T) {
	log := logrus.New()
	viper.Set(keyVerbose, true)
	t.Cleanup(func() { viper.Set(keyVerbose, false) })
	configureLogging(log)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	viper.Set(keyVerbose, false)
	configureLogging(log)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
}

func TestFmtStdin(t *testing.T) {
	var out, errOut bytes.Buffer
	err := fmtStdin(context.Background(), strings.NewReader("x=1"), &out, &errOut, testConfig(t))
	require.NoError(t, err)
	assert.Equal(t, "x = 1;\n", out.String())

	out.Reset()
	err = fmtStdin(context.Background(), strings.NewReader("if (x {"), &out, &errOut, testConfig(t))
	assert.ErrorIs(t, err, errSilent)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "error: expected ')', found '{'")
	assert.Contains(t, errOut.String(), "<stdin>:1:7")
	assert.Contains(t, errOut.String(), "if (x {")
}

func TestFmtFiles(t *testing.T) {
	dir := t.TempDir()
	messy := filepath.Join(dir, "messy.gml")
	clean := filepath.Join(dir, "clean.gml")
	broken := filepath.Join(dir, "broken.gml")
	writeFiles(t, dir, map[string]string{
		"messy.gml":  "x=1\n",
		"clean.gml":  "y = 2;\n",
		"broken.gml": "if (x {\n",
	})
	cfg := testConfig(t)

	t.Run("print", func(t *testing.T) {
		var out, errOut bytes.Buffer
		o := &fmtOptions{}
		require.NoError(t, o.run(context.Background(), &out, &errOut, []string{messy, clean}, cfg))
		assert.Equal(t, "x = 1;\ny = 2;\n", out.String())
	})

	t.Run("list", func(t *testing.T) {
		var out, errOut bytes.Buffer
		o := &fmtOptions{list: true}
		err := o.run(context.Background(), &out, &errOut, []string{messy, clean}, cfg)
		var exit *exitError
		require.True(t, errors.As(err, &exit))
		assert.Equal(t, 1, exit.code)
		assert.Equal(t, messy+"\n", out.String())

		out.Reset()
		assert.NoError(t, o.run(context.Background(), &out, &errOut, []string{clean}, cfg))
		assert.Empty(t, out.String())
	})

	t.Run("diff", func(t *testing.T) {
		var out, errOut bytes.Buffer
		o := &fmtOptions{diff: true}
		require.NoError(t, o.run(context.Background(), &out, &errOut, []string{messy, clean}, cfg))
		assert.Contains(t, out.String(), "--- a/"+messy)
		assert.Contains(t, out.String(), "+++ b/"+messy)
		assert.Contains(t, out.String(), "-x=1\n+x = 1;\n")
		assert.NotContains(t, out.String(), clean)
	})

	t.Run("errors continue", func(t *testing.T) {
		var out, errOut bytes.Buffer
		o := &fmtOptions{}
		err := o.run(context.Background(), &out, &errOut, []string{broken, clean}, cfg)
		assert.ErrorIs(t, err, errSilent)
		assert.Equal(t, "y = 2;\n", out.String())
		assert.Contains(t, errOut.String(), broken+":1:7")
	})

	t.Run("write", func(t *testing.T) {
		var out, errOut bytes.Buffer
		o := &fmtOptions{write: true}
		require.NoError(t, o.run(context.Background(), &out, &errOut, []string{messy, clean}, cfg))
		assert.Empty(t, out.String())
		data, err := os.ReadFile(messy)
		require.NoError(t, err)
		assert.Equal(t, "x = 1;\n", string(data))
	})
}

func TestUnifiedDiff(t *testing.T) {
	diff, err := unifiedDiff("obj.gml", []byte("a=1\nb = 2;\n"), []byte("a = 1;\nb = 2;\n"))
	require.NoError(t, err)
	assert.Equal(t, "--- a/obj.gml\n+++ b/obj.gml\n@@ -1,2 +1,2 @@\n-a=1\n+a = 1;\n b = 2;\n", diff)
}

func TestCheckSource(t *testing.T) {
	cfg := testConfig(t)

	assert.Empty(t, checkSource(context.Background(), "ok.gml", []byte("x = 1;\n"), cfg))

	problems := checkSource(context.Background(), "messy.gml", []byte("x=1"), cfg)
	require.Len(t, problems, 1)
	assert.Equal(t, "warning", problems[0].Severity)
	assert.Equal(t, "file is not formatted", problems[0].Message)

	problems = checkSource(context.Background(), "broken.gml", []byte("x = ;"), cfg)
	require.Len(t, problems, 1)
	assert.Equal(t, "error", problems[0].Severity)
	assert.Equal(t, 1, problems[0].Line)
	assert.Equal(t, 5, problems[0].Col)

	var buf bytes.Buffer
	require.NoError(t, formatJSON(&buf, problems))
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "broken.gml", decoded[0]["file"])
	assert.Equal(t, float64(5), decoded[0]["col"])
	assert.NotContains(t, decoded[0], "src")

	buf.Reset()
	renderProblems(&buf, problems)
	assert.Contains(t, buf.String(), "broken.gml:1:5")
	assert.Contains(t, buf.String(), "x = ;")
}

func TestDumpTokens(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dumpTokens(&buf, "t.gml", []byte("x = 1;")))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "1:1\t"), lines[0])
	assert.Contains(t, lines[0], `"x"`)
	assert.Equal(t, "1:7\tEOF", lines[len(lines)-1])

	buf.Reset()
	assert.Error(t, dumpTokens(&buf, "t.gml", []byte(`s = "open`)))
}

func TestLogExporter(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(&logExporter{log: log}))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	cfg := testConfig(t)
	cfg.TracerProvider = tp
	_, err := formatter.FormatContext(context.Background(), []byte("x=1"), "obj.gml", cfg)
	require.NoError(t, err)

	var spans []string
	for _, entry := range hook.AllEntries() {
		assert.Equal(t, "trace", entry.Message)
		spans = append(spans, entry.Data["span"].(string))
	}
	assert.Contains(t, spans, "parse")
	assert.Contains(t, spans, "format")
}

func TestDumpTree(t *testing.T) {
	root, err := parser.ParseFile("t.gml", []byte("x = 1; // one\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, dumpTree(&buf, root))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "Document [0,"), lines[0])
	assert.Contains(t, buf.String(), "Identifier")
	assert.Contains(t, buf.String(), ` x`)
	assert.Contains(t, buf.String(), `# trailing end-of-line "// one"`)
}

func TestPrintStyle(t *testing.T) {
	guide := "# title\n\nintro\n\n## Braces\n\nopen on the same line\n\n## Lists\n\none per line\n"

	var buf bytes.Buffer
	require.NoError(t, printStyle(&buf, guide, "", 0))
	assert.Equal(t, guide, buf.String())

	buf.Reset()
	require.NoError(t, printStyle(&buf, guide, "braces", 0))
	assert.Equal(t, "## Braces\n\nopen on the same line\n", buf.String())

	buf.Reset()
	require.NoError(t, printStyle(&buf, guide, "lists", 8))
	assert.Equal(t, "## Lists\n\none per\nline\n", buf.String())

	err := printStyle(&buf, guide, "colours", 0)
	assert.EqualError(t, err, `no style section "colours" (sections: braces, lists)`)

	assert.NotEmpty(t, guideSections(docs.StyleGuide))
}
