// Copyright © 2024 The gmlfmt authors

package formatter

import (
	"sort"
	"strings"
	"testing"

	"github.com/luthersystems/gmlfmt/parser/lexer"
	"github.com/luthersystems/gmlfmt/parser/token"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

// commentTexts returns the sorted text of every comment token in src.
func commentTexts(src []byte) []string {
	lex := lexer.New(token.NewScanner("test", normalizeNewlines(src)))
	var texts []string
	for {
		tok := lex.ReadToken()
		if tok.Type == token.EOF || tok.Type == token.ERROR || tok.Type == token.INVALID {
			break
		}
		if tok.Type.IsComment() {
			texts = append(texts, tok.Text)
		}
	}
	sort.Strings(texts)
	return texts
}

// longLines returns the lines of out wider than cfg.PrintWidth.
func longLines(out []byte, cfg *Config) []string {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg = cfg.normalize()
	tab := strings.Repeat(" ", cfg.TabWidth)
	var long []string
	for _, line := range strings.Split(string(out), "\n") {
		if runewidth.StringWidth(strings.ReplaceAll(line, "\t", tab)) > cfg.PrintWidth {
			long = append(long, line)
		}
	}
	return long
}

// assertLayoutProperties checks that formatting input into output kept
// every comment exactly once and stayed within the print width.  Source
// printed verbatim under an ignore marker is exempt from the width check.
func assertLayoutProperties(t testing.TB, cfg *Config, input, output []byte) {
	t.Helper()
	assert.Equal(t, commentTexts(input), commentTexts(output), "comments changed")
	if !strings.Contains(string(input), ignoreMarker) {
		assert.Empty(t, longLines(output, cfg), "lines wider than the print width")
	}
}

func TestCommentTexts(t *testing.T) {
	src := []byte("// b\nx = /* a */ 1; // b\r\n")
	assert.Equal(t, []string{"/* a */", "// b", "// b"}, commentTexts(src))
	assert.Empty(t, commentTexts([]byte("x = 1;")))
}

func TestLongLines(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PrintWidth = 8
	cfg.UseTabs = true
	cfg.TabWidth = 4
	out := []byte("x = 1;\n\tfoo();\n12345678\n123456789\n")
	assert.Equal(t, []string{"\tfoo();", "123456789"}, longLines(out, cfg))
}

type failureRecorder struct {
	testing.TB
	failures int
}

func (r *failureRecorder) Errorf(string, ...any) { r.failures++ }

func TestLayoutPropertiesDetectDuplicates(t *testing.T) {
	rec := &failureRecorder{TB: t}
	assertLayoutProperties(rec, nil, []byte("x = 1; // c\n"), []byte("// c\nx = 1; // c\n"))
	assert.Equal(t, 1, rec.failures)

	rec = &failureRecorder{TB: t}
	assertLayoutProperties(rec, width(10), []byte("x = 1;"), []byte("xxxxx = 12345;\n"))
	assert.Equal(t, 1, rec.failures)
}
