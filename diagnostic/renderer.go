// Copyright © 2024 The gmlfmt authors

package diagnostic

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// tabStop is the display width of a tab in source excerpts.
const tabStop = 4

// Renderer writes diagnostics as annotated source excerpts:
//
//	error: expected ')', found '{'
//	  --> scr_move.gml:1:7
//	   |
//	 1 |  if (x { }
//	   |        ^ unexpected token
//	   |
//	   = note: ...
type Renderer struct {
	// Color controls ANSI color output. Default is ColorAuto.
	Color ColorMode

	// Width wraps notes to the given number of columns.  Zero disables
	// wrapping.
	Width int

	// SourceReader returns the contents of a file named by a span.  Nil
	// means os.ReadFile.
	SourceReader func(string) ([]byte, error)
}

// Render writes d to w.  The diagnostic is assembled in memory and written
// with a single call.
func (r *Renderer) Render(w io.Writer, d Diagnostic) error {
	var out strings.Builder
	p := choosePalette(r.Color, terminalOf(w))

	out.WriteString(p.paint(severityColor(d.Severity, p)+p.bold, d.Severity.String()))
	out.WriteString(": ")
	out.WriteString(p.paint(p.bold, d.Message))
	out.WriteString("\n")
	for _, span := range d.Spans {
		r.excerpt(&out, span, p)
	}
	for _, note := range d.Notes {
		out.WriteString(r.note(note, p))
	}

	_, err := io.WriteString(w, out.String())
	return err
}

// RenderAll writes diags to w with a blank line between them.
func (r *Renderer) RenderAll(w io.Writer, diags []Diagnostic) error {
	for i, d := range diags {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Render(w, d); err != nil {
			return err
		}
	}
	return nil
}

func severityColor(s Severity, p palette) string {
	switch s {
	case SeverityError:
		return p.boldRed
	case SeverityWarning:
		return p.yellow
	default:
		return p.boldCyan
	}
}

// note returns the "= note:" line for text.  Wrapped lines line up with
// the start of the text.
func (r *Renderer) note(text string, p palette) string {
	const lead = "   = note: "
	if r.Width > len(lead) {
		first, rest, _ := strings.Cut(wordwrap.String(text, r.Width-len(lead)), "\n")
		text = first
		if rest != "" {
			text += "\n" + indent.String(rest, uint(len(lead)))
		}
	}
	return "   " + p.paint(p.boldCyan, "=") + " note: " + text + "\n"
}

// excerpt writes the location of span followed, when the file can be read,
// by the source line with the span underlined.
func (r *Renderer) excerpt(out *strings.Builder, span Span, p palette) {
	fmt.Fprintf(out, "  %s %s\n", p.paint(p.boldBlue, "-->"), location(span))

	text, ok := r.sourceLine(span.File, span.Line)
	if !ok {
		fmt.Fprintf(out, "   %s\n", p.paint(p.boldBlue, "|"))
		return
	}

	number := strconv.Itoa(span.Line)
	gutter := p.paint(p.boldBlue, strings.Repeat(" ", len(number))+" |")
	pad, width := underline(text, span.Col, span.EndCol)

	fmt.Fprintf(out, " %s\n", gutter)
	fmt.Fprintf(out, " %s  %s\n", p.paint(p.boldBlue, number+" |"), strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabStop)))
	marks := p.paint(p.boldRed, strings.Repeat("^", width))
	if span.Label != "" {
		marks += " " + p.paint(p.boldRed, span.Label)
	}
	fmt.Fprintf(out, " %s  %s%s\n", gutter, strings.Repeat(" ", pad), marks)
	fmt.Fprintf(out, " %s\n", gutter)
}

// location returns "file:line:col", leaving out parts which are unknown.
func location(span Span) string {
	switch {
	case span.Line <= 0:
		return span.File
	case span.Col <= 0:
		return fmt.Sprintf("%s:%d", span.File, span.Line)
	}
	return fmt.Sprintf("%s:%d:%d", span.File, span.Line, span.Col)
}

// sourceLine returns line n of file without its line terminator.
func (r *Renderer) sourceLine(file string, n int) (string, bool) {
	if n <= 0 || file == "" {
		return "", false
	}
	read := r.SourceReader
	if read == nil {
		read = os.ReadFile
	}
	data, err := read(file)
	if err != nil {
		return "", false
	}
	lines := strings.Split(string(data), "\n")
	if n > len(lines) || n == len(lines) && lines[n-1] == "" {
		return "", false
	}
	return strings.TrimSuffix(lines[n-1], "\r"), true
}

// underline returns the display offset and width of the carets marking
// byte columns col through endCol of text.  Without an end column the
// carets cover the GML token starting at col.
func underline(text string, col, endCol int) (pad, width int) {
	if col <= 0 {
		col = 1
	}
	start := min(col-1, len(text))
	end := start
	switch {
	case endCol >= col:
		end = min(endCol, len(text))
	case start < len(text):
		end = start + tokenLength(text[start:])
	}
	return displayWidth(text[:start]), max(displayWidth(text[start:end]), 1)
}

// tokenLength returns the byte length of the identifier, number or string
// literal at the start of s, or of its first rune.
func tokenLength(s string) int {
	first, size := utf8.DecodeRuneInString(s)
	switch {
	case first == '"':
		if end := strings.IndexByte(s[1:], '"'); end >= 0 {
			return end + 2
		}
		return len(s)
	case isWordRune(first):
		n := size
		for n < len(s) {
			c, size := utf8.DecodeRuneInString(s[n:])
			if !isWordRune(c) {
				break
			}
			n += size
		}
		return n
	}
	return size
}

func isWordRune(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

// displayWidth returns the number of terminal cells s occupies.
func displayWidth(s string) int {
	w := 0
	for _, c := range s {
		if c == '\t' {
			w += tabStop
			continue
		}
		w += runewidth.RuneWidth(c)
	}
	return w
}

// terminalOf returns the file behind w, if any, for color detection.
func terminalOf(w io.Writer) *os.File {
	f, _ := w.(*os.File)
	return f
}
