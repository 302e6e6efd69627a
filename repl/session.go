// Copyright © 2024 The gmlfmt authors

package repl

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/luthersystems/gmlfmt/diagnostic"
	"github.com/luthersystems/gmlfmt/doc"
	"github.com/luthersystems/gmlfmt/formatter"
	"github.com/luthersystems/gmlfmt/parser/lexer"
	"github.com/luthersystems/gmlfmt/parser/token"
)

var errQuit = errors.New("quit")

const helpText = `Type GML code to see it formatted.  Input continues while brackets are
open; an empty line formats what has been typed so far.

Commands:
  :width N             set the print width
  :tabs                indent with tabs
  :spaces [N]          indent with N spaces (default 4)
  :braces STYLE        brace style: same-line or new-line
  :doc                 toggle printing the document tree
  :config              show the current configuration
  :help                show this help
  :quit                leave the REPL
`

// commands lists the REPL commands for completion.
var commands = []string{":width", ":tabs", ":spaces", ":braces", ":doc", ":config", ":help", ":quit"}

// session accumulates input lines and formats each complete snippet.
type session struct {
	cfg      *formatter.Config
	out      io.Writer
	renderer *diagnostic.Renderer
	buf      strings.Builder
	showDoc  bool
	// idents holds identifiers from earlier snippets for completion.
	idents map[string]bool
}

func newSession(cfg *formatter.Config, out io.Writer) *session {
	return &session{
		cfg:      cfg,
		out:      out,
		renderer: &diagnostic.Renderer{Color: diagnostic.ColorAuto},
		idents:   make(map[string]bool),
	}
}

func (s *session) pending() bool {
	return s.buf.Len() > 0
}

func (s *session) reset() {
	s.buf.Reset()
}

// feed consumes a line of input, formatting the buffered snippet once it is
// complete.  It returns errQuit when the user asks to leave.
func (s *session) feed(line string) error {
	trimmed := strings.TrimSpace(line)
	if !s.pending() {
		if trimmed == "" {
			return nil
		}
		if strings.HasPrefix(trimmed, ":") {
			return s.command(trimmed)
		}
	}
	if trimmed == "" {
		s.flush()
		return nil
	}
	s.buf.WriteString(line)
	s.buf.WriteByte('\n')
	if complete(s.buf.String()) {
		s.flush()
	}
	return nil
}

// flush formats and clears the buffered input.
func (s *session) flush() {
	if !s.pending() {
		return
	}
	src := []byte(s.buf.String())
	s.buf.Reset()
	s.remember(src)

	if s.showDoc {
		d, err := formatter.Build(src, sourceName, s.cfg)
		if err == nil {
			fmt.Fprintln(s.out, doc.Debug(d)) //nolint:errcheck // best-effort REPL output
		}
	}
	out, err := formatter.FormatFile(src, sourceName, s.cfg)
	if err != nil {
		renderError(s.out, s.renderer, err, src)
		return
	}
	fmt.Fprint(s.out, string(out)) //nolint:errcheck // best-effort REPL output
}

func (s *session) remember(src []byte) {
	lex := lexer.New(token.NewScanner(sourceName, src))
	for {
		tok := lex.ReadToken()
		if tok.Type == token.EOF || tok.Type == token.ERROR || tok.Type == token.INVALID {
			return
		}
		if tok.Type == token.IDENT {
			s.idents[tok.Text] = true
		}
	}
}

// complete reports whether src can be formatted: every bracket is closed
// and no string or comment runs to the end of the input.
func complete(src string) bool {
	depth := 0
	lex := lexer.New(token.NewScanner(sourceName, []byte(src)))
	for {
		tok := lex.ReadToken()
		switch tok.Type {
		case token.EOF:
			return depth <= 0
		case token.ERROR, token.INVALID:
			return !strings.HasPrefix(tok.Text, "unterminated")
		case token.PAREN_L, token.BRACKET_L, token.BRACE_L, token.TEMPLATE_START,
			token.ACCESSOR_LIST, token.ACCESSOR_MAP, token.ACCESSOR_GRID, token.ACCESSOR_ARRAY, token.ACCESSOR_STRUCT:
			depth++
		case token.PAREN_R, token.BRACKET_R, token.BRACE_R, token.TEMPLATE_END:
			depth--
		}
	}
}

func (s *session) command(line string) error {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]
	switch name {
	case ":quit", ":q", ":exit":
		return errQuit
	case ":help", ":h":
		fmt.Fprint(s.out, helpText) //nolint:errcheck // best-effort REPL output
	case ":width":
		n, err := intArg(args)
		if err != nil || n <= 0 {
			s.printf("usage: :width N\n")
			return nil
		}
		s.cfg.PrintWidth = n
	case ":tabs":
		s.cfg.UseTabs = true
	case ":spaces":
		s.cfg.UseTabs = false
		if len(args) > 0 {
			n, err := intArg(args)
			if err != nil || n <= 0 {
				s.printf("usage: :spaces [N]\n")
				return nil
			}
			s.cfg.TabWidth = n
		}
	case ":braces":
		if len(args) != 1 {
			s.printf("usage: :braces same-line|new-line\n")
			return nil
		}
		style, err := formatter.ParseBraceStyle(args[0])
		if err != nil {
			s.printf("%v\n", err)
			return nil
		}
		s.cfg.BraceStyle = style
	case ":doc":
		s.showDoc = !s.showDoc
		s.printf("document tree %s\n", onOff(s.showDoc))
	case ":config":
		s.printf("width %d, %s, braces %s\n", s.cfg.PrintWidth, s.indentDescription(), s.cfg.BraceStyle)
	default:
		s.printf("unknown command %s (try :help)\n", name)
	}
	return nil
}

func (s *session) indentDescription() string {
	if s.cfg.UseTabs {
		return fmt.Sprintf("tabs (width %d)", s.cfg.TabWidth)
	}
	return fmt.Sprintf("%d spaces", s.cfg.TabWidth)
}

func (s *session) printf(format string, v ...interface{}) {
	fmt.Fprintf(s.out, format, v...) //nolint:errcheck // best-effort REPL output
}

// words returns the completion candidates starting with prefix.
func (s *session) words(prefix string) []string {
	var result []string
	if strings.HasPrefix(prefix, ":") {
		for _, c := range commands {
			if strings.HasPrefix(c, prefix) {
				result = append(result, c)
			}
		}
		return result
	}
	seen := make(map[string]bool)
	for typ := token.VAR; typ <= token.DIV_WORD; typ++ {
		word := typ.String()
		if strings.HasPrefix(word, prefix) && !seen[word] {
			seen[word] = true
			result = append(result, word)
		}
	}
	for word := range s.idents {
		if strings.HasPrefix(word, prefix) && !seen[word] {
			seen[word] = true
			result = append(result, word)
		}
	}
	sort.Strings(result)
	return result
}

func intArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errors.New("expected one argument")
	}
	return strconv.Atoi(args[0])
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
