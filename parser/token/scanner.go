// Copyright © 2024 The gmlfmt authors

package token

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Scanner facilitates construction of tokens from an in-memory source
// buffer.  Source files are small enough that the formatter always holds the
// whole text, which lets the lexer look more than one rune ahead.
type Scanner struct {
	file string
	path string
	buf  []byte

	start     int // start of the current token
	startLine int
	startCol  int

	next int // index of the rune following c
	line int // line number at next
	col  int // column number at next
	c    rune
}

// NewScanner initializes and returns a new Scanner over src.
func NewScanner(file string, src []byte) *Scanner {
	return &Scanner{
		file:      file,
		buf:       src,
		line:      1,
		col:       1,
		startLine: 1,
		startCol:  1,
	}
}

// SetPath associates a physical location (e.g. filesystem path) with s.
func (s *Scanner) SetPath(path string) {
	s.path = path
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.start = s.next
	s.startLine = s.line
	s.startCol = s.col
}

// Text returns a string containing text scanned since the last call to either
// EmitToken or Ignore.
func (s *Scanner) Text() string {
	return string(s.buf[s.start:s.next])
}

// Rune returns the last rune scanned.
func (s *Scanner) Rune() rune {
	return s.c
}

// Offset returns the byte offset of the next rune to be scanned.
func (s *Scanner) Offset() int {
	return s.next
}

// Peek returns the next rune to be scanned.  Peek returns a false second
// value at the end of input.
func (s *Scanner) Peek() (rune, bool) {
	return s.PeekAt(0)
}

// PeekAt returns the rune n positions beyond the next rune to be scanned.
func (s *Scanner) PeekAt(n int) (rune, bool) {
	i := s.next
	for {
		if i >= len(s.buf) {
			return 0, false
		}
		c, size := utf8.DecodeRune(s.buf[i:])
		if n == 0 {
			return c, true
		}
		n--
		i += size
	}
}

// HasPrefix reports whether the unscanned input begins with prefix.
func (s *Scanner) HasPrefix(prefix string) bool {
	return strings.HasPrefix(string(s.buf[s.next:min(len(s.buf), s.next+len(prefix))]), prefix)
}

// ScanRune scans a rune from the input for inclusion in the current token.
// Invalid utf-8 bytes are scanned individually as utf8.RuneError.  At the end
// of input ScanRune returns io.EOF.
func (s *Scanner) ScanRune() error {
	if s.next >= len(s.buf) {
		return io.EOF
	}
	c, n := utf8.DecodeRune(s.buf[s.next:])
	s.c = c
	s.next += n
	switch {
	case c == '\n':
		s.line++
		s.col = 1
	case c == '\r' && !s.HasPrefix("\n"):
		s.line++
		s.col = 1
	default:
		s.col++
	}
	return nil
}

// EOF returns true when there are no more runes to scan.
func (s *Scanner) EOF() bool {
	return s.next >= len(s.buf)
}

func (s *Scanner) Accept(fn func(rune) bool) bool {
	peek, ok := s.Peek()
	if !ok {
		return false
	}
	if fn(peek) {
		return s.ScanRune() == nil
	}
	return false
}

func (s *Scanner) AcceptRune(c rune) bool {
	return s.Accept(func(r rune) bool { return r == c })
}

func (s *Scanner) AcceptDigit() bool {
	return s.Accept(func(r rune) bool { return '0' <= r && r <= '9' })
}

func (s *Scanner) AcceptAny(charset string) bool {
	if len(charset) == 1 {
		return s.AcceptRune(rune(charset[0]))
	}
	return s.Accept(func(r rune) bool { return strings.ContainsRune(charset, r) })
}

func (s *Scanner) AcceptSeq(fn func(rune) bool) int {
	var n int
	for s.Accept(fn) {
		n++
	}
	return n
}

func (s *Scanner) AcceptSeqRune(c rune) int {
	var n int
	for s.AcceptRune(c) {
		n++
	}
	return n
}

func (s *Scanner) AcceptSeqAny(charset string) int {
	var n int
	for s.AcceptAny(charset) {
		n++
	}
	return n
}

func (s *Scanner) AcceptSeqDigit() int {
	var n int
	for s.AcceptDigit() {
		n++
	}
	return n
}

// AcceptString scans literal when the input begins with it.  Nothing is
// scanned otherwise.
func (s *Scanner) AcceptString(literal string) bool {
	if !s.HasPrefix(literal) {
		return false
	}
	for range literal {
		_ = s.ScanRune()
	}
	return true
}

// LocStart returns a Location referencing the beginning of the current token.
func (s *Scanner) LocStart() *Location {
	return &Location{
		File: s.file,
		Path: s.path,
		Pos:  s.start,
		Line: s.startLine,
		Col:  s.startCol,
	}
}

// Loc returns a Location referencing the next rune to be scanned.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Path: s.path,
		Pos:  s.next,
		Line: s.line,
		Col:  s.col,
	}
}
