// Copyright © 2024 The gmlfmt authors

package token

import (
	"io"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerEOF(t *testing.T) {
	s := NewScanner("test", []byte("xy"))
	require.NoError(t, s.ScanRune())
	require.NoError(t, s.ScanRune())
	assert.True(t, s.EOF())
	assert.Equal(t, io.EOF, s.ScanRune())
	tok := s.EmitToken(IDENT)
	assert.Equal(t, "xy", tok.Text)
	assert.Equal(t, "", s.EmitToken(EOF).Text)
}

func TestScannerAcceptSeq(t *testing.T) {
	s := NewScanner("test", []byte("abc123 def"))
	assert.Equal(t, 3, s.AcceptSeq(unicode.IsLetter))
	assert.Equal(t, 3, s.AcceptSeqDigit())
	assert.Equal(t, "abc123", s.Text())
	tok := s.EmitToken(IDENT)
	assert.Equal(t, 1, tok.Source.Col)
	assert.Equal(t, 1, s.AcceptSeqRune(' '))
	s.Ignore()
	assert.True(t, s.AcceptString("def"))
	tok = s.EmitToken(IDENT)
	assert.Equal(t, "def", tok.Text)
	assert.Equal(t, 8, tok.Source.Col)
	assert.Equal(t, 7, tok.Source.Pos)
}

func TestScannerLines(t *testing.T) {
	s := NewScanner("test", []byte("a\nb\r\nc\rd"))
	var toks []*Token
	for !s.EOF() {
		require.NoError(t, s.ScanRune())
		if unicode.IsSpace(s.Rune()) {
			if s.Rune() == '\r' {
				s.AcceptRune('\n')
			}
			s.Ignore()
			continue
		}
		toks = append(toks, s.EmitToken(IDENT))
	}
	require.Len(t, toks, 4)
	for i, tok := range toks {
		assert.Equal(t, i+1, tok.Source.Line, tok.Text)
		assert.Equal(t, 1, tok.Source.Col, tok.Text)
	}
}

func TestScannerPeek(t *testing.T) {
	s := NewScanner("test", []byte("[@\"x\""))
	require.NoError(t, s.ScanRune())
	c, ok := s.Peek()
	assert.True(t, ok)
	assert.Equal(t, '@', c)
	c, ok = s.PeekAt(1)
	assert.True(t, ok)
	assert.Equal(t, '"', c)
	_, ok = s.PeekAt(10)
	assert.False(t, ok)
	assert.True(t, s.HasPrefix("@\"x"))
	assert.False(t, s.HasPrefix("@\"xyz\"00"))
	assert.False(t, s.AcceptString("@x"))
	assert.Equal(t, "[", s.Text())
}

func TestScannerUnicodeColumns(t *testing.T) {
	s := NewScanner("test", []byte("é x"))
	require.NoError(t, s.ScanRune())
	s.Ignore()
	s.AcceptSeqRune(' ')
	s.Ignore()
	require.NoError(t, s.ScanRune())
	tok := s.EmitToken(IDENT)
	assert.Equal(t, 3, tok.Source.Col)
	assert.Equal(t, 3, tok.Source.Pos)
}
