// Copyright © 2024 The gmlfmt authors

package rdparser

import (
	"github.com/luthersystems/gmlfmt/ast"
	"github.com/luthersystems/gmlfmt/parser/lexer"
	"github.com/luthersystems/gmlfmt/parser/token"
)

// TokenStream is an arbitrary sequence of tokens.  Typically, a TokenStream
// will be a *lexer.Lexer but other implementations may be desirable for
// testing or for embedding the parser in an editor.
type TokenStream interface {
	// ReadToken returns the next token from an input source, trivia
	// included.  When no more tokens can be generated ReadToken returns a
	// token with type token.EOF.
	ReadToken() *token.Token
}

// TokenGenerator implements TokenStream.  The function will be called any time
// a TokenSource wants a token.
type TokenGenerator func() *token.Token

// ReadToken implements TokenStream.
func (fn TokenGenerator) ReadToken() *token.Token {
	return fn()
}

// TokenSource abstracts a TokenStream by adding lookahead and separating
// trivia from the tokens the grammar consumes.  Comments are collected into
// groups, one group per source line, as they are skipped.
type TokenSource struct {
	lex TokenStream
	// Token is the most recently consumed token.
	Token *token.Token
	// Groups holds every comment group read so far in source order.
	Groups []*ast.CommentGroup

	peek   []*token.Token
	trivia []*token.Token
	seen   bool
}

// NewTokenStreamSource returns a TokenSource reading from stream.
func NewTokenStreamSource(stream TokenStream) *TokenSource {
	return &TokenSource{
		lex: stream,
	}
}

// NewTokenSource initializes and returns a new TokenSource that scans tokens
// from scanner.
func NewTokenSource(scanner *token.Scanner) *TokenSource {
	return NewTokenStreamSource(lexer.New(scanner))
}

// Peek returns the next significant token without consuming it.
func (s *TokenSource) Peek() *token.Token {
	return s.PeekAt(0)
}

// PeekAt returns the significant token i positions ahead of the next one.
// PeekAt(0) is equivalent to Peek.
func (s *TokenSource) PeekAt(i int) *token.Token {
	for len(s.peek) <= i {
		if n := len(s.peek); n > 0 && s.peek[n-1].Type == token.EOF {
			return s.peek[n-1]
		}
		s.peek = append(s.peek, s.read())
	}
	return s.peek[i]
}

// Accept consumes the next token if fn returns true for it.
func (s *TokenSource) Accept(fn func(*token.Token) bool) bool {
	if fn(s.Peek()) {
		s.scan()
		return true
	}
	return false
}

// AcceptType consumes the next token if it has one of the given types.
func (s *TokenSource) AcceptType(typ ...token.Type) bool {
	for _, typ := range typ {
		if s.Peek().Type == typ {
			s.scan()
			return true
		}
	}
	return false
}

// Scan consumes the next token.  Scan returns false when the next token is
// EOF, which is never consumed.
func (s *TokenSource) Scan() bool {
	if s.IsEOF() {
		s.Token = s.Peek()
		return false
	}
	s.scan()
	return true
}

// IsEOF returns true when no significant tokens remain.
func (s *TokenSource) IsEOF() bool {
	return s.Peek().Type == token.EOF
}

func (s *TokenSource) scan() {
	s.Token = s.Peek()
	s.peek = s.peek[1:]
}

func (s *TokenSource) read() *token.Token {
	for {
		tok := s.lex.ReadToken()
		if tok.Type.IsTrivia() {
			s.trivia = append(s.trivia, tok)
			continue
		}
		s.group(tok)
		s.seen = true
		return tok
	}
}

// group splits the trivia preceding next into comment groups.  A group ends
// at a line break, so comments sharing a line share a group.
func (s *TokenSource) group(next *token.Token) {
	var (
		groups  []*ast.CommentGroup
		cur     *ast.CommentGroup
		pending []*token.Token
		breaks  int
	)
	for _, tok := range s.trivia {
		switch tok.Type {
		case token.LINE_BREAK:
			if cur != nil {
				groups = append(groups, cur)
				cur = nil
				breaks = 0
			}
			pending = nil
			breaks++
		case token.WHITESPACE:
			if cur != nil {
				pending = append(pending, tok)
			}
		default:
			if cur == nil {
				cur = &ast.CommentGroup{
					LeadingBreaks: breaks,
					AtStart:       !s.seen,
				}
			} else {
				cur.Tokens = append(cur.Tokens, pending...)
			}
			pending = nil
			cur.Tokens = append(cur.Tokens, tok)
		}
	}
	if cur != nil {
		groups = append(groups, cur)
		breaks = 0
	}
	for i, g := range groups {
		if i+1 < len(groups) {
			g.TrailingBreaks = groups[i+1].LeadingBreaks
		} else {
			g.TrailingBreaks = breaks
		}
		g.AtEnd = next.Type == token.EOF
	}
	s.Groups = append(s.Groups, groups...)
	s.trivia = s.trivia[:0]
}
