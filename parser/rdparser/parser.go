// Copyright © 2024 The gmlfmt authors

// Package rdparser implements a recursive descent parser for GML.
//
// Grammar rules are methods with the signature
//
//	func (p *Parser) rule() (ast.Node, bool)
//
// where a false return means the rule did not match and consumed no input.
// Once a rule has committed to a production, any further mismatch is a
// syntax error which unwinds the parse immediately.
package rdparser

import (
	"fmt"

	"github.com/luthersystems/gmlfmt/ast"
	"github.com/luthersystems/gmlfmt/parser/token"
)

// SyntaxError is returned when the input is not valid GML.
type SyntaxError struct {
	Source  *token.Location
	Message string
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", err.Source, err.Message)
}

// Line returns the 1-based line of the offending token.
func (err *SyntaxError) Line() int {
	return err.Source.Line
}

// Col returns the 1-based column of the offending token.
func (err *SyntaxError) Col() int {
	return err.Source.Col
}

type bailout struct {
	err *SyntaxError
}

// Parser is a GML parser.
type Parser struct {
	src *TokenSource
}

// NewFromSource initializes and returns a Parser that reads tokens from src.
func NewFromSource(src *TokenSource) *Parser {
	return &Parser{
		src: src,
	}
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	return NewFromSource(NewTokenSource(scanner))
}

// Parse parses a complete source file.  It returns the syntax tree along
// with every comment group in the file, in source order.
func Parse(file string, src []byte) (*ast.Document, []*ast.CommentGroup, error) {
	p := New(token.NewScanner(file, src))
	doc, err := p.ParseProgram()
	if err != nil {
		return nil, nil, err
	}
	return doc, p.Comments(), nil
}

// ParseProgram parses statements until EOF.  Parent pointers of the
// returned tree are set.
func (p *Parser) ParseProgram() (doc *ast.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			doc, err = nil, b.err
		}
	}()

	doc = &ast.Document{}
	for !p.src.IsEOF() {
		if p.accept(token.SEMICOLON) {
			continue
		}
		doc.Statements = append(doc.Statements, p.expectStatement())
	}
	ast.SetSpan(doc, 0, p.peek().Source.Pos)
	ast.SetParents(doc)
	return doc, nil
}

// Comments returns the comment groups read so far.
func (p *Parser) Comments() []*ast.CommentGroup {
	return p.src.Groups
}

func (p *Parser) peek() *token.Token {
	return p.src.Peek()
}

func (p *Parser) peekType() token.Type {
	return p.src.Peek().Type
}

func (p *Parser) peekAt(i int) *token.Token {
	return p.src.PeekAt(i)
}

func (p *Parser) next() *token.Token {
	p.src.Scan()
	return p.src.Token
}

func (p *Parser) accept(typ ...token.Type) bool {
	return p.src.AcceptType(typ...)
}

// expect consumes a token of type typ or fails.
func (p *Parser) expect(typ token.Type) *token.Token {
	if !p.accept(typ) {
		p.failExpected(describeType(typ))
	}
	return p.src.Token
}

// end returns the end offset of the last consumed token.
func (p *Parser) end() int {
	if p.src.Token == nil {
		return 0
	}
	return p.src.Token.Span().End
}

// finish sets the span of n to run from start through the last consumed
// token.
func (p *Parser) finish(n ast.Node, start *token.Token) {
	ast.SetSpan(n, start.Source.Pos, p.end())
}

func (p *Parser) failExpected(what string) {
	tok := p.peek()
	switch tok.Type {
	case token.ERROR, token.INVALID:
		p.failAt(tok, "%s", tok.Text)
	}
	p.failAt(tok, "expected %s, found %s", what, describe(tok))
}

func (p *Parser) failAt(tok *token.Token, format string, v ...interface{}) {
	loc := *tok.Source
	panic(bailout{&SyntaxError{
		Source:  &loc,
		Message: fmt.Sprintf(format, v...),
	}})
}

func describe(tok *token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of file"
	case token.STRING, token.STRING_VERBATIM, token.TEMPLATE_STRING, token.TEMPLATE_START:
		return "string literal"
	case token.DIRECTIVE_TEXT:
		return "directive text"
	}
	return "'" + tok.Text + "'"
}

func describeType(typ token.Type) string {
	switch typ {
	case token.IDENT:
		return "identifier"
	case token.DIRECTIVE_TEXT:
		return "directive text"
	case token.EOF:
		return "end of file"
	}
	return "'" + typ.String() + "'"
}
