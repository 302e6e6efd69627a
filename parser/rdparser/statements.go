// Copyright © 2024 The gmlfmt authors

package rdparser

import (
	"strings"

	"github.com/luthersystems/gmlfmt/ast"
	"github.com/luthersystems/gmlfmt/parser/token"
)

var statementRules []func(*Parser) (ast.Statement, bool)

func init() {
	// Ordered alternation.  The expression statement must remain last
	// because it accepts the widest range of leading tokens.
	statementRules = []func(*Parser) (ast.Statement, bool){
		(*Parser).blockStatement,
		(*Parser).ifStatement,
		(*Parser).whileStatement,
		(*Parser).doStatement,
		(*Parser).repeatStatement,
		(*Parser).forStatement,
		(*Parser).withStatement,
		(*Parser).switchStatement,
		(*Parser).tryStatement,
		(*Parser).functionDeclaration,
		(*Parser).variableStatement,
		(*Parser).returnStatement,
		(*Parser).jumpStatement,
		(*Parser).throwStatement,
		(*Parser).deleteStatement,
		(*Parser).enumDeclaration,
		(*Parser).directive,
		(*Parser).emptyStatement,
		(*Parser).expressionStatement,
	}
}

func (p *Parser) statement() (ast.Statement, bool) {
	for _, rule := range statementRules {
		if s, ok := rule(p); ok {
			return s, true
		}
	}
	return nil, false
}

func (p *Parser) expectStatement() ast.Statement {
	s, ok := p.statement()
	if !ok {
		p.failExpected("statement")
	}
	return s
}

func (p *Parser) blockStatement() (ast.Statement, bool) {
	if b, ok := p.block(); ok {
		return b, true
	}
	return nil, false
}

func (p *Parser) block() (*ast.Block, bool) {
	start := p.peek()
	if !p.accept(token.BRACE_L, token.BEGIN) {
		return nil, false
	}
	b := &ast.Block{}
	for !p.accept(token.BRACE_R, token.END) {
		if p.accept(token.SEMICOLON) {
			continue
		}
		s, ok := p.statement()
		if !ok {
			p.failExpected("'}'")
		}
		b.Statements = append(b.Statements, s)
	}
	p.finish(b, start)
	return b, true
}

func (p *Parser) expectBlock() *ast.Block {
	b, ok := p.block()
	if !ok {
		p.failExpected("'{'")
	}
	return b
}

func (p *Parser) ifStatement() (ast.Statement, bool) {
	start := p.peek()
	if !p.accept(token.IF) {
		return nil, false
	}
	n := &ast.IfStatement{Test: p.expectExpression()}
	p.accept(token.THEN)
	n.Consequent = p.expectStatement()
	if p.accept(token.ELSE) {
		n.Alternate = p.expectStatement()
	}
	p.finish(n, start)
	return n, true
}

func (p *Parser) whileStatement() (ast.Statement, bool) {
	start := p.peek()
	if !p.accept(token.WHILE) {
		return nil, false
	}
	n := &ast.WhileStatement{Test: p.expectExpression()}
	p.accept(token.DO)
	n.Body = p.expectStatement()
	p.finish(n, start)
	return n, true
}

func (p *Parser) doStatement() (ast.Statement, bool) {
	start := p.peek()
	if !p.accept(token.DO) {
		return nil, false
	}
	n := &ast.DoUntilStatement{Body: p.expectStatement()}
	p.expect(token.UNTIL)
	n.Test = p.expectExpression()
	p.accept(token.SEMICOLON)
	p.finish(n, start)
	return n, true
}

func (p *Parser) repeatStatement() (ast.Statement, bool) {
	start := p.peek()
	if !p.accept(token.REPEAT) {
		return nil, false
	}
	n := &ast.RepeatStatement{Count: p.expectExpression()}
	n.Body = p.expectStatement()
	p.finish(n, start)
	return n, true
}

func (p *Parser) withStatement() (ast.Statement, bool) {
	start := p.peek()
	if !p.accept(token.WITH) {
		return nil, false
	}
	n := &ast.WithStatement{Object: p.expectExpression()}
	n.Body = p.expectStatement()
	p.finish(n, start)
	return n, true
}

func (p *Parser) forStatement() (ast.Statement, bool) {
	start := p.peek()
	if !p.accept(token.FOR) {
		return nil, false
	}
	p.expect(token.PAREN_L)
	n := &ast.ForStatement{}
	if !p.accept(token.SEMICOLON) {
		if decl, ok := p.variableDeclaration(false); ok {
			n.Init = decl
		} else {
			n.Init = p.expectSimpleExpression()
		}
		p.expect(token.SEMICOLON)
	}
	if !p.accept(token.SEMICOLON) {
		n.Test = p.expectExpression()
		p.expect(token.SEMICOLON)
	}
	if !p.accept(token.PAREN_R) {
		n.Update = p.expectSimpleExpression()
		p.expect(token.PAREN_R)
	}
	n.Body = p.expectStatement()
	p.finish(n, start)
	return n, true
}

func (p *Parser) switchStatement() (ast.Statement, bool) {
	start := p.peek()
	if !p.accept(token.SWITCH) {
		return nil, false
	}
	n := &ast.SwitchStatement{Discriminant: p.expectExpression()}
	p.expect(token.BRACE_L)
	for !p.accept(token.BRACE_R) {
		c, ok := p.switchCase()
		if !ok {
			p.failExpected("'case', 'default' or '}'")
		}
		n.Cases = append(n.Cases, c)
	}
	p.finish(n, start)
	return n, true
}

func (p *Parser) switchCase() (*ast.SwitchCase, bool) {
	start := p.peek()
	c := &ast.SwitchCase{}
	switch {
	case p.accept(token.CASE):
		c.Test = p.expectExpression()
	case p.accept(token.DEFAULT):
	default:
		return nil, false
	}
	p.expect(token.COLON)
	for {
		switch p.peekType() {
		case token.CASE, token.DEFAULT, token.BRACE_R, token.EOF:
			p.finish(c, start)
			return c, true
		case token.SEMICOLON:
			p.next()
			continue
		}
		c.Body = append(c.Body, p.expectStatement())
	}
}

func (p *Parser) tryStatement() (ast.Statement, bool) {
	start := p.peek()
	if !p.accept(token.TRY) {
		return nil, false
	}
	n := &ast.TryStatement{Block: p.expectBlock()}
	if p.accept(token.CATCH) {
		paren := p.accept(token.PAREN_L)
		n.Param = p.identifier()
		if paren {
			p.expect(token.PAREN_R)
		}
		n.Handler = p.expectBlock()
	}
	if p.accept(token.FINALLY) {
		n.Finalizer = p.expectBlock()
	}
	if n.Handler == nil && n.Finalizer == nil {
		p.failExpected("'catch' or 'finally'")
	}
	p.finish(n, start)
	return n, true
}

func (p *Parser) functionDeclaration() (ast.Statement, bool) {
	start := p.peek()
	if start.Type != token.FUNCTION || p.peekAt(1).Type != token.IDENT {
		return nil, false
	}
	p.next()
	n := &ast.FunctionDeclaration{Name: p.identifier()}
	n.Params, n.Inherit, n.Constructor, n.Body = p.functionRest()
	p.finish(n, start)
	return n, true
}

// functionRest parses the parameter list, optional inheritance clause,
// constructor marker and body shared by declarations and expressions.
func (p *Parser) functionRest() ([]*ast.Parameter, *ast.ConstructorClause, bool, *ast.Block) {
	params := p.parameters()
	var inherit *ast.ConstructorClause
	if start := p.peek(); p.accept(token.COLON) {
		inherit = &ast.ConstructorClause{Super: p.identifier()}
		if p.peekType() == token.PAREN_L {
			inherit.Args = p.arguments()
		}
		p.finish(inherit, start)
	}
	constructor := p.accept(token.CONSTRUCTOR)
	return params, inherit, constructor, p.expectBlock()
}

func (p *Parser) parameters() []*ast.Parameter {
	p.expect(token.PAREN_L)
	var params []*ast.Parameter
	for !p.accept(token.PAREN_R) {
		start := p.peek()
		param := &ast.Parameter{Name: p.identifier()}
		if p.accept(token.ASSIGN) {
			param.Default = p.expectExpression()
		}
		p.finish(param, start)
		params = append(params, param)
		if !p.accept(token.COMMA) {
			p.expect(token.PAREN_R)
			break
		}
	}
	return params
}

func (p *Parser) variableStatement() (ast.Statement, bool) {
	if n, ok := p.variableDeclaration(true); ok {
		return n, true
	}
	return nil, false
}

func (p *Parser) variableDeclaration(semi bool) (*ast.VariableDeclaration, bool) {
	start := p.peek()
	if !p.accept(token.VAR, token.GLOBALVAR, token.STATIC) {
		return nil, false
	}
	n := &ast.VariableDeclaration{Keyword: start.Type}
	for {
		dstart := p.peek()
		d := &ast.VariableDeclarator{Name: p.identifier()}
		if p.accept(token.ASSIGN, token.COLON_ASSIGN) {
			d.Init = p.expectExpression()
		}
		p.finish(d, dstart)
		n.Declarators = append(n.Declarators, d)
		if !p.accept(token.COMMA) {
			break
		}
	}
	if semi {
		p.accept(token.SEMICOLON)
	}
	p.finish(n, start)
	return n, true
}

func (p *Parser) returnStatement() (ast.Statement, bool) {
	start := p.peek()
	if !p.accept(token.RETURN) {
		return nil, false
	}
	n := &ast.ReturnStatement{}
	if arg, ok := p.expression(); ok {
		n.Argument = arg
	}
	p.accept(token.SEMICOLON)
	p.finish(n, start)
	return n, true
}

func (p *Parser) jumpStatement() (ast.Statement, bool) {
	start := p.peek()
	var n ast.Statement
	switch start.Type {
	case token.BREAK:
		n = &ast.BreakStatement{}
	case token.CONTINUE:
		n = &ast.ContinueStatement{}
	case token.EXIT:
		n = &ast.ExitStatement{}
	default:
		return nil, false
	}
	p.next()
	p.accept(token.SEMICOLON)
	p.finish(n, start)
	return n, true
}

func (p *Parser) throwStatement() (ast.Statement, bool) {
	start := p.peek()
	if !p.accept(token.THROW) {
		return nil, false
	}
	n := &ast.ThrowStatement{Argument: p.expectExpression()}
	p.accept(token.SEMICOLON)
	p.finish(n, start)
	return n, true
}

func (p *Parser) deleteStatement() (ast.Statement, bool) {
	start := p.peek()
	if !p.accept(token.DELETE) {
		return nil, false
	}
	n := &ast.DeleteStatement{Argument: p.expectExpression()}
	p.accept(token.SEMICOLON)
	p.finish(n, start)
	return n, true
}

func (p *Parser) enumDeclaration() (ast.Statement, bool) {
	start := p.peek()
	if !p.accept(token.ENUM) {
		return nil, false
	}
	n := &ast.EnumDeclaration{Name: p.identifier()}
	p.expect(token.BRACE_L)
	for !p.accept(token.BRACE_R) {
		mstart := p.peek()
		m := &ast.EnumMember{Name: p.identifier()}
		if p.accept(token.ASSIGN) {
			m.Init = p.expectExpression()
		}
		p.finish(m, mstart)
		n.Members = append(n.Members, m)
		if !p.accept(token.COMMA) {
			p.expect(token.BRACE_R)
			break
		}
	}
	p.finish(n, start)
	return n, true
}

func (p *Parser) directive() (ast.Statement, bool) {
	start := p.peek()
	switch start.Type {
	case token.MACRO, token.REGION, token.END_REGION, token.DEFINE:
	default:
		return nil, false
	}
	p.next()
	text := p.expect(token.DIRECTIVE_TEXT).Text
	var n ast.Statement
	switch start.Type {
	case token.MACRO:
		n = p.macro(start, text)
	case token.REGION:
		n = &ast.RegionStatement{Text: strings.TrimSpace(text)}
	case token.END_REGION:
		n = &ast.EndRegionStatement{Text: strings.TrimSpace(text)}
	default:
		n = &ast.DefineStatement{Name: strings.TrimSpace(text)}
	}
	p.finish(n, start)
	return n, true
}

// macro splits the text following #macro into an optional configuration
// name, the macro name, and the body.
func (p *Parser) macro(start *token.Token, text string) *ast.MacroDeclaration {
	n := &ast.MacroDeclaration{}
	rest := strings.TrimLeft(text, " \t")
	n.Name, rest = splitIdent(rest)
	if n.Name != "" && strings.HasPrefix(rest, ":") {
		n.Config = n.Name
		n.Name, rest = splitIdent(rest[1:])
	}
	if n.Name == "" {
		p.failAt(start, "macro definition is invalid")
	}
	n.Body = strings.TrimSpace(rest)
	return n
}

func splitIdent(s string) (string, string) {
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || i > 0 && '0' <= c && c <= '9' {
			i++
			continue
		}
		break
	}
	return s[:i], s[i:]
}

func (p *Parser) emptyStatement() (ast.Statement, bool) {
	start := p.peek()
	if !p.accept(token.SEMICOLON) {
		return nil, false
	}
	n := &ast.EmptyStatement{}
	p.finish(n, start)
	return n, true
}

func (p *Parser) expressionStatement() (ast.Statement, bool) {
	start := p.peek()
	expr, ok := p.simpleExpression()
	if !ok {
		return nil, false
	}
	n := &ast.ExpressionStatement{Expr: expr}
	n.Semicolon = p.accept(token.SEMICOLON)
	p.finish(n, start)
	return n, true
}
