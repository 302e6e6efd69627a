// Copyright © 2024 The gmlfmt authors

package rdparser

import (
	"github.com/luthersystems/gmlfmt/ast"
	"github.com/luthersystems/gmlfmt/parser/token"
)

// expression parses a full expression in which '=' compares.
func (p *Parser) expression() (ast.Expr, bool) {
	return p.conditional(true)
}

func (p *Parser) expectExpression() ast.Expr {
	e, ok := p.expression()
	if !ok {
		p.failExpected("expression")
	}
	return e
}

// simpleExpression parses an expression in statement position where an
// assignment operator following the left-hand side makes an assignment.
func (p *Parser) simpleExpression() (ast.Expr, bool) {
	left, ok := p.conditional(false)
	if !ok {
		return nil, false
	}
	if !p.peekType().IsAssignment() {
		return left, true
	}
	op := p.next()
	n := &ast.AssignmentExpression{
		Operator: op.Type,
		Left:     left,
		Right:    p.expectExpression(),
	}
	ast.SetSpan(n, left.Span().Start, p.end())
	return n, true
}

func (p *Parser) expectSimpleExpression() ast.Expr {
	e, ok := p.simpleExpression()
	if !ok {
		p.failExpected("expression")
	}
	return e
}

func (p *Parser) conditional(allowEq bool) (ast.Expr, bool) {
	test, ok := p.binary(0, allowEq)
	if !ok || !p.accept(token.QUESTION) {
		return test, ok
	}
	n := &ast.ConditionalExpression{Test: test}
	n.Consequent = p.expectExpression()
	p.expect(token.COLON)
	n.Alternate = p.expectExpression()
	ast.SetSpan(n, test.Span().Start, p.end())
	return n, true
}

// binary parses the operators of ast.BinaryLevels[level] and everything
// binding tighter.  Operators at one level associate to the left.  When
// allowEq is false '=' is left for the caller to treat as assignment.
func (p *Parser) binary(level int, allowEq bool) (ast.Expr, bool) {
	if level == len(ast.BinaryLevels) {
		return p.unary()
	}
	left, ok := p.binary(level+1, allowEq)
	if !ok {
		return nil, false
	}
	for {
		op := p.peekType()
		if !isLevelOperator(level, op) || op == token.ASSIGN && !allowEq {
			return left, true
		}
		p.next()
		right, ok := p.binary(level+1, allowEq)
		if !ok {
			p.failExpected("expression")
		}
		n := &ast.BinaryExpression{Operator: op, Left: left, Right: right}
		ast.SetSpan(n, left.Span().Start, p.end())
		left = n
	}
}

func isLevelOperator(level int, op token.Type) bool {
	for _, typ := range ast.BinaryLevels[level] {
		if typ == op {
			return true
		}
	}
	return false
}

func (p *Parser) unary() (ast.Expr, bool) {
	start := p.peek()
	switch start.Type {
	case token.BANG, token.NOT_WORD, token.MINUS, token.PLUS, token.TILDE:
		p.next()
		n := &ast.UnaryExpression{Operator: start.Type, Argument: p.expectUnary()}
		p.finish(n, start)
		return n, true
	case token.INCREMENT, token.DECREMENT:
		p.next()
		n := &ast.UpdateExpression{Operator: start.Type, Prefix: true, Argument: p.expectUnary()}
		p.finish(n, start)
		return n, true
	}
	return p.postfix()
}

func (p *Parser) expectUnary() ast.Expr {
	e, ok := p.unary()
	if !ok {
		p.failExpected("expression")
	}
	return e
}

func (p *Parser) postfix() (ast.Expr, bool) {
	e, ok := p.primary()
	if !ok {
		return nil, false
	}
	switch p.peekType() {
	case token.INCREMENT, token.DECREMENT:
		op := p.next()
		n := &ast.UpdateExpression{Operator: op.Type, Argument: e}
		ast.SetSpan(n, e.Span().Start, p.end())
		return n, true
	}
	return e, true
}

// primary parses an atom followed by any number of member accesses, index
// accessors and calls.
func (p *Parser) primary() (ast.Expr, bool) {
	e, ok := p.atom()
	if !ok {
		return nil, false
	}
	for {
		start := e.Span().Start
		switch typ := p.peekType(); {
		case typ == token.DOT:
			p.next()
			n := &ast.MemberDotExpression{Object: e, Property: p.propertyName()}
			ast.SetSpan(n, start, p.end())
			e = n
		case typ.IsAccessor():
			p.next()
			n := &ast.MemberIndexExpression{Object: e, Accessor: typ}
			n.Indices = append(n.Indices, p.expectExpression())
			for p.accept(token.COMMA) {
				n.Indices = append(n.Indices, p.expectExpression())
			}
			p.expect(token.BRACKET_R)
			ast.SetSpan(n, start, p.end())
			e = n
		case typ == token.PAREN_L:
			n := &ast.CallExpression{Callee: e, Args: p.arguments()}
			ast.SetSpan(n, start, p.end())
			e = n
		default:
			return e, true
		}
	}
}

func (p *Parser) atom() (ast.Expr, bool) {
	start := p.peek()
	switch start.Type {
	case token.IDENT:
		return p.identifier(), true
	case token.INT, token.DECIMAL, token.HEX, token.BINARY, token.COLOR,
		token.STRING, token.STRING_VERBATIM, token.TEMPLATE_STRING,
		token.TRUE, token.FALSE, token.UNDEFINED:
		p.next()
		n := &ast.Literal{Type: start.Type, Value: start.Text}
		p.finish(n, start)
		return n, true
	case token.TEMPLATE_START:
		return p.template(), true
	case token.PAREN_L:
		p.next()
		n := &ast.ParenthesizedExpression{Expr: p.expectExpression()}
		p.expect(token.PAREN_R)
		p.finish(n, start)
		return n, true
	case token.BRACKET_L:
		return p.arrayLiteral(), true
	case token.BRACE_L:
		return p.structLiteral(), true
	case token.FUNCTION:
		p.next()
		n := &ast.FunctionExpression{}
		if p.peekType() == token.IDENT {
			n.Name = p.identifier()
		}
		n.Params, n.Inherit, n.Constructor, n.Body = p.functionRest()
		p.finish(n, start)
		return n, true
	case token.NEW:
		return p.newExpression(), true
	}
	return nil, false
}

func (p *Parser) identifier() *ast.Identifier {
	tok := p.expect(token.IDENT)
	n := &ast.Identifier{Name: tok.Text}
	p.finish(n, tok)
	return n
}

// propertyName accepts an identifier or a keyword following '.'.
func (p *Parser) propertyName() *ast.Identifier {
	tok := p.peek()
	if !tok.Type.IsKeyword() {
		return p.identifier()
	}
	p.next()
	n := &ast.Identifier{Name: tok.Text}
	p.finish(n, tok)
	return n
}

func (p *Parser) template() ast.Expr {
	start := p.next()
	n := &ast.TemplateLiteral{Strings: []string{start.Text}}
	for {
		n.Exprs = append(n.Exprs, p.expectExpression())
		switch p.peekType() {
		case token.TEMPLATE_MIDDLE:
			n.Strings = append(n.Strings, p.next().Text)
		case token.TEMPLATE_END:
			n.Strings = append(n.Strings, p.next().Text)
			p.finish(n, start)
			return n
		default:
			p.failExpected("'}'")
		}
	}
}

func (p *Parser) newExpression() ast.Expr {
	start := p.next()
	var callee ast.Expr = p.identifier()
	for p.accept(token.DOT) {
		m := &ast.MemberDotExpression{Object: callee, Property: p.propertyName()}
		ast.SetSpan(m, callee.Span().Start, p.end())
		callee = m
	}
	n := &ast.NewExpression{Callee: callee}
	if p.peekType() == token.PAREN_L {
		n.Args = p.arguments()
	}
	p.finish(n, start)
	return n
}

// arguments parses a parenthesized argument list.  An argument omitted
// between commas becomes an ast.UndefinedArgument with an empty span at the
// comma.  A single trailing comma is dropped.
func (p *Parser) arguments() []ast.Expr {
	p.expect(token.PAREN_L)
	var args []ast.Expr
	for {
		if p.accept(token.PAREN_R) {
			return args
		}
		if tok := p.peek(); tok.Type == token.COMMA {
			elided := &ast.UndefinedArgument{}
			ast.SetSpan(elided, tok.Source.Pos, tok.Source.Pos)
			args = append(args, elided)
			p.next()
			continue
		}
		args = append(args, p.expectExpression())
		if !p.accept(token.COMMA) {
			p.expect(token.PAREN_R)
			return args
		}
	}
}

func (p *Parser) arrayLiteral() ast.Expr {
	start := p.next()
	n := &ast.ArrayLiteral{}
	for !p.accept(token.BRACKET_R) {
		n.Elements = append(n.Elements, p.expectExpression())
		if !p.accept(token.COMMA) {
			p.expect(token.BRACKET_R)
			break
		}
	}
	p.finish(n, start)
	return n
}

func (p *Parser) structLiteral() ast.Expr {
	start := p.next()
	n := &ast.StructLiteral{}
	for !p.accept(token.BRACE_R) {
		n.Properties = append(n.Properties, p.structProperty())
		if !p.accept(token.COMMA) {
			p.expect(token.BRACE_R)
			break
		}
	}
	p.finish(n, start)
	return n
}

func (p *Parser) structProperty() *ast.StructProperty {
	start := p.peek()
	prop := &ast.StructProperty{}
	switch start.Type {
	case token.STRING, token.STRING_VERBATIM:
		p.next()
		key := &ast.Literal{Type: start.Type, Value: start.Text}
		p.finish(key, start)
		prop.Key = key
	default:
		prop.Key = p.propertyName()
	}
	if p.accept(token.COLON) {
		prop.Value = p.expectExpression()
	}
	p.finish(prop, start)
	return prop
}
