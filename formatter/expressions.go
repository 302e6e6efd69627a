// Copyright © 2024 The gmlfmt authors

package formatter

import (
	"github.com/luthersystems/gmlfmt/ast"
	"github.com/luthersystems/gmlfmt/doc"
	"github.com/luthersystems/gmlfmt/parser/token"
)

// printAssignment prints left, the operator and right.  op carries the
// spacing it needs before it.
func (p *printer) printAssignment(left doc.Doc, op string, right ast.Expr) doc.Doc {
	rhs := p.print(right)
	if breakAfterOperator(right) {
		return doc.Group(doc.Group(left), doc.Text(op), doc.Group(doc.Indent(doc.Line, rhs)))
	}
	return doc.Group(doc.Group(left), doc.Text(op), doc.Space, rhs)
}

// breakAfterOperator returns true if the right side of an assignment should
// move to the next line as a whole when it does not fit.
func breakAfterOperator(right ast.Expr) bool {
	for _, g := range ast.CommentsOf(right, ast.Leading) {
		if g.EndsWithLineComment() || g.TrailingBreaks > 0 {
			return true
		}
	}
	switch e := right.(type) {
	case *ast.BinaryExpression:
		return !shouldInline(e)
	case *ast.ConditionalExpression:
		test, ok := e.Test.(*ast.BinaryExpression)
		return ok && !shouldInline(test)
	case *ast.Literal:
		return e.Type == token.STRING || e.Type == token.STRING_VERBATIM
	case *ast.MemberDotExpression:
		return isMemberPath(e)
	}
	return false
}

// isMemberPath returns true for a dotted path of at least two accesses on
// an identifier.
func isMemberPath(e *ast.MemberDotExpression) bool {
	obj, ok := e.Object.(*ast.MemberDotExpression)
	if !ok {
		return false
	}
	for {
		switch o := obj.Object.(type) {
		case *ast.Identifier:
			return true
		case *ast.MemberDotExpression:
			obj = o
		default:
			return false
		}
	}
}

func (p *printer) printUnary(n *ast.UnaryExpression) doc.Doc {
	arg := p.print(n.Argument)
	if n.Operator == token.NOT_WORD {
		return doc.Concat{doc.Text("not "), arg}
	}
	op := n.Operator.String()
	if (n.Operator == token.MINUS || n.Operator == token.PLUS) && startsWithSign(n.Argument, n.Operator) {
		return doc.Concat{doc.Text(op + " "), arg}
	}
	return doc.Concat{doc.Text(op), arg}
}

// startsWithSign returns true if e prints starting with the character of
// sign, which would fuse with a preceding sign into an update operator.
func startsWithSign(e ast.Expr, sign token.Type) bool {
	switch e := e.(type) {
	case *ast.UnaryExpression:
		return e.Operator == sign
	case *ast.UpdateExpression:
		if !e.Prefix {
			return false
		}
		return sign == token.MINUS && e.Operator == token.DECREMENT ||
			sign == token.PLUS && e.Operator == token.INCREMENT
	}
	return false
}

func (p *printer) printConditional(n *ast.ConditionalExpression) doc.Doc {
	return doc.Group(
		p.print(n.Test),
		doc.Indent(
			doc.Line,
			doc.Text("? "),
			p.print(n.Consequent),
			doc.Line,
			doc.Text(": "),
			p.print(n.Alternate),
		),
	)
}

func (p *printer) printTemplate(n *ast.TemplateLiteral) doc.Doc {
	parts := doc.Concat{verbatim(n.Strings[0])}
	for i, e := range n.Exprs {
		parts = append(parts, p.print(e), verbatim(n.Strings[i+1]))
	}
	return parts
}

func (p *printer) printAccessor(n *ast.MemberIndexExpression) doc.Doc {
	open := n.Accessor.String()
	if n.Accessor != token.BRACKET_L {
		open += " "
	}
	return doc.Concat{
		doc.Text(open),
		doc.Join(doc.Text(", "), p.printEach(n.Indices)),
		doc.Text("]"),
	}
}

// printArguments prints a call argument list.  When the last argument is
// a function or a struct it may be expanded while the others stay on the
// first line.
func (p *printer) printArguments(owner ast.Node, args []ast.Expr) doc.Doc {
	if len(args) == 0 {
		return p.emptyList(owner, "(", ")")
	}
	printed := p.printEach(args)
	separator := doc.Concat{doc.Text(","), doc.Line}
	allBroken := func() doc.Doc {
		return doc.BreakingGroup(
			doc.Text("("),
			doc.Indent(doc.SoftLine, doc.Join(separator, printed)),
			doc.SoftLine,
			doc.Text(")"),
		)
	}
	if !shouldHugLast(args) {
		return doc.Group(
			doc.Text("("),
			doc.Indent(doc.SoftLine, doc.Join(separator, printed)),
			doc.SoftLine,
			doc.Text(")"),
		)
	}

	head := printed[:len(printed)-1]
	last := printed[len(printed)-1]
	for _, d := range head {
		if doc.WillBreak(d) {
			return allBroken()
		}
	}
	var leading doc.Concat
	for _, d := range head {
		leading = append(leading, d, doc.Text(", "))
	}
	var prefix doc.Doc = doc.Empty
	if doc.WillBreak(last) {
		prefix = doc.BreakParent
	}
	return doc.Concat{
		prefix,
		doc.ConditionalGroup(
			doc.Concat{doc.Text("("), leading, last, doc.Text(")")},
			doc.Concat{doc.Text("("), leading, doc.BreakingGroup(last), doc.Text(")")},
			allBroken(),
		),
	}
}

// shouldHugLast returns true if the last of args is a function or a
// non-empty struct and no other argument is a function.
func shouldHugLast(args []ast.Expr) bool {
	last := args[len(args)-1]
	if len(last.Comments()) > 0 {
		return false
	}
	switch e := last.(type) {
	case *ast.FunctionExpression:
	case *ast.StructLiteral:
		if len(e.Properties) == 0 {
			return false
		}
	default:
		return false
	}
	for _, arg := range args[:len(args)-1] {
		if _, ok := arg.(*ast.FunctionExpression); ok {
			return false
		}
	}
	return true
}

func (p *printer) printArray(n *ast.ArrayLiteral) doc.Doc {
	if len(n.Elements) == 0 {
		return p.emptyList(n, "[", "]")
	}
	printed := p.printEach(n.Elements)
	var items doc.Doc
	if isNumericArray(n) {
		parts := make([]doc.Doc, 0, 2*len(printed))
		for i, d := range printed {
			if i < len(printed)-1 {
				parts = append(parts, doc.Concat{d, doc.Text(",")}, doc.Line)
				continue
			}
			parts = append(parts, d)
		}
		items = doc.Fill(parts)
	} else {
		items = doc.Join(doc.Concat{doc.Text(","), doc.Line}, printed)
	}
	g := doc.Group(
		doc.Text("["),
		doc.Indent(doc.SoftLine, items, doc.IfBreak(doc.Text(","), nil)),
		doc.SoftLine,
		doc.Text("]"),
	)
	g.Break = isMatrix(n)
	return g
}

// isNumericArray returns true for arrays of two or more number literals,
// optionally signed.
func isNumericArray(n *ast.ArrayLiteral) bool {
	if len(n.Elements) < 2 {
		return false
	}
	for _, e := range n.Elements {
		if u, ok := e.(*ast.UnaryExpression); ok && (u.Operator == token.MINUS || u.Operator == token.PLUS) {
			e = u.Argument
		}
		lit, ok := e.(*ast.Literal)
		if !ok || len(lit.Comments()) > 0 {
			return false
		}
		switch lit.Type {
		case token.INT, token.DECIMAL, token.HEX, token.BINARY:
		default:
			return false
		}
	}
	return true
}

// isMatrix returns true for arrays of two or more arrays or structs which
// each hold more than one element.
func isMatrix(n *ast.ArrayLiteral) bool {
	if len(n.Elements) < 2 {
		return false
	}
	for _, e := range n.Elements {
		switch e := e.(type) {
		case *ast.ArrayLiteral:
			if len(e.Elements) < 2 {
				return false
			}
		case *ast.StructLiteral:
			if len(e.Properties) < 2 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// printStruct prints a struct literal.  A struct written with a line break
// after its opening brace stays broken.
func (p *printer) printStruct(n *ast.StructLiteral) doc.Doc {
	if len(n.Properties) == 0 {
		return p.emptyList(n, "{", "}")
	}
	printed := make([]doc.Doc, len(n.Properties))
	for i, prop := range n.Properties {
		printed[i] = p.print(prop)
	}
	g := doc.Group(
		doc.Text("{"),
		doc.Indent(doc.SoftLine, doc.Join(doc.Concat{doc.Text(","), doc.Line}, printed), doc.IfBreak(doc.Text(","), nil)),
		doc.SoftLine,
		doc.Text("}"),
	)
	g.Break = hasNewlineBetween(p.src, n.Span().Start, n.Properties[0].Span().Start)
	return g
}
