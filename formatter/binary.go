// Copyright © 2024 The gmlfmt authors

package formatter

import (
	"github.com/luthersystems/gmlfmt/ast"
	"github.com/luthersystems/gmlfmt/doc"
	"github.com/luthersystems/gmlfmt/parser/token"
)

// printBinary prints a chain of binary operators sharing a level as one
// group which breaks after each operator.  Whether the continuation lines
// are indented depends on what encloses the chain.
func (p *printer) printBinary(n *ast.BinaryExpression) doc.Doc {
	parent := p.parent()
	parts := p.binaryParts(n, false)
	if isTestOf(parent, n) {
		return doc.Concat(parts)
	}
	switch parent.(type) {
	case *ast.ReturnStatement, *ast.ThrowStatement, *ast.ParenthesizedExpression:
		return doc.Group(parts...)
	case *ast.ConditionalExpression:
		switch p.ancestor(2).(type) {
		case *ast.ReturnStatement, *ast.ThrowStatement, *ast.CallExpression, *ast.NewExpression:
		default:
			return doc.Group(parts...)
		}
	}
	inline := shouldInline(n)
	left, ok := n.Left.(*ast.BinaryExpression)
	samePrecedence := ok && shouldFlatten(n.Operator, left.Operator)
	if inline && !samePrecedence || !inline && indentsOwnValue(parent) {
		return doc.Group(parts...)
	}
	return doc.Group(parts[0], doc.Indent(parts[1:]...))
}

// indentsOwnValue returns true for nodes which print their value indented
// on the next line when it does not fit.
func indentsOwnValue(n ast.Node) bool {
	switch n.(type) {
	case *ast.AssignmentExpression, *ast.VariableDeclarator, *ast.StructProperty, *ast.Parameter, *ast.EnumMember:
		return true
	}
	return false
}

// nestedBinaryParts returns the parts of a flattened left operand with the
// operand on the ancestor stack.
func (p *printer) nestedBinaryParts(n *ast.BinaryExpression) []doc.Doc {
	p.push(n)
	defer p.pop()
	return p.binaryParts(n, true)
}

// binaryParts returns the operands of the operator chain ending at n, each
// operator after the first operand grouped with its right operand.
func (p *printer) binaryParts(n *ast.BinaryExpression, nested bool) []doc.Doc {
	var parts []doc.Doc
	if left, ok := n.Left.(*ast.BinaryExpression); ok && shouldFlatten(n.Operator, left.Operator) && !ignored(left) {
		parts = p.nestedBinaryParts(left)
	} else {
		parts = append(parts, doc.Group(p.print(n.Left)))
	}

	op := doc.Text(n.Operator.String())
	var right doc.Doc
	if shouldInline(n) {
		right = doc.Concat{op, doc.Space, p.print(n.Right)}
	} else {
		right = doc.Concat{op, doc.Line, p.print(n.Right)}
	}

	_, parentBinary := p.parent().(*ast.BinaryExpression)
	_, leftBinary := n.Left.(*ast.BinaryExpression)
	_, rightBinary := n.Right.(*ast.BinaryExpression)
	shouldBreak := hasLineComment(n.Left, ast.Trailing)
	if shouldBreak || !parentBinary && !leftBinary && !rightBinary {
		right = &doc.GroupDoc{Contents: right, Break: shouldBreak}
	}
	parts = append(parts, doc.Space, right)

	if nested && len(n.Comments()) > 0 {
		return []doc.Doc{p.withComments(n, doc.Concat(parts))}
	}
	return parts
}

// shouldFlatten returns true if an operand using nodeOp may print in the
// same chain as its parent using parentOp.
func shouldFlatten(parentOp, nodeOp token.Type) bool {
	if ast.Precedence(parentOp) != ast.Precedence(nodeOp) {
		return false
	}
	switch {
	case isEquality(parentOp):
		// a == b == c
		return false
	case isRemainder(nodeOp) && isMultiplicative(parentOp), isRemainder(parentOp) && isMultiplicative(nodeOp):
		// a * b % c
		return false
	case nodeOp != parentOp && isMultiplicative(nodeOp) && isMultiplicative(parentOp):
		// a * b / c
		return false
	case isShift(parentOp) && isShift(nodeOp):
		return false
	}
	return true
}

func isEquality(op token.Type) bool {
	switch op {
	case token.EQ, token.NEQ, token.NEQ_ALT, token.ASSIGN:
		return true
	}
	return false
}

func isMultiplicative(op token.Type) bool {
	switch op {
	case token.STAR, token.SLASH, token.PERCENT, token.MOD_WORD, token.DIV_WORD:
		return true
	}
	return false
}

func isRemainder(op token.Type) bool {
	return op == token.PERCENT || op == token.MOD_WORD
}

func isShift(op token.Type) bool {
	return op == token.SHL || op == token.SHR
}

func isLogical(op token.Type) bool {
	switch op {
	case token.LOGICAL_AND, token.LOGICAL_OR, token.LOGICAL_XOR,
		token.AND_WORD, token.OR_WORD, token.XOR_WORD, token.NULLISH:
		return true
	}
	return false
}

// shouldInline returns true for a logical operator whose right operand is
// a non-empty struct or array literal, which stays on the operator's line.
func shouldInline(n *ast.BinaryExpression) bool {
	if !isLogical(n.Operator) {
		return false
	}
	switch r := n.Right.(type) {
	case *ast.StructLiteral:
		return len(r.Properties) > 0
	case *ast.ArrayLiteral:
		return len(r.Elements) > 0
	}
	return false
}
