// Copyright © 2024 The gmlfmt authors

package formatter

import (
	"github.com/luthersystems/gmlfmt/ast"
	"github.com/luthersystems/gmlfmt/doc"
)

func (p *printer) printDocument(n *ast.Document) doc.Doc {
	if len(n.Statements) == 0 {
		if comments := p.danglingComments(n); comments != nil {
			return comments
		}
		return doc.Empty
	}
	return p.printStatements(n.Statements)
}

// printStatements joins stmts with line breaks, keeping at most one blank
// line between statements and forcing one around routines.
func (p *printer) printStatements(stmts []ast.Statement) doc.Doc {
	var parts doc.Concat
	for i, s := range stmts {
		if i > 0 {
			parts = append(parts, doc.HardLine)
			prev := stmts[i-1]
			if isRoutine(prev) || isRoutine(s) || isNextLineEmpty(p.src, prev.Span().End) {
				parts = append(parts, doc.HardLine)
			}
		}
		parts = append(parts, p.print(s))
	}
	return parts
}

// isRoutine returns true for top-level function declarations and for
// methods defined in the body of a constructor.
func isRoutine(s ast.Statement) bool {
	switch s := s.(type) {
	case *ast.FunctionDeclaration:
		if _, ok := s.Parent().(*ast.Document); ok {
			return true
		}
		return isConstructorBody(s.Parent())
	case *ast.ExpressionStatement:
		a, ok := s.Expr.(*ast.AssignmentExpression)
		if !ok {
			return false
		}
		_, fn := a.Right.(*ast.FunctionExpression)
		return fn && isConstructorBody(s.Parent())
	case *ast.VariableDeclaration:
		if len(s.Declarators) != 1 {
			return false
		}
		_, fn := s.Declarators[0].Init.(*ast.FunctionExpression)
		return fn && isConstructorBody(s.Parent())
	}
	return false
}

func isConstructorBody(n ast.Node) bool {
	if _, ok := n.(*ast.Block); !ok {
		return false
	}
	switch fn := n.Parent().(type) {
	case *ast.FunctionDeclaration:
		return fn.Constructor
	case *ast.FunctionExpression:
		return fn.Constructor
	}
	return false
}

func (p *printer) printBlock(n *ast.Block) doc.Doc {
	if len(n.Statements) == 0 {
		return p.emptyBraces(n)
	}
	return doc.Concat{
		doc.Text("{"),
		doc.Indent(doc.HardLine, p.printStatements(n.Statements)),
		doc.HardLine,
		doc.Text("}"),
	}
}

// braceSeparator precedes the opening brace of a statement body.
func (p *printer) braceSeparator() doc.Doc {
	if p.cfg.BraceStyle == NewLine {
		return doc.HardLine
	}
	return doc.Space
}

// clauseSeparator separates the closing brace of body from a keyword
// continuing the statement, such as else.
func (p *printer) clauseSeparator(body ast.Node) doc.Doc {
	if p.cfg.BraceStyle == NewLine {
		return doc.HardLine
	}
	switch body.(type) {
	case *ast.Block, *ast.EmptyStatement:
		if ast.HasComments(body, ast.Trailing) {
			return doc.HardLine
		}
	}
	return doc.Space
}

// printBody prints a statement body in braces.
func (p *printer) printBody(body ast.Statement) doc.Doc {
	switch body.(type) {
	case *ast.Block, *ast.EmptyStatement:
		return doc.Concat{p.braceSeparator(), p.print(body)}
	}
	return doc.Concat{
		p.braceSeparator(),
		doc.Text("{"),
		doc.Indent(doc.HardLine, p.print(body)),
		doc.HardLine,
		doc.Text("}"),
	}
}

// printTest prints the parenthesized head of a compound statement.  Source
// parentheses around test are replaced by the statement's own.
func (p *printer) printTest(test ast.Expr) doc.Doc {
	paren, ok := test.(*ast.ParenthesizedExpression)
	inner := test
	if ok {
		inner = paren.Expr
	}
	d := doc.Concat{
		doc.Text("("),
		doc.Group(doc.Indent(doc.SoftLine, p.print(inner)), doc.SoftLine),
		doc.Text(")"),
	}
	if ok && !ignored(paren) {
		return p.withComments(paren, d)
	}
	if ok {
		return p.print(paren)
	}
	return d
}

// isTestOf returns true if e is the head expression of the compound
// statement n, possibly without its parentheses.
func isTestOf(n ast.Node, e ast.Expr) bool {
	var test ast.Expr
	switch n := n.(type) {
	case *ast.IfStatement:
		test = n.Test
	case *ast.WhileStatement:
		test = n.Test
	case *ast.DoUntilStatement:
		test = n.Test
	case *ast.RepeatStatement:
		test = n.Count
	case *ast.WithStatement:
		test = n.Object
	case *ast.SwitchStatement:
		test = n.Discriminant
	default:
		return false
	}
	if paren, ok := test.(*ast.ParenthesizedExpression); ok && ast.Node(paren.Expr) == ast.Node(e) {
		return true
	}
	return ast.Node(test) == ast.Node(e)
}

func (p *printer) printIf(n *ast.IfStatement) doc.Doc {
	parts := doc.Concat{doc.Text("if "), p.printTest(n.Test), p.printBody(n.Consequent)}
	if n.Alternate == nil {
		return parts
	}
	parts = append(parts, p.clauseSeparator(n.Consequent), doc.Text("else"))
	if elseIf, ok := n.Alternate.(*ast.IfStatement); ok {
		return append(parts, doc.Space, p.print(elseIf))
	}
	return append(parts, p.printBody(n.Alternate))
}

func (p *printer) printDoUntil(n *ast.DoUntilStatement) doc.Doc {
	return doc.Concat{
		doc.Text("do"),
		p.printBody(n.Body),
		p.clauseSeparator(n.Body),
		doc.Text("until "),
		p.printTest(n.Test),
		doc.Text(";"),
	}
}

func (p *printer) printFor(n *ast.ForStatement) doc.Doc {
	if n.Init == nil && n.Test == nil && n.Update == nil {
		return doc.Concat{doc.Text("for (;;)"), p.printBody(n.Body)}
	}
	clause := func(c ast.Node) doc.Doc {
		if c == nil {
			return doc.Empty
		}
		return p.print(c)
	}
	header := doc.Group(
		doc.Text("for ("),
		doc.Indent(
			doc.SoftLine,
			clause(n.Init),
			doc.Text(";"),
			doc.Line,
			clause(n.Test),
			doc.Text(";"),
			doc.Line,
			clause(n.Update),
		),
		doc.SoftLine,
		doc.Text(")"),
	)
	return doc.Concat{header, p.printBody(n.Body)}
}

func (p *printer) printSwitch(n *ast.SwitchStatement) doc.Doc {
	head := doc.Concat{doc.Text("switch "), p.printTest(n.Discriminant), p.braceSeparator()}
	if len(n.Cases) == 0 {
		return append(head, p.emptyBraces(n))
	}
	var cases doc.Concat
	for i, c := range n.Cases {
		if i > 0 {
			cases = append(cases, doc.HardLine)
			if isNextLineEmpty(p.src, n.Cases[i-1].Span().End) {
				cases = append(cases, doc.HardLine)
			}
		}
		cases = append(cases, p.print(c))
	}
	return append(head, doc.Text("{"), doc.Indent(doc.HardLine, cases), doc.HardLine, doc.Text("}"))
}

func (p *printer) printCase(n *ast.SwitchCase) doc.Doc {
	head := doc.Concat{doc.Text("default:")}
	if n.Test != nil {
		head = doc.Concat{doc.Text("case "), p.print(n.Test), doc.Text(":")}
	}
	switch {
	case len(n.Body) == 0:
		return head
	case len(n.Body) == 1:
		if block, ok := n.Body[0].(*ast.Block); ok {
			return append(head, doc.Space, p.print(block))
		}
	}
	return append(head, doc.Indent(doc.HardLine, p.printStatements(n.Body)))
}

func (p *printer) printFunction(name *ast.Identifier, params []*ast.Parameter, inherit *ast.ConstructorClause, constructor bool, body *ast.Block) doc.Doc {
	parts := doc.Concat{doc.Text("function")}
	if name != nil {
		parts = append(parts, doc.Space, p.print(name))
	}
	parts = append(parts, p.printParams(params))
	if inherit != nil {
		parts = append(parts, doc.Text(" : "), p.print(inherit))
	}
	if constructor {
		parts = append(parts, doc.Text(" constructor"))
	}
	return append(parts, p.braceSeparator(), p.print(body))
}

func (p *printer) printParams(params []*ast.Parameter) doc.Doc {
	if len(params) == 0 {
		return doc.Text("()")
	}
	printed := make([]doc.Doc, len(params))
	for i, param := range params {
		printed[i] = p.print(param)
	}
	return doc.Group(
		doc.Text("("),
		doc.Indent(doc.SoftLine, doc.Join(doc.Concat{doc.Text(","), doc.Line}, printed)),
		doc.SoftLine,
		doc.Text(")"),
	)
}

func (p *printer) printReturn(n *ast.ReturnStatement) doc.Doc {
	if n.Argument == nil {
		return doc.Text("return;")
	}
	if _, ok := n.Argument.(*ast.BinaryExpression); ok && !hasLineComment(n.Argument, ast.Leading) {
		return doc.Concat{
			doc.Text("return "),
			doc.Group(
				doc.IfBreak(doc.Text("("), nil),
				doc.Indent(doc.SoftLine, p.print(n.Argument)),
				doc.SoftLine,
				doc.IfBreak(doc.Text(")"), nil),
			),
			doc.Text(";"),
		}
	}
	return doc.Concat{doc.Text("return "), p.print(n.Argument), doc.Text(";")}
}

func (p *printer) printTry(n *ast.TryStatement) doc.Doc {
	parts := doc.Concat{doc.Text("try"), p.braceSeparator(), p.print(n.Block)}
	prev := n.Block
	if n.Handler != nil {
		parts = append(parts, p.clauseSeparator(prev), doc.Text("catch"))
		if n.Param != nil {
			parts = append(parts, doc.Text(" ("), p.print(n.Param), doc.Text(")"))
		}
		parts = append(parts, p.braceSeparator(), p.print(n.Handler))
		prev = n.Handler
	}
	if n.Finalizer != nil {
		parts = append(parts, p.clauseSeparator(prev), doc.Text("finally"), p.braceSeparator(), p.print(n.Finalizer))
	}
	return parts
}

func (p *printer) printExpressionStatement(n *ast.ExpressionStatement) doc.Doc {
	d := p.print(n.Expr)
	if n.Semicolon || needsSemicolon(n.Expr) {
		return doc.Concat{d, doc.Text(";")}
	}
	return d
}

// needsSemicolon returns true for expressions which are statements in
// their own right.
func needsSemicolon(e ast.Expr) bool {
	switch e.(type) {
	case *ast.AssignmentExpression, *ast.CallExpression, *ast.NewExpression, *ast.UpdateExpression:
		return true
	}
	return false
}

func (p *printer) printVariableDeclaration(n *ast.VariableDeclaration) doc.Doc {
	_, inFor := p.parent().(*ast.ForStatement)
	hasValue := false
	printed := make([]doc.Doc, len(n.Declarators))
	for i, d := range n.Declarators {
		printed[i] = p.print(d)
		hasValue = hasValue || d.Init != nil
	}
	parts := []doc.Doc{doc.Text(n.Keyword.String()), doc.Space, printed[0]}
	if len(printed) > 1 {
		var rest doc.Concat
		for _, d := range printed[1:] {
			sep := doc.Line
			if hasValue && !inFor {
				sep = doc.HardLine
			}
			rest = append(rest, doc.Text(","), sep, d)
		}
		parts = append(parts, doc.Indent(rest))
	}
	if !inFor {
		parts = append(parts, doc.Text(";"))
	}
	return doc.Group(parts...)
}

func (p *printer) printEnum(n *ast.EnumDeclaration) doc.Doc {
	head := doc.Concat{doc.Text("enum "), p.print(n.Name), p.braceSeparator()}
	if len(n.Members) == 0 {
		return append(head, p.emptyBraces(n))
	}
	var members doc.Concat
	for i, m := range n.Members {
		if i > 0 {
			members = append(members, doc.Text(","), doc.HardLine)
			if isNextLineEmpty(p.src, n.Members[i-1].Span().End) {
				members = append(members, doc.HardLine)
			}
		}
		members = append(members, p.print(m))
	}
	return append(head,
		doc.Text("{"),
		doc.Indent(doc.HardLine, members, doc.Text(",")),
		doc.HardLine,
		doc.Text("}"),
	)
}

func (p *printer) printMacro(n *ast.MacroDeclaration) doc.Doc {
	name := n.Name
	if n.Config != "" {
		name = n.Config + ":" + name
	}
	if n.Body == "" {
		return doc.Text("#macro " + name)
	}
	return verbatim("#macro " + name + " " + n.Body)
}
