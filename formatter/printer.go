// Copyright © 2024 The gmlfmt authors

package formatter

import (
	"fmt"
	"strings"

	"github.com/luthersystems/gmlfmt/ast"
	"github.com/luthersystems/gmlfmt/astutil"
	"github.com/luthersystems/gmlfmt/doc"
)

// ignoreMarker at the start of a leading comment prints the commented node
// exactly as written.
const ignoreMarker = "fmt-ignore"

// printer builds the document for a syntax tree.  stack holds the nodes
// currently being printed, innermost last.
type printer struct {
	cfg     *Config
	src     []byte
	stack   []ast.Node
	printed map[*ast.CommentGroup]bool
}

type printError struct {
	err error
}

func newPrinter(cfg *Config, src []byte) *printer {
	return &printer{
		cfg:     cfg,
		src:     src,
		printed: make(map[*ast.CommentGroup]bool),
	}
}

// printRoot returns the document for root.  Every group in groups must be
// printed.
func (p *printer) printRoot(root *ast.Document, groups []*ast.CommentGroup) (d doc.Doc, err error) {
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(printError)
			if !ok {
				panic(r)
			}
			d, err = nil, perr.err
		}
	}()
	d = p.print(root)
	var missing []*ast.CommentGroup
	for _, g := range groups {
		if !p.printed[g] {
			missing = append(missing, g)
		}
	}
	if len(missing) > 0 {
		return nil, &UncommentedError{Comments: missing}
	}
	return d, nil
}

func (p *printer) push(n ast.Node) {
	p.stack = append(p.stack, n)
}

func (p *printer) pop() {
	p.stack = p.stack[:len(p.stack)-1]
}

// parent returns the node enclosing the one being printed.
func (p *printer) parent() ast.Node {
	return p.ancestor(1)
}

// ancestor returns the node i levels above the one being printed, or nil.
func (p *printer) ancestor(i int) ast.Node {
	if i >= len(p.stack) {
		return nil
	}
	return p.stack[len(p.stack)-1-i]
}

// print returns the document for n surrounded by its comments.
func (p *printer) print(n ast.Node) doc.Doc {
	p.push(n)
	defer p.pop()
	if ignored(n) {
		return p.printIgnored(n)
	}
	return p.withComments(n, p.printNode(n))
}

func (p *printer) printEach(nodes []ast.Expr) []doc.Doc {
	docs := make([]doc.Doc, len(nodes))
	for i, n := range nodes {
		docs[i] = p.print(n)
	}
	return docs
}

func (p *printer) printNode(n ast.Node) doc.Doc {
	switch n := n.(type) {
	case *ast.Document:
		return p.printDocument(n)
	case *ast.Block:
		return p.printBlock(n)
	case *ast.EmptyStatement:
		return p.emptyBraces(n)
	case *ast.ExpressionStatement:
		return p.printExpressionStatement(n)
	case *ast.VariableDeclaration:
		return p.printVariableDeclaration(n)
	case *ast.VariableDeclarator:
		if n.Init == nil {
			return p.print(n.Name)
		}
		return p.printAssignment(p.print(n.Name), " =", n.Init)
	case *ast.IfStatement:
		return p.printIf(n)
	case *ast.WhileStatement:
		return doc.Concat{doc.Text("while "), p.printTest(n.Test), p.printBody(n.Body)}
	case *ast.DoUntilStatement:
		return p.printDoUntil(n)
	case *ast.RepeatStatement:
		return doc.Concat{doc.Text("repeat "), p.printTest(n.Count), p.printBody(n.Body)}
	case *ast.ForStatement:
		return p.printFor(n)
	case *ast.WithStatement:
		return doc.Concat{doc.Text("with "), p.printTest(n.Object), p.printBody(n.Body)}
	case *ast.SwitchStatement:
		return p.printSwitch(n)
	case *ast.SwitchCase:
		return p.printCase(n)
	case *ast.FunctionDeclaration:
		return p.printFunction(n.Name, n.Params, n.Inherit, n.Constructor, n.Body)
	case *ast.FunctionExpression:
		return p.printFunction(n.Name, n.Params, n.Inherit, n.Constructor, n.Body)
	case *ast.Parameter:
		if n.Default == nil {
			return p.print(n.Name)
		}
		return p.printAssignment(p.print(n.Name), " =", n.Default)
	case *ast.ConstructorClause:
		return doc.Concat{p.print(n.Super), p.printArguments(n, n.Args)}
	case *ast.ReturnStatement:
		return p.printReturn(n)
	case *ast.BreakStatement:
		return doc.Text("break;")
	case *ast.ContinueStatement:
		return doc.Text("continue;")
	case *ast.ExitStatement:
		return doc.Text("exit;")
	case *ast.ThrowStatement:
		return doc.Concat{doc.Text("throw "), p.print(n.Argument), doc.Text(";")}
	case *ast.DeleteStatement:
		return doc.Concat{doc.Text("delete "), p.print(n.Argument), doc.Text(";")}
	case *ast.TryStatement:
		return p.printTry(n)
	case *ast.EnumDeclaration:
		return p.printEnum(n)
	case *ast.EnumMember:
		if n.Init == nil {
			return p.print(n.Name)
		}
		return p.printAssignment(p.print(n.Name), " =", n.Init)
	case *ast.MacroDeclaration:
		return p.printMacro(n)
	case *ast.RegionStatement:
		return directive("#region", n.Text)
	case *ast.EndRegionStatement:
		return directive("#endregion", n.Text)
	case *ast.DefineStatement:
		return directive("#define", n.Name)
	case *ast.Identifier:
		return doc.Text(n.Name)
	case *ast.Literal:
		return verbatim(n.Value)
	case *ast.TemplateLiteral:
		return p.printTemplate(n)
	case *ast.AssignmentExpression:
		return p.printAssignment(p.print(n.Left), " "+n.Operator.String(), n.Right)
	case *ast.BinaryExpression:
		return p.printBinary(n)
	case *ast.UnaryExpression:
		return p.printUnary(n)
	case *ast.UpdateExpression:
		if n.Prefix {
			return doc.Concat{doc.Text(n.Operator.String()), p.print(n.Argument)}
		}
		return doc.Concat{p.print(n.Argument), doc.Text(n.Operator.String())}
	case *ast.ConditionalExpression:
		return p.printConditional(n)
	case *ast.ParenthesizedExpression:
		return doc.Group(
			doc.Text("("),
			doc.Indent(doc.SoftLine, p.print(n.Expr)),
			doc.SoftLine,
			doc.Text(")"),
		)
	case *ast.CallExpression:
		if isMember(n.Callee) {
			return p.printMemberChain(n)
		}
		return doc.Concat{p.print(n.Callee), p.printArguments(n, n.Args)}
	case *ast.NewExpression:
		return doc.Concat{doc.Text("new "), p.print(n.Callee), p.printArguments(n, n.Args)}
	case *ast.MemberDotExpression:
		return doc.Concat{p.print(n.Object), doc.Text("."), p.print(n.Property)}
	case *ast.MemberIndexExpression:
		return doc.Concat{p.print(n.Object), p.printAccessor(n)}
	case *ast.ArrayLiteral:
		return p.printArray(n)
	case *ast.StructLiteral:
		return p.printStruct(n)
	case *ast.StructProperty:
		if n.Value == nil {
			return p.print(n.Key)
		}
		return p.printAssignment(p.print(n.Key), ":", n.Value)
	case *ast.UndefinedArgument:
		return doc.Text("undefined")
	}
	panic(printError{fmt.Errorf("formatter: cannot print %T", n)})
}

// ignored returns true if a leading comment of n starts with ignoreMarker.
// An expression statement is also ignored when the first comment inside it
// is a marker, as in x = /* fmt-ignore */ 1  +  2;.
func ignored(n ast.Node) bool {
	for _, g := range ast.CommentsOf(n, ast.Leading) {
		if hasIgnoreMarker(g) {
			return true
		}
	}
	if stmt, ok := n.(*ast.ExpressionStatement); ok {
		if g := firstInnerComment(stmt); g != nil && hasIgnoreMarker(g) {
			return true
		}
	}
	return false
}

func hasIgnoreMarker(g *ast.CommentGroup) bool {
	for _, tok := range g.List() {
		if strings.HasPrefix(ast.CommentBody(tok), ignoreMarker) {
			return true
		}
	}
	return false
}

// firstInnerComment returns the earliest comment group attached below n.
func firstInnerComment(n ast.Node) *ast.CommentGroup {
	var first *ast.CommentGroup
	astutil.Walk(n, func(node ast.Node, _ ast.Node, _ int) {
		if node == n {
			return
		}
		for _, g := range node.Comments() {
			if first == nil || g.Span().Start < first.Span().Start {
				first = g
			}
		}
	})
	return first
}

// printIgnored prints the source text of n.  Comments inside n are part of
// that text.
func (p *printer) printIgnored(n ast.Node) doc.Doc {
	astutil.Walk(n, func(node ast.Node, _ ast.Node, _ int) {
		for _, g := range node.Comments() {
			if node != n || g.Attachment == ast.Dangling {
				p.printed[g] = true
			}
		}
	})
	span := n.Span()
	return p.withComments(n, verbatim(string(p.src[span.Start:span.End])))
}

// verbatim prints text which may span several lines without reindenting
// its continuation lines.
func verbatim(text string) doc.Doc {
	if !strings.Contains(text, "\n") {
		return doc.Text(text)
	}
	lines := strings.Split(text, "\n")
	parts := make([]doc.Doc, len(lines))
	for i, line := range lines {
		parts[i] = doc.Text(line)
	}
	return doc.Join(doc.LiteralLine, parts)
}

func directive(name, text string) doc.Doc {
	if text == "" {
		return doc.Text(name)
	}
	return verbatim(name + " " + text)
}
