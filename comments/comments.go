// Copyright © 2024 The gmlfmt authors

// Package comments attaches the comment groups collected by the parser to
// nodes of the syntax tree.
//
// Each group is classified by its placement on the source line and then
// attached as a leading, trailing or dangling comment of the node chosen by
// a binary search over the tree.  Attach appends to node comment lists in
// group order and never restructures the tree.
package comments

import (
	"bytes"
	"fmt"

	"github.com/luthersystems/gmlfmt/ast"
	"github.com/luthersystems/gmlfmt/astutil"
	"github.com/luthersystems/gmlfmt/parser/token"
)

// OverlapError is returned when a comment straddles the boundary of a node.
// It indicates a defect in span computation and is never caused by user
// input.
type OverlapError struct {
	Comment  token.Span
	Node     ast.Kind
	NodeSpan token.Span
}

func (err *OverlapError) Error() string {
	return fmt.Sprintf("comment %v overlaps %v %v", err.Comment, err.Node, err.NodeSpan)
}

// Attach classifies each group in groups and attaches it to a node below
// root.  src is the text root was parsed from.
func Attach(root ast.Node, groups []*ast.CommentGroup, src []byte) error {
	for _, g := range groups {
		if err := attach(root, g, src); err != nil {
			return err
		}
	}
	return nil
}

func attach(root ast.Node, g *ast.CommentGroup, src []byte) error {
	enclosing, preceding, following, err := decorate(root, g.Span())
	if err != nil {
		return err
	}
	g.Placement = Classify(g)

	if handleEmptyCall(g, enclosing, preceding, following) ||
		handleEmptyBraces(g, enclosing, preceding, following, src) ||
		handleClauseBoundary(g, enclosing, preceding, following) ||
		handleBody(g, enclosing, preceding, following) {
		return nil
	}

	switch g.Placement {
	case ast.OwnLine:
		switch {
		case following != nil:
			add(following, g, ast.Leading)
		case preceding != nil:
			add(preceding, g, ast.Trailing)
		default:
			add(enclosing, g, ast.Dangling)
		}
	case ast.EndOfLine:
		switch {
		case preceding != nil:
			add(preceding, g, ast.Trailing)
		case following != nil:
			add(following, g, ast.Leading)
		default:
			add(enclosing, g, ast.Dangling)
		}
	default:
		switch {
		case preceding != nil && following != nil:
			if gapIsOpening(src, g.Span().End, following.Span().Start) {
				add(following, g, ast.Leading)
			} else {
				add(preceding, g, ast.Trailing)
			}
		case following != nil:
			add(following, g, ast.Leading)
		case preceding != nil:
			add(preceding, g, ast.Trailing)
		default:
			add(enclosing, g, ast.Dangling)
		}
	}
	return nil
}

func add(n ast.Node, g *ast.CommentGroup, a ast.Attachment) {
	g.Attachment = a
	n.AddComment(g)
}

// Classify returns the placement of g based on the line breaks around it.
func Classify(g *ast.CommentGroup) ast.Placement {
	before := g.LeadingBreaks > 0 || g.AtStart
	after := g.TrailingBreaks > 0 || g.AtEnd
	switch {
	case before && after:
		return ast.OwnLine
	case after && !before:
		return ast.EndOfLine
	default:
		return ast.Remaining
	}
}

// decorate finds the innermost node enclosing span along with the closest
// children of that node preceding and following span.
func decorate(root ast.Node, span token.Span) (enclosing, preceding, following ast.Node, err error) {
	enclosing = root
	for {
		children := astutil.AttachableChildren(enclosing)
		preceding, following = nil, nil
		var inner ast.Node
		lo, hi := 0, len(children)
		for lo < hi {
			mid := (lo + hi) / 2
			child := children[mid]
			cspan := child.Span()
			switch {
			case cspan.Start <= span.Start && span.End <= cspan.End:
				inner = child
			case cspan.End <= span.Start:
				preceding = child
				lo = mid + 1
				continue
			case span.End <= cspan.Start:
				following = child
				hi = mid
				continue
			default:
				return nil, nil, nil, &OverlapError{
					Comment:  span,
					Node:     child.Kind(),
					NodeSpan: cspan,
				}
			}
			break
		}
		if inner == nil {
			return enclosing, preceding, following, nil
		}
		enclosing = inner
	}
}

// gapIsOpening reports whether src[start:end] holds nothing but whitespace
// and opening parentheses.
func gapIsOpening(src []byte, start, end int) bool {
	if start > end || end > len(src) {
		return false
	}
	for _, c := range src[start:end] {
		switch c {
		case ' ', '\t', '\r', '\n', '(':
		default:
			return false
		}
	}
	return true
}

// handleEmptyCall keeps a comment inside the parentheses of a call without
// arguments, where it has no argument to attach to.
func handleEmptyCall(g *ast.CommentGroup, enclosing, preceding, following ast.Node) bool {
	if following != nil || preceding == nil {
		return false
	}
	var callee ast.Expr
	var args []ast.Expr
	switch n := enclosing.(type) {
	case *ast.CallExpression:
		callee, args = n.Callee, n.Args
	case *ast.NewExpression:
		callee, args = n.Callee, n.Args
	case *ast.ConstructorClause:
		callee, args = n.Super, n.Args
	default:
		return false
	}
	if len(args) != 0 || ast.Node(callee) != preceding {
		return false
	}
	if g.Span().Start < callee.Span().End {
		return false
	}
	add(enclosing, g, ast.Dangling)
	return true
}

// handleEmptyBraces keeps a comment inside the braces of an enum or switch
// without members, where it has nothing to attach to.
func handleEmptyBraces(g *ast.CommentGroup, enclosing, preceding, following ast.Node, src []byte) bool {
	if following != nil || preceding == nil {
		return false
	}
	switch n := enclosing.(type) {
	case *ast.EnumDeclaration:
		if len(n.Members) != 0 {
			return false
		}
	case *ast.SwitchStatement:
		if len(n.Cases) != 0 {
			return false
		}
	default:
		return false
	}
	start, end := preceding.Span().End, g.Span().Start
	if start > end || end > len(src) || bytes.IndexByte(src[start:end], '{') < 0 {
		return false
	}
	add(enclosing, g, ast.Dangling)
	return true
}

// handleClauseBoundary makes a comment between a body and the keyword that
// continues its statement (else, until, catch, finally) trailing on the
// body, so the keyword stays after it.
func handleClauseBoundary(g *ast.CommentGroup, enclosing, preceding, following ast.Node) bool {
	if preceding == nil || following == nil {
		return false
	}
	switch n := enclosing.(type) {
	case *ast.IfStatement:
		if preceding != ast.Node(n.Consequent) || following != ast.Node(n.Alternate) {
			return false
		}
	case *ast.DoUntilStatement:
		if preceding != ast.Node(n.Body) {
			return false
		}
	case *ast.TryStatement:
		if _, ok := preceding.(*ast.Block); !ok {
			return false
		}
	default:
		return false
	}
	add(preceding, g, ast.Trailing)
	return true
}

// handleBody moves a comment between the head of a compound statement and
// its body into the body.
func handleBody(g *ast.CommentGroup, enclosing, preceding, following ast.Node) bool {
	if following == nil || preceding == nil || following != bodyOf(enclosing, preceding) {
		return false
	}
	block, ok := following.(*ast.Block)
	switch {
	case !ok:
		add(following, g, ast.Leading)
	case len(block.Statements) > 0:
		add(block.Statements[0], g, ast.Leading)
	default:
		add(block, g, ast.Dangling)
	}
	return true
}

// bodyOf returns the body of n which follows preceding, or nil.
func bodyOf(n, preceding ast.Node) ast.Node {
	var body ast.Node
	switch n := n.(type) {
	case *ast.IfStatement:
		if preceding != ast.Node(n.Test) {
			return nil
		}
		body = n.Consequent
	case *ast.WhileStatement:
		body = n.Body
	case *ast.RepeatStatement:
		body = n.Body
	case *ast.ForStatement:
		body = n.Body
	case *ast.WithStatement:
		body = n.Body
	case *ast.FunctionDeclaration:
		body = n.Body
	case *ast.FunctionExpression:
		body = n.Body
	case *ast.TryStatement:
		if n.Param == nil || preceding != ast.Node(n.Param) {
			return nil
		}
		body = n.Handler
	}
	if body == nil || ast.Node(body) == preceding {
		return nil
	}
	return body
}
