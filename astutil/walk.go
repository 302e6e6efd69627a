// Copyright © 2024 The gmlfmt authors

// Package astutil provides shared syntax tree utilities.
//
// These helpers are used by the comment mapper, the formatter and the
// language server for traversing and comparing parsed GML.
package astutil

import "github.com/luthersystems/gmlfmt/ast"

// Walk calls fn for every node in the tree, depth-first in source order.
// parent is nil for root.
func Walk(root ast.Node, fn func(node ast.Node, parent ast.Node, depth int)) {
	walkNode(root, nil, 0, fn)
}

func walkNode(node ast.Node, parent ast.Node, depth int, fn func(ast.Node, ast.Node, int)) {
	if node == nil {
		return
	}
	fn(node, parent, depth)
	for _, child := range ast.Children(node) {
		walkNode(child, node, depth+1, fn)
	}
}

// Inspect traverses the tree depth-first calling fn for each node.  The
// children of a node are skipped when fn returns false.
func Inspect(root ast.Node, fn func(ast.Node) bool) {
	if root == nil || !fn(root) {
		return
	}
	for _, child := range ast.Children(root) {
		Inspect(child, fn)
	}
}

// AttachableChildren returns the children of n which comments may attach
// to.  Zero-width placeholder nodes are excluded.
func AttachableChildren(n ast.Node) []ast.Node {
	var attachable []ast.Node
	for _, child := range ast.Children(n) {
		if _, ok := child.(*ast.UndefinedArgument); ok {
			continue
		}
		if child.Span().Len() == 0 {
			continue
		}
		attachable = append(attachable, child)
	}
	return attachable
}

// CalleeName returns the identifier naming the function invoked by a call
// or new expression, or "".
func CalleeName(n ast.Node) string {
	var callee ast.Expr
	switch n := n.(type) {
	case *ast.CallExpression:
		callee = n.Callee
	case *ast.NewExpression:
		callee = n.Callee
	default:
		return ""
	}
	if id, ok := callee.(*ast.Identifier); ok {
		return id.Name
	}
	return ""
}

// Ancestors returns the chain of nodes enclosing n, nearest first.
func Ancestors(n ast.Node) []ast.Node {
	var chain []ast.Node
	for p := n.Parent(); p != nil; p = p.Parent() {
		chain = append(chain, p)
	}
	return chain
}

// NodeAt returns the path from root to the innermost node whose span
// contains offset.  The path is empty when offset lies outside root.
func NodeAt(root ast.Node, offset int) []ast.Node {
	var path []ast.Node
	node := root
	for node != nil {
		span := node.Span()
		if offset < span.Start || offset > span.End {
			break
		}
		path = append(path, node)
		var next ast.Node
		for _, child := range AttachableChildren(node) {
			span := child.Span()
			if span.Start <= offset && offset <= span.End {
				next = child
				break
			}
		}
		node = next
	}
	return path
}
