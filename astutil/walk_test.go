// Copyright © 2024 The gmlfmt authors

package astutil_test

import (
	"testing"

	"github.com/luthersystems/gmlfmt/ast"
	"github.com/luthersystems/gmlfmt/astutil"
	"github.com/luthersystems/gmlfmt/parser/rdparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *ast.Document {
	t.Helper()
	doc, _, err := rdparser.Parse("test", []byte(src))
	require.NoError(t, err)
	return doc
}

func TestWalk_VisitsAllNodes(t *testing.T) {
	doc := parse(t, "foo(bar, baz);")
	var visited []string
	var depths []int
	astutil.Walk(doc, func(node ast.Node, parent ast.Node, depth int) {
		if id, ok := node.(*ast.Identifier); ok {
			visited = append(visited, id.Name)
			depths = append(depths, depth)
		}
	})
	assert.Equal(t, []string{"foo", "bar", "baz"}, visited)
	assert.Equal(t, []int{3, 3, 3}, depths)
}

func TestInspect_SkipsChildren(t *testing.T) {
	doc := parse(t, "f = function() { inner(); }; outer();")
	var calls []string
	astutil.Inspect(doc, func(n ast.Node) bool {
		if _, ok := n.(*ast.FunctionExpression); ok {
			return false
		}
		if name := astutil.CalleeName(n); name != "" {
			calls = append(calls, name)
		}
		return true
	})
	assert.Equal(t, []string{"outer"}, calls)
}

func TestAttachableChildren_SkipsElided(t *testing.T) {
	doc := parse(t, "f(a,,b);")
	call := doc.Statements[0].(*ast.ExpressionStatement).Expr
	assert.Len(t, ast.Children(call), 4)
	children := astutil.AttachableChildren(call)
	require.Len(t, children, 3)
	for _, c := range children {
		assert.NotEqual(t, ast.UndefinedArgumentKind, c.Kind())
	}
}

func TestCalleeName(t *testing.T) {
	doc := parse(t, "a = new Vec2(); b = obj.m(); c = f();")
	var names []string
	astutil.Inspect(doc, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.CallExpression, *ast.NewExpression:
			names = append(names, astutil.CalleeName(n))
		}
		return true
	})
	assert.Equal(t, []string{"Vec2", "", "f"}, names)
}

func TestNodeAt(t *testing.T) {
	src := "x = foo(1, bar);"
	doc := parse(t, src)
	path := astutil.NodeAt(doc, 12)
	require.NotEmpty(t, path)
	last := path[len(path)-1]
	id, ok := last.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "bar", id.Name)
	assert.Equal(t, ast.DocumentKind, path[0].Kind())

	ancestors := astutil.Ancestors(last)
	assert.Equal(t, len(path)-1, len(ancestors))
	assert.Equal(t, ast.DocumentKind, ancestors[len(ancestors)-1].Kind())
}

func TestSexp(t *testing.T) {
	doc := parse(t, "x = a + b;")
	assert.Equal(t, "(document (expression (assignment = x (binary + a b))))", astutil.Sexp(doc))
}
