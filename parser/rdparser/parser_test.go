// Copyright © 2024 The gmlfmt authors

package rdparser

import (
	"errors"
	"fmt"
	"testing"

	"github.com/luthersystems/gmlfmt/ast"
	"github.com/luthersystems/gmlfmt/astutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser(t *testing.T) {
	tests := []struct {
		source string
		output string
	}{
		{``, `(document)`},
		{`x = 1;`, `(document (expression (assignment = x 1)))`},
		{`x += a + b * c`, `(document (expression (assignment += x (binary + a (binary * b c)))))`},
		{`a - b - c;`, `(document (expression (binary - (binary - a b) c)))`},
		{`x = a = b;`, `(document (expression (assignment = x (binary = a b))))`},
		{`x = a == b && c;`, `(document (expression (assignment = x (binary && (binary == a b) c))))`},
		{`x = a and b or not c;`, `(document (expression (assignment = x (binary or (binary and a b) (unary not c)))))`},
		{`x = a ?? b;`, `(document (expression (assignment = x (binary ?? a b))))`},
		{`x = a ? b : c ? d : e;`, `(document (expression (assignment = x (conditional a b (conditional c d e)))))`},
		{`x = -y;`, `(document (expression (assignment = x (unary - y))))`},
		{`i++;`, `(document (expression (update ++ postfix i)))`},
		{`--i;`, `(document (expression (update -- prefix i)))`},
		{`x = (a + b) * c;`, `(document (expression (assignment = x (binary * (parenthesized (binary + a b)) c))))`},
		{`foo(1, "a", b);`, `(document (expression (call foo 1 "a" b)))`},
		{`foo(a,,b);`, `(document (expression (call foo a _ b)))`},
		{`foo(a,);`, `(document (expression (call foo a)))`},
		{`a.b.c(d)[0];`, `(document (expression (memberindex [ (call (memberdot (memberdot a b) c) d) 0)))`},
		{`grid[# 1, 2] = 0;`, `(document (expression (assignment = (memberindex [# grid 1 2) 0)))`},
		{`m[? "k"] = list[| 0];`, `(document (expression (assignment = (memberindex [? m "k") (memberindex [| list 0))))`},
		{`x = [1, 2, 3,];`, `(document (expression (assignment = x (array 1 2 3))))`},
		{`x = {a: 1, b};`, `(document (expression (assignment = x (struct (structproperty a 1) (structproperty b)))))`},
		{`x = new Vec2(1, 2);`, `(document (expression (assignment = x (new Vec2 1 2))))`},
		{`x = $"a{b}c";`, `(document (expression (assignment = x (template "$\"a{" "}c\"" b))))`},
		{`var a = 1, b;`, `(document (variable var (variabledeclarator a 1) (variabledeclarator b)))`},
		{`static count = 0`, `(document (variable static (variabledeclarator count 0)))`},
		{`if (a) b(); else c();`, `(document (if (parenthesized a) (expression (call b)) (expression (call c))))`},
		{`if a then { b = 1 }`, `(document (if a (block (expression (assignment = b 1)))))`},
		{`while (x) x--;`, `(document (while (parenthesized x) (expression (update -- postfix x))))`},
		{`do { x++ } until (x > 3);`, `(document (dountil (block (expression (update ++ postfix x))) (parenthesized (binary > x 3))))`},
		{`repeat (3) f();`, `(document (repeat (parenthesized 3) (expression (call f))))`},
		{`for (var i = 0; i < n; i++) {}`, `(document (for (variable var (variabledeclarator i 0)) (binary < i n) (update ++ postfix i) (block)))`},
		{`for (;;) break;`, `(document (for (break)))`},
		{`with (obj) x = 1;`, `(document (with (parenthesized obj) (expression (assignment = x 1))))`},
		{`switch (x) { case 1: a(); break; default: b(); }`, `(document (switch (parenthesized x) (switchcase 1 (expression (call a)) (break)) (switchcase (expression (call b)))))`},
		{`try { a() } catch (e) { b() } finally { c() }`, `(document (try (block (expression (call a))) e (block (expression (call b))) (block (expression (call c)))))`},
		{`function f(a, b = 2) { return a + b; }`, `(document (function f (parameter a) (parameter b 2) (block (return (binary + a b)))))`},
		{`function Child(a) : Parent(a) constructor {}`, `(document (function constructor Child (parameter a) (constructorclause Parent a) (block)))`},
		{`f = function() { exit; };`, `(document (expression (assignment = f (function (block (exit))))))`},
		{`enum Color { red, green = 5, }`, `(document (enum Color (enummember red) (enummember green 5)))`},
		{`#macro PI 3.14`, `(document (macro PI "3.14"))`},
		{`#macro Release:DEBUG false`, `(document (macro Release:DEBUG "false"))`},
		{"#region Setup\nx = 1;\n#endregion", `(document (region "Setup") (expression (assignment = x 1)) (endregion ""))`},
		{`delete obj;`, `(document (delete obj))`},
		{`throw "oops";`, `(document (throw "oops"))`},
		{`return;`, `(document (return))`},
		{`;;`, `(document)`},
		{`if (x) ;`, `(document (if (parenthesized x) (empty)))`},
		{`x = a.default;`, `(document (expression (assignment = x (memberdot a default))))`},
		{`x = c_red | $ff00ff;`, `(document (expression (assignment = x (binary | c_red $ff00ff))))`},
	}

	for i, test := range tests {
		doc, _, err := Parse(fmt.Sprintf("test%d", i), []byte(test.source))
		if !assert.NoError(t, err, "test %d: %q", i, test.source) {
			continue
		}
		assert.Equal(t, test.output, astutil.Sexp(doc), "test %d: %q", i, test.source)
	}
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		source string
		line   int
		col    int
		msg    string
	}{
		{"if (x { }", 1, 7, "expected ')', found '{'"},
		{"x = ;", 1, 5, "expected expression, found ';'"},
		{"{ x = 1;", 1, 9, "expected '}', found end of file"},
		{"foo(1, 2", 1, 9, "expected ')', found end of file"},
		{"x = 1;\n/* open", 2, 1, "unterminated block comment"},
		{"x = \"abc", 1, 5, "unterminated string literal"},
		{"#macro", 1, 1, "macro definition is invalid"},
		{"try {}", 1, 7, "expected 'catch' or 'finally', found end of file"},
		{"switch (x) { y }", 1, 14, "expected 'case', 'default' or '}', found 'y'"},
		{")", 1, 1, "expected statement, found ')'"},
	}

	for i, test := range tests {
		_, _, err := Parse("test", []byte(test.source))
		var serr *SyntaxError
		if !assert.True(t, errors.As(err, &serr), "test %d: %q: %v", i, test.source, err) {
			continue
		}
		assert.Equal(t, test.msg, serr.Message, "test %d", i)
		assert.Equal(t, test.line, serr.Line(), "test %d line", i)
		assert.Equal(t, test.col, serr.Col(), "test %d col", i)
	}
}

func TestParserSpans(t *testing.T) {
	src := "x = foo(1, 2);\nif (a) {\n    b();\n}\n"
	doc, _, err := Parse("test", []byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Statements, 2)

	stmt := doc.Statements[0].(*ast.ExpressionStatement)
	assert.Equal(t, "x = foo(1, 2);", src[stmt.Span().Start:stmt.Span().End])
	assign := stmt.Expr.(*ast.AssignmentExpression)
	assert.Equal(t, "foo(1, 2)", src[assign.Right.Span().Start:assign.Right.Span().End])

	ifs := doc.Statements[1].(*ast.IfStatement)
	assert.Equal(t, "if (a) {\n    b();\n}", src[ifs.Span().Start:ifs.Span().End])
	assert.Equal(t, len(src), doc.Span().End)

	astutil.Walk(doc, func(node, parent ast.Node, depth int) {
		assert.Equal(t, parent, node.Parent())
		if parent != nil {
			assert.True(t, parent.Span().Contains(node.Span()), "%v within %v", node.Kind(), parent.Kind())
		}
	})
}

func TestParserConstructorClauseParent(t *testing.T) {
	doc, _, err := Parse("test", []byte("function Child(a) : Base(a) constructor {}"))
	require.NoError(t, err)
	fn := doc.Statements[0].(*ast.FunctionDeclaration)
	require.NotNil(t, fn.Inherit)
	assert.Equal(t, ast.Node(fn), fn.Inherit.Parent())
	assert.Equal(t, "Base", fn.Inherit.Super.Name)
	assert.Equal(t, ast.Node(fn.Inherit), fn.Inherit.Super.Parent())
}

func TestParserElidedArgumentSpan(t *testing.T) {
	src := "f(a,,b);"
	doc, _, err := Parse("test", []byte(src))
	require.NoError(t, err)
	call := doc.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.CallExpression)
	require.Len(t, call.Args, 3)
	elided, ok := call.Args[1].(*ast.UndefinedArgument)
	require.True(t, ok)
	assert.Equal(t, 0, elided.Span().Len())
	assert.Equal(t, 4, elided.Span().Start)
}

func TestCommentGroups(t *testing.T) {
	src := "// head\n\n\nx = 1; // one /* two */\n/* a */ /* b */\ny = 2;\n// tail\n"
	_, groups, err := Parse("test", []byte(src))
	require.NoError(t, err)
	require.Len(t, groups, 4)

	head := groups[0]
	assert.Equal(t, "// head", head.Text())
	assert.True(t, head.AtStart)
	assert.False(t, head.AtEnd)
	assert.Equal(t, 0, head.LeadingBreaks)
	assert.Equal(t, 3, head.TrailingBreaks)

	one := groups[1]
	assert.Equal(t, "// one /* two */", one.Text())
	assert.False(t, one.AtStart)
	assert.Equal(t, 0, one.LeadingBreaks)
	assert.Equal(t, 1, one.TrailingBreaks)

	ab := groups[2]
	assert.Equal(t, "/* a */ /* b */", ab.Text())
	assert.Len(t, ab.List(), 2)
	assert.Equal(t, 1, ab.LeadingBreaks)
	assert.Equal(t, 1, ab.TrailingBreaks)
	assert.False(t, ab.EndsWithLineComment())

	tail := groups[3]
	assert.True(t, tail.AtEnd)
	assert.True(t, tail.EndsWithLineComment())
	assert.Equal(t, 1, tail.LeadingBreaks)
	assert.Equal(t, 1, tail.TrailingBreaks)
}

func TestTokenSourcePeekAt(t *testing.T) {
	doc, _, err := Parse("test", []byte("function f() {}\nfunction () {}"))
	require.NoError(t, err)
	require.Len(t, doc.Statements, 2)
	assert.IsType(t, &ast.FunctionDeclaration{}, doc.Statements[0])
	assert.IsType(t, &ast.ExpressionStatement{}, doc.Statements[1])
}
