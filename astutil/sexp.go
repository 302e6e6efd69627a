// Copyright © 2024 The gmlfmt authors

package astutil

import (
	"strings"

	"github.com/luthersystems/gmlfmt/ast"
)

// Sexp renders the tree rooted at n as a compact s-expression.  Identifiers
// and literals appear as their source text.  Other nodes appear as a
// parenthesized label followed by operators and other leaf content, then
// children.
//
//	x = a + b;  =>  (expression (assignment = x (binary + a b)))
func Sexp(n ast.Node) string {
	var b strings.Builder
	writeSexp(&b, n)
	return b.String()
}

func writeSexp(b *strings.Builder, n ast.Node) {
	switch n := n.(type) {
	case *ast.Identifier:
		b.WriteString(n.Name)
		return
	case *ast.Literal:
		b.WriteString(n.Value)
		return
	case *ast.UndefinedArgument:
		b.WriteString("_")
		return
	}
	b.WriteString("(")
	b.WriteString(label(n.Kind()))
	for _, leaf := range leaves(n) {
		b.WriteString(" ")
		b.WriteString(leaf)
	}
	for _, child := range ast.Children(n) {
		b.WriteString(" ")
		writeSexp(b, child)
	}
	b.WriteString(")")
}

var labelSuffixes = []string{"Statement", "Expression", "Declaration", "Literal"}

func label(k ast.Kind) string {
	s := k.String()
	for _, suffix := range labelSuffixes {
		if trimmed := strings.TrimSuffix(s, suffix); trimmed != "" && trimmed != s {
			s = trimmed
			break
		}
	}
	return strings.ToLower(s)
}
