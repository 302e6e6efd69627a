// Copyright © 2024 The gmlfmt authors

package astutil

import (
	"hash"
	"hash/fnv"
	"strconv"

	"github.com/luthersystems/gmlfmt/ast"
)

// Hash returns a structural hash of the tree rooted at n.  Source
// positions, comments and formatting do not contribute.  Trees which differ
// only in the ways the formatter is allowed to rewrite them hash equally:
//
//   - a block holding exactly one statement hashes as that statement
//   - an empty statement hashes as an empty block
//   - an elided call argument hashes as the literal undefined
//   - parentheses are transparent
//   - expression statement semicolons are ignored
func Hash(n ast.Node) uint64 {
	h := fnv.New64a()
	writeHash(h, n)
	return h.Sum64()
}

const nilNode = "\x01nil"

func writeHash(h hash.Hash64, n ast.Node) {
	n = canonical(n)
	if n == nil {
		writeString(h, nilNode)
		return
	}
	switch n := n.(type) {
	case *ast.UndefinedArgument:
		writeString(h, ast.LiteralKind.String())
		writeString(h, "undefined")
		writeString(h, "0")
		return
	case *ast.EmptyStatement:
		writeString(h, ast.BlockKind.String())
		writeString(h, "0")
		return
	case *ast.ForStatement:
		// Optional slots are positional.
		writeString(h, n.Kind().String())
		writeString(h, "4")
		writeHash(h, n.Init)
		writeHash(h, optionalExpr(n.Test))
		writeHash(h, optionalExpr(n.Update))
		writeHash(h, n.Body)
		return
	}
	writeString(h, n.Kind().String())
	for _, leaf := range leaves(n) {
		writeString(h, leaf)
	}
	children := ast.Children(n)
	writeString(h, strconv.Itoa(len(children)))
	for _, child := range children {
		writeHash(h, child)
	}
}

// optionalExpr avoids passing a typed nil through the ast.Node interface.
func optionalExpr(e ast.Expr) ast.Node {
	if e == nil {
		return nil
	}
	return e
}

func canonical(n ast.Node) ast.Node {
	for {
		switch x := n.(type) {
		case *ast.Block:
			if len(x.Statements) != 1 {
				return n
			}
			n = x.Statements[0]
		case *ast.ParenthesizedExpression:
			n = x.Expr
		default:
			return n
		}
	}
}

func writeString(h hash.Hash64, s string) {
	h.Write([]byte(s))
	h.Write([]byte{0})
}

// leaves returns the non-node content of n which distinguishes it from
// other nodes of the same kind.
func leaves(n ast.Node) []string {
	switch n := n.(type) {
	case *ast.Identifier:
		return []string{n.Name}
	case *ast.Literal:
		return []string{n.Value}
	case *ast.TemplateLiteral:
		quoted := make([]string, len(n.Strings))
		for i, s := range n.Strings {
			quoted[i] = strconv.Quote(s)
		}
		return quoted
	case *ast.AssignmentExpression:
		return []string{n.Operator.String()}
	case *ast.BinaryExpression:
		return []string{n.Operator.String()}
	case *ast.UnaryExpression:
		return []string{n.Operator.String()}
	case *ast.UpdateExpression:
		if n.Prefix {
			return []string{n.Operator.String(), "prefix"}
		}
		return []string{n.Operator.String(), "postfix"}
	case *ast.MemberIndexExpression:
		return []string{n.Accessor.String()}
	case *ast.VariableDeclaration:
		return []string{n.Keyword.String()}
	case *ast.MacroDeclaration:
		if n.Config != "" {
			return []string{n.Config + ":" + n.Name, strconv.Quote(n.Body)}
		}
		return []string{n.Name, strconv.Quote(n.Body)}
	case *ast.RegionStatement:
		return []string{strconv.Quote(n.Text)}
	case *ast.EndRegionStatement:
		return []string{strconv.Quote(n.Text)}
	case *ast.DefineStatement:
		return []string{n.Name}
	case *ast.FunctionDeclaration:
		if n.Constructor {
			return []string{"constructor"}
		}
	case *ast.FunctionExpression:
		if n.Constructor {
			return []string{"constructor"}
		}
	}
	return nil
}
