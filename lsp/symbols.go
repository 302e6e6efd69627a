// Copyright © 2024 The gmlfmt authors

package lsp

import (
	"strings"

	"github.com/luthersystems/gmlfmt/ast"
	"github.com/luthersystems/gmlfmt/parser/token"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentDocumentSymbol handles the textDocument/documentSymbol request.
// Symbols are functions, constructors and their methods, enums, macros and
// global variables.  Symbols between #region and #endregion nest under a
// namespace symbol named after the region.
func (s *Server) textDocumentDocumentSymbol(_ *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	_, root, lines, _ := doc.snapshot()
	if root == nil {
		return nil, nil
	}
	c := &symbolCollector{lines: lines}
	return c.statements(root.Statements, true), nil
}

type symbolCollector struct {
	lines *lineIndex
}

// statements collects the symbols declared by stmts.  Regions are only
// recognized in statement lists, where they may open and close.
func (c *symbolCollector) statements(stmts []ast.Statement, topLevel bool) []protocol.DocumentSymbol {
	type open struct {
		region  *ast.RegionStatement
		symbols []protocol.DocumentSymbol
	}
	stack := []*open{{}}
	for _, stmt := range stmts {
		top := stack[len(stack)-1]
		switch n := stmt.(type) {
		case *ast.RegionStatement:
			stack = append(stack, &open{region: n})
			continue
		case *ast.EndRegionStatement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
				parent := stack[len(stack)-1]
				parent.symbols = append(parent.symbols, c.region(top.region, top.symbols, n.Span().End))
			}
			continue
		}
		top.symbols = append(top.symbols, c.statement(stmt, topLevel)...)
	}
	// Close unterminated regions at the end of the list.
	for len(stack) > 1 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		end := top.region.Span().End
		if n := len(top.symbols); n > 0 {
			end = max(end, c.lines.offset(top.symbols[n-1].Range.End))
		}
		parent := stack[len(stack)-1]
		parent.symbols = append(parent.symbols, c.region(top.region, top.symbols, end))
	}
	return stack[0].symbols
}

func (c *symbolCollector) region(n *ast.RegionStatement, children []protocol.DocumentSymbol, end int) protocol.DocumentSymbol {
	name := n.Text
	if name == "" {
		name = "#region"
	}
	return protocol.DocumentSymbol{
		Name:           name,
		Kind:           protocol.SymbolKindNamespace,
		Range:          c.lines.span(token.Span{Start: n.Span().Start, End: end}),
		SelectionRange: c.lines.span(n.Span()),
		Children:       children,
	}
}

func (c *symbolCollector) statement(stmt ast.Statement, topLevel bool) []protocol.DocumentSymbol {
	switch n := stmt.(type) {
	case *ast.FunctionDeclaration:
		return []protocol.DocumentSymbol{c.function(n, n.Name, n.Params, n.Constructor, n.Body, protocol.SymbolKindFunction)}
	case *ast.EnumDeclaration:
		return []protocol.DocumentSymbol{c.enum(n)}
	case *ast.MacroDeclaration:
		detail := n.Body
		return []protocol.DocumentSymbol{{
			Name:           n.Name,
			Detail:         &detail,
			Kind:           protocol.SymbolKindConstant,
			Range:          c.lines.span(n.Span()),
			SelectionRange: c.lines.span(n.Span()),
		}}
	case *ast.VariableDeclaration:
		return c.variables(n, topLevel)
	case *ast.ExpressionStatement:
		assign, ok := n.Expr.(*ast.AssignmentExpression)
		if !ok || assign.Operator != token.ASSIGN {
			return nil
		}
		fn, ok := assign.Right.(*ast.FunctionExpression)
		if !ok {
			return nil
		}
		name := assignedName(assign.Left)
		if name == nil {
			return nil
		}
		kind := protocol.SymbolKindFunction
		if !topLevel {
			kind = protocol.SymbolKindMethod
		}
		sym := c.function(fn, nil, fn.Params, fn.Constructor, fn.Body, kind)
		sym.Name = name.Name
		sym.Range = c.lines.span(n.Span())
		sym.SelectionRange = c.lines.span(assign.Left.Span())
		return []protocol.DocumentSymbol{sym}
	}
	return nil
}

// assignedName returns the identifier an assignment names: x in "x = ..."
// and in "global.x = ...".
func assignedName(left ast.Expr) *ast.Identifier {
	switch left := left.(type) {
	case *ast.Identifier:
		return left
	case *ast.MemberDotExpression:
		if obj, ok := left.Object.(*ast.Identifier); ok && obj.Name == "global" {
			return left.Property
		}
	}
	return nil
}

func (c *symbolCollector) function(n ast.Node, name *ast.Identifier, params []*ast.Parameter, constructor bool, body *ast.Block, kind protocol.SymbolKind) protocol.DocumentSymbol {
	var children []protocol.DocumentSymbol
	if constructor {
		kind = protocol.SymbolKindClass
		children = c.statements(body.Statements, false)
	}
	detail := signature(params, constructor)
	sym := protocol.DocumentSymbol{
		Detail:         &detail,
		Kind:           kind,
		Range:          c.lines.span(n.Span()),
		SelectionRange: c.lines.span(n.Span()),
		Children:       children,
	}
	if name != nil {
		sym.Name = name.Name
		sym.SelectionRange = c.lines.span(name.Span())
	}
	return sym
}

func (c *symbolCollector) enum(n *ast.EnumDeclaration) protocol.DocumentSymbol {
	members := make([]protocol.DocumentSymbol, 0, len(n.Members))
	for _, m := range n.Members {
		members = append(members, protocol.DocumentSymbol{
			Name:           m.Name.Name,
			Kind:           protocol.SymbolKindEnumMember,
			Range:          c.lines.span(m.Span()),
			SelectionRange: c.lines.span(m.Name.Span()),
		})
	}
	return protocol.DocumentSymbol{
		Name:           n.Name.Name,
		Kind:           protocol.SymbolKindEnum,
		Range:          c.lines.span(n.Span()),
		SelectionRange: c.lines.span(n.Name.Span()),
		Children:       members,
	}
}

// variables reports globalvar declarations anywhere and static or var
// declarations directly in a constructor body.
func (c *symbolCollector) variables(n *ast.VariableDeclaration, topLevel bool) []protocol.DocumentSymbol {
	kind := protocol.SymbolKindVariable
	switch {
	case n.Keyword == token.GLOBALVAR:
	case !topLevel:
		kind = protocol.SymbolKindField
	default:
		return nil
	}
	var syms []protocol.DocumentSymbol
	for _, d := range n.Declarators {
		sym := protocol.DocumentSymbol{
			Name:           d.Name.Name,
			Kind:           kind,
			Range:          c.lines.span(d.Span()),
			SelectionRange: c.lines.span(d.Name.Span()),
		}
		if fn, ok := d.Init.(*ast.FunctionExpression); ok {
			sym.Kind = protocol.SymbolKindMethod
			detail := signature(fn.Params, fn.Constructor)
			sym.Detail = &detail
		}
		syms = append(syms, sym)
	}
	return syms
}

// signature renders a short parameter list such as "(x, y = 0)".
func signature(params []*ast.Parameter, constructor bool) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name.Name
		if p.Default != nil {
			names[i] += " = …"
		}
	}
	sig := "(" + strings.Join(names, ", ") + ")"
	if constructor {
		sig += " constructor"
	}
	return sig
}
