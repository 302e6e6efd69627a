// Copyright © 2024 The gmlfmt authors

package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func documentSymbols(t *testing.T, s *Server, uri, src string) []protocol.DocumentSymbol {
	t.Helper()
	doc := openDoc(s, uri, src)
	result, err := s.textDocumentDocumentSymbol(mockContext(), &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: doc.URI},
	})
	require.NoError(t, err)
	if result == nil {
		return nil
	}
	syms, ok := result.([]protocol.DocumentSymbol)
	require.True(t, ok, "unexpected result type %T", result)
	return syms
}

type symbolSummary struct {
	Name     string
	Kind     protocol.SymbolKind
	Children []symbolSummary
}

func summarize(syms []protocol.DocumentSymbol) []symbolSummary {
	var out []symbolSummary
	for _, sym := range syms {
		out = append(out, symbolSummary{
			Name:     sym.Name,
			Kind:     sym.Kind,
			Children: summarize(sym.Children),
		})
	}
	return out
}

func TestDocumentSymbol(t *testing.T) {
	s := testServer()

	t.Run("functions and globals", func(t *testing.T) {
		src := "function add(a, b = 1) {\n    return a + b;\n}\n" +
			"globalvar score;\n" +
			"var local = 1;\n" +
			"scr_move = function(dx) {\n    x += dx;\n};\n" +
			"global.on_hit = function() {};\n"
		syms := documentSymbols(t, s, "file:///test/funcs.gml", src)
		assert.Equal(t, []symbolSummary{
			{Name: "add", Kind: protocol.SymbolKindFunction},
			{Name: "score", Kind: protocol.SymbolKindVariable},
			{Name: "scr_move", Kind: protocol.SymbolKindFunction},
			{Name: "on_hit", Kind: protocol.SymbolKindFunction},
		}, summarize(syms))
		require.NotNil(t, syms[0].Detail)
		assert.Equal(t, "(a, b = …)", *syms[0].Detail)
		assert.Equal(t, protocol.UInteger(0), syms[0].Range.Start.Line)
		assert.Equal(t, protocol.UInteger(2), syms[0].Range.End.Line)
		assert.Equal(t, protocol.UInteger(9), syms[0].SelectionRange.Start.Character)
	})

	t.Run("constructor members", func(t *testing.T) {
		src := "function Vec2(_x, _y) constructor {\n" +
			"    x = _x;\n" +
			"    static length = function() {\n        return 0;\n    };\n" +
			"    var tmp = 0;\n" +
			"    scale = function(k) {};\n" +
			"}\n"
		syms := documentSymbols(t, s, "file:///test/ctor.gml", src)
		assert.Equal(t, []symbolSummary{{
			Name: "Vec2",
			Kind: protocol.SymbolKindClass,
			Children: []symbolSummary{
				{Name: "length", Kind: protocol.SymbolKindMethod},
				{Name: "tmp", Kind: protocol.SymbolKindField},
				{Name: "scale", Kind: protocol.SymbolKindMethod},
			},
		}}, summarize(syms))
		require.NotNil(t, syms[0].Detail)
		assert.Equal(t, "(_x, _y) constructor", *syms[0].Detail)
	})

	t.Run("enums and macros", func(t *testing.T) {
		src := "enum State {\n    idle,\n    run = 2,\n}\n#macro SPEED 4\n"
		syms := documentSymbols(t, s, "file:///test/enum.gml", src)
		assert.Equal(t, []symbolSummary{
			{Name: "State", Kind: protocol.SymbolKindEnum, Children: []symbolSummary{
				{Name: "idle", Kind: protocol.SymbolKindEnumMember},
				{Name: "run", Kind: protocol.SymbolKindEnumMember},
			}},
			{Name: "SPEED", Kind: protocol.SymbolKindConstant},
		}, summarize(syms))
	})

	t.Run("regions nest symbols", func(t *testing.T) {
		src := "#region Movement\nfunction walk() {}\n#region Inner\nfunction run() {}\n#endregion\n#endregion\n" +
			"#region Open\nfunction jump() {}\n"
		syms := documentSymbols(t, s, "file:///test/regions.gml", src)
		assert.Equal(t, []symbolSummary{
			{Name: "Movement", Kind: protocol.SymbolKindNamespace, Children: []symbolSummary{
				{Name: "walk", Kind: protocol.SymbolKindFunction},
				{Name: "Inner", Kind: protocol.SymbolKindNamespace, Children: []symbolSummary{
					{Name: "run", Kind: protocol.SymbolKindFunction},
				}},
			}},
			{Name: "Open", Kind: protocol.SymbolKindNamespace, Children: []symbolSummary{
				{Name: "jump", Kind: protocol.SymbolKindFunction},
			}},
		}, summarize(syms))
		assert.Equal(t, protocol.UInteger(0), syms[0].Range.Start.Line)
		assert.Equal(t, protocol.UInteger(5), syms[0].Range.End.Line)
		assert.Equal(t, protocol.UInteger(7), syms[1].Range.End.Line)
	})

	t.Run("syntax error yields no symbols", func(t *testing.T) {
		assert.Nil(t, documentSymbols(t, s, "file:///test/broken.gml", "function f( {"))
	})
}

func TestSignature(t *testing.T) {
	assert.Equal(t, "()", signature(nil, false))
	assert.Equal(t, "() constructor", signature(nil, true))
}
