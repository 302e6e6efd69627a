// Copyright © 2024 The gmlfmt authors

package lexer

import (
	"testing"

	"github.com/luthersystems/gmlfmt/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testToken struct {
	typ  token.Type
	text string
}

func lexAll(t *testing.T, input string, trivia bool) []testToken {
	t.Helper()
	lex := New(token.NewScanner("test", []byte(input)))
	var toks []testToken
	for i := 0; ; i++ {
		require.Less(t, i, 10000, "lexer did not terminate")
		tok := lex.ReadToken()
		if tok.Type.IsTrivia() && !trivia {
			continue
		}
		toks = append(toks, testToken{tok.Type, tok.Text})
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func TestLexer(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		tokens []testToken
	}{
		{"empty", ``, []testToken{
			{token.EOF, ""},
		}},
		{"identifiers and keywords", `var foo if_x`, []testToken{
			{token.VAR, "var"},
			{token.IDENT, "foo"},
			{token.IDENT, "if_x"},
			{token.EOF, ""},
		}},
		{"numbers", `10 1_000 1.5 .25 0x1F $ff 0b1010 #FF00aa`, []testToken{
			{token.INT, "10"},
			{token.INT, "1_000"},
			{token.DECIMAL, "1.5"},
			{token.DECIMAL, ".25"},
			{token.HEX, "0x1F"},
			{token.HEX, "$ff"},
			{token.BINARY, "0b1010"},
			{token.COLOR, "#FF00aa"},
			{token.EOF, ""},
		}},
		{"member access on integer", `a[1].b`, []testToken{
			{token.IDENT, "a"},
			{token.BRACKET_L, "["},
			{token.INT, "1"},
			{token.BRACKET_R, "]"},
			{token.DOT, "."},
			{token.IDENT, "b"},
			{token.EOF, ""},
		}},
		{"strings", `"a\"b" @"c""d" @'e'`, []testToken{
			{token.STRING, `"a\"b"`},
			{token.STRING_VERBATIM, `@"c""d"`},
			{token.STRING_VERBATIM, `@'e'`},
			{token.EOF, ""},
		}},
		{"verbatim strings span lines", "@\"a\nb\"", []testToken{
			{token.STRING_VERBATIM, "@\"a\nb\""},
			{token.EOF, ""},
		}},
		{"operators", `a += b ?? c; d <<= 1 <> 2 ^^ !e`, []testToken{
			{token.IDENT, "a"},
			{token.PLUS_ASSIGN, "+="},
			{token.IDENT, "b"},
			{token.NULLISH, "??"},
			{token.IDENT, "c"},
			{token.SEMICOLON, ";"},
			{token.IDENT, "d"},
			{token.SHL_ASSIGN, "<<="},
			{token.INT, "1"},
			{token.NEQ_ALT, "<>"},
			{token.INT, "2"},
			{token.LOGICAL_XOR, "^^"},
			{token.BANG, "!"},
			{token.IDENT, "e"},
			{token.EOF, ""},
		}},
		{"more operators", `i++ --j x ??= y := z >= 1 && p || q`, []testToken{
			{token.IDENT, "i"},
			{token.INCREMENT, "++"},
			{token.DECREMENT, "--"},
			{token.IDENT, "j"},
			{token.IDENT, "x"},
			{token.NULLISH_ASSIGN, "??="},
			{token.IDENT, "y"},
			{token.COLON_ASSIGN, ":="},
			{token.IDENT, "z"},
			{token.GE, ">="},
			{token.INT, "1"},
			{token.LOGICAL_AND, "&&"},
			{token.IDENT, "p"},
			{token.LOGICAL_OR, "||"},
			{token.IDENT, "q"},
			{token.EOF, ""},
		}},
		{"word operators", `a and b mod c not d`, []testToken{
			{token.IDENT, "a"},
			{token.AND_WORD, "and"},
			{token.IDENT, "b"},
			{token.MOD_WORD, "mod"},
			{token.IDENT, "c"},
			{token.NOT_WORD, "not"},
			{token.IDENT, "d"},
			{token.EOF, ""},
		}},
		{"accessors", `l[| 0] m[? "k"] g[# 1, 2] a[@ 3] s[$ "k"]`, []testToken{
			{token.IDENT, "l"},
			{token.ACCESSOR_LIST, "[|"},
			{token.INT, "0"},
			{token.BRACKET_R, "]"},
			{token.IDENT, "m"},
			{token.ACCESSOR_MAP, "[?"},
			{token.STRING, `"k"`},
			{token.BRACKET_R, "]"},
			{token.IDENT, "g"},
			{token.ACCESSOR_GRID, "[#"},
			{token.INT, "1"},
			{token.COMMA, ","},
			{token.INT, "2"},
			{token.BRACKET_R, "]"},
			{token.IDENT, "a"},
			{token.ACCESSOR_ARRAY, "[@"},
			{token.INT, "3"},
			{token.BRACKET_R, "]"},
			{token.IDENT, "s"},
			{token.ACCESSOR_STRUCT, "[$"},
			{token.STRING, `"k"`},
			{token.BRACKET_R, "]"},
			{token.EOF, ""},
		}},
		{"bracket before string or color", `[@"a", $"b", #00FF00]`, []testToken{
			{token.BRACKET_L, "["},
			{token.STRING_VERBATIM, `@"a"`},
			{token.COMMA, ","},
			{token.TEMPLATE_STRING, `$"b"`},
			{token.COMMA, ","},
			{token.COLOR, "#00FF00"},
			{token.BRACKET_R, "]"},
			{token.EOF, ""},
		}},
		{"color in brackets", `[#00FF00]`, []testToken{
			{token.BRACKET_L, "["},
			{token.COLOR, "#00FF00"},
			{token.BRACKET_R, "]"},
			{token.EOF, ""},
		}},
		{"template string", `$"a{b}c{ {x: 1}.x }d"`, []testToken{
			{token.TEMPLATE_START, `$"a{`},
			{token.IDENT, "b"},
			{token.TEMPLATE_MIDDLE, "}c{"},
			{token.BRACE_L, "{"},
			{token.IDENT, "x"},
			{token.COLON, ":"},
			{token.INT, "1"},
			{token.BRACE_R, "}"},
			{token.DOT, "."},
			{token.IDENT, "x"},
			{token.TEMPLATE_END, `}d"`},
			{token.EOF, ""},
		}},
		{"nested template string", `$"a{$"b{c}"}"`, []testToken{
			{token.TEMPLATE_START, `$"a{`},
			{token.TEMPLATE_START, `$"b{`},
			{token.IDENT, "c"},
			{token.TEMPLATE_END, `}"`},
			{token.TEMPLATE_END, `}"`},
			{token.EOF, ""},
		}},
		{"macro", "#macro FOO 1 + \\\n  2\nx", []testToken{
			{token.MACRO, "#macro"},
			{token.DIRECTIVE_TEXT, " FOO 1 + \\\n  2"},
			{token.IDENT, "x"},
			{token.EOF, ""},
		}},
		{"regions", "#region Setup code\n#endregion\n#define scr_a", []testToken{
			{token.REGION, "#region"},
			{token.DIRECTIVE_TEXT, " Setup code"},
			{token.END_REGION, "#endregion"},
			{token.DIRECTIVE_TEXT, ""},
			{token.DEFINE, "#define"},
			{token.DIRECTIVE_TEXT, " scr_a"},
			{token.EOF, ""},
		}},
		{"lexical errors", `"abc`, []testToken{
			{token.ERROR, "unterminated string literal"},
			{token.EOF, ""},
		}},
		{"invalid character", "`", []testToken{
			{token.INVALID, "unexpected character '`'"},
			{token.EOF, ""},
		}},
		{"bad number", `12abc`, []testToken{
			{token.ERROR, `invalid numeric literal "12abc"`},
			{token.EOF, ""},
		}},
		{"bad directive", `#pragma`, []testToken{
			{token.ERROR, `invalid directive or color literal "#pragma"`},
			{token.EOF, ""},
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.tokens, lexAll(t, test.input, false))
		})
	}
}

func TestLexerTrivia(t *testing.T) {
	input := "x = 1; // one\r\n\t/* two\n */ y"
	assert.Equal(t, []testToken{
		{token.IDENT, "x"},
		{token.WHITESPACE, " "},
		{token.ASSIGN, "="},
		{token.WHITESPACE, " "},
		{token.INT, "1"},
		{token.SEMICOLON, ";"},
		{token.WHITESPACE, " "},
		{token.COMMENT_LINE, "// one"},
		{token.LINE_BREAK, "\r\n"},
		{token.WHITESPACE, "\t"},
		{token.COMMENT_BLOCK, "/* two\n */"},
		{token.WHITESPACE, " "},
		{token.IDENT, "y"},
		{token.EOF, ""},
	}, lexAll(t, input, true))
}

func TestLexerUnterminatedComment(t *testing.T) {
	toks := lexAll(t, "/* abc", true)
	assert.Equal(t, []testToken{
		{token.ERROR, "unterminated block comment"},
		{token.EOF, ""},
	}, toks)
}

func TestLexerLocations(t *testing.T) {
	lex := New(token.NewScanner("test.gml", []byte("a\n  bc")))
	tok := lex.ReadToken()
	assert.Equal(t, "test.gml:1:1", tok.Source.String())
	lex.ReadToken() // line break
	lex.ReadToken() // whitespace
	tok = lex.ReadToken()
	assert.Equal(t, "bc", tok.Text)
	assert.Equal(t, 2, tok.Source.Line)
	assert.Equal(t, 3, tok.Source.Col)
	assert.Equal(t, 4, tok.Source.Pos)
	assert.Equal(t, token.Span{Start: 4, End: 6}, tok.Span())
	assert.Equal(t, token.EOF, lex.ReadToken().Type)
	assert.Equal(t, token.EOF, lex.ReadToken().Type)
}
