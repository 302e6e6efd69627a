// Copyright © 2024 The gmlfmt authors

package lsp

import (
	"strings"

	"github.com/luthersystems/gmlfmt/parser/lexer"
	"github.com/luthersystems/gmlfmt/parser/token"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Semantic token type indices. The order matches semanticTokenLegend().
const (
	semTokenVariable = iota
	semTokenFunction
	semTokenMacro
	semTokenKeyword
	semTokenComment
	semTokenString
	semTokenNumber
	semTokenOperator
)

// semanticTokenLegend returns the legend that the client uses to decode tokens.
func semanticTokenLegend() protocol.SemanticTokensLegend {
	return protocol.SemanticTokensLegend{
		TokenTypes: []string{
			"variable", // 0
			"function", // 1
			"macro",    // 2
			"keyword",  // 3
			"comment",  // 4
			"string",   // 5
			"number",   // 6
			"operator", // 7
		},
		TokenModifiers: []string{},
	}
}

// rawToken is an intermediate representation before delta encoding.
type rawToken struct {
	line      int // 0-based
	startChar int // 0-based, UTF-16 units
	length    int // UTF-16 units
	tokenType int
	modifiers int
}

// textDocumentSemanticTokensFull handles the textDocument/semanticTokens/full
// request.  Tokens are classified lexically so highlighting survives syntax
// errors up to the first malformed token.
func (s *Server) textDocumentSemanticTokensFull(_ *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	content, _, lines, _ := doc.snapshot()
	tokens := lexicalTokens(uriToPath(doc.URI), content, lines)
	return &protocol.SemanticTokens{Data: deltaEncode(tokens)}, nil
}

func lexicalTokens(file, content string, lines *lineIndex) []rawToken {
	var all []*token.Token
	lex := lexer.New(token.NewScanner(file, []byte(content)))
	for {
		tok := lex.ReadToken()
		if tok.Type == token.EOF || tok.Type == token.ERROR || tok.Type == token.INVALID {
			break
		}
		if tok.Type == token.WHITESPACE || tok.Type == token.LINE_BREAK {
			continue
		}
		all = append(all, tok)
	}

	var tokens []rawToken
	for i, tok := range all {
		typ, ok := classify(tok, all[i+1:])
		if !ok {
			continue
		}
		tokens = appendToken(tokens, tok, typ, lines)
	}
	return tokens
}

// classify returns the semantic type of tok given the tokens following it.
func classify(tok *token.Token, next []*token.Token) (int, bool) {
	switch typ := tok.Type; {
	case typ.IsComment():
		return semTokenComment, true
	case typ.IsKeyword():
		return semTokenKeyword, true
	case typ == token.IDENT:
		if len(next) > 0 && next[0].Type == token.PAREN_L {
			return semTokenFunction, true
		}
		return semTokenVariable, true
	case typ == token.INT, typ == token.DECIMAL, typ == token.HEX, typ == token.BINARY, typ == token.COLOR:
		return semTokenNumber, true
	case typ == token.STRING, typ == token.STRING_VERBATIM, typ == token.TEMPLATE_STRING,
		typ == token.TEMPLATE_START, typ == token.TEMPLATE_MIDDLE, typ == token.TEMPLATE_END:
		return semTokenString, true
	case typ == token.MACRO, typ == token.REGION, typ == token.END_REGION, typ == token.DEFINE:
		return semTokenMacro, true
	case typ >= token.PLUS && typ <= token.QUESTION:
		return semTokenOperator, true
	}
	return 0, false
}

// appendToken adds tok, split at line breaks since a semantic token may
// not span lines.
func appendToken(tokens []rawToken, tok *token.Token, typ int, lines *lineIndex) []rawToken {
	offset := tok.Source.Pos
	for i, part := range strings.Split(tok.Text, "\n") {
		if i > 0 {
			offset++ // the line break
		}
		text := strings.TrimSuffix(part, "\r")
		if text != "" {
			pos := lines.position(offset)
			tokens = append(tokens, rawToken{
				line:      int(pos.Line),
				startChar: int(pos.Character),
				length:    utf16Len(text),
				tokenType: typ,
			})
		}
		offset += len(part)
	}
	return tokens
}

// deltaEncode converts tokens sorted by position to the relative integer
// encoding of the LSP semantic tokens response.
func deltaEncode(tokens []rawToken) []protocol.UInteger {
	data := make([]protocol.UInteger, 0, len(tokens)*5)
	prevLine := 0
	prevChar := 0
	for _, tok := range tokens {
		deltaLine := tok.line - prevLine
		deltaChar := tok.startChar
		if deltaLine == 0 {
			deltaChar = tok.startChar - prevChar
		}
		data = append(data,
			safeUint(deltaLine),
			safeUint(deltaChar),
			safeUint(tok.length),
			safeUint(tok.tokenType),
			safeUint(tok.modifiers),
		)
		prevLine = tok.line
		prevChar = tok.startChar
	}
	return data
}
