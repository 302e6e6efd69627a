// Copyright © 2024 The gmlfmt authors

package lsp

import (
	"github.com/luthersystems/gmlfmt/ast"
	"github.com/luthersystems/gmlfmt/astutil"
	"github.com/luthersystems/gmlfmt/parser/lexer"
	"github.com/luthersystems/gmlfmt/parser/token"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentFoldingRange handles the textDocument/foldingRange request.
// It returns folding ranges for multi-line blocks and literals,
// #region/#endregion pairs and runs of comments.  Regions and comments are
// found by the lexer so they fold even while the document has a syntax
// error.
func (s *Server) textDocumentFoldingRange(_ *glsp.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	content, root, lines, _ := doc.snapshot()

	var ranges []protocol.FoldingRange
	if root != nil {
		ranges = append(ranges, syntaxFoldingRanges(root, lines)...)
	}
	ranges = append(ranges, lexicalFoldingRanges(uriToPath(doc.URI), content, lines)...)
	return ranges, nil
}

// syntaxFoldingRanges emits a range for each brace or bracket construct
// spanning more than one line.
func syntaxFoldingRanges(root *ast.Document, lines *lineIndex) []protocol.FoldingRange {
	var ranges []protocol.FoldingRange
	astutil.Inspect(root, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.Block, *ast.SwitchStatement, *ast.EnumDeclaration, *ast.StructLiteral, *ast.ArrayLiteral:
			span := n.Span()
			start, end := lines.line(span.Start), lines.line(span.End)
			if end > start {
				ranges = append(ranges, foldingRange(start, end, protocol.FoldingRangeKindRegion))
			}
		}
		return true
	})
	return ranges
}

// lexicalFoldingRanges folds matched #region directives, multi-line block
// comments and consecutive line comments.
func lexicalFoldingRanges(file, content string, lines *lineIndex) []protocol.FoldingRange {
	var (
		ranges  []protocol.FoldingRange
		regions []int
		// first and last line of the current run of line comments
		runStart, runEnd = -1, -1
	)
	flushRun := func() {
		if runStart >= 0 && runEnd > runStart {
			ranges = append(ranges, foldingRange(runStart, runEnd, protocol.FoldingRangeKindComment))
		}
		runStart, runEnd = -1, -1
	}

	lex := lexer.New(token.NewScanner(file, []byte(content)))
	for {
		tok := lex.ReadToken()
		if tok.Type == token.EOF || tok.Type == token.ERROR || tok.Type == token.INVALID {
			break
		}
		span := tok.Span()
		line := lines.line(span.Start)
		switch tok.Type {
		case token.WHITESPACE, token.LINE_BREAK:
			continue
		case token.COMMENT_LINE:
			if runStart >= 0 && line == runEnd+1 {
				runEnd = line
			} else {
				flushRun()
				runStart, runEnd = line, line
			}
			continue
		case token.COMMENT_BLOCK:
			if end := lines.line(span.End); end > line {
				ranges = append(ranges, foldingRange(line, end, protocol.FoldingRangeKindComment))
			}
		case token.REGION:
			regions = append(regions, line)
		case token.END_REGION:
			if n := len(regions); n > 0 {
				if start := regions[n-1]; line > start {
					ranges = append(ranges, foldingRange(start, line, protocol.FoldingRangeKindRegion))
				}
				regions = regions[:n-1]
			}
		}
		flushRun()
	}
	flushRun()
	return ranges
}

func foldingRange(start, end int, kind protocol.FoldingRangeKind) protocol.FoldingRange {
	k := string(kind)
	return protocol.FoldingRange{
		StartLine: safeUint(start),
		EndLine:   safeUint(end),
		Kind:      &k,
	}
}
