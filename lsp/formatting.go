// Copyright © 2024 The gmlfmt authors

package lsp

import (
	"github.com/luthersystems/gmlfmt/formatter"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentFormatting handles textDocument/formatting requests.
// It formats the document content using the GML formatter and returns
// a single whole-document text edit, or nil if no changes are needed.
func (s *Server) textDocumentFormatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	content, _, lines, parseErr := doc.snapshot()
	if content == "" || parseErr != nil {
		return nil, nil
	}

	cfg := s.requestConfig(params.Options)
	formatted, err := formatter.FormatFile([]byte(content), uriToPath(doc.URI), cfg)
	if err != nil {
		// Return nil edits (not an error) so the editor doesn't show an
		// error dialog; the failure is already published as a diagnostic.
		s.log.WithError(err).WithField("uri", doc.URI).Warn("formatting failed")
		return nil, nil
	}

	if string(formatted) == content {
		return nil, nil
	}

	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   lines.end(),
			},
			NewText: string(formatted),
		},
	}, nil
}

// requestConfig applies the editor's tabSize and insertSpaces options to a
// copy of the server configuration.
func (s *Server) requestConfig(opts protocol.FormattingOptions) *formatter.Config {
	cfg := *s.cfg
	if tabSize, ok := opts["tabSize"]; ok {
		switch v := tabSize.(type) {
		case float64:
			if v > 0 {
				cfg.TabWidth = int(v)
			}
		case int:
			if v > 0 {
				cfg.TabWidth = v
			}
		case protocol.UInteger:
			if v > 0 {
				cfg.TabWidth = int(v)
			}
		}
	}
	if spaces, ok := opts["insertSpaces"].(bool); ok {
		cfg.UseTabs = !spaces
	}
	return &cfg
}
