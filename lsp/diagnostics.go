// Copyright © 2024 The gmlfmt authors

package lsp

import (
	"errors"
	"time"

	"github.com/luthersystems/gmlfmt/formatter"
	"github.com/luthersystems/gmlfmt/parser/rdparser"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const (
	debounceDelay = 300 * time.Millisecond

	diagnosticSource = "gmlfmt"
)

// textDocumentDidOpen handles the textDocument/didOpen notification.
func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.captureNotify(ctx)
	doc := s.docs.Open(
		params.TextDocument.URI,
		int32(params.TextDocument.Version),
		params.TextDocument.Text,
	)
	s.publishDiagnostics(doc)
	return nil
}

// textDocumentDidChange handles the textDocument/didChange notification.
func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.captureNotify(ctx)
	// With full sync, the last content change is the complete document.
	var content string
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			content = c.Text
		case protocol.TextDocumentContentChangeEvent:
			content = c.Text
		}
	}

	doc := s.docs.Change(
		params.TextDocument.URI,
		int32(params.TextDocument.Version),
		content,
	)

	// Debounce: delay diagnostics to avoid thrashing during rapid edits.
	s.debounceMu.Lock()
	if t, ok := s.debounce[doc.URI]; ok {
		t.Stop()
	}
	s.debounce[doc.URI] = time.AfterFunc(debounceDelay, func() {
		defer func() { _ = recover() }() // don't crash the server on a formatter panic
		if d := s.docs.Get(doc.URI); d != nil {
			s.publishDiagnostics(d)
		}
	})
	s.debounceMu.Unlock()
	return nil
}

// textDocumentDidSave handles the textDocument/didSave notification.
func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.captureNotify(ctx)
	s.cancelDebounce(params.TextDocument.URI)

	if doc := s.docs.Get(params.TextDocument.URI); doc != nil {
		s.publishDiagnostics(doc)
	}
	return nil
}

// textDocumentDidClose handles the textDocument/didClose notification.
func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.cancelDebounce(params.TextDocument.URI)

	// Clear diagnostics for the closed file.
	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})

	s.docs.Close(params.TextDocument.URI)
	return nil
}

func (s *Server) cancelDebounce(uri string) {
	s.debounceMu.Lock()
	if t, ok := s.debounce[uri]; ok {
		t.Stop()
		delete(s.debounce, uri)
	}
	s.debounceMu.Unlock()
}

// publishDiagnostics reports the syntax error of a document, or the
// formatter failures and an unformatted hint for a document that parses.
func (s *Server) publishDiagnostics(doc *Document) {
	content, _, lines, parseErr := doc.snapshot()
	uri := doc.URI

	diags := []protocol.Diagnostic{}
	if parseErr != nil {
		diags = append(diags, protocol.Diagnostic{
			Range:    parseErrorRange(parseErr, lines),
			Severity: severity(protocol.DiagnosticSeverityError),
			Source:   strPtr(diagnosticSource),
			Message:  syntaxMessage(parseErr),
		})
	} else {
		diags = append(diags, s.formatDiagnostics(uri, content, lines)...)
	}

	s.log.WithField("uri", uri).WithField("count", len(diags)).Debug("publish diagnostics")
	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

func (s *Server) formatDiagnostics(uri, content string, lines *lineIndex) []protocol.Diagnostic {
	formatted, err := formatter.FormatFile([]byte(content), uriToPath(uri), s.cfg)
	whole := protocol.Range{Start: protocol.Position{}, End: lines.end()}

	var rt *formatter.RoundTripError
	var uncommented *formatter.UncommentedError
	switch {
	case err == nil && string(formatted) != content:
		return []protocol.Diagnostic{{
			Range:    protocol.Range{Start: protocol.Position{}, End: protocol.Position{}},
			Severity: severity(protocol.DiagnosticSeverityHint),
			Source:   strPtr(diagnosticSource),
			Code:     &protocol.IntegerOrString{Value: "unformatted"},
			Message:  "file is not formatted",
		}}
	case errors.As(err, &uncommented):
		var diags []protocol.Diagnostic
		for _, g := range uncommented.Comments {
			diags = append(diags, protocol.Diagnostic{
				Range:    lines.span(g.Span()),
				Severity: severity(protocol.DiagnosticSeverityWarning),
				Source:   strPtr(diagnosticSource),
				Code:     &protocol.IntegerOrString{Value: "uncommented"},
				Message:  "formatting would drop this comment",
			})
		}
		return diags
	case errors.As(err, &rt):
		return []protocol.Diagnostic{{
			Range:    whole,
			Severity: severity(protocol.DiagnosticSeverityWarning),
			Source:   strPtr(diagnosticSource),
			Code:     &protocol.IntegerOrString{Value: "round-trip"},
			Message:  "formatting would change the program: " + rt.Error(),
		}}
	}
	return nil
}

func severity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func syntaxMessage(err error) string {
	var serr *rdparser.SyntaxError
	if errors.As(err, &serr) {
		return serr.Message
	}
	return err.Error()
}

// parseErrorRange covers the offending token of a syntax error.  Errors
// without a location produce an empty range at the start of the document.
func parseErrorRange(err error, lines *lineIndex) protocol.Range {
	var serr *rdparser.SyntaxError
	if !errors.As(err, &serr) || serr.Source == nil || serr.Source.Pos < 0 {
		return protocol.Range{}
	}
	start := lines.position(serr.Source.Pos)
	end := start
	end.Character++
	return protocol.Range{Start: start, End: end}
}

func strPtr(s string) *string {
	return &s
}
