// Copyright © 2024 The gmlfmt authors

package formatter

import (
	"errors"
	"fmt"

	"github.com/luthersystems/gmlfmt/diagnostic"
	"github.com/luthersystems/gmlfmt/parser/rdparser"
	"github.com/luthersystems/gmlfmt/parser/token"
)

// Diagnostics converts an error returned by Format into diagnostics for
// display.  Errors other than syntax errors, round-trip failures and lost
// comments become a single diagnostic without source spans.
func Diagnostics(err error) []diagnostic.Diagnostic {
	if err == nil {
		return nil
	}
	var (
		syntaxErr    *rdparser.SyntaxError
		roundTripErr *RoundTripError
		uncommented  *UncommentedError
	)
	switch {
	case errors.As(err, &syntaxErr):
		return []diagnostic.Diagnostic{{
			Severity: diagnostic.SeverityError,
			Message:  syntaxErr.Message,
			Spans:    sourceSpan(syntaxErr.Source, ""),
		}}
	case errors.As(err, &roundTripErr):
		d := diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Message:  "formatting changed the meaning of the program",
			Notes: []string{
				"this is a bug in gmlfmt; the file was left unchanged",
			},
		}
		if roundTripErr.Err != nil {
			d.Message = "formatted output does not parse"
			d.Notes = append(d.Notes, roundTripErr.Err.Error())
		} else {
			d.Notes = append(d.Notes, fmt.Sprintf("structure hash %016x became %016x", roundTripErr.Original, roundTripErr.Formatted))
		}
		if roundTripErr.File != "" {
			d.Spans = []diagnostic.Span{{File: roundTripErr.File}}
		}
		return []diagnostic.Diagnostic{d}
	case errors.As(err, &uncommented):
		diags := make([]diagnostic.Diagnostic, 0, len(uncommented.Comments))
		for _, g := range uncommented.Comments {
			var loc *token.Location
			if list := g.List(); len(list) > 0 {
				loc = list[0].Source
			}
			diags = append(diags, diagnostic.Diagnostic{
				Severity: diagnostic.SeverityError,
				Message:  "comment would be lost by formatting",
				Spans:    sourceSpan(loc, "not printed"),
				Notes:    []string{"this is a bug in gmlfmt; the file was left unchanged"},
			})
		}
		return diags
	}
	return []diagnostic.Diagnostic{{
		Severity: diagnostic.SeverityError,
		Message:  err.Error(),
	}}
}

func sourceSpan(loc *token.Location, label string) []diagnostic.Span {
	if loc == nil || loc.Line <= 0 {
		return nil
	}
	file := loc.File
	if loc.Path != "" {
		file = loc.Path
	}
	return []diagnostic.Span{{
		File:  file,
		Line:  loc.Line,
		Col:   loc.Col,
		Label: label,
	}}
}
