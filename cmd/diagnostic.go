// Copyright © 2024 The gmlfmt authors

package cmd

import (
	"io"
	"os"

	"github.com/luthersystems/gmlfmt/diagnostic"
	"github.com/luthersystems/gmlfmt/formatter"
	"github.com/spf13/viper"
)

func colorMode() diagnostic.ColorMode {
	return diagnostic.ParseColorMode(viper.GetString(keyColor))
}

func newRenderer() *diagnostic.Renderer {
	return &diagnostic.Renderer{Color: colorMode(), Width: 100}
}

// renderError renders a formatting error to w.  src supplies the source
// lines when the input did not come from a file, as for stdin.
func renderError(w io.Writer, err error, name string, src []byte) {
	r := newRenderer()
	if src != nil {
		r.SourceReader = func(file string) ([]byte, error) {
			if file == name {
				return src, nil
			}
			return os.ReadFile(file) //nolint:gosec // reads user-specified source files for display
		}
	}
	_ = r.RenderAll(w, formatter.Diagnostics(err))
}

// unformattedDiagnostic reports a file whose contents differ from the
// formatter's output.
func unformattedDiagnostic(path string) diagnostic.Diagnostic {
	return diagnostic.Diagnostic{
		Severity: diagnostic.SeverityWarning,
		Message:  "file is not formatted",
		Spans:    []diagnostic.Span{{File: path}},
		Notes:    []string{"run: gmlfmt fmt -w " + path},
	}
}
