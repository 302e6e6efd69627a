// Copyright © 2024 The gmlfmt authors

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/luthersystems/gmlfmt/diagnostic"
	"github.com/luthersystems/gmlfmt/formatter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	checkJSON     bool
	checkExcludes []string
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [files...]",
	Short: "Report GML files which are not formatted",
	Long: `Check that GML source files are formatted, without changing them.

Each file that gmlfmt fmt would change is reported, along with files that
do not parse. This is meant for continuous integration; gmlfmt fmt -w
fixes everything reported except syntax errors.

With no files, reads from stdin.

Exit codes:
  0  All files are formatted
  1  One or more files are unformatted or do not parse
  2  Bad invocation (invalid flags, unreadable files)

Examples:
  gmlfmt check scr_player.gml                    # Check a single file
  gmlfmt check ./...                             # Check the whole project
  gmlfmt check --json ./...                      # Output problems as JSON
  gmlfmt check --exclude='extensions' ./...      # Exclude a directory
  cat scr_player.gml | gmlfmt check              # Check stdin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := formatConfig(viper.GetViper())
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err) //nolint:errcheck // best-effort error display
			return &exitError{code: 2}
		}

		var problems []problem
		if len(args) == 0 {
			src, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "reading stdin:", err) //nolint:errcheck // best-effort error display
				return &exitError{code: 2}
			}
			problems = checkSource(cmd.Context(), stdinName, src, cfg)
		} else {
			expanded, err := expandArgs(args, checkExcludes)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err) //nolint:errcheck // best-effort error display
				return &exitError{code: 2}
			}
			for _, path := range expanded {
				src, err := os.ReadFile(path) //nolint:gosec // CLI tool reads user-specified files
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err) //nolint:errcheck // best-effort error display
					return &exitError{code: 2}
				}
				problems = append(problems, checkSource(cmd.Context(), path, src, cfg)...)
			}
		}
		if len(problems) == 0 {
			return nil
		}
		if checkJSON {
			if err := formatJSON(cmd.OutOrStdout(), problems); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err) //nolint:errcheck // best-effort error display
				return &exitError{code: 2}
			}
		} else {
			renderProblems(cmd.ErrOrStderr(), problems)
		}
		return &exitError{code: 1}
	},
}

// problem is a single finding of the check command.
type problem struct {
	File     string   `json:"file"`
	Line     int      `json:"line,omitempty"`
	Col      int      `json:"col,omitempty"`
	Severity string   `json:"severity"`
	Message  string   `json:"message"`
	Notes    []string `json:"notes,omitempty"`

	src  []byte
	diag diagnostic.Diagnostic
}

// checkSource formats src and reports whether it differs or fails.
func checkSource(ctx context.Context, name string, src []byte, cfg *formatter.Config) []problem {
	out, err := formatter.FormatContext(orBackground(ctx), src, name, cfg)
	var diags []diagnostic.Diagnostic
	switch {
	case err != nil:
		diags = formatter.Diagnostics(err)
	case !bytes.Equal(src, out):
		diags = []diagnostic.Diagnostic{unformattedDiagnostic(name)}
	}
	problems := make([]problem, 0, len(diags))
	for _, d := range diags {
		p := problem{
			File:     name,
			Severity: d.Severity.String(),
			Message:  d.Message,
			Notes:    d.Notes,
			src:      src,
			diag:     d,
		}
		if len(d.Spans) > 0 {
			p.Line = d.Spans[0].Line
			p.Col = d.Spans[0].Col
		}
		problems = append(problems, p)
	}
	return problems
}

// formatJSON writes problems as JSON.
func formatJSON(w io.Writer, problems []problem) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(problems)
}

func renderProblems(w io.Writer, problems []problem) {
	r := newRenderer()
	sources := make(map[string][]byte, len(problems))
	diags := make([]diagnostic.Diagnostic, len(problems))
	for i, p := range problems {
		sources[p.File] = p.src
		diags[i] = p.diag
	}
	r.SourceReader = func(file string) ([]byte, error) {
		if src, ok := sources[file]; ok {
			return src, nil
		}
		return nil, errors.New("no source for " + file)
	}
	_ = r.RenderAll(w, diags)
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output problems as JSON.")
	checkCmd.Flags().StringArrayVar(&checkExcludes, "exclude", nil,
		"Glob pattern for files to exclude (may be repeated).")
}
