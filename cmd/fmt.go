// Copyright © 2024 The gmlfmt authors

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/luthersystems/gmlfmt/formatter"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// stdinName names standard input in messages and diagnostics.
const stdinName = "<stdin>"

type fmtOptions struct {
	write    bool
	diff     bool
	list     bool
	excludes []string
}

var fmtOpts fmtOptions

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] [files...]",
	Short: "Format GML source files",
	Long: `Format GML source files, similar to gofmt for Go.

Normalizes whitespace, indentation, braces and semicolons, breaks long
lines at the print width and preserves comments. The output is checked
to parse to the same program as the input, and a file is never written
when that check fails. The formatter is idempotent.

With no files, reads from stdin and writes to stdout.
With files, prints formatted output to stdout unless -w is given.
A directory, or a path ending in /..., stands for every .gml file
beneath it.

Modes:
  (default)   Print formatted code to stdout
  -w          Write result back to source file
  -d          Display a diff of changes
  -l          List files that would be changed

Examples:
  gmlfmt fmt scr_player.gml               Print formatted output
  gmlfmt fmt -w scr_player.gml            Format in place
  gmlfmt fmt -w ./...                     Format the whole project in place
  gmlfmt fmt -d scr_player.gml            Show what would change
  gmlfmt fmt -l --exclude extensions ./...   List files needing formatting
  cat scr_player.gml | gmlfmt fmt         Format from stdin
  gmlfmt fmt --print-width 100 -w ./...   Allow longer lines`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := formatConfig(viper.GetViper())
		if err != nil {
			return err
		}
		if len(args) == 0 {
			return fmtStdin(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
		}
		expanded, err := expandArgs(args, fmtOpts.excludes)
		if err != nil {
			return err
		}
		return fmtOpts.run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), expanded, cfg)
	},
}

func fmtStdin(ctx context.Context, r io.Reader, w, errw io.Writer, cfg *formatter.Config) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	out, err := formatter.FormatContext(orBackground(ctx), src, stdinName, cfg)
	if err != nil {
		renderError(errw, err, stdinName, src)
		return errSilent
	}
	_, err = w.Write(out)
	return err
}

// run formats each path.  All files are processed even when some fail.
func (o *fmtOptions) run(ctx context.Context, w, errw io.Writer, paths []string, cfg *formatter.Config) error {
	failed := false
	changedAny := false
	for _, path := range paths {
		changed, err := o.file(orBackground(ctx), w, path, cfg)
		if err != nil {
			renderError(errw, err, path, nil)
			failed = true
			continue
		}
		changedAny = changedAny || changed
	}
	switch {
	case failed:
		return errSilent
	case o.list && changedAny:
		return &exitError{code: 1}
	}
	return nil
}

func (o *fmtOptions) file(ctx context.Context, w io.Writer, path string, cfg *formatter.Config) (bool, error) {
	src, err := os.ReadFile(path) //nolint:gosec // CLI tool reads user-specified files
	if err != nil {
		return false, err
	}
	out, err := formatter.FormatContext(ctx, src, path, cfg)
	if err != nil {
		return false, err
	}

	changed := !bytes.Equal(src, out)

	if o.list {
		if changed {
			fmt.Fprintln(w, path) //nolint:errcheck // best-effort listing
		}
		return changed, nil
	}

	if o.diff {
		if changed {
			text, err := unifiedDiff(path, src, out)
			if err != nil {
				return false, err
			}
			_, err = io.WriteString(w, text)
			return changed, err
		}
		return changed, nil
	}

	if o.write {
		if !changed {
			return false, nil
		}
		info, err := os.Stat(path)
		if err != nil {
			return false, err
		}
		return true, os.WriteFile(path, out, info.Mode().Perm())
	}

	// Default: print to stdout
	_, err = w.Write(out)
	return changed, err
}

// unifiedDiff returns the changes from original to formatted in unified
// diff format.
func unifiedDiff(path string, original, formatted []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(original),
		B:        splitLines(formatted),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	})
}

// splitLines splits data after each line break.  A final line without one
// gets one.
func splitLines(data []byte) []string {
	lines := strings.SplitAfter(string(data), "\n")
	if last := len(lines) - 1; lines[last] == "" {
		lines = lines[:last]
	} else {
		lines[last] += "\n"
	}
	return lines
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVarP(&fmtOpts.write, "write", "w", false,
		"Write result to (source) file instead of stdout.")
	fmtCmd.Flags().BoolVarP(&fmtOpts.diff, "diff", "d", false,
		"Display diffs instead of rewriting files.")
	fmtCmd.Flags().BoolVarP(&fmtOpts.list, "list", "l", false,
		"List files whose formatting differs from gmlfmt's.")
	fmtCmd.Flags().StringArrayVar(&fmtOpts.excludes, "exclude", nil,
		"Glob pattern for files to exclude (may be repeated).")
}
