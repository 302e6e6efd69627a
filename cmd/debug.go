// Copyright © 2024 The gmlfmt authors

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/luthersystems/gmlfmt/ast"
	"github.com/luthersystems/gmlfmt/astutil"
	"github.com/luthersystems/gmlfmt/doc"
	"github.com/luthersystems/gmlfmt/formatter"
	"github.com/luthersystems/gmlfmt/parser"
	"github.com/luthersystems/gmlfmt/parser/lexer"
	"github.com/luthersystems/gmlfmt/parser/token"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var debugSexp bool

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Show the formatter's intermediate representations",
	Long: `Dump one stage of the formatting pipeline for a GML file.

  tokens   the token stream, including whitespace and comments
  ast      the syntax tree with attached comments
  doc      the document tree handed to the line breaker

Each subcommand reads the named file, or stdin when no file is given.

Examples:
  gmlfmt debug tokens scr_player.gml
  gmlfmt debug ast --sexp scr_player.gml
  echo 'x=[1,2,3]' | gmlfmt debug doc --print-width 10`,
}

var debugTokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the token stream",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, src, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		return dumpTokens(cmd.OutOrStdout(), name, src)
	},
}

var debugASTCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Print the syntax tree with its comments",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, src, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		root, err := parser.ParseFile(name, src)
		if err != nil {
			renderError(cmd.ErrOrStderr(), err, name, src)
			return errSilent
		}
		if debugSexp {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), astutil.Sexp(root))
			return err
		}
		return dumpTree(cmd.OutOrStdout(), root)
	},
}

var debugDocCmd = &cobra.Command{
	Use:   "doc [file]",
	Short: "Print the document tree",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, src, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		cfg, err := formatConfig(viper.GetViper())
		if err != nil {
			return err
		}
		d, err := formatter.Build(src, name, cfg)
		if err != nil {
			renderError(cmd.ErrOrStderr(), err, name, src)
			return errSilent
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), doc.Debug(d))
		return err
	},
}

func readInput(cmd *cobra.Command, args []string) (string, []byte, error) {
	if len(args) == 0 {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, fmt.Errorf("reading stdin: %w", err)
		}
		return stdinName, src, nil
	}
	src, err := os.ReadFile(args[0]) //nolint:gosec // CLI tool reads user-specified files
	return args[0], src, err
}

// dumpTokens writes one token per line with its position.
func dumpTokens(w io.Writer, name string, src []byte) error {
	lex := lexer.New(token.NewScanner(name, src))
	for {
		tok := lex.ReadToken()
		if _, err := fmt.Fprintf(w, "%d:%d\t%s\n", tok.Source.Line, tok.Source.Col, tok); err != nil {
			return err
		}
		switch tok.Type {
		case token.EOF:
			return nil
		case token.ERROR, token.INVALID:
			return fmt.Errorf("%s:%d:%d: %s", name, tok.Source.Line, tok.Source.Col, tok.Text)
		}
	}
}

// dumpTree writes the tree one node per line, indented by depth, with the
// node's byte span and attached comments.
func dumpTree(w io.Writer, root ast.Node) error {
	var err error
	astutil.Walk(root, func(n ast.Node, _ ast.Node, depth int) {
		if err != nil {
			return
		}
		pad := strings.Repeat("  ", depth)
		span := n.Span()
		_, err = fmt.Fprintf(w, "%s%s [%d,%d)%s\n", pad, n.Kind(), span.Start, span.End, nodeDetail(n))
		for _, g := range n.Comments() {
			if err != nil {
				return
			}
			_, err = fmt.Fprintf(w, "%s  # %s %s %q\n", pad, g.Attachment, g.Placement, g.Text())
		}
	})
	return err
}

func nodeDetail(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Identifier:
		return " " + n.Name
	case *ast.Literal:
		return " " + n.Value
	}
	return ""
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.AddCommand(debugTokensCmd, debugASTCmd, debugDocCmd)

	debugASTCmd.Flags().BoolVar(&debugSexp, "sexp", false,
		"Print the tree as a compact s-expression without comments.")
}
