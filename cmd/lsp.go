// Copyright © 2024 The gmlfmt authors

package cmd

import (
	"fmt"

	"github.com/luthersystems/gmlfmt/lsp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// LSPCommand creates the "lsp" cobra command.
func LSPCommand() *cobra.Command {
	var (
		stdio bool
		port  int
	)

	cmd := &cobra.Command{
		Use:   "lsp [flags]",
		Short: "Start the GML Language Server Protocol server",
		Long: `Start an LSP server for GML source files.

The language server formats documents on request and reports syntax errors
and unformatted files as diagnostics while you type. It also provides
folding ranges for blocks, #region sections and comment runs, document
symbols and semantic highlighting.

The formatting configuration (print_width, brace_style, ...) is read the
same way as for gmlfmt fmt. The editor's tab size and insert-spaces
settings take precedence for formatting requests.

Transport modes:
  --stdio      Use stdin/stdout for LSP communication (default)
  --port N     Listen for an LSP client on TCP port N

Examples:
  gmlfmt lsp                           Start with stdio transport
  gmlfmt lsp --stdio                   Same as above (explicit)
  gmlfmt lsp --port 7998               Start with TCP on port 7998

Editor configuration (VS Code):
  Install a generic LSP client extension and configure it to run
  "gmlfmt lsp --stdio" for .gml files.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := formatConfig(viper.GetViper())
			if err != nil {
				return err
			}
			log := logrus.StandardLogger().WithField("component", "lsp")
			cfg.Logger = nil
			srv := lsp.New(
				lsp.WithConfig(cfg),
				lsp.WithLogger(log),
				lsp.WithVersion(Version),
			)

			if !stdio && port > 0 {
				addr := fmt.Sprintf("localhost:%d", port)
				log.WithField("addr", addr).Info("listening")
				if err := srv.RunTCP(addr); err != nil {
					return fmt.Errorf("lsp server: %w", err)
				}
				return nil
			}
			if err := srv.RunStdio(); err != nil {
				return fmt.Errorf("lsp server: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&stdio, "stdio", false,
		"Use stdin/stdout for LSP communication (default behavior)")
	cmd.Flags().IntVar(&port, "port", 0,
		"TCP port for LSP server (use instead of --stdio)")

	return cmd
}

func init() {
	rootCmd.AddCommand(LSPCommand())
}
