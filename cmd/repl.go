// Copyright © 2024 The gmlfmt authors

package cmd

import (
	"os"
	"path/filepath"

	"github.com/luthersystems/gmlfmt/repl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Format GML interactively",
	Long: `Start an interactive formatting session.

Type or paste GML at the prompt. Input continues over several lines while
brackets are open; once they balance, or when an empty line is entered,
the snippet is formatted and printed. Syntax errors are shown as
diagnostics. Line editing and command history are supported via readline.
Use Ctrl-D to exit.

Commands such as :width 40, :tabs or :braces new-line change the
formatting options for the rest of the session; :help lists them all.

Example session:
  gmlfmt> if(hp<=0){instance_destroy()}
  if (hp <= 0) {
      instance_destroy();
  }
  gmlfmt> :braces new-line
  gmlfmt> function f(a){return a*2}
  function f(a)
  {
      return a * 2;
  }`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := formatConfig(viper.GetViper())
		if err != nil {
			return err
		}
		cfg.Logger = nil
		repl.RunRepl(filepath.Base(os.Args[0])+"> ",
			repl.WithConfig(cfg),
			repl.WithColor(colorMode()),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
