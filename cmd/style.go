// Copyright © 2024 The gmlfmt authors

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/luthersystems/gmlfmt/docs"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

var styleWidth int

var styleCmd = &cobra.Command{
	Use:   "style [section]",
	Short: "Describe the layout gmlfmt produces",
	Long: `Print the gmlfmt style guide, or one section of it.

Examples:
  gmlfmt style               The whole guide
  gmlfmt style braces        Only the section on braces
  gmlfmt style --width 60    Rewrap the guide for a narrow terminal`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		section := ""
		if len(args) > 0 {
			section = args[0]
		}
		return printStyle(cmd.OutOrStdout(), docs.StyleGuide, section, styleWidth)
	},
}

// printStyle writes guide, or only its "## section" part when section is
// not empty.  Lines longer than width are rewrapped when width is positive.
func printStyle(w io.Writer, guide, section string, width int) error {
	text := guide
	if section != "" {
		var ok bool
		text, ok = guideSection(guide, section)
		if !ok {
			return fmt.Errorf("no style section %q (sections: %s)", section, strings.Join(guideSections(guide), ", "))
		}
	}
	if width > 0 {
		text = wordwrap.String(text, width)
	}
	_, err := io.WriteString(w, text)
	return err
}

func guideSections(guide string) []string {
	var names []string
	for _, line := range strings.Split(guide, "\n") {
		if name, ok := strings.CutPrefix(line, "## "); ok {
			names = append(names, strings.ToLower(strings.TrimSpace(name)))
		}
	}
	return names
}

func guideSection(guide, name string) (string, bool) {
	var b strings.Builder
	in := false
	for _, line := range strings.SplitAfter(guide, "\n") {
		if heading, ok := strings.CutPrefix(line, "## "); ok {
			if in {
				break
			}
			in = strings.EqualFold(strings.TrimSpace(heading), name)
		}
		if in {
			b.WriteString(line)
		}
	}
	if b.Len() == 0 {
		return "", false
	}
	return strings.TrimRight(b.String(), "\n") + "\n", true
}

func init() {
	rootCmd.AddCommand(styleCmd)
	styleCmd.Flags().IntVar(&styleWidth, "width", 0, "Rewrap lines longer than this many columns.")
}
