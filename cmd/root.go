// Copyright © 2024 The gmlfmt authors

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/luthersystems/gmlfmt/diagnostic"
	"github.com/luthersystems/gmlfmt/formatter"
	"github.com/muesli/reflow/wordwrap"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Configuration keys shared by flags, the config file and GMLFMT_*
// environment variables.
const (
	keyBraceStyle     = "brace_style"
	keyUseTabs        = "use_tabs"
	keyTabWidth       = "tab_width"
	keyPrintWidth     = "print_width"
	keyCheckRoundTrip = "check_round_trip"
	keyVerbose        = "verbose"
	keyColor          = "color"
	keyTrace          = "trace"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gmlfmt",
	Short: "gmlfmt: an opinionated formatter for GML",
	Long: wordwrap.String(`gmlfmt formats GameMaker Language source files. It parses each file, lays it out within a preferred line width and checks that the result still parses to the same program before anything is written.`, 72) + `

Getting started:
  gmlfmt fmt scr_player.gml          Print a formatted file
  gmlfmt fmt -w scripts/...          Format every .gml file in place
  gmlfmt check objects/...           Report files that need formatting
  gmlfmt repl                        Try formatting interactively
  gmlfmt lsp                         Run the language server
  gmlfmt debug doc scr_player.gml    Show the document tree

Configuration is read from --config, else .gmlfmt.yaml in the working
directory or home directory. Every key can also be set through an
environment variable with the GMLFMT_ prefix:
  print_width: 80          preferred maximum line width
  tab_width: 4             columns per indentation level
  use_tabs: false          indent with tabs
  brace_style: same-line   same-line or new-line
  check_round_trip: true   reparse the output before writing it
  color: auto              auto, always or never
  verbose: false           log each formatting stage`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		configureLogging(logrus.StandardLogger())
		return setupTracing()
	},
}

// errSilent signals a failure which has already been reported.
var errSilent = errors.New("silent failure")

// exitError carries an exit status without a message.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	shutdownTracing()
	if err == nil {
		return
	}
	var exit *exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	if !errors.Is(err, errSilent) {
		fmt.Fprintln(os.Stderr, "gmlfmt:", err)
	}
	os.Exit(1)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is .gmlfmt.yaml in the working or home directory)")
	flags.String("color", "auto", `Control colored output: "auto", "always", or "never".`)
	flags.BoolP("verbose", "v", false, "Log each formatting stage to stderr.")
	flags.Bool("trace", false, "Log a timing span for each formatting stage.")
	flags.Int("print-width", 80, "Preferred maximum line width.")
	flags.Int("tab-width", 4, "Columns per indentation level.")
	flags.Bool("use-tabs", false, "Indent with tabs instead of spaces.")
	flags.String("brace-style", "same-line", `Opening brace placement: "same-line" or "new-line".`)
	flags.Bool("check-round-trip", true, "Reparse formatted output and refuse to write it if the program changed.")

	bindFlags(viper.GetViper(), flags, map[string]string{
		keyColor:          "color",
		keyVerbose:        "verbose",
		keyTrace:          "trace",
		keyPrintWidth:     "print-width",
		keyTabWidth:       "tab-width",
		keyUseTabs:        "use-tabs",
		keyBraceStyle:     "brace-style",
		keyCheckRoundTrip: "check-round-trip",
	})
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	v := viper.GetViper()
	v.SetEnvPrefix("gmlfmt")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv() // read in environment variables that match

	if cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".gmlfmt")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	logrus.WithField("file", v.ConfigFileUsed()).Debug("using config file")
	return nil
}

// bindFlags binds each configuration key to the flag of the given name.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// formatConfig builds the formatter configuration from flags, environment
// and config file.
func formatConfig(v *viper.Viper) (*formatter.Config, error) {
	cfg := formatter.DefaultConfig()
	style, err := formatter.ParseBraceStyle(v.GetString(keyBraceStyle))
	if err != nil {
		return nil, err
	}
	cfg.BraceStyle = style
	cfg.UseTabs = v.GetBool(keyUseTabs)
	cfg.TabWidth = v.GetInt(keyTabWidth)
	cfg.PrintWidth = v.GetInt(keyPrintWidth)
	cfg.CheckRoundTrip = v.GetBool(keyCheckRoundTrip)
	if cfg.TabWidth <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %d", keyTabWidth, cfg.TabWidth)
	}
	if cfg.PrintWidth <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %d", keyPrintWidth, cfg.PrintWidth)
	}
	cfg.Logger = logrus.StandardLogger()
	cfg.TracerProvider = tracerProvider
	return cfg, nil
}

// configureLogging points log at stderr with a level chosen by the
// verbose setting.
func configureLogging(log *logrus.Logger) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		ForceColors:      colorMode() == diagnostic.ColorAlways,
		DisableColors:    colorMode() == diagnostic.ColorNever,
	})
	log.SetLevel(logrus.WarnLevel)
	if viper.GetBool(keyVerbose) {
		log.SetLevel(logrus.DebugLevel)
	}
}
