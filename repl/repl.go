// Copyright © 2024 The gmlfmt authors

// Package repl implements an interactive formatter.  Each complete snippet
// typed at the prompt is formatted and printed back, so the effect of
// formatting options can be explored without touching files.
package repl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/luthersystems/gmlfmt/diagnostic"
	"github.com/luthersystems/gmlfmt/formatter"
)

// sourceName names the REPL input in diagnostics.
const sourceName = "<stdin>"

type config struct {
	stdin  io.ReadCloser
	stderr io.WriteCloser
	format *formatter.Config
	color  diagnostic.ColorMode
}

func newConfig(opts ...Option) *config {
	config := &config{}
	for _, opt := range opts {
		opt(config)
	}
	if config.format == nil {
		config.format = formatter.DefaultConfig()
	}
	return config
}

type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output of the REPL.
func WithStderr(stderr io.WriteCloser) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// WithConfig sets the initial formatting configuration.  The REPL works on a
// copy which commands like :width modify.
func WithConfig(cfg *formatter.Config) Option {
	return func(c *config) {
		copied := *cfg
		c.format = &copied
	}
}

// WithColor sets the color mode of rendered diagnostics.
func WithColor(mode diagnostic.ColorMode) Option {
	return func(c *config) {
		c.color = mode
	}
}

// RunRepl reads snippets at prompt until end of input, printing each one
// formatted.  Input continues over several lines while brackets are open or
// a string or comment is unterminated; an empty line formats whatever has
// been typed.
func RunRepl(prompt string, opts ...Option) {
	cfg := newConfig(opts...)
	var out io.Writer = os.Stderr
	if cfg.stderr != nil {
		out = cfg.stderr
	}
	sess := newSession(cfg.format, out)
	sess.renderer.Color = cfg.color

	histFile := historyPath()
	ensureHistoryFilePermissions(histFile)

	cont := strings.Repeat(" ", len(prompt)-2) + "| "
	if len(prompt) < 2 {
		cont = prompt
	}
	rlCfg := &readline.Config{
		Stdout:            out,
		Stderr:            out,
		Prompt:            prompt,
		HistoryFile:       histFile,
		HistorySearchFold: true,
		AutoComplete:      &wordCompleter{sess: sess},
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		errlnf("Unable to start the terminal: %v", err)
		os.Exit(1)
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	for {
		if sess.pending() {
			rl.SetPrompt(cont)
		} else {
			rl.SetPrompt(prompt)
		}
		line, err := rl.ReadSlice()
		if errors.Is(err, readline.ErrInterrupt) {
			sess.reset()
			continue
		}
		if err != nil {
			// Format whatever is left before leaving.
			if len(line) > 0 && sess.feed(string(line)) == errQuit {
				return
			}
			sess.flush()
			return
		}
		if sess.feed(string(line)) == errQuit {
			return
		}
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gmlfmt_history")
}

// ensureHistoryFilePermissions creates the history file if necessary and
// restricts it to the current user, since pasted code may be private.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0600) //nolint:gosec // path is derived from the home directory
	if err != nil {
		return
	}
	_ = f.Close()
	_ = os.Chmod(path, 0600)
}

// renderError writes err as diagnostics whose source lines come from src.
func renderError(w io.Writer, r *diagnostic.Renderer, err error, src []byte) {
	r.SourceReader = func(name string) ([]byte, error) {
		if name != sourceName {
			return nil, os.ErrNotExist
		}
		return bytes.Clone(src), nil
	}
	if rerr := r.RenderAll(w, formatter.Diagnostics(err)); rerr != nil {
		fmt.Fprintln(w, err) //nolint:errcheck // best-effort error display
	}
}

func errlnf(format string, v ...interface{}) {
	if strings.HasSuffix(format, "\n") {
		errf(format, v...)
		return
	}
	errf(format+"\n", v...)
}

func errf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format, v...)
}
