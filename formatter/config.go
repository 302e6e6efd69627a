// Copyright © 2024 The gmlfmt authors

package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// BraceStyle determines where the opening brace of a block is placed.
type BraceStyle int

const (
	// SameLine places an opening brace at the end of the line starting the
	// statement.
	SameLine BraceStyle = iota
	// NewLine places an opening brace on a line of its own.
	NewLine
)

func (s BraceStyle) String() string {
	if s == NewLine {
		return "new-line"
	}
	return "same-line"
}

// ParseBraceStyle parses the name of a brace style as printed by
// BraceStyle.String.
func ParseBraceStyle(name string) (BraceStyle, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "same-line", "sameline", "":
		return SameLine, nil
	case "new-line", "newline", "allman":
		return NewLine, nil
	}
	return SameLine, fmt.Errorf("unknown brace style %q", name)
}

// Config holds formatting configuration.
type Config struct {
	BraceStyle     BraceStyle // placement of opening braces (default: SameLine)
	UseTabs        bool       // indent with tabs instead of spaces
	TabWidth       int        // columns per indentation level (default: 4)
	PrintWidth     int        // preferred maximum line width (default: 80)
	CheckRoundTrip bool       // reparse the output and compare it to the input (default: true)

	// Logger receives debug output for each formatting stage.  A nil Logger
	// discards it.
	Logger logrus.FieldLogger
	// TracerProvider provides the tracer used to record formatting spans.
	// The global provider is used when it is nil.
	TracerProvider trace.TracerProvider
}

// DefaultConfig returns the default formatting configuration.
func DefaultConfig() *Config {
	return &Config{
		BraceStyle:     SameLine,
		TabWidth:       4,
		PrintWidth:     80,
		CheckRoundTrip: true,
	}
}

// normalize returns a copy of cfg with unset widths replaced by defaults.
func (cfg *Config) normalize() *Config {
	c := *cfg
	if c.TabWidth <= 0 {
		c.TabWidth = 4
	}
	if c.PrintWidth <= 0 {
		c.PrintWidth = 80
	}
	if c.Logger == nil {
		log := logrus.New()
		log.SetOutput(io.Discard)
		c.Logger = log
	}
	return &c
}
