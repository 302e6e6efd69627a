// Copyright © 2024 The gmlfmt authors

package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/luthersystems/gmlfmt/ast"
)

// ErrRoundTrip is matched by every *RoundTripError.
var ErrRoundTrip = errors.New("round-trip check failed")

// RoundTripError is returned when the formatted output does not parse to the
// same program as the input.  It always indicates a formatter defect.
type RoundTripError struct {
	File      string
	Original  uint64
	Formatted uint64
	// Err holds the error from parsing the formatted output, if any.
	Err error
}

func (err *RoundTripError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("%s: %v: output does not parse: %v", err.File, ErrRoundTrip, err.Err)
	}
	return fmt.Sprintf("%s: %v: structure hash %016x became %016x", err.File, ErrRoundTrip, err.Original, err.Formatted)
}

func (err *RoundTripError) Is(target error) bool {
	return target == ErrRoundTrip
}

func (err *RoundTripError) Unwrap() error {
	return err.Err
}

// UncommentedError is returned when the printer did not emit every comment
// of the input.
type UncommentedError struct {
	File     string
	Comments []*ast.CommentGroup
}

func (err *UncommentedError) Error() string {
	texts := make([]string, len(err.Comments))
	for i, g := range err.Comments {
		texts[i] = fmt.Sprintf("%q at %v", g.Text(), g.Span())
	}
	return fmt.Sprintf("%s: comments were not printed: %s", err.File, strings.Join(texts, ", "))
}
