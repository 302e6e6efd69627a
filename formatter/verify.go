// Copyright © 2024 The gmlfmt authors

package formatter

import (
	"github.com/luthersystems/gmlfmt/ast"
	"github.com/luthersystems/gmlfmt/astutil"
	"github.com/luthersystems/gmlfmt/parser/rdparser"
)

// verify checks that formatted parses to a program with the same structure
// as original.
func verify(file string, original *ast.Document, formatted []byte) error {
	want := astutil.Hash(original)
	document, _, err := rdparser.Parse(file, formatted)
	if err != nil {
		return &RoundTripError{File: file, Original: want, Err: err}
	}
	if got := astutil.Hash(document); got != want {
		return &RoundTripError{File: file, Original: want, Formatted: got}
	}
	return nil
}
