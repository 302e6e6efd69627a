// Copyright © 2024 The gmlfmt authors

// Package parser reads GML source into a syntax tree with comments attached.
// It combines the lexer, the recursive-descent parser and the comment mapper
// for callers which want the whole front end in one call.
package parser

import (
	"fmt"
	"io"

	"github.com/luthersystems/gmlfmt/ast"
	"github.com/luthersystems/gmlfmt/comments"
	"github.com/luthersystems/gmlfmt/parser/rdparser"
)

// ParseFile parses src and attaches every comment group to the returned
// tree.  Syntax errors are returned as *rdparser.SyntaxError.
func ParseFile(name string, src []byte) (*ast.Document, error) {
	root, groups, err := rdparser.Parse(name, src)
	if err != nil {
		return nil, err
	}
	if err := comments.Attach(root, groups, src); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return root, nil
}

// Read reads all of r and parses it as ParseFile does.
func Read(name string, r io.Reader) (*ast.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseFile(name, src)
}
