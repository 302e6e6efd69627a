// Copyright © 2024 The gmlfmt authors

package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/luthersystems/gmlfmt/ast"
	"github.com/luthersystems/gmlfmt/parser/rdparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile(t *testing.T) {
	root, err := ParseFile("test", []byte("// header\nx = 1; // trailing\n"))
	require.NoError(t, err)
	require.Len(t, root.Statements, 1)

	var attached []*ast.CommentGroup
	for _, n := range []ast.Node{root, root.Statements[0]} {
		attached = append(attached, n.Comments()...)
	}
	require.Len(t, attached, 2)
	assert.Equal(t, "// header", attached[0].Text())
	assert.Equal(t, ast.Leading, attached[0].Attachment)
	assert.Equal(t, "// trailing", attached[1].Text())
	assert.Equal(t, ast.Trailing, attached[1].Attachment)
}

func TestParseFile_SyntaxError(t *testing.T) {
	root, err := ParseFile("test", []byte("x = ;"))
	assert.Nil(t, root)
	var serr *rdparser.SyntaxError
	require.True(t, errors.As(err, &serr), "%v", err)
	assert.Equal(t, 1, serr.Line())
	assert.Equal(t, 5, serr.Col())
}

func TestRead(t *testing.T) {
	root, err := Read("test", strings.NewReader("function f() {}\n"))
	require.NoError(t, err)
	require.Len(t, root.Statements, 1)
	assert.IsType(t, &ast.FunctionDeclaration{}, root.Statements[0])
}
