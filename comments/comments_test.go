// Copyright © 2024 The gmlfmt authors

package comments_test

import (
	"errors"
	"testing"

	"github.com/luthersystems/gmlfmt/ast"
	"github.com/luthersystems/gmlfmt/astutil"
	"github.com/luthersystems/gmlfmt/comments"
	"github.com/luthersystems/gmlfmt/parser/rdparser"
	"github.com/luthersystems/gmlfmt/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type attachment struct {
	comment    string
	node       string
	attachment ast.Attachment
	placement  ast.Placement
}

// attachments parses src, attaches its comments and reports every
// attachment as the s-expression of the owning node.
func attachments(t *testing.T, src string) []attachment {
	t.Helper()
	doc, groups, err := rdparser.Parse("test", []byte(src))
	require.NoError(t, err)
	require.NoError(t, comments.Attach(doc, groups, []byte(src)))

	var found []attachment
	astutil.Walk(doc, func(n ast.Node, _ ast.Node, _ int) {
		for _, g := range n.Comments() {
			found = append(found, attachment{
				comment:    g.Text(),
				node:       astutil.Sexp(n),
				attachment: g.Attachment,
				placement:  g.Placement,
			})
		}
	})
	assert.Len(t, found, len(groups), "every group attached once")
	return found
}

func TestAttach(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []attachment
	}{
		{
			name:   "leading own line",
			source: "// leading\nx = 1;",
			want: []attachment{
				{"// leading", "(expression (assignment = x 1))", ast.Leading, ast.OwnLine},
			},
		},
		{
			name:   "trailing end of line",
			source: "x = 1; // trailing\ny = 2;",
			want: []attachment{
				{"// trailing", "(expression (assignment = x 1))", ast.Trailing, ast.EndOfLine},
			},
		},
		{
			name:   "own line at end of file",
			source: "x = 1;\n// tail",
			want: []attachment{
				{"// tail", "(expression (assignment = x 1))", ast.Trailing, ast.OwnLine},
			},
		},
		{
			name:   "dangling in empty block",
			source: "if (x) {\n    // nothing\n}",
			want: []attachment{
				{"// nothing", "(block)", ast.Dangling, ast.OwnLine},
			},
		},
		{
			name:   "dangling in empty document",
			source: "/* only */",
			want: []attachment{
				{"/* only */", "(document)", ast.Dangling, ast.OwnLine},
			},
		},
		{
			name:   "remaining before operand",
			source: "x = /* c */ 1 + 2;",
			want: []attachment{
				{"/* c */", "(binary + 1 2)", ast.Leading, ast.Remaining},
			},
		},
		{
			name:   "remaining before parenthesis",
			source: "x = a + /* c */ (b);",
			want: []attachment{
				{"/* c */", "(parenthesized b)", ast.Leading, ast.Remaining},
			},
		},
		{
			name:   "remaining before operator",
			source: "x = a /* c */ + b;",
			want: []attachment{
				{"/* c */", "a", ast.Trailing, ast.Remaining},
			},
		},
		{
			name:   "end of line inside block start",
			source: "if (x) { // c\n    y();\n}",
			want: []attachment{
				{"// c", "(expression (call y))", ast.Leading, ast.EndOfLine},
			},
		},
		{
			name:   "before else",
			source: "if (x) {\n} // c\nelse {\n}",
			want: []attachment{
				{"// c", "(block)", ast.Trailing, ast.EndOfLine},
			},
		},
		{
			name:   "after else",
			source: "if (x) {\n}\nelse // c\n{\n}",
			want: []attachment{
				{"// c", "(block)", ast.Trailing, ast.EndOfLine},
			},
		},
		{
			name:   "before until",
			source: "do {\n}\n// c\nuntil (x);",
			want: []attachment{
				{"// c", "(block)", ast.Trailing, ast.OwnLine},
			},
		},
		{
			name:   "between head and body",
			source: "while (x) // c\n{\n    y();\n}",
			want: []attachment{
				{"// c", "(expression (call y))", ast.Leading, ast.EndOfLine},
			},
		},
		{
			name:   "between head and bare body",
			source: "if (x) /* c */ y();",
			want: []attachment{
				{"/* c */", "(expression (call y))", ast.Leading, ast.Remaining},
			},
		},
		{
			name:   "between head and empty body",
			source: "function f() /* c */ {}",
			want: []attachment{
				{"/* c */", "(block)", ast.Dangling, ast.Remaining},
			},
		},
		{
			name:   "empty call",
			source: "f(/* c */);",
			want: []attachment{
				{"/* c */", "(call f)", ast.Dangling, ast.Remaining},
			},
		},
		{
			name:   "struct member",
			source: "s = {\n    a: 1, // one\n    b: 2,\n};",
			want: []attachment{
				{"// one", "(structproperty a 1)", ast.Trailing, ast.EndOfLine},
			},
		},
		{
			name:   "order preserved",
			source: "// a\n// b\nx = 1;",
			want: []attachment{
				{"// a", "(expression (assignment = x 1))", ast.Leading, ast.OwnLine},
				{"// b", "(expression (assignment = x 1))", ast.Leading, ast.OwnLine},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, attachments(t, test.source))
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, ast.OwnLine, comments.Classify(&ast.CommentGroup{LeadingBreaks: 1, TrailingBreaks: 1}))
	assert.Equal(t, ast.OwnLine, comments.Classify(&ast.CommentGroup{AtStart: true, AtEnd: true}))
	assert.Equal(t, ast.EndOfLine, comments.Classify(&ast.CommentGroup{TrailingBreaks: 2}))
	assert.Equal(t, ast.Remaining, comments.Classify(&ast.CommentGroup{LeadingBreaks: 1}))
	assert.Equal(t, ast.Remaining, comments.Classify(&ast.CommentGroup{}))
}

func TestAttachOverlap(t *testing.T) {
	doc, _, err := rdparser.Parse("test", []byte("x = 1;"))
	require.NoError(t, err)
	bogus := &ast.CommentGroup{
		Tokens: []*token.Token{{
			Type:   token.COMMENT_BLOCK,
			Text:   "/* bogus */",
			Source: &token.Location{Pos: 4},
		}},
	}
	err = comments.Attach(doc, []*ast.CommentGroup{bogus}, []byte("x = 1;"))
	var overlap *comments.OverlapError
	require.True(t, errors.As(err, &overlap))
	assert.Equal(t, ast.ExpressionStatementKind, overlap.Node)
}

func TestAttachEmptyDelimiters(t *testing.T) {
	owner := func(t *testing.T, src string) (ast.Kind, ast.Attachment) {
		t.Helper()
		doc, groups, err := rdparser.Parse("test", []byte(src))
		require.NoError(t, err)
		require.Len(t, groups, 1)
		require.NoError(t, comments.Attach(doc, groups, []byte(src)))
		var kind ast.Kind
		astutil.Walk(doc, func(n ast.Node, _ ast.Node, _ int) {
			if len(n.Comments()) > 0 {
				kind = n.Kind()
			}
		})
		return kind, groups[0].Attachment
	}

	tests := []struct {
		source     string
		kind       ast.Kind
		attachment ast.Attachment
	}{
		{"enum E { /* none */ }", ast.EnumDeclarationKind, ast.Dangling},
		{"enum E {\n    // none\n}", ast.EnumDeclarationKind, ast.Dangling},
		{"switch (x) { /* none */ }", ast.SwitchStatementKind, ast.Dangling},
		{"function f() : Base(/* p */) constructor {}", ast.ConstructorClauseKind, ast.Dangling},
		{"enum E /* before */ {}", ast.IdentifierKind, ast.Trailing},
	}
	for _, test := range tests {
		t.Run(test.source, func(t *testing.T) {
			kind, attachment := owner(t, test.source)
			assert.Equal(t, test.kind, kind)
			assert.Equal(t, test.attachment, attachment)
		})
	}
}
