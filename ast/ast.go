// Copyright © 2024 The gmlfmt authors

// Package ast declares the syntax tree produced by the GML parser.
//
// The set of node types is closed.  Every node carries the source span it
// was parsed from, a parent pointer assigned once by SetParents, and the
// comment groups attached to it by the comment mapper.
package ast

import (
	"strings"

	"github.com/luthersystems/gmlfmt/parser/token"
)

// Node is implemented by every syntax tree node.
type Node interface {
	Kind() Kind
	Span() token.Span
	Parent() Node
	Comments() []*CommentGroup
	AddComment(*CommentGroup)
	base() *Base
}

// Statement is a node that may appear in a statement list.
type Statement interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Base holds the state shared by all nodes.  It is embedded in every node
// type.
type Base struct {
	Loc      token.Span
	parent   Node
	comments []*CommentGroup
}

func (b *Base) base() *Base { return b }

// Span returns the byte range of the node in the original source.
func (b *Base) Span() token.Span { return b.Loc }

// Parent returns the enclosing node, or nil for the Document.
func (b *Base) Parent() Node { return b.parent }

// Comments returns the attached comment groups in source order.
func (b *Base) Comments() []*CommentGroup { return b.comments }

// AddComment appends g to the node's comments.
func (b *Base) AddComment(g *CommentGroup) {
	b.comments = append(b.comments, g)
}

// SetSpan assigns the node's source span.
func SetSpan(n Node, start, end int) {
	n.base().Loc = token.Span{Start: start, End: end}
}

// SetParents assigns the parent pointer of every node below root.  It is
// called once after a tree is built.
func SetParents(root Node) {
	for _, child := range Children(root) {
		child.base().parent = root
		SetParents(child)
	}
}

// CommentsOf returns the comments attached to n with attachment a.
func CommentsOf(n Node, a Attachment) []*CommentGroup {
	var groups []*CommentGroup
	for _, g := range n.Comments() {
		if g.Attachment == a {
			groups = append(groups, g)
		}
	}
	return groups
}

// HasComments returns true if n has any attached comment with attachment a.
func HasComments(n Node, a Attachment) bool {
	for _, g := range n.Comments() {
		if g.Attachment == a {
			return true
		}
	}
	return false
}

// Placement classifies the position of a comment group relative to the
// surrounding code.
type Placement int

const (
	// OwnLine groups are alone on their line(s).
	OwnLine Placement = iota
	// EndOfLine groups follow code and end their line.
	EndOfLine
	// Remaining groups sit inline between code tokens.
	Remaining
)

func (p Placement) String() string {
	switch p {
	case OwnLine:
		return "own-line"
	case EndOfLine:
		return "end-of-line"
	default:
		return "remaining"
	}
}

// Attachment says where a comment group prints relative to its node.
type Attachment int

const (
	Leading Attachment = iota
	Trailing
	Dangling
)

func (a Attachment) String() string {
	switch a {
	case Leading:
		return "leading"
	case Trailing:
		return "trailing"
	default:
		return "dangling"
	}
}

// CommentGroup is a run of comments on a single source line with no code
// between them.
type CommentGroup struct {
	// Tokens holds the comments of the group and the whitespace separating
	// them.
	Tokens []*token.Token
	// LeadingBreaks counts the line breaks between the previous code token
	// (or comment group) and the group.
	LeadingBreaks int
	// TrailingBreaks counts the line breaks between the group and the next
	// code token (or comment group).
	TrailingBreaks int
	// AtStart is true when no code precedes the group.
	AtStart bool
	// AtEnd is true when no code follows the group.
	AtEnd bool

	Placement  Placement
	Attachment Attachment
}

// Span returns the byte range from the start of the first comment to the end
// of the last.
func (g *CommentGroup) Span() token.Span {
	comments := g.List()
	if len(comments) == 0 {
		return token.Span{}
	}
	return token.Span{
		Start: comments[0].Span().Start,
		End:   comments[len(comments)-1].Span().End,
	}
}

// List returns the comment tokens of the group.
func (g *CommentGroup) List() []*token.Token {
	var comments []*token.Token
	for _, tok := range g.Tokens {
		if tok.Type.IsComment() {
			comments = append(comments, tok)
		}
	}
	return comments
}

// EndsWithLineComment is true when the last comment of the group runs to the
// end of its line.
func (g *CommentGroup) EndsWithLineComment() bool {
	comments := g.List()
	return len(comments) > 0 && comments[len(comments)-1].Type == token.COMMENT_LINE
}

// Text returns the comments of the group separated by single spaces.
func (g *CommentGroup) Text() string {
	var parts []string
	for _, tok := range g.List() {
		parts = append(parts, tok.Text)
	}
	return strings.Join(parts, " ")
}

// CommentBody returns the text of a comment without its delimiters.
func CommentBody(tok *token.Token) string {
	text := tok.Text
	if tok.Type == token.COMMENT_BLOCK {
		text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
	} else {
		text = strings.TrimPrefix(text, "//")
	}
	return strings.TrimSpace(text)
}
