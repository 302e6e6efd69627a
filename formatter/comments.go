// Copyright © 2024 The gmlfmt authors

package formatter

import (
	"github.com/luthersystems/gmlfmt/ast"
	"github.com/luthersystems/gmlfmt/doc"
)

// withComments surrounds d, the document for n, with the leading and
// trailing comments of n.  Dangling comments not printed by the printer for
// n follow it like trailing comments.
func (p *printer) withComments(n ast.Node, d doc.Doc) doc.Doc {
	leading := p.leadingComments(n)
	trailing := p.trailingComments(n)
	if leading == nil && trailing == nil {
		return d
	}
	parts := doc.Concat{}
	if leading != nil {
		parts = append(parts, leading)
	}
	parts = append(parts, d)
	if trailing != nil {
		parts = append(parts, trailing)
	}
	return parts
}

func (p *printer) leadingComments(n ast.Node) doc.Doc {
	var parts doc.Concat
	for _, g := range n.Comments() {
		if g.Attachment != ast.Leading || p.printed[g] {
			continue
		}
		parts = append(parts, p.comment(g))
		switch {
		case g.EndsWithLineComment() || g.TrailingBreaks > 0:
			parts = append(parts, doc.HardLine)
			if g.TrailingBreaks > 1 {
				parts = append(parts, doc.HardLine)
			}
		default:
			parts = append(parts, doc.Space)
		}
	}
	if parts == nil {
		return nil
	}
	return parts
}

func (p *printer) trailingComments(n ast.Node) doc.Doc {
	var parts doc.Concat
	for _, g := range n.Comments() {
		if g.Attachment == ast.Leading || p.printed[g] {
			continue
		}
		contents := p.comment(g)
		switch {
		case g.LeadingBreaks > 0:
			suffix := doc.Concat{doc.HardLine}
			if g.LeadingBreaks > 1 {
				suffix = append(suffix, doc.HardLine)
			}
			parts = append(parts, doc.LineSuffix(append(suffix, contents)...))
		case g.EndsWithLineComment():
			parts = append(parts, doc.LineSuffix(doc.Space, contents), doc.BreakParent)
		default:
			parts = append(parts, doc.Space, contents)
		}
	}
	if parts == nil {
		return nil
	}
	return parts
}

// comment prints the comments of g as written, separated by single
// spaces.
func (p *printer) comment(g *ast.CommentGroup) doc.Doc {
	p.printed[g] = true
	var parts doc.Concat
	for i, tok := range g.List() {
		if i > 0 {
			parts = append(parts, doc.Space)
		}
		parts = append(parts, verbatim(tok.Text))
	}
	return parts
}

// danglingComments prints the dangling comments of n one per line, keeping
// a single blank line where the source had one.  It returns nil when n has
// none.
func (p *printer) danglingComments(n ast.Node) doc.Doc {
	var parts doc.Concat
	for _, g := range ast.CommentsOf(n, ast.Dangling) {
		if p.printed[g] {
			continue
		}
		if len(parts) > 0 {
			parts = append(parts, doc.HardLine)
			if g.LeadingBreaks > 1 {
				parts = append(parts, doc.HardLine)
			}
		}
		parts = append(parts, p.comment(g))
	}
	if parts == nil {
		return nil
	}
	return parts
}

// inlineDangling returns true if every dangling comment of n is a block
// comment sharing a line with code.
func inlineDangling(n ast.Node) bool {
	for _, g := range ast.CommentsOf(n, ast.Dangling) {
		if g.EndsWithLineComment() || g.LeadingBreaks > 0 || g.TrailingBreaks > 0 {
			return false
		}
	}
	return true
}

// emptyList prints the delimiters of an empty list with the dangling
// comments of n between them.
func (p *printer) emptyList(n ast.Node, open, close string) doc.Doc {
	inline := inlineDangling(n)
	comments := p.danglingComments(n)
	switch {
	case comments == nil:
		return doc.Text(open + close)
	case inline:
		return doc.Concat{doc.Text(open), comments, doc.Text(close)}
	}
	return doc.Concat{doc.Text(open), doc.Indent(doc.HardLine, comments), doc.HardLine, doc.Text(close)}
}

// emptyBraces prints an empty block.  Dangling comments go on their own
// lines.
func (p *printer) emptyBraces(n ast.Node) doc.Doc {
	comments := p.danglingComments(n)
	if comments == nil {
		return doc.Text("{}")
	}
	return doc.Concat{doc.Text("{"), doc.Indent(doc.HardLine, comments), doc.HardLine, doc.Text("}")}
}

// hasLineComment returns true if n has a comment with attachment a which
// runs to the end of its line.
func hasLineComment(n ast.Node, a ast.Attachment) bool {
	for _, g := range ast.CommentsOf(n, a) {
		if g.EndsWithLineComment() {
			return true
		}
	}
	return false
}
