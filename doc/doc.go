// Copyright © 2024 The gmlfmt authors

// Package doc implements a document algebra for pretty printing.
//
// A Doc describes text along with the places it may be broken across
// lines.  Printers build a Doc for their input and Render lays it out for a
// given line width.  Groups are printed flat when their contents fit on the
// remainder of the line and broken otherwise.  A broken group turns each of
// its lines into a newline followed by the current indentation.
//
// The algorithm is that of Wadler's "A prettier printer" as extended by the
// JavaScript Prettier project with conditional groups, fills and line
// suffixes.
package doc

// Doc is a document.  The set of Doc types is closed.
type Doc interface {
	doc()
}

// Text is literal text.  It must not contain line breaks unless it is the
// only content on its line; use LiteralLine to join multi-line text.
type Text string

// Concat is a sequence of documents printed one after the other.
type Concat []Doc

// GroupDoc tries to print its contents flat and breaks them otherwise.
type GroupDoc struct {
	Contents Doc
	// Break forces the group to break.  It is set by PropagateBreaks for
	// groups containing a hard line or BreakParent.
	Break bool
	// ExpandedStates lists alternative layouts of a conditional group,
	// from most to least compact.  Contents is the first state.
	ExpandedStates []Doc
}

// IndentDoc increases the indentation of lines within its contents by one
// level.
type IndentDoc struct {
	Contents Doc
}

// LineDoc is a possible line break.
type LineDoc struct {
	// Soft lines print as nothing in flat mode.  Other lines print as a
	// space.
	Soft bool
	// Hard lines always break.
	Hard bool
	// Literal lines break without indentation and keep trailing
	// whitespace on the line they end.
	Literal bool
}

// FillDoc alternates content and separators.  The renderer puts as many
// contents on a line as fit, breaking only the separators that must.
type FillDoc []Doc

// IfBreakDoc prints Break when the enclosing group is broken and Flat
// otherwise.  Either may be nil.
type IfBreakDoc struct {
	Break Doc
	Flat  Doc
}

// LineSuffixDoc defers its contents until just before the next newline.
type LineSuffixDoc struct {
	Contents Doc
}

// BreakParentDoc forces every enclosing group to break.
type BreakParentDoc struct{}

func (Text) doc()           {}
func (Concat) doc()         {}
func (*GroupDoc) doc()      {}
func (IndentDoc) doc()      {}
func (LineDoc) doc()        {}
func (FillDoc) doc()        {}
func (IfBreakDoc) doc()     {}
func (LineSuffixDoc) doc()  {}
func (BreakParentDoc) doc() {}

var (
	// Empty prints nothing.
	Empty Doc = Concat(nil)
	// Space is a single space.
	Space Doc = Text(" ")
	// Line is a space in flat mode and a newline when broken.
	Line Doc = LineDoc{}
	// SoftLine is nothing in flat mode and a newline when broken.
	SoftLine Doc = LineDoc{Soft: true}
	// HardLine always breaks and breaks its enclosing groups.
	HardLine Doc = Concat{LineDoc{Hard: true}, BreakParent}
	// LiteralLine always breaks and starts the next line at column zero.
	LiteralLine Doc = Concat{LineDoc{Hard: true, Literal: true}, BreakParent}
	// BreakParent breaks every enclosing group.
	BreakParent Doc = BreakParentDoc{}
)

// Group returns a group of the concatenated parts.
func Group(parts ...Doc) *GroupDoc {
	return &GroupDoc{Contents: cat(parts)}
}

// BreakingGroup returns a group which always breaks.
func BreakingGroup(parts ...Doc) *GroupDoc {
	return &GroupDoc{Contents: cat(parts), Break: true}
}

// ConditionalGroup returns a group which tries each state in order and
// prints the first one that fits flat, falling back to the last state
// broken.
func ConditionalGroup(states ...Doc) *GroupDoc {
	return &GroupDoc{Contents: states[0], ExpandedStates: states}
}

// Indent indents the concatenated parts.
func Indent(parts ...Doc) Doc {
	return IndentDoc{Contents: cat(parts)}
}

// Fill returns a fill over parts, which alternate content and separator.
func Fill(parts []Doc) Doc {
	return FillDoc(parts)
}

// IfBreak chooses between two documents depending on the enclosing group.
func IfBreak(breakContents, flatContents Doc) Doc {
	return IfBreakDoc{Break: breakContents, Flat: flatContents}
}

// LineSuffix defers the concatenated parts to the end of the line.
func LineSuffix(parts ...Doc) Doc {
	return LineSuffixDoc{Contents: cat(parts)}
}

// Join interleaves docs with sep.
func Join(sep Doc, docs []Doc) Doc {
	parts := make(Concat, 0, 2*len(docs))
	for i, d := range docs {
		if i > 0 {
			parts = append(parts, sep)
		}
		parts = append(parts, d)
	}
	return parts
}

func cat(parts []Doc) Doc {
	if len(parts) == 1 {
		return parts[0]
	}
	return Concat(parts)
}
