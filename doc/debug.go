// Copyright © 2024 The gmlfmt authors

package doc

import (
	"fmt"
	"strconv"
	"strings"
)

// Debug returns a readable rendering of the structure of d using the names
// of the builder functions.
func Debug(d Doc) string {
	var b strings.Builder
	debug(&b, d, 0)
	return b.String()
}

func debug(b *strings.Builder, d Doc, depth int) {
	pad := strings.Repeat("  ", depth)
	switch d := d.(type) {
	case nil:
		b.WriteString(pad + "nil")
	case Text:
		b.WriteString(pad + strconv.Quote(string(d)))
	case Concat:
		debugList(b, pad+"[", d, "]", depth)
	case FillDoc:
		debugList(b, pad+"fill([", d, "])", depth)
	case IndentDoc:
		debugList(b, pad+"indent(", []Doc{d.Contents}, ")", depth)
	case LineSuffixDoc:
		debugList(b, pad+"lineSuffix(", []Doc{d.Contents}, ")", depth)
	case IfBreakDoc:
		debugList(b, pad+"ifBreak(", []Doc{d.Break, d.Flat}, ")", depth)
	case BreakParentDoc:
		b.WriteString(pad + "breakParent")
	case LineDoc:
		switch {
		case d.Literal:
			b.WriteString(pad + "literalline")
		case d.Hard:
			b.WriteString(pad + "hardline")
		case d.Soft:
			b.WriteString(pad + "softline")
		default:
			b.WriteString(pad + "line")
		}
	case *GroupDoc:
		name := "group"
		parts := []Doc{d.Contents}
		if len(d.ExpandedStates) > 0 {
			name = "conditionalGroup"
			parts = d.ExpandedStates
		}
		if d.Break {
			name += "!"
		}
		debugList(b, pad+name+"(", parts, ")", depth)
	default:
		fmt.Fprintf(b, "%s%T", pad, d)
	}
}

func debugList(b *strings.Builder, open string, parts []Doc, close string, depth int) {
	if len(parts) == 0 {
		b.WriteString(open + close)
		return
	}
	b.WriteString(open + "\n")
	for i, part := range parts {
		debug(b, part, depth+1)
		if i < len(parts)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("  ", depth) + close)
}
