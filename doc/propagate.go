// Copyright © 2024 The gmlfmt authors

package doc

// PropagateBreaks marks every group containing a hard line or BreakParent,
// directly or through a broken inner group, as broken.  Conditional groups
// are never marked.  They still propagate a break when they were
// constructed broken.
func PropagateBreaks(d Doc) {
	p := &propagator{visited: make(map[*GroupDoc]bool)}
	p.walk(d)
}

type propagator struct {
	groups  []*GroupDoc
	visited map[*GroupDoc]bool
}

func (p *propagator) walk(d Doc) {
	switch d := d.(type) {
	case Concat:
		for _, part := range d {
			p.walk(part)
		}
	case FillDoc:
		for _, part := range d {
			p.walk(part)
		}
	case IndentDoc:
		p.walk(d.Contents)
	case IfBreakDoc:
		p.walk(d.Break)
		p.walk(d.Flat)
	case LineSuffixDoc:
		p.walk(d.Contents)
	case BreakParentDoc:
		p.breakParent()
	case *GroupDoc:
		p.groups = append(p.groups, d)
		if !p.visited[d] {
			p.visited[d] = true
			if len(d.ExpandedStates) > 0 {
				for _, state := range d.ExpandedStates {
					p.walk(state)
				}
			} else {
				p.walk(d.Contents)
			}
		}
		p.groups = p.groups[:len(p.groups)-1]
		if d.Break {
			p.breakParent()
		}
	}
}

func (p *propagator) breakParent() {
	if len(p.groups) == 0 {
		return
	}
	g := p.groups[len(p.groups)-1]
	if len(g.ExpandedStates) == 0 {
		g.Break = true
	}
}

// WillBreak returns true if d contains a broken group, a hard line or a
// BreakParent outside of conditional group alternatives.
func WillBreak(d Doc) bool {
	switch d := d.(type) {
	case Concat:
		for _, part := range d {
			if WillBreak(part) {
				return true
			}
		}
	case FillDoc:
		for _, part := range d {
			if WillBreak(part) {
				return true
			}
		}
	case IndentDoc:
		return WillBreak(d.Contents)
	case IfBreakDoc:
		return WillBreak(d.Break) || WillBreak(d.Flat)
	case LineSuffixDoc:
		return WillBreak(d.Contents)
	case BreakParentDoc:
		return true
	case LineDoc:
		return d.Hard
	case *GroupDoc:
		return d.Break || WillBreak(d.Contents)
	}
	return false
}
