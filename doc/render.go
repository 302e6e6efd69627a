// Copyright © 2024 The gmlfmt authors

package doc

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Options control the layout of rendered documents.
type Options struct {
	// PrintWidth is the line width groups try to fit within.
	PrintWidth int
	// TabWidth is the width of one indentation level and of a tab
	// character.
	TabWidth int
	// UseTabs indents with tab characters instead of spaces.
	UseTabs bool
}

type mode int

const (
	modeBreak mode = iota
	modeFlat
)

type indentation struct {
	value string
	width int
}

type command struct {
	ind  indentation
	mode mode
	doc  Doc
}

type renderer struct {
	opts        Options
	out         []byte
	pos         int
	cmds        []command
	lineSuffix  []command
	remeasuring bool
}

// Render lays out d and returns the resulting text.  Render calls
// PropagateBreaks on d first.
func Render(d Doc, opts Options) string {
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}
	PropagateBreaks(d)
	r := &renderer{opts: opts}
	r.cmds = append(r.cmds, command{mode: modeBreak, doc: d})
	for len(r.cmds) > 0 {
		cmd := r.pop()
		r.print(cmd)
		if len(r.cmds) == 0 && len(r.lineSuffix) > 0 {
			r.flushLineSuffix()
		}
	}
	return string(r.out)
}

func (r *renderer) push(cmds ...command) {
	r.cmds = append(r.cmds, cmds...)
}

func (r *renderer) pop() command {
	cmd := r.cmds[len(r.cmds)-1]
	r.cmds = r.cmds[:len(r.cmds)-1]
	return cmd
}

func (r *renderer) flushLineSuffix() {
	for i := len(r.lineSuffix) - 1; i >= 0; i-- {
		r.push(r.lineSuffix[i])
	}
	r.lineSuffix = nil
}

func (r *renderer) indent(ind indentation) indentation {
	if r.opts.UseTabs {
		return indentation{value: ind.value + "\t", width: ind.width + r.opts.TabWidth}
	}
	return indentation{
		value: ind.value + strings.Repeat(" ", r.opts.TabWidth),
		width: ind.width + r.opts.TabWidth,
	}
}

func (r *renderer) print(cmd command) {
	ind := cmd.ind
	switch d := cmd.doc.(type) {
	case Text:
		r.out = append(r.out, string(d)...)
		if i := strings.LastIndexByte(string(d), '\n'); i >= 0 {
			r.pos = textWidth(string(d[i+1:]), r.opts.TabWidth)
		} else {
			r.pos += textWidth(string(d), r.opts.TabWidth)
		}
	case Concat:
		for i := len(d) - 1; i >= 0; i-- {
			r.push(command{ind, cmd.mode, d[i]})
		}
	case IndentDoc:
		r.push(command{r.indent(ind), cmd.mode, d.Contents})
	case *GroupDoc:
		r.printGroup(cmd, d)
	case FillDoc:
		r.printFill(cmd, d)
	case IfBreakDoc:
		contents := d.Flat
		if cmd.mode == modeBreak {
			contents = d.Break
		}
		if contents != nil {
			r.push(command{ind, cmd.mode, contents})
		}
	case LineSuffixDoc:
		r.lineSuffix = append(r.lineSuffix, command{ind, cmd.mode, d.Contents})
	case BreakParentDoc:
	case LineDoc:
		if cmd.mode == modeFlat && !d.Hard {
			if !d.Soft {
				r.out = append(r.out, ' ')
				r.pos++
			}
			return
		}
		if cmd.mode == modeFlat {
			// A hard line inside a flat group invalidates the measurements
			// of the groups that follow on the new line.
			r.remeasuring = true
		}
		if len(r.lineSuffix) > 0 {
			r.push(cmd)
			r.flushLineSuffix()
			return
		}
		if d.Literal {
			r.out = append(r.out, '\n')
			r.pos = 0
			return
		}
		r.trim()
		r.out = append(r.out, '\n')
		r.out = append(r.out, ind.value...)
		r.pos = ind.width
	}
}

func (r *renderer) printGroup(cmd command, g *GroupDoc) {
	ind := cmd.ind
	if cmd.mode == modeFlat && !r.remeasuring {
		m := modeFlat
		if g.Break {
			m = modeBreak
		}
		r.push(command{ind, m, g.Contents})
		return
	}
	r.remeasuring = false

	rem := r.opts.PrintWidth - r.pos
	next := command{ind, modeFlat, g.Contents}
	if !g.Break && r.fits(next, r.cmds, rem, false) {
		r.push(next)
		return
	}
	if len(g.ExpandedStates) == 0 {
		r.push(command{ind, modeBreak, g.Contents})
		return
	}
	mostExpanded := g.ExpandedStates[len(g.ExpandedStates)-1]
	if g.Break {
		r.push(command{ind, modeBreak, mostExpanded})
		return
	}
	for _, state := range g.ExpandedStates[1:] {
		cmd := command{ind, modeFlat, state}
		if r.fits(cmd, r.cmds, rem, false) {
			r.push(cmd)
			return
		}
	}
	r.push(command{ind, modeBreak, mostExpanded})
}

func (r *renderer) printFill(cmd command, parts FillDoc) {
	if len(parts) == 0 {
		return
	}
	ind := cmd.ind
	rem := r.opts.PrintWidth - r.pos

	content := parts[0]
	contentFlat := command{ind, modeFlat, content}
	contentBreak := command{ind, modeBreak, content}
	contentFits := r.fits(contentFlat, nil, rem, true)
	if len(parts) == 1 {
		if contentFits {
			r.push(contentFlat)
		} else {
			r.push(contentBreak)
		}
		return
	}

	whitespace := parts[1]
	whitespaceFlat := command{ind, modeFlat, whitespace}
	whitespaceBreak := command{ind, modeBreak, whitespace}
	if len(parts) == 2 {
		if contentFits {
			r.push(whitespaceFlat, contentFlat)
		} else {
			r.push(whitespaceBreak, contentBreak)
		}
		return
	}

	remaining := command{ind, cmd.mode, parts[2:]}
	pair := command{ind, modeFlat, Concat{content, whitespace, parts[2]}}
	switch {
	case r.fits(pair, nil, rem, true):
		r.push(remaining, whitespaceFlat, contentFlat)
	case contentFits:
		r.push(remaining, whitespaceBreak, contentFlat)
	default:
		r.push(remaining, whitespaceBreak, contentBreak)
	}
}

// fits reports whether next, followed by the commands in rest, fits in
// width columns up to the first line break.  Line suffixes take no room.
func (r *renderer) fits(next command, rest []command, width int, mustBeFlat bool) bool {
	restIdx := len(rest)
	cmds := []command{next}
	for width >= 0 {
		if len(cmds) == 0 {
			if restIdx == 0 {
				return true
			}
			restIdx--
			cmds = append(cmds, rest[restIdx])
			continue
		}
		cmd := cmds[len(cmds)-1]
		cmds = cmds[:len(cmds)-1]
		switch d := cmd.doc.(type) {
		case Text:
			width -= textWidth(string(d), r.opts.TabWidth)
		case Concat:
			for i := len(d) - 1; i >= 0; i-- {
				cmds = append(cmds, command{cmd.ind, cmd.mode, d[i]})
			}
		case FillDoc:
			for i := len(d) - 1; i >= 0; i-- {
				cmds = append(cmds, command{cmd.ind, cmd.mode, d[i]})
			}
		case IndentDoc:
			cmds = append(cmds, command{cmd.ind, cmd.mode, d.Contents})
		case *GroupDoc:
			if mustBeFlat && d.Break {
				return false
			}
			m := cmd.mode
			if d.Break {
				m = modeBreak
			}
			contents := d.Contents
			if len(d.ExpandedStates) > 0 && m == modeBreak {
				contents = d.ExpandedStates[len(d.ExpandedStates)-1]
			}
			cmds = append(cmds, command{cmd.ind, m, contents})
		case IfBreakDoc:
			contents := d.Flat
			if cmd.mode == modeBreak {
				contents = d.Break
			}
			if contents != nil {
				cmds = append(cmds, command{cmd.ind, cmd.mode, contents})
			}
		case LineDoc:
			if cmd.mode == modeBreak || d.Hard {
				return true
			}
			if !d.Soft {
				width--
			}
		}
	}
	return false
}

// trim removes trailing blanks from the current line.
func (r *renderer) trim() {
	n := len(r.out)
	for n > 0 && (r.out[n-1] == ' ' || r.out[n-1] == '\t') {
		n--
	}
	r.out = r.out[:n]
}

func textWidth(s string, tabWidth int) int {
	if !strings.ContainsRune(s, '\t') {
		return runewidth.StringWidth(s)
	}
	w := 0
	for _, c := range s {
		if c == '\t' {
			w += tabWidth
			continue
		}
		w += runewidth.RuneWidth(c)
	}
	return w
}
