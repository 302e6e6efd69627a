// Copyright © 2024 The gmlfmt authors

package lsp

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/luthersystems/gmlfmt/parser/token"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// lineIndex converts byte offsets of a document to LSP positions.  LSP
// characters count UTF-16 code units.
type lineIndex struct {
	content string
	starts  []int
}

func newLineIndex(content string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{content: content, starts: starts}
}

// line returns the 0-based line containing offset.
func (li *lineIndex) line(offset int) int {
	offset = min(max(offset, 0), len(li.content))
	return sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
}

func (li *lineIndex) position(offset int) protocol.Position {
	offset = min(max(offset, 0), len(li.content))
	line := li.line(offset)
	return protocol.Position{
		Line:      safeUint(line),
		Character: safeUint(utf16Len(li.content[li.starts[line]:offset])),
	}
}

// offset converts an LSP position back to a byte offset, clamping to the
// end of the line.
func (li *lineIndex) offset(pos protocol.Position) int {
	line := int(pos.Line)
	if line >= len(li.starts) {
		return len(li.content)
	}
	start := li.starts[line]
	end := len(li.content)
	if line+1 < len(li.starts) {
		end = li.starts[line+1] - 1
	}
	units := int(pos.Character)
	i := start
	for i < end && units > 0 {
		r, size := utf8.DecodeRuneInString(li.content[i:])
		units -= utf16RuneLen(r)
		i += size
	}
	return i
}

func (li *lineIndex) span(s token.Span) protocol.Range {
	return protocol.Range{Start: li.position(s.Start), End: li.position(s.End)}
}

// end returns the position just past the last character of the document.
func (li *lineIndex) end() protocol.Position {
	return li.position(len(li.content))
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16RuneLen(r)
	}
	return n
}

func utf16RuneLen(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}

// safeUint converts a non-negative int to protocol.UInteger, clamping
// negative values to zero.
func safeUint(n int) protocol.UInteger {
	if n < 0 {
		return 0
	}
	return protocol.UInteger(n) // #nosec G115 -- line/col are always small positive ints
}

// uriToPath converts a file:// URI to a filesystem path.
func uriToPath(uri string) string {
	if path, ok := strings.CutPrefix(uri, "file://"); ok {
		return path
	}
	return uri
}

// pathToURI converts a filesystem path to a file:// URI.
func pathToURI(path string) string {
	if strings.HasPrefix(path, "/") {
		return "file://" + path
	}
	return path
}
