// Copyright © 2024 The gmlfmt authors

package formatter

import "bytes"

// isNextLineEmpty returns true if the line following offset i in src is
// blank.  Separators and comments ending the current line are skipped.
func isNextLineEmpty(src []byte, i int) bool {
	for prev := -1; i != prev; {
		prev = i
		i = skipChars(src, i, ",;")
		i = skipBlockComment(src, i)
		i = skipChars(src, i, " \t")
	}
	i = skipLineComment(src, i)
	if i >= len(src) || src[i] != '\n' {
		return false
	}
	i = skipChars(src, i+1, " \t")
	return i < len(src) && src[i] == '\n'
}

func skipChars(src []byte, i int, chars string) int {
	for i < len(src) && bytes.IndexByte([]byte(chars), src[i]) >= 0 {
		i++
	}
	return i
}

// skipBlockComment skips a block comment starting at i if it ends on the
// same line.
func skipBlockComment(src []byte, i int) int {
	if !bytes.HasPrefix(src[i:], []byte("/*")) {
		return i
	}
	end := bytes.Index(src[i+2:], []byte("*/"))
	if end < 0 || bytes.IndexByte(src[i+2:i+2+end], '\n') >= 0 {
		return i
	}
	return i + 2 + end + 2
}

func skipLineComment(src []byte, i int) int {
	if !bytes.HasPrefix(src[i:], []byte("//")) {
		return i
	}
	if end := bytes.IndexByte(src[i:], '\n'); end >= 0 {
		return i + end
	}
	return len(src)
}

// hasNewlineBetween returns true if src[start:end] contains a line break.
func hasNewlineBetween(src []byte, start, end int) bool {
	if start < 0 || end > len(src) || start >= end {
		return false
	}
	return bytes.IndexByte(src[start:end], '\n') >= 0
}

// normalizeNewlines converts CRLF and lone CR line endings to LF.
func normalizeNewlines(src []byte) []byte {
	if bytes.IndexByte(src, '\r') < 0 {
		return src
	}
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(src, []byte("\r"), []byte("\n"))
}
