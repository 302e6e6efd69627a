// Copyright © 2024 The gmlfmt authors

package repl

import "unicode"

// wordCompleter implements readline.AutoCompleter over GML keywords,
// identifiers typed earlier in the session and REPL commands.
type wordCompleter struct {
	sess *session
}

func (c *wordCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// Extract the word being typed (backwards from cursor to a non-word rune).
	start := pos
	for start > 0 && isWordRune(line[start-1]) {
		start--
	}
	if start == 1 && line[0] == ':' {
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	candidates := c.sess.words(prefix)
	if len(candidates) == 0 {
		return nil, 0
	}

	// Build completions: each entry is the suffix to append.
	result := make([][]rune, 0, len(candidates))
	for _, word := range candidates {
		suffix := []rune(word)[len([]rune(prefix)):]
		result = append(result, suffix)
	}
	return result, len([]rune(prefix))
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
