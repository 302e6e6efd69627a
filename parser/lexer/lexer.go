// Copyright © 2024 The gmlfmt authors

package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/luthersystems/gmlfmt/parser/token"
)

// LexFn reads the next token in a particular lexer mode.
type LexFn func(*Lexer) *token.Token

// Lexer produces GML tokens, trivia included.  The lexer never fails;
// malformed input is reported through ERROR and INVALID tokens which carry a
// human readable message as their text.
type Lexer struct {
	scanner *token.Scanner
	lex     LexFn
	// templates holds the brace depth of each template string whose
	// interpolated expression is currently being lexed.
	templates []int
	macro     bool
}

func New(s *token.Scanner) *Lexer {
	lex := &Lexer{
		scanner: s,
		lex:     (*Lexer).readToken,
	}
	return lex
}

// ReadToken returns the next token in the input.  After an EOF token is
// returned subsequent calls continue to return EOF.
func (lex *Lexer) ReadToken() *token.Token {
	return lex.lex(lex)
}

func (lex *Lexer) readToken() *token.Token {
	if lex.scanner.ScanRune() != nil {
		return lex.emit(token.EOF, "")
	}
	c := lex.scanner.Rune()
	switch {
	case c == '\n':
		return lex.emitText(token.LINE_BREAK)
	case c == '\r':
		lex.scanner.AcceptRune('\n')
		return lex.emitText(token.LINE_BREAK)
	case isBlank(c):
		lex.scanner.AcceptSeq(isBlank)
		return lex.emitText(token.WHITESPACE)
	case isIdentStart(c):
		lex.scanner.AcceptSeq(isIdentChar)
		return lex.emitText(token.LookupIdent(lex.scanner.Text()))
	case isDigit(c):
		return lex.readNumber()
	}
	switch c {
	case '/':
		switch {
		case lex.scanner.AcceptRune('/'):
			lex.scanner.AcceptSeq(notLineBreak)
			return lex.emitText(token.COMMENT_LINE)
		case lex.scanner.AcceptRune('*'):
			return lex.readBlockComment()
		}
		return lex.operator(token.SLASH, "=", token.SLASH_ASSIGN)
	case '"':
		return lex.readString()
	case '@':
		if lex.scanner.AcceptAny(`"'`) {
			return lex.readVerbatimString(lex.scanner.Rune())
		}
		return lex.invalid(c)
	case '$':
		switch {
		case lex.scanner.AcceptRune('"'):
			return lex.readTemplateText(true)
		case lex.scanner.Accept(isHexDigit):
			lex.scanner.AcceptSeq(isHexDigitOrSep)
			return lex.finishNumber(token.HEX)
		}
		return lex.invalid(c)
	case '#':
		return lex.readDirective()
	case '.':
		if lex.scanner.AcceptSeqDigit() > 0 {
			return lex.finishNumber(token.DECIMAL)
		}
		return lex.emitText(token.DOT)
	case '+':
		return lex.operator(token.PLUS, "+", token.INCREMENT, "=", token.PLUS_ASSIGN)
	case '-':
		return lex.operator(token.MINUS, "-", token.DECREMENT, "=", token.MINUS_ASSIGN)
	case '*':
		return lex.operator(token.STAR, "=", token.STAR_ASSIGN)
	case '%':
		return lex.operator(token.PERCENT, "=", token.PERCENT_ASSIGN)
	case '=':
		return lex.operator(token.ASSIGN, "=", token.EQ)
	case ':':
		return lex.operator(token.COLON, "=", token.COLON_ASSIGN)
	case '!':
		return lex.operator(token.BANG, "=", token.NEQ)
	case '<':
		return lex.operator(token.LT, "<=", token.SHL_ASSIGN, "<", token.SHL, "=", token.LE, ">", token.NEQ_ALT)
	case '>':
		return lex.operator(token.GT, ">=", token.SHR_ASSIGN, ">", token.SHR, "=", token.GE)
	case '&':
		return lex.operator(token.AMP, "&", token.LOGICAL_AND, "=", token.AND_ASSIGN)
	case '|':
		return lex.operator(token.PIPE, "|", token.LOGICAL_OR, "=", token.OR_ASSIGN)
	case '^':
		return lex.operator(token.CARET, "^", token.LOGICAL_XOR, "=", token.XOR_ASSIGN)
	case '?':
		return lex.operator(token.QUESTION, "?=", token.NULLISH_ASSIGN, "?", token.NULLISH)
	case '~':
		return lex.emitText(token.TILDE)
	case ',':
		return lex.emitText(token.COMMA)
	case ';':
		return lex.emitText(token.SEMICOLON)
	case '(':
		return lex.emitText(token.PAREN_L)
	case ')':
		return lex.emitText(token.PAREN_R)
	case ']':
		return lex.emitText(token.BRACKET_R)
	case '[':
		return lex.readBracket()
	case '{':
		if n := len(lex.templates); n > 0 {
			lex.templates[n-1]++
		}
		return lex.emitText(token.BRACE_L)
	case '}':
		if n := len(lex.templates); n > 0 {
			if lex.templates[n-1] == 0 {
				return lex.readTemplateText(false)
			}
			lex.templates[n-1]--
		}
		return lex.emitText(token.BRACE_R)
	}
	return lex.invalid(c)
}

// operator emits the longest operator matching the scanned rune followed by
// one of the given suffixes.  Suffix/type pairs must be ordered longest
// first.
func (lex *Lexer) operator(typ token.Type, alts ...interface{}) *token.Token {
	for i := 0; i+1 < len(alts); i += 2 {
		if lex.scanner.AcceptString(alts[i].(string)) {
			return lex.emitText(alts[i+1].(token.Type))
		}
	}
	return lex.emitText(typ)
}

func (lex *Lexer) readBracket() *token.Token {
	peek, _ := lex.scanner.Peek()
	next, _ := lex.scanner.PeekAt(1)
	switch peek {
	case '|':
		lex.scanner.AcceptRune('|')
		return lex.emitText(token.ACCESSOR_LIST)
	case '?':
		lex.scanner.AcceptRune('?')
		return lex.emitText(token.ACCESSOR_MAP)
	case '#':
		if lex.colorAhead() {
			break
		}
		lex.scanner.AcceptRune('#')
		return lex.emitText(token.ACCESSOR_GRID)
	case '@':
		if next == '"' || next == '\'' {
			break
		}
		lex.scanner.AcceptRune('@')
		return lex.emitText(token.ACCESSOR_ARRAY)
	case '$':
		if next == '"' {
			break
		}
		lex.scanner.AcceptRune('$')
		return lex.emitText(token.ACCESSOR_STRUCT)
	}
	return lex.emitText(token.BRACKET_L)
}

// colorAhead reports whether the unscanned input is a six digit color
// literal such as #FF00FF.
func (lex *Lexer) colorAhead() bool {
	for i := 1; i <= 6; i++ {
		c, ok := lex.scanner.PeekAt(i)
		if !ok || !isHexDigit(c) {
			return false
		}
	}
	c, ok := lex.scanner.PeekAt(7)
	return !ok || !isIdentChar(c)
}

func (lex *Lexer) readBlockComment() *token.Token {
	for {
		if lex.scanner.AcceptString("*/") {
			return lex.emitText(token.COMMENT_BLOCK)
		}
		if lex.scanner.ScanRune() != nil {
			return lex.errorf("unterminated block comment")
		}
	}
}

func (lex *Lexer) readString() *token.Token {
	for {
		lex.scanner.AcceptSeq(func(c rune) bool {
			return c != '"' && c != '\\' && notLineBreak(c)
		})
		switch {
		case lex.scanner.AcceptRune('"'):
			return lex.emitText(token.STRING)
		case lex.scanner.AcceptRune('\\'):
			// Escapes are not interpreted; any rune may follow the backslash.
			if lex.scanner.ScanRune() != nil {
				return lex.errorf("unterminated string literal")
			}
		default:
			return lex.errorf("unterminated string literal")
		}
	}
}

func (lex *Lexer) readVerbatimString(quote rune) *token.Token {
	for {
		lex.scanner.AcceptSeq(func(c rune) bool { return c != quote })
		if !lex.scanner.AcceptRune(quote) {
			return lex.errorf("unterminated verbatim string literal")
		}
		// A doubled quote is an escaped quote.
		if !lex.scanner.AcceptRune(quote) {
			return lex.emitText(token.STRING_VERBATIM)
		}
	}
}

// readTemplateText scans literal template text up to the next interpolation
// or the closing quote.  The opening delimiter ($" or }) has been scanned.
func (lex *Lexer) readTemplateText(start bool) *token.Token {
	for {
		lex.scanner.AcceptSeq(func(c rune) bool {
			return c != '"' && c != '{' && c != '\\' && notLineBreak(c)
		})
		switch {
		case lex.scanner.AcceptRune('\\'):
			if lex.scanner.ScanRune() != nil {
				return lex.templateError()
			}
		case lex.scanner.AcceptRune('{'):
			if start {
				lex.templates = append(lex.templates, 0)
				return lex.emitText(token.TEMPLATE_START)
			}
			return lex.emitText(token.TEMPLATE_MIDDLE)
		case lex.scanner.AcceptRune('"'):
			if start {
				return lex.emitText(token.TEMPLATE_STRING)
			}
			lex.templates = lex.templates[:len(lex.templates)-1]
			return lex.emitText(token.TEMPLATE_END)
		default:
			return lex.templateError()
		}
	}
}

func (lex *Lexer) templateError() *token.Token {
	lex.templates = nil
	return lex.errorf("unterminated template string")
}

func (lex *Lexer) readDirective() *token.Token {
	lex.scanner.AcceptSeq(isIdentChar)
	text := lex.scanner.Text()
	switch text {
	case "#macro":
		lex.macro = true
		lex.lex = (*Lexer).readDirectiveText
		return lex.emitText(token.MACRO)
	case "#region":
		lex.lex = (*Lexer).readDirectiveText
		return lex.emitText(token.REGION)
	case "#endregion":
		lex.lex = (*Lexer).readDirectiveText
		return lex.emitText(token.END_REGION)
	case "#define":
		lex.lex = (*Lexer).readDirectiveText
		return lex.emitText(token.DEFINE)
	}
	digits := text[1:]
	if len(digits) == 6 && strings.IndexFunc(digits, func(c rune) bool { return !isHexDigit(c) }) < 0 {
		return lex.emitText(token.COLOR)
	}
	if digits == "" {
		return lex.errorf("unexpected character '#'")
	}
	return lex.errorf("invalid directive or color literal %q", text)
}

// readDirectiveText scans the free text following a directive up to the end
// of the line.  Macro bodies continue onto the next line when a line ends
// with a backslash.
func (lex *Lexer) readDirectiveText() *token.Token {
	macro := lex.macro
	lex.macro = false
	lex.lex = (*Lexer).readToken
	for {
		lex.scanner.AcceptSeq(notLineBreak)
		text := strings.TrimRight(lex.scanner.Text(), " \t")
		if !macro || !strings.HasSuffix(text, `\`) {
			break
		}
		if !lex.scanner.AcceptRune('\r') && !lex.scanner.AcceptRune('\n') {
			break
		}
		if lex.scanner.Rune() == '\r' {
			lex.scanner.AcceptRune('\n')
		}
	}
	return lex.emitText(token.DIRECTIVE_TEXT)
}

func (lex *Lexer) readNumber() *token.Token {
	if lex.scanner.Rune() == '0' {
		switch {
		case lex.scanner.AcceptAny("xX"):
			if lex.scanner.AcceptSeq(isHexDigitOrSep) == 0 {
				return lex.errorf("invalid hexadecimal literal %q", lex.scanner.Text())
			}
			return lex.finishNumber(token.HEX)
		case lex.scanner.AcceptAny("bB"):
			if lex.scanner.AcceptSeq(func(c rune) bool { return c == '0' || c == '1' || c == '_' }) == 0 {
				return lex.errorf("invalid binary literal %q", lex.scanner.Text())
			}
			return lex.finishNumber(token.BINARY)
		}
	}
	lex.scanner.AcceptSeq(func(c rune) bool { return isDigit(c) || c == '_' })
	peek, _ := lex.scanner.PeekAt(1)
	if isDigit(peek) && lex.scanner.AcceptRune('.') {
		lex.scanner.AcceptSeqDigit()
		return lex.finishNumber(token.DECIMAL)
	}
	return lex.finishNumber(token.INT)
}

// finishNumber rejects numeric literals that run directly into a word.
func (lex *Lexer) finishNumber(typ token.Type) *token.Token {
	if lex.scanner.AcceptSeq(isIdentChar) > 0 {
		return lex.errorf("invalid numeric literal %q", lex.scanner.Text())
	}
	return lex.emitText(typ)
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitText(typ token.Type) *token.Token {
	return lex.scanner.EmitToken(typ)
}

func (lex *Lexer) errorf(format string, v ...interface{}) *token.Token {
	return lex.emit(token.ERROR, fmt.Sprintf(format, v...))
}

func (lex *Lexer) invalid(c rune) *token.Token {
	return lex.emit(token.INVALID, fmt.Sprintf("unexpected character %q", c))
}

func notLineBreak(c rune) bool {
	return c != '\n' && c != '\r'
}

func isBlank(c rune) bool {
	return notLineBreak(c) && (unicode.IsSpace(c) || c == '\uFEFF')
}

func isIdentStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isIdentChar(c rune) bool {
	return isIdentStart(c) || unicode.IsDigit(c)
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c rune) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isHexDigitOrSep(c rune) bool {
	return isHexDigit(c) || c == '_'
}
