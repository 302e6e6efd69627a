// Copyright © 2024 The gmlfmt authors

package token

import "fmt"

type Token struct {
	Type   Type
	Text   string
	Source *Location
}

// Span returns the byte range covered by tok.
func (tok *Token) Span() Span {
	return Span{Start: tok.Source.Pos, End: tok.Source.Pos + len(tok.Text)}
}

func (tok *Token) String() string {
	switch tok.Type {
	case EOF:
		return "EOF"
	case ERROR, INVALID:
		return tok.Text
	}
	return fmt.Sprintf("%s %q", tok.Type, tok.Text)
}

type Type uint

// Type constants used for the GML lexer/parser.
const (
	INVALID Type = iota
	ERROR
	EOF

	// Trivia
	WHITESPACE
	LINE_BREAK
	COMMENT_LINE
	COMMENT_BLOCK

	// Literals
	IDENT
	INT
	DECIMAL
	HEX
	BINARY
	COLOR
	STRING
	STRING_VERBATIM
	TEMPLATE_STRING
	TEMPLATE_START
	TEMPLATE_MIDDLE
	TEMPLATE_END

	// Directives
	MACRO
	REGION
	END_REGION
	DEFINE
	DIRECTIVE_TEXT

	// Keywords
	keywordStart
	VAR
	GLOBALVAR
	STATIC
	IF
	THEN
	ELSE
	WHILE
	DO
	UNTIL
	REPEAT
	FOR
	WITH
	SWITCH
	CASE
	DEFAULT
	BREAK
	CONTINUE
	EXIT
	RETURN
	FUNCTION
	CONSTRUCTOR
	NEW
	DELETE
	THROW
	TRY
	CATCH
	FINALLY
	ENUM
	TRUE
	FALSE
	UNDEFINED
	BEGIN
	END
	AND_WORD
	OR_WORD
	XOR_WORD
	NOT_WORD
	MOD_WORD
	DIV_WORD
	keywordEnd

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	INCREMENT
	DECREMENT
	ASSIGN
	COLON_ASSIGN
	PLUS_ASSIGN
	MINUS_ASSIGN
	STAR_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN
	AND_ASSIGN
	OR_ASSIGN
	XOR_ASSIGN
	SHL_ASSIGN
	SHR_ASSIGN
	NULLISH_ASSIGN
	EQ
	NEQ
	NEQ_ALT
	LT
	GT
	LE
	GE
	LOGICAL_AND
	LOGICAL_OR
	LOGICAL_XOR
	BANG
	TILDE
	AMP
	PIPE
	CARET
	SHL
	SHR
	NULLISH
	QUESTION
	COLON
	DOT
	COMMA
	SEMICOLON

	// Delimiters
	PAREN_L
	PAREN_R
	BRACKET_L
	BRACKET_R
	BRACE_L
	BRACE_R
	ACCESSOR_LIST
	ACCESSOR_MAP
	ACCESSOR_GRID
	ACCESSOR_ARRAY
	ACCESSOR_STRUCT

	numTokenTypes
)

var typeStrings = [numTokenTypes]string{
	INVALID:         "invalid",
	ERROR:           "error",
	EOF:             "EOF",
	WHITESPACE:      "whitespace",
	LINE_BREAK:      "line break",
	COMMENT_LINE:    "line comment",
	COMMENT_BLOCK:   "block comment",
	IDENT:           "identifier",
	INT:             "integer",
	DECIMAL:         "decimal",
	HEX:             "hex",
	BINARY:          "binary",
	COLOR:           "color",
	STRING:          "string",
	STRING_VERBATIM: "verbatim string",
	TEMPLATE_STRING: "template string",
	TEMPLATE_START:  "template start",
	TEMPLATE_MIDDLE: "template middle",
	TEMPLATE_END:    "template end",
	MACRO:           "#macro",
	REGION:          "#region",
	END_REGION:      "#endregion",
	DEFINE:          "#define",
	DIRECTIVE_TEXT:  "directive text",
	keywordStart:    "<keywords>",
	VAR:             "var",
	GLOBALVAR:       "globalvar",
	STATIC:          "static",
	IF:              "if",
	THEN:            "then",
	ELSE:            "else",
	WHILE:           "while",
	DO:              "do",
	UNTIL:           "until",
	REPEAT:          "repeat",
	FOR:             "for",
	WITH:            "with",
	SWITCH:          "switch",
	CASE:            "case",
	DEFAULT:         "default",
	BREAK:           "break",
	CONTINUE:        "continue",
	EXIT:            "exit",
	RETURN:          "return",
	FUNCTION:        "function",
	CONSTRUCTOR:     "constructor",
	NEW:             "new",
	DELETE:          "delete",
	THROW:           "throw",
	TRY:             "try",
	CATCH:           "catch",
	FINALLY:         "finally",
	ENUM:            "enum",
	TRUE:            "true",
	FALSE:           "false",
	UNDEFINED:       "undefined",
	BEGIN:           "begin",
	END:             "end",
	AND_WORD:        "and",
	OR_WORD:         "or",
	XOR_WORD:        "xor",
	NOT_WORD:        "not",
	MOD_WORD:        "mod",
	DIV_WORD:        "div",
	keywordEnd:      "</keywords>",
	PLUS:            "+",
	MINUS:           "-",
	STAR:            "*",
	SLASH:           "/",
	PERCENT:         "%",
	INCREMENT:       "++",
	DECREMENT:       "--",
	ASSIGN:          "=",
	COLON_ASSIGN:    ":=",
	PLUS_ASSIGN:     "+=",
	MINUS_ASSIGN:    "-=",
	STAR_ASSIGN:     "*=",
	SLASH_ASSIGN:    "/=",
	PERCENT_ASSIGN:  "%=",
	AND_ASSIGN:      "&=",
	OR_ASSIGN:       "|=",
	XOR_ASSIGN:      "^=",
	SHL_ASSIGN:      "<<=",
	SHR_ASSIGN:      ">>=",
	NULLISH_ASSIGN:  "??=",
	EQ:              "==",
	NEQ:             "!=",
	NEQ_ALT:         "<>",
	LT:              "<",
	GT:              ">",
	LE:              "<=",
	GE:              ">=",
	LOGICAL_AND:     "&&",
	LOGICAL_OR:      "||",
	LOGICAL_XOR:     "^^",
	BANG:            "!",
	TILDE:           "~",
	AMP:             "&",
	PIPE:            "|",
	CARET:           "^",
	SHL:             "<<",
	SHR:             ">>",
	NULLISH:         "??",
	QUESTION:        "?",
	COLON:           ":",
	DOT:             ".",
	COMMA:           ",",
	SEMICOLON:       ";",
	PAREN_L:         "(",
	PAREN_R:         ")",
	BRACKET_L:       "[",
	BRACKET_R:       "]",
	BRACE_L:         "{",
	BRACE_R:         "}",
	ACCESSOR_LIST:   "[|",
	ACCESSOR_MAP:    "[?",
	ACCESSOR_GRID:   "[#",
	ACCESSOR_ARRAY:  "[@",
	ACCESSOR_STRUCT: "[$",
}

func (typ Type) String() string {
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// IsTrivia returns true for whitespace, line breaks and comments.
func (typ Type) IsTrivia() bool {
	switch typ {
	case WHITESPACE, LINE_BREAK, COMMENT_LINE, COMMENT_BLOCK:
		return true
	}
	return false
}

// IsComment returns true for line and block comments.
func (typ Type) IsComment() bool {
	return typ == COMMENT_LINE || typ == COMMENT_BLOCK
}

// IsKeyword returns true for reserved words, including word operators.
func (typ Type) IsKeyword() bool {
	return keywordStart < typ && typ < keywordEnd
}

// IsAccessor returns true for the bracket types which open an index
// accessor.
func (typ Type) IsAccessor() bool {
	switch typ {
	case BRACKET_L, ACCESSOR_LIST, ACCESSOR_MAP, ACCESSOR_GRID, ACCESSOR_ARRAY, ACCESSOR_STRUCT:
		return true
	}
	return false
}

// IsAssignment returns true for assignment operators.
func (typ Type) IsAssignment() bool {
	return ASSIGN <= typ && typ <= NULLISH_ASSIGN
}

var keywords = func() map[string]Type {
	m := make(map[string]Type, keywordEnd-keywordStart)
	for typ := keywordStart + 1; typ < keywordEnd; typ++ {
		m[typeStrings[typ]] = typ
	}
	return m
}()

// LookupIdent returns the keyword type for word, or IDENT.
func LookupIdent(word string) Type {
	if typ, ok := keywords[word]; ok {
		return typ
	}
	return IDENT
}

// Span is a half-open byte range [Start, End) in a source text.
type Span struct {
	Start int
	End   int
}

// Contains returns true if other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

type Location struct {
	File string // a name representing the source stream
	Path string // a physical location which may differ from File
	Pos  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	switch {
	case loc.Pos < 0:
		return loc.File
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}

type LocationError struct {
	Err    error
	Source *Location
}

func (err *LocationError) Error() string {
	return fmt.Sprintf("%s: %s", err.Source, err.Err)
}

func (err *LocationError) Unwrap() error {
	return err.Err
}
