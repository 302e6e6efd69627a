// Copyright © 2024 The gmlfmt authors

package ast

import "github.com/luthersystems/gmlfmt/parser/token"

// BinaryLevels lists the binary operators from the loosest binding level to
// the tightest.  The table is chosen for readable layout rather than to
// mirror any one GML runtime, whose precedence rules disagree with each
// other.  The parser preserves source nesting within it and the printer only
// flattens runs of operators sharing a level.
//
// ASSIGN appears as the comparison operator '=' which GML accepts inside
// expressions.
var BinaryLevels = [][]token.Type{
	{token.NULLISH},
	{token.LOGICAL_OR, token.OR_WORD},
	{token.LOGICAL_AND, token.AND_WORD},
	{token.LOGICAL_XOR, token.XOR_WORD},
	{token.EQ, token.NEQ, token.NEQ_ALT, token.ASSIGN},
	{token.LT, token.LE, token.GT, token.GE},
	{token.PIPE},
	{token.CARET},
	{token.AMP},
	{token.SHL, token.SHR},
	{token.PLUS, token.MINUS},
	{token.STAR, token.SLASH, token.PERCENT, token.MOD_WORD, token.DIV_WORD},
}

var precedence = func() map[token.Type]int {
	m := make(map[token.Type]int)
	for level, ops := range BinaryLevels {
		for _, op := range ops {
			m[op] = level + 1
		}
	}
	return m
}()

// Precedence returns the binding level of a binary operator, larger numbers
// binding tighter.  Precedence returns 0 for other token types.
func Precedence(op token.Type) int {
	return precedence[op]
}

// IsWordOperator returns true for operators spelled as keywords, which
// need surrounding spaces.
func IsWordOperator(op token.Type) bool {
	switch op {
	case token.AND_WORD, token.OR_WORD, token.XOR_WORD, token.NOT_WORD, token.MOD_WORD, token.DIV_WORD:
		return true
	}
	return false
}
