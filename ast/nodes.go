// Copyright © 2024 The gmlfmt authors

package ast

import "github.com/luthersystems/gmlfmt/parser/token"

// Document is the root of a parsed file.
type Document struct {
	Base
	Statements []Statement
}

// Block is a brace (or begin/end) delimited statement list.
type Block struct {
	Base
	Statements []Statement
}

// EmptyStatement is a lone semicolon used as a statement body.
type EmptyStatement struct {
	Base
}

type ExpressionStatement struct {
	Base
	Expr      Expr
	Semicolon bool
}

// VariableDeclaration is a var, static or globalvar declaration.
type VariableDeclaration struct {
	Base
	Keyword     token.Type
	Declarators []*VariableDeclarator
}

type VariableDeclarator struct {
	Base
	Name *Identifier
	Init Expr
}

type IfStatement struct {
	Base
	Test       Expr
	Consequent Statement
	Alternate  Statement
}

type WhileStatement struct {
	Base
	Test Expr
	Body Statement
}

type DoUntilStatement struct {
	Base
	Body Statement
	Test Expr
}

type RepeatStatement struct {
	Base
	Count Expr
	Body  Statement
}

// ForStatement clauses are optional.  Init is either a *VariableDeclaration
// or an Expr; Update is an Expr.
type ForStatement struct {
	Base
	Init   Node
	Test   Expr
	Update Expr
	Body   Statement
}

type WithStatement struct {
	Base
	Object Expr
	Body   Statement
}

type SwitchStatement struct {
	Base
	Discriminant Expr
	Cases        []*SwitchCase
}

// SwitchCase is a case clause, or the default clause when Test is nil.
type SwitchCase struct {
	Base
	Test Expr
	Body []Statement
}

type FunctionDeclaration struct {
	Base
	Name        *Identifier
	Params      []*Parameter
	Inherit     *ConstructorClause
	Constructor bool
	Body        *Block
}

type ReturnStatement struct {
	Base
	Argument Expr
}

type BreakStatement struct {
	Base
}

type ContinueStatement struct {
	Base
}

type ExitStatement struct {
	Base
}

type ThrowStatement struct {
	Base
	Argument Expr
}

type DeleteStatement struct {
	Base
	Argument Expr
}

// TryStatement has at least one of Handler and Finalizer.
type TryStatement struct {
	Base
	Block     *Block
	Param     *Identifier
	Handler   *Block
	Finalizer *Block
}

type EnumDeclaration struct {
	Base
	Name    *Identifier
	Members []*EnumMember
}

type EnumMember struct {
	Base
	Name *Identifier
	Init Expr
}

// MacroDeclaration is a #macro directive.  Body is the raw replacement text.
type MacroDeclaration struct {
	Base
	Config string
	Name   string
	Body   string
}

type RegionStatement struct {
	Base
	Text string
}

type EndRegionStatement struct {
	Base
	Text string
}

// DefineStatement is a legacy #define script separator.
type DefineStatement struct {
	Base
	Name string
}

type Identifier struct {
	Base
	Name string
}

// Literal is a number, string, boolean or undefined literal.  Value is the
// literal's source text.
type Literal struct {
	Base
	Type  token.Type
	Value string
}

// TemplateLiteral holds the raw text pieces of a template string, delimiters
// included, interleaved with the interpolated expressions.  len(Strings) is
// always len(Exprs)+1.
type TemplateLiteral struct {
	Base
	Strings []string
	Exprs   []Expr
}

type AssignmentExpression struct {
	Base
	Operator token.Type
	Left     Expr
	Right    Expr
}

type BinaryExpression struct {
	Base
	Operator token.Type
	Left     Expr
	Right    Expr
}

type UnaryExpression struct {
	Base
	Operator token.Type
	Argument Expr
}

type UpdateExpression struct {
	Base
	Operator token.Type
	Prefix   bool
	Argument Expr
}

type ConditionalExpression struct {
	Base
	Test       Expr
	Consequent Expr
	Alternate  Expr
}

type ParenthesizedExpression struct {
	Base
	Expr Expr
}

type CallExpression struct {
	Base
	Callee Expr
	Args   []Expr
}

type NewExpression struct {
	Base
	Callee Expr
	Args   []Expr
}

type MemberDotExpression struct {
	Base
	Object   Expr
	Property *Identifier
}

// MemberIndexExpression is an accessor such as a[i], l[| i] or g[# x, y].
type MemberIndexExpression struct {
	Base
	Object   Expr
	Accessor token.Type
	Indices  []Expr
}

type ArrayLiteral struct {
	Base
	Elements []Expr
}

type StructLiteral struct {
	Base
	Properties []*StructProperty
}

// StructProperty has a nil Value when written in shorthand form.
type StructProperty struct {
	Base
	Key   Expr
	Value Expr
}

type FunctionExpression struct {
	Base
	Name        *Identifier
	Params      []*Parameter
	Inherit     *ConstructorClause
	Constructor bool
	Body        *Block
}

type Parameter struct {
	Base
	Name    *Identifier
	Default Expr
}

// ConstructorClause is the ": Super(args)" inheritance clause of a
// constructor function.
type ConstructorClause struct {
	Base
	Super *Identifier
	Args  []Expr
}

// UndefinedArgument is an elided call argument, as in f(a,,b).
type UndefinedArgument struct {
	Base
}

func (*Block) stmtNode()               {}
func (*EmptyStatement) stmtNode()      {}
func (*ExpressionStatement) stmtNode() {}
func (*VariableDeclaration) stmtNode() {}
func (*IfStatement) stmtNode()         {}
func (*WhileStatement) stmtNode()      {}
func (*DoUntilStatement) stmtNode()    {}
func (*RepeatStatement) stmtNode()     {}
func (*ForStatement) stmtNode()        {}
func (*WithStatement) stmtNode()       {}
func (*SwitchStatement) stmtNode()     {}
func (*FunctionDeclaration) stmtNode() {}
func (*ReturnStatement) stmtNode()     {}
func (*BreakStatement) stmtNode()      {}
func (*ContinueStatement) stmtNode()   {}
func (*ExitStatement) stmtNode()       {}
func (*ThrowStatement) stmtNode()      {}
func (*DeleteStatement) stmtNode()     {}
func (*TryStatement) stmtNode()        {}
func (*EnumDeclaration) stmtNode()     {}
func (*MacroDeclaration) stmtNode()    {}
func (*RegionStatement) stmtNode()     {}
func (*EndRegionStatement) stmtNode()  {}
func (*DefineStatement) stmtNode()     {}

func (*Identifier) exprNode()              {}
func (*Literal) exprNode()                 {}
func (*TemplateLiteral) exprNode()         {}
func (*AssignmentExpression) exprNode()    {}
func (*BinaryExpression) exprNode()        {}
func (*UnaryExpression) exprNode()         {}
func (*UpdateExpression) exprNode()        {}
func (*ConditionalExpression) exprNode()   {}
func (*ParenthesizedExpression) exprNode() {}
func (*CallExpression) exprNode()          {}
func (*NewExpression) exprNode()           {}
func (*MemberDotExpression) exprNode()     {}
func (*MemberIndexExpression) exprNode()   {}
func (*ArrayLiteral) exprNode()            {}
func (*StructLiteral) exprNode()           {}
func (*FunctionExpression) exprNode()      {}
func (*UndefinedArgument) exprNode()       {}
