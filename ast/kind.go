// Copyright © 2024 The gmlfmt authors

package ast

// Kind identifies the type of a node.
type Kind uint8

const (
	InvalidKind Kind = iota
	DocumentKind
	BlockKind
	EmptyStatementKind
	ExpressionStatementKind
	VariableDeclarationKind
	VariableDeclaratorKind
	IfStatementKind
	WhileStatementKind
	DoUntilStatementKind
	RepeatStatementKind
	ForStatementKind
	WithStatementKind
	SwitchStatementKind
	SwitchCaseKind
	FunctionDeclarationKind
	ReturnStatementKind
	BreakStatementKind
	ContinueStatementKind
	ExitStatementKind
	ThrowStatementKind
	DeleteStatementKind
	TryStatementKind
	EnumDeclarationKind
	EnumMemberKind
	MacroDeclarationKind
	RegionStatementKind
	EndRegionStatementKind
	DefineStatementKind
	IdentifierKind
	LiteralKind
	TemplateLiteralKind
	AssignmentExpressionKind
	BinaryExpressionKind
	UnaryExpressionKind
	UpdateExpressionKind
	ConditionalExpressionKind
	ParenthesizedExpressionKind
	CallExpressionKind
	NewExpressionKind
	MemberDotExpressionKind
	MemberIndexExpressionKind
	ArrayLiteralKind
	StructLiteralKind
	StructPropertyKind
	FunctionExpressionKind
	ParameterKind
	ConstructorClauseKind
	UndefinedArgumentKind
	numKinds
)

var kindStrings = [numKinds]string{
	InvalidKind:                 "Invalid",
	DocumentKind:                "Document",
	BlockKind:                   "Block",
	EmptyStatementKind:          "EmptyStatement",
	ExpressionStatementKind:     "ExpressionStatement",
	VariableDeclarationKind:     "VariableDeclaration",
	VariableDeclaratorKind:      "VariableDeclarator",
	IfStatementKind:             "IfStatement",
	WhileStatementKind:          "WhileStatement",
	DoUntilStatementKind:        "DoUntilStatement",
	RepeatStatementKind:         "RepeatStatement",
	ForStatementKind:            "ForStatement",
	WithStatementKind:           "WithStatement",
	SwitchStatementKind:         "SwitchStatement",
	SwitchCaseKind:              "SwitchCase",
	FunctionDeclarationKind:     "FunctionDeclaration",
	ReturnStatementKind:         "ReturnStatement",
	BreakStatementKind:          "BreakStatement",
	ContinueStatementKind:       "ContinueStatement",
	ExitStatementKind:           "ExitStatement",
	ThrowStatementKind:          "ThrowStatement",
	DeleteStatementKind:         "DeleteStatement",
	TryStatementKind:            "TryStatement",
	EnumDeclarationKind:         "EnumDeclaration",
	EnumMemberKind:              "EnumMember",
	MacroDeclarationKind:        "MacroDeclaration",
	RegionStatementKind:         "RegionStatement",
	EndRegionStatementKind:      "EndRegionStatement",
	DefineStatementKind:         "DefineStatement",
	IdentifierKind:              "Identifier",
	LiteralKind:                 "Literal",
	TemplateLiteralKind:         "TemplateLiteral",
	AssignmentExpressionKind:    "AssignmentExpression",
	BinaryExpressionKind:        "BinaryExpression",
	UnaryExpressionKind:         "UnaryExpression",
	UpdateExpressionKind:        "UpdateExpression",
	ConditionalExpressionKind:   "ConditionalExpression",
	ParenthesizedExpressionKind: "ParenthesizedExpression",
	CallExpressionKind:          "CallExpression",
	NewExpressionKind:           "NewExpression",
	MemberDotExpressionKind:     "MemberDotExpression",
	MemberIndexExpressionKind:   "MemberIndexExpression",
	ArrayLiteralKind:            "ArrayLiteral",
	StructLiteralKind:           "StructLiteral",
	StructPropertyKind:          "StructProperty",
	FunctionExpressionKind:      "FunctionExpression",
	ParameterKind:               "Parameter",
	ConstructorClauseKind:       "ConstructorClause",
	UndefinedArgumentKind:       "UndefinedArgument",
}

func (k Kind) String() string {
	if k >= numKinds {
		return kindStrings[InvalidKind]
	}
	return kindStrings[k]
}

func (*Document) Kind() Kind { return DocumentKind }
func (*Block) Kind() Kind { return BlockKind }
func (*EmptyStatement) Kind() Kind { return EmptyStatementKind }
func (*ExpressionStatement) Kind() Kind { return ExpressionStatementKind }
func (*VariableDeclaration) Kind() Kind { return VariableDeclarationKind }
func (*VariableDeclarator) Kind() Kind { return VariableDeclaratorKind }
func (*IfStatement) Kind() Kind { return IfStatementKind }
func (*WhileStatement) Kind() Kind { return WhileStatementKind }
func (*DoUntilStatement) Kind() Kind { return DoUntilStatementKind }
func (*RepeatStatement) Kind() Kind { return RepeatStatementKind }
func (*ForStatement) Kind() Kind { return ForStatementKind }
func (*WithStatement) Kind() Kind { return WithStatementKind }
func (*SwitchStatement) Kind() Kind { return SwitchStatementKind }
func (*SwitchCase) Kind() Kind { return SwitchCaseKind }
func (*FunctionDeclaration) Kind() Kind { return FunctionDeclarationKind }
func (*ReturnStatement) Kind() Kind { return ReturnStatementKind }
func (*BreakStatement) Kind() Kind { return BreakStatementKind }
func (*ContinueStatement) Kind() Kind { return ContinueStatementKind }
func (*ExitStatement) Kind() Kind { return ExitStatementKind }
func (*ThrowStatement) Kind() Kind { return ThrowStatementKind }
func (*DeleteStatement) Kind() Kind { return DeleteStatementKind }
func (*TryStatement) Kind() Kind { return TryStatementKind }
func (*EnumDeclaration) Kind() Kind { return EnumDeclarationKind }
func (*EnumMember) Kind() Kind { return EnumMemberKind }
func (*MacroDeclaration) Kind() Kind { return MacroDeclarationKind }
func (*RegionStatement) Kind() Kind { return RegionStatementKind }
func (*EndRegionStatement) Kind() Kind { return EndRegionStatementKind }
func (*DefineStatement) Kind() Kind { return DefineStatementKind }
func (*Identifier) Kind() Kind { return IdentifierKind }
func (*Literal) Kind() Kind { return LiteralKind }
func (*TemplateLiteral) Kind() Kind { return TemplateLiteralKind }
func (*AssignmentExpression) Kind() Kind { return AssignmentExpressionKind }
func (*BinaryExpression) Kind() Kind { return BinaryExpressionKind }
func (*UnaryExpression) Kind() Kind { return UnaryExpressionKind }
func (*UpdateExpression) Kind() Kind { return UpdateExpressionKind }
func (*ConditionalExpression) Kind() Kind { return ConditionalExpressionKind }
func (*ParenthesizedExpression) Kind() Kind { return ParenthesizedExpressionKind }
func (*CallExpression) Kind() Kind { return CallExpressionKind }
func (*NewExpression) Kind() Kind { return NewExpressionKind }
func (*MemberDotExpression) Kind() Kind { return MemberDotExpressionKind }
func (*MemberIndexExpression) Kind() Kind { return MemberIndexExpressionKind }
func (*ArrayLiteral) Kind() Kind { return ArrayLiteralKind }
func (*StructLiteral) Kind() Kind { return StructLiteralKind }
func (*StructProperty) Kind() Kind { return StructPropertyKind }
func (*FunctionExpression) Kind() Kind { return FunctionExpressionKind }
func (*Parameter) Kind() Kind { return ParameterKind }
func (*ConstructorClause) Kind() Kind { return ConstructorClauseKind }
func (*UndefinedArgument) Kind() Kind { return UndefinedArgumentKind }
