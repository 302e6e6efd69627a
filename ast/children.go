// Copyright © 2024 The gmlfmt authors

package ast

import "fmt"

// Children returns the direct children of n in source order.  Absent
// optional children are omitted.
func Children(n Node) []Node {
	var c children
	switch n := n.(type) {
	case *Document:
		c.stmts(n.Statements)
	case *Block:
		c.stmts(n.Statements)
	case *ExpressionStatement:
		c.expr(n.Expr)
	case *VariableDeclaration:
		for _, d := range n.Declarators {
			c.add(d)
		}
	case *VariableDeclarator:
		c.add(n.Name)
		c.expr(n.Init)
	case *IfStatement:
		c.expr(n.Test)
		c.stmt(n.Consequent)
		c.stmt(n.Alternate)
	case *WhileStatement:
		c.expr(n.Test)
		c.stmt(n.Body)
	case *DoUntilStatement:
		c.stmt(n.Body)
		c.expr(n.Test)
	case *RepeatStatement:
		c.expr(n.Count)
		c.stmt(n.Body)
	case *ForStatement:
		if n.Init != nil {
			c.add(n.Init)
		}
		c.expr(n.Test)
		c.expr(n.Update)
		c.stmt(n.Body)
	case *WithStatement:
		c.expr(n.Object)
		c.stmt(n.Body)
	case *SwitchStatement:
		c.expr(n.Discriminant)
		for _, sc := range n.Cases {
			c.add(sc)
		}
	case *SwitchCase:
		c.expr(n.Test)
		c.stmts(n.Body)
	case *FunctionDeclaration:
		c.function(n.Name, n.Params, n.Inherit, n.Body)
	case *FunctionExpression:
		c.function(n.Name, n.Params, n.Inherit, n.Body)
	case *Parameter:
		c.add(n.Name)
		c.expr(n.Default)
	case *ConstructorClause:
		c.add(n.Super)
		c.exprs(n.Args)
	case *ReturnStatement:
		c.expr(n.Argument)
	case *ThrowStatement:
		c.expr(n.Argument)
	case *DeleteStatement:
		c.expr(n.Argument)
	case *TryStatement:
		c.add(n.Block)
		if n.Param != nil {
			c.add(n.Param)
		}
		if n.Handler != nil {
			c.add(n.Handler)
		}
		if n.Finalizer != nil {
			c.add(n.Finalizer)
		}
	case *EnumDeclaration:
		c.add(n.Name)
		for _, m := range n.Members {
			c.add(m)
		}
	case *EnumMember:
		c.add(n.Name)
		c.expr(n.Init)
	case *TemplateLiteral:
		c.exprs(n.Exprs)
	case *AssignmentExpression:
		c.expr(n.Left)
		c.expr(n.Right)
	case *BinaryExpression:
		c.expr(n.Left)
		c.expr(n.Right)
	case *UnaryExpression:
		c.expr(n.Argument)
	case *UpdateExpression:
		c.expr(n.Argument)
	case *ConditionalExpression:
		c.expr(n.Test)
		c.expr(n.Consequent)
		c.expr(n.Alternate)
	case *ParenthesizedExpression:
		c.expr(n.Expr)
	case *CallExpression:
		c.expr(n.Callee)
		c.exprs(n.Args)
	case *NewExpression:
		c.expr(n.Callee)
		c.exprs(n.Args)
	case *MemberDotExpression:
		c.expr(n.Object)
		c.add(n.Property)
	case *MemberIndexExpression:
		c.expr(n.Object)
		c.exprs(n.Indices)
	case *ArrayLiteral:
		c.exprs(n.Elements)
	case *StructLiteral:
		for _, p := range n.Properties {
			c.add(p)
		}
	case *StructProperty:
		c.expr(n.Key)
		c.expr(n.Value)
	case *EmptyStatement, *BreakStatement, *ContinueStatement, *ExitStatement,
		*MacroDeclaration, *RegionStatement, *EndRegionStatement, *DefineStatement,
		*Identifier, *Literal, *UndefinedArgument:
	default:
		panic(fmt.Sprintf("ast: unknown node type %T", n))
	}
	return c.nodes
}

type children struct {
	nodes []Node
}

func (c *children) add(n Node) {
	c.nodes = append(c.nodes, n)
}

func (c *children) expr(e Expr) {
	if e != nil {
		c.nodes = append(c.nodes, e)
	}
}

func (c *children) exprs(es []Expr) {
	for _, e := range es {
		c.expr(e)
	}
}

func (c *children) stmt(s Statement) {
	if s != nil {
		c.nodes = append(c.nodes, s)
	}
}

func (c *children) stmts(ss []Statement) {
	for _, s := range ss {
		c.stmt(s)
	}
}

func (c *children) function(name *Identifier, params []*Parameter, inherit *ConstructorClause, body *Block) {
	if name != nil {
		c.add(name)
	}
	for _, p := range params {
		c.add(p)
	}
	if inherit != nil {
		c.add(inherit)
	}
	c.add(body)
}
