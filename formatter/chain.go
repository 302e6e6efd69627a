// Copyright © 2024 The gmlfmt authors

package formatter

import (
	"unicode"

	"github.com/luthersystems/gmlfmt/ast"
	"github.com/luthersystems/gmlfmt/doc"
)

// link is one step of a member chain: the root expression, a member
// access or a call's argument list.
type link struct {
	node    ast.Node
	printed doc.Doc
}

// printMemberChain prints a call whose callee is a member access, such as
// a.b().c(d).  The chain is split into groups, each a member access
// followed by its calls, and printed on one line or with a group per
// indented line.
func (p *printer) printMemberChain(n *ast.CallExpression) doc.Doc {
	_, isStatement := p.parent().(*ast.ExpressionStatement)

	links := []link{{node: n, printed: p.printArguments(n, n.Args)}}
	p.collectLinks(n.Callee, &links)
	for i, j := 0, len(links)-1; i < j; i, j = i+1, j-1 {
		links[i], links[j] = links[j], links[i]
	}

	// The first group holds the root and the calls and literal index
	// accesses applied directly to it.  A root which is not a call also
	// takes the leading accesses of a dotted path, as in a.b.c().
	first := []link{links[0]}
	i := 1
	for ; i < len(links); i++ {
		if !isCall(links[i].node) && !isLiteralIndex(links[i].node) {
			break
		}
		first = append(first, links[i])
	}
	if !isCall(links[0].node) {
		for ; i+1 < len(links); i++ {
			if !isMember(links[i].node) || !isMember(links[i+1].node) {
				break
			}
			first = append(first, links[i])
		}
	}

	groups := [][]link{first}
	var current []link
	seenCall := false
	for ; i < len(links); i++ {
		l := links[i]
		if seenCall && isMember(l.node) {
			if idx, ok := l.node.(*ast.MemberIndexExpression); ok && !literalIndices(idx) {
				current = append(current, l)
				continue
			}
			groups = append(groups, current)
			current = nil
			seenCall = false
		}
		if isCall(l.node) {
			seenCall = true
		}
		current = append(current, l)
		if ast.HasComments(l.node, ast.Trailing) {
			groups = append(groups, current)
			current = nil
			seenCall = false
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	merge := len(groups) >= 2 && len(groups[1]) > 0 && p.shouldMerge(groups, isStatement)

	printed := make([]doc.Doc, len(groups))
	for i, g := range groups {
		printed[i] = printLinks(g)
	}
	oneLine := doc.Concat(printed)

	cutoff := 2
	if merge {
		cutoff = 3
	}
	if len(groups) <= cutoff && !chainHasComment(links, groups, cutoff) {
		return doc.Group(oneLine)
	}

	expanded := doc.Concat{printed[0]}
	rest := printed[1:]
	if merge {
		expanded = append(expanded, printed[1])
		rest = printed[2:]
	}
	if len(rest) > 0 {
		expanded = append(expanded, doc.Indent(doc.Group(doc.HardLine, doc.Join(doc.HardLine, rest))))
	}

	calls := 0
	complexArgs := false
	for _, l := range links {
		call, ok := l.node.(*ast.CallExpression)
		if !ok {
			continue
		}
		calls++
		for _, arg := range call.Args {
			if !isSimpleArgument(arg, 0) {
				complexArgs = true
			}
		}
	}
	headBreaks := false
	for _, d := range printed[:len(printed)-1] {
		if doc.WillBreak(d) {
			headBreaks = true
		}
	}
	if chainHasComment(links, groups, cutoff) || calls > 2 && complexArgs || headBreaks {
		return doc.Group(expanded...)
	}

	var prefix doc.Doc = doc.Empty
	if doc.WillBreak(oneLine) {
		prefix = doc.BreakParent
	}
	return doc.Concat{prefix, doc.ConditionalGroup(oneLine, expanded)}
}

// collectLinks appends the links of the chain ending in e, outermost
// first.
func (p *printer) collectLinks(e ast.Expr, links *[]link) {
	if !ignored(e) {
		switch e := e.(type) {
		case *ast.CallExpression:
			if isMember(e.Callee) || isCall(e.Callee) {
				p.push(e)
				defer p.pop()
				*links = append(*links, link{e, p.withComments(e, p.printArguments(e, e.Args))})
				p.collectLinks(e.Callee, links)
				return
			}
		case *ast.MemberDotExpression:
			p.push(e)
			defer p.pop()
			*links = append(*links, link{e, p.withComments(e, doc.Concat{doc.Text("."), p.print(e.Property)})})
			p.collectLinks(e.Object, links)
			return
		case *ast.MemberIndexExpression:
			p.push(e)
			defer p.pop()
			*links = append(*links, link{e, p.withComments(e, p.printAccessor(e))})
			p.collectLinks(e.Object, links)
			return
		}
	}
	*links = append(*links, link{e, p.print(e)})
}

func printLinks(links []link) doc.Doc {
	parts := make(doc.Concat, len(links))
	for i, l := range links {
		parts[i] = l.printed
	}
	return parts
}

// shortRootLength is the longest root name which keeps the first call of a
// statement chain on its line, as in this.items.push(x).
const shortRootLength = 4

// shouldMerge returns true if the first call group of a chain should stay
// on the line of the root, as in self.items.push(x) or Array.from(x).
func (p *printer) shouldMerge(groups [][]link, isStatement bool) bool {
	computed := false
	if idx, ok := groups[1][0].node.(*ast.MemberIndexExpression); ok && literalIndices(idx) {
		computed = true
	}
	if len(groups[0]) == 1 {
		root, ok := groups[0][0].node.(*ast.Identifier)
		if !ok {
			return false
		}
		return isFactory(root.Name) || isSelfReference(root.Name) ||
			isStatement && len(root.Name) <= shortRootLength || computed
	}
	last, ok := groups[0][len(groups[0])-1].node.(*ast.MemberDotExpression)
	return ok && (isFactory(last.Property.Name) || computed)
}

// chainHasComment returns true if a comment inside the chain forces it to
// break.
func chainHasComment(links []link, groups [][]link, cutoff int) bool {
	for i, l := range links {
		if i > 0 && i < len(links)-1 && ast.HasComments(l.node, ast.Leading) {
			return true
		}
		if i < len(links)-1 && ast.HasComments(l.node, ast.Trailing) {
			return true
		}
	}
	return len(groups) > cutoff && len(groups[cutoff]) > 0 && ast.HasComments(groups[cutoff][0].node, ast.Leading)
}

// isFactory returns true for capitalized names and names made of
// underscores, which usually denote a constructor or a namespace.
func isFactory(name string) bool {
	for i, c := range name {
		if i == 0 && unicode.IsUpper(c) {
			return true
		}
		if c != '_' && c != '$' {
			return false
		}
	}
	return name != ""
}

func isSelfReference(name string) bool {
	switch name {
	case "self", "other", "global":
		return true
	}
	return false
}

func isMember(e ast.Node) bool {
	switch e.(type) {
	case *ast.MemberDotExpression, *ast.MemberIndexExpression:
		return true
	}
	return false
}

func isCall(e ast.Node) bool {
	_, ok := e.(*ast.CallExpression)
	return ok
}

func isLiteralIndex(n ast.Node) bool {
	idx, ok := n.(*ast.MemberIndexExpression)
	return ok && literalIndices(idx)
}

func literalIndices(n *ast.MemberIndexExpression) bool {
	for _, e := range n.Indices {
		if _, ok := e.(*ast.Literal); !ok {
			return false
		}
	}
	return true
}

// isSimpleArgument returns true for arguments which do not make a chain
// of calls hard to read on one line.
func isSimpleArgument(e ast.Expr, depth int) bool {
	switch e := e.(type) {
	case *ast.Identifier, *ast.Literal, *ast.UndefinedArgument, *ast.FunctionExpression:
		return true
	case *ast.TemplateLiteral:
		for _, x := range e.Exprs {
			if !isSimpleArgument(x, depth) {
				return false
			}
		}
		return true
	case *ast.StructLiteral:
		for _, prop := range e.Properties {
			if prop.Value != nil && !isSimpleArgument(prop.Value, depth) {
				return false
			}
		}
		return true
	case *ast.ArrayLiteral:
		for _, x := range e.Elements {
			if !isSimpleArgument(x, depth) {
				return false
			}
		}
		return true
	case *ast.UnaryExpression:
		return isSimpleArgument(e.Argument, depth)
	case *ast.UpdateExpression:
		return isSimpleArgument(e.Argument, depth)
	case *ast.ParenthesizedExpression:
		return isSimpleArgument(e.Expr, depth)
	case *ast.MemberDotExpression:
		return isSimpleArgument(e.Object, depth)
	case *ast.MemberIndexExpression:
		for _, x := range e.Indices {
			if !isSimpleArgument(x, depth) {
				return false
			}
		}
		return isSimpleArgument(e.Object, depth)
	case *ast.CallExpression:
		return isSimpleCall(e.Callee, e.Args, depth)
	case *ast.NewExpression:
		return isSimpleCall(e.Callee, e.Args, depth)
	}
	return false
}

func isSimpleCall(callee ast.Expr, args []ast.Expr, depth int) bool {
	if len(args) > depth || !isSimpleArgument(callee, depth) {
		return false
	}
	for _, arg := range args {
		if !isSimpleArgument(arg, depth+1) {
			return false
		}
	}
	return true
}
