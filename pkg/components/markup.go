package components

import (
	"github.com/gnana997/reactlint/pkg/syntax"
)

type valueKind int

const (
	valueOther valueKind = iota
	valueNull
	valueMarkup
)

// MarkupOptions tune ReturnsMarkup.
type MarkupOptions struct {
	// AllowNull accepts functions that only ever return null and lets a
	// single passing branch satisfy a conditional.
	AllowNull bool
}

// ReturnsMarkup reports whether every reachable return of fn yields markup
// or null and at least one yields markup. With AllowNull, all-null bodies
// qualify too. A function with no return value never qualifies.
func (u *Utils) ReturnsMarkup(fn *syntax.Node, opts MarkupOptions) bool {
	values := returnValues(fn)
	if len(values) == 0 {
		return false
	}
	sawMarkup := false
	for _, v := range values {
		switch u.classifyValue(v, opts.AllowNull, 0) {
		case valueOther:
			return false
		case valueMarkup:
			sawMarkup = true
		}
	}
	return sawMarkup || opts.AllowNull
}

// ReturnsMarkupOrNull is ReturnsMarkup with AllowNull set.
func (u *Utils) ReturnsMarkupOrNull(fn *syntax.Node) bool {
	return u.ReturnsMarkup(fn, MarkupOptions{AllowNull: true})
}

// ReturnsOnlyNull reports whether fn returns at least once and every return
// yields null.
func (u *Utils) ReturnsOnlyNull(fn *syntax.Node) bool {
	values := returnValues(fn)
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if v != nil && syntax.Unparen(v).Kind() != syntax.KindNull {
			return false
		}
	}
	return true
}

// returnValues lists the value of every return reachable in fn's own body.
// A bare `return;` contributes a nil entry. Nested functions and classes are
// not entered.
func returnValues(fn *syntax.Node) []*syntax.Node {
	if !syntax.IsFunction(fn) {
		return nil
	}
	body := syntax.FunctionBody(fn)
	if body == nil {
		return nil
	}
	if body.Kind() != "statement_block" {
		return []*syntax.Node{body}
	}

	var values []*syntax.Node
	syntax.Inspect(body, func(n *syntax.Node) bool {
		if syntax.IsFunction(n) || syntax.IsClass(n) {
			return false
		}
		if n.Kind() == syntax.KindReturnStatement {
			values = append(values, n.FirstNamedChild())
			return false
		}
		return true
	})
	return values
}

// classifyValue judges one returned expression. A nil value is a bare return.
func (u *Utils) classifyValue(n *syntax.Node, relaxed bool, depth int) valueKind {
	if n == nil {
		return valueNull
	}
	n = syntax.Unparen(n)

	switch n.Kind() {
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return valueMarkup
	case syntax.KindNull:
		return valueNull
	case syntax.KindCallExpression:
		if u.isCreateElement(n) {
			return valueMarkup
		}
	case "ternary_expression":
		return combine(
			u.classifyValue(n.ChildByField("consequence"), relaxed, depth),
			u.classifyValue(n.ChildByField("alternative"), relaxed, depth),
			relaxed)
	case "binary_expression":
		op := n.ChildByField("operator")
		if op == nil {
			return valueOther
		}
		switch op.Kind() {
		case "&&":
			return u.classifyValue(n.ChildByField("right"), relaxed, depth)
		case "||", "??":
			return combine(
				u.classifyValue(n.ChildByField("left"), relaxed, depth),
				u.classifyValue(n.ChildByField("right"), relaxed, depth),
				relaxed)
		}
	case "sequence_expression":
		named := n.NamedChildren()
		if len(named) > 0 {
			return u.classifyValue(named[len(named)-1], relaxed, depth)
		}
	case syntax.KindIdentifier:
		if depth == 0 && u.identifierIsMarkup(n) {
			return valueMarkup
		}
	}
	return valueOther
}

// combine merges the verdicts of two alternative branches.
func combine(a, b valueKind, relaxed bool) valueKind {
	if relaxed {
		if a == valueMarkup || b == valueMarkup {
			return valueMarkup
		}
		if a == valueNull || b == valueNull {
			return valueNull
		}
		return valueOther
	}
	if a == valueOther || b == valueOther {
		return valueOther
	}
	if a == valueMarkup || b == valueMarkup {
		return valueMarkup
	}
	return valueNull
}

// identifierIsMarkup reports whether id names a variable initialised with
// markup, e.g. `const el = <div/>; return el;`.
func (u *Utils) identifierIsMarkup(id *syntax.Node) bool {
	v := u.ctx.Scopes.Resolve(id, id.Text())
	if v == nil {
		return false
	}
	for _, def := range v.Defs {
		if def.Kind != syntax.DefVariable || def.Node.Kind() != syntax.KindVariableDeclarator {
			continue
		}
		if init := def.Node.ChildByField("value"); init != nil && u.classifyValue(init, false, 1) == valueMarkup {
			return true
		}
	}
	return false
}

// isCreateElement matches `<pragma>.createElement(...)` and a bare
// `createElement(...)` destructured from the framework.
func (u *Utils) isCreateElement(call *syntax.Node) bool {
	callee := call.ChildByField("function")
	switch callee.Kind() {
	case syntax.KindMemberExpression:
		obj := callee.ChildByField("object")
		prop := callee.ChildByField("property")
		return obj.Is(syntax.KindIdentifier) && obj.Text() == u.settings.Pragma &&
			prop != nil && prop.Text() == "createElement"
	case syntax.KindIdentifier:
		return callee.Text() == "createElement" && u.isDestructuredFromPragmaImport(callee)
	}
	return false
}
