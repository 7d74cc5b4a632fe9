package props

import (
	"github.com/gnana997/reactlint/pkg/components"
	"github.com/gnana997/reactlint/pkg/syntax"
)

type used struct {
	reg *components.Registry
	u   *components.Utils
}

// Used collects prop reads: `props.x` and `this.props.x` member chains,
// destructured first parameters and `const {...} = props` declarators. It
// also notes when props escape wholesale, through a spread or as a call
// argument, and records `this.setState` calls of class components.
func Used(reg *components.Registry, u *components.Utils) syntax.Visitor {
	a := &used{reg: reg, u: u}
	v := syntax.Visitor{
		syntax.KindMemberExpression:   a.member,
		syntax.KindVariableDeclarator: a.declarator,
		"spread_element":              a.escape,
		"arguments":                   a.arguments,
		syntax.KindCallExpression:     a.setState,
	}
	for _, kind := range syntax.FunctionKinds {
		v[kind] = a.function
	}
	return v
}

func (a *used) member(n *syntax.Node) {
	if !isPropsSource(a.u, n.ChildByField("object")) {
		return
	}
	prop := n.ChildByField("property")
	if !prop.Is("property_identifier", "private_property_identifier") {
		return
	}
	if p := syntax.ParentSkipParens(n); p.Is(syntax.KindAssignment) && n.Field() == "left" {
		return
	}

	names := []string{prop.Text()}
	for cur := n; ; {
		parent := cur.Parent()
		if !parent.Is(syntax.KindMemberExpression) || cur.Field() != "object" {
			break
		}
		next := parent.ChildByField("property")
		if !next.Is("property_identifier") {
			break
		}
		names = append(names, next.Text())
		cur = parent
	}
	up := components.UsedProp{Name: names[0], Node: n}
	if len(names) > 1 {
		up.AllNames = names
	}
	a.reg.Set(n, components.Patch{UsedPropTypes: []components.UsedProp{up}})
}

// declarator handles `const { a, b } = props`. The reads are stored on a
// tentative record for the declarator and reach the component when the
// registry is listed.
func (a *used) declarator(n *syntax.Node) {
	pattern := n.ChildByField("name")
	if !pattern.Is("object_pattern") || !isPropsSource(a.u, n.ChildByField("value")) {
		return
	}
	entries, rest := patternEntries(pattern)
	if rest {
		a.ignoreUnused(n)
	}
	if len(entries) == 0 {
		return
	}
	a.reg.Add(n, components.Tentative)
	a.reg.Set(n, components.Patch{UsedPropTypes: usedFromPattern(entries)})
}

func (a *used) function(fn *syntax.Node) {
	if statelessWithRecord(a.reg, a.u, fn) == nil {
		return
	}
	pattern := paramPattern(firstParam(fn))
	if pattern == nil {
		return
	}
	entries, rest := patternEntries(pattern)
	if rest {
		a.ignoreUnused(fn)
	}
	if len(entries) > 0 {
		a.reg.Set(fn, components.Patch{UsedPropTypes: usedFromPattern(entries)})
	}
}

// escape handles `{...props}` in objects and JSX attributes.
func (a *used) escape(n *syntax.Node) {
	if isPropsSource(a.u, n.FirstNamedChild()) {
		a.ignoreUnused(n)
	}
}

// arguments handles `fn(props)`.
func (a *used) arguments(n *syntax.Node) {
	for _, arg := range n.NamedChildren() {
		if !arg.Is("spread_element") && isPropsSource(a.u, arg) {
			a.ignoreUnused(n)
			return
		}
	}
}

func (a *used) setState(call *syntax.Node) {
	callee := call.ChildByField("function")
	if !callee.Is(syntax.KindMemberExpression) || !callee.ChildByField("object").Is(syntax.KindThis) ||
		callee.ChildByField("property").Text() != "setState" {
		return
	}
	class := a.u.GetParentES6Component(call)
	if class == nil {
		return
	}
	rec := a.reg.Get(class)
	if rec == nil {
		return
	}
	usages := append([]*syntax.Node{}, rec.SetStateUsages...)
	a.reg.Set(class, components.Patch{SetStateUsages: append(usages, call)})
}

func (a *used) ignoreUnused(n *syntax.Node) {
	if rec := confirmedOwner(a.reg, n); rec != nil {
		a.reg.Set(rec.Node, components.Patch{IgnoreUnusedPropTypesValidation: components.Bool(true)})
	}
}

func usedFromPattern(entries []patternEntry) []components.UsedProp {
	out := make([]components.UsedProp, 0, len(entries))
	for _, e := range entries {
		out = append(out, components.UsedProp{Name: e.name, Node: e.node})
	}
	return out
}
