// Package props collects the declared, used and default props of detected
// components.
//
// Each collector is a components.Analysis. They run in the same walk as
// component detection and write their findings to the component records
// through Registry.Set, so rules only ever read the registry.
package props

import (
	"maps"

	"github.com/gnana997/reactlint/pkg/components"
	"github.com/gnana997/reactlint/pkg/syntax"
)

// Analyses returns every prop collector in the order rules expect them.
func Analyses() []components.Analysis {
	return []components.Analysis{Declared, Used, Defaults}
}

// owner returns the nearest visible record at or above n.
func owner(reg *components.Registry, n *syntax.Node) *components.Record {
	for cur := n; cur != nil; cur = cur.Parent() {
		if rec := reg.Get(cur); rec != nil {
			return rec
		}
	}
	return nil
}

// confirmedOwner returns the nearest confirmed record at or above n.
func confirmedOwner(reg *components.Registry, n *syntax.Node) *components.Record {
	for cur := n; cur != nil; cur = cur.Parent() {
		if rec := reg.Get(cur); rec != nil && rec.Confidence >= components.Confirmed {
			return rec
		}
	}
	return nil
}

// isThisProps matches `this.props`.
func isThisProps(n *syntax.Node) bool {
	n = syntax.Unparen(n)
	if !n.Is(syntax.KindMemberExpression) {
		return false
	}
	prop := n.ChildByField("property")
	return n.ChildByField("object").Is(syntax.KindThis) && prop != nil && prop.Text() == "props"
}

// propsParamOwner returns the stateless component whose first parameter id
// refers to, or nil.
func propsParamOwner(u *components.Utils, id *syntax.Node) *syntax.Node {
	id = syntax.Unparen(id)
	if !id.Is(syntax.KindIdentifier) {
		return nil
	}
	v := u.Scopes().Resolve(id, id.Text())
	if v == nil {
		return nil
	}
	for _, def := range v.Defs {
		if def.Kind != syntax.DefParameter {
			continue
		}
		fn := def.Node.Parent()
		if fn.Is("formal_parameters") {
			fn = fn.Parent()
		}
		params := syntax.FunctionParams(fn)
		if len(params) == 0 || !syntax.Same(params[0], def.Node) {
			continue
		}
		if paramName(def.Node) != id.Text() {
			continue
		}
		return u.GetStatelessComponent(fn)
	}
	return nil
}

// isPropsSource reports whether expr evaluates to a component's props:
// `this.props` inside a class or factory component, or the first parameter
// of a stateless one.
func isPropsSource(u *components.Utils, expr *syntax.Node) bool {
	if isThisProps(expr) {
		parent := u.GetParentComponent(expr)
		return parent != nil && !syntax.IsFunction(parent) && !parent.Is(syntax.KindCallExpression)
	}
	return propsParamOwner(u, expr) != nil
}

// paramName returns the identifier a simple parameter binds, or "".
func paramName(p *syntax.Node) string {
	if p.Is("required_parameter", "optional_parameter") {
		p = p.ChildByField("pattern")
	}
	if p.Is(syntax.KindIdentifier) {
		return p.Text()
	}
	return ""
}

// paramPattern returns the destructuring pattern of a parameter, unwrapping
// TypeScript parameter nodes and `= {}` defaults.
func paramPattern(p *syntax.Node) *syntax.Node {
	if p.Is("required_parameter", "optional_parameter") {
		p = p.ChildByField("pattern")
	}
	if p.Is("assignment_pattern") {
		p = p.ChildByField("left")
	}
	if p.Is("object_pattern") {
		return p
	}
	return nil
}

// statelessWithRecord returns fn's component node when fn is a stateless
// component with a visible record.
func statelessWithRecord(reg *components.Registry, u *components.Utils, fn *syntax.Node) *syntax.Node {
	c := u.GetStatelessComponent(fn)
	if c == nil || reg.Get(c) == nil {
		return nil
	}
	return c
}

// firstParam returns fn's first formal parameter, or nil.
func firstParam(fn *syntax.Node) *syntax.Node {
	params := syntax.FunctionParams(fn)
	if len(params) == 0 {
		return nil
	}
	return params[0]
}

// classMember describes a static class member such as
// `static propTypes = {...}` or `static get defaultProps() { return {...} }`.
type classMember struct {
	name  string
	value *syntax.Node
	class *syntax.Node
}

// staticMember reads a static field or getter declared in a class body.
func staticMember(n *syntax.Node) (classMember, bool) {
	body := n.Parent()
	if !body.Is("class_body") || !n.HasToken("static") {
		return classMember{}, false
	}
	m := classMember{class: body.Parent()}

	switch n.Kind() {
	case "field_definition":
		m.name, _ = syntax.PropertyKeyName(n.ChildByField("property"))
		m.value = n.ChildByField("value")
	case "public_field_definition":
		m.name, _ = syntax.PropertyKeyName(n.ChildByField("name"))
		m.value = n.ChildByField("value")
	case syntax.KindMethodDefinition:
		if !n.HasToken("get") {
			return classMember{}, false
		}
		m.name, _ = syntax.PropertyKeyName(n.ChildByField("name"))
		m.value = firstReturnValue(n)
	default:
		return classMember{}, false
	}
	return m, m.name != "" && m.value != nil
}

// firstReturnValue returns the argument of the first return statement in
// fn's block body.
func firstReturnValue(fn *syntax.Node) *syntax.Node {
	body := syntax.FunctionBody(fn)
	if !body.Is("statement_block") {
		return body
	}
	for _, stmt := range body.NamedChildren() {
		if stmt.Is(syntax.KindReturnStatement) {
			return stmt.FirstNamedChild()
		}
	}
	return nil
}

// staticAssignment matches `X.name = value` and returns the member
// expression on the left.
func staticAssignment(n *syntax.Node, name string) (*syntax.Node, *syntax.Node, bool) {
	if !n.Is(syntax.KindAssignment) {
		return nil, nil, false
	}
	left := n.ChildByField("left")
	if !left.Is(syntax.KindMemberExpression) {
		return nil, nil, false
	}
	prop := left.ChildByField("property")
	if prop == nil || prop.Text() != name {
		return nil, nil, false
	}
	return left, n.ChildByField("right"), true
}

// factoryProperty matches `name: value` or `name() {...}` directly inside a
// factory component object and returns the value (or method).
func factoryProperty(u *components.Utils, n *syntax.Node, name string) (*syntax.Node, bool) {
	obj := n.Parent()
	if !obj.Is(syntax.KindObject) || !u.IsES5Component(obj) {
		return nil, false
	}
	switch n.Kind() {
	case syntax.KindPair:
		if key, ok := syntax.PropertyKeyName(n.ChildByField("key")); ok && key == name {
			return n.ChildByField("value"), true
		}
	case syntax.KindMethodDefinition:
		if key, ok := syntax.PropertyKeyName(n.ChildByField("name")); ok && key == name {
			return n, true
		}
	}
	return nil, false
}

// objectEntry is one static entry of an object literal.
type objectEntry struct {
	name  string
	value *syntax.Node
	node  *syntax.Node
}

// objectEntries lists the statically named entries of obj. The second result
// is false when a spread or computed key makes the object unresolvable.
func objectEntries(obj *syntax.Node) ([]objectEntry, bool) {
	var out []objectEntry
	resolved := true
	for _, c := range obj.NamedChildren() {
		switch c.Kind() {
		case syntax.KindPair:
			name, ok := syntax.PropertyKeyName(c.ChildByField("key"))
			if !ok {
				resolved = false
				continue
			}
			out = append(out, objectEntry{name: name, value: c.ChildByField("value"), node: c})
		case "shorthand_property_identifier":
			out = append(out, objectEntry{name: c.Text(), value: c, node: c})
		case syntax.KindMethodDefinition:
			if name, ok := syntax.PropertyKeyName(c.ChildByField("name")); ok {
				out = append(out, objectEntry{name: name, value: c, node: c})
			}
		case "spread_element":
			resolved = false
		}
	}
	return out, resolved
}

// patternEntry is one property of an object destructuring pattern.
type patternEntry struct {
	name string
	node *syntax.Node
	// value is the default expression, if any.
	value *syntax.Node
}

// patternEntries lists the properties of an object pattern. rest reports a
// `...rest` element.
func patternEntries(pattern *syntax.Node) (entries []patternEntry, rest bool) {
	for _, c := range pattern.NamedChildren() {
		switch c.Kind() {
		case "shorthand_property_identifier_pattern":
			entries = append(entries, patternEntry{name: c.Text(), node: c})
		case "object_assignment_pattern":
			left := c.ChildByField("left")
			if left.Is("shorthand_property_identifier_pattern", syntax.KindIdentifier) {
				entries = append(entries, patternEntry{name: left.Text(), node: left, value: c.ChildByField("right")})
			}
		case "pair_pattern":
			name, ok := syntax.PropertyKeyName(c.ChildByField("key"))
			if !ok {
				continue
			}
			e := patternEntry{name: name, node: c}
			if v := c.ChildByField("value"); v.Is("assignment_pattern") {
				e.value = v.ChildByField("right")
			}
			entries = append(entries, e)
		case "rest_pattern":
			rest = true
		}
	}
	return entries, rest
}

// mergeInto returns a copy of base with extra written over it.
func mergeInto[V any](base, extra map[string]V) map[string]V {
	out := make(map[string]V, len(base)+len(extra))
	maps.Copy(out, base)
	maps.Copy(out, extra)
	return out
}
