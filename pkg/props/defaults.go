package props

import (
	"github.com/gnana997/reactlint/pkg/components"
	"github.com/gnana997/reactlint/pkg/syntax"
)

type defaults struct {
	reg *components.Registry
	u   *components.Utils
}

// Defaults collects default prop values from static defaultProps,
// `Foo.defaultProps = {...}`, a factory's getDefaultProps and destructuring
// defaults in a stateless component's first parameter.
func Defaults(reg *components.Registry, u *components.Utils) syntax.Visitor {
	a := &defaults{reg: reg, u: u}
	v := syntax.Visitor{
		"field_definition":        a.classField,
		"public_field_definition": a.classField,
		syntax.KindAssignment:     a.assignment,
		syntax.KindPair:           a.factoryPair,
	}
	for _, kind := range syntax.FunctionKinds {
		v[kind] = a.function
	}
	return v
}

func (a *defaults) classField(n *syntax.Node) {
	if m, ok := staticMember(n); ok && m.name == "defaultProps" {
		a.record(m.class, m.value)
	}
}

func (a *defaults) assignment(n *syntax.Node) {
	left, right, ok := staticAssignment(n, "defaultProps")
	if !ok {
		return
	}
	if rec := a.u.GetRelatedComponent(left); rec != nil {
		a.record(rec.Node, right)
	}
}

// factoryPair handles `getDefaultProps: function() { return {...}; }`.
func (a *defaults) factoryPair(n *syntax.Node) {
	value, ok := factoryProperty(a.u, n, "getDefaultProps")
	if !ok {
		return
	}
	value = syntax.Unparen(value)
	if !syntax.IsFunction(value) {
		a.unresolved(n)
		return
	}
	a.record(n, firstReturnValue(value))
}

func (a *defaults) function(fn *syntax.Node) {
	if fn.Is(syntax.KindMethodDefinition) {
		if m, ok := staticMember(fn); ok && m.name == "defaultProps" {
			a.record(m.class, m.value)
			return
		}
		if _, ok := factoryProperty(a.u, fn, "getDefaultProps"); ok {
			a.record(fn, firstReturnValue(fn))
		}
		return
	}

	if statelessWithRecord(a.reg, a.u, fn) == nil {
		return
	}
	pattern := paramPattern(firstParam(fn))
	if pattern == nil {
		return
	}
	entries, _ := patternEntries(pattern)
	values := make(map[string]*syntax.Node)
	for _, e := range entries {
		if e.value != nil {
			values[e.name] = e.value
		}
	}
	if len(values) > 0 {
		a.merge(fn, values)
	}
}

func (a *defaults) record(target, value *syntax.Node) {
	value = syntax.Unparen(value)
	if !value.Is(syntax.KindObject) {
		a.unresolved(target)
		return
	}
	entries, resolved := objectEntries(value)
	values := make(map[string]*syntax.Node, len(entries))
	for _, e := range entries {
		values[e.name] = e.value
	}
	a.merge(target, values)
	if !resolved {
		a.unresolved(target)
	}
}

func (a *defaults) merge(target *syntax.Node, values map[string]*syntax.Node) {
	rec := owner(a.reg, target)
	if rec == nil {
		return
	}
	a.reg.Set(target, components.Patch{DefaultProps: mergeInto(rec.DefaultProps, values)})
}

func (a *defaults) unresolved(target *syntax.Node) {
	a.reg.Set(target, components.Patch{DefaultPropsUnresolved: components.Bool(true)})
}
