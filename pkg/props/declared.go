package props

import (
	"github.com/gnana997/reactlint/pkg/components"
	"github.com/gnana997/reactlint/pkg/syntax"
)

// maxTypeDepth bounds interface/alias resolution chains.
const maxTypeDepth = 4

type declared struct {
	reg *components.Registry
	u   *components.Utils
	// types indexes same-file interfaces and type aliases by name.
	types map[string]*syntax.Node
}

// Declared collects prop declarations: static propTypes on classes,
// `Foo.propTypes = {...}` assignments, propTypes in factory objects and
// TypeScript props types on class type arguments or a stateless component's
// first parameter.
func Declared(reg *components.Registry, u *components.Utils) syntax.Visitor {
	d := &declared{reg: reg, u: u, types: make(map[string]*syntax.Node)}
	v := syntax.Visitor{
		syntax.KindProgram:          d.indexTypes,
		"field_definition":          d.classField,
		"public_field_definition":   d.classField,
		syntax.KindAssignment:       d.assignment,
		syntax.KindPair:             d.factoryPair,
		syntax.KindClassDeclaration: d.classTypeArguments,
		syntax.KindClass:            d.classTypeArguments,
	}
	for _, kind := range syntax.FunctionKinds {
		v[kind] = d.function
	}
	return v
}

func (d *declared) indexTypes(program *syntax.Node) {
	syntax.Inspect(program, func(n *syntax.Node) bool {
		if n.Is("interface_declaration", "type_alias_declaration") {
			if name := n.ChildByField("name"); name != nil {
				d.types[name.Text()] = n
			}
			return false
		}
		return true
	})
}

func (d *declared) classField(n *syntax.Node) {
	m, ok := staticMember(n)
	if !ok || m.name != "propTypes" {
		return
	}
	d.declareValue(m.class, m.value)
}

func (d *declared) assignment(n *syntax.Node) {
	left, right, ok := staticAssignment(n, "propTypes")
	if !ok {
		return
	}
	rec := d.u.GetRelatedComponent(left)
	if rec == nil {
		return
	}
	d.declareValue(rec.Node, right)
}

func (d *declared) factoryPair(n *syntax.Node) {
	if value, ok := factoryProperty(d.u, n, "propTypes"); ok {
		d.declareValue(n, value)
	}
}

func (d *declared) function(fn *syntax.Node) {
	if fn.Is(syntax.KindMethodDefinition) {
		if m, ok := staticMember(fn); ok && m.name == "propTypes" {
			d.declareValue(m.class, m.value)
		}
		return
	}

	c := statelessWithRecord(d.reg, d.u, fn)
	if c == nil {
		return
	}
	typ := parameterType(firstParam(fn))
	if typ == nil {
		typ = declaratorTypeArgument(fn)
	}
	if typ == nil {
		return
	}
	d.declareType(fn, typ)
}

func (d *declared) classTypeArguments(class *syntax.Node) {
	if d.reg.Get(class) == nil {
		return
	}
	for _, c := range class.NamedChildren() {
		if !c.Is("class_heritage") {
			continue
		}
		for _, h := range c.NamedChildren() {
			if !h.Is("extends_clause") {
				continue
			}
			if args := h.ChildByField("type_arguments"); args != nil {
				if first := args.FirstNamedChild(); first != nil {
					d.declareType(class, first)
				}
			}
		}
	}
}

// declareValue records a propTypes value. Anything other than an object
// literal, directly or through a same-file variable, disables validation.
func (d *declared) declareValue(target, value *syntax.Node) {
	obj := d.resolveObject(value)
	if obj == nil {
		d.reg.Set(target, components.Patch{IgnorePropsValidation: components.Bool(true)})
		return
	}
	entries, resolved := objectEntries(obj)
	declared := make(map[string]*components.PropType, len(entries))
	for _, e := range entries {
		required, typ := propTypeOf(e.value)
		declared[e.name] = &components.PropType{Name: e.name, Required: required, Type: typ, Node: e.node}
	}
	d.merge(target, declared)
	if !resolved {
		d.reg.Set(target, components.Patch{IgnorePropsValidation: components.Bool(true)})
	}
}

// resolveObject returns value if it is an object literal, or the literal an
// identifier was initialised with.
func (d *declared) resolveObject(value *syntax.Node) *syntax.Node {
	value = syntax.Unparen(value)
	if value.Is(syntax.KindObject) {
		return value
	}
	if !value.Is(syntax.KindIdentifier) {
		return nil
	}
	v := d.u.Scopes().Resolve(value, value.Text())
	if v == nil {
		return nil
	}
	for _, def := range v.Defs {
		if def.Kind != syntax.DefVariable || !def.Node.Is(syntax.KindVariableDeclarator) {
			continue
		}
		if init := syntax.Unparen(def.Node.ChildByField("value")); init.Is(syntax.KindObject) {
			return init
		}
	}
	return nil
}

func (d *declared) declareType(target, typ *syntax.Node) {
	declared, ok := d.typeMembers(typ, 0)
	if !ok {
		d.reg.Set(target, components.Patch{IgnorePropsValidation: components.Bool(true)})
		return
	}
	d.merge(target, declared)
}

func (d *declared) merge(target *syntax.Node, declared map[string]*components.PropType) {
	rec := owner(d.reg, target)
	if rec == nil {
		return
	}
	d.reg.Set(target, components.Patch{DeclaredPropTypes: mergeInto(rec.DeclaredPropTypes, declared)})
}

// typeMembers lists the members of a props type. It fails for types it
// cannot see through: imports, unions, index signatures and the like.
func (d *declared) typeMembers(typ *syntax.Node, depth int) (map[string]*components.PropType, bool) {
	if typ == nil || depth > maxTypeDepth {
		return nil, false
	}
	switch typ.Kind() {
	case "object_type", "interface_body":
		return typeLiteralMembers(typ)

	case "parenthesized_type":
		return d.typeMembers(typ.FirstNamedChild(), depth+1)

	case "intersection_type":
		out := make(map[string]*components.PropType)
		for _, part := range typ.NamedChildren() {
			members, ok := d.typeMembers(part, depth+1)
			if !ok {
				return nil, false
			}
			out = mergeInto(out, members)
		}
		return out, true

	case "generic_type":
		// PropsWithChildren<P> and friends: read the argument.
		args := typ.ChildByField("type_arguments")
		if args == nil {
			return nil, false
		}
		return d.typeMembers(args.FirstNamedChild(), depth+1)

	case "type_identifier":
		decl := d.types[typ.Text()]
		if decl == nil {
			return nil, false
		}
		if decl.Is("type_alias_declaration") {
			return d.typeMembers(decl.ChildByField("value"), depth+1)
		}
		out, ok := d.typeMembers(decl.ChildByField("body"), depth+1)
		if !ok {
			return nil, false
		}
		for _, c := range decl.NamedChildren() {
			if !c.Is("extends_type_clause") {
				continue
			}
			for _, base := range c.NamedChildren() {
				members, ok := d.typeMembers(base, depth+1)
				if !ok {
					return nil, false
				}
				out = mergeInto(members, out)
			}
		}
		return out, true
	}
	return nil, false
}

func typeLiteralMembers(body *syntax.Node) (map[string]*components.PropType, bool) {
	out := make(map[string]*components.PropType)
	for _, m := range body.NamedChildren() {
		switch m.Kind() {
		case "property_signature":
			name, ok := syntax.PropertyKeyName(m.ChildByField("name"))
			if !ok {
				return nil, false
			}
			out[name] = &components.PropType{
				Name:     name,
				Required: !m.HasToken("?"),
				Type:     tsTypeName(m.ChildByField("type").FirstNamedChild()),
				Node:     m,
			}
		case "method_signature":
			name, ok := syntax.PropertyKeyName(m.ChildByField("name"))
			if !ok {
				return nil, false
			}
			out[name] = &components.PropType{Name: name, Required: !m.HasToken("?"), Type: "func", Node: m}
		case "index_signature":
			return nil, false
		}
	}
	return out, true
}

func tsTypeName(t *syntax.Node) string {
	if t.Is("function_type") {
		return "func"
	}
	return t.Text()
}

// parameterType returns the type annotation of a TypeScript parameter.
func parameterType(p *syntax.Node) *syntax.Node {
	if !p.Is("required_parameter", "optional_parameter") {
		return nil
	}
	return p.ChildByField("type").FirstNamedChild()
}

// declaratorTypeArgument reads P from `const Foo: FC<P> = (props) => ...`.
func declaratorTypeArgument(fn *syntax.Node) *syntax.Node {
	decl := syntax.ParentSkipParens(fn)
	if !decl.Is(syntax.KindVariableDeclarator) {
		return nil
	}
	typ := decl.ChildByField("type").FirstNamedChild()
	if !typ.Is("generic_type") {
		return nil
	}
	return typ.ChildByField("type_arguments").FirstNamedChild()
}

// propTypeOf describes a propTypes entry such as
// `PropTypes.string.isRequired` or `PropTypes.shape({...})`.
func propTypeOf(value *syntax.Node) (required bool, typ string) {
	v := syntax.Unparen(value)
	if v.Is(syntax.KindMemberExpression) {
		if prop := v.ChildByField("property"); prop != nil && prop.Text() == "isRequired" {
			required = true
			v = syntax.Unparen(v.ChildByField("object"))
		}
	}
	switch v.Kind() {
	case syntax.KindMemberExpression:
		return required, v.ChildByField("property").Text()
	case syntax.KindCallExpression:
		callee := v.ChildByField("function")
		if callee.Is(syntax.KindMemberExpression) {
			return required, callee.ChildByField("property").Text()
		}
		return required, callee.Text()
	case syntax.KindIdentifier:
		return required, v.Text()
	}
	return required, ""
}
