package components

import (
	"slices"
	"strings"

	"github.com/gnana997/reactlint/pkg/syntax"
)

// GetRelatedComponent resolves the component a member expression such as
// `Foo.propTypes` or `Lib.Foo.defaultProps` is attached to, and records it
// with at least Tentative confidence. Only dotted paths rooted at an
// identifier are supported; computed segments (`Foo["prop" + "Types"]`)
// yield nil.
func (u *Utils) GetRelatedComponent(member *syntax.Node) *Record {
	path, ok := memberPath(member)
	if !ok || len(path) < 2 {
		return nil
	}
	componentName := strings.Join(path[:len(path)-1], ".")
	root := path[0]
	rest := path[1:]

	v := u.ctx.Scopes.Resolve(member, root)
	if v == nil {
		return nil
	}

	// An assignment like `Lib.Foo = function() {...}` defines the component.
	for _, ref := range v.References {
		target := ref.Identifier
		if p := target.Parent(); p.Is(syntax.KindMemberExpression) && target.Field() == "object" {
			target = p
		}
		if target.Text() != componentName || !target.Is(syntax.KindMemberExpression) {
			continue
		}
		if assign := target.Parent(); assign.Is(syntax.KindAssignment) && target.Field() == "left" {
			if right := assign.ChildByField("right"); right != nil {
				return u.reg.Add(syntax.Unparen(right), Tentative)
			}
		}
	}

	idx := slices.IndexFunc(v.Defs, func(d syntax.Definition) bool {
		return d.Kind == syntax.DefClassName || d.Kind == syntax.DefFunctionName || d.Kind == syntax.DefVariable
	})
	if idx < 0 {
		return nil
	}
	def := v.Defs[idx]
	node := def.Node
	if node.Is(syntax.KindVariableDeclarator) {
		init := node.ChildByField("value")
		if init == nil {
			return nil
		}
		node = syntax.Unparen(init)
	}

	// Walk object literal properties along the remaining path. The last
	// segment names the attribute (propTypes, defaultProps) and is skipped
	// when the node has no such property.
	for _, seg := range rest {
		if !node.Is(syntax.KindObject) {
			continue
		}
		value := objectProperty(node, seg)
		if value == nil {
			return nil
		}
		node = syntax.Unparen(value)
	}
	return u.reg.Add(node, Tentative)
}

// memberPath flattens `a.b.c` into ["a", "b", "c"].
func memberPath(n *syntax.Node) ([]string, bool) {
	var rev []string
	cur := n
	for {
		switch cur.Kind() {
		case syntax.KindMemberExpression:
			prop := cur.ChildByField("property")
			if prop == nil || !prop.Is("property_identifier", "private_property_identifier") {
				return nil, false
			}
			rev = append(rev, prop.Text())
			cur = cur.ChildByField("object")
			if cur == nil {
				return nil, false
			}
		case syntax.KindIdentifier:
			rev = append(rev, cur.Text())
			slices.Reverse(rev)
			return rev, true
		default:
			return nil, false
		}
	}
}

// objectProperty returns the value stored under name in an object literal.
// Methods are returned as the method node itself.
func objectProperty(obj *syntax.Node, name string) *syntax.Node {
	for _, prop := range obj.NamedChildren() {
		switch prop.Kind() {
		case syntax.KindPair:
			if key, ok := syntax.PropertyKeyName(prop.ChildByField("key")); ok && key == name {
				return prop.ChildByField("value")
			}
		case syntax.KindMethodDefinition:
			if key, ok := syntax.PropertyKeyName(prop.ChildByField("name")); ok && key == name {
				return prop
			}
		case "shorthand_property_identifier":
			if prop.Text() == name {
				return prop
			}
		}
	}
	return nil
}
