package lint

import (
	"slices"

	"github.com/gnana997/reactlint/pkg/components"
	"github.com/gnana997/reactlint/pkg/syntax"
)

// Component kinds reported by Describe.
const (
	KindClass    = "class"
	KindFactory  = "factory"
	KindFunction = "function"
	KindWrapper  = "wrapper"
)

// Component is a detected component as reported by the components command
// and the MCP detect_components tool.
type Component struct {
	Name          string   `json:"name"`
	Kind          string   `json:"kind"`
	Line          int      `json:"line"`
	Column        int      `json:"column"`
	DeclaredProps []string `json:"declaredProps,omitempty"`
	UsedProps     []string `json:"usedProps,omitempty"`
	DefaultProps  []string `json:"defaultProps,omitempty"`
	// PropsUnresolved is set when the declared props could not be read
	// statically.
	PropsUnresolved bool `json:"propsUnresolved,omitempty"`
}

// Describe summarises a listed record.
func Describe(rec *components.Record) Component {
	n := rec.Node
	c := Component{
		Name:            componentName(n),
		Kind:            componentKind(n),
		Line:            n.Line(),
		Column:          n.Column(),
		PropsUnresolved: rec.IgnorePropsValidation,
	}
	for name := range rec.DeclaredPropTypes {
		c.DeclaredProps = append(c.DeclaredProps, name)
	}
	for name := range rec.DefaultProps {
		c.DefaultProps = append(c.DefaultProps, name)
	}
	for _, u := range rec.UsedPropTypes {
		if !slices.Contains(c.UsedProps, u.Name) {
			c.UsedProps = append(c.UsedProps, u.Name)
		}
	}
	slices.Sort(c.DeclaredProps)
	slices.Sort(c.DefaultProps)
	slices.Sort(c.UsedProps)
	return c
}

func componentKind(n *syntax.Node) string {
	switch {
	case syntax.IsClass(n):
		return KindClass
	case n.Is(syntax.KindObject):
		return KindFactory
	case n.Is(syntax.KindCallExpression):
		return KindWrapper
	default:
		return KindFunction
	}
}

// componentName is the node's own name, or the name it is bound to.
// Anonymous components are reported as "<anonymous>".
func componentName(n *syntax.Node) string {
	if syntax.IsClass(n) {
		if id := n.ChildByField("name"); id != nil {
			return id.Text()
		}
	} else if n.Is(syntax.KindMethodDefinition) {
		if name, ok := syntax.PropertyKeyName(n.ChildByField("name")); ok {
			return name
		}
	} else if id := syntax.FunctionName(n); id != nil {
		return id.Text()
	}
	if name := boundName(n); name != "" {
		return name
	}
	return "<anonymous>"
}

// boundName climbs through wrapper calls and parentheses to the declarator,
// assignment or property that names the expression.
func boundName(n *syntax.Node) string {
	cur := n
	for p := cur.Parent(); p != nil; cur, p = p, p.Parent() {
		switch p.Kind() {
		case "parenthesized_expression", "arguments", syntax.KindCallExpression:
			continue
		case syntax.KindVariableDeclarator:
			if cur.Field() == "value" {
				return p.ChildByField("name").Text()
			}
		case syntax.KindAssignment:
			if cur.Field() == "right" {
				return p.ChildByField("left").Text()
			}
		case syntax.KindPair:
			if cur.Field() == "value" {
				name, _ := syntax.PropertyKeyName(p.ChildByField("key"))
				return name
			}
		}
		return ""
	}
	return ""
}
