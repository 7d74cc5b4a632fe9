package components

import (
	"slices"

	"github.com/gnana997/reactlint/pkg/syntax"
)

// IsPragmaComponentWrapper reports whether call invokes a recognised
// higher-order component wrapper and does not merely wrap a component that
// was already detected elsewhere in the file.
func (u *Utils) IsPragmaComponentWrapper(call *syntax.Node) bool {
	if !call.Is(syntax.KindCallExpression) {
		return false
	}
	callee := call.ChildByField("function")
	matched := false
	for _, w := range u.wrappers {
		if u.matchesWrapper(callee, w) {
			matched = true
			break
		}
	}
	return matched && !u.nodeWrapsComponent(call)
}

func (u *Utils) matchesWrapper(callee *syntax.Node, w WrapperFunction) bool {
	switch callee.Kind() {
	case syntax.KindMemberExpression:
		obj := callee.ChildByField("object")
		prop := callee.ChildByField("property")
		return w.Object != "" && obj.Is(syntax.KindIdentifier) && obj.Text() == w.Object &&
			prop != nil && prop.Text() == w.Property
	case syntax.KindIdentifier:
		if callee.Text() != w.Property {
			return false
		}
		if w.Object == "" {
			return true
		}
		return w.Object == u.settings.Pragma && u.isDestructuredFromPragmaImport(callee)
	}
	return false
}

// getPragmaComponentWrapper returns the outermost wrapper call in the chain
// directly enclosing fn, e.g. the memo call in memo(forwardRef(fn)).
func (u *Utils) getPragmaComponentWrapper(fn *syntax.Node) *syntax.Node {
	var outer *syntax.Node
	cur := fn
	for {
		args := syntax.ParentSkipParens(cur)
		if !args.Is("arguments") {
			return outer
		}
		call := args.Parent()
		if !u.IsPragmaComponentWrapper(call) {
			return outer
		}
		outer = call
		cur = call
	}
}

// nodeWrapsComponent reports whether the wrapper's first argument renders an
// element named after a component detected earlier, as in
// `memo(props => <Foo {...props}/>)`.
func (u *Utils) nodeWrapsComponent(call *syntax.Node) bool {
	name := wrappedComponentName(call)
	if name == "" {
		return false
	}
	return slices.Contains(u.DetectedComponentNames(), name)
}

func wrappedComponentName(call *syntax.Node) string {
	args := call.ChildByField("arguments")
	if args == nil {
		return ""
	}
	first := args.FirstNamedChild()
	if !syntax.IsFunction(first) {
		return ""
	}
	body := syntax.FunctionBody(first)
	if body == nil {
		return ""
	}
	if body.Kind() == "statement_block" {
		for _, stmt := range body.NamedChildren() {
			if stmt.Kind() == syntax.KindReturnStatement {
				return elementName(stmt.FirstNamedChild())
			}
		}
		return ""
	}
	return elementName(body)
}

// elementName returns the simple tag name of a JSX element, or "".
func elementName(n *syntax.Node) string {
	n = syntax.Unparen(n)
	var tag *syntax.Node
	switch n.Kind() {
	case "jsx_element":
		if open := n.ChildByField("open_tag"); open != nil {
			tag = open.ChildByField("name")
		}
	case "jsx_self_closing_element":
		tag = n.ChildByField("name")
	}
	if tag.Is(syntax.KindIdentifier) {
		return tag.Text()
	}
	return ""
}

// DetectedComponentNames returns the names of confirmed class components and
// of confirmed arrow components bound to a variable.
func (u *Utils) DetectedComponentNames() []string {
	var names []string
	for _, rec := range u.reg.All() {
		if rec.Confidence < Confirmed {
			continue
		}
		n := rec.Node
		switch {
		case n.Is(syntax.KindClassDeclaration):
			if id := n.ChildByField("name"); id != nil {
				names = append(names, id.Text())
			}
		case n.Is(syntax.KindArrowFunction):
			if decl := syntax.ParentSkipParens(n); decl.Is(syntax.KindVariableDeclarator) {
				if id := decl.ChildByField("name"); id.Is(syntax.KindIdentifier) {
					names = append(names, id.Text())
				}
			}
		}
	}
	return names
}
