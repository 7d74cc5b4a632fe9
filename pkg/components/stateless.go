package components

import (
	"github.com/gnana997/reactlint/pkg/syntax"
)

// site describes where a function-like node sits in the tree. Markup
// verdicts are computed on first use.
type site struct {
	u  *Utils
	fn *syntax.Node
	// self is fn or its outermost parenthesised wrapper; parent is self's parent.
	self   *syntax.Node
	parent *syntax.Node

	// Property context: fn is a pair value or an object method.
	inProperty bool
	key        *syntax.Node
	computed   bool
	method     bool

	// propertyAssignment: fn is the right side of `a.b = fn`.
	propertyAssignment bool
	moduleExports      bool

	markup, markupOrNull, onlyNull *bool
}

func newSite(u *Utils, fn *syntax.Node) *site {
	s := &site{u: u, fn: fn, self: fn}
	for s.self.Parent().Is("parenthesized_expression") {
		s.self = s.self.Parent()
	}
	s.parent = s.self.Parent()

	switch {
	case fn.Is(syntax.KindMethodDefinition) && s.parent.Is(syntax.KindObject):
		s.inProperty, s.method = true, true
		s.key = fn.ChildByField("name")
	case s.parent.Is(syntax.KindPair) && s.self.Field() == "value":
		s.inProperty = true
		s.key = s.parent.ChildByField("key")
	}
	s.computed = s.key.Is("computed_property_name")

	if s.parent.Is(syntax.KindAssignment) && s.self.Field() == "right" {
		left := s.parent.ChildByField("left")
		if left.Is(syntax.KindMemberExpression) {
			s.propertyAssignment = true
			obj := left.ChildByField("object")
			prop := left.ChildByField("property")
			s.moduleExports = obj.Is(syntax.KindIdentifier) && obj.Text() == "module" &&
				prop != nil && prop.Text() == "exports"
		}
	}
	return s
}

func (s *site) returnsMarkup() bool {
	if s.markup == nil {
		s.markup = Bool(s.u.ReturnsMarkup(s.fn, MarkupOptions{}))
	}
	return *s.markup
}

func (s *site) returnsMarkupOrNull() bool {
	if s.markupOrNull == nil {
		s.markupOrNull = Bool(s.u.ReturnsMarkupOrNull(s.fn))
	}
	return *s.markupOrNull
}

func (s *site) returnsOnlyNull() bool {
	if s.onlyNull == nil {
		s.onlyNull = Bool(s.u.ReturnsOnlyNull(s.fn))
	}
	return *s.onlyNull
}

// ownName is the function expression's own identifier, if any.
func (s *site) ownName() *syntax.Node {
	if s.fn.Is(syntax.KindFunctionExpression, syntax.KindFunctionLegacy, syntax.KindGeneratorFunction) {
		return s.fn.ChildByField("name")
	}
	return nil
}

func (s *site) isArrowBody() bool {
	return s.parent.Is(syntax.KindArrowFunction) && s.self.Field() == "body"
}

// accept and reject are the two outcomes of a matched case.
func accept(n *syntax.Node) (*syntax.Node, bool) { return n, true }
func reject() (*syntax.Node, bool)                { return nil, true }
func next() (*syntax.Node, bool)                  { return nil, false }

// statelessCase is one entry of the classifier ladder. A case that matches
// decides the outcome (a node, or nil for an explicit rejection); a case
// that does not match passes to the next one.
type statelessCase struct {
	name  string
	match func(s *site) (*syntax.Node, bool)
}

// statelessLadder is evaluated top to bottom; the first matching case wins.
// The order matters where cases overlap.
var statelessLadder = []statelessCase{
	{
		// export default () => <div/>; strict markup, no fallthrough.
		name: "export-default",
		match: func(s *site) (*syntax.Node, bool) {
			if !s.parent.Is(syntax.KindExportStatement) {
				return next()
			}
			if s.returnsMarkup() {
				return accept(s.fn)
			}
			return reject()
		},
	},
	{
		// const Foo = () => ...; a lower-case binding is rejected.
		name: "variable-declarator",
		match: func(s *site) (*syntax.Node, bool) {
			if !s.parent.Is(syntax.KindVariableDeclarator) || s.self.Field() != "value" || !s.returnsMarkupOrNull() {
				return next()
			}
			if IsFirstLetterCapitalized(identifierText(s.parent.ChildByField("name"))) {
				return accept(s.fn)
			}
			return reject()
		},
	},
	{
		// A function returned from another function must itself render.
		name: "returned-function",
		match: func(s *site) (*syntax.Node, bool) {
			if (s.parent.Is(syntax.KindReturnStatement) || s.isArrowBody()) && !s.returnsMarkup() {
				return reject()
			}
			return next()
		},
	},
	{
		// Foo = () => ...; plain identifier target.
		name: "assignment",
		match: func(s *site) (*syntax.Node, bool) {
			if !s.parent.Is(syntax.KindAssignment) || s.self.Field() != "right" || s.propertyAssignment || !s.returnsMarkupOrNull() {
				return next()
			}
			if IsFirstLetterCapitalized(identifierText(s.parent.ChildByField("left"))) {
				return accept(s.fn)
			}
			return reject()
		},
	},
	{
		// Foo = () => () => ... and const Foo = () => () => ...
		name: "binding-curried",
		match: func(s *site) (*syntax.Node, bool) {
			if !s.isArrowBody() || !s.returnsMarkupOrNull() {
				return next()
			}
			name, ok := boundName(newSite(s.u, s.parent))
			if !ok {
				return next()
			}
			if IsFirstLetterCapitalized(name) {
				return accept(s.fn)
			}
			return reject()
		},
	},
	{
		// { Foo: () => () => ... }
		name: "property-curried",
		match: func(s *site) (*syntax.Node, bool) {
			if !s.isArrowBody() {
				return next()
			}
			outer := newSite(s.u, s.parent)
			if !outer.inProperty || !s.returnsMarkupOrNull() {
				return next()
			}
			if IsFirstLetterCapitalized(keyText(outer.key)) {
				return accept(s.fn)
			}
			return reject()
		},
	},
	{
		// Foo = function() { return function() {...} }
		name: "binding-returned-function",
		match: func(s *site) (*syntax.Node, bool) {
			if !s.parent.Is(syntax.KindReturnStatement) {
				return next()
			}
			if name := s.ownName(); name != nil && IsFirstLetterCapitalized(name.Text()) {
				return accept(s.fn)
			}
			outer := returningFunction(s.parent)
			if outer == nil || !s.returnsMarkupOrNull() {
				return next()
			}
			name, ok := boundName(newSite(s.u, outer))
			if !ok {
				return next()
			}
			if IsFirstLetterCapitalized(name) {
				return accept(s.fn)
			}
			return reject()
		},
	},
	{
		// { Foo: function() { return function() {...} } }
		name: "property-returned-function",
		match: func(s *site) (*syntax.Node, bool) {
			if !s.parent.Is(syntax.KindReturnStatement) {
				return next()
			}
			outer := returningFunction(s.parent)
			if outer == nil {
				return next()
			}
			os := newSite(s.u, outer)
			if !os.inProperty || !s.returnsMarkupOrNull() {
				return next()
			}
			if IsFirstLetterCapitalized(keyText(os.key)) {
				return accept(s.fn)
			}
			return reject()
		},
	},
	{
		// { [a.b]: props => value }
		name: "computed-key",
		match: func(s *site) (*syntax.Node, bool) {
			if s.inProperty && s.computed && !s.returnsMarkup() && !s.returnsOnlyNull() {
				return reject()
			}
			return next()
		},
	},
	{
		// { Foo() {...} } or { Foo: () => ... }
		name: "property",
		match: func(s *site) (*syntax.Node, bool) {
			if !s.inProperty || s.computed || (!s.method && s.ownName() != nil) {
				return next()
			}
			if IsFirstLetterCapitalized(keyText(s.key)) && s.returnsMarkup() {
				return accept(s.fn)
			}
			return reject()
		},
	},
	{
		// memo(() => ...), forwardRef(...), configured wrappers. The wrapper
		// call is the component.
		name: "wrapper-argument",
		match: func(s *site) (*syntax.Node, bool) {
			wrapper := s.u.getPragmaComponentWrapper(s.fn)
			if wrapper == nil || !s.returnsMarkupOrNull() {
				return next()
			}
			return accept(wrapper)
		},
	},
	{
		name: "fallback",
		match: func(s *site) (*syntax.Node, bool) {
			if !isInAllowedPosition(s.self) || !s.returnsMarkupOrNull() {
				return reject()
			}
			if s.u.isInsideClassOrFactoryComponent(s.fn) {
				return reject()
			}
			if name := s.ownName(); name != nil {
				if IsFirstLetterCapitalized(name.Text()) {
					return accept(s.fn)
				}
				return reject()
			}
			if s.propertyAssignment && !s.moduleExports {
				prop := s.parent.ChildByField("left").ChildByField("property")
				if prop == nil || !IsFirstLetterCapitalized(prop.Text()) {
					return reject()
				}
			}
			if s.inProperty && s.returnsOnlyNull() {
				return reject()
			}
			return accept(s.fn)
		},
	},
}

// GetStatelessComponent returns the component node fn denotes: fn itself, the
// wrapper call enclosing it, or nil.
func (u *Utils) GetStatelessComponent(fn *syntax.Node) *syntax.Node {
	if !syntax.IsFunction(fn) {
		return nil
	}

	if syntax.IsFunctionDeclaration(fn) {
		name := fn.ChildByField("name")
		if (name == nil || IsFirstLetterCapitalized(name.Text())) && u.ReturnsMarkupOrNull(fn) {
			return fn
		}
		return nil
	}

	s := newSite(u, fn)
	if fn.Is(syntax.KindMethodDefinition) && !s.inProperty {
		// Class methods are never stateless components.
		return nil
	}
	for _, c := range statelessLadder {
		if result, ok := c.match(s); ok {
			if u.logger != nil && result != nil {
				u.logger.Debug("stateless component", "case", c.name, "line", fn.Line())
			}
			return result
		}
	}
	return nil
}

// returningFunction returns the function whose body directly contains ret.
func returningFunction(ret *syntax.Node) *syntax.Node {
	block := ret.Parent()
	if !block.Is("statement_block") {
		return nil
	}
	fn := block.Parent()
	if !syntax.IsFunction(fn) {
		return nil
	}
	return fn
}

// isInAllowedPosition reports whether an expression sits somewhere a
// component definition can live.
func isInAllowedPosition(self *syntax.Node) bool {
	parent := self.Parent()
	switch parent.Kind() {
	case syntax.KindVariableDeclarator, syntax.KindAssignment, syntax.KindPair, syntax.KindObject,
		syntax.KindReturnStatement, syntax.KindExportStatement, syntax.KindArrowFunction:
		return true
	case "sequence_expression":
		named := parent.NamedChildren()
		if len(named) == 0 || !syntax.Same(named[len(named)-1], self) {
			return false
		}
		for parent.Parent().Is("parenthesized_expression") {
			parent = parent.Parent()
		}
		return isInAllowedPosition(parent)
	}
	return false
}

// isInsideClassOrFactoryComponent reports whether n is nested in a class or
// factory component, e.g. a render helper or a method.
func (u *Utils) isInsideClassOrFactoryComponent(n *syntax.Node) bool {
	found := false
	n.Ancestors(func(a *syntax.Node) bool {
		if (syntax.IsClass(a) && u.IsES6Component(a)) || (a.Is(syntax.KindObject) && u.IsES5Component(a)) {
			found = true
			return false
		}
		return true
	})
	return found
}

// boundName returns the name an outer function is bound to by a plain
// assignment or a variable declarator. Member targets bind no name.
func boundName(outer *site) (string, bool) {
	switch {
	case outer.parent.Is(syntax.KindAssignment) && outer.self.Field() == "right" && !outer.propertyAssignment:
		return identifierText(outer.parent.ChildByField("left")), true
	case outer.parent.Is(syntax.KindVariableDeclarator) && outer.self.Field() == "value":
		return identifierText(outer.parent.ChildByField("name")), true
	}
	return "", false
}

func identifierText(n *syntax.Node) string {
	if n.Is(syntax.KindIdentifier) {
		return n.Text()
	}
	return ""
}

func keyText(key *syntax.Node) string {
	name, _ := syntax.PropertyKeyName(key)
	return name
}
