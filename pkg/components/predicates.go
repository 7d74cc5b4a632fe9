package components

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/gnana997/reactlint/pkg/syntax"
)

var componentBaseRe = regexp.MustCompile(`^(?:Pure)?Component$`)

// maxAliasDepth bounds `const Base = React.Component` / `class A extends B`
// resolution chains.
const maxAliasDepth = 2

// IsES5Component reports whether obj is the sole argument of the factory call,
// e.g. `createReactClass({...})` or `React.createReactClass({...})`.
func (u *Utils) IsES5Component(obj *syntax.Node) bool {
	if !obj.Is(syntax.KindObject) {
		return false
	}
	args := syntax.ParentSkipParens(obj)
	if !args.Is("arguments") || len(args.NamedChildren()) != 1 {
		return false
	}
	call := args.Parent()
	if !call.Is(syntax.KindCallExpression) {
		return false
	}

	callee := call.ChildByField("function")
	switch callee.Kind() {
	case syntax.KindIdentifier:
		return callee.Text() == u.settings.CreateClass
	case syntax.KindMemberExpression:
		ns := callee.ChildByField("object")
		prop := callee.ChildByField("property")
		if prop == nil || prop.Text() != u.settings.CreateClass {
			return false
		}
		return ns.Is(syntax.KindIdentifier) && ns.Text() == u.settings.Pragma && u.resolvesToFramework(ns)
	}
	return false
}

// IsES6Component reports whether class extends the framework's Component or
// PureComponent, directly or through a local alias or local base class.
func (u *Utils) IsES6Component(class *syntax.Node) bool {
	if !syntax.IsClass(class) {
		return false
	}
	return u.isComponentBase(syntax.ClassSuperclass(class), 0)
}

func (u *Utils) isComponentBase(expr *syntax.Node, depth int) bool {
	expr = syntax.Unparen(expr)
	if expr == nil {
		return false
	}

	switch expr.Kind() {
	case syntax.KindMemberExpression:
		obj := expr.ChildByField("object")
		prop := expr.ChildByField("property")
		return obj.Is(syntax.KindIdentifier) && obj.Text() == u.settings.Pragma &&
			prop != nil && componentBaseRe.MatchString(prop.Text())

	case syntax.KindIdentifier:
		if componentBaseRe.MatchString(expr.Text()) {
			return true
		}
		if depth >= maxAliasDepth {
			return false
		}
		v := u.ctx.Scopes.Resolve(expr, expr.Text())
		if v == nil {
			return false
		}
		for _, def := range v.Defs {
			switch def.Kind {
			case syntax.DefVariable:
				if def.Node.Is(syntax.KindVariableDeclarator) && u.isComponentBase(def.Node.ChildByField("value"), depth+1) {
					return true
				}
			case syntax.DefClassName:
				if u.isComponentBase(syntax.ClassSuperclass(def.Node), depth+1) {
					return true
				}
			}
		}
	}
	return false
}

// IsClassOrFactoryComponent reports whether n is a class component or a
// factory component object.
func (u *Utils) IsClassOrFactoryComponent(n *syntax.Node) bool {
	return u.IsES6Component(n) || u.IsES5Component(n)
}

// resolvesToFramework reports whether id refers to the framework import, or
// to an undeclared global of that name.
func (u *Utils) resolvesToFramework(id *syntax.Node) bool {
	v := u.ctx.Scopes.Resolve(id, id.Text())
	if v == nil {
		return true
	}
	for _, def := range v.Defs {
		if def.Kind != syntax.DefImportBinding {
			return false
		}
	}
	return true
}

// isDestructuredFromPragmaImport reports whether the identifier was bound by
// `import {x} from 'react'`, `const {x} = React`, `const x = React.x` or
// `const {x} = require('react')`.
func (u *Utils) isDestructuredFromPragmaImport(id *syntax.Node) bool {
	v := u.ctx.Scopes.Resolve(id, id.Text())
	if v == nil {
		return false
	}
	for _, def := range v.Defs {
		switch def.Kind {
		case syntax.DefImportBinding:
			if imp := enclosingImport(def.Node); imp != nil && importSource(imp) == u.settings.ImportSource {
				return true
			}
		case syntax.DefVariable:
			if !def.Node.Is(syntax.KindVariableDeclarator) {
				continue
			}
			init := syntax.Unparen(def.Node.ChildByField("value"))
			switch {
			case init.Is(syntax.KindIdentifier):
				if init.Text() == u.settings.Pragma {
					return true
				}
			case init.Is(syntax.KindMemberExpression):
				obj := init.ChildByField("object")
				if obj.Is(syntax.KindIdentifier) && obj.Text() == u.settings.Pragma {
					return true
				}
			case init.Is(syntax.KindCallExpression):
				if u.isRequireOfFramework(init) {
					return true
				}
			}
		}
	}
	return false
}

func (u *Utils) isRequireOfFramework(call *syntax.Node) bool {
	callee := call.ChildByField("function")
	if !callee.Is(syntax.KindIdentifier) || callee.Text() != "require" {
		return false
	}
	args := call.ChildByField("arguments")
	if args == nil {
		return false
	}
	named := args.NamedChildren()
	if len(named) != 1 {
		return false
	}
	src, ok := syntax.StringValue(named[0])
	return ok && src == u.settings.ImportSource
}

func enclosingImport(n *syntax.Node) *syntax.Node {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.Kind() == syntax.KindImportStatement {
			return cur
		}
	}
	return nil
}

func importSource(imp *syntax.Node) string {
	src, _ := syntax.StringValue(imp.ChildByField("source"))
	return src
}

// IsFirstLetterCapitalized reports whether name starts with an upper-case
// letter, ignoring leading underscores.
func IsFirstLetterCapitalized(name string) bool {
	for len(name) > 0 && name[0] == '_' {
		name = name[1:]
	}
	if name == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
