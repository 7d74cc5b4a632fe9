package rules

import (
	"unicode"
	"unicode/utf8"

	"github.com/gnana997/reactlint/pkg/components"
	"github.com/gnana997/reactlint/pkg/lint"
	"github.com/gnana997/reactlint/pkg/syntax"
)

// HookUseState requires useState results to be destructured into a
// symmetric value and setter pair, as in `const [color, setColor] = useState()`.
var HookUseState = lint.Rule{
	Name:            "hook-use-state",
	Doc:             "Ensure destructuring and symmetric naming of useState hook value and setter variables.",
	DefaultSeverity: lint.SeverityWarn,
	Create: func(ctx *lint.RuleContext, _ *components.Registry, u *components.Utils) syntax.Visitor {
		return syntax.Visitor{
			syntax.KindCallExpression: func(n *syntax.Node) {
				if !u.IsReactHookCall(n, "useState") {
					return
				}
				if !isSymmetricStatePair(n) {
					ctx.Report(n, "useState call is not destructured into value + setter pair")
				}
			},
		}
	},
}

func isSymmetricStatePair(call *syntax.Node) bool {
	decl := syntax.ParentSkipParens(call)
	if !decl.Is(syntax.KindVariableDeclarator) {
		return false
	}
	pattern := decl.ChildByField("name")
	if !pattern.Is("array_pattern") {
		return false
	}
	elems := pattern.NamedChildren()
	if len(elems) != 2 || !elems[0].Is(syntax.KindIdentifier) || !elems[1].Is(syntax.KindIdentifier) {
		return false
	}
	return elems[1].Text() == "set"+upperFirst(elems[0].Text())
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
