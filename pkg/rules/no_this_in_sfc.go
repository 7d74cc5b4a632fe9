package rules

import (
	"github.com/gnana997/reactlint/pkg/components"
	"github.com/gnana997/reactlint/pkg/lint"
	"github.com/gnana997/reactlint/pkg/syntax"
)

// NoThisInSFC reports `this` member reads inside function components.
// Detection poisons such functions, so the lookup is syntactic: every read
// is reported, not only the first.
var NoThisInSFC = lint.Rule{
	Name:            "no-this-in-sfc",
	Doc:             "Disallow `this` from being used in stateless functional components.",
	DefaultSeverity: lint.SeverityError,
	Create: func(ctx *lint.RuleContext, _ *components.Registry, u *components.Utils) syntax.Visitor {
		return syntax.Visitor{
			syntax.KindMemberExpression: func(n *syntax.Node) {
				if !n.ChildByField("object").Is(syntax.KindThis) {
					return
				}
				c := u.GetParentStatelessComponent(n)
				if c == nil {
					return
				}
				// Object methods are legitimately bound.
				if c.Is(syntax.KindMethodDefinition) || syntax.ParentSkipParens(c).Is(syntax.KindPair) {
					return
				}
				ctx.Report(n, "Stateless functional components should not use `this`")
			},
		}
	},
}
