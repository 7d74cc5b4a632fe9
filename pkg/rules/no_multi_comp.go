package rules

import (
	"github.com/gnana997/reactlint/pkg/components"
	"github.com/gnana997/reactlint/pkg/lint"
	"github.com/gnana997/reactlint/pkg/syntax"
)

// NoMultiComp reports every component after the first one in a file.
//
// Options:
//   - ignoreStateless (bool): function and wrapper components do not count.
var NoMultiComp = lint.Rule{
	Name:            "no-multi-comp",
	Doc:             "Disallow multiple component definitions per file.",
	DefaultSeverity: lint.SeverityWarn,
	Create: func(ctx *lint.RuleContext, reg *components.Registry, _ *components.Utils) syntax.Visitor {
		ignoreStateless := ctx.BoolOption("ignoreStateless", false)
		return syntax.Visitor{
			syntax.ProgramExit: func(*syntax.Node) {
				seen := 0
				for _, rec := range reg.List() {
					if ignoreStateless && isStateless(rec.Node) {
						continue
					}
					seen++
					if seen > 1 {
						ctx.Report(rec.Node, "Declare only one React component per file")
					}
				}
			},
		}
	},
}
