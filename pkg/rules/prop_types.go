package rules

import (
	"slices"

	"github.com/gnana997/reactlint/pkg/components"
	"github.com/gnana997/reactlint/pkg/lint"
	"github.com/gnana997/reactlint/pkg/syntax"
)

// PropTypes reports props that are read but not declared.
//
// Options:
//   - ignore ([]string): prop names never reported.
//   - skipUndeclared (bool): only check components that declare props.
var PropTypes = lint.Rule{
	Name:            "prop-types",
	Doc:             "Disallow missing props validation in a component definition.",
	DefaultSeverity: lint.SeverityError,
	Create: func(ctx *lint.RuleContext, reg *components.Registry, _ *components.Utils) syntax.Visitor {
		ignore := ctx.StringsOption("ignore")
		skipUndeclared := ctx.BoolOption("skipUndeclared", false)

		return syntax.Visitor{
			syntax.ProgramExit: func(*syntax.Node) {
				for _, rec := range reg.List() {
					if rec.IgnorePropsValidation {
						continue
					}
					if skipUndeclared && rec.DeclaredPropTypes == nil {
						continue
					}
					reported := make(map[string]bool)
					for _, used := range rec.UsedPropTypes {
						name := used.Name
						if name == "" || reported[name] || slices.Contains(ignore, name) {
							continue
						}
						if _, ok := rec.DeclaredPropTypes[name]; ok {
							continue
						}
						reported[name] = true
						ctx.Reportf(reportNode(used.Node, rec), "'%s' is missing in props validation", name)
					}
				}
			},
		}
	},
}

// NoUnusedPropTypes reports declared props that are never read.
var NoUnusedPropTypes = lint.Rule{
	Name:            "no-unused-prop-types",
	Doc:             "Disallow definitions of unused propTypes.",
	DefaultSeverity: lint.SeverityWarn,
	Create: func(ctx *lint.RuleContext, reg *components.Registry, _ *components.Utils) syntax.Visitor {
		return syntax.Visitor{
			syntax.ProgramExit: func(*syntax.Node) {
				for _, rec := range reg.List() {
					if rec.IgnorePropsValidation || rec.IgnoreUnusedPropTypesValidation {
						continue
					}
					used := make(map[string]bool, len(rec.UsedPropTypes))
					for _, u := range rec.UsedPropTypes {
						used[u.Name] = true
					}
					for _, name := range sortedKeys(rec.DeclaredPropTypes) {
						if used[name] {
							continue
						}
						pt := rec.DeclaredPropTypes[name]
						ctx.Reportf(reportNode(pt.Node, rec), "'%s' PropType is defined but prop is never used", name)
					}
				}
			},
		}
	},
}

// RequireDefaultProps reports optional props without a default value.
//
// Options:
//   - forbidDefaultForRequired (bool): also report required props that have
//     a default.
//   - ignoreFunctionalComponents (bool): only check classes and factories.
var RequireDefaultProps = lint.Rule{
	Name:            "require-default-props",
	Doc:             "Enforce a defaultProps definition for every prop that is not a required prop.",
	DefaultSeverity: lint.SeverityOff,
	Create: func(ctx *lint.RuleContext, reg *components.Registry, _ *components.Utils) syntax.Visitor {
		forbidRequired := ctx.BoolOption("forbidDefaultForRequired", false)
		ignoreFunctional := ctx.BoolOption("ignoreFunctionalComponents", false)

		return syntax.Visitor{
			syntax.ProgramExit: func(*syntax.Node) {
				for _, rec := range reg.List() {
					if rec.IgnorePropsValidation || rec.DefaultPropsUnresolved {
						continue
					}
					if ignoreFunctional && isStateless(rec.Node) {
						continue
					}
					for _, name := range sortedKeys(rec.DeclaredPropTypes) {
						pt := rec.DeclaredPropTypes[name]
						_, hasDefault := rec.DefaultProps[name]
						switch {
						case !pt.Required && !hasDefault:
							ctx.Reportf(reportNode(pt.Node, rec),
								"propType %q is not required, but has no corresponding defaultProps declaration.", name)
						case pt.Required && hasDefault && forbidRequired:
							ctx.Reportf(reportNode(rec.DefaultProps[name], rec),
								"propType %q is required and should not have a defaultProps declaration.", name)
						}
					}
				}
			},
		}
	},
}
