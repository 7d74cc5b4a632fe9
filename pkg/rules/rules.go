// Package rules holds the shipped component rules.
//
// Every rule reads the component registry filled by detection and the prop
// collectors; most report from a syntax.ProgramExit handler once the whole
// file has been seen.
package rules

import (
	"cmp"
	"maps"
	"slices"

	"github.com/gnana997/reactlint/pkg/components"
	"github.com/gnana997/reactlint/pkg/lint"
	"github.com/gnana997/reactlint/pkg/syntax"
)

// All returns the shipped rules sorted by name.
func All() []lint.Rule {
	all := []lint.Rule{
		HookUseState,
		NoMultiComp,
		NoThisInSFC,
		NoUnusedPropTypes,
		PropTypes,
		RequireDefaultProps,
	}
	slices.SortFunc(all, func(a, b lint.Rule) int { return cmp.Compare(a.Name, b.Name) })
	return all
}

// Names returns the names of the shipped rules.
func Names() []string {
	var names []string
	for _, r := range All() {
		names = append(names, r.Name)
	}
	return names
}

// isStateless reports whether a listed component is a function or a wrapper
// call rather than a class or factory object.
func isStateless(n *syntax.Node) bool {
	return !syntax.IsClass(n) && !n.Is(syntax.KindObject)
}

// reportNode returns where to report about a prop, falling back to the
// component.
func reportNode(n *syntax.Node, rec *components.Record) *syntax.Node {
	if n != nil {
		return n
	}
	return rec.Node
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
