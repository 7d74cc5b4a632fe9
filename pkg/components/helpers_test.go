package components

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gnana997/reactlint/pkg/parser"
	"github.com/gnana997/reactlint/pkg/syntax"
)

// parseJSX parses src with the JavaScript grammar.
func parseJSX(t *testing.T, src string) *syntax.Tree {
	t.Helper()
	pm := parser.NewParserManager(nil)
	t.Cleanup(func() { pm.Close() })
	tree, err := pm.Parse([]byte(src), parser.DialectJavaScript)
	require.NoError(t, err)
	return tree
}

// detect parses src and runs detection with default settings.
func detect(t *testing.T, src string, analyses ...Analysis) *Detector {
	t.Helper()
	return detectWith(t, src, DefaultSettings(), analyses...)
}

func detectWith(t *testing.T, src string, settings Settings, analyses ...Analysis) *Detector {
	t.Helper()
	tree := parseJSX(t, src)
	d := NewDetector(NewContext(tree, settings, nil))
	d.Run(analyses...)
	return d
}

// nodesOf returns every node of kind in source order.
func nodesOf(tree *syntax.Tree, kind string) []*syntax.Node {
	var out []*syntax.Node
	syntax.Inspect(tree.Root(), func(n *syntax.Node) bool {
		if n.Kind() == kind {
			out = append(out, n)
		}
		return true
	})
	return out
}

// firstFunction returns the first function-like node in source order.
func firstFunction(t *testing.T, tree *syntax.Tree) *syntax.Node {
	t.Helper()
	var found *syntax.Node
	syntax.Inspect(tree.Root(), func(n *syntax.Node) bool {
		if found == nil && syntax.IsFunction(n) {
			found = n
		}
		return found == nil
	})
	require.NotNil(t, found, "no function in source")
	return found
}

// listedTexts returns the source text of every listed component.
func listedTexts(reg *Registry) []string {
	var out []string
	for _, rec := range reg.List() {
		out = append(out, rec.Node.Text())
	}
	return out
}
