package props

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gnana997/reactlint/pkg/components"
	"github.com/gnana997/reactlint/pkg/parser"
)

// collect parses src and runs detection with every prop collector.
func collect(t *testing.T, src string, dialect parser.Dialect) *components.Registry {
	t.Helper()
	pm := parser.NewParserManager(nil)
	t.Cleanup(func() { pm.Close() })
	tree, err := pm.Parse([]byte(src), dialect)
	require.NoError(t, err)
	d := components.NewDetector(components.NewContext(tree, components.DefaultSettings(), nil))
	return d.Run(Analyses()...)
}

// only returns the single listed component.
func only(t *testing.T, reg *components.Registry) *components.Record {
	t.Helper()
	list := reg.List()
	require.Len(t, list, 1)
	return list[0]
}

func declaredNames(rec *components.Record) []string {
	var out []string
	for name := range rec.DeclaredPropTypes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func usedNames(rec *components.Record) []string {
	var out []string
	for _, u := range rec.UsedPropTypes {
		out = append(out, u.Name)
	}
	sort.Strings(out)
	return out
}

func defaultNames(rec *components.Record) []string {
	var out []string
	for name := range rec.DefaultProps {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
