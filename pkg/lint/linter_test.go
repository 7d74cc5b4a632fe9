package lint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/gnana997/reactlint/pkg/components"
	"github.com/gnana997/reactlint/pkg/parser"
	"github.com/gnana997/reactlint/pkg/syntax"
)

// TestMain checks that worker pools never leak goroutines.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// componentRule reports every listed component once the file is walked.
var componentRule = Rule{
	Name:            "component",
	Doc:             "Reports every component.",
	DefaultSeverity: SeverityWarn,
	Create: func(ctx *RuleContext, reg *components.Registry, u *components.Utils) syntax.Visitor {
		return syntax.Visitor{
			syntax.ProgramExit: func(*syntax.Node) {
				for _, rec := range reg.List() {
					ctx.Reportf(rec.Node, "component %s", Describe(rec).Name)
				}
			},
		}
	},
}

const twoComponents = `import React from 'react';

class Foo extends React.Component {
  render() { return <div>{this.props.a}</div>; }
}
Foo.propTypes = { a: PropTypes.string };

const Bar = React.memo(() => <span/>);
`

func newTestLinter(t *testing.T, opts Options) *Linter {
	t.Helper()
	l, err := New([]Rule{componentRule}, opts, nil)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLintSource(t *testing.T) {
	l := newTestLinter(t, Options{})

	res, err := l.LintSource("App.jsx", []byte(twoComponents))
	require.NoError(t, err)

	assert.Equal(t, "App.jsx", res.Path)
	assert.Equal(t, 2, res.Components)
	require.Len(t, res.Diagnostics, 2)

	assert.Equal(t, "component Foo", res.Diagnostics[0].Message)
	assert.Equal(t, 3, res.Diagnostics[0].Line)
	assert.Equal(t, 1, res.Diagnostics[0].Column)
	assert.Equal(t, SeverityWarn, res.Diagnostics[0].Severity)
	assert.Equal(t, "component", res.Diagnostics[0].Rule)

	assert.Equal(t, "component Bar", res.Diagnostics[1].Message)
	assert.Equal(t, 8, res.Diagnostics[1].Line)
}

func TestRuleConfiguration(t *testing.T) {
	t.Run("severity override", func(t *testing.T) {
		l := newTestLinter(t, Options{Rules: map[string]RuleConfig{"component": {Severity: SeverityError}}})
		res, err := l.LintSource("App.jsx", []byte(twoComponents))
		require.NoError(t, err)
		require.NotEmpty(t, res.Diagnostics)
		assert.Equal(t, SeverityError, res.Diagnostics[0].Severity)
	})

	t.Run("off", func(t *testing.T) {
		l := newTestLinter(t, Options{Rules: map[string]RuleConfig{"component": {Severity: SeverityOff}}})
		assert.Empty(t, l.ActiveRules())
		res, err := l.LintSource("App.jsx", []byte(twoComponents))
		require.NoError(t, err)
		assert.Empty(t, res.Diagnostics)
		assert.Equal(t, 2, res.Components)
	})

	t.Run("unknown rule", func(t *testing.T) {
		_, err := New([]Rule{componentRule}, Options{Rules: map[string]RuleConfig{"nope": {Severity: SeverityWarn}}}, nil)
		assert.ErrorIs(t, err, ErrUnknownRule)
	})

	t.Run("rule without Create", func(t *testing.T) {
		_, err := New([]Rule{{Name: "broken"}}, Options{}, nil)
		assert.Error(t, err)
	})
}

func TestLintFileUnsupported(t *testing.T) {
	l := newTestLinter(t, Options{})
	path := writeFile(t, t.TempDir(), "styles.css", "a {}")

	_, err := l.LintFile(path)
	assert.ErrorIs(t, err, parser.ErrUnsupportedFile)
}

func TestLintFileCache(t *testing.T) {
	cache := NewCache(10)
	l := newTestLinter(t, Options{Cache: cache})
	path := writeFile(t, t.TempDir(), "App.jsx", twoComponents)

	first, err := l.LintFile(path)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := l.LintFile(path)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Diagnostics, second.Diagnostics)

	stats := cache.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Entries)

	// New content misses.
	require.NoError(t, os.WriteFile(path, []byte("const x = 1;\n"), 0o644))
	third, err := l.LintFile(path)
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.Empty(t, third.Diagnostics)

	// Different options miss even with a shared cache.
	other := newTestLinter(t, Options{Cache: cache, Rules: map[string]RuleConfig{"component": {Severity: SeverityError}}})
	res, err := other.LintFile(path)
	require.NoError(t, err)
	assert.False(t, res.Cached)
}

func TestLintFileCacheUnencodableOptions(t *testing.T) {
	cache := NewCache(10)
	l := newTestLinter(t, Options{
		Cache: cache,
		Rules: map[string]RuleConfig{"component": {
			Severity: SeverityWarn,
			Options:  map[string]any{"callback": func() {}},
		}},
	})
	path := writeFile(t, t.TempDir(), "App.jsx", twoComponents)

	first, err := l.LintFile(path)
	require.NoError(t, err)
	assert.Len(t, first.Diagnostics, 2)

	second, err := l.LintFile(path)
	require.NoError(t, err)
	assert.False(t, second.Cached)
	assert.Equal(t, first.Diagnostics, second.Diagnostics)
	assert.Zero(t, cache.Stats().Entries)
}

func TestLintFiles(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a/One.jsx", "b/Two.tsx", "c/three.js", "d/Four.jsx", "e/Five.js"} {
		paths = append(paths, writeFile(t, dir, name, twoComponents))
	}
	// TypeScript without JSX support still parses plain code.
	paths = append(paths, writeFile(t, dir, "util.ts", "export const add = (a: number, b: number) => a + b;\n"))
	paths = append(paths, filepath.Join(dir, "missing.jsx"))

	l := newTestLinter(t, Options{Workers: 2})
	report, err := l.LintFiles(context.Background(), paths)
	require.NoError(t, err)

	assert.Len(t, report.Files, 6)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, filepath.Join(dir, "missing.jsx"), report.Errors[0].Path)
	assert.NotEmpty(t, report.Errors[0].Message)

	assert.Equal(t, 6, report.Stats.FilesLinted)
	assert.Equal(t, 1, report.Stats.FilesFailed)
	assert.Equal(t, 10, report.Stats.Warnings)
	assert.Equal(t, 0, report.Stats.Errors)
	assert.Equal(t, 2, report.Stats.Workers)
	assert.True(t, report.HasErrors(), "failed files count as errors")

	for i := 1; i < len(report.Files); i++ {
		assert.Less(t, report.Files[i-1].Path, report.Files[i].Path)
	}
}

func TestLintFilesEmpty(t *testing.T) {
	l := newTestLinter(t, Options{})
	report, err := l.LintFiles(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Files)
	assert.False(t, report.HasErrors())
}

func TestLintFilesCancelled(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"A.jsx", "B.jsx", "C.jsx"} {
		paths = append(paths, writeFile(t, dir, name, twoComponents))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := newTestLinter(t, Options{Workers: 1})
	_, err := l.LintFiles(ctx, paths)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestComponents(t *testing.T) {
	l := newTestLinter(t, Options{})

	src := twoComponents + `
function Baz({ b = 1 }) { return <p>{b}</p>; }
`
	comps, err := l.Components("App.jsx", []byte(src))
	require.NoError(t, err)
	require.Len(t, comps, 3)

	foo := comps[0]
	assert.Equal(t, "Foo", foo.Name)
	assert.Equal(t, KindClass, foo.Kind)
	assert.Equal(t, []string{"a"}, foo.DeclaredProps)
	assert.Equal(t, []string{"a"}, foo.UsedProps)

	bar := comps[1]
	assert.Equal(t, "Bar", bar.Name)
	assert.Equal(t, KindWrapper, bar.Kind)

	baz := comps[2]
	assert.Equal(t, "Baz", baz.Name)
	assert.Equal(t, KindFunction, baz.Kind)
	assert.Equal(t, []string{"b"}, baz.DefaultProps)
	assert.Equal(t, []string{"b"}, baz.UsedProps)
}

func TestParseSeverity(t *testing.T) {
	testCases := []struct {
		in       string
		expected Severity
		wantErr  bool
	}{
		{"off", SeverityOff, false},
		{"0", SeverityOff, false},
		{"warn", SeverityWarn, false},
		{"Warning", SeverityWarn, false},
		{"1", SeverityWarn, false},
		{"error", SeverityError, false},
		{"2", SeverityError, false},
		{"fatal", SeverityOff, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseSeverity(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, tc.expected.String(), got.String())
		})
	}
}

func TestRuleContextOptions(t *testing.T) {
	rc := &RuleContext{Options: map[string]any{
		"flag":  true,
		"names": []any{"a", 1, "b"},
		"one":   "x",
	}}
	assert.True(t, rc.BoolOption("flag", false))
	assert.True(t, rc.BoolOption("missing", true))
	assert.Equal(t, []string{"a", "b"}, rc.StringsOption("names"))
	assert.Equal(t, []string{"x"}, rc.StringsOption("one"))
	assert.Nil(t, rc.StringsOption("missing"))
}
