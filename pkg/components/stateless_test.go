package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/reactlint/pkg/syntax"
)

func TestStatelessScenarios(t *testing.T) {
	testCases := []struct {
		name   string
		src    string
		listed bool
	}{
		{"capitalised declaration", `function Foo() { return <div/>; }`, true},
		{"lower-case declaration", `function foo() { return <div/>; }`, false},
		{"capitalised arrow", `const Foo = () => <div/>;`, true},
		{"lower-case arrow", `const foo = () => <div/>;`, false},
		{"declaration returning null", `function Empty() { return null; }`, true},
		{"declaration without return", `function Noop() { doSomething(); }`, false},
		{"default export arrow", `export default () => <div/>;`, true},
		{"default export arrow returning null", `export default () => null;`, false},
		{"capitalised assignment", `let Foo; Foo = function() { return <div/>; };`, true},
		{"lower-case assignment", `let foo; foo = () => <div/>;`, false},
		{"object method", `const obj = { Foo() { return <div/>; } };`, true},
		{"lower-case object method", `const obj = { renderFoo() { return <div/>; } };`, false},
		{"object property arrow", `const obj = { Foo: () => <div/> };`, true},
		{"property returning only null", `const obj = { Foo: () => null };`, false},
		{"curried arrow", `const withX = () => (props) => <div/>;`, false},
		{"capitalised curried arrow", `const WithX = () => (props) => <div/>;`, true},
		{"returned function expression", `const Make = function() { return function() { return <div/>; }; };`, true},
		{"curried assignment", `let Hoc; Hoc = () => (props) => <div/>;`, true},
		{"returned non-markup", `function make() { return () => 42; }`, false},
		{"mixed returns", `function Mixed(x) { if (x) { return 1; } return <div/>; }`, false},
		{"conditional markup", `function Cond(x) { return x ? <a/> : null; }`, true},
		{"logical markup", `function Logic(x) { return x && <a/>; }`, true},
		{"markup variable", `function Var() { const el = <a/>; return el; }`, true},
		{"create element", `function CE() { return React.createElement('div'); }`, true},
		{"module exports", `module.exports = () => <div/>;`, true},
		{"lower-case member assignment", `exports.foo = () => <div/>;`, false},
		{"capitalised member assignment", `exports.Foo = () => <div/>;`, true},
		{"map callback", `items.map(item => <li/>);`, false},
		{"computed key non-markup", `const o = { [a.b]: () => 1 };`, false},
		{"sequence tail in assignment", `Foo = (0, () => <div/>);`, true},
		{"sequence tail in call argument", `x((0, () => <div/>));`, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := detect(t, tc.src)
			if tc.listed {
				assert.Equal(t, 1, d.Registry().Length(), "expected one component in %q", tc.src)
			} else {
				assert.Equal(t, 0, d.Registry().Length(), "expected no component in %q", tc.src)
			}
		})
	}
}

func TestStatelessReturnsItself(t *testing.T) {
	for _, src := range []string{
		`function Foo() { return <div/>; }`,
		`const Foo = () => <div/>;`,
	} {
		d := detect(t, src)
		fn := firstFunction(t, d.ctx.Tree)
		assert.True(t, syntax.Same(fn, d.Utils().GetStatelessComponent(fn)), src)

		list := d.Registry().List()
		require.Len(t, list, 1)
		assert.True(t, syntax.Same(fn, list[0].Node))
		assert.Equal(t, Confirmed, list[0].Confidence)
	}
}

func TestLowerCaseDeclaratorIsRejected(t *testing.T) {
	d := detect(t, `const foo = () => <div/>;`)
	fn := firstFunction(t, d.ctx.Tree)
	s := newSite(d.Utils(), fn)

	for _, c := range statelessLadder {
		result, ok := c.match(s)
		if !ok {
			continue
		}
		assert.Equal(t, "variable-declarator", c.name, "rejection must come from the declarator case")
		assert.Nil(t, result)
		return
	}
	t.Fatal("no ladder case matched")
}

func TestMemoReturnsWrapperCall(t *testing.T) {
	src := `React.memo(function Foo() { return <div/>; });`
	d := detect(t, src)

	fn := firstFunction(t, d.ctx.Tree)
	got := d.Utils().GetStatelessComponent(fn)
	require.NotNil(t, got)
	assert.Equal(t, syntax.KindCallExpression, got.Kind())
	assert.Equal(t, "React.memo(function Foo() { return <div/>; })", got.Text())

	list := d.Registry().List()
	require.Len(t, list, 1)
	assert.True(t, syntax.Same(got, list[0].Node))
}

func TestNestedWrappersReturnOutermostCall(t *testing.T) {
	src := `const Foo = React.memo(React.forwardRef((props, ref) => <div ref={ref}/>));`
	d := detect(t, src)

	fn := nodesOf(d.ctx.Tree, syntax.KindArrowFunction)[0]
	got := d.Utils().GetStatelessComponent(fn)
	require.NotNil(t, got)
	assert.Contains(t, got.Text(), "React.memo(")
}

func TestDestructuredWrapper(t *testing.T) {
	testCases := []struct {
		name   string
		src    string
		listed int
	}{
		{"named import", `import { memo } from 'react'; const A = memo(() => <div/>);`, 1},
		{"destructured from pragma", `const { forwardRef } = React; const A = forwardRef((p, r) => <div/>);`, 1},
		{"require", `const { memo } = require('react'); const A = memo(() => <div/>);`, 1},
		{"foreign memo", `import { memo } from 'other'; export default memo(() => <div/>);`, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := detect(t, tc.src)
			var calls int
			for _, rec := range d.Registry().List() {
				if rec.Node.Kind() == syntax.KindCallExpression {
					calls++
				}
			}
			assert.Equal(t, tc.listed, calls)
		})
	}
}

func TestConfiguredWrapper(t *testing.T) {
	settings := DefaultSettings()
	settings.WrapperFunctions = []WrapperFunction{
		{Property: "observer"},
		{Property: "styled", Object: "lib"},
	}
	src := `
const A = observer(() => <div/>);
const B = lib.styled(() => <span/>);
const c = other.styled(() => <span/>);
`
	d := detectWith(t, src, settings)
	texts := listedTexts(d.Registry())
	assert.Contains(t, texts, "observer(() => <div/>)")
	assert.Contains(t, texts, "lib.styled(() => <span/>)")
	assert.Len(t, texts, 2)
}

func TestWrapperOfDetectedComponent(t *testing.T) {
	src := `
const Foo = () => <div/>;
const Bar = React.memo(props => <Foo {...props}/>);
`
	d := detect(t, src)
	texts := listedTexts(d.Registry())
	assert.Equal(t, []string{"() => <div/>"}, texts, "memo around an existing component is not a new one")
	assert.Equal(t, []string{"Foo"}, d.Utils().DetectedComponentNames())
}

func TestAsyncGeneratorPoisoned(t *testing.T) {
	d := detect(t, `async function* Foo() { return <div/>; }`)
	assert.Equal(t, 0, d.Registry().Length())
	all := d.Registry().All()
	require.Len(t, all, 1)
	assert.Equal(t, Poisoned, all[0].Confidence)
}

func TestThisPropertyPoisons(t *testing.T) {
	d := detect(t, `const Foo = function() { return <div>{this.props.x}</div>; };`)
	assert.Equal(t, 0, d.Registry().Length())
	assert.Nil(t, d.Registry().Get(firstFunction(t, d.ctx.Tree)))
}

func TestClassMembersAreNotStateless(t *testing.T) {
	src := `
class Foo extends React.Component {
  renderItem = () => <li/>;
  getRenderer() {
    return () => <tr/>;
  }
  render() {
    return <ul>{this.renderItem()}</ul>;
  }
}
`
	d := detect(t, src)
	list := d.Registry().List()
	require.Len(t, list, 1)
	assert.Equal(t, syntax.KindClassDeclaration, list[0].Node.Kind())
}

func TestReturnsMarkupModes(t *testing.T) {
	testCases := []struct {
		src       string
		strict    bool
		allowNull bool
		onlyNull  bool
	}{
		{`function f() { return <a/>; }`, true, true, false},
		{`function f() { return null; }`, false, true, true},
		{`function f() { return; }`, false, true, true},
		{`function f() { if (x) return null; return <a/>; }`, true, true, false},
		{`function f() { return x ? <a/> : 'text'; }`, false, true, false},
		{`function f() { return x || <a/>; }`, false, true, false},
		{`function f() { return (0, <a/>); }`, true, true, false},
		{`function f() { doIt(); }`, false, false, false},
		{`function f() { const g = () => 1; return <a/>; }`, true, true, false},
		{`const f = () => (<a/>);`, true, true, false},
	}
	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			d := detect(t, tc.src)
			fn := firstFunction(t, d.ctx.Tree)
			u := d.Utils()
			assert.Equal(t, tc.strict, u.ReturnsMarkup(fn, MarkupOptions{}), "strict")
			assert.Equal(t, tc.allowNull, u.ReturnsMarkupOrNull(fn), "allow null")
			assert.Equal(t, tc.onlyNull, u.ReturnsOnlyNull(fn), "only null")
		})
	}
}
