package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/reactlint/pkg/syntax"
)

func TestClassComponents(t *testing.T) {
	src := `
import React, { PureComponent } from 'react';
const Base = React.Component;
class A extends Base { render() { return <a/>; } }
class P extends PureComponent { render() { return <p/>; } }
class C extends Other { render() { return <c/>; } }
const Anon = class extends React.Component { render() { return null; } };
`
	d := detect(t, src)
	list := d.Registry().List()
	require.Len(t, list, 3)
	assert.Equal(t, syntax.KindClassDeclaration, list[0].Node.Kind())
	assert.Equal(t, syntax.KindClassDeclaration, list[1].Node.Kind())
	assert.Equal(t, syntax.KindClass, list[2].Node.Kind())
	assert.ElementsMatch(t, []string{"A", "P"}, d.Utils().DetectedComponentNames())
}

func TestFactoryComponents(t *testing.T) {
	testCases := []struct {
		name     string
		settings func(*Settings)
		src      string
		expected int
	}{
		{
			name:     "global factory",
			src:      `const Foo = createReactClass({ render() { return <div/>; } });`,
			expected: 1,
		},
		{
			name:     "pragma member",
			src:      `import React from 'react'; const Foo = React.createReactClass({ render() { return <div/>; } });`,
			expected: 1,
		},
		{
			name:     "shadowed pragma",
			src:      `const React = {}; const Foo = React.createReactClass({ render() { return <div/>; } });`,
			expected: 0,
		},
		{
			name:     "two arguments",
			src:      `const Foo = createReactClass({ render() { return <div/>; } }, extra);`,
			expected: 0,
		},
		{
			name:     "configured factory",
			settings: func(s *Settings) { s.CreateClass = "makeClass" },
			src:      `const Foo = makeClass({ render() { return <div/>; } });`,
			expected: 1,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			settings := DefaultSettings()
			if tc.settings != nil {
				tc.settings(&settings)
			}
			d := detectWith(t, tc.src, settings)
			assert.Equal(t, tc.expected, d.Registry().Length())
		})
	}
}

func TestParentComponentLookup(t *testing.T) {
	src := `
class Foo extends React.Component { render() { return <div/>; } }
const Bar = createReactClass({ render() { return <span/>; } });
function Baz() { return <p/>; }
function helper() { return 1; }
`
	d := detect(t, src)
	u := d.Utils()
	tree := d.ctx.Tree

	find := func(name string) *syntax.Node {
		for _, n := range nodesOf(tree, "jsx_self_closing_element") {
			if n.ChildByField("name").Text() == name {
				return n
			}
		}
		t.Fatalf("no element %s", name)
		return nil
	}

	div := find("div")
	require.NotNil(t, u.GetParentComponent(div))
	assert.Equal(t, syntax.KindClassDeclaration, u.GetParentComponent(div).Kind())
	assert.Nil(t, u.GetParentES5Component(div))

	span := find("span")
	require.NotNil(t, u.GetParentComponent(span))
	assert.Equal(t, syntax.KindObject, u.GetParentComponent(span).Kind())
	assert.Nil(t, u.GetParentES6Component(span))

	p := find("p")
	parent := u.GetParentComponent(p)
	require.NotNil(t, parent)
	assert.Equal(t, "function Baz() { return <p/>; }", parent.Text())

	one := nodesOf(tree, "number")[0]
	assert.Nil(t, u.GetParentComponent(one))
}

func TestAnalysesShareOneWalk(t *testing.T) {
	src := `
function Foo(props) { return <div>{props.a}</div>; }
function bar() { return 1; }
`
	var order []string
	var seenOnExit []string
	var programExits int

	first := func(reg *Registry, u *Utils) syntax.Visitor {
		return syntax.Visitor{
			syntax.KindFunctionDeclaration: func(n *syntax.Node) {
				order = append(order, "first:"+syntax.FunctionName(n).Text())
			},
			syntax.KindFunctionDeclaration + syntax.ExitSuffix: func(n *syntax.Node) {
				if reg.Get(n) != nil {
					seenOnExit = append(seenOnExit, syntax.FunctionName(n).Text())
				}
			},
		}
	}
	second := func(reg *Registry, u *Utils) syntax.Visitor {
		return syntax.Visitor{
			syntax.KindFunctionDeclaration: func(n *syntax.Node) {
				order = append(order, "second:"+syntax.FunctionName(n).Text())
			},
			syntax.ProgramExit: func(*syntax.Node) {
				programExits++
				assert.Equal(t, 1, reg.Length())
			},
		}
	}

	d := detect(t, src, first, nil, second)
	assert.Equal(t, []string{"first:Foo", "second:Foo", "first:bar", "second:bar"}, order)
	assert.Equal(t, []string{"Foo"}, seenOnExit)
	assert.Equal(t, 1, programExits)
	assert.Equal(t, 1, d.Registry().Length())
}

func TestSettingsDefaults(t *testing.T) {
	var empty Settings
	s := empty.withDefaults()
	assert.Equal(t, DefaultPragma, s.Pragma)
	assert.Equal(t, DefaultCreateClass, s.CreateClass)
	assert.Equal(t, DefaultImportSource, s.ImportSource)

	custom := Settings{Pragma: "Preact", WrapperFunctions: []WrapperFunction{{Property: "observer"}, {Property: "wrap", Object: PragmaObject}}}
	wrappers := custom.withDefaults().Wrappers()
	assert.Contains(t, wrappers, WrapperFunction{Property: "observer"})
	assert.Contains(t, wrappers, WrapperFunction{Property: "wrap", Object: "Preact"})
	assert.Contains(t, wrappers, WrapperFunction{Property: "memo", Object: "Preact"})
	assert.Contains(t, wrappers, WrapperFunction{Property: "forwardRef", Object: "Preact"})
}
