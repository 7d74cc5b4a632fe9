package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/reactlint/pkg/syntax"
)

// hookCalls runs detection and returns each call's text with its recognition
// result for the given expected names.
func hookCalls(t *testing.T, src string, expected ...string) map[string]bool {
	t.Helper()
	d := detect(t, src)
	out := make(map[string]bool)
	for _, call := range nodesOf(d.ctx.Tree, syntax.KindCallExpression) {
		out[call.Text()] = d.Utils().IsReactHookCall(call, expected...)
	}
	return out
}

func TestHookShadowedByLocalFunction(t *testing.T) {
	// Import from a foreign module: never a framework hook.
	got := hookCalls(t, `
import { useState } from 'x';
function useColor() {
  function useState() { return null; }
  return useState();
}
`)
	assert.False(t, got["useState()"])

	// Same shape importing from react: the local declaration shadows it.
	got = hookCalls(t, `
import { useState } from 'react';
function useColor() {
  function useState() { return null; }
  return useState();
}
function Other() {
  return useState(1);
}
`)
	assert.False(t, got["useState()"])
	assert.True(t, got["useState(1)"])
}

func TestHookCallForms(t *testing.T) {
	src := `
import React, { useState as useLocal, useEffect, memo } from 'react';
function Comp() {
  React.useState(0);
  useLocal(1);
  useEffect(() => {});
  React.notAHook();
  memo(2);
  useUnknown(3);
  return null;
}
`
	got := hookCalls(t, src)
	assert.True(t, got["React.useState(0)"])
	assert.True(t, got["useLocal(1)"])
	assert.True(t, got["useEffect(() => {})"])
	assert.False(t, got["React.notAHook()"])
	assert.False(t, got["memo(2)"])
	assert.False(t, got["useUnknown(3)"])
}

func TestHookExpectedNamesResolveAliases(t *testing.T) {
	src := `
import React, { useState as useLocal, useEffect } from 'react';
function Comp() {
  React.useState(0);
  useLocal(1);
  useEffect(() => {});
  return null;
}
`
	got := hookCalls(t, src, "useState")
	assert.True(t, got["React.useState(0)"])
	assert.True(t, got["useLocal(1)"], "alias resolves back to useState")
	assert.False(t, got["useEffect(() => {})"])
}

func TestHookNamespaceImportAndShadowedDefault(t *testing.T) {
	got := hookCalls(t, `
import * as R from 'react';
function A() { R.useRef(); return null; }
function B() { const R = {}; R.useMemo(); return null; }
`)
	assert.True(t, got["R.useRef()"])
	assert.False(t, got["R.useMemo()"], "local R shadows the import")
}

func TestImportRecord(t *testing.T) {
	d := detect(t, `
import React, { useState, useEffect as useFx, Fragment } from 'react';
import { useQuery } from 'react-query';
`)
	imports := d.Utils().Imports()
	require.NotNil(t, imports)
	assert.Equal(t, "React", imports.Default)
	assert.Equal(t, map[string]string{"useState": "useState", "useFx": "useEffect", "Fragment": "Fragment"}, imports.Named)
	assert.Equal(t, map[string]string{"useState": "useState", "useFx": "useEffect"}, imports.HookImports())
}

func TestDefaultImportedByName(t *testing.T) {
	src := `
import { default as R, useEffect } from 'react';
function Comp() {
  R.useState(10);
  useEffect(() => {});
  return null;
}
`
	got := hookCalls(t, src)
	assert.True(t, got["R.useState(10)"])
	assert.True(t, got["useEffect(() => {})"])

	imports := detect(t, src).Utils().Imports()
	require.NotNil(t, imports)
	assert.Equal(t, "R", imports.Default)
	assert.Equal(t, map[string]string{"useEffect": "useEffect"}, imports.Named)

	// A real default import wins over the renamed specifier.
	imports = detect(t, `import React, { default as R } from 'react';`).Utils().Imports()
	require.NotNil(t, imports)
	assert.Equal(t, "React", imports.Default)
	assert.Empty(t, imports.Named)
}

func TestIsHookName(t *testing.T) {
	assert.True(t, IsHookName("useState"))
	assert.True(t, IsHookName("useX"))
	assert.False(t, IsHookName("use"))
	assert.False(t, IsHookName("user"))
	assert.False(t, IsHookName("Usestate"))
}
