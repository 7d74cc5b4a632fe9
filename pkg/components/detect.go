// Package components detects React components in a syntax tree and
// aggregates facts about them.
//
// A Detector produces one visitor for a file. It tracks framework imports,
// classifies classes, factory objects and functions as components, and merges
// the visitors of any number of analyses and rules so that a single walk
// serves all of them. Facts are stored in a Registry keyed by node span.
package components

import (
	"log/slog"

	"github.com/gnana997/reactlint/pkg/syntax"
)

// Context is the read-only per-file input shared by detection, analyses and
// rules.
type Context struct {
	Tree     *syntax.Tree
	Scopes   *syntax.ScopeManager
	Settings Settings
	Logger   *slog.Logger
}

// NewContext analyses scopes for tree. A nil logger uses slog.Default().
func NewContext(tree *syntax.Tree, settings Settings, logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.Default()
	}
	return &Context{
		Tree:     tree,
		Scopes:   syntax.Analyze(tree),
		Settings: settings.withDefaults(),
		Logger:   logger,
	}
}

// Utils answers component questions during and after a walk.
type Utils struct {
	ctx      *Context
	reg      *Registry
	imports  *ImportRecord
	settings Settings
	wrappers []WrapperFunction
	logger   *slog.Logger
}

// Imports returns the framework import record of the file.
func (u *Utils) Imports() *ImportRecord { return u.imports }

// Settings returns the effective settings.
func (u *Utils) Settings() Settings { return u.settings }

// Scopes returns the scope analysis of the file.
func (u *Utils) Scopes() *syntax.ScopeManager { return u.ctx.Scopes }

// Tree returns the file's syntax tree.
func (u *Utils) Tree() *syntax.Tree { return u.ctx.Tree }

// GetParentComponent returns the component enclosing n: a class component,
// then a factory component, then a stateless one.
func (u *Utils) GetParentComponent(n *syntax.Node) *syntax.Node {
	if c := u.GetParentES6Component(n); c != nil {
		return c
	}
	if c := u.GetParentES5Component(n); c != nil {
		return c
	}
	return u.GetParentStatelessComponent(n)
}

// GetParentES6Component returns the nearest enclosing class if it is a class
// component.
func (u *Utils) GetParentES6Component(n *syntax.Node) *syntax.Node {
	for s := u.ctx.Scopes.ScopeOf(n); s != nil; s = s.Upper {
		if s.Kind == syntax.ScopeClass {
			if u.IsES6Component(s.Block) {
				return s.Block
			}
			return nil
		}
	}
	return nil
}

// GetParentES5Component returns the factory object whose method or property
// function encloses n.
func (u *Utils) GetParentES5Component(n *syntax.Node) *syntax.Node {
	for s := u.ctx.Scopes.ScopeOf(n); s != nil; s = s.Upper {
		if s.Kind != syntax.ScopeFunction {
			continue
		}
		holder := syntax.ParentSkipParens(s.Block)
		if holder.Is(syntax.KindPair) {
			holder = holder.Parent()
		}
		if holder.Is(syntax.KindObject) && u.IsES5Component(holder) {
			return holder
		}
	}
	return nil
}

// GetParentStatelessComponent returns the stateless component whose function
// scope encloses n, searching outward.
func (u *Utils) GetParentStatelessComponent(n *syntax.Node) *syntax.Node {
	for s := u.ctx.Scopes.ScopeOf(n); s != nil; s = s.Upper {
		if s.Kind != syntax.ScopeFunction {
			continue
		}
		if c := u.GetStatelessComponent(s.Block); c != nil {
			return c
		}
	}
	return nil
}

// Analysis builds the visitor of one analysis or rule for a file.
type Analysis func(reg *Registry, u *Utils) syntax.Visitor

// Detector owns the per-file registry and import record.
type Detector struct {
	ctx     *Context
	reg     *Registry
	imports *ImportRecord
	utils   *Utils
}

// NewDetector creates the detection state for one file.
func NewDetector(ctx *Context) *Detector {
	reg := NewRegistry()
	imports := &ImportRecord{Named: make(map[string]string)}
	settings := ctx.Settings.withDefaults()
	return &Detector{
		ctx:     ctx,
		reg:     reg,
		imports: imports,
		utils: &Utils{
			ctx:      ctx,
			reg:      reg,
			imports:  imports,
			settings: settings,
			wrappers: settings.Wrappers(),
			logger:   ctx.Logger,
		},
	}
}

// Registry returns the component registry.
func (d *Detector) Registry() *Registry { return d.reg }

// Utils returns the query utilities.
func (d *Detector) Utils() *Utils { return d.utils }

// Visitor merges import tracking, component detection and the given
// analyses, in that order, into one visitor.
func (d *Detector) Visitor(analyses ...Analysis) syntax.Visitor {
	visitors := []syntax.Visitor{d.importVisitor(), d.detectionVisitor()}
	for _, a := range analyses {
		if a != nil {
			visitors = append(visitors, a(d.reg, d.utils))
		}
	}
	return syntax.Merge(visitors...)
}

// Run walks the file once with the merged visitor and returns the registry.
func (d *Detector) Run(analyses ...Analysis) *Registry {
	syntax.Walk(d.ctx.Tree, d.Visitor(analyses...))
	return d.reg
}

func (d *Detector) importVisitor() syntax.Visitor {
	return syntax.Visitor{
		syntax.KindProgram: func(n *syntax.Node) {
			d.imports.collect(n, d.utils.settings.ImportSource)
		},
	}
}

func (d *Detector) detectionVisitor() syntax.Visitor {
	u := d.utils
	v := syntax.Visitor{
		syntax.KindCallExpression: func(n *syntax.Node) {
			if !u.IsPragmaComponentWrapper(n) {
				return
			}
			// Only the outermost call of memo(forwardRef(fn)) is recorded.
			if outer := syntax.ParentSkipParens(n); outer.Is("arguments") && u.IsPragmaComponentWrapper(outer.Parent()) {
				return
			}
			args := n.ChildByField("arguments")
			if args == nil {
				return
			}
			if first := syntax.Unparen(args.FirstNamedChild()); syntax.IsFunctionExpression(first) {
				d.reg.Add(n, Confirmed)
			}
		},
		syntax.KindClassDeclaration: d.detectClass,
		syntax.KindClass:            d.detectClass,
		syntax.KindObject: func(n *syntax.Node) {
			if u.IsES5Component(n) {
				d.reg.Add(n, Confirmed)
			}
		},
		syntax.KindThis: func(n *syntax.Node) {
			parent := n.Parent()
			if !parent.Is(syntax.KindMemberExpression) || n.Field() != "object" {
				return
			}
			c := u.GetParentStatelessComponent(n)
			if c == nil {
				return
			}
			d.ctx.Logger.Debug("poisoning function reading from this", "line", c.Line())
			d.reg.Add(c, Poisoned)
		},
	}
	for _, kind := range syntax.FunctionKinds {
		v[kind] = d.detectFunction
	}
	return v
}

func (d *Detector) detectClass(n *syntax.Node) {
	if d.utils.IsES6Component(n) {
		d.reg.Add(n, Confirmed)
	}
}

func (d *Detector) detectFunction(n *syntax.Node) {
	if syntax.IsAsync(n) && syntax.IsGenerator(n) {
		d.reg.Add(n, Poisoned)
		return
	}
	if c := d.utils.GetStatelessComponent(n); c != nil {
		d.reg.Add(c, Confirmed)
	}
}
