package syntax

// ScopeKind classifies a lexical scope.
type ScopeKind int

const (
	ScopeModule ScopeKind = iota
	ScopeFunction
	ScopeClass
	ScopeBlock
	ScopeCatch
)

// String returns the scope kind name.
func (k ScopeKind) String() string {
	switch k {
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeClass:
		return "class"
	case ScopeBlock:
		return "block"
	case ScopeCatch:
		return "catch"
	default:
		return "unknown"
	}
}

// DefKind says how a variable was introduced.
type DefKind int

const (
	DefVariable DefKind = iota
	DefFunctionName
	DefClassName
	DefParameter
	DefImportBinding
	DefCatchClause
)

// Definition is one declaration site of a variable.
type Definition struct {
	Kind DefKind
	// Name is the declared identifier.
	Name *Node
	// Node is the declaring construct: variable_declarator, function or
	// class node, the parameter, or the import specifier/clause.
	Node *Node
}

// Variable is a name bound in a scope.
type Variable struct {
	Name       string
	Scope      *Scope
	Defs       []Definition
	References []*Reference
}

// Reference is an identifier read or written in expression position.
type Reference struct {
	Identifier *Node
	From       *Scope
	// Resolved is nil for globals and undeclared names.
	Resolved *Variable
}

// Scope is one lexical scope.
type Scope struct {
	Kind       ScopeKind
	Block      *Node
	Upper      *Scope
	Children   []*Scope
	Variables  map[string]*Variable
	References []*Reference
}

// Lookup finds name in this scope only.
func (s *Scope) Lookup(name string) *Variable {
	return s.Variables[name]
}

// Resolve finds name in this scope or the nearest enclosing one.
func (s *Scope) Resolve(name string) *Variable {
	for cur := s; cur != nil; cur = cur.Upper {
		if v, ok := cur.Variables[name]; ok {
			return v
		}
	}
	return nil
}

// VariableScope returns the nearest function or module scope, which is where
// `var` declarations land.
func (s *Scope) VariableScope() *Scope {
	cur := s
	for cur.Kind != ScopeFunction && cur.Kind != ScopeModule && cur.Upper != nil {
		cur = cur.Upper
	}
	return cur
}

func (s *Scope) declare(name *Node, def Definition) {
	if name == nil {
		return
	}
	key := name.Text()
	v, ok := s.Variables[key]
	if !ok {
		v = &Variable{Name: key, Scope: s}
		s.Variables[key] = v
	}
	def.Name = name
	v.Defs = append(v.Defs, def)
}

// ScopeManager holds the scopes of one file.
type ScopeManager struct {
	Module *Scope

	byBlock  map[int32]*Scope
	declared map[int32]bool
	refs     []*Reference
}

// Analyze builds lexical scopes for t and resolves every reference.
func Analyze(t *Tree) *ScopeManager {
	m := &ScopeManager{
		byBlock:  make(map[int32]*Scope),
		declared: make(map[int32]bool),
	}
	root := t.Root()
	if root == nil {
		m.Module = &Scope{Kind: ScopeModule, Variables: map[string]*Variable{}}
		return m
	}
	m.Module = m.newScope(ScopeModule, root, nil)
	m.hoist(root, m.Module)
	for _, c := range root.children {
		m.visit(&t.nodes[c], m.Module)
	}

	for _, ref := range m.refs {
		if v := ref.From.Resolve(ref.Identifier.Text()); v != nil {
			ref.Resolved = v
			v.References = append(v.References, ref)
		}
	}
	return m
}

// Acquire returns the scope created by block itself, or nil.
func (m *ScopeManager) Acquire(block *Node) *Scope {
	if block == nil {
		return nil
	}
	return m.byBlock[block.id]
}

// ScopeOf returns the innermost scope enclosing n (n itself included).
func (m *ScopeManager) ScopeOf(n *Node) *Scope {
	for cur := n; cur != nil; cur = cur.Parent() {
		if s, ok := m.byBlock[cur.id]; ok {
			return s
		}
	}
	return m.Module
}

// Resolve looks name up starting from the scope enclosing n.
func (m *ScopeManager) Resolve(n *Node, name string) *Variable {
	return m.ScopeOf(n).Resolve(name)
}

// IsDeclaration reports whether identifier n is a binding site rather than a
// reference.
func (m *ScopeManager) IsDeclaration(n *Node) bool {
	return m.declared[n.id]
}

func (m *ScopeManager) newScope(kind ScopeKind, block *Node, upper *Scope) *Scope {
	s := &Scope{Kind: kind, Block: block, Upper: upper, Variables: make(map[string]*Variable)}
	if upper != nil {
		upper.Children = append(upper.Children, s)
	}
	m.byBlock[block.id] = s
	return s
}

// hoist pre-declares function declarations and `var` bindings of a scope body
// so that references appearing earlier in source still resolve.
func (m *ScopeManager) hoist(body *Node, s *Scope) {
	for _, stmt := range body.NamedChildren() {
		target := stmt
		if stmt.kind == KindExportStatement {
			if d := stmt.ChildByField("declaration"); d != nil {
				target = d
			}
		}
		switch target.kind {
		case KindFunctionDeclaration, KindGeneratorDecl:
			m.declareName(s, target.ChildByField("name"), Definition{Kind: DefFunctionName, Node: target})
		case KindClassDeclaration:
			m.declareName(s, target.ChildByField("name"), Definition{Kind: DefClassName, Node: target})
		case "variable_declaration", "lexical_declaration":
			for _, decl := range target.NamedChildren() {
				if decl.kind == KindVariableDeclarator {
					m.declarePattern(s, decl.ChildByField("name"), Definition{Kind: DefVariable, Node: decl})
				}
			}
		case KindImportStatement:
			m.declareImports(s, target)
		}
	}
}

func (m *ScopeManager) declareName(s *Scope, name *Node, def Definition) {
	if name == nil || m.declared[name.id] {
		return
	}
	m.declared[name.id] = true
	s.declare(name, def)
}

// declarePattern declares every binding identifier inside a destructuring
// pattern. Default values and computed keys are left for the normal visit.
func (m *ScopeManager) declarePattern(s *Scope, p *Node, def Definition) {
	if p == nil {
		return
	}
	switch p.kind {
	case KindIdentifier, "shorthand_property_identifier_pattern":
		m.declareName(s, p, def)
	case "object_pattern", "array_pattern":
		for _, c := range p.NamedChildren() {
			m.declarePattern(s, c, def)
		}
	case "pair_pattern":
		m.declarePattern(s, p.ChildByField("value"), def)
	case "assignment_pattern", "object_assignment_pattern":
		m.declarePattern(s, p.ChildByField("left"), def)
	case "rest_pattern":
		m.declarePattern(s, p.FirstNamedChild(), def)
	case "required_parameter", "optional_parameter":
		m.declarePattern(s, p.ChildByField("pattern"), def)
	}
}

func (m *ScopeManager) declareImports(s *Scope, imp *Node) {
	for _, c := range imp.NamedChildren() {
		if c.kind != "import_clause" {
			continue
		}
		for _, part := range c.NamedChildren() {
			switch part.kind {
			case KindIdentifier:
				m.declareName(s, part, Definition{Kind: DefImportBinding, Node: c})
			case "namespace_import":
				m.declareName(s, part.FirstNamedChild(), Definition{Kind: DefImportBinding, Node: part})
			case "named_imports":
				for _, spec := range part.NamedChildren() {
					if spec.kind != "import_specifier" {
						continue
					}
					local := spec.ChildByField("alias")
					if local == nil {
						local = spec.ChildByField("name")
					}
					m.declareName(s, local, Definition{Kind: DefImportBinding, Node: spec})
				}
			}
		}
	}
}

func (m *ScopeManager) declareParams(s *Scope, fn *Node) {
	for _, p := range FunctionParams(fn) {
		m.declarePattern(s, p, Definition{Kind: DefParameter, Node: p})
	}
}

func (m *ScopeManager) visitChildren(n *Node, s *Scope) {
	for _, c := range n.children {
		m.visit(&n.tree.nodes[c], s)
	}
}

func (m *ScopeManager) visit(n *Node, s *Scope) {
	switch n.kind {
	case KindIdentifier, "shorthand_property_identifier":
		if !m.declared[n.id] && isReferencePosition(n) {
			ref := &Reference{Identifier: n, From: s}
			s.References = append(s.References, ref)
			m.refs = append(m.refs, ref)
		}
		return

	case KindFunctionDeclaration, KindGeneratorDecl:
		m.declareName(s, n.ChildByField("name"), Definition{Kind: DefFunctionName, Node: n})
		m.visitFunction(n, s)
		return

	case KindFunctionExpression, KindFunctionLegacy, KindGeneratorFunction, KindArrowFunction, KindMethodDefinition:
		m.visitFunction(n, s)
		return

	case KindClassDeclaration, KindClass:
		name := n.ChildByField("name")
		if n.kind == KindClassDeclaration {
			m.declareName(s, name, Definition{Kind: DefClassName, Node: n})
		}
		cs := m.newScope(ScopeClass, n, s)
		if name != nil {
			m.declared[name.id] = true
			cs.declare(name, Definition{Kind: DefClassName, Node: n})
		}
		m.visitChildren(n, cs)
		return

	case "statement_block":
		if IsFunction(n.Parent()) && n.field == "body" {
			break
		}
		bs := m.newScope(ScopeBlock, n, s)
		m.hoistLexical(n, bs)
		m.visitChildren(n, bs)
		return

	case "for_statement", "for_in_statement", "switch_statement":
		bs := m.newScope(ScopeBlock, n, s)
		if n.kind == "for_in_statement" && n.ChildByField("kind") != nil {
			target := bs
			if n.ChildByField("kind").Text() == "var" {
				target = s.VariableScope()
			}
			m.declarePattern(target, n.ChildByField("left"), Definition{Kind: DefVariable, Node: n})
		}
		m.visitChildren(n, bs)
		return

	case "catch_clause":
		cs := m.newScope(ScopeCatch, n, s)
		m.declarePattern(cs, n.ChildByField("parameter"), Definition{Kind: DefCatchClause, Node: n})
		m.visitChildren(n, cs)
		return

	case "variable_declaration":
		target := s.VariableScope()
		for _, decl := range n.NamedChildren() {
			if decl.kind == KindVariableDeclarator {
				m.declarePattern(target, decl.ChildByField("name"), Definition{Kind: DefVariable, Node: decl})
			}
		}

	case "lexical_declaration":
		for _, decl := range n.NamedChildren() {
			if decl.kind == KindVariableDeclarator {
				m.declarePattern(s, decl.ChildByField("name"), Definition{Kind: DefVariable, Node: decl})
			}
		}

	case KindImportStatement:
		m.declareImports(m.Module, n)
		return
	}

	m.visitChildren(n, s)
}

func (m *ScopeManager) visitFunction(fn *Node, s *Scope) {
	// Computed method keys belong to the enclosing scope.
	if fn.kind == KindMethodDefinition {
		if key := fn.ChildByField("name"); key != nil && key.kind == "computed_property_name" {
			m.visit(key, s)
		}
	}

	fs := m.newScope(ScopeFunction, fn, s)
	if fn.kind != KindFunctionDeclaration && fn.kind != KindGeneratorDecl && fn.kind != KindMethodDefinition {
		if name := FunctionName(fn); name != nil {
			m.declareName(fs, name, Definition{Kind: DefFunctionName, Node: fn})
		}
	}
	m.declareParams(fs, fn)

	body := FunctionBody(fn)
	if body != nil && body.kind == "statement_block" {
		m.hoist(body, fs)
	}
	for _, c := range fn.children {
		child := &fn.tree.nodes[c]
		if fn.kind == KindMethodDefinition && child.field == "name" {
			continue
		}
		m.visit(child, fs)
	}
}

// hoistLexical pre-declares block-level functions, classes and lexical
// bindings. `var` declarations are left to the visit so they reach the
// function scope.
func (m *ScopeManager) hoistLexical(block *Node, s *Scope) {
	for _, stmt := range block.NamedChildren() {
		switch stmt.kind {
		case KindFunctionDeclaration, KindGeneratorDecl:
			m.declareName(s, stmt.ChildByField("name"), Definition{Kind: DefFunctionName, Node: stmt})
		case KindClassDeclaration:
			m.declareName(s, stmt.ChildByField("name"), Definition{Kind: DefClassName, Node: stmt})
		case "lexical_declaration":
			for _, decl := range stmt.NamedChildren() {
				if decl.kind == KindVariableDeclarator {
					m.declarePattern(s, decl.ChildByField("name"), Definition{Kind: DefVariable, Node: decl})
				}
			}
		}
	}
}

// isReferencePosition filters identifiers that name things without reading a
// binding: labels, JSX attribute names and lowercase intrinsic JSX tags.
func isReferencePosition(n *Node) bool {
	p := n.Parent()
	if p == nil {
		return true
	}
	switch p.kind {
	case "labeled_statement", "break_statement", "continue_statement":
		return false
	case "jsx_opening_element", "jsx_closing_element", "jsx_self_closing_element":
		text := n.Text()
		return text != "" && !(text[0] >= 'a' && text[0] <= 'z')
	}
	return true
}
