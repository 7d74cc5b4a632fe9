// Package syntax provides the read-only syntax tree facade used by the
// detection engine and the rules.
//
// A tree-sitter parse result is copied once into an arena of Nodes addressed
// by integer index. Parent links are index hops, so walking upward never
// touches cgo and a Tree can outlive the tree-sitter tree it was built from.
package syntax

import (
	"fmt"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// Key identifies a node by its source span. Two nodes covering the same span
// share a Key.
type Key struct {
	Start uint32
	End   uint32
}

// String renders the key as "start-end".
func (k Key) String() string {
	return fmt.Sprintf("%d-%d", k.Start, k.End)
}

// Point is a zero-based row/column position.
type Point struct {
	Row    uint32
	Column uint32
}

// Tree is an immutable arena copy of a parsed file.
type Tree struct {
	// Source is the text the tree was parsed from.
	Source []byte

	nodes []Node
}

// Node is one syntax node stored in a Tree's arena.
type Node struct {
	tree     *Tree
	id       int32
	parent   int32
	kind     string
	field    string
	named    bool
	start    uint32
	end      uint32
	startPos Point
	endPos   Point
	children []int32
}

// FromTreeSitter copies a tree-sitter tree into an arena Tree.
//
// The caller still owns tsTree and must close it; the returned Tree holds no
// references into it.
func FromTreeSitter(tsTree *ts.Tree, source []byte) *Tree {
	t := &Tree{Source: source}

	cursor := tsTree.Walk()
	defer cursor.Close()

	parents := []int32{t.add(cursor.Node(), -1, "")}
	for {
		if cursor.GotoFirstChild() {
			parents = append(parents, t.add(cursor.Node(), parents[len(parents)-1], cursor.FieldName()))
			continue
		}
		for {
			parents = parents[:len(parents)-1]
			if cursor.GotoNextSibling() {
				parents = append(parents, t.add(cursor.Node(), parents[len(parents)-1], cursor.FieldName()))
				break
			}
			if !cursor.GotoParent() {
				return t
			}
		}
	}
}

func (t *Tree) add(n *ts.Node, parent int32, field string) int32 {
	id := int32(len(t.nodes))
	start, end := n.StartPosition(), n.EndPosition()
	t.nodes = append(t.nodes, Node{
		tree:     t,
		id:       id,
		parent:   parent,
		kind:     n.Kind(),
		field:    field,
		named:    n.IsNamed(),
		start:    uint32(n.StartByte()),
		end:      uint32(n.EndByte()),
		startPos: Point{Row: uint32(start.Row), Column: uint32(start.Column)},
		endPos:   Point{Row: uint32(end.Row), Column: uint32(end.Column)},
	})
	if parent >= 0 {
		t.nodes[parent].children = append(t.nodes[parent].children, id)
	}
	return id
}

// Root returns the program node.
func (t *Tree) Root() *Node {
	if len(t.nodes) == 0 {
		return nil
	}
	return &t.nodes[0]
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// NodeAt returns the node with the given arena index.
func (t *Tree) NodeAt(id int) *Node {
	if id < 0 || id >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

// ID returns the arena index of the node.
func (n *Node) ID() int { return int(n.id) }

// Kind returns the grammar node type, e.g. "call_expression".
func (n *Node) Kind() string {
	if n == nil {
		return ""
	}
	return n.kind
}

// Field returns the field name this node occupies in its parent, or "".
func (n *Node) Field() string {
	if n == nil {
		return ""
	}
	return n.field
}

// IsNamed reports whether the node is a named grammar node rather than a token.
func (n *Node) IsNamed() bool { return n.named }

// Key returns the span key of the node.
func (n *Node) Key() Key { return Key{Start: n.start, End: n.end} }

// StartByte returns the inclusive start offset.
func (n *Node) StartByte() uint32 { return n.start }

// EndByte returns the exclusive end offset.
func (n *Node) EndByte() uint32 { return n.end }

// StartPosition returns the zero-based start position.
func (n *Node) StartPosition() Point { return n.startPos }

// EndPosition returns the zero-based end position.
func (n *Node) EndPosition() Point { return n.endPos }

// Line returns the 1-based start line.
func (n *Node) Line() int { return int(n.startPos.Row) + 1 }

// Column returns the 1-based start column.
func (n *Node) Column() int { return int(n.startPos.Column) + 1 }

// Text returns the source text covered by the node.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return string(n.tree.Source[n.start:n.end])
}

// Tree returns the arena the node belongs to.
func (n *Node) Tree() *Tree { return n.tree }

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node {
	if n == nil || n.parent < 0 {
		return nil
	}
	return &n.tree.nodes[n.parent]
}

// ChildCount returns the number of children, tokens included.
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the i-th child, tokens included.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return &n.tree.nodes[n.children[i]]
}

// Children returns all children, tokens included.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	for i, id := range n.children {
		out[i] = &n.tree.nodes[id]
	}
	return out
}

// NamedChildren returns named children, skipping comments.
func (n *Node) NamedChildren() []*Node {
	var out []*Node
	if n == nil {
		return nil
	}
	for _, id := range n.children {
		c := &n.tree.nodes[id]
		if c.named && c.kind != "comment" {
			out = append(out, c)
		}
	}
	return out
}

// FirstNamedChild returns the first named non-comment child, or nil.
func (n *Node) FirstNamedChild() *Node {
	if n == nil {
		return nil
	}
	for _, id := range n.children {
		c := &n.tree.nodes[id]
		if c.named && c.kind != "comment" {
			return c
		}
	}
	return nil
}

// ChildByField returns the first child stored under field, or nil.
func (n *Node) ChildByField(field string) *Node {
	if n == nil {
		return nil
	}
	for _, id := range n.children {
		if n.tree.nodes[id].field == field {
			return &n.tree.nodes[id]
		}
	}
	return nil
}

// ChildrenByField returns every child stored under field.
func (n *Node) ChildrenByField(field string) []*Node {
	var out []*Node
	if n == nil {
		return nil
	}
	for _, id := range n.children {
		if n.tree.nodes[id].field == field {
			out = append(out, &n.tree.nodes[id])
		}
	}
	return out
}

// HasToken reports whether a direct child token has the given kind,
// e.g. "async", "static" or "*".
func (n *Node) HasToken(kind string) bool {
	if n == nil {
		return false
	}
	for _, id := range n.children {
		c := &n.tree.nodes[id]
		if c.kind == kind {
			return true
		}
	}
	return false
}

// Is reports whether n is non-nil and its kind is one of kinds.
func (n *Node) Is(kinds ...string) bool {
	if n == nil {
		return false
	}
	for _, k := range kinds {
		if n.kind == k {
			return true
		}
	}
	return false
}

// Same reports whether a and b are the same arena node.
func Same(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.tree == b.tree && a.id == b.id
}

// Contains reports whether n's span encloses other's span.
func (n *Node) Contains(other *Node) bool {
	return n.start <= other.start && other.end <= n.end
}

// Ancestors calls fn for each ancestor of n, nearest first, until fn returns false.
func (n *Node) Ancestors(fn func(*Node) bool) {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if !fn(p) {
			return
		}
	}
}

// Unparen strips any parenthesized_expression wrappers.
func Unparen(n *Node) *Node {
	for n != nil && n.kind == "parenthesized_expression" {
		inner := n.FirstNamedChild()
		if inner == nil {
			return n
		}
		n = inner
	}
	return n
}

// ParentSkipParens returns the nearest ancestor that is not a
// parenthesized_expression.
func ParentSkipParens(n *Node) *Node {
	p := n.Parent()
	for p != nil && p.kind == "parenthesized_expression" {
		p = p.Parent()
	}
	return p
}
