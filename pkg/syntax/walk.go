package syntax

import "strings"

// ExitSuffix marks a visitor key that fires after a node's subtree has been
// visited, e.g. "program" + ExitSuffix.
const ExitSuffix = ":exit"

// ProgramExit fires once, after the whole file has been walked.
const ProgramExit = "program" + ExitSuffix

// Handler is invoked for one node during a walk.
type Handler func(n *Node)

// Visitor maps a node kind (or "<kind>:exit") to its handler.
type Visitor map[string]Handler

// Merge combines visitors into one. For a key present in several visitors,
// every handler runs on the same node in the order the visitors were passed.
// Nil visitors are skipped.
func Merge(visitors ...Visitor) Visitor {
	handlers := make(map[string][]Handler)
	var keys []string
	for _, v := range visitors {
		for key, h := range v {
			if h == nil {
				continue
			}
			if _, ok := handlers[key]; !ok {
				keys = append(keys, key)
			}
			handlers[key] = append(handlers[key], h)
		}
	}

	merged := make(Visitor, len(keys))
	for _, key := range keys {
		hs := handlers[key]
		if len(hs) == 1 {
			merged[key] = hs[0]
			continue
		}
		merged[key] = func(n *Node) {
			for _, h := range hs {
				h(n)
			}
		}
	}
	return merged
}

// Walk performs a single depth-first pass over t, calling the entry handler
// for each named node before its children and the exit handler after them.
func Walk(t *Tree, v Visitor) {
	root := t.Root()
	if root == nil || len(v) == 0 {
		return
	}
	exits := make(map[string]Handler)
	for key, h := range v {
		if kind, ok := strings.CutSuffix(key, ExitSuffix); ok {
			exits[kind] = h
		}
	}
	walk(root, v, exits)
}

func walk(n *Node, enter Visitor, exits map[string]Handler) {
	if n.named {
		if h := enter[n.kind]; h != nil {
			h(n)
		}
	}
	for _, id := range n.children {
		walk(&n.tree.nodes[id], enter, exits)
	}
	if n.named {
		if h := exits[n.kind]; h != nil {
			h(n)
		}
	}
}

// Inspect calls fn for n and each descendant in pre-order. Returning false
// from fn skips that node's children.
func Inspect(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, id := range n.children {
		Inspect(&n.tree.nodes[id], fn)
	}
}
