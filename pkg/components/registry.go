package components

import (
	"slices"
	"strings"

	"github.com/gnana997/reactlint/pkg/syntax"
)

// Confidence levels of a component record.
const (
	// Poisoned records are never listed, whatever is added later.
	Poisoned = 0
	// Tentative records only carry attributes up to a listed ancestor.
	Tentative = 1
	// Confirmed records are listed.
	Confirmed = 2
)

// PropType is one declared prop.
type PropType struct {
	Name     string
	Required bool
	// Type is a short description such as "string", "func" or "shape".
	// Empty when unknown.
	Type string
	Node *syntax.Node
}

// UsedProp is one observed prop access.
type UsedProp struct {
	Name string
	// AllNames is the accessed chain, e.g. ["user", "name"] for
	// props.user.name. Nil for single-level access.
	AllNames []string
	Node     *syntax.Node
}

func (u UsedProp) equivalent(o UsedProp) bool {
	if u.Name != o.Name {
		return false
	}
	if u.AllNames == nil || o.AllNames == nil {
		return u.AllNames == nil && o.AllNames == nil
	}
	return strings.Join(u.AllNames, ".") == strings.Join(o.AllNames, ".")
}

// Attributes are the facts analyses attach to a component.
type Attributes struct {
	DeclaredPropTypes               map[string]*PropType
	IgnorePropsValidation           bool
	IgnoreUnusedPropTypesValidation bool
	UsedPropTypes                   []UsedProp
	DefaultProps                    map[string]*syntax.Node
	DefaultPropsUnresolved          bool
	SetStateUsages                  []*syntax.Node
	// Flags holds rule-specific booleans.
	Flags map[string]bool
}

// Patch is a partial attribute write. Nil fields are left untouched.
type Patch struct {
	DeclaredPropTypes               map[string]*PropType
	IgnorePropsValidation           *bool
	IgnoreUnusedPropTypesValidation *bool
	// UsedPropTypes are appended without duplicates.
	UsedPropTypes          []UsedProp
	DefaultProps           map[string]*syntax.Node
	DefaultPropsUnresolved *bool
	SetStateUsages         []*syntax.Node
	// Flags are written key by key.
	Flags map[string]bool
}

// Bool returns a pointer for Patch fields.
func Bool(v bool) *bool { return &v }

// Record is the registry entry for one component candidate.
type Record struct {
	Node       *syntax.Node
	Confidence int
	Attributes
}

func (r *Record) apply(p Patch) {
	if p.DeclaredPropTypes != nil {
		r.DeclaredPropTypes = p.DeclaredPropTypes
	}
	if p.IgnorePropsValidation != nil {
		r.IgnorePropsValidation = *p.IgnorePropsValidation
	}
	if p.IgnoreUnusedPropTypesValidation != nil {
		r.IgnoreUnusedPropTypesValidation = *p.IgnoreUnusedPropTypesValidation
	}
	if p.UsedPropTypes != nil {
		r.UsedPropTypes = mergeUsedProps(r.UsedPropTypes, p.UsedPropTypes)
	}
	if p.DefaultProps != nil {
		r.DefaultProps = p.DefaultProps
	}
	if p.DefaultPropsUnresolved != nil {
		r.DefaultPropsUnresolved = *p.DefaultPropsUnresolved
	}
	if p.SetStateUsages != nil {
		r.SetStateUsages = p.SetStateUsages
	}
	if len(p.Flags) > 0 {
		if r.Flags == nil {
			r.Flags = make(map[string]bool, len(p.Flags))
		}
		for k, v := range p.Flags {
			r.Flags[k] = v
		}
	}
}

func mergeUsedProps(dst, src []UsedProp) []UsedProp {
	for _, u := range src {
		if !slices.ContainsFunc(dst, u.equivalent) {
			dst = append(dst, u)
		}
	}
	return dst
}

// Registry stores component records for one file, keyed by node span.
type Registry struct {
	records map[syntax.Key]*Record
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[syntax.Key]*Record)}
}

// Add records node with the given confidence. A zero on either side pins the
// record to zero; otherwise the higher confidence wins. A nil node is
// ignored and yields nil.
func (r *Registry) Add(node *syntax.Node, confidence int) *Record {
	if node == nil {
		return nil
	}
	key := node.Key()
	rec, ok := r.records[key]
	if !ok {
		rec = &Record{Node: node, Confidence: confidence}
		r.records[key] = rec
		return rec
	}
	if rec.Confidence == Poisoned || confidence == Poisoned {
		rec.Confidence = Poisoned
	} else {
		rec.Confidence = max(rec.Confidence, confidence)
	}
	return rec
}

// Get returns the record for node if its confidence is at least Tentative.
func (r *Registry) Get(node *syntax.Node) *Record {
	if node == nil {
		return nil
	}
	rec := r.records[node.Key()]
	if rec == nil || rec.Confidence < Tentative {
		return nil
	}
	return rec
}

// Set merges p into the record of node or of its nearest ancestor with a
// visible record. The write is dropped when there is none.
func (r *Registry) Set(node *syntax.Node, p Patch) {
	for cur := node; cur != nil; cur = cur.Parent() {
		if rec := r.Get(cur); rec != nil {
			rec.apply(p)
			return
		}
	}
}

// List folds the used props of unconfirmed records into their nearest
// confirmed ancestor and returns the confirmed records in source order.
func (r *Registry) List() []*Record {
	pending := make(map[*Record][]UsedProp)
	for _, rec := range r.records {
		if rec.Confidence >= Confirmed || len(rec.UsedPropTypes) == 0 {
			continue
		}
		owner := r.confirmedAncestor(rec.Node)
		if owner == nil {
			continue
		}
		var carried []UsedProp
		for _, u := range rec.UsedPropTypes {
			if !isParamDestructuring(u.Node) {
				carried = append(carried, u)
			}
		}
		pending[owner] = mergeUsedProps(pending[owner], carried)
	}

	out := make([]*Record, 0, len(r.records))
	for _, rec := range r.records {
		if rec.Confidence < Confirmed {
			continue
		}
		if extra := pending[rec]; len(extra) > 0 {
			rec.UsedPropTypes = mergeUsedProps(rec.UsedPropTypes, extra)
		}
		out = append(out, rec)
	}
	sortRecords(out)
	return out
}

// Length counts confirmed records.
func (r *Registry) Length() int {
	n := 0
	for _, rec := range r.records {
		if rec.Confidence >= Confirmed {
			n++
		}
	}
	return n
}

// All returns every record, poisoned ones included, in source order.
func (r *Registry) All() []*Record {
	out := make([]*Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	sortRecords(out)
	return out
}

func (r *Registry) confirmedAncestor(n *syntax.Node) *Record {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if cur.Kind() == syntax.KindDecorator {
			return nil
		}
		if rec := r.records[cur.Key()]; rec != nil && rec.Confidence >= Confirmed {
			return rec
		}
	}
	return nil
}

// isParamDestructuring reports whether n is a property of an object pattern
// that sits in a function's formal parameters. Those props are attributed to
// the component directly and must not be folded a second time from an inner
// tentative record.
func isParamDestructuring(n *syntax.Node) bool {
	if n == nil {
		return false
	}
	inPattern := false
	for cur := n; cur != nil; cur = cur.Parent() {
		switch cur.Kind() {
		case "object_pattern", "array_pattern", "pair_pattern",
			"shorthand_property_identifier_pattern", "object_assignment_pattern",
			"assignment_pattern", "rest_pattern", "required_parameter", "optional_parameter":
			inPattern = true
		case "formal_parameters":
			return inPattern
		default:
			if syntax.IsFunction(cur) {
				return inPattern
			}
			if inPattern {
				return false
			}
		}
	}
	return false
}

func sortRecords(recs []*Record) {
	slices.SortFunc(recs, func(a, b *Record) int {
		if a.Node.StartByte() != b.Node.StartByte() {
			return int(a.Node.StartByte()) - int(b.Node.StartByte())
		}
		return int(b.Node.EndByte()) - int(a.Node.EndByte())
	})
}
