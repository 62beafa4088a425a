package rdf

import (
	"fmt"
	"sort"
)

// Graph is a mutable set of triples with graph-scoped blank nodes and an
// attached prefix map. Duplicate inserts are no-ops.
type Graph struct {
	triples   map[string]Triple
	bySubject map[string]map[string]struct{}
	prefixes  *PrefixMap
	bnodeSeq  int
}

// NewGraph constructs an empty graph with the default prefix bindings.
func NewGraph() *Graph {
	return &Graph{
		triples:   make(map[string]Triple),
		bySubject: make(map[string]map[string]struct{}),
		prefixes:  NewPrefixMap(),
	}
}

// Len returns the number of triples in the graph.
func (g *Graph) Len() int { return len(g.triples) }

// Prefixes returns the graph's prefix map.
func (g *Graph) Prefixes() *PrefixMap { return g.prefixes }

// Bind associates a prefix with a namespace IRI for serialization.
func (g *Graph) Bind(prefix, namespace string) {
	g.prefixes.Bind(prefix, namespace)
}

// NewBNode mints a fresh blank node unique within this graph.
func (g *Graph) NewBNode() BlankNode {
	g.bnodeSeq++
	return BlankNode(fmt.Sprintf("b%d", g.bnodeSeq))
}

// Add inserts a triple. It returns false if the triple was already present.
func (g *Graph) Add(t Triple) bool {
	k := t.key()
	if _, ok := g.triples[k]; ok {
		return false
	}
	g.triples[k] = t
	sk := t.Subject.String()
	if g.bySubject[sk] == nil {
		g.bySubject[sk] = make(map[string]struct{})
	}
	g.bySubject[sk][k] = struct{}{}
	return true
}

// AddTriple inserts a (subject, predicate, object) statement.
func (g *Graph) AddTriple(s Term, p IRI, o Term) bool {
	return g.Add(NewTriple(s, p, o))
}

// Has reports whether the exact triple is present.
func (g *Graph) Has(t Triple) bool {
	_, ok := g.triples[t.key()]
	return ok
}

// Remove deletes a triple. It returns false if the triple was not present.
func (g *Graph) Remove(t Triple) bool {
	k := t.key()
	if _, ok := g.triples[k]; !ok {
		return false
	}
	delete(g.triples, k)
	sk := t.Subject.String()
	delete(g.bySubject[sk], k)
	if len(g.bySubject[sk]) == 0 {
		delete(g.bySubject, sk)
	}
	return true
}

// Match returns all triples matching the pattern. A nil subject or object
// and an empty predicate act as wildcards.
func (g *Graph) Match(s Term, p IRI, o Term) []Triple {
	var out []Triple
	for _, t := range g.candidates(s) {
		if matches(t, s, p, o) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].sortKey() < out[j].sortKey() })
	return out
}

// RemoveMatching deletes every triple matching the pattern and reports how
// many were removed. This is the "delete all triples for the targeted
// predicate on that subject" primitive of the patch applier.
func (g *Graph) RemoveMatching(s Term, p IRI, o Term) int {
	matched := g.Match(s, p, o)
	for _, t := range matched {
		g.Remove(t)
	}
	return len(matched)
}

// candidates narrows the scan with the subject index when possible.
func (g *Graph) candidates(s Term) []Triple {
	if s == nil {
		out := make([]Triple, 0, len(g.triples))
		for _, t := range g.triples {
			out = append(out, t)
		}
		return out
	}
	keys := g.bySubject[s.String()]
	out := make([]Triple, 0, len(keys))
	for k := range keys {
		out = append(out, g.triples[k])
	}
	return out
}

func matches(t Triple, s Term, p IRI, o Term) bool {
	if s != nil && !t.Subject.Equal(s) {
		return false
	}
	if p != "" && t.Predicate != p {
		return false
	}
	if o != nil && !t.Object.Equal(o) {
		return false
	}
	return true
}

// Triples returns all triples in deterministic order.
func (g *Graph) Triples() []Triple {
	out := make([]Triple, 0, len(g.triples))
	for _, t := range g.triples {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].sortKey() < out[j].sortKey() })
	return out
}

// Subjects returns the distinct subjects in deterministic order.
func (g *Graph) Subjects() []Term {
	seen := make(map[string]Term, len(g.bySubject))
	for _, t := range g.triples {
		seen[t.Subject.String()] = t.Subject
	}
	out := make([]Term, 0, len(seen))
	for _, s := range seen {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return termSortKey(out[i]) < termSortKey(out[j]) })
	return out
}

// Objects returns the objects of all (s, p, *) triples in deterministic order.
func (g *Graph) Objects(s Term, p IRI) []Term {
	var out []Term
	for _, t := range g.Match(s, p, nil) {
		out = append(out, t.Object)
	}
	return out
}

// FirstObject returns one object of (s, p, *), preferring the
// deterministically smallest, or false when none exists.
func (g *Graph) FirstObject(s Term, p IRI) (Term, bool) {
	objs := g.Objects(s, p)
	if len(objs) == 0 {
		return nil, false
	}
	return objs[0], true
}

// Merge adds every triple of other into g. Blank nodes from other are
// renamed to stay disjoint from g's own blank nodes.
func (g *Graph) Merge(other *Graph) {
	rename := make(map[BlankNode]BlankNode)
	mapped := func(t Term) Term {
		b, ok := t.(BlankNode)
		if !ok {
			return t
		}
		if r, ok := rename[b]; ok {
			return r
		}
		r := g.NewBNode()
		rename[b] = r
		return r
	}
	for _, t := range other.Triples() {
		g.AddTriple(mapped(t.Subject), t.Predicate, mapped(t.Object))
	}
	for prefix, ns := range other.prefixes.Bindings() {
		g.prefixes.Bind(prefix, ns)
	}
}

// Clone returns a deep copy sharing no state with g.
func (g *Graph) Clone() *Graph {
	out := NewGraph()
	for _, t := range g.triples {
		out.Add(t)
	}
	for prefix, ns := range g.prefixes.Bindings() {
		out.prefixes.Bind(prefix, ns)
	}
	out.bnodeSeq = g.bnodeSeq
	return out
}
