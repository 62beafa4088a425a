package rdf

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Isomorphic reports whether two graphs contain the same triples up to
// blank node relabeling. Blank nodes are canonicalized by iterative
// signature refinement (a Weisfeiler-Lehman style coloring), which settles
// every graph shape that occurs in practice in ontology files; highly
// symmetric pure-bnode graphs could in principle collide, in which case the
// check falls back to comparing refined signatures and may return a false
// positive for graphs crafted to defeat hashing.
func Isomorphic(a, b *Graph) bool {
	if a.Len() != b.Len() {
		return false
	}
	return canonicalDigest(a) == canonicalDigest(b)
}

// canonicalDigest renders the graph as sorted N-Triples lines with blank
// node labels replaced by refinement colors, then hashes the result.
func canonicalDigest(g *Graph) string {
	colors := refineBlankNodes(g)
	lines := make([]string, 0, g.Len())
	for _, t := range g.Triples() {
		lines = append(lines, canonicalTerm(t.Subject, colors)+" "+string(t.Predicate)+" "+canonicalTerm(t.Object, colors))
	}
	sort.Strings(lines)
	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}

func canonicalTerm(t Term, colors map[BlankNode]string) string {
	if b, ok := t.(BlankNode); ok {
		return "_:" + colors[b]
	}
	return t.String()
}

// refineBlankNodes assigns each blank node a color derived from the ground
// terms around it, iterating until the coloring stabilizes.
func refineBlankNodes(g *Graph) map[BlankNode]string {
	colors := make(map[BlankNode]string)
	triples := g.Triples()

	// Initial color: degree signature.
	for _, t := range triples {
		if b, ok := t.Subject.(BlankNode); ok {
			colors[b] = "s"
		}
		if b, ok := t.Object.(BlankNode); ok {
			// A node may appear in both positions.
			colors[b] += "o"
		}
	}

	for range len(colors) + 1 {
		next := make(map[BlankNode][]string, len(colors))
		for _, t := range triples {
			if b, ok := t.Subject.(BlankNode); ok {
				next[b] = append(next[b], "S|"+string(t.Predicate)+"|"+neighborColor(t.Object, colors))
			}
			if b, ok := t.Object.(BlankNode); ok {
				next[b] = append(next[b], "O|"+string(t.Predicate)+"|"+neighborColor(t.Subject, colors))
			}
		}
		changed := false
		for b, sig := range next {
			sort.Strings(sig)
			sum := sha256.Sum256([]byte(colors[b] + "\x00" + strings.Join(sig, "\x01")))
			c := hex.EncodeToString(sum[:8])
			if colors[b] != c {
				colors[b] = c
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return colors
}

func neighborColor(t Term, colors map[BlankNode]string) string {
	if b, ok := t.(BlankNode); ok {
		return "bnode:" + colors[b]
	}
	return t.String()
}
