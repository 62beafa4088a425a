package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsomorphicGroundGraphs(t *testing.T) {
	a := NewGraph()
	b := NewGraph()
	s := NewIRI(testNS + "SyntaxRule")

	a.AddTriple(s, RDFSLabel, NewLangLiteral("Syntax Rule", "en"))
	a.AddTriple(s, RDFType, NewIRI(testNS+"ValidationRule"))

	b.AddTriple(s, RDFType, NewIRI(testNS+"ValidationRule"))
	b.AddTriple(s, RDFSLabel, NewLangLiteral("Syntax Rule", "en"))

	assert.True(t, Isomorphic(a, b))

	b.AddTriple(s, RDFSComment, NewLiteral("extra"))
	assert.False(t, Isomorphic(a, b))
}

func TestIsomorphicBlankNodeRelabeling(t *testing.T) {
	shape := NewIRI(testNS + "RuleShape")
	path := NewIRI(testNS + "hasPriority")

	build := func(label string) *Graph {
		g := NewGraph()
		constraint := NewBlankNode(label)
		g.AddTriple(shape, NewIRI(testNS+"property"), constraint)
		g.AddTriple(constraint, NewIRI(testNS+"path"), path)
		g.AddTriple(constraint, NewIRI(testNS+"minCount"), NewTypedLiteral("1", XSDInteger))
		return g
	}

	assert.True(t, Isomorphic(build("c1"), build("zz")))
}

func TestNotIsomorphicDifferentStructure(t *testing.T) {
	a := NewGraph()
	b := NewGraph()
	p := NewIRI(testNS + "p")

	// a: two bnodes pointing at different literals.
	n1, n2 := a.NewBNode(), a.NewBNode()
	a.AddTriple(n1, p, NewLiteral("x"))
	a.AddTriple(n2, p, NewLiteral("y"))

	// b: one bnode carrying both.
	m := b.NewBNode()
	b.AddTriple(m, p, NewLiteral("x"))
	b.AddTriple(m, p, NewLiteral("y"))

	assert.False(t, Isomorphic(a, b))
}
