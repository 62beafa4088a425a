package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNS = "https://example.org/guidance#"

func TestGraphSetSemantics(t *testing.T) {
	g := NewGraph()
	s := NewIRI(testNS + "SyntaxRule")

	require.True(t, g.AddTriple(s, RDFSLabel, NewLangLiteral("Syntax Rule", "en")))
	assert.False(t, g.AddTriple(s, RDFSLabel, NewLangLiteral("Syntax Rule", "en")),
		"duplicate insert must be a no-op")
	assert.Equal(t, 1, g.Len())
}

func TestGraphRemoveMatching(t *testing.T) {
	g := NewGraph()
	s := NewIRI(testNS + "SyntaxRule")
	other := NewIRI(testNS + "SemanticRule")

	g.AddTriple(s, RDFSLabel, NewLiteral("old label one"))
	g.AddTriple(s, RDFSLabel, NewLangLiteral("old label two", "de"))
	g.AddTriple(s, RDFSComment, NewLiteral("keep me"))
	g.AddTriple(other, RDFSLabel, NewLiteral("unrelated"))

	removed := g.RemoveMatching(s, RDFSLabel, nil)
	assert.Equal(t, 2, removed)
	assert.Empty(t, g.Match(s, RDFSLabel, nil))
	assert.Len(t, g.Match(s, RDFSComment, nil), 1)
	assert.Len(t, g.Match(other, RDFSLabel, nil), 1)
}

func TestGraphMatchWildcards(t *testing.T) {
	g := NewGraph()
	rule := NewIRI(testNS + "SyntaxRule")
	target := NewIRI(testNS + "SyntaxValidation")

	g.AddTriple(rule, RDFType, NewIRI(testNS+"ValidationRule"))
	g.AddTriple(rule, NewIRI(testNS+"hasTarget"), target)
	g.AddTriple(target, RDFType, NewIRI(testNS+"ValidationTarget"))

	assert.Len(t, g.Match(nil, RDFType, nil), 2)
	assert.Len(t, g.Match(rule, "", nil), 2)
	assert.Len(t, g.Match(nil, "", target), 1)
}

func TestLiteralEquality(t *testing.T) {
	plain := NewLiteral("hello")
	typed := NewTypedLiteral("hello", XSDString)
	assert.True(t, plain.Equal(typed), "xsd:string and plain literals are the same term")

	tagged := NewLangLiteral("hello", "en")
	assert.False(t, plain.Equal(tagged))
	assert.False(t, NewTypedLiteral("5", XSDInteger).Equal(NewTypedLiteral("5", XSDDecimal)))
}

func TestGraphMergeRenamesBlankNodes(t *testing.T) {
	a := NewGraph()
	b := NewGraph()

	ba := a.NewBNode()
	a.AddTriple(ba, RDFSLabel, NewLiteral("from a"))

	bb := b.NewBNode()
	b.AddTriple(bb, RDFSLabel, NewLiteral("from b"))

	a.Merge(b)
	require.Equal(t, 2, a.Len())

	// Both labels survived under distinct subjects.
	subjects := a.Subjects()
	assert.Len(t, subjects, 2)
}

func TestGraphObjectsDeterministic(t *testing.T) {
	g := NewGraph()
	s := NewIRI(testNS + "rule")
	g.AddTriple(s, RDFSLabel, NewLiteral("b"))
	g.AddTriple(s, RDFSLabel, NewLiteral("a"))

	objs := g.Objects(s, RDFSLabel)
	require.Len(t, objs, 2)
	assert.Equal(t, NewLiteral("a"), objs[0])

	first, ok := g.FirstObject(s, RDFSLabel)
	require.True(t, ok)
	assert.Equal(t, NewLiteral("a"), first)
}

func TestPrefixMapCompactExpand(t *testing.T) {
	pm := NewPrefixMap()
	pm.Bind("guidance", testNS)

	iri, ok := pm.Expand("guidance:SyntaxRule")
	require.True(t, ok)
	assert.Equal(t, IRI(testNS+"SyntaxRule"), iri)

	qname, ok := pm.Compact(IRI(testNS + "SyntaxRule"))
	require.True(t, ok)
	assert.Equal(t, "guidance:SyntaxRule", qname)

	_, ok = pm.Expand("unknown:thing")
	assert.False(t, ok)

	// Locals with characters outside the safe set stay as full IRIs.
	_, ok = pm.Compact(IRI(testNS + "has/slash"))
	assert.False(t, ok)

	// A leading hyphen is not a legal prefixed-name start.
	_, ok = pm.Compact(IRI(testNS + "-rule"))
	assert.False(t, ok)

	qname, ok = pm.Compact(IRI(testNS + "rule-1"))
	require.True(t, ok)
	assert.Equal(t, "guidance:rule-1", qname)
}

func TestPrefixMapDefaults(t *testing.T) {
	pm := NewPrefixMap()

	iri, ok := pm.Expand("sh:NodeShape")
	require.True(t, ok)
	assert.Equal(t, IRI(SHNamespace+"NodeShape"), iri)

	iri, ok = pm.Expand("guidance:ValidationRule")
	require.True(t, ok)
	assert.Equal(t, IRI(GuidanceNamespace+"ValidationRule"), iri)
}

func TestLiteralStringEscapes(t *testing.T) {
	assert.Equal(t, `"bellend"`, NewLiteral("bell\aend").String())
	assert.Equal(t, `"tab\there"`, NewLiteral("tab\there").String())
	assert.Equal(t, `"line\nbreak"@en`, NewLangLiteral("line\nbreak", "en").String())
	assert.Equal(t, `"back\\slash \"quoted\""`, NewLiteral(`back\slash "quoted"`).String())
	assert.Equal(t, `"del"`, NewLiteral("del\x7f").String())
}
