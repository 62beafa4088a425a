package turtle

import (
	"errors"
	"testing"

	"github.com/ontoforge/guidance/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const guidanceNS = "https://example.org/guidance#"

func TestParsePrefixedTriples(t *testing.T) {
	input := `@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix guidance: <https://example.org/guidance#> .

guidance:SyntaxRule a guidance:ValidationRule ;
    rdfs:label "Syntax Rule"@en ;
    rdfs:comment "Validates syntax rules and patterns"@en ;
    guidance:hasPriority "HIGH" .
`
	g, err := Parse(input)
	require.NoError(t, err)
	assert.Equal(t, 4, g.Len())

	rule := rdf.NewIRI(guidanceNS + "SyntaxRule")
	label, ok := g.FirstObject(rule, rdf.RDFSLabel)
	require.True(t, ok)
	assert.Equal(t, rdf.NewLangLiteral("Syntax Rule", "en"), label)

	types := g.Objects(rule, rdf.RDFType)
	require.Len(t, types, 1)
	assert.Equal(t, rdf.NewIRI(guidanceNS+"ValidationRule"), types[0])
}

func TestParseObjectLists(t *testing.T) {
	input := `@prefix g: <https://example.org/guidance#> .
g:Module g:imports g:Core, g:Validation, g:Security .
`
	g, err := Parse(input)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len())
	assert.Len(t, g.Objects(rdf.NewIRI(guidanceNS+"Module"), rdf.IRI(guidanceNS+"imports")), 3)
}

func TestParseBlankNodePropertyList(t *testing.T) {
	input := `@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix g: <https://example.org/guidance#> .
g:RuleShape a sh:NodeShape ;
    sh:property [
        sh:path g:hasPriority ;
        sh:minCount 1 ;
        sh:maxCount 1
    ] .
`
	g, err := Parse(input)
	require.NoError(t, err)
	assert.Equal(t, 5, g.Len())

	shape := rdf.NewIRI(guidanceNS + "RuleShape")
	prop, ok := g.FirstObject(shape, rdf.IRI("http://www.w3.org/ns/shacl#property"))
	require.True(t, ok)
	require.Equal(t, rdf.KindBlankNode, prop.Kind())

	minCount, ok := g.FirstObject(prop, rdf.IRI("http://www.w3.org/ns/shacl#minCount"))
	require.True(t, ok)
	assert.Equal(t, rdf.NewTypedLiteral("1", rdf.XSDInteger), minCount)
}

func TestParseCollection(t *testing.T) {
	input := `@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix g: <https://example.org/guidance#> .
g:PriorityShape sh:in ( "HIGH" "MEDIUM" "LOW" ) .
`
	g, err := Parse(input)
	require.NoError(t, err)

	head, ok := g.FirstObject(rdf.NewIRI(guidanceNS+"PriorityShape"), rdf.IRI("http://www.w3.org/ns/shacl#in"))
	require.True(t, ok)

	var items []rdf.Term
	for !rdf.RDFNil.Equal(head) {
		item, ok := g.FirstObject(head, rdf.RDFFirst)
		require.True(t, ok)
		items = append(items, item)
		head, ok = g.FirstObject(head, rdf.RDFRest)
		require.True(t, ok)
	}
	require.Len(t, items, 3)
	assert.Equal(t, rdf.NewLiteral("HIGH"), items[0])
	assert.Equal(t, rdf.NewLiteral("LOW"), items[2])
}

func TestParseLiteralForms(t *testing.T) {
	input := `@prefix g: <https://example.org/guidance#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
g:x g:int 42 ;
    g:neg -7 ;
    g:dec 3.14 ;
    g:bool true ;
    g:typed "2024-01-01"^^xsd:date ;
    g:escaped "line one\nline two" ;
    g:long """multi
line""" .
`
	g, err := Parse(input)
	require.NoError(t, err)
	x := rdf.NewIRI(guidanceNS + "x")

	get := func(local string) rdf.Term {
		o, ok := g.FirstObject(x, rdf.IRI(guidanceNS+local))
		require.True(t, ok, local)
		return o
	}

	assert.Equal(t, rdf.NewTypedLiteral("42", rdf.XSDInteger), get("int"))
	assert.Equal(t, rdf.NewTypedLiteral("-7", rdf.XSDInteger), get("neg"))
	assert.Equal(t, rdf.NewTypedLiteral("3.14", rdf.XSDDecimal), get("dec"))
	assert.Equal(t, rdf.NewTypedLiteral("true", rdf.XSDBoolean), get("bool"))
	assert.Equal(t, rdf.NewTypedLiteral("2024-01-01", rdf.XSDDate), get("typed"))
	assert.Equal(t, rdf.NewLiteral("line one\nline two"), get("escaped"))
	assert.Equal(t, rdf.NewLiteral("multi\nline"), get("long"))
}

func TestParseSPARQLStyleDirectives(t *testing.T) {
	input := `PREFIX g: <https://example.org/guidance#>
g:a g:b g:c .
`
	g, err := Parse(input)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len())
}

func TestParseBase(t *testing.T) {
	input := `@base <https://example.org/guidance#> .
<SyntaxRule> a <ValidationRule> .
`
	g, err := Parse(input)
	require.NoError(t, err)
	assert.True(t, g.Has(rdf.NewTriple(
		rdf.NewIRI(guidanceNS+"SyntaxRule"),
		rdf.RDFType,
		rdf.NewIRI(guidanceNS+"ValidationRule"),
	)))
}

func TestParseErrorsCarryPosition(t *testing.T) {
	cases := []struct {
		name  string
		input string
		line  int
	}{
		{"undeclared prefix", "g:a g:b g:c .\n", 1},
		{"missing dot", "@prefix g: <https://example.org/g#> .\ng:a g:b g:c\ng:d g:e g:f .\n", 3},
		{"unterminated string", "@prefix g: <https://example.org/g#> .\ng:a g:b \"oops .\n", 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.input)
			require.Error(t, err)
			var perr *ParseError
			require.True(t, errors.As(err, &perr), "error should be a ParseError, got %T", err)
			assert.Equal(t, tc.line, perr.Line)
		})
	}
}

func TestParseSharedBlankNodeLabels(t *testing.T) {
	input := `@prefix g: <https://example.org/guidance#> .
_:n g:label "one" .
_:n g:comment "two" .
`
	g, err := Parse(input)
	require.NoError(t, err)
	assert.Len(t, g.Subjects(), 1, "same label must map to the same node")
}

func TestParseComments(t *testing.T) {
	input := `# header comment
@prefix g: <https://example.org/guidance#> . # trailing
g:a g:b g:c . # done
`
	g, err := Parse(input)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len())
}
