package sparql

import (
	"encoding/json"
	"testing"

	"github.com/ontoforge/guidance/rdf"
	"github.com/ontoforge/guidance/rdf/turtle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix g: <https://example.org/guidance#> .

g:SyntaxRule a g:ValidationRule ;
    rdfs:label "Syntax Rule"@en ;
    g:hasPriority "HIGH" ;
    g:hasTarget g:SyntaxValidation .

g:SemanticRule a g:ValidationRule ;
    rdfs:label "Semantic Rule"@en ;
    g:hasPriority "MEDIUM" ;
    g:hasTarget g:SemanticValidation .

g:SecurityRule a g:ValidationRule ;
    g:hasPriority "HIGH" .

g:SPORERule rdfs:subClassOf g:SecurityRule .
g:SecurityRule rdfs:subClassOf g:ValidationRule .
`

func load(t *testing.T) *rdf.Graph {
	t.Helper()
	g, err := turtle.Parse(fixture)
	require.NoError(t, err)
	return g
}

func TestSelectBasic(t *testing.T) {
	g := load(t)
	res, err := QueryGraph(g, `
PREFIX g: <https://example.org/guidance#>
SELECT ?rule WHERE { ?rule a g:ValidationRule . }`)
	require.NoError(t, err)
	require.Equal(t, FormSelect, res.Form)
	assert.Equal(t, []string{"rule"}, res.Solutions.Vars)
	assert.Len(t, res.Solutions.Bindings, 3)
}

func TestSelectJoin(t *testing.T) {
	g := load(t)
	res, err := QueryGraph(g, `
PREFIX g: <https://example.org/guidance#>
PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>
SELECT ?rule ?label WHERE {
    ?rule a g:ValidationRule ;
        g:hasPriority "HIGH" ;
        rdfs:label ?label .
}`)
	require.NoError(t, err)
	// SecurityRule has HIGH priority but no label, so only SyntaxRule joins.
	require.Len(t, res.Solutions.Bindings, 1)
	assert.Equal(t, rdf.Term(rdf.NewLangLiteral("Syntax Rule", "en")), res.Solutions.Bindings[0]["label"])
}

func TestSelectDistinctAndOrder(t *testing.T) {
	g := load(t)
	res, err := QueryGraph(g, `
PREFIX g: <https://example.org/guidance#>
SELECT DISTINCT ?p WHERE { ?rule g:hasPriority ?p . } ORDER BY ?p`)
	require.NoError(t, err)
	require.Len(t, res.Solutions.Bindings, 2)
	assert.Equal(t, rdf.Term(rdf.NewLiteral("HIGH")), res.Solutions.Bindings[0]["p"])
	assert.Equal(t, rdf.Term(rdf.NewLiteral("MEDIUM")), res.Solutions.Bindings[1]["p"])
}

func TestSelectLimitOffset(t *testing.T) {
	g := load(t)
	res, err := QueryGraph(g, `
PREFIX g: <https://example.org/guidance#>
SELECT ?rule WHERE { ?rule a g:ValidationRule . } ORDER BY ?rule LIMIT 1 OFFSET 1`)
	require.NoError(t, err)
	require.Len(t, res.Solutions.Bindings, 1)
	assert.Equal(t, rdf.Term(rdf.IRI("https://example.org/guidance#SemanticRule")), res.Solutions.Bindings[0]["rule"])
}

func TestTransitivePath(t *testing.T) {
	g := load(t)
	res, err := QueryGraph(g, `
PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>
PREFIX g: <https://example.org/guidance#>
SELECT ?super WHERE { g:SPORERule rdfs:subClassOf+ ?super . } ORDER BY ?super`)
	require.NoError(t, err)
	require.Len(t, res.Solutions.Bindings, 2)
	assert.Equal(t, rdf.Term(rdf.IRI("https://example.org/guidance#SecurityRule")), res.Solutions.Bindings[0]["super"])
	assert.Equal(t, rdf.Term(rdf.IRI("https://example.org/guidance#ValidationRule")), res.Solutions.Bindings[1]["super"])
}

func TestFilterNotExists(t *testing.T) {
	g := load(t)
	res, err := QueryGraph(g, `
PREFIX g: <https://example.org/guidance#>
PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>
SELECT ?rule WHERE {
    ?rule a g:ValidationRule .
    FILTER NOT EXISTS { ?rule rdfs:label ?l }
}`)
	require.NoError(t, err)
	require.Len(t, res.Solutions.Bindings, 1)
	assert.Equal(t, rdf.Term(rdf.IRI("https://example.org/guidance#SecurityRule")), res.Solutions.Bindings[0]["rule"])
}

func TestFilterComparisonAndRegex(t *testing.T) {
	g := load(t)
	res, err := QueryGraph(g, `
PREFIX g: <https://example.org/guidance#>
SELECT ?rule WHERE {
    ?rule g:hasPriority ?p .
    FILTER (?p = "HIGH")
}`)
	require.NoError(t, err)
	assert.Len(t, res.Solutions.Bindings, 2)

	res, err = QueryGraph(g, `
PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>
SELECT ?s WHERE {
    ?s rdfs:label ?label .
    FILTER REGEX(?label, "^Sem")
}`)
	require.NoError(t, err)
	require.Len(t, res.Solutions.Bindings, 1)
	assert.Equal(t, rdf.Term(rdf.IRI("https://example.org/guidance#SemanticRule")), res.Solutions.Bindings[0]["s"])
}

func TestAsk(t *testing.T) {
	g := load(t)

	res, err := QueryGraph(g, `
PREFIX g: <https://example.org/guidance#>
ASK { g:SyntaxRule g:hasPriority "HIGH" . }`)
	require.NoError(t, err)
	assert.True(t, res.Boolean)

	res, err = QueryGraph(g, `
PREFIX g: <https://example.org/guidance#>
ASK { g:SyntaxRule g:hasPriority "LOW" . }`)
	require.NoError(t, err)
	assert.False(t, res.Boolean)
}

func TestCircularHierarchyCheck(t *testing.T) {
	g := load(t)
	violations, err := RunChecks(g)
	require.NoError(t, err)
	assert.Empty(t, violations, "fixture has no cycles and no domains")

	// Introduce a cycle.
	g.AddTriple(
		rdf.IRI("https://example.org/guidance#ValidationRule"),
		rdf.RDFSSubClassOf,
		rdf.IRI("https://example.org/guidance#SPORERule"),
	)
	violations, err = RunChecks(g)
	require.NoError(t, err)
	assert.NotEmpty(t, violations)
	assert.Equal(t, "ClassHierarchyCheck", violations[0].Check)
}

func TestPropertyDomainCheck(t *testing.T) {
	g := load(t)
	g.AddTriple(
		rdf.IRI("https://example.org/guidance#hasTarget"),
		rdf.RDFSDomain,
		rdf.IRI("https://example.org/guidance#NotAClass"),
	)
	violations, err := RunChecks(g)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, "PropertyDomainCheck", violations[0].Check)

	// Declaring the class clears the diagnostic.
	g.AddTriple(
		rdf.IRI("https://example.org/guidance#NotAClass"),
		rdf.RDFType,
		rdf.OWLClass,
	)
	violations, err = RunChecks(g)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestResultJSON(t *testing.T) {
	g := load(t)
	res, err := QueryGraph(g, `
PREFIX g: <https://example.org/guidance#>
PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>
SELECT ?label WHERE { g:SyntaxRule rdfs:label ?label . }`)
	require.NoError(t, err)

	data, err := res.JSON()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	head := doc["head"].(map[string]any)
	assert.Equal(t, []any{"label"}, head["vars"].([]any))

	bindings := doc["results"].(map[string]any)["bindings"].([]any)
	require.Len(t, bindings, 1)
	lit := bindings[0].(map[string]any)["label"].(map[string]any)
	assert.Equal(t, "literal", lit["type"])
	assert.Equal(t, "Syntax Rule", lit["value"])
	assert.Equal(t, "en", lit["xml:lang"])
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"",
		"SELECT WHERE { ?s ?p ?o }",
		"SELECT ?s WHERE { ?s ?p }",
		"SELECT ?s WHERE { ?s nope:p ?o }",
		"SELECT ?s WHERE { ?s ?p+ ?o }",
	}
	for _, q := range cases {
		_, err := Parse(q)
		assert.Error(t, err, q)
	}
}
