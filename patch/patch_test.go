package patch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ontoforge/guidance/rdf"
	"github.com/ontoforge/guidance/rdf/turtle"
	"github.com/ontoforge/guidance/vocabulary/guidance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// driftedOntology has the failure modes the fix scripts exist for: duplicate
// labels in multiple languages, a missing comment, and an integer priority.
const driftedOntology = `@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix guidance: <https://raw.githubusercontent.com/louspringer/ontology-framework/main/guidance#> .

guidance:SyntaxRule rdfs:label "Syntax"@en, "Syntaxe"@fr ;
    guidance:hasPriority 1 .

guidance:SyntaxValidation rdfs:label "syntax validation" .
`

func TestCanonicalPatchEnforcesSingleLabelAndComment(t *testing.T) {
	g, err := turtle.Parse(driftedOntology)
	require.NoError(t, err)

	res, err := CanonicalValidationPatch().Apply(g)
	require.NoError(t, err)
	assert.True(t, res.Changed())

	for _, id := range []string{"SyntaxRule", "SemanticRule", "SyntaxValidation", "SecurityValidation"} {
		subject := guidance.Term(id)
		assert.Len(t, g.Objects(subject, rdf.RDFSLabel), 1, "%s should have exactly one label", id)
		assert.Len(t, g.Objects(subject, rdf.RDFSComment), 1, "%s should have exactly one comment", id)
	}

	// Priorities end up canonical.
	priorities := g.Objects(guidance.Term("SyntaxRule"), guidance.HasPriority)
	require.Len(t, priorities, 1)
	assert.Equal(t, rdf.NewLiteral("HIGH"), priorities[0])

	// Rules point at their targets.
	target, ok := g.FirstObject(guidance.Term("InstallationRule"), guidance.HasTarget)
	require.True(t, ok)
	assert.Equal(t, rdf.Term(guidance.Term("InstallationValidation")), target)
}

func TestCanonicalPatchIdempotent(t *testing.T) {
	g, err := turtle.Parse(driftedOntology)
	require.NoError(t, err)

	_, err = CanonicalValidationPatch().Apply(g)
	require.NoError(t, err)
	before := g.Len()

	res, err := CanonicalValidationPatch().Apply(g)
	require.NoError(t, err)
	assert.Equal(t, before, g.Len())
	// Replace slots churn (remove + re-add the same triples) but nothing new
	// appears.
	assert.Equal(t, res.Removed, res.Added)
}

func TestLastWriterWins(t *testing.T) {
	g := rdf.NewGraph()
	subject := guidance.Term("SyntaxRule")

	first := &Patch{ID: "first", Operations: []Operation{
		{subject, rdf.RDFSLabel, ActionReplace, []rdf.Term{rdf.NewLangLiteral("First", "en")}},
	}}
	second := &Patch{ID: "second", Operations: []Operation{
		{subject, rdf.RDFSLabel, ActionReplace, []rdf.Term{rdf.NewLangLiteral("Second", "en")}},
	}}

	_, err := first.Apply(g)
	require.NoError(t, err)
	_, err = second.Apply(g)
	require.NoError(t, err)

	labels := g.Objects(subject, rdf.RDFSLabel)
	require.Len(t, labels, 1)
	assert.Equal(t, rdf.Term(rdf.NewLangLiteral("Second", "en")), labels[0])
}

func TestRemoveAction(t *testing.T) {
	g := rdf.NewGraph()
	subject := guidance.Term("SyntaxRule")
	g.AddTriple(subject, guidance.HasPriority, rdf.NewLiteral("HIGH"))
	g.AddTriple(subject, guidance.HasPriority, rdf.NewLiteral("LOW"))

	p := &Patch{ID: "clear", Operations: []Operation{
		{subject, guidance.HasPriority, ActionRemove, nil},
	}}
	res, err := p.Apply(g)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Removed)
	assert.Equal(t, 0, g.Len())
}

func TestNormalizePriorities(t *testing.T) {
	g := rdf.NewGraph()
	g.AddTriple(guidance.Term("SyntaxRule"), guidance.HasPriority, rdf.NewTypedLiteral("1", rdf.XSDInteger))
	g.AddTriple(guidance.Term("SemanticRule"), guidance.HasPriority, rdf.NewLiteral("medium"))
	g.AddTriple(guidance.Term("SPORERule"), guidance.HasPriority, rdf.NewLiteral("HIGH"))
	g.AddTriple(guidance.Term("BrokenRule"), guidance.HasPriority, rdf.NewLiteral("URGENT"))

	changed, invalid := NormalizePriorities(g)
	assert.Equal(t, 2, changed)
	require.Len(t, invalid, 1)
	assert.Equal(t, rdf.Term(guidance.Term("BrokenRule")), invalid[0].Subject)

	got, ok := g.FirstObject(guidance.Term("SyntaxRule"), guidance.HasPriority)
	require.True(t, ok)
	assert.Equal(t, rdf.Term(rdf.NewLiteral("HIGH")), got)
}

func TestApplyToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guidance.ttl")
	require.NoError(t, os.WriteFile(path, []byte(driftedOntology), 0644))

	res, err := ApplyToFile(path, CanonicalValidationPatch(), Options{Backup: true})
	require.NoError(t, err)
	assert.True(t, res.Changed())

	_, err = os.Stat(path + ".bak")
	assert.NoError(t, err, "backup should exist")

	g, err := turtle.ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, g.Objects(guidance.Term("SyntaxRule"), rdf.RDFSLabel), 1)
}

func TestApplyToFileDryRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guidance.ttl")
	require.NoError(t, os.WriteFile(path, []byte(driftedOntology), 0644))

	_, err := ApplyToFile(path, CanonicalValidationPatch(), Options{DryRun: true})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, driftedOntology, string(data), "dry run must not touch the file")
}

func TestApplyToFileParseErrorAborts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.ttl")
	require.NoError(t, os.WriteFile(path, []byte("guidance:SyntaxRule rdfs:label"), 0644))

	_, err := ApplyToFile(path, CanonicalValidationPatch(), Options{})
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "guidance:SyntaxRule rdfs:label", string(data))
}
