package patch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ontoforge/guidance/rdf"
	"github.com/ontoforge/guidance/vocabulary/guidance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sporeManifest = `id: fix-rule-priorities
description: Reset drifted priorities and relabel the syntax rule
prefixes:
  ex: https://example.org/project#
operations:
  - subject: guidance:SyntaxRule
    predicate: guidance:hasPriority
    action: replace
    objects:
      - literal: HIGH
  - subject: guidance:SyntaxRule
    predicate: http://www.w3.org/2000/01/rdf-schema#label
    action: replace
    objects:
      - literal: Syntax Rule
        lang: en
  - subject: ex:Product
    predicate: ex:hasVersion
    action: add
    objects:
      - literal: 1.2.3
  - subject: guidance:SyntaxRule
    predicate: guidance:hasTarget
    action: add
    objects:
      - iri: guidance:SyntaxValidation
`

func writeSpore(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAndCompileSpore(t *testing.T) {
	s, err := LoadSpore(writeSpore(t, sporeManifest))
	require.NoError(t, err)
	assert.Equal(t, "fix-rule-priorities", s.ID)

	p, err := s.Compile()
	require.NoError(t, err)
	require.Len(t, p.Operations, 4)

	assert.Equal(t, guidance.HasPriority, p.Operations[0].Predicate)
	assert.Equal(t, rdf.RDFSLabel, p.Operations[1].Predicate)
	assert.Equal(t, rdf.Term(rdf.NewLangLiteral("Syntax Rule", "en")), p.Operations[1].Objects[0])
	assert.Equal(t, rdf.IRI("https://example.org/project#hasVersion"), p.Operations[2].Predicate)
	assert.Equal(t, rdf.Term(guidance.Term("SyntaxValidation")), p.Operations[3].Objects[0])
}

func TestSporeApply(t *testing.T) {
	s, err := LoadSpore(writeSpore(t, sporeManifest))
	require.NoError(t, err)
	p, err := s.Compile()
	require.NoError(t, err)

	g := rdf.NewGraph()
	g.AddTriple(guidance.Term("SyntaxRule"), guidance.HasPriority, rdf.NewLiteral("LOW"))

	res, err := p.Apply(g)
	require.NoError(t, err)
	assert.True(t, res.Changed())

	prio, ok := g.FirstObject(guidance.Term("SyntaxRule"), guidance.HasPriority)
	require.True(t, ok)
	assert.Equal(t, rdf.Term(rdf.NewLiteral("HIGH")), prio)
}

func TestSporeRejectsBadManifests(t *testing.T) {
	cases := []struct {
		name     string
		manifest string
	}{
		{"missing id", "description: no id\noperations:\n  - subject: guidance:X\n    predicate: guidance:p\n    action: add\n    objects:\n      - literal: x\n"},
		{"no operations", "id: empty\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadSpore(writeSpore(t, tc.manifest))
			assert.Error(t, err)
		})
	}
}

func TestSporeCompileErrors(t *testing.T) {
	cases := []struct {
		name     string
		manifest string
	}{
		{"bad action", "id: x\noperations:\n  - subject: guidance:X\n    predicate: guidance:p\n    action: upsert\n    objects:\n      - literal: x\n"},
		{"undeclared prefix", "id: x\noperations:\n  - subject: nope:X\n    predicate: guidance:p\n    action: add\n    objects:\n      - literal: x\n"},
		{"replace without objects", "id: x\noperations:\n  - subject: guidance:X\n    predicate: guidance:p\n    action: replace\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := LoadSpore(writeSpore(t, tc.manifest))
			require.NoError(t, err)
			_, err = s.Compile()
			assert.Error(t, err)
		})
	}
}
