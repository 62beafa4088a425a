package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontoforge/guidance/config"
	"github.com/ontoforge/guidance/shacl"
)

func TestResolveFixTargets(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.ttl", "b.ttl", "notes.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	sub := filepath.Join(dir, "models")
	require.NoError(t, os.MkdirAll(sub, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "c.ttl"), nil, 0644))

	a := &app{cfg: config.DefaultConfig()}

	paths, err := resolveFixTargets(a, []string{filepath.Join(dir, "**", "*.ttl")})
	require.NoError(t, err)
	assert.Len(t, paths, 3, "doublestar glob matches nested ttl files only")

	// Overlapping globs deduplicate.
	paths, err = resolveFixTargets(a, []string{
		filepath.Join(dir, "*.ttl"),
		filepath.Join(dir, "a.ttl"),
	})
	require.NoError(t, err)
	assert.Len(t, paths, 2)

	// No globs falls back to the configured path.
	a.cfg.Ontology.Path = "configured.ttl"
	paths, err = resolveFixTargets(a, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"configured.ttl"}, paths)
}

func TestReadQuery(t *testing.T) {
	q, err := readQuery([]string{"ASK { ?s ?p ?o }"}, "")
	require.NoError(t, err)
	assert.Equal(t, "ASK { ?s ?p ?o }", q)

	path := filepath.Join(t.TempDir(), "query.rq")
	require.NoError(t, os.WriteFile(path, []byte("SELECT ?s WHERE { ?s ?p ?o }"), 0644))
	q, err = readQuery(nil, path)
	require.NoError(t, err)
	assert.Contains(t, q, "SELECT")

	_, err = readQuery([]string{"ASK {}"}, path)
	assert.Error(t, err, "argument and --file are mutually exclusive")
}

func TestFormatFromExt(t *testing.T) {
	assert.Equal(t, "ntriples", formatFromExt("out.nt"))
	assert.Equal(t, "turtle", formatFromExt("out.ttl"))
	assert.Equal(t, "turtle", formatFromExt("out"))
}

func TestFailedSeverityPolicy(t *testing.T) {
	warningOnly := &shacl.Report{
		Conforms: false,
		Results:  []shacl.Result{{Severity: shacl.SeverityWarning}},
	}
	assert.False(t, failed(warningOnly, false), "warnings pass by default")
	assert.True(t, failed(warningOnly, true), "warnings fail under --strict")

	violation := &shacl.Report{
		Conforms: false,
		Results:  []shacl.Result{{Severity: shacl.SeverityViolation}},
	}
	assert.True(t, failed(violation, false))

	assert.False(t, failed(&shacl.Report{Conforms: true}, true))
}
