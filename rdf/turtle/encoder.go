package turtle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ontoforge/guidance/rdf"
)

// Encode serializes a graph to Turtle. Output is deterministic: prefixes,
// subjects, predicates, and objects are emitted in sorted order, so encoding
// the same graph twice yields identical bytes.
func Encode(g *rdf.Graph) string {
	var sb strings.Builder
	writePrefixes(&sb, g)

	bySubject := groupBySubject(g)
	for i, grp := range bySubject {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeSubjectBlock(&sb, g, grp)
	}
	return sb.String()
}

// EncodeTo writes the Turtle serialization of g to w.
func EncodeTo(w io.Writer, g *rdf.Graph) error {
	_, err := io.WriteString(w, Encode(g))
	return err
}

// WriteFile atomically replaces the file at path with the Turtle
// serialization of g. The content is written to a temp file in the target
// directory and renamed over the destination, so a crash mid-write never
// leaves a truncated ontology. When backup is true the previous content is
// kept next to the file with a .bak suffix.
func WriteFile(path string, g *rdf.Graph, backup bool) error {
	if backup {
		if prev, err := os.ReadFile(path); err == nil {
			if err := os.WriteFile(path+".bak", prev, 0644); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}
		}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := io.WriteString(tmp, Encode(g)); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// EncodeNTriples serializes a graph as sorted N-Triples lines.
func EncodeNTriples(g *rdf.Graph) string {
	var sb strings.Builder
	for _, t := range g.Triples() {
		sb.WriteString(t.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

type subjectGroup struct {
	subject rdf.Term
	triples []rdf.Triple
}

func groupBySubject(g *rdf.Graph) []subjectGroup {
	var out []subjectGroup
	for _, s := range g.Subjects() {
		out = append(out, subjectGroup{subject: s, triples: g.Match(s, "", nil)})
	}
	return out
}

func writePrefixes(sb *strings.Builder, g *rdf.Graph) {
	used := usedNamespaces(g)
	pm := g.Prefixes()
	any := false
	for _, prefix := range pm.SortedPrefixes() {
		ns := pm.Bindings()[prefix]
		if !used[ns] {
			continue
		}
		fmt.Fprintf(sb, "@prefix %s: <%s> .\n", prefix, ns)
		any = true
	}
	if any {
		sb.WriteString("\n")
	}
}

// usedNamespaces collects the namespaces actually referenced by the graph so
// the prefix header stays minimal.
func usedNamespaces(g *rdf.Graph) map[string]bool {
	pm := g.Prefixes()
	out := make(map[string]bool)
	note := func(t rdf.Term) {
		iri, ok := t.(rdf.IRI)
		if !ok {
			if lit, isLit := t.(rdf.Literal); isLit && lit.Datatype != "" {
				iri = lit.Datatype
			} else {
				return
			}
		}
		if qname, ok := pm.Compact(iri); ok {
			prefix := qname[:strings.Index(qname, ":")]
			out[pm.Bindings()[prefix]] = true
		}
	}
	for _, t := range g.Triples() {
		note(t.Subject)
		note(rdf.IRI(t.Predicate))
		note(t.Object)
	}
	return out
}

func writeSubjectBlock(sb *strings.Builder, g *rdf.Graph, grp subjectGroup) {
	sb.WriteString(renderTerm(g, grp.subject))

	preds := predicateOrder(grp.triples)
	for i, p := range preds {
		if i == 0 {
			sb.WriteString(" ")
		} else {
			sb.WriteString(" ;\n    ")
		}
		sb.WriteString(renderPredicate(g, p))
		sb.WriteString(" ")
		objs := objectsFor(grp.triples, p)
		for j, o := range objs {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(renderTerm(g, o))
		}
	}
	sb.WriteString(" .\n")
}

// predicateOrder sorts predicates with rdf:type first, the rdflib habit the
// original ontology files follow.
func predicateOrder(triples []rdf.Triple) []rdf.IRI {
	seen := make(map[rdf.IRI]bool)
	var out []rdf.IRI
	for _, t := range triples {
		if !seen[t.Predicate] {
			seen[t.Predicate] = true
			out = append(out, t.Predicate)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if (out[i] == rdf.RDFType) != (out[j] == rdf.RDFType) {
			return out[i] == rdf.RDFType
		}
		return out[i] < out[j]
	})
	return out
}

func objectsFor(triples []rdf.Triple, p rdf.IRI) []rdf.Term {
	var out []rdf.Term
	for _, t := range triples {
		if t.Predicate == p {
			out = append(out, t.Object)
		}
	}
	return out
}

func renderPredicate(g *rdf.Graph, p rdf.IRI) string {
	if p == rdf.RDFType {
		return "a"
	}
	return renderTerm(g, p)
}

func renderTerm(g *rdf.Graph, t rdf.Term) string {
	switch v := t.(type) {
	case rdf.IRI:
		if qname, ok := g.Prefixes().Compact(v); ok {
			return qname
		}
		return v.String()
	case rdf.BlankNode:
		return v.String()
	case rdf.Literal:
		return renderLiteral(g, v)
	default:
		return t.String()
	}
}

func renderLiteral(g *rdf.Graph, l rdf.Literal) string {
	// Numeric and boolean shorthand keeps the files close to what rdflib
	// produced.
	switch l.Datatype {
	case rdf.XSDInteger:
		if plainLexical(l.Value) && !strings.Contains(l.Value, ".") {
			return l.Value
		}
	case rdf.XSDDecimal:
		if plainLexical(l.Value) && strings.Contains(l.Value, ".") {
			return l.Value
		}
	case rdf.XSDBoolean:
		if l.Value == "true" || l.Value == "false" {
			return l.Value
		}
	}
	if l.Language != "" {
		return rdf.QuoteString(l.Value) + "@" + l.Language
	}
	if l.Datatype != "" && l.Datatype != rdf.XSDString {
		return rdf.QuoteString(l.Value) + "^^" + renderTerm(g, l.Datatype)
	}
	return rdf.QuoteString(l.Value)
}

// plainLexical reports whether a numeric/boolean lexical form can be emitted
// bare without changing its meaning on re-parse.
func plainLexical(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '+' || r == '-' || r == '.':
		case r >= 'a' && r <= 'z': // true / false
		default:
			return false
		}
	}
	return true
}
