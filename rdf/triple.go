package rdf

import "fmt"

// Triple is a single RDF statement. Subject is an IRI or blank node,
// Predicate is always an IRI, Object is any term.
type Triple struct {
	Subject   Term
	Predicate IRI
	Object    Term
}

// NewTriple constructs a triple.
func NewTriple(s Term, p IRI, o Term) Triple {
	return Triple{Subject: s, Predicate: p, Object: o}
}

// String renders the triple as an N-Triples statement.
func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.Subject, t.Predicate, t.Object)
}

// Equal reports whether two triples are identical.
func (t Triple) Equal(other Triple) bool {
	return t.Subject.Equal(other.Subject) &&
		t.Predicate == other.Predicate &&
		t.Object.Equal(other.Object)
}

// key produces the dedup key for set semantics.
func (t Triple) key() string {
	return t.Subject.String() + "\x00" + string(t.Predicate) + "\x00" + t.Object.String()
}

// sortKey orders triples deterministically: subject, predicate, object.
func (t Triple) sortKey() string {
	return termSortKey(t.Subject) + "\x00" + string(t.Predicate) + "\x00" + termSortKey(t.Object)
}
