package rdf

import (
	"fmt"
	"strings"
)

// TermKind discriminates the concrete type of a Term.
type TermKind int

const (
	// KindIRI is an absolute IRI reference.
	KindIRI TermKind = iota

	// KindBlankNode is a graph-scoped blank node.
	KindBlankNode

	// KindLiteral is a literal with optional language tag or datatype.
	KindLiteral
)

// Term is an RDF term: IRI, BlankNode, or Literal.
type Term interface {
	// Kind reports the concrete term type.
	Kind() TermKind

	// String renders the term in N-Triples syntax.
	String() string

	// Equal reports whether two terms are identical.
	Equal(other Term) bool
}

// IRI is an absolute IRI reference.
type IRI string

// NewIRI constructs an IRI term.
func NewIRI(value string) IRI { return IRI(value) }

// Kind implements Term.
func (i IRI) Kind() TermKind { return KindIRI }

// Value returns the raw IRI string.
func (i IRI) Value() string { return string(i) }

// String renders the IRI in angle brackets.
func (i IRI) String() string { return "<" + string(i) + ">" }

// Equal implements Term.
func (i IRI) Equal(other Term) bool {
	o, ok := other.(IRI)
	return ok && o == i
}

// BlankNode is a graph-scoped anonymous node. The label has no identity
// outside the graph that minted it.
type BlankNode string

// NewBlankNode constructs a blank node with the given label.
func NewBlankNode(label string) BlankNode { return BlankNode(label) }

// Kind implements Term.
func (b BlankNode) Kind() TermKind { return KindBlankNode }

// Label returns the node label without the "_:" prefix.
func (b BlankNode) Label() string { return string(b) }

// String renders the blank node in N-Triples syntax.
func (b BlankNode) String() string { return "_:" + string(b) }

// Equal implements Term.
func (b BlankNode) Equal(other Term) bool {
	o, ok := other.(BlankNode)
	return ok && o == b
}

// Literal is an RDF literal: a lexical form plus an optional language tag
// or datatype IRI. A literal never carries both.
type Literal struct {
	// Value is the lexical form.
	Value string

	// Language is the optional BCP 47 language tag (e.g. "en").
	Language string

	// Datatype is the optional datatype IRI. Empty means xsd:string.
	Datatype IRI
}

// NewLiteral constructs a plain literal.
func NewLiteral(value string) Literal { return Literal{Value: value} }

// NewLangLiteral constructs a language-tagged literal.
func NewLangLiteral(value, lang string) Literal {
	return Literal{Value: value, Language: lang}
}

// NewTypedLiteral constructs a datatyped literal.
func NewTypedLiteral(value string, datatype IRI) Literal {
	return Literal{Value: value, Datatype: datatype}
}

// Kind implements Term.
func (l Literal) Kind() TermKind { return KindLiteral }

// String renders the literal in N-Triples syntax.
func (l Literal) String() string {
	switch {
	case l.Language != "":
		return QuoteString(l.Value) + "@" + l.Language
	case l.Datatype != "" && l.Datatype != XSDString:
		return QuoteString(l.Value) + "^^" + l.Datatype.String()
	default:
		return QuoteString(l.Value)
	}
}

// QuoteString renders s as a double-quoted Turtle / N-Triples string. The
// shared ECHAR escapes cover tab, backspace, newline, carriage return, form
// feed, quote, and backslash; any other control character is written as a
// \u00XX escape so the output stays parseable by conforming readers.
func QuoteString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\f':
			sb.WriteString(`\f`)
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\u%04X`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// Equal implements Term.
func (l Literal) Equal(other Term) bool {
	o, ok := other.(Literal)
	if !ok {
		return false
	}
	// xsd:string and absent datatype are the same literal.
	return l.Value == o.Value && l.Language == o.Language &&
		normalizeDatatype(l.Datatype) == normalizeDatatype(o.Datatype)
}

func normalizeDatatype(dt IRI) IRI {
	if dt == XSDString {
		return ""
	}
	return dt
}

// termSortKey orders terms for deterministic serialization:
// IRIs, then blank nodes, then literals, each lexicographically.
func termSortKey(t Term) string {
	switch v := t.(type) {
	case IRI:
		return "0" + string(v)
	case BlankNode:
		return "1" + string(v)
	case Literal:
		var sb strings.Builder
		sb.WriteString("2")
		sb.WriteString(v.Value)
		sb.WriteString("@")
		sb.WriteString(v.Language)
		sb.WriteString("^")
		sb.WriteString(string(v.Datatype))
		return sb.String()
	default:
		return "3"
	}
}
