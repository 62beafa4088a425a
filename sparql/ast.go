package sparql

import (
	"regexp"

	"github.com/ontoforge/guidance/rdf"
)

// QueryForm distinguishes SELECT from ASK.
type QueryForm int

const (
	// FormSelect returns variable bindings.
	FormSelect QueryForm = iota

	// FormAsk returns a boolean.
	FormAsk
)

// Query is a parsed query.
type Query struct {
	Form     QueryForm
	Distinct bool
	// Vars lists the projected variables; empty means every bound variable
	// (SELECT *).
	Vars    []string
	Where   []Element
	OrderBy []OrderKey
	Limit   int // 0 = no limit
	Offset  int
}

// OrderKey is one ORDER BY criterion.
type OrderKey struct {
	Var  string
	Desc bool
}

// Element is a WHERE clause element: a TriplePattern or a Filter.
type Element interface {
	element()
}

// TriplePattern matches triples, with variables in any position. Transitive
// marks a pred+ path: the pattern matches the transitive closure of the
// predicate.
type TriplePattern struct {
	Subject    PatternTerm
	Predicate  PatternTerm
	Object     PatternTerm
	Transitive bool
}

func (TriplePattern) element() {}

// Filter constrains solutions.
type Filter struct {
	// Exactly one of the following is set.
	Comparison *Comparison
	Regex      *RegexFilter
	NotExists  []Element
}

func (Filter) element() {}

// Comparison is a binary comparison between two operands.
type Comparison struct {
	Op    string // = != < > <= >=
	Left  PatternTerm
	Right PatternTerm
}

// RegexFilter is regex(?var, "pattern" [, "flags"]).
type RegexFilter struct {
	Var     string
	Pattern *regexp.Regexp
}

// PatternTerm is a variable or a concrete term.
type PatternTerm struct {
	// Var is the variable name without '?', empty for concrete terms.
	Var  string
	Term rdf.Term
}

// IsVar reports whether the pattern term is a variable.
func (p PatternTerm) IsVar() bool { return p.Var != "" }

// Variable constructs a variable pattern term.
func Variable(name string) PatternTerm { return PatternTerm{Var: name} }

// Concrete constructs a fixed pattern term.
func Concrete(t rdf.Term) PatternTerm { return PatternTerm{Term: t} }
