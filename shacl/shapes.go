package shacl

import (
	"fmt"
	"regexp"

	"github.com/ontoforge/guidance/rdf"
)

// Shape is a parsed sh:NodeShape.
type Shape struct {
	ID          rdf.Term
	TargetClass []rdf.IRI
	TargetNodes []rdf.Term
	Properties  []*PropertyConstraint
	Deactivated bool
}

// PropertyConstraint is a parsed property shape.
type PropertyConstraint struct {
	ID       rdf.Term
	Path     rdf.IRI
	MinCount *int
	MaxCount *int
	Datatype rdf.IRI
	Class    rdf.IRI
	NodeKind rdf.IRI
	In       []rdf.Term
	Pattern  *regexp.Regexp
	// PatternSource keeps the original pattern text for report messages.
	PatternSource string
	LanguageIn    []string
	UniqueLang    bool
	Message       string
	Severity      rdf.IRI
}

// ParseShapes extracts every node shape from a shapes graph.
func ParseShapes(shapes *rdf.Graph) ([]*Shape, error) {
	var out []*Shape
	for _, t := range shapes.Match(nil, rdf.RDFType, NodeShape) {
		shape, err := parseShape(shapes, t.Subject)
		if err != nil {
			return nil, err
		}
		out = append(out, shape)
	}
	return out, nil
}

func parseShape(g *rdf.Graph, id rdf.Term) (*Shape, error) {
	s := &Shape{ID: id}

	for _, o := range g.Objects(id, TargetClass) {
		if iri, ok := o.(rdf.IRI); ok {
			s.TargetClass = append(s.TargetClass, iri)
		}
	}
	s.TargetNodes = g.Objects(id, TargetNode)

	if d, ok := g.FirstObject(id, Deactivated); ok {
		if lit, isLit := d.(rdf.Literal); isLit && lit.Value == "true" {
			s.Deactivated = true
		}
	}

	for _, p := range g.Objects(id, Property) {
		pc, err := parsePropertyConstraint(g, p)
		if err != nil {
			return nil, fmt.Errorf("shape %s: %w", id, err)
		}
		s.Properties = append(s.Properties, pc)
	}
	return s, nil
}

func parsePropertyConstraint(g *rdf.Graph, id rdf.Term) (*PropertyConstraint, error) {
	pc := &PropertyConstraint{ID: id}

	path, ok := g.FirstObject(id, Path)
	if !ok {
		return nil, fmt.Errorf("property shape %s has no sh:path", id)
	}
	pathIRI, ok := path.(rdf.IRI)
	if !ok {
		return nil, fmt.Errorf("property shape %s: only IRI paths are supported", id)
	}
	pc.Path = pathIRI

	if v, ok := intValue(g, id, MinCount); ok {
		pc.MinCount = &v
	}
	if v, ok := intValue(g, id, MaxCount); ok {
		pc.MaxCount = &v
	}
	if v, ok := g.FirstObject(id, Datatype); ok {
		if iri, isIRI := v.(rdf.IRI); isIRI {
			pc.Datatype = iri
		}
	}
	if v, ok := g.FirstObject(id, Class); ok {
		if iri, isIRI := v.(rdf.IRI); isIRI {
			pc.Class = iri
		}
	}
	if v, ok := g.FirstObject(id, NodeKind); ok {
		if iri, isIRI := v.(rdf.IRI); isIRI {
			pc.NodeKind = iri
		}
	}
	if head, ok := g.FirstObject(id, In); ok {
		pc.In = listItems(g, head)
	}
	if head, ok := g.FirstObject(id, LanguageIn); ok {
		for _, item := range listItems(g, head) {
			if lit, isLit := item.(rdf.Literal); isLit {
				pc.LanguageIn = append(pc.LanguageIn, lit.Value)
			}
		}
	}
	if v, ok := g.FirstObject(id, Pattern); ok {
		lit, isLit := v.(rdf.Literal)
		if !isLit {
			return nil, fmt.Errorf("property shape %s: sh:pattern must be a literal", id)
		}
		expr := lit.Value
		if f, ok := g.FirstObject(id, Flags); ok {
			if flit, isLit := f.(rdf.Literal); isLit && flit.Value != "" {
				expr = "(?" + flit.Value + ")" + expr
			}
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("property shape %s: invalid sh:pattern: %w", id, err)
		}
		pc.Pattern = re
		pc.PatternSource = lit.Value
	}
	if v, ok := g.FirstObject(id, UniqueLang); ok {
		if lit, isLit := v.(rdf.Literal); isLit && lit.Value == "true" {
			pc.UniqueLang = true
		}
	}
	if v, ok := g.FirstObject(id, Message); ok {
		if lit, isLit := v.(rdf.Literal); isLit {
			pc.Message = lit.Value
		}
	}
	pc.Severity = SeverityViolation
	if v, ok := g.FirstObject(id, Severity); ok {
		if iri, isIRI := v.(rdf.IRI); isIRI {
			pc.Severity = iri
		}
	}
	return pc, nil
}

func intValue(g *rdf.Graph, s rdf.Term, p rdf.IRI) (int, bool) {
	v, ok := g.FirstObject(s, p)
	if !ok {
		return 0, false
	}
	lit, isLit := v.(rdf.Literal)
	if !isLit {
		return 0, false
	}
	var n int
	if _, err := fmt.Sscanf(lit.Value, "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}

// listItems walks an rdf:List into a slice.
func listItems(g *rdf.Graph, head rdf.Term) []rdf.Term {
	var out []rdf.Term
	for head != nil && !rdf.RDFNil.Equal(head) {
		item, ok := g.FirstObject(head, rdf.RDFFirst)
		if !ok {
			break
		}
		out = append(out, item)
		next, ok := g.FirstObject(head, rdf.RDFRest)
		if !ok {
			break
		}
		head = next
	}
	return out
}
