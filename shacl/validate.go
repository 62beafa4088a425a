package shacl

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ontoforge/guidance/rdf"
)

// Options controls a validation run.
type Options struct {
	// InferRDFS materializes RDFS entailments in the data graph before
	// validation.
	InferRDFS bool
}

// Result is one constraint violation.
type Result struct {
	FocusNode   rdf.Term
	Path        rdf.IRI
	Value       rdf.Term
	Message     string
	Severity    rdf.IRI
	Component   rdf.IRI
	SourceShape rdf.Term
}

// Report is the outcome of a validation run.
type Report struct {
	// ID tags the report in logs and report graphs.
	ID       string
	Conforms bool
	Results  []Result
}

// Validate checks data against the node shapes in shapes. Passing the same
// graph as both arguments validates a self-describing ontology, which is how
// the guidance files ship their shapes.
func Validate(data, shapes *rdf.Graph, opts Options) (*Report, error) {
	if shapes == nil {
		shapes = data
	}
	parsed, err := ParseShapes(shapes)
	if err != nil {
		return nil, err
	}

	if opts.InferRDFS {
		data = InferRDFS(data)
	}

	report := &Report{ID: uuid.New().String(), Conforms: true}
	for _, shape := range parsed {
		if shape.Deactivated {
			continue
		}
		for _, focus := range focusNodes(data, shape) {
			for _, pc := range shape.Properties {
				validateProperty(data, shape, pc, focus, report)
			}
		}
	}
	report.Conforms = len(report.Results) == 0
	return report, nil
}

// focusNodes resolves the shape targets against the data graph.
func focusNodes(data *rdf.Graph, shape *Shape) []rdf.Term {
	seen := make(map[string]bool)
	var out []rdf.Term
	add := func(t rdf.Term) {
		if !seen[t.String()] {
			seen[t.String()] = true
			out = append(out, t)
		}
	}
	for _, class := range shape.TargetClass {
		for _, t := range data.Match(nil, rdf.RDFType, class) {
			add(t.Subject)
		}
	}
	for _, n := range shape.TargetNodes {
		add(n)
	}
	return out
}

func validateProperty(data *rdf.Graph, shape *Shape, pc *PropertyConstraint, focus rdf.Term, report *Report) {
	values := data.Objects(focus, pc.Path)

	fail := func(component rdf.IRI, value rdf.Term, fallback string) {
		msg := pc.Message
		if msg == "" {
			msg = fallback
		}
		report.Results = append(report.Results, Result{
			FocusNode:   focus,
			Path:        pc.Path,
			Value:       value,
			Message:     msg,
			Severity:    pc.Severity,
			Component:   component,
			SourceShape: shape.ID,
		})
	}

	if pc.MinCount != nil && len(values) < *pc.MinCount {
		fail(MinCountComponent, nil,
			fmt.Sprintf("fewer than %d values for %s", *pc.MinCount, pc.Path))
	}
	if pc.MaxCount != nil && len(values) > *pc.MaxCount {
		fail(MaxCountComponent, nil,
			fmt.Sprintf("more than %d values for %s", *pc.MaxCount, pc.Path))
	}

	langs := make(map[string]bool)
	for _, v := range values {
		if pc.Datatype != "" {
			if !literalHasDatatype(v, pc.Datatype) {
				fail(DatatypeComponent, v,
					fmt.Sprintf("value is not a literal of datatype %s", pc.Datatype))
			}
		}
		if pc.Class != "" {
			if !data.Has(rdf.NewTriple(v, rdf.RDFType, pc.Class)) {
				fail(ClassComponent, v,
					fmt.Sprintf("value is not an instance of %s", pc.Class))
			}
		}
		if pc.NodeKind != "" && !nodeKindMatches(v, pc.NodeKind) {
			fail(NodeKindComponent, v,
				fmt.Sprintf("value does not match node kind %s", pc.NodeKind))
		}
		if len(pc.In) > 0 && !termIn(v, pc.In) {
			fail(InComponent, v, "value is not in the allowed list")
		}
		if pc.Pattern != nil {
			lit, ok := v.(rdf.Literal)
			if !ok || !pc.Pattern.MatchString(lit.Value) {
				fail(PatternComponent, v,
					fmt.Sprintf("value does not match pattern %q", pc.PatternSource))
			}
		}
		if len(pc.LanguageIn) > 0 {
			lit, ok := v.(rdf.Literal)
			if !ok || !stringIn(lit.Language, pc.LanguageIn) {
				fail(LanguageInComponent, v, "value language is not allowed")
			}
		}
		if pc.UniqueLang {
			if lit, ok := v.(rdf.Literal); ok && lit.Language != "" {
				if langs[lit.Language] {
					fail(UniqueLangComponent, v,
						fmt.Sprintf("duplicate language tag %q", lit.Language))
				}
				langs[lit.Language] = true
			}
		}
	}
}

func literalHasDatatype(v rdf.Term, dt rdf.IRI) bool {
	lit, ok := v.(rdf.Literal)
	if !ok {
		return false
	}
	if lit.Language != "" {
		return dt == rdf.RDFLangString
	}
	actual := lit.Datatype
	if actual == "" {
		actual = rdf.XSDString
	}
	return actual == dt
}

func nodeKindMatches(v rdf.Term, kind rdf.IRI) bool {
	switch kind {
	case NodeKindIRI:
		return v.Kind() == rdf.KindIRI
	case NodeKindBlankNode:
		return v.Kind() == rdf.KindBlankNode
	case NodeKindLiteral:
		return v.Kind() == rdf.KindLiteral
	case NodeKindBlankOrIRI:
		return v.Kind() == rdf.KindIRI || v.Kind() == rdf.KindBlankNode
	case NodeKindIRIOrLiteral:
		return v.Kind() == rdf.KindIRI || v.Kind() == rdf.KindLiteral
	default:
		return true
	}
}

func termIn(v rdf.Term, list []rdf.Term) bool {
	for _, item := range list {
		if v.Equal(item) {
			return true
		}
	}
	return false
}

func stringIn(s string, list []string) bool {
	for _, item := range list {
		if s == item {
			return true
		}
	}
	return false
}

// Graph renders the report as an sh:ValidationReport graph.
func (r *Report) Graph() *rdf.Graph {
	g := rdf.NewGraph()

	reportNode := g.NewBNode()
	g.AddTriple(reportNode, rdf.RDFType, ValidationReportClass)
	g.AddTriple(reportNode, Conforms, rdf.NewTypedLiteral(fmt.Sprintf("%t", r.Conforms), rdf.XSDBoolean))

	for _, res := range r.Results {
		n := g.NewBNode()
		g.AddTriple(reportNode, ResultProp, n)
		g.AddTriple(n, rdf.RDFType, ValidationResultClass)
		g.AddTriple(n, FocusNode, res.FocusNode)
		g.AddTriple(n, ResultSeverity, res.Severity)
		g.AddTriple(n, SourceConstraint, res.Component)
		if res.Path != "" {
			g.AddTriple(n, ResultPath, res.Path)
		}
		if res.Value != nil {
			g.AddTriple(n, Value, res.Value)
		}
		if res.Message != "" {
			g.AddTriple(n, ResultMessage, rdf.NewLiteral(res.Message))
		}
		if res.SourceShape != nil {
			g.AddTriple(n, SourceShape, res.SourceShape)
		}
	}
	return g
}

// Text renders the report the way the validation scripts printed it.
func (r *Report) Text() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Validation Report\nConforms: %t\n", r.Conforms)
	if len(r.Results) == 0 {
		return sb.String()
	}
	fmt.Fprintf(&sb, "Results (%d):\n", len(r.Results))
	for _, res := range r.Results {
		fmt.Fprintf(&sb, "  [%s] focus=%s", localName(res.Severity), res.FocusNode)
		if res.Path != "" {
			fmt.Fprintf(&sb, " path=%s", localName(res.Path))
		}
		if res.Value != nil {
			fmt.Fprintf(&sb, " value=%s", res.Value)
		}
		fmt.Fprintf(&sb, ": %s\n", res.Message)
	}
	return sb.String()
}

func localName(iri rdf.IRI) string {
	s := string(iri)
	for _, sep := range []string{"#", "/"} {
		if idx := strings.LastIndex(s, sep); idx >= 0 && idx < len(s)-1 {
			return s[idx+1:]
		}
	}
	return s
}
