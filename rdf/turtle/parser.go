package turtle

import (
	"io"
	"os"
	"strings"

	"github.com/ontoforge/guidance/rdf"
)

// Decoder parses Turtle into an rdf.Graph.
type Decoder struct {
	lex  *lexer
	tok  token
	base string

	graph *rdf.Graph
	// bnodes maps source labels to graph-minted blank nodes so labels from
	// the file never collide with nodes the graph mints later.
	bnodes map[string]rdf.BlankNode
}

// Parse decodes a complete Turtle document.
func Parse(input string) (*rdf.Graph, error) {
	d := &Decoder{
		lex:    newLexer(input),
		graph:  rdf.NewGraph(),
		bnodes: make(map[string]rdf.BlankNode),
	}
	if err := d.advance(); err != nil {
		return nil, err
	}
	for d.tok.kind != tokEOF {
		if err := d.parseStatement(); err != nil {
			return nil, err
		}
	}
	return d.graph, nil
}

// ParseReader decodes a Turtle document from r.
func ParseReader(r io.Reader) (*rdf.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// ParseFile decodes the Turtle file at path.
func ParseFile(path string) (*rdf.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

func (d *Decoder) advance() error {
	tok, err := d.lex.next()
	if err != nil {
		return err
	}
	d.tok = tok
	return nil
}

func (d *Decoder) expect(kind tokenKind, what string) error {
	if d.tok.kind != kind {
		return errorf(d.tok.line, d.tok.col, "expected %s", what)
	}
	return d.advance()
}

func (d *Decoder) parseStatement() error {
	switch d.tok.kind {
	case tokPrefix:
		return d.parsePrefix()
	case tokBase:
		return d.parseBase()
	default:
		if err := d.parseTriples(); err != nil {
			return err
		}
		return d.expect(tokDot, "'.' after triples")
	}
}

func (d *Decoder) parsePrefix() error {
	if err := d.advance(); err != nil {
		return err
	}
	if d.tok.kind != tokPName || !strings.HasSuffix(d.tok.value, ":") {
		return errorf(d.tok.line, d.tok.col, "expected prefix name in @prefix directive")
	}
	prefix := strings.TrimSuffix(d.tok.value, ":")
	if err := d.advance(); err != nil {
		return err
	}
	if d.tok.kind != tokIRIRef {
		return errorf(d.tok.line, d.tok.col, "expected namespace IRI in @prefix directive")
	}
	d.graph.Bind(prefix, d.resolve(d.tok.value))
	if err := d.advance(); err != nil {
		return err
	}
	// SPARQL-style PREFIX has no terminating dot.
	if d.tok.kind == tokDot {
		return d.advance()
	}
	return nil
}

func (d *Decoder) parseBase() error {
	if err := d.advance(); err != nil {
		return err
	}
	if d.tok.kind != tokIRIRef {
		return errorf(d.tok.line, d.tok.col, "expected IRI in @base directive")
	}
	d.base = d.resolve(d.tok.value)
	if err := d.advance(); err != nil {
		return err
	}
	if d.tok.kind == tokDot {
		return d.advance()
	}
	return nil
}

func (d *Decoder) parseTriples() error {
	var subject rdf.Term
	var err error

	switch d.tok.kind {
	case tokLBracket:
		subject, err = d.parseBlankNodePropertyList()
		if err != nil {
			return err
		}
		// A bare property list subject may end the statement.
		if d.tok.kind == tokDot {
			return nil
		}
	case tokLParen:
		subject, err = d.parseCollection()
		if err != nil {
			return err
		}
	default:
		subject, err = d.parseSubject()
		if err != nil {
			return err
		}
	}
	return d.parsePredicateObjectList(subject)
}

func (d *Decoder) parseSubject() (rdf.Term, error) {
	switch d.tok.kind {
	case tokIRIRef:
		iri := rdf.IRI(d.resolve(d.tok.value))
		return iri, d.advance()
	case tokPName:
		iri, err := d.expandPName(d.tok)
		if err != nil {
			return nil, err
		}
		return iri, d.advance()
	case tokBlank:
		b := d.labeledBNode(d.tok.value)
		return b, d.advance()
	default:
		return nil, errorf(d.tok.line, d.tok.col, "expected subject")
	}
}

func (d *Decoder) parsePredicateObjectList(subject rdf.Term) error {
	for {
		pred, err := d.parsePredicate()
		if err != nil {
			return err
		}
		if err := d.parseObjectList(subject, pred); err != nil {
			return err
		}
		if d.tok.kind != tokSemi {
			return nil
		}
		// Consume the semicolon run; a trailing ';' before '.' or ']' is legal.
		for d.tok.kind == tokSemi {
			if err := d.advance(); err != nil {
				return err
			}
		}
		if d.tok.kind == tokDot || d.tok.kind == tokRBracket {
			return nil
		}
	}
}

func (d *Decoder) parsePredicate() (rdf.IRI, error) {
	switch d.tok.kind {
	case tokA:
		return rdf.RDFType, d.advance()
	case tokIRIRef:
		iri := rdf.IRI(d.resolve(d.tok.value))
		return iri, d.advance()
	case tokPName:
		iri, err := d.expandPName(d.tok)
		if err != nil {
			return "", err
		}
		return iri, d.advance()
	default:
		return "", errorf(d.tok.line, d.tok.col, "expected predicate")
	}
}

func (d *Decoder) parseObjectList(subject rdf.Term, pred rdf.IRI) error {
	for {
		obj, err := d.parseObject()
		if err != nil {
			return err
		}
		d.graph.AddTriple(subject, pred, obj)
		if d.tok.kind != tokComma {
			return nil
		}
		if err := d.advance(); err != nil {
			return err
		}
	}
}

func (d *Decoder) parseObject() (rdf.Term, error) {
	switch d.tok.kind {
	case tokIRIRef:
		iri := rdf.IRI(d.resolve(d.tok.value))
		return iri, d.advance()
	case tokPName:
		iri, err := d.expandPName(d.tok)
		if err != nil {
			return nil, err
		}
		return iri, d.advance()
	case tokBlank:
		b := d.labeledBNode(d.tok.value)
		return b, d.advance()
	case tokLBracket:
		return d.parseBlankNodePropertyList()
	case tokLParen:
		return d.parseCollection()
	case tokString:
		return d.parseLiteral()
	case tokNumber:
		lit := numericLiteral(d.tok)
		return lit, d.advance()
	case tokBoolean:
		lit := rdf.NewTypedLiteral(d.tok.value, rdf.XSDBoolean)
		return lit, d.advance()
	default:
		return nil, errorf(d.tok.line, d.tok.col, "expected object")
	}
}

func (d *Decoder) parseLiteral() (rdf.Term, error) {
	value := d.tok.value
	if err := d.advance(); err != nil {
		return nil, err
	}
	switch d.tok.kind {
	case tokLangTag:
		lit := rdf.NewLangLiteral(value, d.tok.value)
		return lit, d.advance()
	case tokCarets:
		if err := d.advance(); err != nil {
			return nil, err
		}
		var dt rdf.IRI
		switch d.tok.kind {
		case tokIRIRef:
			dt = rdf.IRI(d.resolve(d.tok.value))
		case tokPName:
			expanded, err := d.expandPName(d.tok)
			if err != nil {
				return nil, err
			}
			dt = expanded
		default:
			return nil, errorf(d.tok.line, d.tok.col, "expected datatype IRI after '^^'")
		}
		lit := rdf.NewTypedLiteral(value, dt)
		return lit, d.advance()
	default:
		return rdf.NewLiteral(value), nil
	}
}

func (d *Decoder) parseBlankNodePropertyList() (rdf.Term, error) {
	if err := d.advance(); err != nil { // consume '['
		return nil, err
	}
	node := d.graph.NewBNode()
	if d.tok.kind == tokRBracket {
		return node, d.advance()
	}
	if err := d.parsePredicateObjectList(node); err != nil {
		return nil, err
	}
	if err := d.expect(tokRBracket, "']' closing property list"); err != nil {
		return nil, err
	}
	return node, nil
}

func (d *Decoder) parseCollection() (rdf.Term, error) {
	if err := d.advance(); err != nil { // consume '('
		return nil, err
	}
	if d.tok.kind == tokRParen {
		if err := d.advance(); err != nil {
			return nil, err
		}
		return rdf.RDFNil, nil
	}
	var head, tail rdf.Term
	for d.tok.kind != tokRParen {
		item, err := d.parseObject()
		if err != nil {
			return nil, err
		}
		cell := d.graph.NewBNode()
		d.graph.AddTriple(cell, rdf.RDFFirst, item)
		if head == nil {
			head = cell
		} else {
			d.graph.AddTriple(tail, rdf.RDFRest, cell)
		}
		tail = cell
	}
	d.graph.AddTriple(tail, rdf.RDFRest, rdf.RDFNil)
	return head, d.advance()
}

func (d *Decoder) expandPName(tok token) (rdf.IRI, error) {
	iri, ok := d.graph.Prefixes().Expand(tok.value)
	if !ok {
		return "", errorf(tok.line, tok.col, "undeclared prefix in %q", tok.value)
	}
	return iri, nil
}

func (d *Decoder) labeledBNode(label string) rdf.BlankNode {
	if b, ok := d.bnodes[label]; ok {
		return b
	}
	b := d.graph.NewBNode()
	d.bnodes[label] = b
	return b
}

// resolve applies the current base to a relative IRI. Guidance ontologies
// use absolute IRIs throughout; only simple concatenation resolution is
// supported.
func (d *Decoder) resolve(iri string) string {
	if d.base == "" || strings.Contains(iri, "://") || strings.HasPrefix(iri, "urn:") {
		return iri
	}
	if strings.HasPrefix(iri, "#") {
		return strings.TrimSuffix(d.base, "#") + iri
	}
	return d.base + iri
}

func numericLiteral(tok token) rdf.Literal {
	switch tok.numberKind {
	case "decimal":
		return rdf.NewTypedLiteral(tok.value, rdf.XSDDecimal)
	case "double":
		return rdf.NewTypedLiteral(tok.value, rdf.XSDDouble)
	default:
		return rdf.NewTypedLiteral(tok.value, rdf.XSDInteger)
	}
}
