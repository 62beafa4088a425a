package shacl

import "github.com/ontoforge/guidance/rdf"

// InferRDFS returns a copy of g extended with RDFS entailments:
// transitive rdfs:subClassOf and rdfs:subPropertyOf, type propagation along
// subclass axioms, property propagation along subproperty axioms, and type
// inference from rdfs:domain and rdfs:range. The closure runs to fixpoint;
// ontology-scale graphs converge in a handful of rounds.
func InferRDFS(g *rdf.Graph) *rdf.Graph {
	out := g.Clone()
	for {
		added := 0
		added += closeTransitive(out, rdf.RDFSSubClassOf)
		added += closeTransitive(out, rdf.RDFSSubPropertyOf)
		added += propagateTypes(out)
		added += propagateProperties(out)
		added += inferDomainRange(out)
		if added == 0 {
			return out
		}
	}
}

func closeTransitive(g *rdf.Graph, pred rdf.IRI) int {
	added := 0
	for _, t1 := range g.Match(nil, pred, nil) {
		for _, t2 := range g.Match(t1.Object, pred, nil) {
			if t1.Subject.Equal(t2.Object) {
				continue
			}
			if g.AddTriple(t1.Subject, pred, t2.Object) {
				added++
			}
		}
	}
	return added
}

func propagateTypes(g *rdf.Graph) int {
	added := 0
	for _, sub := range g.Match(nil, rdf.RDFSSubClassOf, nil) {
		for _, inst := range g.Match(nil, rdf.RDFType, sub.Subject) {
			if g.AddTriple(inst.Subject, rdf.RDFType, sub.Object) {
				added++
			}
		}
	}
	return added
}

func propagateProperties(g *rdf.Graph) int {
	added := 0
	for _, sub := range g.Match(nil, rdf.RDFSSubPropertyOf, nil) {
		subProp, ok := sub.Subject.(rdf.IRI)
		if !ok {
			continue
		}
		superProp, ok := sub.Object.(rdf.IRI)
		if !ok {
			continue
		}
		for _, t := range g.Match(nil, subProp, nil) {
			if g.AddTriple(t.Subject, superProp, t.Object) {
				added++
			}
		}
	}
	return added
}

func inferDomainRange(g *rdf.Graph) int {
	added := 0
	for _, dom := range g.Match(nil, rdf.RDFSDomain, nil) {
		prop, ok := dom.Subject.(rdf.IRI)
		if !ok {
			continue
		}
		for _, t := range g.Match(nil, prop, nil) {
			if g.AddTriple(t.Subject, rdf.RDFType, dom.Object) {
				added++
			}
		}
	}
	for _, rng := range g.Match(nil, rdf.RDFSRange, nil) {
		prop, ok := rng.Subject.(rdf.IRI)
		if !ok {
			continue
		}
		for _, t := range g.Match(nil, prop, nil) {
			if t.Object.Kind() == rdf.KindLiteral {
				continue
			}
			if g.AddTriple(t.Object, rdf.RDFType, rng.Object) {
				added++
			}
		}
	}
	return added
}
