package sparql

import (
	"fmt"

	"github.com/ontoforge/guidance/rdf"
)

// Check is a named diagnostic query run by the check command.
type Check struct {
	Name    string
	Message string
	Query   string
}

// BuiltinChecks are the structural diagnostics the ontology pipeline has
// always run before loading a model.
var BuiltinChecks = []Check{
	{
		Name:    "ClassHierarchyCheck",
		Message: "Circular class hierarchy detected",
		Query: `PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>
SELECT ?class ?superClass
WHERE {
    ?class rdfs:subClassOf+ ?superClass .
    ?superClass rdfs:subClassOf+ ?class .
}`,
	},
	{
		Name:    "PropertyDomainCheck",
		Message: "Property domain is not a declared class",
		Query: `PREFIX rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#>
PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>
PREFIX owl: <http://www.w3.org/2002/07/owl#>
SELECT ?prop ?domain
WHERE {
    ?prop rdfs:domain ?domain .
    FILTER NOT EXISTS { ?domain rdf:type owl:Class }
    FILTER NOT EXISTS { ?domain rdf:type rdfs:Class }
}`,
	},
}

// CheckViolation is one row returned by a failed check.
type CheckViolation struct {
	Check   string
	Message string
	Binding Binding
}

// RunChecks evaluates every builtin check and returns the violations.
func RunChecks(g *rdf.Graph) ([]CheckViolation, error) {
	var out []CheckViolation
	for _, c := range BuiltinChecks {
		res, err := QueryGraph(g, c.Query)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", c.Name, err)
		}
		for _, b := range res.Solutions.Bindings {
			out = append(out, CheckViolation{Check: c.Name, Message: c.Message, Binding: b})
		}
	}
	return out, nil
}
