package sparql

import (
	"encoding/json"

	"github.com/ontoforge/guidance/rdf"
)

// JSON serializes a result in the SPARQL 1.1 Query Results JSON Format.
func (r *Result) JSON() ([]byte, error) {
	if r.Form == FormAsk {
		return json.MarshalIndent(askResultJSON{
			Head:    map[string][]string{},
			Boolean: r.Boolean,
		}, "", "  ")
	}

	doc := selectResultJSON{}
	doc.Head.Vars = r.Solutions.Vars
	doc.Results.Bindings = make([]map[string]termJSON, 0, len(r.Solutions.Bindings))
	for _, b := range r.Solutions.Bindings {
		row := make(map[string]termJSON, len(b))
		for v, t := range b {
			row[v] = encodeTerm(t)
		}
		doc.Results.Bindings = append(doc.Results.Bindings, row)
	}
	return json.MarshalIndent(doc, "", "  ")
}

type askResultJSON struct {
	Head    map[string][]string `json:"head"`
	Boolean bool                `json:"boolean"`
}

type selectResultJSON struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]termJSON `json:"bindings"`
	} `json:"results"`
}

type termJSON struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"xml:lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

func encodeTerm(t rdf.Term) termJSON {
	switch v := t.(type) {
	case rdf.IRI:
		return termJSON{Type: "uri", Value: string(v)}
	case rdf.BlankNode:
		return termJSON{Type: "bnode", Value: v.Label()}
	case rdf.Literal:
		out := termJSON{Type: "literal", Value: v.Value, Lang: v.Language}
		if v.Datatype != "" && v.Datatype != rdf.XSDString {
			out.Datatype = string(v.Datatype)
		}
		return out
	default:
		return termJSON{Type: "literal", Value: t.String()}
	}
}
