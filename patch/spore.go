package patch

import (
	"fmt"
	"os"
	"strings"

	"github.com/ontoforge/guidance/rdf"
	"github.com/ontoforge/guidance/vocabulary/guidance"
	"gopkg.in/yaml.v3"
)

// Spore is a distributable patch unit described in YAML. Manifest shape:
//
//	id: fix-rule-priorities
//	description: Reset drifted priorities
//	prefixes:
//	  guidance: https://example.org/guidance#
//	operations:
//	  - subject: guidance:SyntaxRule
//	    predicate: guidance:hasPriority
//	    action: replace
//	    objects:
//	      - literal: HIGH
//
// Objects are either {iri: ...} or {literal: ..., lang: ..., datatype: ...}.
type Spore struct {
	ID          string            `yaml:"id"`
	Description string            `yaml:"description"`
	Prefixes    map[string]string `yaml:"prefixes"`
	Operations  []SporeOperation  `yaml:"operations"`
}

// SporeOperation is the YAML form of an Operation.
type SporeOperation struct {
	Subject   string        `yaml:"subject"`
	Predicate string        `yaml:"predicate"`
	Action    string        `yaml:"action"`
	Objects   []SporeObject `yaml:"objects"`
}

// SporeObject is the YAML form of a term.
type SporeObject struct {
	IRI      string `yaml:"iri"`
	Literal  string `yaml:"literal"`
	Lang     string `yaml:"lang"`
	Datatype string `yaml:"datatype"`
}

// LoadSpore reads and validates a Spore manifest.
func LoadSpore(path string) (*Spore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spore manifest: %w", err)
	}
	var s Spore
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse spore manifest: %w", err)
	}
	if s.ID == "" {
		return nil, fmt.Errorf("spore manifest %s: missing id", path)
	}
	if len(s.Operations) == 0 {
		return nil, fmt.Errorf("spore manifest %s: no operations", path)
	}
	return &s, nil
}

// Compile resolves the manifest into an applicable Patch. Prefixed names are
// expanded against the manifest's prefixes on top of the well-known ones.
func (s *Spore) Compile() (*Patch, error) {
	pm := rdf.NewPrefixMap()
	pm.Bind("guidance", guidance.Namespace)
	for prefix, ns := range s.Prefixes {
		pm.Bind(prefix, ns)
	}

	p := &Patch{ID: s.ID, Description: s.Description}
	for i, op := range s.Operations {
		subject, err := s.resolveIRI(pm, op.Subject)
		if err != nil {
			return nil, fmt.Errorf("operation %d: subject: %w", i, err)
		}
		predicate, err := s.resolveIRI(pm, op.Predicate)
		if err != nil {
			return nil, fmt.Errorf("operation %d: predicate: %w", i, err)
		}
		action := Action(op.Action)
		switch action {
		case ActionReplace, ActionAdd, ActionRemove:
		default:
			return nil, fmt.Errorf("operation %d: unknown action %q", i, op.Action)
		}
		if action != ActionRemove && len(op.Objects) == 0 {
			return nil, fmt.Errorf("operation %d: action %q requires objects", i, op.Action)
		}

		var objects []rdf.Term
		for j, obj := range op.Objects {
			term, err := s.resolveObject(pm, obj)
			if err != nil {
				return nil, fmt.Errorf("operation %d: object %d: %w", i, j, err)
			}
			objects = append(objects, term)
		}
		p.Operations = append(p.Operations, Operation{
			Subject:   subject,
			Predicate: predicate,
			Action:    action,
			Objects:   objects,
		})
	}
	return p, nil
}

func (s *Spore) resolveIRI(pm *rdf.PrefixMap, name string) (rdf.IRI, error) {
	if name == "" {
		return "", fmt.Errorf("empty IRI")
	}
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") || strings.HasPrefix(name, "urn:") {
		return rdf.IRI(name), nil
	}
	iri, ok := pm.Expand(name)
	if !ok {
		return "", fmt.Errorf("undeclared prefix in %q", name)
	}
	return iri, nil
}

func (s *Spore) resolveObject(pm *rdf.PrefixMap, obj SporeObject) (rdf.Term, error) {
	switch {
	case obj.IRI != "" && obj.Literal != "":
		return nil, fmt.Errorf("object cannot be both iri and literal")
	case obj.IRI != "":
		return s.resolveIRI(pm, obj.IRI)
	case obj.Lang != "":
		return rdf.NewLangLiteral(obj.Literal, obj.Lang), nil
	case obj.Datatype != "":
		dt, err := s.resolveIRI(pm, obj.Datatype)
		if err != nil {
			return nil, err
		}
		return rdf.NewTypedLiteral(obj.Literal, dt), nil
	default:
		return rdf.NewLiteral(obj.Literal), nil
	}
}
