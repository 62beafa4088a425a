// Package shacl validates RDF graphs against SHACL node shapes.
//
// The validator covers the constraint components the guidance ontologies
// use: cardinality (sh:minCount / sh:maxCount), sh:datatype, sh:class,
// sh:nodeKind, sh:in, sh:pattern, sh:languageIn, and sh:uniqueLang. Shapes
// and data may live in the same graph. An optional RDFS inference pre-pass
// materializes subclass, subproperty, domain, and range entailments before
// checking, matching how the original validation pipeline ran with
// inference enabled.
package shacl
