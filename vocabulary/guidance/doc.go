// Package guidance defines the IRI vocabulary of the guidance ontology:
// the classes and properties that validation rules, validation targets, and
// model modules are expressed with, plus the priority enum those rules carry.
//
// The namespace matches the published guidance ontology so graphs patched by
// this toolkit stay interoperable with files produced by earlier tooling.
package guidance
