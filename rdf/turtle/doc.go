// Package turtle reads and writes the Turtle and N-Triples RDF
// serializations. The decoder covers the Turtle constructs that occur in
// guidance ontologies: prefix and base directives, prefixed names, blank
// node property lists, collections, and language-tagged or datatyped
// literals. The encoder produces deterministic, prefix-compacted output so
// that repeated serializations of the same graph are byte-identical.
package turtle
