// Package patch applies declarative triple patches to ontology graphs.
//
// A Patch is a list of operations over (subject, predicate) slots. The
// replace action deletes every existing triple for the slot before inserting
// the canonical objects, which is how the toolkit re-enforces single-label /
// single-comment invariants after they drift. There is no conflict detection
// between patches: the last applied patch wins.
//
// A Spore is a distributable patch unit: the same operations described in a
// YAML manifest so a fix can be shipped and applied without a new binary.
package patch
