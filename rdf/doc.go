// Package rdf implements the in-memory triple model used across the
// guidance toolkit: terms (IRIs, blank nodes, literals), triples, an
// indexed mutable graph with set semantics, prefix management, and a
// blank-node-aware isomorphism check.
//
// Graphs are not safe for concurrent mutation; callers that share a graph
// across goroutines (e.g. the HTTP server) guard it themselves.
package rdf
