// Package sparql implements the query subset the guidance tooling relies
// on: SELECT and ASK over basic graph patterns, with prefixed names,
// transitive predicate paths (pred+), FILTER comparisons, regex, FILTER NOT
// EXISTS, DISTINCT, ORDER BY, LIMIT, and OFFSET.
//
// This is deliberately not a full SPARQL 1.1 engine. It covers the queries
// the check command and the /sparql endpoint actually run, such as the
// circular-hierarchy and property-domain diagnostics.
package sparql
