package rdf

import (
	"sort"
	"strings"
)

// PrefixMap manages prefix to namespace bindings for compact IRI rendering.
type PrefixMap struct {
	byPrefix map[string]string
}

// NewPrefixMap returns a prefix map preloaded with the well-known bindings
// every guidance ontology uses.
func NewPrefixMap() *PrefixMap {
	pm := &PrefixMap{byPrefix: make(map[string]string)}
	pm.Bind("rdf", RDFNamespace)
	pm.Bind("rdfs", RDFSNamespace)
	pm.Bind("owl", OWLNamespace)
	pm.Bind("xsd", XSDNamespace)
	pm.Bind("skos", SKOSNamespace)
	pm.Bind("dct", DCTNamespace)
	pm.Bind("sh", SHNamespace)
	pm.Bind("guidance", GuidanceNamespace)
	return pm
}

// Bind associates a prefix with a namespace. Rebinding a prefix replaces the
// previous namespace, matching Turtle @prefix semantics.
func (pm *PrefixMap) Bind(prefix, namespace string) {
	pm.byPrefix[prefix] = namespace
}

// Expand resolves a prefixed name ("rdfs:label") against the bindings. The
// second return is false when the prefix is not bound.
func (pm *PrefixMap) Expand(qname string) (IRI, bool) {
	idx := strings.Index(qname, ":")
	if idx < 0 {
		return "", false
	}
	ns, ok := pm.byPrefix[qname[:idx]]
	if !ok {
		return "", false
	}
	return IRI(ns + qname[idx+1:]), true
}

// Compact renders an IRI as a prefixed name when a binding covers it and the
// local part is a safe prefixed-name local. The second return is false when
// no binding applies.
func (pm *PrefixMap) Compact(iri IRI) (string, bool) {
	var bestPrefix, bestNS string
	for prefix, ns := range pm.byPrefix {
		if strings.HasPrefix(string(iri), ns) && len(ns) > len(bestNS) {
			bestPrefix, bestNS = prefix, ns
		}
	}
	if bestNS == "" {
		return "", false
	}
	local := string(iri)[len(bestNS):]
	if !safeLocalPart(local) {
		return "", false
	}
	return bestPrefix + ":" + local, true
}

// Bindings returns a copy of the prefix to namespace map.
func (pm *PrefixMap) Bindings() map[string]string {
	out := make(map[string]string, len(pm.byPrefix))
	for p, ns := range pm.byPrefix {
		out[p] = ns
	}
	return out
}

// SortedPrefixes returns the bound prefixes in lexical order.
func (pm *PrefixMap) SortedPrefixes() []string {
	out := make([]string, 0, len(pm.byPrefix))
	for p := range pm.byPrefix {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// safeLocalPart reports whether a local name can be written unescaped in a
// prefixed name. Conservative: starts with a letter, digit, or underscore;
// hyphen and non-terminal dot are allowed after that.
func safeLocalPart(local string) bool {
	if local == "" {
		return false
	}
	for i, r := range local {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_':
		case r == '-' && i != 0:
		case r == '.' && i != 0 && i != len(local)-1:
		default:
			return false
		}
	}
	return true
}
