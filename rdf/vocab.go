package rdf

// Core W3C namespace prefixes.
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNamespace  = "http://www.w3.org/2002/07/owl#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"
	SKOSNamespace = "http://www.w3.org/2004/02/skos/core#"
	DCTNamespace  = "http://purl.org/dc/terms/"
	SHNamespace   = "http://www.w3.org/ns/shacl#"
)

// GuidanceNamespace is the base IRI prefix for guidance ontology terms.
// Bound in every default prefix map so patched files compact consistently.
const GuidanceNamespace = "https://raw.githubusercontent.com/louspringer/ontology-framework/main/guidance#"

// RDF vocabulary terms.
const (
	RDFType  IRI = RDFNamespace + "type"
	RDFFirst IRI = RDFNamespace + "first"
	RDFRest  IRI = RDFNamespace + "rest"
	RDFNil   IRI = RDFNamespace + "nil"

	RDFLangString IRI = RDFNamespace + "langString"
)

// RDFS vocabulary terms.
const (
	RDFSClass         IRI = RDFSNamespace + "Class"
	RDFSLabel         IRI = RDFSNamespace + "label"
	RDFSComment       IRI = RDFSNamespace + "comment"
	RDFSSubClassOf    IRI = RDFSNamespace + "subClassOf"
	RDFSSubPropertyOf IRI = RDFSNamespace + "subPropertyOf"
	RDFSDomain        IRI = RDFSNamespace + "domain"
	RDFSRange         IRI = RDFSNamespace + "range"
	RDFSSeeAlso       IRI = RDFSNamespace + "seeAlso"
	RDFSIsDefinedBy   IRI = RDFSNamespace + "isDefinedBy"
)

// OWL vocabulary terms.
const (
	OWLOntology       IRI = OWLNamespace + "Ontology"
	OWLClass          IRI = OWLNamespace + "Class"
	OWLObjectProperty IRI = OWLNamespace + "ObjectProperty"
	OWLDataProperty   IRI = OWLNamespace + "DatatypeProperty"
	OWLVersionInfo    IRI = OWLNamespace + "versionInfo"
	OWLImports        IRI = OWLNamespace + "imports"
)

// XSD datatype IRIs.
const (
	XSDString   IRI = XSDNamespace + "string"
	XSDBoolean  IRI = XSDNamespace + "boolean"
	XSDInteger  IRI = XSDNamespace + "integer"
	XSDDecimal  IRI = XSDNamespace + "decimal"
	XSDDouble   IRI = XSDNamespace + "double"
	XSDDate     IRI = XSDNamespace + "date"
	XSDDateTime IRI = XSDNamespace + "dateTime"
	XSDAnyURI   IRI = XSDNamespace + "anyURI"
)
