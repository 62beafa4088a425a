package shacl

import "github.com/ontoforge/guidance/rdf"

// Namespace is the SHACL vocabulary namespace.
const Namespace = rdf.SHNamespace

// Shape and target vocabulary.
const (
	NodeShape     = rdf.IRI(Namespace + "NodeShape")
	PropertyShape = rdf.IRI(Namespace + "PropertyShape")
	TargetClass   = rdf.IRI(Namespace + "targetClass")
	TargetNode    = rdf.IRI(Namespace + "targetNode")
	Property      = rdf.IRI(Namespace + "property")
	Path          = rdf.IRI(Namespace + "path")
	Deactivated   = rdf.IRI(Namespace + "deactivated")
)

// Constraint parameters.
const (
	MinCount   = rdf.IRI(Namespace + "minCount")
	MaxCount   = rdf.IRI(Namespace + "maxCount")
	Datatype   = rdf.IRI(Namespace + "datatype")
	Class      = rdf.IRI(Namespace + "class")
	NodeKind   = rdf.IRI(Namespace + "nodeKind")
	In         = rdf.IRI(Namespace + "in")
	Pattern    = rdf.IRI(Namespace + "pattern")
	Flags      = rdf.IRI(Namespace + "flags")
	LanguageIn = rdf.IRI(Namespace + "languageIn")
	UniqueLang = rdf.IRI(Namespace + "uniqueLang")
	Message    = rdf.IRI(Namespace + "message")
	Severity   = rdf.IRI(Namespace + "severity")
)

// Node kind values.
const (
	NodeKindIRI          = rdf.IRI(Namespace + "IRI")
	NodeKindBlankNode    = rdf.IRI(Namespace + "BlankNode")
	NodeKindLiteral      = rdf.IRI(Namespace + "Literal")
	NodeKindBlankOrIRI   = rdf.IRI(Namespace + "BlankNodeOrIRI")
	NodeKindIRIOrLiteral = rdf.IRI(Namespace + "IRIOrLiteral")
)

// Severity values.
const (
	SeverityViolation = rdf.IRI(Namespace + "Violation")
	SeverityWarning   = rdf.IRI(Namespace + "Warning")
	SeverityInfo      = rdf.IRI(Namespace + "Info")
)

// Validation report vocabulary.
const (
	ValidationReportClass = rdf.IRI(Namespace + "ValidationReport")
	ValidationResultClass = rdf.IRI(Namespace + "ValidationResult")
	Conforms              = rdf.IRI(Namespace + "conforms")
	ResultProp            = rdf.IRI(Namespace + "result")
	FocusNode             = rdf.IRI(Namespace + "focusNode")
	ResultPath            = rdf.IRI(Namespace + "resultPath")
	Value                 = rdf.IRI(Namespace + "value")
	ResultMessage         = rdf.IRI(Namespace + "resultMessage")
	ResultSeverity        = rdf.IRI(Namespace + "resultSeverity")
	SourceShape           = rdf.IRI(Namespace + "sourceShape")
	SourceConstraint      = rdf.IRI(Namespace + "sourceConstraintComponent")
)

// Constraint component IRIs for sourceConstraintComponent.
const (
	MinCountComponent   = rdf.IRI(Namespace + "MinCountConstraintComponent")
	MaxCountComponent   = rdf.IRI(Namespace + "MaxCountConstraintComponent")
	DatatypeComponent   = rdf.IRI(Namespace + "DatatypeConstraintComponent")
	ClassComponent      = rdf.IRI(Namespace + "ClassConstraintComponent")
	NodeKindComponent   = rdf.IRI(Namespace + "NodeKindConstraintComponent")
	InComponent         = rdf.IRI(Namespace + "InConstraintComponent")
	PatternComponent    = rdf.IRI(Namespace + "PatternConstraintComponent")
	LanguageInComponent = rdf.IRI(Namespace + "LanguageInConstraintComponent")
	UniqueLangComponent = rdf.IRI(Namespace + "UniqueLangConstraintComponent")
)
