package guidance

import "github.com/ontoforge/guidance/rdf"

// Namespace is the base IRI prefix for guidance ontology terms.
const Namespace = rdf.GuidanceNamespace

// Class IRIs define the types of guidance entities.
const (
	// ClassValidationRule represents a validation rule definition.
	ClassValidationRule = rdf.IRI(Namespace + "ValidationRule")

	// ClassValidationTarget represents the scope a rule validates.
	ClassValidationTarget = rdf.IRI(Namespace + "ValidationTarget")

	// ClassModelModule represents a module of the guidance model.
	ClassModelModule = rdf.IRI(Namespace + "ModelModule")

	// ClassValidationPattern represents a reusable validation pattern.
	ClassValidationPattern = rdf.IRI(Namespace + "ValidationPattern")
)

// Property IRIs define rule attributes and relationships.
const (
	// HasPriority is the rule priority. Canonical values are the Priority
	// enum strings; legacy files also carry integer codes.
	HasPriority = rdf.IRI(Namespace + "hasPriority")

	// HasMessage is the human-readable message reported on violation.
	HasMessage = rdf.IRI(Namespace + "hasMessage")

	// HasValidator names the validator procedure for the rule.
	HasValidator = rdf.IRI(Namespace + "hasValidator")

	// HasTarget links a rule to its validation target.
	HasTarget = rdf.IRI(Namespace + "hasTarget")

	// HasType is the rule type literal (e.g. "Syntax", "Semantic").
	HasType = rdf.IRI(Namespace + "hasType")

	// HasRuleType links a rule to its type individual.
	HasRuleType = rdf.IRI(Namespace + "hasRuleType")

	// HasValidationRule links a target back to the rules that cover it.
	HasValidationRule = rdf.IRI(Namespace + "hasValidationRule")

	// ImportsModule links a model module to the modules it imports.
	ImportsModule = rdf.IRI(Namespace + "importsModule")
)

// Term returns the IRI of a guidance-namespace local name.
func Term(local string) rdf.IRI {
	return rdf.IRI(Namespace + local)
}
