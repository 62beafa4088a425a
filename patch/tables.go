package patch

import (
	"github.com/ontoforge/guidance/rdf"
	"github.com/ontoforge/guidance/vocabulary/guidance"
)

// The canonical fixup tables for the guidance ontology. These are the values
// every validation rule and target is expected to carry; applying them
// restores the single-label, single-comment, single-priority invariant after
// ad hoc edits drift away from it.

type targetEntry struct {
	id      string
	label   string
	comment string
}

var validationTargets = []targetEntry{
	{"SyntaxValidation", "Syntax Validation", "Validates syntax rules and patterns"},
	{"SemanticValidation", "Semantic Validation", "Validates semantic rules and relationships"},
	{"SPOREValidation", "SPORE Validation", "Validates SPORE-specific rules"},
	{"ConsistencyValidation", "Consistency Validation", "Validates consistency rules"},
	{"SecurityValidation", "Security Validation", "Validates security rules"},
	{"InstallationValidation", "Installation Validation", "Validates installation rules"},
	{"SensitiveDataValidation", "Sensitive Data Validation", "Validates sensitive data patterns"},
}

type ruleEntry struct {
	id        string
	typeName  string
	message   string
	validator string
	target    string
}

var validationRules = []ruleEntry{
	{"SyntaxRule", "Syntax", "Validates syntax rules and patterns", "validate_syntax", "SyntaxValidation"},
	{"SemanticRule", "Semantic", "Validates semantic rules and relationships", "validate_semantic", "SemanticValidation"},
	{"SPORERule", "SPORE", "Validates SPORE-specific rules", "validate_spore", "SPOREValidation"},
	{"ConsistencyRule", "Consistency", "Validates consistency rules", "validate_consistency", "ConsistencyValidation"},
	{"SecurityRule", "Security", "Validates security rules", "validate_security", "SecurityValidation"},
	{"InstallationRule", "Installation", "Validates installation rules", "validate_installation", "InstallationValidation"},
	{"SensitiveDataRule", "SensitiveData", "Validates sensitive data patterns", "validate_sensitive_data", "SensitiveDataValidation"},
}

// CanonicalValidationPatch builds the patch that restores every validation
// rule and target to its canonical form.
func CanonicalValidationPatch() *Patch {
	p := &Patch{
		ID:          "canonical-validation",
		Description: "Restore canonical labels, comments, priorities, and targets on validation rules",
	}

	for _, t := range validationTargets {
		subject := guidance.Term(t.id)
		p.Operations = append(p.Operations,
			Operation{subject, rdf.RDFSLabel, ActionReplace, []rdf.Term{rdf.NewLangLiteral(t.label, "en")}},
			Operation{subject, rdf.RDFSComment, ActionReplace, []rdf.Term{rdf.NewLangLiteral(t.comment, "en")}},
			Operation{subject, rdf.RDFType, ActionAdd, []rdf.Term{guidance.ClassValidationTarget}},
		)
	}

	for _, r := range validationRules {
		subject := guidance.Term(r.id)
		p.Operations = append(p.Operations,
			Operation{subject, rdf.RDFType, ActionAdd, []rdf.Term{guidance.ClassValidationRule}},
			Operation{subject, rdf.RDFSLabel, ActionReplace, []rdf.Term{rdf.NewLangLiteral(r.id, "en")}},
			Operation{subject, rdf.RDFSComment, ActionReplace, []rdf.Term{rdf.NewLangLiteral(r.message, "en")}},
			Operation{subject, guidance.HasPriority, ActionReplace, []rdf.Term{rdf.NewLiteral(string(guidance.PriorityHigh))}},
			Operation{subject, guidance.HasType, ActionReplace, []rdf.Term{rdf.NewLiteral(r.typeName)}},
			Operation{subject, guidance.HasMessage, ActionReplace, []rdf.Term{rdf.NewLiteral(r.message)}},
			Operation{subject, guidance.HasValidator, ActionReplace, []rdf.Term{rdf.NewLiteral(r.validator)}},
			Operation{subject, guidance.HasTarget, ActionReplace, []rdf.Term{guidance.Term(r.target)}},
		)
	}
	return p
}
