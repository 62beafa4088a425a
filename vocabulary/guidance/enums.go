package guidance

import (
	"fmt"
	"strings"
)

// Priority is the rule priority enum. The canonical serialization is the
// upper-case string form.
type Priority string

const (
	// PriorityHigh marks rules that must never be violated.
	PriorityHigh Priority = "HIGH"

	// PriorityMedium marks rules that should hold but may be waived.
	PriorityMedium Priority = "MEDIUM"

	// PriorityLow marks advisory rules.
	PriorityLow Priority = "LOW"
)

// Valid reports whether p is one of the enum values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ParsePriority normalizes a priority literal. Older files carry integer
// codes (1/2/3) and mixed-case strings; both normalize to the enum.
func ParsePriority(value string) (Priority, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "HIGH", "1":
		return PriorityHigh, nil
	case "MEDIUM", "2":
		return PriorityMedium, nil
	case "LOW", "3":
		return PriorityLow, nil
	default:
		return "", fmt.Errorf("invalid priority %q", value)
	}
}
