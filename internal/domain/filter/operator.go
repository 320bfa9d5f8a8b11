package filter

import "strings"

// Operator names a comparison applied between a field and a condition value.
type Operator string

const (
	// OpEq matches equal strings.
	OpEq Operator = "eq"
	// OpNe matches different strings.
	OpNe Operator = "ne"
	// OpGt matches fields lexicographically greater than the value.
	OpGt Operator = "gt"
	// OpLt matches fields lexicographically less than the value.
	OpLt Operator = "lt"
	// OpGe matches fields lexicographically greater than or equal to the value.
	OpGe Operator = "ge"
	// OpLe matches fields lexicographically less than or equal to the value.
	OpLe Operator = "le"
	// OpContains is a case-insensitive substring match.
	OpContains Operator = "contains"
	// OpStartsWith is a case-insensitive prefix match.
	OpStartsWith Operator = "startswith"
	// OpEndsWith is a case-insensitive suffix match.
	OpEndsWith Operator = "endswith"
	// OpIn matches when the field occurs within the value.
	OpIn Operator = "in"
)

// Valid reports whether o is one of the known operators.
func (o Operator) Valid() bool {
	switch o {
	case OpEq, OpNe, OpGt, OpLt, OpGe, OpLe,
		OpContains, OpStartsWith, OpEndsWith, OpIn:
		return true
	default:
		return false
	}
}

// eval applies o to the stringified field and value.
// Comparisons are byte-wise lexicographic, so "10" < "9".
func (o Operator) eval(field, value string) bool {
	switch o {
	case OpEq:
		return field == value
	case OpNe:
		return field != value
	case OpGt:
		return field > value
	case OpLt:
		return field < value
	case OpGe:
		return field >= value
	case OpLe:
		return field <= value
	case OpContains:
		return strings.Contains(strings.ToLower(field), strings.ToLower(value))
	case OpStartsWith:
		return strings.HasPrefix(strings.ToLower(field), strings.ToLower(value))
	case OpEndsWith:
		return strings.HasSuffix(strings.ToLower(field), strings.ToLower(value))
	case OpIn:
		// value is a plain string, so membership degrades to a substring test.
		return strings.Contains(value, field)
	default:
		return true
	}
}
