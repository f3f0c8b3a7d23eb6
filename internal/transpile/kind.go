package transpile

// Kind classifies what a survey expression is used for. It decides how
// equality renders (assignment-style `=` in calculations) and, at the
// conversion boundary, which fallback applies and whether the constraint
// heuristics run first.
type Kind uint8

const (
	// KindRelevance is a show/hide condition.
	KindRelevance Kind = iota
	// KindConstraint is an answer validation rule.
	KindConstraint
	// KindCalculation is a computed value expression.
	KindCalculation
)

func (k Kind) String() string {
	switch k {
	case KindRelevance:
		return "relevance"
	case KindConstraint:
		return "constraint"
	case KindCalculation:
		return "calculation"
	}
	return "unknown"
}

// ParseKind maps the textual kind used in logic files back to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "relevance":
		return KindRelevance, true
	case "constraint":
		return KindConstraint, true
	case "calculation":
		return KindCalculation, true
	}
	return 0, false
}
