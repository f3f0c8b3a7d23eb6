// Package heuristic recognizes constraint shapes that are valid in the
// source dialect but inexpressible as boolean EM code: numeric ranges
// that become digit-count regexes, raw regex patterns pasted straight
// into the constraint column, and regexMatch calls embedded in text that
// would not parse as XPath at all. It runs on the raw constraint string,
// before the preprocessor.
package heuristic

// strategy couples a recognizer with its builder. Strategies are tried
// in order; the first match wins. A match may still produce an empty
// result, which means "recognized but unsupported" — the caller must
// not fall through to AST transpilation in that case.
type strategy struct {
	name  string
	apply func(src string) (string, bool)
}

var strategies = []strategy{
	{"range", extractRange},
	{"min-only", extractMinOnly},
	{"max-only", extractMaxOnly},
	{"raw-regex", extractRawRegex},
	{"embedded-regexmatch", extractEmbeddedRegexMatch},
}

// Extract tries each constraint shape in order. The boolean reports
// whether any shape matched; on false the constraint should go through
// the regular preprocess → parse → transpile pipeline.
func Extract(src string) (string, bool) {
	for _, s := range strategies {
		if out, ok := s.apply(src); ok {
			return out, true
		}
	}
	return "", false
}
