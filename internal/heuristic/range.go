package heuristic

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	rangeRe = regexp.MustCompile(`^\s*\.\s*>=\s*(\d+)\s+and\s+\.\s*<=\s*(\d+)\s*$`)
	minRe   = regexp.MustCompile(`^\s*\.\s*>=\s*(\d+)\s*$`)
	maxRe   = regexp.MustCompile(`^\s*\.\s*<=\s*(\d+)\s*$`)
)

// extractRange превращает ". >= N and . <= M" в регулярку по числу цифр:
// равные разрядности дают фиксированную длину, разные — диапазон длин.
func extractRange(src string) (string, bool) {
	m := rangeRe.FindStringSubmatch(src)
	if m == nil {
		return "", false
	}
	dmin := len(m[1])
	dmax := len(m[2])
	if dmin > dmax {
		dmin, dmax = dmax, dmin
	}
	if dmin == dmax {
		return fmt.Sprintf(`/^\d{%d}$/`, dmin), true
	}
	return fmt.Sprintf(`/^\d{%d,%d}$/`, dmin, dmax), true
}

// extractMinOnly: ". >= N" → минимум len(N) цифр.
func extractMinOnly(src string) (string, bool) {
	m := minRe.FindStringSubmatch(src)
	if m == nil {
		return "", false
	}
	return fmt.Sprintf(`/^\d{%d,}$/`, len(m[1])), true
}

// extractMaxOnly: ". <= N" → от одной до len(N) цифр.
func extractMaxOnly(src string) (string, bool) {
	m := maxRe.FindStringSubmatch(src)
	if m == nil {
		return "", false
	}
	return fmt.Sprintf(`/^\d{1,%d}$/`, len(m[1])), true
}

// extractRawRegex пропускает строку как есть, если она уже выглядит как
// регулярное выражение, а не XPath: якорь в начале и либо якорь в конце,
// либо квантификатор внутри.
func extractRawRegex(src string) (string, bool) {
	s := strings.TrimSpace(src)
	if s == "" {
		return "", false
	}

	startsLikeRegex := s[0] == '^' || s[0] == '.' || s[0] == '['
	if !startsLikeRegex {
		return "", false
	}
	endsAnchored := strings.HasSuffix(s, "$")
	hasQuantifier := strings.ContainsAny(s, "*+?")
	if !endsAnchored && !hasQuantifier {
		return "", false
	}
	return src, true
}
