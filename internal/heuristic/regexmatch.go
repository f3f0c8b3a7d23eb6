package heuristic

import (
	"regexp"
	"strings"

	"emx/internal/ident"
)

// extractEmbeddedRegexMatch вытаскивает вызов regexMatch(a, b) из строки,
// которая в целом может не быть валидным XPath. Аргументы режутся вручную
// с учётом кавычек и скобок — грамматический парсер здесь не помощник.
func extractEmbeddedRegexMatch(src string) (string, bool) {
	idx := strings.Index(src, "regexMatch(")
	if idx < 0 {
		return "", false
	}

	inner, ok := callBody(src[idx+len("regexMatch("):])
	if !ok {
		return "", false
	}
	args := splitArgs(inner)
	if len(args) != 2 {
		return "", false
	}

	arg1 := strings.TrimSpace(args[0])
	arg2 := strings.TrimSpace(args[1])

	// Логическое выражение на месте первого аргумента — это замаскированное
	// булево условие, а не регулярка: возвращаем его без кавычек.
	if isLogical(arg1) {
		return stripOuterQuotes(arg1), true
	}

	p1, f1 := looksLikePattern(arg1), looksLikeField(arg1)
	p2, f2 := looksLikePattern(arg2), looksLikeField(arg2)

	switch {
	case p1 && f2 && !p2:
		return buildRegexMatch(arg1, arg2), true
	case p2 && f1 && !p1:
		return buildRegexMatch(arg2, arg1), true
	default:
		// Роли неразличимы — матч есть, поддержки нет.
		return "", true
	}
}

// callBody возвращает содержимое вызова до парной закрывающей скобки.
func callBody(s string) (string, bool) {
	depth := 1
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[:i], true
			}
		}
	}
	return "", false
}

// splitArgs режет список аргументов по запятым верхнего уровня.
func splitArgs(s string) []string {
	var args []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, s[start:i])
				start = i + 1
			}
		}
	}
	args = append(args, s[start:])
	return args
}

var (
	fieldRe      = regexp.MustCompile(`^\$?\{?[A-Za-z_][A-Za-z0-9_-]*\}?$`)
	comparisonRe = regexp.MustCompile(`>=|<=|!=|==|[<>=]`)
	boolKwRe     = regexp.MustCompile(`(?i)\b(and|or)\b`)
)

// isLogical: есть ли сравнение или булево ключевое слово вне
// символьного класса и вне кавычек содержимого.
func isLogical(s string) bool {
	bare := stripOuterQuotes(s)
	outside := outsideCharClass(bare)
	return comparisonRe.MatchString(outside) || boolKwRe.MatchString(outside)
}

// outsideCharClass возвращает строку с вырезанными [...] классами.
func outsideCharClass(s string) string {
	var b strings.Builder
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
				continue
			}
		}
		if depth == 0 && s[i] != '[' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// looksLikePattern: аргумент в форме поля паттерном не считаем, даже
// если сигил ${} содержит символ $.
func looksLikePattern(s string) bool {
	bare := stripOuterQuotes(s)
	if isFieldShaped(bare) {
		return false
	}
	return strings.ContainsAny(bare, "^$") || strings.Contains(bare, "[")
}

func looksLikeField(s string) bool {
	return isFieldShaped(stripOuterQuotes(s))
}

func isFieldShaped(s string) bool {
	return s == "." || fieldRe.MatchString(s)
}

func stripOuterQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// buildRegexMatch собирает нормализованный вызов: паттерн в одинарных
// кавычках первым, поле вторым, точка переписана в self. Имя поля
// проходит через общий санитайзер, как и во всех остальных путях
// рендеринга.
func buildRegexMatch(pattern, field string) string {
	p := stripOuterQuotes(pattern)
	f := stripOuterQuotes(field)
	if f == "." {
		f = "self"
	} else {
		f = ident.Sanitize(stripFieldSigils(f))
	}
	return "regexMatch('" + p + "', " + f + ")"
}

// stripFieldSigils снимает обёртку ${...} или {...} с имени поля.
func stripFieldSigils(s string) string {
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(s, "{")
	return strings.TrimSuffix(s, "}")
}
