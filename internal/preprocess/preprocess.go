// Package preprocess normalizes a raw XLSForm expression before parsing.
// The passes are plain string rewrites, applied in a fixed order; the
// output feeds the lexer and parser.
package preprocess

import (
	"regexp"
	"strings"

	"emx/internal/ident"
)

var (
	// ${field_name} — ссылка на поле через template-сигил
	fieldRefRe = regexp.MustCompile(`\$\{\s*([^}]+?)\s*\}`)

	// selected(field, 'value') в любой комбинации: с остатком фигурных
	// скобок или без, с любыми кавычками.
	selectedRe = regexp.MustCompile(`selected\(\s*\{?\s*([A-Za-z_][A-Za-z0-9_-]*)\s*\}?\s*,\s*(?:'([^']*)'|"([^"]*)")\s*\)`)

	// AND / OR в любом регистре, на границах слов
	boolKwRe = regexp.MustCompile(`(?i)\b(and|or)\b`)

	// current() и self::node() — полные написания текущего поля
	currentFieldRe = regexp.MustCompile(`\bcurrent\(\s*\)|\bself::node\(\s*\)`)
)

// Normalize применяет все проходы по порядку. Чистая функция.
func Normalize(src string) string {
	src = rewriteFieldRefs(src)
	src = rewriteSelected(src)
	src = lowerBoolKeywords(src)
	src = rewriteCurrentField(src)
	return src
}

// rewriteFieldRefs заменяет каждый ${name} на sanitize(name).
func rewriteFieldRefs(src string) string {
	return fieldRefRe.ReplaceAllStringFunc(src, func(m string) string {
		inner := fieldRefRe.FindStringSubmatch(m)[1]
		return ident.Sanitize(inner)
	})
}

// rewriteSelected превращает selected(field, 'v') в (field=="v") напрямую,
// минуя таблицу функций: selected не обобщается до n-арного вызова, а её
// значение обязано рендериться в двойных кавычках независимо от исходных.
func rewriteSelected(src string) string {
	return selectedRe.ReplaceAllStringFunc(src, func(m string) string {
		groups := selectedRe.FindStringSubmatch(m)
		field := ident.Sanitize(groups[1])
		value := groups[2]
		if groups[3] != "" || (groups[2] == "" && strings.Contains(m, `"`)) {
			value = groups[3]
		}
		return "(" + field + `=="` + value + `")`
	})
}

// lowerBoolKeywords приводит AND/OR к lowercase вне строковых литералов,
// чтобы сработали ключевые слова лексера. 'AND' внутри кавычек —
// сравниваемое значение, не оператор.
func lowerBoolKeywords(src string) string {
	var b strings.Builder
	i := 0
	for i < len(src) {
		c := src[i]
		if c == '\'' || c == '"' {
			end := strings.IndexByte(src[i+1:], c)
			if end < 0 {
				// незакрытая кавычка: хвост остаётся как есть,
				// лексер сам его отвергнет
				b.WriteString(src[i:])
				return b.String()
			}
			b.WriteString(src[i : i+end+2])
			i += end + 2
			continue
		}
		start := i
		for i < len(src) && src[i] != '\'' && src[i] != '"' {
			i++
		}
		b.WriteString(boolKwRe.ReplaceAllStringFunc(src[start:i], strings.ToLower))
	}
	return b.String()
}

// rewriteCurrentField нормализует полные написания текущего поля к ".",
// который парсер принимает как self-шаг.
func rewriteCurrentField(src string) string {
	return currentFieldRe.ReplaceAllString(src, ".")
}
