// Package validate performs a static sanity check over generated
// expression-manager scripts. It never builds an AST: balanced
// delimiters, quote state, known function names and a few token-level
// rules are enough to catch the breakage the converter can produce.
package validate

import (
	"fmt"
	"unicode"

	"emx/internal/diag"
)

// Finding — одно замечание проверки с кодом диагностики.
type Finding struct {
	Code    diag.Code
	Message string
}

func (f Finding) String() string {
	return f.Code.ID() + ": " + f.Message
}

// knownFunctions lists the callables the target runtime exposes. It is
// a superset of what the converter emits: the runtime also has math and
// string helpers that are valid in hand-written scripts.
var knownFunctions = map[string]struct{}{
	"abs":        {},
	"ceil":       {},
	"contains":   {},
	"count":      {},
	"date":       {},
	"endsWith":   {},
	"floor":      {},
	"if":         {},
	"implode":    {},
	"intval":     {},
	"is_empty":   {},
	"is_numeric": {},
	"join":       {},
	"ltrim":      {},
	"max":        {},
	"min":        {},
	"now":        {},
	"pow":        {},
	"rand":       {},
	"regexMatch": {},
	"round":      {},
	"rtrim":      {},
	"sprintf":    {},
	"sqrt":       {},
	"startsWith": {},
	"str_replace": {},
	"strlen":     {},
	"strpos":     {},
	"strstr":     {},
	"strtolower": {},
	"strtoupper": {},
	"substr":     {},
	"sum":        {},
	"time":       {},
	"today":      {},
	"trim":       {},
}

// wordOperators — словоформы операторов: перед скобкой группы они не
// являются вызовом функции.
var wordOperators = map[string]struct{}{
	"and": {},
	"or":  {},
	"not": {},
}

// knownOperators lists the symbol operators the target runtime has.
// Anything else the converter could only produce by mistake.
var knownOperators = map[string]struct{}{
	"+": {}, "-": {}, "*": {}, "/": {}, "%": {},
	"=": {}, "==": {}, "!=": {}, "!": {},
	"<": {}, "<=": {}, ">": {}, ">=": {},
}

// IsValid сообщает, прошёл ли скрипт проверку без замечаний.
func IsValid(expr string) bool {
	return len(Check(expr)) == 0
}

// Check возвращает список найденных проблем; пустой список — скрипт
// чистый. Вход не изменяется.
func Check(expr string) []Finding {
	return CheckWith(expr, nil)
}

// CheckWith is Check with extra function names allowed on top of the
// built-in table. Projects extend the target runtime with custom
// helpers; the manifest lists them.
func CheckWith(expr string, extraFunctions []string) []Finding {
	var findings []Finding

	findings = append(findings, checkBalance(expr)...)
	findings = append(findings, checkTokens(expr, extraFunctions)...)
	findings = append(findings, checkOperators(expr)...)

	return findings
}

// checkBalance проверяет скобки и кавычки одним проходом. Внутри
// строки скобки не считаются; обратный слеш экранирует кавычку.
func checkBalance(expr string) []Finding {
	var findings []Finding
	parens := 0
	brackets := 0
	var quote byte

	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(':
			parens++
		case ')':
			parens--
			if parens < 0 {
				findings = append(findings, Finding{diag.ValUnbalancedParens, "Unbalanced parentheses"})
				parens = 0
			}
		case '[':
			brackets++
		case ']':
			brackets--
			if brackets < 0 {
				findings = append(findings, Finding{diag.ValUnbalancedBrackets, "Unbalanced brackets"})
				brackets = 0
			}
		}
	}

	if parens > 0 {
		findings = append(findings, Finding{diag.ValUnbalancedParens, "Unbalanced parentheses"})
	}
	if brackets > 0 {
		findings = append(findings, Finding{diag.ValUnbalancedBrackets, "Unbalanced brackets"})
	}
	if quote == '\'' {
		findings = append(findings, Finding{diag.ValUnbalancedQuotes, "Unbalanced single quotes"})
	}
	if quote == '"' {
		findings = append(findings, Finding{diag.ValUnbalancedQuotes, "Unbalanced double quotes"})
	}
	return findings
}

// checkTokens проверяет имена: вызов неизвестной функции и переменная,
// начинающаяся с цифры. Содержимое строковых литералов пропускается.
func checkTokens(expr string, extraFunctions []string) []Finding {
	var findings []Finding

	for _, tok := range scanWords(expr) {
		if _, ok := wordOperators[tok.text]; ok {
			continue
		}
		if tok.called {
			if _, ok := knownFunctions[tok.text]; !ok && !contains(extraFunctions, tok.text) {
				findings = append(findings, Finding{diag.ValUnsupportedFunction, fmt.Sprintf("Unsupported function: %s", tok.text)})
			}
			continue
		}
		if startsWithDigit(tok.text) && !isNumber(tok.text) {
			findings = append(findings, Finding{diag.ValBadVariableName, fmt.Sprintf("Invalid variable name: %s", tok.text)})
		}
	}
	return findings
}

type word struct {
	text   string
	called bool // immediately followed by '('
}

// scanWords выделяет слова вне кавычек и помечает те, за которыми
// следует открывающая скобка.
func scanWords(expr string) []word {
	var words []word
	var quote byte

	i := 0
	for i < len(expr) {
		c := expr[i]
		if quote != 0 {
			if c == '\\' {
				i += 2
				continue
			}
			if c == quote {
				quote = 0
			}
			i++
			continue
		}
		if c == '\'' || c == '"' {
			quote = c
			i++
			continue
		}
		if isWordByte(c) {
			start := i
			for i < len(expr) && isWordByte(expr[i]) {
				i++
			}
			text := expr[start:i]
			j := i
			for j < len(expr) && expr[j] == ' ' {
				j++
			}
			words = append(words, word{
				text:   text,
				called: j < len(expr) && expr[j] == '(',
			})
			continue
		}
		i++
	}
	return words
}

// checkOperators ищет ряды знаков операторов вне кавычек и сверяет их
// с таблицей известных. Слитный ряд режется жадно по самым длинным
// известным операторам: "<=-" это "<=" и унарный "-", а вот "&&"
// не разбирается и репортится целиком.
func checkOperators(expr string) []Finding {
	var findings []Finding
	var quote byte

	i := 0
	for i < len(expr) {
		c := expr[i]
		if quote != 0 {
			if c == '\\' {
				i += 2
				continue
			}
			if c == quote {
				quote = 0
			}
			i++
			continue
		}
		if c == '\'' || c == '"' {
			quote = c
			i++
			continue
		}
		if !isOperatorByte(c) {
			i++
			continue
		}
		start := i
		for i < len(expr) && isOperatorByte(expr[i]) {
			i++
		}
		for _, op := range splitOperators(expr[start:i]) {
			if _, ok := knownOperators[op]; !ok {
				findings = append(findings, Finding{
					diag.ValUnknownOperator,
					fmt.Sprintf("Unknown operator: %s", op),
				})
			}
		}
	}
	return findings
}

func splitOperators(run string) []string {
	var ops []string
	for len(run) > 0 {
		if len(run) >= 2 {
			if _, ok := knownOperators[run[:2]]; ok {
				ops = append(ops, run[:2])
				run = run[2:]
				continue
			}
		}
		if _, ok := knownOperators[run[:1]]; ok {
			ops = append(ops, run[:1])
			run = run[1:]
			continue
		}
		return append(ops, run)
	}
	return ops
}

func isOperatorByte(c byte) bool {
	switch c {
	case '+', '-', '*', '/', '%', '<', '>', '=', '!', '&', '|', ';':
		return true
	}
	return false
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' ||
		c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func startsWithDigit(s string) bool {
	return s != "" && unicode.IsDigit(rune(s[0]))
}

func isNumber(s string) bool {
	dot := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '.' {
			if dot {
				return false
			}
			dot = true
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
