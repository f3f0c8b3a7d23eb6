package lexer

import (
	"emx/internal/diag"
	"emx/internal/token"
)

// scanString сканирует строковый литерал в одинарных или двойных кавычках.
// XPath-строки не имеют escape-последовательностей; Token.Text сохраняет
// исходные кавычки, чтобы транспилер мог воспроизвести их в display-форме.
func (lx *Lexer) scanString() token.Token {
	mark := lx.cursor.Mark()
	quote := lx.cursor.Bump() // открывающая кавычка

	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == quote {
			span := lx.cursor.SpanFrom(mark)
			return token.Token{Kind: token.StringLit, Span: span, Text: span.Text(lx.file.Content)}
		}
		if b == '\n' {
			break
		}
	}

	span := lx.cursor.SpanFrom(mark)
	lx.report(diag.LexUnterminatedString, span, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: span, Text: span.Text(lx.file.Content)}
}
