package lexer

import (
	"emx/internal/token"
)

// scanIdentOrKeyword сканирует имя (поле или функцию) или ключевое слово.
// Дефис продолжает имя: в XPath string-length — одно имя, а вычитание
// требует пробела перед минусом.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	mark := lx.cursor.Mark()

	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	span := lx.cursor.SpanFrom(mark)
	text := span.Text(lx.file.Content)

	if kind, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kind, Span: span, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: span, Text: text}
}
