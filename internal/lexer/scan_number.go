package lexer

import (
	"emx/internal/diag"
	"emx/internal/token"
)

// scanNumber сканирует целые и десятичные литералы: 18, 3.14, .5
func (lx *Lexer) scanNumber() token.Token {
	mark := lx.cursor.Mark()
	kind := token.IntLit

	for !lx.cursor.EOF() && isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	// Дробная часть. Точка без цифры после — не часть числа (это Dot
	// или начало "..").
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		kind = token.FloatLit
		lx.cursor.Bump() // '.'
		for !lx.cursor.EOF() && isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	span := lx.cursor.SpanFrom(mark)
	text := span.Text(lx.file.Content)

	// 12abc — ошибка, а не два токена
	if !lx.cursor.EOF() && isIdentStartByte(lx.cursor.Peek()) {
		for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		bad := lx.cursor.SpanFrom(mark)
		lx.report(diag.LexBadNumber, bad, "malformed numeric literal "+bad.Text(lx.file.Content))
		return token.Token{Kind: token.Invalid, Span: bad, Text: bad.Text(lx.file.Content)}
	}

	return token.Token{Kind: kind, Span: span, Text: text}
}
