package lexer

import (
	"emx/internal/diag"
	"emx/internal/token"
)

// scanOperatorOrPunct сканирует операторы и пунктуацию, включая
// path-алгебру (| / // .. @ :: [ ]) — её отбрасывает транспилер, не лексер.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	mark := lx.cursor.Mark()

	mk := func(kind token.Kind) token.Token {
		span := lx.cursor.SpanFrom(mark)
		return token.Token{Kind: kind, Span: span, Text: span.Text(lx.file.Content)}
	}

	// Двухбайтовые — раньше однобайтовых (жадность).
	switch {
	case lx.try2('<', '='):
		return mk(token.LtEq)
	case lx.try2('>', '='):
		return mk(token.GtEq)
	case lx.try2('!', '='):
		return mk(token.BangEq)
	case lx.try2('=', '='):
		return mk(token.EqEq)
	case lx.try2('/', '/'):
		return mk(token.SlashSlash)
	case lx.try2('.', '.'):
		return mk(token.DotDot)
	case lx.try2(':', ':'):
		return mk(token.ColonColon)
	}

	switch b := lx.cursor.Bump(); b {
	case '+':
		return mk(token.Plus)
	case '-':
		return mk(token.Minus)
	case '*':
		return mk(token.Star)
	case '=':
		return mk(token.Eq)
	case '<':
		return mk(token.Lt)
	case '>':
		return mk(token.Gt)
	case '(':
		return mk(token.LParen)
	case ')':
		return mk(token.RParen)
	case ',':
		return mk(token.Comma)
	case '.':
		return mk(token.Dot)
	case '|':
		return mk(token.Pipe)
	case '/':
		return mk(token.Slash)
	case '@':
		return mk(token.At)
	case '[':
		return mk(token.LBracket)
	case ']':
		return mk(token.RBracket)
	default:
		tok := mk(token.Invalid)
		lx.report(diag.LexUnknownChar, tok.Span, "unknown character "+tok.Text)
		return tok
	}
}
