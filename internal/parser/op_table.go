package parser

import (
	"emx/internal/token"
)

// Приоритеты бинарных операторов, от слабых к сильным. Сравнения
// неассоциативны в XPath, но разбираем их лево-ассоциативно — транспилер
// никогда не увидит разницу на поддерживаемом подмножестве.
const (
	precOr = iota + 1
	precAnd
	precCompare
	precAdditive
	precMultiplicative
	precUnion
	precPath
)

// getBinaryOperatorPrec возвращает приоритет бинарного оператора
// и флаг право-ассоциативности (в диалекте таких нет).
func (p *Parser) getBinaryOperatorPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.KwOr:
		return precOr, false
	case token.KwAnd:
		return precAnd, false
	case token.Eq, token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precCompare, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.KwDiv, token.KwMod:
		return precMultiplicative, false
	case token.Pipe:
		return precUnion, false
	case token.Slash, token.SlashSlash, token.ColonColon:
		return precPath, false
	default:
		return 0, false
	}
}
