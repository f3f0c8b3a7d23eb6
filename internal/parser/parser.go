// Package parser turns a normalized dialect expression into an ast.Expr.
// It accepts the full XPath-shaped surface — including path algebra the
// target engine cannot express — so that rejection happens downstream
// with a precise operator name, not here with a vague syntax error.
package parser

import (
	"emx/internal/ast"
	"emx/internal/diag"
	"emx/internal/lexer"
	"emx/internal/source"
	"emx/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Parser — состояние парсера на одно выражение
type Parser struct {
	lx       *lexer.Lexer
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseExpression разбирает одно выражение целиком. Возвращает дерево и
// флаг успеха; при ошибке диагностика уже ушла в Reporter.
func ParseExpression(lx *lexer.Lexer, opts Options) (ast.Expr, bool) {
	p := &Parser{
		lx:       lx,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	if p.at(token.EOF) {
		p.err(diag.SynEmptyExpression, p.lx.EmptySpan(), "empty expression")
		return nil, false
	}

	expr, ok := p.parseExpr()
	if !ok {
		return nil, false
	}

	if !p.at(token.EOF) {
		tok := p.lx.Peek()
		p.err(diag.SynTrailingInput, tok.Span, "unexpected input after expression: "+tok.Text)
		return nil, false
	}

	return expr, true
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	p.lastSpan = tok.Span
	return tok
}

func (p *Parser) err(code diag.Code, sp source.Span, msg string) {
	if p.opts.Enough() {
		return
	}
	p.opts.CurrentErrors++
	diag.ReportError(p.opts.Reporter, code, sp, msg)
}

// expect съедает токен заданного вида или репортит ошибку.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	tok := p.lx.Peek()
	sp := tok.Span
	if tok.Kind == token.EOF {
		sp = p.lastSpan
	}
	p.err(code, sp, msg)
	return token.Token{}, false
}
