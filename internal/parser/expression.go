package parser

import (
	"emx/internal/ast"
	"emx/internal/diag"
	"emx/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() (ast.Expr, bool) {
	return p.parseBinaryExpr(precOr)
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
func (p *Parser) parseBinaryExpr(minPrec int) (ast.Expr, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return nil, false
	}

	for {
		tok := p.lx.Peek()

		prec, isRightAssoc := p.getBinaryOperatorPrec(tok.Kind)
		if prec == 0 || prec < minPrec {
			break
		}

		opTok := p.advance()

		nextMinPrec := prec + 1
		if isRightAssoc {
			nextMinPrec = prec
		}

		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			p.err(diag.SynExpectExpression, p.lastSpan, "expected expression after "+opTok.Text)
			return nil, false
		}

		left = &ast.Binary{
			Op:     opTok.Text,
			OpSpan: opTok.Span,
			Left:   left,
			Right:  right,
			Sp:     left.Span().Cover(right.Span()),
		}
	}

	return left, true
}

// parseUnaryExpr обрабатывает унарный минус: -x → (0 - x) с точки зрения
// диалекта не существует, но XPath допускает префиксный минус перед числом.
func (p *Parser) parseUnaryExpr() (ast.Expr, bool) {
	if p.at(token.Minus) {
		minusTok := p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			p.err(diag.SynExpectExpression, p.lastSpan, "expected expression after unary -")
			return nil, false
		}
		// Числовой литерал складываем в отрицательный литерал, остальное —
		// в бинарное вычитание из нуля, как делает сам XPath.
		if lit, isLit := operand.(*ast.Literal); isLit && lit.Kind == ast.LitNumber {
			lit.Value = "-" + lit.Value
			lit.Sp = minusTok.Span.Cover(lit.Sp)
			return lit, true
		}
		zero := &ast.Literal{Kind: ast.LitNumber, Value: "0", Sp: minusTok.Span}
		return &ast.Binary{
			Op:     "-",
			OpSpan: minusTok.Span,
			Left:   zero,
			Right:  operand,
			Sp:     minusTok.Span.Cover(operand.Span()),
		}, true
	}
	return p.parsePostfixExpr()
}

// parsePostfixExpr обрабатывает XPath-предикаты name[expr]; транспилер
// отбрасывает их как неподдерживаемую path-алгебру.
func (p *Parser) parsePostfixExpr() (ast.Expr, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return nil, false
	}

	for p.at(token.LBracket) {
		openTok := p.advance()
		inner, ok := p.parseExprInsidePredicate()
		if !ok {
			return nil, false
		}
		closeTok, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected closing ]")
		if !ok {
			return nil, false
		}
		expr = &ast.Binary{
			Op:     "[]",
			OpSpan: openTok.Span.Cover(closeTok.Span),
			Left:   expr,
			Right:  inner,
			Sp:     expr.Span().Cover(closeTok.Span),
		}
	}

	return expr, true
}

func (p *Parser) parseExprInsidePredicate() (ast.Expr, bool) {
	return p.parseBinaryExpr(precOr)
}

func (p *Parser) parsePrimaryExpr() (ast.Expr, bool) {
	tok := p.lx.Peek()

	switch tok.Kind {
	case token.LParen:
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected closing )"); !ok {
			return nil, false
		}
		return inner, true

	case token.IntLit, token.FloatLit:
		p.advance()
		return &ast.Literal{Kind: ast.LitNumber, Value: tok.Text, Sp: tok.Span}, true

	case token.StringLit:
		p.advance()
		// Text содержит исходные кавычки; Value — содержимое без них.
		return &ast.Literal{
			Kind:    ast.LitString,
			Value:   tok.Text[1 : len(tok.Text)-1],
			Display: tok.Text,
			Sp:      tok.Span,
		}, true

	case token.Dot:
		p.advance()
		return &ast.PathRef{
			Steps: []ast.Step{{Axis: ast.AxisSelf, Sp: tok.Span}},
			Sp:    tok.Span,
		}, true

	case token.DotDot:
		p.advance()
		return &ast.PathRef{
			Steps: []ast.Step{{Axis: ast.AxisParent, Sp: tok.Span}},
			Sp:    tok.Span,
		}, true

	case token.At:
		atTok := p.advance()
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected attribute name after @")
		if !ok {
			return nil, false
		}
		sp := atTok.Span.Cover(nameTok.Span)
		return &ast.PathRef{
			Steps: []ast.Step{{Name: nameTok.Text, Axis: ast.AxisAttribute, Sp: sp}},
			Sp:    sp,
		}, true

	case token.Ident:
		p.advance()
		if p.at(token.LParen) {
			return p.parseCallArgs(tok)
		}
		return &ast.PathRef{
			Steps: []ast.Step{{Name: tok.Text, Sp: tok.Span}},
			Sp:    tok.Span,
		}, true

	case token.Star:
		// одиночная * как node-test (a/*) — path-алгебра
		p.advance()
		return &ast.PathRef{
			Steps: []ast.Step{{Name: "*", Sp: tok.Span}},
			Sp:    tok.Span,
		}, true

	default:
		if tok.Kind == token.EOF {
			p.err(diag.SynUnexpectedToken, p.lastSpan, "unexpected end of expression")
		} else {
			p.err(diag.SynUnexpectedToken, tok.Span, "unexpected token "+tok.Text)
		}
		return nil, false
	}
}

// parseCallArgs разбирает список аргументов после имени функции.
func (p *Parser) parseCallArgs(nameTok token.Token) (ast.Expr, bool) {
	p.advance() // (

	call := &ast.FuncCall{
		Name:     nameTok.Text,
		NameSpan: nameTok.Span,
	}

	if p.at(token.RParen) {
		closeTok := p.advance()
		call.Sp = nameTok.Span.Cover(closeTok.Span)
		return call, true
	}

	for {
		arg, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		call.Args = append(call.Args, arg)

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ) after arguments of "+nameTok.Text)
	if !ok {
		return nil, false
	}
	call.Sp = nameTok.Span.Cover(closeTok.Span)
	return call, true
}
