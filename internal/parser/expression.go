package parser

import (
	"strings"

	"kiln/internal/ast"
	"kiln/internal/diag"
	"kiln/internal/source"
	"kiln/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
// Возвращает ExprID и флаг успеха
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		tok := p.lx.Peek()
		prec := p.getBinaryOperatorPrec(tok.Kind)
		if prec < 0 || prec < minPrec {
			break
		}
		opTok := p.advance()

		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}

		// позиция бинарного узла: позиция оператора
		op := p.tokenKindToBinaryOp(opTok.Kind)
		left = p.arenas.Exprs.NewBinary(opTok.Pos, op, left, right)
	}

	return left, true
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы)
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	type prefixOp struct {
		op  ast.UnaryOp
		pos source.Pos
	}

	var prefixes []prefixOp
	for {
		op, ok := p.getUnaryOperator(p.lx.Peek().Kind)
		if !ok {
			break
		}
		opTok := p.advance()
		prefixes = append(prefixes, prefixOp{op: op, pos: opTok.Pos})
	}

	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	// Применяем префиксы справа налево
	for i := len(prefixes) - 1; i >= 0; i-- {
		expr = p.arenas.Exprs.NewUnary(prefixes[i].pos, prefixes[i].op, expr)
	}
	return expr, true
}

// parsePrimaryExpr: литералы, идентификаторы и скобки.
func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Pos, tok.Text), true

	case token.IntLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Pos, ast.ExprLitInt, normalizeInt(tok.Text)), true

	case token.FloatLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Pos, ast.ExprLitFloat, normalizeFloat(tok.Text)), true

	case token.StringLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Pos, ast.ExprLitString, tok.Text), true

	case token.KwTrue:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Pos, ast.ExprLitTrue, tok.Text), true

	case token.KwFalse:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Pos, ast.ExprLitFalse, tok.Text), true

	case token.LParen:
		return p.parseGroupExpr()

	case token.Newline:
		// операнд пропущен: `let x =` или `1 +`
		p.report(diag.InvalidEmptyExpr{Pos: tok.Pos})
		return ast.NoExprID, false

	case token.EOF:
		p.report(diag.UnexpectedEOF{Pos: tok.Pos})
		return ast.NoExprID, false

	default:
		p.unexpected(tok)
		return ast.NoExprID, false
	}
}

// parseGroupExpr: ( EXPR ). Пустые скобки и кортежи не поддерживаются.
func (p *Parser) parseGroupExpr() (ast.ExprID, bool) {
	openTok := p.advance()
	if p.at(token.RParen) {
		p.report(diag.InvalidEmptyExpr{Pos: openTok.Pos})
		p.advance()
		return ast.NoExprID, false
	}

	inner, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}

	switch tok := p.lx.Peek(); tok.Kind {
	case token.RParen:
		p.advance()
		return p.arenas.Exprs.NewGroup(openTok.Pos, inner), true
	case token.Comma:
		p.report(diag.ExcessiveExpr{Pos: tok.Pos})
		return ast.NoExprID, false
	default:
		p.unexpected(tok)
		return ast.NoExprID, false
	}
}

// normalizeInt убирает разделители разрядов: 1_000 -> 1000
func normalizeInt(text string) string {
	return strings.ReplaceAll(text, "_", "")
}

// normalizeFloat: 1_0.5 -> 10.5, 1. -> 1.0, .5 -> 0.5
func normalizeFloat(text string) string {
	s := strings.ReplaceAll(text, "_", "")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}
