package parser

import (
	"kiln/internal/ast"
	"kiln/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precLogicalOr      = 1 // ||
	precLogicalAnd     = 2 // &&
	precEquality       = 3 // = !=
	precComparison     = 4 // < <= > >=
	precAdditive       = 5 // + -
	precMultiplicative = 6 // * / %
)

// getBinaryOperatorPrec возвращает приоритет оператора; все бинарные
// операторы левоассоциативны. -1: не бинарный оператор.
func (p *Parser) getBinaryOperatorPrec(kind token.Kind) int {
	switch kind {
	case token.OrOr:
		return precLogicalOr
	case token.AndAnd:
		return precLogicalAnd

	// Операторы равенства
	case token.Assign, token.BangEq:
		return precEquality

	// Операторы сравнения
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison

	// Арифметические операторы
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative

	default:
		return -1
	}
}

// tokenKindToBinaryOp преобразует токен в тип бинарного оператора
func (p *Parser) tokenKindToBinaryOp(kind token.Kind) ast.BinaryOp {
	switch kind {
	// Арифметические
	case token.Plus:
		return ast.BinaryAdd
	case token.Minus:
		return ast.BinarySub
	case token.Star:
		return ast.BinaryMul
	case token.Slash:
		return ast.BinaryDiv
	case token.Percent:
		return ast.BinaryMod

	// Логические
	case token.AndAnd:
		return ast.BinaryAnd
	case token.OrOr:
		return ast.BinaryOr

	// Сравнения
	case token.Assign:
		return ast.BinaryEq
	case token.BangEq:
		return ast.BinaryNotEq
	case token.Lt:
		return ast.BinaryLess
	case token.LtEq:
		return ast.BinaryLessEq
	case token.Gt:
		return ast.BinaryGreater
	case token.GtEq:
		return ast.BinaryGreaterEq

	default:
		// Это не должно случаться, если таблица приоритетов корректна
		return ast.BinaryAdd
	}
}

// getUnaryOperator возвращает тип унарного оператора для токена
func (p *Parser) getUnaryOperator(kind token.Kind) (ast.UnaryOp, bool) {
	switch kind {
	case token.Plus:
		return ast.UnaryPlus, true
	case token.Minus:
		return ast.UnaryMinus, true
	case token.Bang:
		return ast.UnaryNot, true
	case token.Star:
		return ast.UnaryDeref, true
	case token.KwTypeof:
		return ast.UnaryTypeof, true
	default:
		return 0, false
	}
}
