package fold

import (
	"errors"
	"math/big"
	"strings"

	"kiln/internal/ast"
	"kiln/internal/literal"
)

// ErrDivisionByZero is returned by / and % implementations when the divisor
// is exactly zero.
var ErrDivisionByZero = errors.New("division by zero")

// UnaryFunc folds an already folded operand.
type UnaryFunc func(operand literal.Value) (literal.Value, error)

// BinaryFunc folds already folded operands.
type BinaryFunc func(lhs, rhs literal.Value) (literal.Value, error)

// unaryImpl returns the implementation of a declared prefix row.
func unaryImpl(key PreUnaryKey, result literal.Type) UnaryFunc {
	switch key.Op {
	case ast.UnaryNot:
		return func(v literal.Value) (literal.Value, error) {
			return literal.BoolValue(!v.Bool()), nil
		}
	case ast.UnaryPlus:
		return func(v literal.Value) (literal.Value, error) {
			return v.Convert(result), nil
		}
	case ast.UnaryMinus:
		if result == literal.Int {
			return func(v literal.Value) (literal.Value, error) {
				return literal.IntValue(new(big.Int).Neg(v.Int())), nil
			}
		}
		return func(v literal.Value) (literal.Value, error) {
			return literal.FloatValue(new(big.Rat).Neg(v.Float())), nil
		}
	default:
		return nil
	}
}

// typeofName: имена типов в стиле typeof
func typeofName(t literal.Type) string {
	switch t {
	case literal.Int, literal.Float:
		return "number"
	case literal.String:
		return "string"
	case literal.Bool:
		return "boolean"
	default:
		return "undefined"
	}
}

// binaryImpl returns the implementation of a declared binary row.
// digits bounds the rendering of non-terminating floats in concatenation.
func binaryImpl(key BinaryKey, result literal.Type, digits int) BinaryFunc {
	switch {
	case result == literal.String:
		return func(l, r literal.Value) (literal.Value, error) {
			return literal.StringValue(l.TextDigits(digits) + r.TextDigits(digits)), nil
		}
	case result == literal.Int:
		return intArith(key.Op)
	case result == literal.Float:
		return floatArith(key.Op)
	case key.Op == ast.BinaryAnd:
		return func(l, r literal.Value) (literal.Value, error) {
			return literal.BoolValue(l.Bool() && r.Bool()), nil
		}
	case key.Op == ast.BinaryOr:
		return func(l, r literal.Value) (literal.Value, error) {
			return literal.BoolValue(l.Bool() || r.Bool()), nil
		}
	default:
		return comparison(key)
	}
}

func intArith(op ast.BinaryOp) BinaryFunc {
	return func(l, r literal.Value) (literal.Value, error) {
		a, b := l.Int(), r.Int()
		z := new(big.Int)
		switch op {
		case ast.BinaryAdd:
			z.Add(a, b)
		case ast.BinarySub:
			z.Sub(a, b)
		case ast.BinaryMul:
			z.Mul(a, b)
		case ast.BinaryDiv:
			if b.Sign() == 0 {
				return literal.Value{}, ErrDivisionByZero
			}
			z.Quo(a, b)
		case ast.BinaryMod:
			if b.Sign() == 0 {
				return literal.Value{}, ErrDivisionByZero
			}
			z.Rem(a, b)
		}
		return literal.IntValue(z), nil
	}
}

// floatArith: Int операнды продвигаются до Float через Value.Float
func floatArith(op ast.BinaryOp) BinaryFunc {
	return func(l, r literal.Value) (literal.Value, error) {
		a, b := l.Float(), r.Float()
		z := new(big.Rat)
		switch op {
		case ast.BinaryAdd:
			z.Add(a, b)
		case ast.BinarySub:
			z.Sub(a, b)
		case ast.BinaryMul:
			z.Mul(a, b)
		case ast.BinaryDiv:
			if b.Sign() == 0 {
				return literal.Value{}, ErrDivisionByZero
			}
			z.Quo(a, b)
		}
		return literal.FloatValue(z), nil
	}
}

func comparison(key BinaryKey) BinaryFunc {
	var compare func(l, r literal.Value) int
	switch {
	case key.Left == literal.String:
		compare = func(l, r literal.Value) int { return strings.Compare(l.Str(), r.Str()) }
	case key.Left == literal.Bool:
		compare = func(l, r literal.Value) int {
			if l.Bool() == r.Bool() {
				return 0
			}
			return 1
		}
	case key.Left == literal.Int && key.Right == literal.Int:
		compare = func(l, r literal.Value) int { return l.Int().Cmp(r.Int()) }
	default:
		compare = func(l, r literal.Value) int { return l.Float().Cmp(r.Float()) }
	}
	test := comparisonTest(key.Op)
	return func(l, r literal.Value) (literal.Value, error) {
		return literal.BoolValue(test(compare(l, r))), nil
	}
}

func comparisonTest(op ast.BinaryOp) func(c int) bool {
	switch op {
	case ast.BinaryEq:
		return func(c int) bool { return c == 0 }
	case ast.BinaryNotEq:
		return func(c int) bool { return c != 0 }
	case ast.BinaryLess:
		return func(c int) bool { return c < 0 }
	case ast.BinaryLessEq:
		return func(c int) bool { return c <= 0 }
	case ast.BinaryGreater:
		return func(c int) bool { return c > 0 }
	default:
		return func(c int) bool { return c >= 0 }
	}
}
