package fold

import (
	"cmp"
	"slices"

	"kiln/internal/ast"
	"kiln/internal/literal"
)

// Policy decides how the rule table answers combinations it does not list.
type Policy uint8

const (
	// PolicyUnsupported: unlisted combinations have no result type.
	PolicyUnsupported Policy = iota
	// PolicyLegacyBool: unlisted combinations of a declared operator type as
	// Bool. No implementation backs them, so folding still reports them.
	PolicyLegacyBool
)

func (p Policy) String() string {
	switch p {
	case PolicyUnsupported:
		return "unsupported"
	case PolicyLegacyBool:
		return "legacy-bool"
	default:
		return "?"
	}
}

// PreUnaryKey is the lookup key of a prefix unary rule.
type PreUnaryKey struct {
	Op      ast.UnaryOp
	Operand literal.Type
}

// BinaryKey is the lookup key of a binary rule.
type BinaryKey struct {
	Op          ast.BinaryOp
	Left, Right literal.Type
}

// PreUnaryRule is one declared row of the prefix unary table.
type PreUnaryRule struct {
	Key    PreUnaryKey
	Result literal.Type
}

// BinaryRule is one declared row of the binary table.
type BinaryRule struct {
	Key    BinaryKey
	Result literal.Type
}

// Rules maps (operator, operand types) to the literal result type.
// Built once by NewRules and read-only afterwards; safe for concurrent use.
type Rules struct {
	policy   Policy
	preUnary map[PreUnaryKey]literal.Type
	binary   map[BinaryKey]literal.Type
}

var (
	numericTypes = []literal.Type{literal.Int, literal.Float}

	arithmeticOps = []ast.BinaryOp{ast.BinaryAdd, ast.BinarySub, ast.BinaryMul, ast.BinaryDiv}
	comparisonOps = []ast.BinaryOp{
		ast.BinaryEq, ast.BinaryNotEq,
		ast.BinaryLess, ast.BinaryGreater, ast.BinaryLessEq, ast.BinaryGreaterEq,
	}
	logicalOps = []ast.BinaryOp{ast.BinaryOr, ast.BinaryAnd}

	// tableUnaryOps: префиксные операторы таблицы; typeof в неё не входит
	tableUnaryOps = []ast.UnaryOp{ast.UnaryPlus, ast.UnaryMinus, ast.UnaryNot, ast.UnaryDeref}
)

// NewRules builds the operator table.
func NewRules(policy Policy) *Rules {
	r := &Rules{
		policy:   policy,
		preUnary: make(map[PreUnaryKey]literal.Type, 16),
		binary:   make(map[BinaryKey]literal.Type, 128),
	}

	// Префиксные
	r.preUnary[PreUnaryKey{ast.UnaryNot, literal.Bool}] = literal.Bool
	for _, t := range numericTypes {
		r.preUnary[PreUnaryKey{ast.UnaryPlus, t}] = t
		r.preUnary[PreUnaryKey{ast.UnaryMinus, t}] = t
	}
	// Арифметика: смешанные операнды дают Float
	for _, op := range arithmeticOps {
		for _, lt := range numericTypes {
			for _, rt := range numericTypes {
				res := literal.Float
				if lt == literal.Int && rt == literal.Int {
					res = literal.Int
				}
				r.binary[BinaryKey{op, lt, rt}] = res
			}
		}
	}
	r.binary[BinaryKey{ast.BinaryMod, literal.Int, literal.Int}] = literal.Int

	// Конкатенация строк
	for _, t := range literal.Types {
		r.binary[BinaryKey{ast.BinaryAdd, t, literal.String}] = literal.String
		r.binary[BinaryKey{ast.BinaryAdd, literal.String, t}] = literal.String
	}

	// Сравнения
	for _, op := range comparisonOps {
		for _, lt := range numericTypes {
			for _, rt := range numericTypes {
				r.binary[BinaryKey{op, lt, rt}] = literal.Bool
			}
		}
		r.binary[BinaryKey{op, literal.String, literal.String}] = literal.Bool
	}
	r.binary[BinaryKey{ast.BinaryEq, literal.Bool, literal.Bool}] = literal.Bool
	r.binary[BinaryKey{ast.BinaryNotEq, literal.Bool, literal.Bool}] = literal.Bool

	// Логические
	for _, op := range logicalOps {
		r.binary[BinaryKey{op, literal.Bool, literal.Bool}] = literal.Bool
	}
	return r
}

// Policy returns the policy the table was built with.
func (r *Rules) Policy() Policy { return r.policy }

// PreUnaryType resolves the result type of a prefix operator.
// ok is false when the combination is unsupported.
func (r *Rules) PreUnaryType(op ast.UnaryOp, operand literal.Type) (literal.Type, bool) {
	if !operand.IsValid() {
		return literal.Invalid, false
	}
	if t, ok := r.preUnary[PreUnaryKey{op, operand}]; ok {
		return t, true
	}
	if r.policy == PolicyLegacyBool && slices.Contains(tableUnaryOps, op) {
		return literal.Bool, true
	}
	return literal.Invalid, false
}

// BinaryType resolves the result type of a binary operator.
// ok is false when the combination is unsupported.
func (r *Rules) BinaryType(op ast.BinaryOp, left, right literal.Type) (literal.Type, bool) {
	if !left.IsValid() || !right.IsValid() {
		return literal.Invalid, false
	}
	if t, ok := r.binary[BinaryKey{op, left, right}]; ok {
		return t, true
	}
	if r.policy == PolicyLegacyBool && slices.Contains(ast.BinaryOps, op) {
		return literal.Bool, true
	}
	return literal.Invalid, false
}

// PreUnaryRules lists the declared prefix rows ordered by operator and operand.
// Policy defaults are not listed.
func (r *Rules) PreUnaryRules() []PreUnaryRule {
	out := make([]PreUnaryRule, 0, len(r.preUnary))
	for k, t := range r.preUnary {
		out = append(out, PreUnaryRule{Key: k, Result: t})
	}
	slices.SortFunc(out, func(a, b PreUnaryRule) int {
		return cmp.Or(
			cmp.Compare(a.Key.Op, b.Key.Op),
			cmp.Compare(a.Key.Operand, b.Key.Operand),
		)
	})
	return out
}

// BinaryRules lists the declared binary rows ordered by operator, left and right type.
func (r *Rules) BinaryRules() []BinaryRule {
	out := make([]BinaryRule, 0, len(r.binary))
	for k, t := range r.binary {
		out = append(out, BinaryRule{Key: k, Result: t})
	}
	slices.SortFunc(out, func(a, b BinaryRule) int {
		return cmp.Or(
			cmp.Compare(a.Key.Op, b.Key.Op),
			cmp.Compare(a.Key.Left, b.Key.Left),
			cmp.Compare(a.Key.Right, b.Key.Right),
		)
	})
	return out
}
