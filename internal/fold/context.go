package fold

import (
	"math/big"

	"kiln/internal/ast"
	"kiln/internal/literal"
)

// Context resolves the literal type of an expression and exposes its value
// through typed accessors. The accessors are only called for the type
// LiteralType reported.
type Context interface {
	// LiteralType returns literal.Invalid when id is not a compile-time constant.
	LiteralType(id ast.ExprID) literal.Type
	BoolValue(id ast.ExprID) bool
	IntValue(id ast.ExprID) *big.Int
	FloatValue(id ast.ExprID) *big.Rat
	StringValue(id ast.ExprID) string
}

// valueOf reads id through the accessor matching its literal type.
func valueOf(id ast.ExprID, ctx Context) literal.Value {
	switch ctx.LiteralType(id) {
	case literal.Bool:
		return literal.BoolValue(ctx.BoolValue(id))
	case literal.Int:
		return literal.IntValue(ctx.IntValue(id))
	case literal.Float:
		return literal.FloatValue(ctx.FloatValue(id))
	case literal.String:
		return literal.StringValue(ctx.StringValue(id))
	default:
		return literal.Value{}
	}
}
