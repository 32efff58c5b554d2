package ast

import (
	"kiln/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprIdent represents an identifier expression.
	ExprIdent ExprKind = iota
	// ExprLit represents a literal expression.
	ExprLit
	// ExprUnary represents a prefix unary expression.
	ExprUnary
	// ExprBinary represents a binary expression.
	ExprBinary
	// ExprGroup represents a parenthesised expression.
	ExprGroup
)

func (k ExprKind) String() string {
	switch k {
	case ExprIdent:
		return "Ident"
	case ExprLit:
		return "Lit"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprGroup:
		return "Group"
	}
	return "?"
}

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Pos     source.Pos
	Payload PayloadID
}

// BinaryOp enumerates binary operator kinds.
type BinaryOp uint8

const (
	// Арифметические

	// BinaryAdd represents the addition operator (+).
	BinaryAdd BinaryOp = iota
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryMod

	// Сравнения

	// BinaryEq represents the equality operator, written "=" in source.
	BinaryEq
	BinaryNotEq
	BinaryLess
	BinaryLessEq
	BinaryGreater
	BinaryGreaterEq

	// Логические

	BinaryAnd
	BinaryOr
)

// BinaryOps lists every binary operator.
var BinaryOps = []BinaryOp{
	BinaryAdd, BinarySub, BinaryMul, BinaryDiv, BinaryMod,
	BinaryEq, BinaryNotEq, BinaryLess, BinaryLessEq, BinaryGreater, BinaryGreaterEq,
	BinaryAnd, BinaryOr,
}

// String returns the operator image as written in source.
func (op BinaryOp) String() string {
	switch op {
	case BinaryAdd:
		return "+"
	case BinarySub:
		return "-"
	case BinaryMul:
		return "*"
	case BinaryDiv:
		return "/"
	case BinaryMod:
		return "%"
	case BinaryEq:
		return "="
	case BinaryNotEq:
		return "!="
	case BinaryLess:
		return "<"
	case BinaryLessEq:
		return "<="
	case BinaryGreater:
		return ">"
	case BinaryGreaterEq:
		return ">="
	case BinaryAnd:
		return "&&"
	case BinaryOr:
		return "||"
	default:
		return "?"
	}
}

// UnaryOp enumerates prefix unary operator kinds.
type UnaryOp uint8

const (
	UnaryPlus   UnaryOp = iota // +
	UnaryMinus                 // -
	UnaryNot                   // !
	UnaryDeref                 // *
	UnaryTypeof                // typeof
)

// UnaryOps lists every prefix unary operator.
var UnaryOps = []UnaryOp{UnaryPlus, UnaryMinus, UnaryNot, UnaryDeref, UnaryTypeof}

func (op UnaryOp) String() string {
	switch op {
	case UnaryPlus:
		return "+"
	case UnaryMinus:
		return "-"
	case UnaryNot:
		return "!"
	case UnaryDeref:
		return "*"
	case UnaryTypeof:
		return "typeof"
	default:
		return "?"
	}
}

// ExprLitKind enumerates literal kinds.
type ExprLitKind uint8

const (
	ExprLitInt ExprLitKind = iota
	ExprLitFloat
	ExprLitString
	ExprLitTrue
	ExprLitFalse
)

type ExprIdentData struct {
	Name string
}

// ExprLiteralData keeps the literal text: digits without underscores for
// numbers, decoded content for strings.
type ExprLiteralData struct {
	Kind  ExprLitKind
	Value string
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprGroupData struct {
	Inner ExprID
}
