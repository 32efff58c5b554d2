package hir

import (
	"kiln/internal/ast"
	"kiln/internal/literal"
	"kiln/internal/source"
)

// ExprKind enumerates HIR expression kinds.
// Folded constants become ExprLiteral; everything else stays as runtime code.
type ExprKind uint8

const (
	// ExprLiteral represents a folded constant.
	ExprLiteral ExprKind = iota
	// ExprVarRef represents a reference to a runtime (extern) name.
	ExprVarRef
	// ExprUnaryOp represents a prefix operator left for runtime.
	ExprUnaryOp
	// ExprBinaryOp represents a binary operator left for runtime.
	ExprBinaryOp
)

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "Literal"
	case ExprVarRef:
		return "VarRef"
	case ExprUnaryOp:
		return "UnaryOp"
	case ExprBinaryOp:
		return "BinaryOp"
	default:
		return "Unknown"
	}
}

// Expr represents an HIR expression.
type Expr struct {
	Kind ExprKind
	Type literal.Type // Invalid for runtime values
	Pos  source.Pos
	Data ExprData // Kind-specific payload
}

// ExprData is the interface for expression-specific data.
type ExprData interface {
	exprData()
}

// LiteralData holds data for ExprLiteral.
type LiteralData struct {
	Value literal.Value
}

func (LiteralData) exprData() {}

// VarRefData holds data for ExprVarRef.
type VarRefData struct {
	Name string
}

func (VarRefData) exprData() {}

// UnaryOpData holds data for ExprUnaryOp.
type UnaryOpData struct {
	Op      ast.UnaryOp
	Operand *Expr
}

func (UnaryOpData) exprData() {}

// BinaryOpData holds data for ExprBinaryOp.
type BinaryOpData struct {
	Op    ast.BinaryOp
	Left  *Expr
	Right *Expr
}

func (BinaryOpData) exprData() {}

// NewLiteral builds the output node of a folded constant.
func NewLiteral(pos source.Pos, v literal.Value) *Expr {
	return &Expr{Kind: ExprLiteral, Type: v.Type(), Pos: pos, Data: LiteralData{Value: v}}
}

func NewVarRef(pos source.Pos, name string) *Expr {
	return &Expr{Kind: ExprVarRef, Pos: pos, Data: VarRefData{Name: name}}
}

func NewUnary(pos source.Pos, op ast.UnaryOp, operand *Expr) *Expr {
	return &Expr{Kind: ExprUnaryOp, Pos: pos, Data: UnaryOpData{Op: op, Operand: operand}}
}

func NewBinary(pos source.Pos, op ast.BinaryOp, left, right *Expr) *Expr {
	return &Expr{Kind: ExprBinaryOp, Pos: pos, Data: BinaryOpData{Op: op, Left: left, Right: right}}
}

// Literal returns the folded value when e is a constant.
func (e *Expr) Literal() (literal.Value, bool) {
	if e == nil || e.Kind != ExprLiteral {
		return literal.Value{}, false
	}
	data, ok := e.Data.(LiteralData)
	return data.Value, ok
}

// IsConst reports whether e was folded into a constant.
func (e *Expr) IsConst() bool {
	return e != nil && e.Kind == ExprLiteral
}
