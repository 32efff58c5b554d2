package hir

import (
	"kiln/internal/source"
)

// StmtKind enumerates HIR statement kinds.
type StmtKind uint8

const (
	// StmtLet represents a binding (let x = ...).
	StmtLet StmtKind = iota
	// StmtExtern declares a runtime name.
	StmtExtern
	// StmtExpr represents an expression statement.
	StmtExpr
)

// String returns a human-readable name for the statement kind.
func (k StmtKind) String() string {
	switch k {
	case StmtLet:
		return "Let"
	case StmtExtern:
		return "Extern"
	case StmtExpr:
		return "Expr"
	default:
		return "Unknown"
	}
}

// Stmt represents an HIR statement.
type Stmt struct {
	Kind  StmtKind
	Pos   source.Pos
	Name  string // StmtLet, StmtExtern
	Value *Expr  // StmtLet, StmtExpr; nil when the initializer failed to lower
}
