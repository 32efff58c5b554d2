package ast

import (
	"kiln/internal/source"
)

// StmtKind enumerates statement kinds; a file holds one statement per line.
type StmtKind uint8

const (
	// StmtLet binds Name to Value: let NAME = EXPR
	StmtLet StmtKind = iota
	// StmtExtern declares a runtime name with no compile-time value: extern NAME
	StmtExtern
	// StmtExpr is a bare expression.
	StmtExpr
)

func (k StmtKind) String() string {
	switch k {
	case StmtLet:
		return "Let"
	case StmtExtern:
		return "Extern"
	case StmtExpr:
		return "Expr"
	}
	return "?"
}

type Stmt struct {
	Kind    StmtKind
	Pos     source.Pos
	Name    string     // StmtLet, StmtExtern
	NamePos source.Pos // StmtLet, StmtExtern
	Value   ExprID     // StmtLet, StmtExpr
}

type Stmts struct {
	Arena *Arena[Stmt]
}

func NewStmts(capHint uint) *Stmts {
	return &Stmts{Arena: NewArena[Stmt](capHint)}
}

func (s *Stmts) New(stmt Stmt) StmtID {
	return StmtID(s.Arena.Allocate(stmt))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}
