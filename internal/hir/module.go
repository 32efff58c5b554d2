package hir

import (
	"kiln/internal/ast"
)

// Module represents an HIR module (corresponding to a source file).
type Module struct {
	Name      string     // Module name
	Path      string     // Module path
	SourceAST ast.FileID // Link back to source AST
	Stmts     []Stmt
}

// Stats counts folded and residual top-level values.
type Stats struct {
	Folded   int
	Residual int
}

// Stats walks the top-level statements of m.
func (m *Module) Stats() Stats {
	var s Stats
	for _, st := range m.Stmts {
		if st.Value == nil {
			continue
		}
		if st.Value.IsConst() {
			s.Folded++
		} else {
			s.Residual++
		}
	}
	return s
}
