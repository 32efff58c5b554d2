package ast

type Hints struct{ Files, Stmts, Exprs uint }

type Builder struct {
	Files *Files
	Stmts *Stmts
	Exprs *Exprs
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 6
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Files: NewFiles(hints.Files),
		Stmts: NewStmts(hints.Stmts),
		Exprs: NewExprs(hints.Exprs),
	}
}

func (b *Builder) NewFile(path string) FileID {
	return b.Files.New(path)
}

func (b *Builder) PushStmt(file FileID, stmt Stmt) StmtID {
	id := b.Stmts.New(stmt)
	f := b.Files.Get(file)
	f.Stmts = append(f.Stmts, id)
	return id
}
