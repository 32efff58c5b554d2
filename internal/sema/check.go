package sema

import (
	"path/filepath"
	"strings"

	"kiln/internal/ast"
	"kiln/internal/diag"
	"kiln/internal/fold"
	"kiln/internal/hir"
	"kiln/internal/literal"
)

// Options configures Check.
type Options struct {
	Sink   diag.Sink
	Folder *fold.Folder // nil: default rules reporting to Sink
}

// Result stores semantic artefacts produced by the checker.
type Result struct {
	Module    *hir.Module
	ExprTypes map[ast.ExprID]literal.Type
}

// Check resolves names in one file, folds every constant sub-expression and
// lowers the file to HIR. Non-constant code is kept as residual HIR nodes.
func Check(builder *ast.Builder, fileID ast.FileID, opts Options) Result {
	res := Result{ExprTypes: make(map[ast.ExprID]literal.Type)}
	if builder == nil || !fileID.IsValid() {
		return res
	}
	file := builder.Files.Get(fileID)
	if file == nil {
		return res
	}
	sink := opts.Sink
	if sink == nil {
		sink = diag.NewRecorder()
	}
	folder := opts.Folder
	if folder == nil {
		folder = fold.New(nil, sink, fold.Options{})
	}

	sc := newScope()
	for _, sid := range file.Stmts {
		if st := builder.Stmts.Get(sid); st.Kind != ast.StmtExpr {
			sc.announce(st.Name, st.NamePos)
		}
	}

	checker := typeChecker{
		builder:  builder,
		sink:     sink,
		scope:    sc,
		resolver: newResolver(builder.Exprs, folder, sink, sc),
		module: &hir.Module{
			Name:      moduleName(file.Path),
			Path:      file.Path,
			SourceAST: fileID,
		},
	}
	checker.run(file)
	res.Module = checker.module
	res.ExprTypes = checker.resolver.types
	return res
}

type typeChecker struct {
	builder  *ast.Builder
	sink     diag.Sink
	scope    *scope
	resolver *Resolver
	module   *hir.Module
}

func (tc *typeChecker) run(file *ast.File) {
	for _, sid := range file.Stmts {
		st := tc.builder.Stmts.Get(sid)
		switch st.Kind {
		case ast.StmtLet:
			// значение разбирается до объявления: `let a = a` ссылается вперёд
			value := tc.lower(st.Value)
			tc.declare(&binding{kind: bindingLet, name: st.Name, pos: st.NamePos, value: st.Value})
			tc.module.Stmts = append(tc.module.Stmts, hir.Stmt{Kind: hir.StmtLet, Pos: st.Pos, Name: st.Name, Value: value})
		case ast.StmtExtern:
			tc.declare(&binding{kind: bindingExtern, name: st.Name, pos: st.NamePos})
			tc.module.Stmts = append(tc.module.Stmts, hir.Stmt{Kind: hir.StmtExtern, Pos: st.Pos, Name: st.Name})
		case ast.StmtExpr:
			tc.module.Stmts = append(tc.module.Stmts, hir.Stmt{Kind: hir.StmtExpr, Pos: st.Pos, Value: tc.lower(st.Value)})
		}
	}
	tc.resolver.reportEarlyRefs()
}

func (tc *typeChecker) declare(b *binding) {
	if prev, ok := tc.scope.declare(b); !ok {
		tc.sink.Report(diag.NameAlreadyInLocal{PrevDefPos: prev.pos, ThisDefPos: b.pos, Name: b.name})
	}
}

// lower folds constant sub-trees into literals and keeps the rest.
func (tc *typeChecker) lower(id ast.ExprID) *hir.Expr {
	expr := tc.builder.Exprs.Get(id)
	if expr == nil {
		return nil
	}
	r := tc.resolver
	if r.LiteralType(id).IsValid() {
		if e, ok := r.folder.CompileLiteral(expr.Pos, id, r); ok {
			return e
		}
	}

	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := tc.builder.Exprs.Ident(id)
		return hir.NewVarRef(expr.Pos, data.Name)
	case ast.ExprGroup:
		data, _ := tc.builder.Exprs.Group(id)
		return tc.lower(data.Inner)
	case ast.ExprUnary:
		data, _ := tc.builder.Exprs.Unary(id)
		return hir.NewUnary(expr.Pos, data.Op, tc.lower(data.Operand))
	case ast.ExprBinary:
		data, _ := tc.builder.Exprs.Binary(id)
		return hir.NewBinary(expr.Pos, data.Op, tc.lower(data.Left), tc.lower(data.Right))
	}
	return nil
}

func moduleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
