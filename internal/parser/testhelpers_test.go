package parser

import (
	"fmt"
	"strings"
	"testing"

	"kiln/internal/ast"
	"kiln/internal/diag"
	"kiln/internal/lexer"
	"kiln/internal/source"
)

// parseSource разбирает строку как файл test.kl
func parseSource(t *testing.T, input string) (*ast.Builder, Result, *diag.Recorder) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.kl", []byte(input))
	rec := diag.NewRecorder()
	b := ast.NewBuilder(ast.Hints{})
	res := ParseFile("test.kl", lexerFor(fs, id, rec), b, Options{Sink: rec, MaxErrors: 100})
	return b, res, rec
}

// dumpStmts печатает операторы файла в виде s-выражений, по одному на строку
func dumpStmts(b *ast.Builder, file ast.FileID) string {
	var sb strings.Builder
	for _, sid := range b.Files.Get(file).Stmts {
		st := b.Stmts.Get(sid)
		switch st.Kind {
		case ast.StmtLet:
			fmt.Fprintf(&sb, "(let %s %s)\n", st.Name, dumpExpr(b.Exprs, st.Value))
		case ast.StmtExtern:
			fmt.Fprintf(&sb, "(extern %s)\n", st.Name)
		case ast.StmtExpr:
			fmt.Fprintf(&sb, "%s\n", dumpExpr(b.Exprs, st.Value))
		}
	}
	return sb.String()
}

func dumpExpr(exprs *ast.Exprs, id ast.ExprID) string {
	if ident, ok := exprs.Ident(id); ok {
		return ident.Name
	}
	if lit, ok := exprs.Literal(id); ok {
		if lit.Kind == ast.ExprLitString {
			return fmt.Sprintf("%q", lit.Value)
		}
		return lit.Value
	}
	if un, ok := exprs.Unary(id); ok {
		return fmt.Sprintf("(%s %s)", un.Op, dumpExpr(exprs, un.Operand))
	}
	if bin, ok := exprs.Binary(id); ok {
		return fmt.Sprintf("(%s %s %s)", bin.Op, dumpExpr(exprs, bin.Left), dumpExpr(exprs, bin.Right))
	}
	if g, ok := exprs.Group(id); ok {
		return fmt.Sprintf("(group %s)", dumpExpr(exprs, g.Inner))
	}
	return "?"
}

func lexerFor(fs *source.FileSet, id source.FileID, sink diag.Sink) *lexer.Lexer {
	return lexer.New(fs, id, lexer.Options{Sink: sink})
}
