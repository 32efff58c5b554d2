//nolint:errcheck // Type assertions are checked by construction
package hir

import (
	"fmt"
	"io"
	"strconv"

	"kiln/internal/ast"
	"kiln/internal/literal"
)

// DumpOptions configures HIR dumping.
type DumpOptions struct {
	ShowTypes   bool // печатать ": type" у let
	FloatDigits int  // 0: literal.DefaultFloatDigits
}

// Printer is used to dump HIR to text format.
type Printer struct {
	w    io.Writer
	opts DumpOptions
	err  error
}

// NewPrinter creates a new HIR printer.
func NewPrinter(w io.Writer, opts DumpOptions) *Printer {
	if opts.FloatDigits <= 0 {
		opts.FloatDigits = literal.DefaultFloatDigits
	}
	return &Printer{w: w, opts: opts}
}

// Dump writes the HIR module to the writer.
func Dump(w io.Writer, m *Module, opts DumpOptions) error {
	return NewPrinter(w, opts).PrintModule(m)
}

// PrintModule prints a complete module, one statement per line.
func (p *Printer) PrintModule(m *Module) error {
	p.printf("module %s\n", m.Name)
	for _, st := range m.Stmts {
		p.PrintStmt(st)
	}
	return p.err
}

// PrintStmt prints a single statement followed by a newline.
func (p *Printer) PrintStmt(st Stmt) {
	switch st.Kind {
	case StmtLet:
		p.printf("let %s", st.Name)
		if p.opts.ShowTypes && st.Value != nil && st.Value.Type.IsValid() {
			p.printf(": %s", st.Value.Type)
		}
		p.printf(" = ")
		p.PrintExpr(st.Value)
	case StmtExtern:
		p.printf("extern %s", st.Name)
	case StmtExpr:
		p.PrintExpr(st.Value)
	}
	p.printf("\n")
}

// PrintExpr prints an expression; runtime operators are fully parenthesized.
func (p *Printer) PrintExpr(e *Expr) {
	if e == nil {
		p.printf("<error>")
		return
	}

	switch e.Kind {
	case ExprLiteral:
		data := e.Data.(LiteralData)
		p.printf("%s", FormatLiteral(data.Value, p.opts.FloatDigits))

	case ExprVarRef:
		data := e.Data.(VarRefData)
		p.printf("%s", data.Name)

	case ExprUnaryOp:
		data := e.Data.(UnaryOpData)
		if data.Op == ast.UnaryTypeof {
			p.printf("(typeof ")
		} else {
			p.printf("(%v", data.Op)
		}
		p.PrintExpr(data.Operand)
		p.printf(")")

	case ExprBinaryOp:
		data := e.Data.(BinaryOpData)
		p.printf("(")
		p.PrintExpr(data.Left)
		p.printf(" %s ", BinaryOpImage(data.Op))
		p.PrintExpr(data.Right)
		p.printf(")")

	default:
		p.printf("<%s>", e.Kind)
	}
}

// BinaryOpImage returns the operator as output code spells it:
// equality is written "==" there.
func BinaryOpImage(op ast.BinaryOp) string {
	if op == ast.BinaryEq {
		return "=="
	}
	return op.String()
}

// FormatLiteral renders a constant the way output code spells it.
func FormatLiteral(v literal.Value, digits int) string {
	switch v.Type() {
	case literal.String:
		return strconv.Quote(v.Str())
	case literal.Float:
		s := v.TextDigits(digits)
		if isIntegral(s) {
			s += ".0"
		}
		return s
	default:
		return v.TextDigits(digits)
	}
}

func isIntegral(s string) bool {
	for _, c := range s {
		if c == '.' || c == 'e' || c == 'E' {
			return false
		}
	}
	return true
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
