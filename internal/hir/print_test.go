package hir

import (
	"math/big"
	"strings"
	"testing"

	"kiln/internal/ast"
	"kiln/internal/literal"
	"kiln/internal/source"
)

func TestDumpModule(t *testing.T) {
	pos := source.At("m.kl", 1, 1)
	m := &Module{
		Name: "m",
		Stmts: []Stmt{
			{Kind: StmtLet, Name: "a", Value: NewLiteral(pos, literal.IntFrom(3))},
			{Kind: StmtExtern, Name: "x"},
			{Kind: StmtLet, Name: "b", Value: NewBinary(pos, ast.BinaryEq,
				NewVarRef(pos, "x"), NewLiteral(pos, literal.StringValue("q\"")))},
			{Kind: StmtExpr, Value: NewUnary(pos, ast.UnaryMinus, NewVarRef(pos, "x"))},
			{Kind: StmtExpr, Value: NewUnary(pos, ast.UnaryTypeof, NewVarRef(pos, "x"))},
			{Kind: StmtExpr, Value: NewLiteral(pos, literal.FloatValue(big.NewRat(4, 1)))},
			{Kind: StmtExpr},
		},
	}
	var sb strings.Builder
	if err := Dump(&sb, m, DumpOptions{ShowTypes: true}); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"module m",
		"let a: int = 3",
		"extern x",
		`let b = (x == "q\"")`,
		"(-x)",
		"(typeof x)",
		"4.0",
		"<error>",
		"",
	}, "\n")
	if got := sb.String(); got != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, got)
	}
}

func TestModuleStats(t *testing.T) {
	pos := source.At("m.kl", 1, 1)
	m := &Module{Stmts: []Stmt{
		{Kind: StmtLet, Value: NewLiteral(pos, literal.BoolValue(true))},
		{Kind: StmtExtern, Name: "x"},
		{Kind: StmtExpr, Value: NewVarRef(pos, "x")},
		{Kind: StmtExpr, Value: NewLiteral(pos, literal.IntFrom(1))},
	}}
	if got := m.Stats(); got != (Stats{Folded: 2, Residual: 1}) {
		t.Fatalf("stats %+v", got)
	}
}

func TestFormatLiteral(t *testing.T) {
	tests := []struct {
		v    literal.Value
		want string
	}{
		{literal.BoolValue(false), "false"},
		{literal.IntFrom(-12), "-12"},
		{literal.FloatValue(big.NewRat(11, 2)), "5.5"},
		{literal.FloatValue(big.NewRat(-3, 1)), "-3.0"},
		{literal.FloatValue(big.NewRat(2, 3)), "0.667"},
		{literal.StringValue("a\nb"), `"a\nb"`},
	}
	for _, tt := range tests {
		if got := FormatLiteral(tt.v, 3); got != tt.want {
			t.Errorf("FormatLiteral(%s) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
