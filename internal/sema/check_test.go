package sema

import (
	"strings"
	"testing"

	"kiln/internal/ast"
	"kiln/internal/diag"
	"kiln/internal/fold"
	"kiln/internal/hir"
	"kiln/internal/lexer"
	"kiln/internal/parser"
	"kiln/internal/source"
)

// checkSource прогоняет весь конвейер и возвращает дамп HIR и записи
func checkSource(t *testing.T, input string, policy fold.Policy) (string, *diag.Recorder) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("s.kl", []byte(input))
	rec := diag.NewRecorder()
	b := ast.NewBuilder(ast.Hints{})
	pres := parser.ParseFile("s.kl", lexer.New(fs, id, lexer.Options{Sink: rec}), b, parser.Options{Sink: rec})
	folder := fold.New(fold.NewRules(policy), rec, fold.Options{})
	res := Check(b, pres.File, Options{Sink: rec, Folder: folder})

	var sb strings.Builder
	if err := hir.Dump(&sb, res.Module, hir.DumpOptions{}); err != nil {
		t.Fatal(err)
	}
	return strings.TrimPrefix(sb.String(), "module s\n"), rec
}

func TestFoldsConstants(t *testing.T) {
	tests := []struct {
		name, input, want string
	}{
		{"int arithmetic", "1 + 2 * 3", "7\n"},
		{"huge division", "1_000_000_000_000_000_000_000_000_000_000 / 7", "142857142857142857142857142857\n"},
		{"promotion", "2 + 3.5\n3.5 + 2", "5.5\n5.5\n"},
		{"concatenation", "\"x\" + 3\n3 + 'x'\ntrue + \"y\"", "\"x3\"\n\"3x\"\n\"truey\"\n"},
		{"comparison", "1 < 2 && 'a' = 'a'", "true\n"},
		{"grouping", "(1 + 2) * 3", "9\n"},
		{"typeof", "typeof 1.5 + ' ' + typeof 'x' + ' ' + typeof (1 = 1)", "\"number string boolean\"\n"},
		{"negation", "-(2 - 5)\n!false", "3\ntrue\n"},
		{"let propagation", "let a = 10\nlet b = a * a\nb - 1", "let a = 10\nlet b = 100\n99\n"},
		{"float text", "1 / 4.0", "0.25\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rec := checkSource(t, tt.input, fold.PolicyUnsupported)
			if rec.HasErrors() {
				t.Fatalf("unexpected diagnostics:\n%s", diag.FormatGolden(rec.All()))
			}
			if got != tt.want {
				t.Fatalf("want:\n%sgot:\n%s", tt.want, got)
			}
		})
	}
}

func TestResidualRuntimeCode(t *testing.T) {
	got, rec := checkSource(t, "extern x\nlet y = x + (2 * 3)\ny = 1 + 1\ntypeof x\n-x", fold.PolicyUnsupported)
	if rec.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", diag.FormatGolden(rec.All()))
	}
	want := "extern x\nlet y = (x + 6)\n(y == 2)\n(typeof x)\n(-x)\n"
	if got != want {
		t.Fatalf("want:\n%sgot:\n%s", want, got)
	}
}

func TestDiagnosticsReportedOnce(t *testing.T) {
	// a используется трижды, но деление на ноль сообщается один раз
	got, rec := checkSource(t, "let a = 5 / 0\na + a\na * 2", fold.PolicyUnsupported)
	if got != "let a = 0\n0\n0\n" {
		t.Fatalf("got:\n%s", got)
	}
	recs := diag.RecordsOf[diag.DivisionByZero](rec)
	if len(recs) != 1 || rec.Len() != 1 {
		t.Fatalf("want one DivisionByZero, got:\n%s", diag.FormatGolden(rec.All()))
	}
	if recs[0].Pos != source.At("s.kl", 1, 11) {
		t.Fatalf("position %s", recs[0].Pos)
	}
}

func TestUnavailableOperators(t *testing.T) {
	got, rec := checkSource(t, "*true\ntrue * false\n1 % 2.0", fold.PolicyUnsupported)
	if got != "true\nfalse\n2.0\n" {
		t.Fatalf("got:\n%s", got)
	}
	want := strings.Join([]string{
		"error TYP4001 s.kl:1:1 no available prefix unary operation * for type `bool'.",
		"error TYP4002 s.kl:2:6 no available binary operation * for type `bool' and `bool'.",
		"error TYP4002 s.kl:3:3 no available binary operation % for type `int' and `float'.",
	}, "\n")
	if gotDiag := diag.FormatGolden(rec.All()); gotDiag != want {
		t.Fatalf("want:\n%sgot:\n%s", want, gotDiag)
	}
}

func TestLegacyPolicy(t *testing.T) {
	input := "!5\n(!5) + 1"

	// Unsupported: операнд остаётся Int, дальше обычная арифметика
	got, rec := checkSource(t, input, fold.PolicyUnsupported)
	if got != "5\n6\n" || rec.Len() != 2 {
		t.Fatalf("unsupported: got\n%s%s", got, diag.FormatGolden(rec.All()))
	}

	// LegacyBool: !5 типизируется как Bool, Bool + Int тоже, правый операнд 1 -> true
	got, rec = checkSource(t, input, fold.PolicyLegacyBool)
	if got != "true\ntrue\n" || rec.Len() != 3 {
		t.Fatalf("legacy: got\n%s%s", got, diag.FormatGolden(rec.All()))
	}
	if n := len(diag.RecordsOf[diag.BinaryOpUnavailable](rec)); n != 1 {
		t.Fatalf("want one BinaryOpUnavailable, got %d", n)
	}
}

func TestNameResolution(t *testing.T) {
	_, rec := checkSource(t, "b + 1\nlet a = 1\nlet a = 2\nlet b = c\nb", fold.PolicyUnsupported)
	notDef := diag.RecordsOf[diag.NameNotDef](rec)
	if len(notDef) != 1 || notDef[0] != (diag.NameNotDef{RefPos: source.At("s.kl", 4, 9), Name: "c"}) {
		t.Fatalf("NameNotDef: %+v", notDef)
	}
	dup := diag.RecordsOf[diag.NameAlreadyInLocal](rec)
	want := diag.NameAlreadyInLocal{PrevDefPos: source.At("s.kl", 2, 5), ThisDefPos: source.At("s.kl", 3, 5), Name: "a"}
	if len(dup) != 1 || dup[0] != want {
		t.Fatalf("NameAlreadyInLocal: %+v", dup)
	}
	early := diag.RecordsOf[diag.NameRefBeforeDef](rec)
	if len(early) != 1 || early[0].Name != "b" || early[0].DefPos != source.At("s.kl", 4, 5) {
		t.Fatalf("NameRefBeforeDef: %+v", early)
	}
	if len(early[0].RefPositions) != 1 || early[0].RefPositions[0] != source.At("s.kl", 1, 1) {
		t.Fatalf("reference positions: %v", early[0].RefPositions)
	}
}

func TestFirstDefinitionWins(t *testing.T) {
	got, _ := checkSource(t, "let a = 1\nlet a = 2\na", fold.PolicyUnsupported)
	if got != "let a = 1\nlet a = 2\n1\n" {
		t.Fatalf("got:\n%s", got)
	}
}

func TestExprTypes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.kl", []byte("extern x\n1 + x\n"))
	b := ast.NewBuilder(ast.Hints{})
	pres := parser.ParseFile("t.kl", lexer.New(fs, id, lexer.Options{}), b, parser.Options{})
	res := Check(b, pres.File, Options{})
	if res.Module.Name != "t" || len(res.Module.Stmts) != 2 {
		t.Fatalf("module %+v", res.Module)
	}
	st := b.Stmts.Get(b.Files.Get(pres.File).Stmts[1])
	bin, _ := b.Exprs.Binary(st.Value)
	if got := res.ExprTypes[bin.Left]; got.String() != "int" {
		t.Fatalf("left type %s", got)
	}
	if got := res.ExprTypes[st.Value]; got.IsValid() {
		t.Fatalf("runtime binary typed as %s", got)
	}
}
