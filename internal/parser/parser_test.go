package parser

import (
	"testing"

	"kiln/internal/ast"
	"kiln/internal/diag"
	"kiln/internal/source"
)

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"let", "let x = 1\n", "(let x 1)\n"},
		{"extern", "extern y", "(extern y)\n"},
		{"bare expr", "1 + 2", "(+ 1 2)\n"},
		{"several lines", "let a = 1\n\n# comment\nextern b\na + b\n", "(let a 1)\n(extern b)\n(+ a b)\n"},
		{"numbers", "1_000 + 1. + .5 + 2_0.2_5", "(+ (+ (+ 1000 1.0) 0.5) 20.25)\n"},
		{"strings and bools", "'a' + \"b\" = true != false", "(!= (= (+ \"a\" \"b\") true) false)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, res, rec := parseSource(t, tt.input)
			if rec.HasErrors() || res.Errors != 0 {
				t.Fatalf("unexpected diagnostics:\n%s", diag.FormatGolden(rec.All()))
			}
			if got := dumpStmts(b, res.File); got != tt.want {
				t.Fatalf("want:\n%sgot:\n%s", tt.want, got)
			}
		})
	}
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"a || b && c", "(|| a (&& b c))"},
		{"1 < 2 = true", "(= (< 1 2) true)"},
		{"1 + 2 < 3 * 4", "(< (+ 1 2) (* 3 4))"},
		{"10 / 3 % 2", "(% (/ 10 3) 2)"},
		{"(1 + 2) * 3", "(* (group (+ 1 2)) 3)"},
		{"-1 + 2", "(+ (- 1) 2)"},
		{"!!true", "(! (! true))"},
		{"- -x", "(- (- x))"},
		{"typeof 1 + 'x'", "(+ (typeof 1) \"x\")"},
		{"*p", "(* p)"},
		{"a >= b && c <= d", "(&& (>= a b) (<= c d))"},
	}
	for _, tt := range tests {
		b, res, rec := parseSource(t, tt.input)
		if rec.HasErrors() {
			t.Fatalf("%q: unexpected diagnostics:\n%s", tt.input, diag.FormatGolden(rec.All()))
		}
		if got := dumpStmts(b, res.File); got != tt.want+"\n" {
			t.Errorf("%q: want %s, got %s", tt.input, tt.want, got)
		}
	}
}

func TestOperatorPositions(t *testing.T) {
	b, res, _ := parseSource(t, "let x = 1 +  -2")
	st := b.Stmts.Get(b.Files.Get(res.File).Stmts[0])
	if st.NamePos != source.At("test.kl", 1, 5) {
		t.Fatalf("name pos %s", st.NamePos)
	}
	bin := b.Exprs.Get(st.Value)
	if bin.Kind != ast.ExprBinary || bin.Pos != source.At("test.kl", 1, 11) {
		t.Fatalf("binary %v at %s", bin.Kind, bin.Pos)
	}
	data, _ := b.Exprs.Binary(st.Value)
	if un := b.Exprs.Get(data.Right); un.Kind != ast.ExprUnary || un.Pos != source.At("test.kl", 1, 14) {
		t.Fatalf("unary %v at %s", un.Kind, un.Pos)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
		pos   source.Pos
	}{
		{"missing operand", "1 +\n", diag.SynInvalidEmptyExpr, source.At("test.kl", 1, 4)},
		{"operand at eof", "let x = 1 *", diag.SynInvalidEmptyExpr, source.At("test.kl", 1, 12)},
		{"empty parens", "let x = ()", diag.SynInvalidEmptyExpr, source.At("test.kl", 1, 9)},
		{"tuple", "(1, 2)", diag.SynExcessiveExpr, source.At("test.kl", 1, 3)},
		{"bad name", "let 1 = 2", diag.SynInvalidName, source.At("test.kl", 1, 5)},
		{"missing assign", "let x 1", diag.SynUnexpectedToken, source.At("test.kl", 1, 7)},
		{"trailing token", "1 2", diag.SynUnexpectedToken, source.At("test.kl", 1, 3)},
		{"unclosed paren", "(1 + 2", diag.SynUnexpectedToken, source.At("test.kl", 1, 7)},
		{"stray operator", ") + 1", diag.SynUnexpectedToken, source.At("test.kl", 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, res, rec := parseSource(t, tt.input)
			if res.Errors == 0 {
				t.Fatalf("expected a syntax error")
			}
			recs := rec.Records(tt.code)
			if len(recs) != 1 {
				t.Fatalf("want one %s, got:\n%s", tt.code.ID(), diag.FormatGolden(rec.All()))
			}
			if recs[0].Primary() != tt.pos {
				t.Fatalf("want position %s, got %s", tt.pos, recs[0].Primary())
			}
		})
	}
}

func TestRecoveryContinuesOnNextLine(t *testing.T) {
	b, res, rec := parseSource(t, "let = 1\n1 2 3\nlet ok = 2\n")
	if res.Errors != 2 {
		t.Fatalf("want 2 errors, got %d:\n%s", res.Errors, diag.FormatGolden(rec.All()))
	}
	if got := dumpStmts(b, res.File); got != "(let ok 2)\n" {
		t.Fatalf("got %s", got)
	}
}

func TestMaxErrors(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.kl", []byte("1 +\n2 +\n3 +\n"))
	rec := diag.NewRecorder()
	b := ast.NewBuilder(ast.Hints{})
	res := ParseFile("test.kl", lexerFor(fs, id, rec), b, Options{Sink: rec, MaxErrors: 2})
	if res.Errors != 2 || rec.Len() != 2 {
		t.Fatalf("errors=%d recorded=%d", res.Errors, rec.Len())
	}
}
