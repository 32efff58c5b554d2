package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"kiln/internal/ast"
	"kiln/internal/lexer"
	"kiln/internal/parser"
	"kiln/internal/source"
)

func TestTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.kl", []byte("let x = \"s\"\n"))
	tokens := lexer.Tokenize(fs, id, lexer.Options{})

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, tokens); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(tokens) {
		t.Fatalf("want %d lines, got:\n%s", len(tokens), buf.String())
	}
	if !strings.Contains(lines[0], "KwLet") || !strings.HasSuffix(lines[0], "at 1:1") {
		t.Errorf("line 0: %q", lines[0])
	}
	if !strings.Contains(lines[3], `StringLit    "s"`) {
		t.Errorf("line 3: %q", lines[3])
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, tokens); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out[len(out)-1].Kind != "EOF" || out[1].Text != "x" {
		t.Fatalf("tokens %+v", out)
	}
}

func TestASTPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.kl", []byte("extern n\nlet x = -(1 + n)\n"))
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile("a.kl", lexer.New(fs, id, lexer.Options{}), b, parser.Options{})
	if res.Errors != 0 {
		t.Fatalf("unexpected parse errors: %d", res.Errors)
	}

	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, b, res.File); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"File a.kl",
		"├─ Stmt Extern n (1:1)",
		"└─ Stmt Let x (2:1)",
		"   └─ Expr Unary - (2:9)",
		"      └─ Expr Group (2:10)",
		"         └─ Expr Binary + (2:13)",
		"            ├─ Expr Lit 1 (2:11)",
		"            └─ Expr Ident n (2:15)",
	}, "\n") + "\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}

	buf.Reset()
	if err := FormatASTJSON(&buf, b, res.File); err != nil {
		t.Fatal(err)
	}
	var root ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatal(err)
	}
	if len(root.Children) != 2 || root.Children[1].Children[0].Kind != "Unary" {
		t.Fatalf("tree %+v", root)
	}
	if err := FormatASTPretty(&buf, b, ast.FileID(42)); err == nil {
		t.Fatal("expected error for unknown file")
	}
}
