package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"kiln/internal/diag"
	"kiln/internal/fold"
	"kiln/internal/hir"
	"kiln/internal/observ"
	"kiln/internal/source"
	"kiln/internal/trace"
)

// writeTree создаёт файлы относительно временной директории
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func codesOf(recs []diag.Record) []diag.Code {
	out := make([]diag.Code, len(recs))
	for i, r := range recs {
		out[i] = r.Code()
	}
	return out
}

func TestExpandPaths(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"b.kl":       "1\n",
		"a.kl":       "2\n",
		"sub/c.kl":   "3\n",
		"notes.txt":  "x\n",
		"sub/d.kl.x": "4\n",
	})
	got, err := ExpandPaths([]string{dir, filepath.Join(dir, "a.kl"), filepath.Join(dir, "notes.txt")})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.kl"),
		filepath.Join(dir, "b.kl"),
		filepath.Join(dir, "sub", "c.kl"),
		filepath.Join(dir, "notes.txt"),
	}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v\nwant %v", got, want)
	}
	if _, err := ExpandPaths([]string{filepath.Join(dir, "missing.kl")}); err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestFoldFilesReplaysInInputOrder(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.kl": "let x = 1 / 0\nx + 1\n",
		"b.kl": "extern n\nn * (2 + 3)\ny\n",
		"c.kl": "let s = \"v\" + 1.5\n",
	})
	paths, err := ExpandPaths([]string{dir})
	if err != nil {
		t.Fatal(err)
	}

	for _, jobs := range []int{1, 4} {
		rec := diag.NewRecorder()
		timer := observ.NewTimer()
		res, err := FoldFiles(context.Background(), paths, Options{Jobs: jobs, Sink: rec, Timer: timer, FloatDigits: 20})
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Files) != 3 {
			t.Fatalf("jobs=%d: want 3 files, got %d", jobs, len(res.Files))
		}
		want := []diag.Code{diag.TypDivisionByZero, diag.NamNotDef}
		if got := codesOf(rec.All()); !slices.Equal(got, want) {
			t.Fatalf("jobs=%d: codes %v, want %v", jobs, got, want)
		}
		if !res.HasErrors() || res.Files[2].Diags.HasErrors() {
			t.Fatalf("jobs=%d: error flags wrong", jobs)
		}
		if s := res.Stats(); s.Folded != 3 || s.Residual != 2 {
			t.Fatalf("jobs=%d: stats %+v", jobs, s)
		}
		if timer.Len() != 4 {
			t.Fatalf("jobs=%d: want load + 3 file phases, got %d", jobs, timer.Len())
		}

		var sb strings.Builder
		if err := hir.Dump(&sb, res.Files[1].Module, hir.DumpOptions{}); err != nil {
			t.Fatal(err)
		}
		if want := "module b\nextern n\n(n * 5)\ny\n"; sb.String() != want {
			t.Fatalf("jobs=%d: module b:\n%s", jobs, sb.String())
		}
	}
}

func TestOrderedReplayStreams(t *testing.T) {
	files := make([]FileResult, 3)
	for i, name := range []string{"a.kl", "b.kl", "c.kl"} {
		rec := diag.NewRecorder()
		rec.Report(diag.DivisionByZero{Pos: source.At(name, 1, 1)})
		files[i] = FileResult{Path: name, Diags: rec}
	}
	sink := diag.NewRecorder()
	replay := newOrderedReplay(sink, files)

	// c ждёт a и b, b ждёт a
	steps := []struct {
		finish int
		want   []string
	}{
		{2, nil},
		{0, []string{"a.kl"}},
		{1, []string{"a.kl", "b.kl", "c.kl"}},
	}
	for _, st := range steps {
		replay.finish(st.finish)
		var got []string
		for _, r := range sink.All() {
			got = append(got, r.Primary().File)
		}
		if !slices.Equal(got, st.want) {
			t.Fatalf("after finishing %d: got %v, want %v", st.finish, got, st.want)
		}
	}
	if !sink.HasErrors() {
		t.Fatal("replayed errors must set the flag")
	}

	// без sink ничего не происходит
	newOrderedReplay(nil, files).finish(0)
}

func TestFoldFilesPolicy(t *testing.T) {
	dir := writeTree(t, map[string]string{"p.kl": "let x = 1 % \"\"\nx\n"})
	paths := []string{filepath.Join(dir, "p.kl")}

	res, err := FoldFiles(context.Background(), paths, Options{Policy: fold.PolicyLegacyBool})
	if err != nil {
		t.Fatal(err)
	}
	if res.Rules.Policy() != fold.PolicyLegacyBool {
		t.Fatalf("policy %v", res.Rules.Policy())
	}
	v, ok := res.Files[0].Module.Stmts[1].Value.Literal()
	if !ok || v.String() != "false" {
		t.Fatalf("x = %v, %v", v, ok)
	}
}

func TestFoldFilesErrors(t *testing.T) {
	if _, err := FoldFiles(context.Background(), []string{filepath.Join(t.TempDir(), "nope.kl")}, Options{}); err == nil {
		t.Fatal("expected load error")
	}

	dir := writeTree(t, map[string]string{"a.kl": "1\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FoldFiles(ctx, []string{filepath.Join(dir, "a.kl")}, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}

	res, err := FoldFiles(context.Background(), nil, Options{})
	if err != nil || len(res.Files) != 0 || res.HasErrors() {
		t.Fatalf("empty run: %+v, %v", res, err)
	}
}

func TestFoldSourceTraced(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelFile)
	ctx := trace.WithTracer(context.Background(), ring)

	res, err := FoldSource(ctx, "<eval>", []byte("typeof 1.5"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	v, ok := res.Files[0].Module.Stmts[0].Value.Literal()
	if !ok || v.Str() != "number" {
		t.Fatalf("typeof 1.5 = %v", v)
	}

	var names []string
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanEnd {
			names = append(names, ev.Name)
		}
	}
	if want := []string{"file:<eval>", "fold"}; !slices.Equal(names, want) {
		t.Fatalf("span ends %v, want %v", names, want)
	}
}

func TestFoldSourceTinyFloatChain(t *testing.T) {
	// a17 = 0.1^(2^17) = 1e-131072
	var src strings.Builder
	src.WriteString("let a0 = 0.1\n")
	for i := 1; i <= 17; i++ {
		fmt.Fprintf(&src, "let a%d = a%d * a%d\n", i, i-1, i-1)
	}
	src.WriteString("\"x\" + a17\n")

	start := time.Now()
	res, err := FoldSource(context.Background(), "<eval>", []byte(src.String()), Options{})
	if err != nil {
		t.Fatal(err)
	}
	var out strings.Builder
	if err := hir.Dump(&out, res.Files[0].Module, hir.DumpOptions{}); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("fold and dump took %v", elapsed)
	}

	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %d", res.Files[0].Diags.Len())
	}
	stmts := res.Files[0].Module.Stmts
	v, ok := stmts[len(stmts)-1].Value.Literal()
	if want := "x0." + strings.Repeat("0", 131071) + "1"; !ok || v.Str() != want {
		t.Fatalf("concatenation folded to %d bytes, want %d", len(v.Str()), len(want))
	}
}

func TestTokenizeAndParse(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.kl": "let x = (1 +\n"})
	path := filepath.Join(dir, "a.kl")

	tok, err := Tokenize(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(tok.Tokens) != 8 || tok.Diags.HasErrors() {
		t.Fatalf("tokens %d, errors %v", len(tok.Tokens), tok.Diags.HasErrors())
	}

	parsed, err := Parse(path, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !parsed.Diags.HasErrors() || parsed.Builder.Files.Get(parsed.ASTFile) == nil {
		t.Fatal("expected a syntax error and a file node")
	}
	if _, err := Parse(path, -1); err == nil {
		t.Fatal("negative limit must fail")
	}
}
