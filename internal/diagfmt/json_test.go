package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"kiln/internal/diag"
	"kiln/internal/source"
)

func TestJSONOutput(t *testing.T) {
	recs := []diag.Record{
		diag.BinaryOpUnavailable{Pos: source.At("dir/a.kl", 4, 9), Op: "%", Left: "float", Right: "int"},
		diag.InvalidPropertyName{Pos: source.At("", 1, 0), Expr: "a.b"},
		diag.DivisionByZero{Pos: source.At("dir/a.kl", 5, 0)},
	}

	var buf bytes.Buffer
	if err := JSON(&buf, recs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, Max: 2}); err != nil {
		t.Fatal(err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 2 || out.Truncated != 1 {
		t.Fatalf("count=%d truncated=%d", out.Count, out.Truncated)
	}

	first := out.Diagnostics[0]
	if first.Code != "TYP4002" || first.Severity != "ERROR" || first.Title != "Binary operation unavailable" {
		t.Fatalf("unexpected header fields %+v", first)
	}
	if first.Message != "no available binary operation % for type `float' and `int'." {
		t.Fatalf("unexpected message %q", first.Message)
	}
	if first.Location == nil || first.Location.File != "a.kl" || first.Location.Line != 4 || first.Location.Col != 9 {
		t.Fatalf("unexpected location %+v", first.Location)
	}

	second := out.Diagnostics[1]
	if len(second.Details) != 1 || second.Details[0] != "the expression could not be folded." {
		t.Fatalf("unexpected details %+v", second.Details)
	}
	if second.Location.File != "<stdin>" {
		t.Fatalf("unexpected file %q", second.Location.File)
	}
}

func TestJSONWithoutPositions(t *testing.T) {
	out := BuildDiagnosticsOutput([]diag.Record{
		diag.TabAsIndent{Pos: source.At("a.kl", 2, 1)},
		diag.UnexpectedEOF{},
	}, JSONOpts{})
	if out.Diagnostics[0].Location.Line != 0 {
		t.Fatal("positions must be omitted")
	}
	if out.Diagnostics[1].Location != nil {
		t.Fatal("record without position must have no location")
	}
}
