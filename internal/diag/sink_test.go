package diag

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"kiln/internal/source"
)

func TestEmitterRendersPlainForm(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf, EmitterOptions{})

	if e.HasErrors() {
		t.Fatal("fresh emitter reports errors")
	}
	e.Report(BinaryOpUnavailable{Pos: source.At("a.kl", 2, 0), Op: "%", Left: "float", Right: "int"})
	e.Report(UnexpectedEOF{})
	e.Report(NameRefBeforeDef{
		DefPos:       source.At("", 7, 0),
		RefPositions: []source.Pos{source.At("", 3, 0), source.At("", 5, 0)},
		Name:         "x",
	})

	want := "a.kl:2\n" +
		"    no available binary operation % for type `float' and `int'.\n" +
		"Unexpected end of file; expression not finished\n" +
		"<stdin>:7\n" +
		"    name `x' definition after reference. see references at:\n" +
		"    - <stdin>:3\n" +
		"    - <stdin>:5\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\nwant:\n%s\ngot:\n%s", want, got)
	}
	if !e.HasErrors() || !e.HasErrors() {
		t.Fatal("HasErrors must stay set across queries")
	}
	e.Reset()
	if e.HasErrors() {
		t.Fatal("Reset did not clear the flag")
	}
}

func TestEmitterShowCodeAndCap(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf, EmitterOptions{ShowCode: true, Max: 1})
	e.Report(DivisionByZero{Pos: source.At("a.kl", 1, 3)})
	e.Report(DivisionByZero{Pos: source.At("a.kl", 2, 3)})

	want := "a.kl:1:3 [TYP4003]\n    divided by zero.\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output %q", got)
	}
	if e.Suppressed() != 1 {
		t.Fatalf("expected 1 suppressed, got %d", e.Suppressed())
	}
	if !e.HasErrors() {
		t.Fatal("capped records must still set the flag")
	}
}

func TestFormatMatchesEmitter(t *testing.T) {
	r := InvalidChar{Pos: source.At("x.kl", 1, 4), Character: '$'}
	var buf bytes.Buffer
	NewEmitter(&buf, EmitterOptions{}).Report(r)
	if got := Format(r, false); got != buf.String() {
		t.Fatalf("Format=%q, emitter=%q", got, buf.String())
	}
	if !strings.Contains(buf.String(), "invalid character $ (decimal value: 36).") {
		t.Fatalf("unexpected message %q", buf.String())
	}
}

func TestRecorderClearAndRetrieve(t *testing.T) {
	rec := NewRecorder()
	fold := func() {
		rec.Report(PreUnaryOpUnavailable{Pos: source.At("", 1, 0), Op: "*", Operand: "bool"})
		rec.Report(DivisionByZero{Pos: source.At("", 2, 0)})
	}

	rec.Reset()
	fold()
	rec.Reset()
	if rec.HasErrors() || rec.Len() != 0 {
		t.Fatalf("after reset: flag=%v len=%d", rec.HasErrors(), rec.Len())
	}
	if len(RecordsOf[DivisionByZero](rec)) != 0 || len(RecordsOf[PreUnaryOpUnavailable](rec)) != 0 {
		t.Fatal("records survived reset")
	}

	fold()
	if !rec.HasErrors() || rec.Len() != 2 {
		t.Fatalf("after fold: flag=%v len=%d", rec.HasErrors(), rec.Len())
	}
	unary := RecordsOf[PreUnaryOpUnavailable](rec)
	if len(unary) != 1 || unary[0].Op != "*" || unary[0].Operand != "bool" || unary[0].Pos.Line != 1 {
		t.Fatalf("unexpected unary records %+v", unary)
	}
	div := RecordsOf[DivisionByZero](rec)
	if len(div) != 1 || div[0].Pos.Line != 2 {
		t.Fatalf("unexpected division records %+v", div)
	}
}

func TestRecorderKeepsInsertionOrder(t *testing.T) {
	var rec Recorder
	for _, name := range []string{"c", "a", "b"} {
		rec.Report(NameNotDef{RefPos: source.At("f", 9, 0), Name: name})
	}
	rec.Report(DivisionByZero{Pos: source.At("f", 1, 0)})

	got := RecordsOf[NameNotDef](&rec)
	if len(got) != 3 || got[0].Name != "c" || got[1].Name != "a" || got[2].Name != "b" {
		t.Fatalf("unexpected order %+v", got)
	}
	all := rec.All()
	if _, ok := all[3].(DivisionByZero); !ok {
		t.Fatalf("All lost global order: %T", all[3])
	}
	sorted := rec.Sorted()
	if _, ok := sorted[0].(DivisionByZero); !ok {
		t.Fatalf("Sorted should start with line 1, got %T", sorted[0])
	}
	if n := len(rec.Records(NamNotDef)); n != 3 {
		t.Fatalf("Records(NamNotDef) = %d", n)
	}
}

func TestMultiAndReplay(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder()
	e := NewEmitter(&buf, EmitterOptions{})
	m := Multi{rec, e}

	m.Report(TabAsIndent{Pos: source.At("t.kl", 2, 1)})
	if !rec.HasErrors() || !e.HasErrors() || !m.HasErrors() {
		t.Fatal("flag not propagated")
	}
	m.Reset()
	if m.HasErrors() {
		t.Fatal("Multi.Reset did not reset all sinks")
	}

	rec.Report(TabAsIndent{Pos: source.At("t.kl", 3, 1)})
	other := NewRecorder()
	rec.Replay(other)
	if other.Len() != 1 || !other.HasErrors() {
		t.Fatalf("replay copied %d records", other.Len())
	}
}

func TestRecorderConcurrentReports(t *testing.T) {
	rec := NewRecorder()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(line uint32) {
			defer wg.Done()
			rec.Report(DivisionByZero{Pos: source.At("p", line, 0)})
		}(uint32(i + 1))
	}
	wg.Wait()
	if rec.Len() != 16 {
		t.Fatalf("expected 16 records, got %d", rec.Len())
	}
}
