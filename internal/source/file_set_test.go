package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("consts.kl", []byte("let a = 1"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	id2 := fs.Add("consts.kl", []byte("let a = 2"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	// Индекс указывает на последнюю версию, старая остаётся доступной
	latestID, exists := fs.GetLatest("consts.kl")
	if !exists || latestID != id2 {
		t.Fatalf("Expected latest ID %d, got %d (exists=%v)", id2, latestID, exists)
	}
	if got := string(fs.Get(id1).Content); got != "let a = 1" {
		t.Errorf("Expected first version content, got %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Expected 2 stored versions, got %d", fs.Len())
	}
}

// TestAddVirtualLineIdx проверяет правильность построения LineIdx для AddVirtual
func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("a.kl", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestCRLFNormalization(t *testing.T) {
	normalized, changed := normalizeCRLF([]byte("a\r\nb\r\n"))
	if !changed {
		t.Error("Expected CRLF normalization to be detected")
	}
	if string(normalized) != "a\nb\n" {
		t.Errorf("Expected normalized content %q, got %q", "a\nb\n", string(normalized))
	}

	// одиночный \r не трогаем
	kept, changed := normalizeCRLF([]byte("a\rb"))
	if changed || string(kept) != "a\rb" {
		t.Errorf("lone CR must survive, got %q (changed=%v)", kept, changed)
	}
}

func TestBOMRemoval(t *testing.T) {
	withoutBOM, hadBOM := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x', '\n'})
	if !hadBOM {
		t.Error("Expected BOM to be detected")
	}
	if string(withoutBOM) != "x\n" {
		t.Errorf("Expected content without BOM %q, got %q", "x\n", string(withoutBOM))
	}
}

func TestPositionResolvesLinesAndColumns(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.kl", []byte("let a = 1\nlet b = α + 2\n"))

	tests := []struct {
		off  uint32
		want Pos
	}{
		{0, Pos{File: "test.kl", Line: 1, Col: 1}},
		{4, Pos{File: "test.kl", Line: 1, Col: 5}},
		{10, Pos{File: "test.kl", Line: 2, Col: 1}},
		// α занимает 2 байта, колонка считается в байтах
		{20, Pos{File: "test.kl", Line: 2, Col: 11}},
	}
	for _, tt := range tests {
		if got := fs.Position(id, tt.off); got != tt.want {
			t.Errorf("Position(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}

	if got := fs.Position(FileID(42), 0); got != NoPos {
		t.Errorf("unknown file must resolve to NoPos, got %+v", got)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("lines.kl", []byte("first\nsecond\nthird")))

	tests := map[uint32]string{0: "", 1: "first", 2: "second", 3: "third", 4: ""}
	for line, want := range tests {
		if got := f.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
}

func TestEdgeCases(t *testing.T) {
	fs := NewFileSet()

	if f := fs.Get(fs.AddVirtual("empty.kl", []byte{})); len(f.LineIdx) != 0 {
		t.Errorf("Expected empty LineIdx for empty file, got length %d", len(f.LineIdx))
	}
	if f := fs.Get(fs.AddVirtual("no_newlines.kl", []byte("hello"))); len(f.LineIdx) != 0 {
		t.Errorf("Expected empty LineIdx for file without newlines, got length %d", len(f.LineIdx))
	}
	if f := fs.Get(fs.AddVirtual("only_newline.kl", []byte("\n"))); len(f.LineIdx) != 1 || f.LineIdx[0] != 0 {
		t.Errorf("Expected LineIdx [0] for file with only newline, got %v", f.LineIdx)
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "consts.kl")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFa\r\nb\r\n"), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "a\nb\n" {
		t.Errorf("Expected file content %q, got %q", "a\nb\n", string(file.Content))
	}
	if file.Flags&FileHadBOM == 0 || file.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("Expected BOM and CRLF flags, got %b", file.Flags)
	}
	if got := fs.Position(id, 2).String(); got != "consts.kl:2:1" {
		t.Errorf("Expected path relative to base dir, got %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.kl")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPosString(t *testing.T) {
	tests := []struct {
		pos  Pos
		want string
	}{
		{Pos{Line: 3}, "<stdin>:3"},
		{Pos{File: "a.kl", Line: 7}, "a.kl:7"},
		{Pos{File: "a.kl", Line: 7, Col: 2}, "a.kl:7:2"},
	}
	for _, tt := range tests {
		if got := tt.pos.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.pos, got, tt.want)
		}
	}
	if NoPos.IsValid() {
		t.Error("NoPos must not be valid")
	}
	if got := At("a.kl", 4, 0).AsLine(); got != "Line 4" {
		t.Errorf("AsLine = %q", got)
	}
}

func TestLookupByDisplayPath(t *testing.T) {
	fs := NewFileSetWithBase("/work")
	fs.Add("/work/src/a.kl", []byte("1\n"), 0)
	fs.AddVirtual("<stdin>", []byte("2\n"))

	if f := fs.Lookup("src/a.kl"); f == nil || f.Path != "/work/src/a.kl" {
		t.Fatalf("relative lookup failed: %+v", f)
	}
	if f := fs.Lookup("<stdin>"); f == nil || f.GetLine(1) != "2" {
		t.Fatalf("virtual lookup failed: %+v", f)
	}
	if fs.Lookup("missing.kl") != nil {
		t.Fatal("expected nil for unknown path")
	}
}
