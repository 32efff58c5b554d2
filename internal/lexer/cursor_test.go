package lexer

import (
	"testing"

	"kiln/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.kl", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Peek = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() {
		t.Fatal("expected EOF")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatal("reads past EOF must return 0")
	}
}

func TestMarkResetEat(t *testing.T) {
	cursor := NewCursor(createFile("abc"))
	m := cursor.Mark()
	if !cursor.Eat('a') || cursor.Eat('x') {
		t.Fatal("Eat mismatch")
	}
	cursor.Bump()
	if got := cursor.TextFrom(m); got != "ab" {
		t.Fatalf("TextFrom = %q", got)
	}
	cursor.Reset(m)
	if cursor.Peek() != 'a' {
		t.Fatal("Reset did not rewind")
	}
	if b0, b1, ok := cursor.Peek2(); !ok || b0 != 'a' || b1 != 'b' {
		t.Fatalf("Peek2 = %q %q %v", b0, b1, ok)
	}
	cursor.Off = 2
	if _, _, ok := cursor.Peek2(); ok {
		t.Fatal("Peek2 at last byte must fail")
	}
}
