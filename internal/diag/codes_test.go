package diag

import (
	"strings"
	"testing"
)

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		LexTabAsIndent:                 "LEX1001",
		SynUnexpectedEOF:               "SYN2002",
		NamNotDef:                      "NAM3005",
		TypDivisionByZero:              "TYP4003",
		FlwReturnNotAllowedInPipe:      "FLW5002",
		UnknownCode:                    "E0000",
		TypPreUnaryOpUnavailable:       "TYP4001",
		SynMoreThanOneAsyncPlaceholder: "SYN2017",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d: ID()=%q, want %q", code, got, want)
		}
	}
}

func TestEveryCodeDescribed(t *testing.T) {
	seen := make(map[string]bool)
	for i, c := range Codes {
		if i > 0 && Codes[i-1] >= c {
			t.Fatalf("Codes not strictly ascending at %d", i)
		}
		if c.Title() == codeDescription[UnknownCode] {
			t.Errorf("%s has no description", c.ID())
		}
		if c.Severity() != SevError {
			t.Errorf("%s: severity %s", c.ID(), c.Severity())
		}
		if seen[c.ID()] {
			t.Errorf("duplicate id %s", c.ID())
		}
		seen[c.ID()] = true
		back, ok := ParseCode(c.ID())
		if !ok || back != c {
			t.Errorf("ParseCode(%q) = %v, %v", c.ID(), back, ok)
		}
	}
	if len(Codes) != len(codeDescription)-1 {
		t.Fatalf("Codes has %d entries, descriptions %d", len(Codes), len(codeDescription)-1)
	}
	if _, ok := ParseCode("XYZ0001"); ok {
		t.Fatal("unexpected code parsed")
	}
}

func TestCodeString(t *testing.T) {
	got := TypDivisionByZero.String()
	if got != "[TYP4003]: Division by zero" {
		t.Fatalf("unexpected %q", got)
	}
	if !strings.HasPrefix(Code(9999).String(), "[E0000]") {
		t.Fatalf("unexpected %q", Code(9999).String())
	}
}
