package source

import "fmt"

// Pos is the source location carried by folding operations and diagnostics.
// It is a plain value: records keep their own copy.
type Pos struct {
	File string
	Line uint32
	Col  uint32 // 0 when only the line is known
}

// NoPos is the zero position used by diagnostics that have no location.
var NoPos = Pos{}

// IsValid reports whether the position points at a line.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

// String renders "file:line" or "file:line:col"; an empty file name prints as <stdin>.
func (p Pos) String() string {
	file := p.File
	if file == "" {
		file = "<stdin>"
	}
	if p.Col == 0 {
		return fmt.Sprintf("%s:%d", file, p.Line)
	}
	return fmt.Sprintf("%s:%d:%d", file, p.Line, p.Col)
}

// AsLine renders the position the way block headers do: "Line N".
func (p Pos) AsLine() string {
	return fmt.Sprintf("Line %d", p.Line)
}

// At is a shorthand used mostly by tests.
func At(file string, line, col uint32) Pos {
	return Pos{File: file, Line: line, Col: col}
}
