package diag

import (
	"cmp"
	"slices"
	"strings"

	"kiln/internal/source"
)

// Sink receives diagnostics and owns the error flag.
// The flag is set by every Report and cleared only by Reset.
type Sink interface {
	Report(r Record)
	HasErrors() bool
	Reset()
}

// Multi fans a report out to every sink in order.
type Multi []Sink

func (m Multi) Report(r Record) {
	for _, s := range m {
		s.Report(r)
	}
}

func (m Multi) HasErrors() bool {
	for _, s := range m {
		if s.HasErrors() {
			return true
		}
	}
	return false
}

func (m Multi) Reset() {
	for _, s := range m {
		s.Reset()
	}
}

// Format renders r in the plain multi-line form: a position header followed by
// message lines indented by four spaces. Records without a position print their
// lines unindented.
func Format(r Record, showCode bool) string {
	var sb strings.Builder
	pos := r.Primary()
	indent := ""
	if pos.IsValid() {
		sb.WriteString(Header(r, showCode))
		sb.WriteByte('\n')
		indent = "    "
	} else if showCode {
		sb.WriteString("[" + r.Code().ID() + "]\n")
	}
	for _, line := range r.Lines() {
		sb.WriteString(indent)
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Header is the first line of the plain form for a positioned record.
func Header(r Record, showCode bool) string {
	h := r.Primary().String()
	if showCode {
		h += " [" + r.Code().ID() + "]"
	}
	return h
}

// Less orders records by file, line, column and then code.
func Less(a, b Record) bool {
	return compare(a, b) < 0
}

func compare(a, b Record) int {
	pa, pb := a.Primary(), b.Primary()
	return cmp.Or(
		comparePos(pa, pb),
		cmp.Compare(a.Code(), b.Code()),
	)
}

func comparePos(a, b source.Pos) int {
	return cmp.Or(
		cmp.Compare(a.File, b.File),
		cmp.Compare(a.Line, b.Line),
		cmp.Compare(a.Col, b.Col),
	)
}

// SortRecords sorts in place keeping insertion order between equal records.
func SortRecords(rs []Record) {
	slices.SortStableFunc(rs, compare)
}
