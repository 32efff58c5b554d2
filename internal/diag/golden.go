package diag

import (
	"fmt"
	"strings"
)

// FormatGolden renders records one per line, sorted by position:
//
//	error TYP4003 consts.kl:3 divided by zero.
//
// Multi-line messages are joined with a single space. The result has no
// trailing newline and is empty when recs is empty.
func FormatGolden(recs []Record) string {
	if len(recs) == 0 {
		return ""
	}
	sorted := append([]Record(nil), recs...)
	SortRecords(sorted)

	var b strings.Builder
	for i, r := range sorted {
		pos := "-"
		if p := r.Primary(); p.IsValid() {
			pos = p.String()
		}
		fmt.Fprintf(&b, "%s %s %s %s", severityLabel(r.Code().Severity()), r.Code().ID(), pos, sanitizeMessage(r.Lines()))
		if i < len(sorted)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(lines []string) string {
	msg := strings.Join(lines, " ")
	msg = strings.ReplaceAll(msg, "\r\n", " ")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
