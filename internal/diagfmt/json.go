package diagfmt

import (
	"encoding/json"
	"io"

	"kiln/internal/diag"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File string `json:"file"`
	Line uint32 `json:"line,omitempty"`
	Col  uint32 `json:"col,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Title    string        `json:"title"`
	Message  string        `json:"message"`
	Details  []string      `json:"details,omitempty"`
	Location *LocationJSON `json:"location,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Truncated   int              `json:"truncated,omitempty"`
}

// BuildDiagnosticsOutput converts records in the given order.
func BuildDiagnosticsOutput(recs []diag.Record, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(recs))}
	for i, r := range recs {
		if opts.Max > 0 && i >= opts.Max {
			out.Truncated = len(recs) - opts.Max
			break
		}
		lines := r.Lines()
		d := DiagnosticJSON{
			Severity: r.Code().Severity().String(),
			Code:     r.Code().ID(),
			Title:    r.Code().Title(),
		}
		if len(lines) > 0 {
			d.Message = lines[0]
			d.Details = lines[1:]
		}
		if len(d.Details) == 0 {
			d.Details = nil
		}
		if pos := r.Primary(); pos.IsValid() {
			loc := &LocationJSON{File: displayFile(pos.File, opts.PathMode)}
			if opts.IncludePositions {
				loc.Line = pos.Line
				loc.Col = pos.Col
			}
			d.Location = loc
		}
		out.Diagnostics = append(out.Diagnostics, d)
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes records as an indented JSON document.
func JSON(w io.Writer, recs []diag.Record, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(recs, opts))
}
