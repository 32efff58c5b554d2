package main

import (
	"fmt"
	"io"
	"os"

	"kiln/internal/diag"
	"kiln/internal/diagfmt"
	"kiln/internal/observ"
	"kiln/internal/source"
)

// renderDiagnostics prints the records collected by a run. Short output has
// already been streamed by the emitter.
func renderDiagnostics(w *os.File, recs []diag.Record, fs *source.FileSet, format string) error {
	switch format {
	case "short":
		return nil
	case "json":
		return diagfmt.JSON(w, recs, diagfmt.JSONOpts{IncludePositions: true, Max: settings.Diag.Max})
	default:
		shown := recs
		if limit := settings.Diag.Max; limit > 0 && len(shown) > limit {
			shown = shown[:limit]
		}
		opts := diagfmt.PrettyOpts{Color: useColor(w), ShowPreview: fs != nil}
		if err := diagfmt.Pretty(w, shown, fs, opts); err != nil {
			return err
		}
		if hidden := len(recs) - len(shown); hidden > 0 {
			_, err := fmt.Fprintf(w, "... %d more diagnostics not shown\n", hidden)
			return err
		}
		return nil
	}
}

// writeRecord saves recs to a msgpack snapshot for `kiln diag show`.
func writeRecord(path string, recs []diag.Record, hasErrors bool) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create record file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close record file: %w", cerr)
		}
	}()
	if err := diagfmt.EncodeSnapshot(f, "kiln", recs, hasErrors); err != nil {
		return fmt.Errorf("failed to write record file: %w", err)
	}
	return nil
}

func printTimings(out io.Writer, timer *observ.Timer) {
	if timer == nil || timer.Len() == 0 {
		return
	}
	// ошибки записи в stderr игнорируем
	_, _ = io.WriteString(out, timer.Summary())
}
