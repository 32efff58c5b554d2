package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"kiln/internal/diag"
	"kiln/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой записи печатает:
//
//	<path>:<line>[:<col>]: <SEV> <CODE>: <first line>
//
// затем остальные строки сообщения с отступом и, если включено превью и файл
// есть в fs, строку исходника с кареткой под колонкой.
func Pretty(w io.Writer, recs []diag.Record, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for _, r := range recs {
		if err := prettyOne(w, r, fs, opts, pal); err != nil {
			return err
		}
	}
	return nil
}

type palette struct {
	err  *color.Color
	code *color.Color
	loc  *color.Color
	mark *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:  color.New(color.FgRed, color.Bold),
		code: color.New(color.FgYellow),
		loc:  color.New(color.Bold),
		mark: color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.code, p.loc, p.mark} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func prettyOne(w io.Writer, r diag.Record, fs *source.FileSet, opts PrettyOpts, pal palette) error {
	lines := r.Lines()
	first := ""
	if len(lines) > 0 {
		first = lines[0]
	}
	pos := r.Primary()
	sev := strings.ToUpper(r.Code().Severity().String())

	var err error
	if pos.IsValid() {
		_, err = fmt.Fprintf(w, "%s: %s %s: %s\n",
			pal.loc.Sprint(displayPos(pos, opts.PathMode)),
			pal.err.Sprint(sev), pal.code.Sprint(r.Code().ID()), first)
	} else {
		_, err = fmt.Fprintf(w, "%s %s: %s\n", pal.err.Sprint(sev), pal.code.Sprint(r.Code().ID()), first)
	}
	if err != nil {
		return err
	}
	for _, extra := range lines[min(1, len(lines)):] {
		if _, err := fmt.Fprintf(w, "    = %s\n", extra); err != nil {
			return err
		}
	}
	if !opts.ShowPreview || !pos.IsValid() || fs == nil {
		return nil
	}
	f := fs.Lookup(pos.File)
	if f == nil {
		return nil
	}
	text := f.GetLine(pos.Line)
	if text == "" {
		return nil
	}
	gutter := fmt.Sprintf("%4d | ", pos.Line)
	if _, err := fmt.Fprintf(w, "%s%s\n", gutter, expandTabs(text, opts.TabWidth)); err != nil {
		return err
	}
	if pos.Col == 0 {
		return nil
	}
	pad := strings.Repeat(" ", len(gutter)-2) + "| " + strings.Repeat(" ", caretColumn(text, pos.Col, opts.TabWidth))
	_, err = fmt.Fprintf(w, "%s%s\n", pad, pal.mark.Sprint("^"))
	return err
}

func displayPos(pos source.Pos, mode PathMode) string {
	pos.File = displayFile(pos.File, mode)
	return pos.String()
}

func displayFile(file string, mode PathMode) string {
	if file == "" {
		return "<stdin>"
	}
	if mode == PathModeBasename {
		return filepath.Base(file)
	}
	return file
}

// caretColumn converts a 1-based byte column into a display column so the
// caret lines up under wide runes and expanded tabs.
func caretColumn(line string, col uint32, tabWidth int) int {
	idx := int(col) - 1
	if idx > len(line) {
		idx = len(line)
	}
	if idx < 0 {
		idx = 0
	}
	return runewidth.StringWidth(expandTabs(line[:idx], tabWidth))
}

func expandTabs(s string, tabWidth int) string {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
