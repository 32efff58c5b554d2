package diag

import (
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

type EmitterOptions struct {
	Color    bool
	ShowCode bool
	// Max caps rendered diagnostics; 0 means no cap. Records past the cap
	// still set the error flag.
	Max int
}

// Emitter renders each record to a writer as soon as it is reported.
type Emitter struct {
	mu         sync.Mutex
	w          io.Writer
	opts       EmitterOptions
	header     *color.Color
	emitted    int
	suppressed int
	hasErr     bool
}

// NewEmitter writes to w, or to stderr when w is nil.
func NewEmitter(w io.Writer, opts EmitterOptions) *Emitter {
	if w == nil {
		w = os.Stderr
	}
	header := color.New(color.FgRed, color.Bold)
	if opts.Color {
		header.EnableColor()
	} else {
		header.DisableColor()
	}
	return &Emitter{w: w, opts: opts, header: header}
}

func (e *Emitter) Report(r Record) {
	if r == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hasErr = true
	if e.opts.Max > 0 && e.emitted >= e.opts.Max {
		e.suppressed++
		return
	}
	e.emitted++
	e.write(r)
}

func (e *Emitter) write(r Record) {
	indent := ""
	if r.Primary().IsValid() {
		// ошибки записи в stderr игнорируем, как и fmt.Fprintln
		_, _ = e.header.Fprintln(e.w, Header(r, e.opts.ShowCode))
		indent = "    "
	}
	for _, line := range r.Lines() {
		_, _ = io.WriteString(e.w, indent+line+"\n")
	}
}

func (e *Emitter) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hasErr
}

// Reset clears the error flag and the cap counters.
func (e *Emitter) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hasErr = false
	e.emitted = 0
	e.suppressed = 0
}

// Suppressed reports how many records were dropped by the cap.
func (e *Emitter) Suppressed() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.suppressed
}
