package driver

import (
	"sync"

	"kiln/internal/diag"
)

// orderedReplay forwards per-file records to sink as soon as a file and
// every file before it have finished, so streaming sinks see diagnostics
// early and always in input order.
type orderedReplay struct {
	mu    sync.Mutex
	sink  diag.Sink
	files []FileResult
	ready []bool
	next  int
}

func newOrderedReplay(sink diag.Sink, files []FileResult) *orderedReplay {
	return &orderedReplay{sink: sink, files: files, ready: make([]bool, len(files))}
}

// finish marks file i done; files[i] must be filled before the call.
func (r *orderedReplay) finish(i int) {
	if r == nil || r.sink == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ready[i] = true
	for r.next < len(r.ready) && r.ready[r.next] {
		if rec := r.files[r.next].Diags; rec != nil {
			rec.Replay(r.sink)
		}
		r.next++
	}
}
