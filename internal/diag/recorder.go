package diag

import "sync"

// Recorder keeps reported records in memory, grouped by kind in insertion
// order. Tests and snapshot writers read them back. The zero value is ready
// to use.
type Recorder struct {
	mu     sync.Mutex
	byCode map[Code][]Record
	all    []Record
	hasErr bool
}

func NewRecorder() *Recorder {
	return &Recorder{byCode: make(map[Code][]Record)}
}

func (r *Recorder) Report(rec Record) {
	if rec == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hasErr = true
	if r.byCode == nil {
		r.byCode = make(map[Code][]Record)
	}
	c := rec.Code()
	r.byCode[c] = append(r.byCode[c], rec)
	r.all = append(r.all, rec)
}

func (r *Recorder) HasErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hasErr
}

// Reset drops every record and clears the error flag.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byCode = make(map[Code][]Record)
	r.all = nil
	r.hasErr = false
}

// Records returns a copy of the records of one kind.
func (r *Recorder) Records(c Code) []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Record(nil), r.byCode[c]...)
}

// All returns every record in global insertion order.
func (r *Recorder) All() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Record(nil), r.all...)
}

// Sorted returns every record ordered by position.
func (r *Recorder) Sorted() []Record {
	out := r.All()
	SortRecords(out)
	return out
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.all)
}

// Replay reports every recorded record to dst in insertion order.
func (r *Recorder) Replay(dst Sink) {
	for _, rec := range r.All() {
		dst.Report(rec)
	}
}

// RecordsOf returns the records of kind T, e.g.
//
//	diag.RecordsOf[diag.DivisionByZero](rec)
func RecordsOf[T Record](r *Recorder) []T {
	var zero T
	recs := r.Records(zero.Code())
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		if v, ok := rec.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
