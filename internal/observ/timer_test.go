package observ

import (
	"strings"
	"sync"
	"testing"
)

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	done := timer.Track("parse")
	done("2 files")
	idx := timer.Begin("fold")
	timer.End(idx, "")
	timer.End(99, "ignored")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("want 2 phases, got %d", len(report.Phases))
	}
	if report.Phases[0].Name != "parse" || report.Phases[0].Note != "2 files" {
		t.Fatalf("phase 0 = %+v", report.Phases[0])
	}
	summary := timer.Summary()
	for _, want := range []string{"timings:", "parse", "// 2 files", "fold", "total"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary misses %q:\n%s", want, summary)
		}
	}
}

func TestTimerConcurrent(t *testing.T) {
	timer := NewTimer()
	var wg sync.WaitGroup
	for range 16 {
		wg.Go(func() {
			timer.Track("file")("")
		})
	}
	wg.Wait()
	if timer.Len() != 16 {
		t.Fatalf("want 16 phases, got %d", timer.Len())
	}
}

func TestNilTimer(t *testing.T) {
	var timer *Timer
	timer.Track("x")("noop")
	if r := NewTimer().Report(); len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Fatalf("empty report = %+v", r)
	}
}
