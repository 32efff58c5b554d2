package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		CPU:   filepath.Join(dir, "cpu.pprof"),
		Mem:   filepath.Join(dir, "mem.pprof"),
		Trace: filepath.Join(dir, "trace.out"),
	}
	s, err := Start(opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	for _, path := range []string{opts.CPU, opts.Mem, opts.Trace} {
		if st, err := os.Stat(path); err != nil || st.Size() == 0 {
			t.Errorf("%s: %v", filepath.Base(path), err)
		}
	}
}

func TestStartFailsCleanly(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "missing", "trace.out")
	if _, err := Start(Options{Trace: bad}); err == nil {
		t.Fatal("expected error for unwritable trace path")
	}
	var s *Session
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
}
