package driver

// Stage is the pipeline step a file is in.
type Stage uint8

const (
	StageParse Stage = iota + 1 // lexer + parser
	StageFold                   // name resolution + folding
)

// Status is the state reported for a file or for the whole run.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event is a progress notification. File is empty for run-wide events.
type Event struct {
	File   string
	Stage  Stage
	Status Status
}

// ProgressFunc receives events from worker goroutines; it must be safe for
// concurrent use.
type ProgressFunc func(Event)

func (p ProgressFunc) emit(file string, stage Stage, status Status) {
	if p != nil {
		p(Event{File: file, Stage: stage, Status: status})
	}
}
