// Package trace records spans of the folding pipeline.
//
// The CLI enables it with --trace-level and --trace:
//
//	kiln fold --trace-level=file --trace=fold.ndjson src/
//
// Tracers:
//
//   - Nop: disabled tracing, zero overhead
//   - StreamTracer: writes every event as it happens (text or NDJSON)
//   - RingTracer: keeps the last N events for dumping after a failure
//   - MultiTracer: fans out to several tracers
//
// Levels select scopes: LevelPhase emits driver and pass spans, LevelFile
// adds per-file spans, LevelDebug adds per-statement spans.
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
