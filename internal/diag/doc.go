// Package diag defines the diagnostics reported by every pipeline phase and
// the sinks that receive them.
//
// # Records
//
// Each diagnostic kind is a struct implementing Record with a fixed set of
// fields: positions, names, operator images, character codes or lists of
// positions. Code gives the stable identifier (LEX1001, TYP4003, ...);
// Lines gives the message text used by the plain renderer.
//
// # Sinks
//
// A Sink owns the error flag. Producers only call Report and never learn how
// the record is handled:
//
//   - Emitter renders immediately to a writer (stderr by default).
//   - Recorder accumulates records per kind for tests and snapshots.
//   - Multi fans out to several sinks.
//
// HasErrors never clears the flag; only Reset does, together with whatever
// state the sink keeps. All sinks are safe for concurrent use.
//
// Richer renderings (caret previews, JSON, msgpack snapshots) live in
// internal/diagfmt.
package diag
