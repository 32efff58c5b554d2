package diagfmt

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"kiln/internal/diag"
)

// SnapshotVersion is bumped whenever a record layout changes incompatibly.
const SnapshotVersion = 1

// Snapshot is the on-disk form of a recorded diagnostics session.
type Snapshot struct {
	Version   int              `msgpack:"version"`
	Tool      string           `msgpack:"tool,omitempty"`
	HasErrors bool             `msgpack:"has_errors"`
	Records   []SnapshotRecord `msgpack:"records"`
}

// SnapshotRecord pairs a code id with the msgpack encoding of its record.
type SnapshotRecord struct {
	Code string             `msgpack:"code"`
	Data msgpack.RawMessage `msgpack:"data"`
}

var ErrSnapshotVersion = errors.New("unsupported snapshot version")

// EncodeSnapshot writes recs in order. hasErrors is stored as given so that a
// replayed session reproduces the sink state.
func EncodeSnapshot(w io.Writer, tool string, recs []diag.Record, hasErrors bool) error {
	snap := Snapshot{
		Version:   SnapshotVersion,
		Tool:      tool,
		HasErrors: hasErrors,
		Records:   make([]SnapshotRecord, 0, len(recs)),
	}
	for _, r := range recs {
		data, err := msgpack.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode %s: %w", r.Code().ID(), err)
		}
		snap.Records = append(snap.Records, SnapshotRecord{Code: r.Code().ID(), Data: data})
	}
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	return enc.Encode(&snap)
}

// DecodeSnapshot reads a snapshot written by EncodeSnapshot.
func DecodeSnapshot(r io.Reader) (*Snapshot, []diag.Record, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, snap.Version)
	}
	recs := make([]diag.Record, 0, len(snap.Records))
	for i, sr := range snap.Records {
		code, ok := diag.ParseCode(sr.Code)
		if !ok {
			return nil, nil, fmt.Errorf("record %d: unknown code %q", i, sr.Code)
		}
		decode, ok := recordDecoders[code]
		if !ok {
			return nil, nil, fmt.Errorf("record %d: no decoder for %s", i, sr.Code)
		}
		rec, err := decode(sr.Data)
		if err != nil {
			return nil, nil, fmt.Errorf("record %d (%s): %w", i, sr.Code, err)
		}
		recs = append(recs, rec)
	}
	return &snap, recs, nil
}

func decodeAs[T diag.Record](data []byte) (diag.Record, error) {
	var rec T
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

var recordDecoders = map[diag.Code]func([]byte) (diag.Record, error){
	diag.LexTabAsIndent:        decodeAs[diag.TabAsIndent],
	diag.LexBadIndent:          decodeAs[diag.BadIndent],
	diag.LexInvalidChar:        decodeAs[diag.InvalidChar],
	diag.LexReservedWord:       decodeAs[diag.ReservedWord],
	diag.LexUnterminatedString: decodeAs[diag.UnterminatedString],

	diag.SynUnexpectedToken:             decodeAs[diag.UnexpectedToken],
	diag.SynUnexpectedEOF:               decodeAs[diag.UnexpectedEOF],
	diag.SynEmptyLookupKey:              decodeAs[diag.EmptyLookupKey],
	diag.SynInvalidEmptyExpr:            decodeAs[diag.InvalidEmptyExpr],
	diag.SynExcessiveExpr:               decodeAs[diag.ExcessiveExpr],
	diag.SynTooManySliceParts:           decodeAs[diag.TooManySliceParts],
	diag.SynInvalidName:                 decodeAs[diag.InvalidName],
	diag.SynInvalidLeftValue:            decodeAs[diag.InvalidLeftValue],
	diag.SynSliceStepOmitted:            decodeAs[diag.SliceStepOmitted],
	diag.SynElseNotMatchIf:              decodeAs[diag.ElseNotMatchIf],
	diag.SynIfAlreadyMatchElse:          decodeAs[diag.IfAlreadyMatchElse],
	diag.SynIncompleteConditional:       decodeAs[diag.IncompleteConditional],
	diag.SynInvalidIndent:               decodeAs[diag.InvalidIndent],
	diag.SynExportToIdent:               decodeAs[diag.ExportToIdent],
	diag.SynAsyncPlaceholderNotArgument: decodeAs[diag.AsyncPlaceholderNotArgument],
	diag.SynAsyncParamNotExpr:           decodeAs[diag.AsyncParamNotExpr],
	diag.SynMoreThanOneAsyncPlaceholder: decodeAs[diag.MoreThanOneAsyncPlaceholder],

	diag.NamForbidDefFunc:      decodeAs[diag.ForbidDefFunc],
	diag.NamForbidDefName:      decodeAs[diag.ForbidDefName],
	diag.NamAlreadyInLocal:     decodeAs[diag.NameAlreadyInLocal],
	diag.NamRefBeforeDef:       decodeAs[diag.NameRefBeforeDef],
	diag.NamNotDef:             decodeAs[diag.NameNotDef],
	diag.NamImportReservedWord: decodeAs[diag.ImportReservedWord],

	diag.TypPreUnaryOpUnavailable: decodeAs[diag.PreUnaryOpUnavailable],
	diag.TypBinaryOpUnavailable:   decodeAs[diag.BinaryOpUnavailable],
	diag.TypDivisionByZero:        decodeAs[diag.DivisionByZero],
	diag.TypCondNotBool:           decodeAs[diag.CondNotBool],
	diag.TypInvalidPropertyName:   decodeAs[diag.InvalidPropertyName],

	diag.FlwTerminated:                    decodeAs[diag.FlowTerminated],
	diag.FlwReturnNotAllowedInPipe:        decodeAs[diag.ReturnNotAllowedInPipe],
	diag.FlwPipeReferenceNotInListContext: decodeAs[diag.PipeReferenceNotInListContext],
}
