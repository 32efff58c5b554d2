package driver

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"kiln/internal/ast"
	"kiln/internal/diag"
	"kiln/internal/fold"
	"kiln/internal/hir"
	"kiln/internal/lexer"
	"kiln/internal/literal"
	"kiln/internal/observ"
	"kiln/internal/parser"
	"kiln/internal/sema"
	"kiln/internal/source"
	"kiln/internal/trace"
)

// Options configures a folding run.
type Options struct {
	Policy      fold.Policy
	FloatDigits int
	Jobs        int // 0: GOMAXPROCS
	// MaxParseErrors stops parsing a file after that many syntax errors;
	// 0 means no limit.
	MaxParseErrors int
	// Sink receives every record in input-file order. nil keeps them only
	// in the per-file recorders.
	Sink  diag.Sink
	Timer *observ.Timer // может быть nil
	// Progress gets per-file stage changes, e.g. for a progress view.
	Progress ProgressFunc
}

// FileResult holds the artefacts of one folded file.
type FileResult struct {
	Path        string
	FileID      source.FileID
	Builder     *ast.Builder
	ASTFile     ast.FileID
	Module      *hir.Module
	ExprTypes   map[ast.ExprID]literal.Type
	ParseErrors uint
	// Diags keeps this file's records in the order they were reported.
	Diags *diag.Recorder
}

// Result is the outcome of FoldFiles.
type Result struct {
	FileSet *source.FileSet
	Rules   *fold.Rules
	Files   []FileResult
}

// HasErrors reports whether any file produced a diagnostic.
func (r *Result) HasErrors() bool {
	for i := range r.Files {
		if r.Files[i].Diags.HasErrors() {
			return true
		}
	}
	return false
}

// Stats sums folded and residual values over all files.
func (r *Result) Stats() hir.Stats {
	var total hir.Stats
	for i := range r.Files {
		if m := r.Files[i].Module; m != nil {
			s := m.Stats()
			total.Folded += s.Folded
			total.Residual += s.Residual
		}
	}
	return total
}

// FoldFiles folds every file in paths. Files are loaded up front, then lexed,
// parsed and checked in parallel, each into its own recorder. A file's
// records are replayed into opts.Sink as soon as it and every earlier file
// are done, so output streams but does not depend on scheduling. I/O
// failures abort the run and are returned as errors.
func FoldFiles(ctx context.Context, paths []string, opts Options) (*Result, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "fold", trace.CurrentSpan(ctx))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	maxErrors, err := safecast.Conv[uint](opts.MaxParseErrors)
	if err != nil {
		return nil, fmt.Errorf("max parse errors: %w", err)
	}

	// FileSet не потокобезопасен: загружаем всё последовательно
	done := opts.Timer.Track("load")
	fileSet := source.NewFileSet()
	ids := make([]source.FileID, len(paths))
	for i, path := range paths {
		id, err := fileSet.Load(path)
		if err != nil {
			done("failed")
			return nil, err
		}
		ids[i] = id
	}
	done(strconv.Itoa(len(paths)) + " files")

	res := &Result{
		FileSet: fileSet,
		Rules:   fold.NewRules(opts.Policy),
		Files:   make([]FileResult, len(paths)),
	}
	if len(paths) == 0 {
		return res, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины); в sink
	// записи уходят по порядку входных файлов
	replay := newOrderedReplay(opts.Sink, res.Files)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res.Files[i] = foldOne(gctx, fileSet, ids[i], path, res.Rules, maxErrors, opts)
			replay.finish(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := res.Stats()
	span.WithExtra("folded", strconv.Itoa(stats.Folded)).
		WithExtra("residual", strconv.Itoa(stats.Residual))
	return res, nil
}

// foldOne runs the per-file pipeline: lexer, parser, sema with folding.
func foldOne(ctx context.Context, fileSet *source.FileSet, id source.FileID, path string, rules *fold.Rules, maxErrors uint, opts Options) FileResult {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "file:"+path, trace.CurrentSpan(ctx))
	done := opts.Timer.Track("file " + path)

	opts.Progress.emit(path, StageParse, StatusWorking)
	rec := diag.NewRecorder()
	builder := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(fileSet, id, lexer.Options{Sink: rec})
	parsed := parser.ParseFile(path, lx, builder, parser.Options{Sink: rec, MaxErrors: maxErrors})

	opts.Progress.emit(path, StageFold, StatusWorking)
	folder := fold.New(rules, rec, fold.Options{FloatDigits: opts.FloatDigits})
	checked := sema.Check(builder, parsed.File, sema.Options{Sink: rec, Folder: folder})

	stats := checked.Module.Stats()
	note := fmt.Sprintf("%d folded, %d residual", stats.Folded, stats.Residual)
	done(note)
	span.WithExtra("diags", strconv.Itoa(rec.Len())).End(note)
	if rec.HasErrors() {
		opts.Progress.emit(path, StageFold, StatusError)
	} else {
		opts.Progress.emit(path, StageFold, StatusDone)
	}

	return FileResult{
		Path:        path,
		FileID:      id,
		Builder:     builder,
		ASTFile:     parsed.File,
		Module:      checked.Module,
		ExprTypes:   checked.ExprTypes,
		ParseErrors: parsed.Errors,
		Diags:       rec,
	}
}

// FoldSource folds a single in-memory source, e.g. an `eval` argument or
// stdin. name is used in positions.
func FoldSource(ctx context.Context, name string, src []byte, opts Options) (*Result, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "fold", trace.CurrentSpan(ctx))
	defer span.End(name)
	ctx = trace.WithSpan(ctx, span)

	maxErrors, err := safecast.Conv[uint](opts.MaxParseErrors)
	if err != nil {
		return nil, fmt.Errorf("max parse errors: %w", err)
	}
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual(name, src)
	res := &Result{FileSet: fileSet, Rules: fold.NewRules(opts.Policy)}
	res.Files = []FileResult{foldOne(ctx, fileSet, id, name, res.Rules, maxErrors, opts)}
	if opts.Sink != nil {
		res.Files[0].Diags.Replay(opts.Sink)
	}
	return res, nil
}
