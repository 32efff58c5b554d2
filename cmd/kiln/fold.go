package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kiln/internal/driver"
	"kiln/internal/hir"
	"kiln/internal/observ"
	"kiln/internal/trace"
	"kiln/internal/ui"
)

var foldCmd = &cobra.Command{
	Use:   "fold [flags] <file.kl|directory>...",
	Short: "Fold constant expressions in kiln source files",
	Long: `Fold evaluates every constant sub-expression of the given files (or of all
*.kl files within the given directories) and prints the folded module`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFold,
}

func init() {
	registerFoldFlags(foldCmd)
	foldCmd.Flags().Int("jobs", 0, "max parallel workers (0 = kiln.toml or auto)")
	foldCmd.Flags().Bool("show-types", false, "annotate let bindings with their literal type")
	foldCmd.Flags().Bool("quiet", false, "do not print folded modules")
	foldCmd.Flags().String("progress", "off", "show a progress view on stderr (auto|on|off)")
}

func runFold(cmd *cobra.Command, args []string) error {
	fs, err := readFoldFlags(cmd)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !cmd.Flags().Changed("jobs") {
		jobs = settings.Build.Jobs
	}
	showTypes, err := cmd.Flags().GetBool("show-types")
	if err != nil {
		return fmt.Errorf("failed to get show-types flag: %w", err)
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	progressMode, err := cmd.Flags().GetString("progress")
	if err != nil {
		return fmt.Errorf("failed to get progress flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "kiln fold", 0)
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)
	if settings.Path != "" {
		trace.Point(trace.FromContext(ctx), trace.ScopeDriver, "config", settings.Path, span.ID())
	}

	paths, err := driver.ExpandPaths(args)
	if err != nil {
		return err
	}

	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}
	rec, sink := newSink(fs)
	opts := driver.Options{
		Policy:         fs.policy,
		FloatDigits:    fs.floatDigits,
		Jobs:           jobs,
		MaxParseErrors: settings.Diag.Max,
		Sink:           sink,
		Timer:          timer,
	}
	var res *driver.Result
	work := func(progress driver.ProgressFunc) error {
		opts.Progress = progress
		var ferr error
		res, ferr = driver.FoldFiles(ctx, paths, opts)
		return ferr
	}
	showProgress, err := wantProgress(progressMode, fs.format)
	if err != nil {
		return err
	}
	if showProgress {
		err = ui.RunProgress(os.Stderr, "folding", paths, work)
	} else {
		err = work(nil)
	}
	if err != nil {
		return fmt.Errorf("fold failed: %w", err)
	}

	if !quiet {
		done := timer.Track("render")
		for i := range res.Files {
			if err := hir.Dump(cmd.OutOrStdout(), res.Files[i].Module, hir.DumpOptions{ShowTypes: showTypes, FloatDigits: fs.floatDigits}); err != nil {
				return fmt.Errorf("failed to print module: %w", err)
			}
		}
		done("")
	}

	if err := renderDiagnostics(os.Stderr, rec.All(), res.FileSet, fs.format); err != nil {
		return fmt.Errorf("failed to render diagnostics: %w", err)
	}
	if fs.record != "" {
		if err := writeRecord(fs.record, rec.All(), sink.HasErrors()); err != nil {
			return err
		}
	}
	printTimings(cmd.ErrOrStderr(), timer)

	if sink.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}

// wantProgress decides whether the progress view runs. It needs stderr for
// itself, so short diagnostics (streamed to stderr) turn it off.
func wantProgress(mode, format string) (bool, error) {
	switch mode {
	case "on":
		return format != "short", nil
	case "off":
		return false, nil
	case "auto":
		return format != "short" && isTerminal(os.Stderr), nil
	default:
		return false, fmt.Errorf("unknown progress mode: %s", mode)
	}
}
