package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"kiln/internal/diag"
	"kiln/internal/diagfmt"
	"kiln/internal/source"
)

var diagCmd = &cobra.Command{
	Use:   "diag",
	Short: "Inspect recorded diagnostics and diagnostic codes",
}

var diagShowCmd = &cobra.Command{
	Use:   "show [flags] <snapshot.msgpack>",
	Short: "Render a snapshot written by --record",
	Args:  cobra.ExactArgs(1),
	RunE:  runDiagShow,
}

var diagCodesCmd = &cobra.Command{
	Use:   "codes",
	Short: "List every diagnostic code with its title",
	Args:  cobra.NoArgs,
	RunE:  runDiagCodes,
}

func init() {
	diagShowCmd.Flags().String("format", "", "output format (pretty|short|json, default from kiln.toml)")
	diagShowCmd.Flags().Bool("show-code", false, "print diagnostic codes in short format")
	diagShowCmd.Flags().Bool("preview", true, "show source lines when the files are still present")
	diagCmd.AddCommand(diagShowCmd)
	diagCmd.AddCommand(diagCodesCmd)
}

func runDiagShow(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format == "" {
		format = settings.Diag.Format
	}
	showCode, err := cmd.Flags().GetBool("show-code")
	if err != nil {
		return fmt.Errorf("failed to get show-code flag: %w", err)
	}
	showCode = showCode || settings.Diag.ShowCode
	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return fmt.Errorf("failed to get preview flag: %w", err)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()
	snap, recs, err := diagfmt.DecodeSnapshot(f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "short":
		// воспроизводим сессию через Emitter, как при исходном запуске
		emitter := diag.NewEmitter(out, diag.EmitterOptions{
			Color:    useColor(os.Stdout),
			ShowCode: showCode,
			Max:      settings.Diag.Max,
		})
		for _, r := range recs {
			emitter.Report(r)
		}
	case "json":
		if err := diagfmt.JSON(out, recs, diagfmt.JSONOpts{IncludePositions: true, Max: settings.Diag.Max}); err != nil {
			return err
		}
	case "pretty":
		var fs *source.FileSet
		if preview {
			fs = loadSnapshotSources(recs)
		}
		opts := diagfmt.PrettyOpts{Color: useColor(os.Stdout), ShowPreview: fs != nil}
		if err := diagfmt.Pretty(out, recs, fs, opts); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if snap.HasErrors {
		return exitError{code: 1}
	}
	return nil
}

// loadSnapshotSources loads the files the records point at, skipping the
// ones that no longer exist. Returns nil when none could be read.
func loadSnapshotSources(recs []diag.Record) *source.FileSet {
	fs := source.NewFileSet()
	seen := make(map[string]bool)
	for _, r := range recs {
		file := r.Primary().File
		if file == "" || seen[file] {
			continue
		}
		seen[file] = true
		// отсутствующий файл просто остаётся без превью
		_, _ = fs.Load(file)
	}
	if fs.Len() == 0 {
		return nil
	}
	return fs
}

func runDiagCodes(cmd *cobra.Command, _ []string) error {
	return writeCodes(cmd.OutOrStdout())
}

func writeCodes(w io.Writer) error {
	width := 0
	for _, c := range diag.Codes {
		width = max(width, runewidth.StringWidth(c.ID()))
	}
	for _, c := range diag.Codes {
		if _, err := fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight(c.ID(), width), c.Title()); err != nil {
			return err
		}
	}
	return nil
}
