package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"kiln/internal/driver"
	"kiln/internal/hir"
)

var evalCmd = &cobra.Command{
	Use:   "eval [flags] <source>|-",
	Short: "Fold a snippet given on the command line or stdin",
	Long: `Eval folds one snippet of kiln source and prints every statement's value.
Statements may be separated by newlines or ';'. Use - to read from stdin`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	registerFoldFlags(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	fs, err := readFoldFlags(cmd)
	if err != nil {
		return err
	}

	name, src := "<eval>", args[0]
	if src == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		name, src = "<stdin>", string(data)
	} else {
		src = splitStatements(src)
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	rec, sink := newSink(fs)
	res, err := driver.FoldSource(cmd.Context(), name, []byte(src), driver.Options{
		Policy:         fs.policy,
		FloatDigits:    fs.floatDigits,
		MaxParseErrors: settings.Diag.Max,
		Sink:           sink,
	})
	if err != nil {
		return err
	}

	p := hir.NewPrinter(cmd.OutOrStdout(), hir.DumpOptions{FloatDigits: fs.floatDigits})
	for _, st := range res.Files[0].Module.Stmts {
		p.PrintStmt(st)
	}

	if err := renderDiagnostics(os.Stderr, rec.All(), res.FileSet, fs.format); err != nil {
		return fmt.Errorf("failed to render diagnostics: %w", err)
	}
	if fs.record != "" {
		if err := writeRecord(fs.record, rec.All(), sink.HasErrors()); err != nil {
			return err
		}
	}
	if sink.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}

// splitStatements turns ';' separators into newlines, leaving string
// literals and comments alone.
func splitStatements(src string) string {
	var sb strings.Builder
	var quote byte
	comment := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\n':
			quote, comment = 0, false
		case comment:
		case quote != 0:
			if c == '\\' && i+1 < len(src) {
				sb.WriteByte(c)
				i++
				c = src[i]
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			comment = true
		case c == ';':
			c = '\n'
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
