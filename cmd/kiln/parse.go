package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kiln/internal/diagfmt"
	"kiln/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.kl",
	Short: "Parse a kiln source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	result, err := driver.Parse(args[0], settings.Diag.Max)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	if result.Diags.HasErrors() {
		if err := renderDiagnostics(os.Stderr, result.Diags.All(), result.FileSet, "pretty"); err != nil {
			return err
		}
	}

	switch format {
	case "pretty":
		err = diagfmt.FormatASTPretty(cmd.OutOrStdout(), result.Builder, result.ASTFile)
	case "json":
		err = diagfmt.FormatASTJSON(cmd.OutOrStdout(), result.Builder, result.ASTFile)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Diags.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}
