package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kiln/internal/config"
	"kiln/internal/diag"
	"kiln/internal/fold"
)

// settings is kiln.toml with command-line overrides applied.
var settings = config.Default()

// loadSettings reads kiln.toml before any subcommand runs.
func loadSettings(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return err
	}
	settings = cfg

	flags := cmd.Root().PersistentFlags()
	if flags.Changed("color") {
		if settings.Diag.Color, err = flags.GetString("color"); err != nil {
			return fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	if flags.Changed("max-diagnostics") {
		if settings.Diag.Max, err = flags.GetInt("max-diagnostics"); err != nil {
			return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	return settings.Validate()
}

// registerFoldFlags adds the flags shared by fold and eval.
func registerFoldFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("legacy-bool-default", false, "type unavailable operators as bool instead of leaving the operand unchanged")
	cmd.Flags().Int("float-digits", 0, "significant digits for non-terminating floats (0 = kiln.toml or 30)")
	cmd.Flags().String("format", "", "diagnostics format (pretty|short|json, default from kiln.toml)")
	cmd.Flags().Bool("show-code", false, "print diagnostic codes in short format")
	cmd.Flags().String("record", "", "write reported diagnostics to a msgpack snapshot")
}

type foldSettings struct {
	policy      fold.Policy
	floatDigits int
	format      string
	showCode    bool
	record      string
}

func readFoldFlags(cmd *cobra.Command) (foldSettings, error) {
	s := foldSettings{
		floatDigits: settings.Fold.FloatDigits,
		format:      settings.Diag.Format,
		showCode:    settings.Diag.ShowCode,
	}
	if settings.Fold.LegacyBoolDefault {
		s.policy = fold.PolicyLegacyBool
	}

	flags := cmd.Flags()
	legacy, err := flags.GetBool("legacy-bool-default")
	if err != nil {
		return s, fmt.Errorf("failed to get legacy-bool-default flag: %w", err)
	}
	if flags.Changed("legacy-bool-default") {
		s.policy = fold.PolicyUnsupported
		if legacy {
			s.policy = fold.PolicyLegacyBool
		}
	}
	digits, err := flags.GetInt("float-digits")
	if err != nil {
		return s, fmt.Errorf("failed to get float-digits flag: %w", err)
	}
	if digits < 0 {
		return s, fmt.Errorf("--float-digits must not be negative")
	}
	if digits > 0 {
		s.floatDigits = digits
	}
	format, err := flags.GetString("format")
	if err != nil {
		return s, fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "" {
		s.format = format
	}
	switch s.format {
	case "pretty", "short", "json":
	default:
		return s, fmt.Errorf("unknown format: %s", s.format)
	}
	if flags.Changed("show-code") {
		if s.showCode, err = flags.GetBool("show-code"); err != nil {
			return s, fmt.Errorf("failed to get show-code flag: %w", err)
		}
	}
	if s.record, err = flags.GetString("record"); err != nil {
		return s, fmt.Errorf("failed to get record flag: %w", err)
	}
	return s, nil
}

// useColor resolves the color setting against the stream it applies to.
func useColor(f *os.File) bool {
	switch settings.Diag.Color {
	case "on":
		return true
	case "off":
		return false
	}
	return os.Getenv("NO_COLOR") == "" && isTerminal(f)
}

// newSink builds the sink for a folding run. Short output streams through
// an Emitter as records arrive; the recorder keeps everything for the
// pretty/json renderers and --record.
func newSink(fs foldSettings) (*diag.Recorder, diag.Sink) {
	rec := diag.NewRecorder()
	if fs.format != "short" {
		return rec, rec
	}
	emitter := diag.NewEmitter(os.Stderr, diag.EmitterOptions{
		Color:    useColor(os.Stderr),
		ShowCode: fs.showCode,
		Max:      settings.Diag.Max,
	})
	return rec, diag.Multi{rec, emitter}
}
