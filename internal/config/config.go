// Package config loads kiln.toml, the optional per-project settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"kiln/internal/literal"
)

// FileName is the settings file searched for by Find.
const FileName = "kiln.toml"

var (
	ErrUnknownKey   = errors.New("unknown key")
	ErrInvalidValue = errors.New("invalid value")
)

// Config mirrors kiln.toml. Zero values mean "use the default".
type Config struct {
	Fold  FoldConfig  `toml:"fold"`
	Diag  DiagConfig  `toml:"diag"`
	Build BuildConfig `toml:"build"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

type FoldConfig struct {
	// LegacyBoolDefault turns on the fallback that types every unavailable
	// operator as bool.
	LegacyBoolDefault bool `toml:"legacy_bool_default"`
	// FloatDigits bounds the significant digits of non-terminating floats
	// when they are concatenated into strings or printed.
	FloatDigits int `toml:"float_digits"`
}

type DiagConfig struct {
	Color    string `toml:"color"`  // auto|on|off
	Format   string `toml:"format"` // pretty|short|json
	Max      int    `toml:"max"`
	ShowCode bool   `toml:"show_code"`
}

type BuildConfig struct {
	Jobs int `toml:"jobs"`
}

// Default returns the settings used when no kiln.toml exists.
func Default() Config {
	return Config{
		Fold: FoldConfig{FloatDigits: literal.DefaultFloatDigits},
		Diag: DiagConfig{Color: "auto", Format: "pretty", Max: 100},
	}
}

// Find walks up from startDir to locate kiln.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses one kiln.toml on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		slices.Sort(keys)
		return Config{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads kiln.toml starting at startDir; without one it
// returns the defaults.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks enumerations and ranges.
func (c Config) Validate() error {
	switch c.Diag.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("%w: diag.color = %q (expected auto|on|off)", ErrInvalidValue, c.Diag.Color)
	}
	switch c.Diag.Format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("%w: diag.format = %q (expected pretty|short|json)", ErrInvalidValue, c.Diag.Format)
	}
	if c.Diag.Max < 0 {
		return fmt.Errorf("%w: diag.max = %d", ErrInvalidValue, c.Diag.Max)
	}
	if c.Fold.FloatDigits < 1 {
		return fmt.Errorf("%w: fold.float_digits = %d", ErrInvalidValue, c.Fold.FloatDigits)
	}
	if c.Build.Jobs < 0 {
		return fmt.Errorf("%w: build.jobs = %d", ErrInvalidValue, c.Build.Jobs)
	}
	return nil
}
