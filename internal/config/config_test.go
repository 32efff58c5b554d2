package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"kiln/internal/literal"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "[fold]\nlegacy_bool_default = true\n\n[build]\njobs = 3\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Discover(nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != path {
		t.Errorf("path = %q, want %q", cfg.Path, path)
	}
	if !cfg.Fold.LegacyBoolDefault || cfg.Build.Jobs != 3 {
		t.Errorf("values not decoded: %+v", cfg)
	}
	// не заданные ключи остаются по умолчанию
	if cfg.Fold.FloatDigits != literal.DefaultFloatDigits || cfg.Diag.Format != "pretty" || cfg.Diag.Max != 100 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	cfg, err := Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" || cfg != Default() {
		t.Fatalf("want defaults, got %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"unknown key", "[fold]\nlegacy = true\n", ErrUnknownKey},
		{"bad color", "[diag]\ncolor = \"always\"\n", ErrInvalidValue},
		{"bad format", "[diag]\nformat = \"xml\"\n", ErrInvalidValue},
		{"bad digits", "[fold]\nfloat_digits = 0\n", ErrInvalidValue},
		{"negative jobs", "[build]\njobs = -1\n", ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := Load(path)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	path := writeConfig(t, t.TempDir(), "[fold\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected TOML syntax error")
	}
}
