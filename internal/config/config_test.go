package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/spachava753/dscatalog/internal/config"
)

func TestLoadCatalogConfig(t *testing.T) {
	catalogYaml := `log_level: debug
concurrency: 4
output_dir: out
preppers_path: preppers.toml
registries:
  - path: extra/registry.json
  - url: https://example.com/registry.json
datasets:
  - name: mmlu
    path: data/mmlu.jsonl
  - name: my_code_ds
    path: /abs/code.jsonl
    skip_invalid: true
`

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "catalog.yaml")
	if err := os.WriteFile(tmpFile, []byte(catalogYaml), 0644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}

	cfg, err := config.LoadCatalogConfig(tmpFile)
	if err != nil {
		t.Fatalf("LoadCatalogConfig failed: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("expected log_level debug, got %s", cfg.LogLevel)
	}

	if cfg.Concurrency != 4 {
		t.Errorf("expected concurrency 4, got %d", cfg.Concurrency)
	}

	if want := filepath.Join(tmpDir, "out"); cfg.OutputDir != want {
		t.Errorf("expected output_dir %s, got %s", want, cfg.OutputDir)
	}

	if want := filepath.Join(tmpDir, "preppers.toml"); cfg.PreppersPath == nil || *cfg.PreppersPath != want {
		t.Errorf("expected preppers_path %s, got %v", want, cfg.PreppersPath)
	}

	if len(cfg.Registries) != 2 {
		t.Fatalf("expected 2 registries, got %d", len(cfg.Registries))
	}

	if want := filepath.Join(tmpDir, "extra", "registry.json"); *cfg.Registries[0].Path != want {
		t.Errorf("expected registry path %s, got %s", want, *cfg.Registries[0].Path)
	}

	if *cfg.Registries[1].URL != "https://example.com/registry.json" {
		t.Errorf("unexpected registry url %s", *cfg.Registries[1].URL)
	}

	if len(cfg.Datasets) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(cfg.Datasets))
	}

	if want := filepath.Join(tmpDir, "data", "mmlu.jsonl"); cfg.Datasets[0].Path != want {
		t.Errorf("expected dataset path %s, got %s", want, cfg.Datasets[0].Path)
	}

	if cfg.Datasets[1].Path != "/abs/code.jsonl" {
		t.Errorf("expected absolute path to be kept, got %s", cfg.Datasets[1].Path)
	}

	if !cfg.Datasets[1].SkipInvalid {
		t.Error("expected skip_invalid on my_code_ds")
	}
}

func TestLoadCatalogConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"registry without source", "registries:\n  - {}\n"},
		{"registry with both", "registries:\n  - path: a.json\n    url: http://x\n"},
		{"dataset without name", "datasets:\n  - path: a.jsonl\n"},
		{"dataset without path", "datasets:\n  - name: mmlu\n"},
		{"duplicate dataset", "datasets:\n  - {name: mmlu, path: a}\n  - {name: mmlu, path: b}\n"},
		{"bad log level", "log_level: loud\n"},
		{"malformed yaml", "datasets: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatalf("writing temp file: %v", err)
			}
			if _, err := config.LoadCatalogConfig(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadCatalogConfig_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "catalog.yaml")
	if err := os.WriteFile(path, []byte("concurrency: 0\noutput_dir: \"\"\n"), 0644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}

	cfg, err := config.LoadCatalogConfig(path)
	if err != nil {
		t.Fatalf("LoadCatalogConfig failed: %v", err)
	}

	if cfg.Concurrency != 1 {
		t.Errorf("expected default concurrency 1, got %d", cfg.Concurrency)
	}
	if want := filepath.Join(tmpDir, "prepared"); cfg.OutputDir != want {
		t.Errorf("expected default output_dir %s, got %s", want, cfg.OutputDir)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log_level info, got %s", cfg.LogLevel)
	}
}

func TestDefaultCatalogConfig(t *testing.T) {
	cfg := config.DefaultCatalogConfig()

	if cfg.Concurrency != 1 {
		t.Errorf("expected default concurrency 1, got %d", cfg.Concurrency)
	}

	if cfg.OutputDir != "prepared" {
		t.Errorf("expected default output_dir 'prepared', got %s", cfg.OutputDir)
	}

	if cfg.PreppersPath != nil {
		t.Errorf("expected no default preppers_path, got %s", *cfg.PreppersPath)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		got, err := config.ParseLogLevel(tt.in)
		if err != nil {
			t.Errorf("ParseLogLevel(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadPrepperArgs(t *testing.T) {
	preppersToml := `[mmlu]
config_name = "abstract_algebra"

[my_code_ds]
language = "go"
max_tests = 5
`

	fsys := fstest.MapFS{
		"preppers.toml": &fstest.MapFile{Data: []byte(preppersToml)},
	}

	args, err := config.LoadPrepperArgs(fsys, "preppers.toml")
	if err != nil {
		t.Fatalf("LoadPrepperArgs failed: %v", err)
	}

	if args.For("mmlu")["config_name"] != "abstract_algebra" {
		t.Errorf("unexpected mmlu args: %v", args.For("mmlu"))
	}

	if args.For("my_code_ds")["language"] != "go" {
		t.Errorf("unexpected my_code_ds args: %v", args.For("my_code_ds"))
	}

	if args.For("my_code_ds")["max_tests"] != int64(5) {
		t.Errorf("expected max_tests int64(5), got %#v", args.For("my_code_ds")["max_tests"])
	}

	if args.For("halueval") != nil {
		t.Errorf("expected no args for halueval, got %v", args.For("halueval"))
	}
}

func TestLoadPrepperArgs_Invalid(t *testing.T) {
	fsys := fstest.MapFS{
		"scalar.toml":    &fstest.MapFile{Data: []byte("mmlu = 3\n")},
		"malformed.toml": &fstest.MapFile{Data: []byte("[mmlu\n")},
	}

	for _, name := range []string{"scalar.toml", "malformed.toml", "missing.toml"} {
		if _, err := config.LoadPrepperArgs(fsys, name); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
