package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spachava753/dscatalog/internal/models"
	"gopkg.in/yaml.v3"
)

// DefaultCatalogConfig returns a CatalogConfig with default values.
func DefaultCatalogConfig() models.CatalogConfig {
	return models.CatalogConfig{
		LogLevel:    "info",
		Concurrency: 1,
		OutputDir:   "prepared",
	}
}

// LoadCatalogConfig loads and parses a catalog.yaml file. Relative paths are
// resolved against the file's directory.
func LoadCatalogConfig(path string) (models.CatalogConfig, error) {
	cfg := DefaultCatalogConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading catalog config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing catalog config: %w", err)
	}

	// Validate registry refs
	for i, ref := range cfg.Registries {
		hasPath := ref.Path != nil && *ref.Path != ""
		hasURL := ref.URL != nil && *ref.URL != ""
		if !hasPath && !hasURL {
			return cfg, fmt.Errorf("registries[%d]: must specify either 'path' or 'url'", i)
		}
		if hasPath && hasURL {
			return cfg, fmt.Errorf("registries[%d]: cannot specify both 'path' and 'url'", i)
		}
	}

	// Validate dataset refs
	seen := make(map[string]bool, len(cfg.Datasets))
	for i, ref := range cfg.Datasets {
		if ref.Name == "" {
			return cfg, fmt.Errorf("datasets[%d]: 'name' is required", i)
		}
		if ref.Path == "" {
			return cfg, fmt.Errorf("datasets[%d]: 'path' is required", i)
		}
		if seen[ref.Name] {
			return cfg, fmt.Errorf("datasets[%d]: %q listed more than once", i, ref.Name)
		}
		seen[ref.Name] = true
	}

	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return cfg, err
	}

	// Apply defaults for missing values
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "prepared"
	}

	baseDir := filepath.Dir(path)
	cfg.OutputDir = resolve(baseDir, cfg.OutputDir)
	for i := range cfg.Datasets {
		cfg.Datasets[i].Path = resolve(baseDir, cfg.Datasets[i].Path)
	}
	for i, ref := range cfg.Registries {
		if ref.Path != nil {
			p := resolve(baseDir, *ref.Path)
			cfg.Registries[i].Path = &p
		}
	}
	if cfg.PreppersPath != nil {
		p := resolve(baseDir, *cfg.PreppersPath)
		cfg.PreppersPath = &p
	}

	return cfg, nil
}

// ParseLogLevel maps a config log level ("debug", "info", "warn", "error")
// onto a slog.Level. An empty string means info.
func ParseLogLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: %w", s, err)
	}
	return level, nil
}

func resolve(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
