// Package app wires the catalog collaborators together for the CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spachava753/dscatalog/internal/catalog"
	"github.com/spachava753/dscatalog/internal/config"
	"github.com/spachava753/dscatalog/internal/dataset"
	"github.com/spachava753/dscatalog/internal/loader"
	"github.com/spachava753/dscatalog/internal/models"
	"github.com/spachava753/dscatalog/internal/registry"
)

// App owns the process-wide metadata registry and prepper factory.
type App struct {
	Metadata *registry.MetadataRegistry
	Factory  *loader.Factory
}

// New creates an App with the built-in catalog registered.
func New() (*App, error) {
	a := &App{
		Metadata: registry.NewMetadataRegistry(),
		Factory:  loader.NewFactory(),
	}
	if err := catalog.Initialize(a.Metadata, a.Factory); err != nil {
		return nil, fmt.Errorf("initializing catalog: %w", err)
	}
	return a, nil
}

// LoadRegistries merges the datasets of every referenced registry.json into
// the metadata registry. A name already in the catalog is an error.
func (a *App) LoadRegistries(ctx context.Context, refs []models.RegistryRef) error {
	for i, ref := range refs {
		infos, err := registry.Load(ctx, ref)
		if err != nil {
			return fmt.Errorf("loading registry[%d]: %w", i, err)
		}
		if err := a.Metadata.RegisterAll(infos); err != nil {
			return fmt.Errorf("registering registry[%d]: %w", i, err)
		}
		slog.Debug("merged registry", "index", i, "datasets", len(infos))
	}
	return nil
}

// Result is the outcome of RunFromConfig.
type Result struct {
	OutputDir string
	Datasets  []*models.PreparedDataset
}

// RunFromConfig loads a catalog.yaml, prepares every dataset it lists and
// saves the prepared entries under the configured output directory.
func RunFromConfig(ctx context.Context, configPath string) (*Result, error) {
	cfg, err := config.LoadCatalogConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog config: %w", err)
	}
	return Run(ctx, cfg)
}

// Run prepares every dataset listed in cfg and saves the results.
func Run(ctx context.Context, cfg models.CatalogConfig) (*Result, error) {
	// Check that no output directories already exist
	for _, ref := range cfg.Datasets {
		outDir := filepath.Join(cfg.OutputDir, ref.Name)
		if _, err := os.Stat(outDir); err == nil {
			return nil, fmt.Errorf("output directory already exists: %s (will not overwrite existing results)", outDir)
		}
	}

	a, err := New()
	if err != nil {
		return nil, err
	}

	if err := a.LoadRegistries(ctx, cfg.Registries); err != nil {
		return nil, err
	}

	var args config.PrepperArgs
	if cfg.PreppersPath != nil {
		args, err = config.LoadPrepperArgs(os.DirFS(filepath.Dir(*cfg.PreppersPath)), filepath.Base(*cfg.PreppersPath))
		if err != nil {
			return nil, fmt.Errorf("loading prepper args: %w", err)
		}
	}

	reqs := make([]dataset.Request, 0, len(cfg.Datasets))
	for _, ref := range cfg.Datasets {
		reqs = append(reqs, dataset.Request{
			Name:        ref.Name,
			Path:        ref.Path,
			Args:        args.For(ref.Name),
			SkipInvalid: ref.SkipInvalid,
		})
	}

	preparer := dataset.NewPreparer(a.Metadata, a.Factory)
	prepared, err := preparer.PrepareAll(ctx, reqs, cfg.Concurrency)
	if err != nil {
		return nil, err
	}

	for _, pd := range prepared {
		if err := dataset.Save(cfg.OutputDir, pd); err != nil {
			return nil, fmt.Errorf("saving %s: %w", pd.Name, err)
		}
	}

	return &Result{
		OutputDir: cfg.OutputDir,
		Datasets:  prepared,
	}, nil
}
