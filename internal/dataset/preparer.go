package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/spachava753/dscatalog/internal/loader"
	"github.com/spachava753/dscatalog/internal/models"
	"github.com/spachava753/dscatalog/internal/registry"
)

// maxRecordSize bounds a single JSONL line.
const maxRecordSize = 16 * 1024 * 1024

// Request selects a raw record file and the prepper to run over it.
type Request struct {
	Name string
	Path string
	Args map[string]any
	// SkipInvalid records failing records in the result instead of aborting.
	SkipInvalid bool
}

// Preparer runs registered preppers over local JSONL record files.
type Preparer struct {
	metadata *registry.MetadataRegistry
	factory  *loader.Factory
}

// NewPreparer creates a preparer. metadata may be nil, in which case
// prepared datasets carry no Info.
func NewPreparer(metadata *registry.MetadataRegistry, factory *loader.Factory) *Preparer {
	return &Preparer{
		metadata: metadata,
		factory:  factory,
	}
}

// PrepareFile normalizes every record in req.Path with the prepper bound to req.Name.
func (p *Preparer) PrepareFile(ctx context.Context, req Request) (*models.PreparedDataset, error) {
	prep, err := p.factory.Construct(req.Name, req.Args)
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(req.Path)
	if err != nil {
		return nil, fmt.Errorf("getting absolute path: %w", err)
	}

	f, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("opening records: %w", err)
	}
	defer f.Close()

	result := &models.PreparedDataset{
		Name:   req.Name,
		Source: absPath,
	}
	if p.metadata != nil {
		if info, ok := p.metadata.Get(req.Name); ok {
			result.Info = &info
		}
	}

	slog.Debug("preparing dataset", "dataset", req.Name, "path", absPath)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)

	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw := scanner.Bytes()
		if len(bytes.TrimSpace(raw)) == 0 {
			continue
		}
		result.Records++

		entries, recErr := prepareRecord(prep, raw)
		if recErr != nil {
			if !req.SkipInvalid {
				return nil, fmt.Errorf("%s line %d: %w", req.Name, line, recErr.err)
			}
			slog.Debug("skipping invalid record", "dataset", req.Name, "line", line, "error", recErr.err)
			result.Errors = append(result.Errors, models.RecordError{
				Line:    line,
				Type:    recErr.typ,
				Message: recErr.err.Error(),
			})
			continue
		}
		result.Entries = append(result.Entries, entries...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}

	slog.Debug("prepared dataset",
		"dataset", req.Name,
		"records", result.Records,
		"entries", len(result.Entries),
		"skipped", len(result.Errors))
	return result, nil
}

// PrepareAll runs PrepareFile for every request with at most concurrency
// in flight. Results are returned in request order. The first failure
// cancels the remaining work.
func (p *Preparer) PrepareAll(ctx context.Context, reqs []Request, concurrency int) ([]*models.PreparedDataset, error) {
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]*models.PreparedDataset, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			pd, err := p.PrepareFile(ctx, req)
			if err != nil {
				return fmt.Errorf("preparing %s: %w", req.Name, err)
			}
			results[i] = pd
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

type recordError struct {
	typ models.ErrorType
	err error
}

func prepareRecord(prep loader.Prepper, raw []byte) ([]models.DatasetEntry, *recordError) {
	var item map[string]any
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, &recordError{typ: models.ErrRecordMalformed, err: fmt.Errorf("decoding record: %w", err)}
	}

	entries, err := prep.CreateDatasetEntries(item)
	if err != nil {
		typ := models.ErrRecordInvalid
		if errors.Is(err, models.ErrMissingKey) {
			typ = models.ErrRecordMissingKey
		}
		return nil, &recordError{typ: typ, err: err}
	}
	return entries, nil
}
