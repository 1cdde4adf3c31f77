package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spachava753/dscatalog/internal/models"
)

// Save writes pd under dir/<name>: entries.jsonl holds one entry per line and
// result.json the summary. An existing output directory is never overwritten.
func Save(dir string, pd *models.PreparedDataset) error {
	outDir := filepath.Join(dir, pd.Name)
	if _, err := os.Stat(outDir); err == nil {
		return fmt.Errorf("output directory already exists: %s (will not overwrite existing results)", outDir)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(outDir, "entries.jsonl"))
	if err != nil {
		return fmt.Errorf("creating entries file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, e := range pd.Entries {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("writing entry: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing entries file: %w", err)
	}

	resultJSON, err := json.MarshalIndent(pd, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "result.json"), resultJSON, 0644); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}

	return f.Close()
}
