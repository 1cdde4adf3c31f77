package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spachava753/dscatalog/internal/models"
)

// LoadFromPath loads a registry.json from a local filesystem path.
func LoadFromPath(path string) ([]models.DatasetInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry file: %w", err)
	}

	return parseRegistry(data)
}

// LoadFromURL loads a registry.json from a remote URL.
func LoadFromURL(ctx context.Context, url string) ([]models.DatasetInfo, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching registry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching registry: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return parseRegistry(data)
}

// Load loads the registry referenced by ref, which must set exactly one of
// Path or URL.
func Load(ctx context.Context, ref models.RegistryRef) ([]models.DatasetInfo, error) {
	switch {
	case ref.Path != nil && ref.URL != nil:
		return nil, fmt.Errorf("registry ref cannot specify both 'path' and 'url'")
	case ref.Path != nil:
		return LoadFromPath(*ref.Path)
	case ref.URL != nil:
		return LoadFromURL(ctx, *ref.URL)
	default:
		return nil, fmt.Errorf("registry ref must specify either 'path' or 'url'")
	}
}

func parseRegistry(data []byte) ([]models.DatasetInfo, error) {
	var datasets []models.DatasetInfo
	if err := json.Unmarshal(data, &datasets); err != nil {
		return nil, fmt.Errorf("parsing registry JSON: %w", err)
	}

	for i, ds := range datasets {
		if ds.Name == "" {
			return nil, fmt.Errorf("dataset[%d]: name is empty", i)
		}
		if !ds.TaskType.Valid() {
			return nil, fmt.Errorf("dataset %q: unknown task type %q", ds.Name, ds.TaskType)
		}
	}

	return datasets, nil
}

// FindDataset searches for a dataset by name in a list of descriptors.
func FindDataset(datasets []models.DatasetInfo, name string) (*models.DatasetInfo, error) {
	for i := range datasets {
		if datasets[i].Name == name {
			return &datasets[i], nil
		}
	}
	return nil, fmt.Errorf("dataset %q not found in registry", name)
}
