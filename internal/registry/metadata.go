package registry

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/spachava753/dscatalog/internal/models"
)

// MetadataRegistry stores dataset descriptors keyed by name.
// It is safe for concurrent use.
type MetadataRegistry struct {
	mu       sync.RWMutex
	datasets map[string]models.DatasetInfo
}

// NewMetadataRegistry creates an empty registry.
func NewMetadataRegistry() *MetadataRegistry {
	return &MetadataRegistry{
		datasets: make(map[string]models.DatasetInfo),
	}
}

// Register adds info to the registry. If a dataset with the same name is
// already present, it returns a *models.DuplicateKeyError and the existing
// entry is kept.
func (r *MetadataRegistry) Register(info models.DatasetInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.datasets[info.Name]; exists {
		return &models.DuplicateKeyError{Registry: "metadata registry", Name: info.Name}
	}
	r.datasets[info.Name] = info
	slog.Debug("registered dataset metadata", "name", info.Name, "task_type", info.TaskType)
	return nil
}

// RegisterAll registers infos in order and stops at the first failure.
func (r *MetadataRegistry) RegisterAll(infos []models.DatasetInfo) error {
	for _, info := range infos {
		if err := r.Register(info); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the descriptor registered under name.
func (r *MetadataRegistry) Get(name string) (models.DatasetInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.datasets[name]
	return info, ok
}

// List returns all registered names in sorted order.
func (r *MetadataRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.datasets))
	for name := range r.datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Size returns the number of registered datasets.
func (r *MetadataRegistry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.datasets)
}
