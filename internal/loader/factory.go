package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/spachava753/dscatalog/internal/models"
)

// ErrPrepperNotFound is returned by Construct for names with no binding.
var ErrPrepperNotFound = errors.New("prepper not found")

// Prepper turns raw dataset records into normalized entries.
type Prepper interface {
	// RequiredKeys lists the keys every raw record must carry.
	RequiredKeys() []string

	// CreateDatasetEntries converts one raw record into one or more entries.
	CreateDatasetEntries(item map[string]any) ([]models.DatasetEntry, error)
}

// Constructor builds a Prepper from optional arguments (may be nil).
type Constructor func(args map[string]any) (Prepper, error)

// Factory maps dataset names to prepper constructors. Preppers are built on
// demand by Construct. It is safe for concurrent use.
type Factory struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewFactory creates an empty factory.
func NewFactory() *Factory {
	return &Factory{
		constructors: make(map[string]Constructor),
	}
}

// Register binds name to c. Binding a name twice returns a
// *models.DuplicateKeyError and keeps the first binding.
func (f *Factory) Register(name string, c Constructor) error {
	if c == nil {
		return fmt.Errorf("registering prepper %q: nil constructor", name)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.constructors[name]; exists {
		return &models.DuplicateKeyError{Registry: "prepper factory", Name: name}
	}
	f.constructors[name] = c
	slog.Debug("registered prepper", "dataset", name)
	return nil
}

// Construct builds the prepper bound to name.
func (f *Factory) Construct(name string, args map[string]any) (Prepper, error) {
	f.mu.RLock()
	c, ok := f.constructors[name]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPrepperNotFound, name)
	}

	p, err := c(args)
	if err != nil {
		return nil, fmt.Errorf("constructing prepper %q: %w", name, err)
	}
	return p, nil
}

// Names returns the bound dataset names in sorted order.
func (f *Factory) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.constructors))
	for name := range f.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Size returns the number of bindings.
func (f *Factory) Size() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.constructors)
}
