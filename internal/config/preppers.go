package config

import (
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// PrepperArgs holds constructor arguments keyed by dataset name.
type PrepperArgs map[string]map[string]any

// For returns the arguments for name, or nil if none were configured.
func (a PrepperArgs) For(name string) map[string]any {
	return a[name]
}

// LoadPrepperArgs loads and parses a preppers.toml file from the given
// filesystem. Each top-level table names a dataset:
//
//	[mmlu]
//	config_name = "abstract_algebra"
func LoadPrepperArgs(fsys fs.FS, name string) (PrepperArgs, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	args := make(PrepperArgs, len(raw))
	for dataset, v := range raw {
		table, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("parsing %s: %q must be a table", name, dataset)
		}
		args[dataset] = table
	}

	return args, nil
}
