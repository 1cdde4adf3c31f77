package models

// CatalogConfig represents the parsed catalog.yaml configuration.
type CatalogConfig struct {
	LogLevel     string        `yaml:"log_level,omitempty" json:"log_level,omitempty"`
	Concurrency  int           `yaml:"concurrency" json:"concurrency"`
	OutputDir    string        `yaml:"output_dir" json:"output_dir"`
	PreppersPath *string       `yaml:"preppers_path,omitempty" json:"preppers_path,omitempty"`
	Registries   []RegistryRef `yaml:"registries,omitempty" json:"registries,omitempty"`
	Datasets     []DatasetRef  `yaml:"datasets,omitempty" json:"datasets,omitempty"`
}

// RegistryRef points at an extra registry.json to merge into the catalog.
type RegistryRef struct {
	Path *string `yaml:"path,omitempty" json:"path,omitempty"`
	URL  *string `yaml:"url,omitempty" json:"url,omitempty"`
}

// DatasetRef selects a raw record file to prepare with the named prepper.
type DatasetRef struct {
	Name        string `yaml:"name" json:"name"`
	Path        string `yaml:"path" json:"path"`
	SkipInvalid bool   `yaml:"skip_invalid,omitempty" json:"skip_invalid,omitempty"`
}
