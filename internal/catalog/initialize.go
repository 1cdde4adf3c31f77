// Package catalog holds the built-in dataset catalog and registers it with a
// metadata registry and a prepper factory at startup.
package catalog

import (
	"log/slog"

	"github.com/spachava753/dscatalog/internal/loader"
	"github.com/spachava753/dscatalog/internal/models"
	"github.com/spachava753/dscatalog/internal/prepper"
)

// MetadataRegisterer accepts dataset descriptors.
type MetadataRegisterer interface {
	Register(info models.DatasetInfo) error
}

// PrepperRegisterer accepts name to prepper-constructor bindings.
type PrepperRegisterer interface {
	Register(name string, c loader.Constructor) error
}

// Binding pairs a dataset name with the constructor of its prepper.
type Binding struct {
	Name        string
	Constructor loader.Constructor
}

// Entries returns the built-in dataset descriptors in registration order.
func Entries() []models.DatasetInfo {
	return []models.DatasetInfo{
		{
			Name:        "truthful_qa",
			Description: "A dataset for measuring truthfulness.",
			Source:      "truthful_qa",
			TaskType:    models.TaskMultipleChoice,
		},
		{
			Name:        "mmlu",
			Description: "Massive Multitask Language Understanding dataset.",
			Source:      "cais/mmlu",
			TaskType:    models.TaskMultipleChoice,
		},
		{
			Name:        "commonsense_qa",
			Description: "A dataset for commonsense QA.",
			Source:      "commonsense_qa",
			TaskType:    models.TaskMultipleChoice,
		},
		{
			Name:        "halueval",
			Description: "Dataset for evaluating hallucination in QA.",
			Source:      "pminervini/HaluEval",
			TaskType:    models.TaskBinaryClassification,
		},
	}
}

// Bindings returns the built-in prepper bindings in registration order.
// my_shortanswer_ds and my_code_ds have no metadata entry.
func Bindings() []Binding {
	return []Binding{
		{Name: "truthful_qa", Constructor: prepper.NewTruthfulQA},
		{Name: "mmlu", Constructor: prepper.NewMMLU},
		{Name: "commonsense_qa", Constructor: prepper.NewCommonsenseQA},
		{Name: "halueval", Constructor: prepper.NewHaluEval},
		{Name: "my_shortanswer_ds", Constructor: prepper.NewShortAnswer},
		{Name: "my_code_ds", Constructor: prepper.NewCode},
	}
}

// Initialize registers every built-in entry with metadata, then every
// built-in binding with factory. The first registration error is returned
// as is; anything registered before it stays registered.
func Initialize(metadata MetadataRegisterer, factory PrepperRegisterer) error {
	for _, info := range Entries() {
		if err := metadata.Register(info); err != nil {
			return err
		}
	}

	for _, b := range Bindings() {
		if err := factory.Register(b.Name, b.Constructor); err != nil {
			return err
		}
	}

	slog.Info("initialized dataset registry with known datasets",
		"datasets", len(Entries()),
		"preppers", len(Bindings()))
	return nil
}
