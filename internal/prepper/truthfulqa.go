package prepper

import (
	"fmt"

	"github.com/spachava753/dscatalog/internal/loader"
	"github.com/spachava753/dscatalog/internal/models"
)

// TruthfulQA prepares the multiple-choice (mc1) split of TruthfulQA.
type TruthfulQA struct{}

// NewTruthfulQA ignores args.
func NewTruthfulQA(map[string]any) (loader.Prepper, error) {
	return &TruthfulQA{}, nil
}

func (p *TruthfulQA) RequiredKeys() []string {
	return []string{"question", "mc1_targets"}
}

func (p *TruthfulQA) CreateDatasetEntries(item map[string]any) ([]models.DatasetEntry, error) {
	if err := checkRequired(item, p.RequiredKeys()); err != nil {
		return nil, err
	}

	question, err := stringField(item, "question")
	if err != nil {
		return nil, err
	}
	targets, err := mapField(item, "mc1_targets")
	if err != nil {
		return nil, err
	}
	if err := checkRequired(targets, []string{"choices", "labels"}); err != nil {
		return nil, fmt.Errorf("mc1_targets: %w", err)
	}

	choices, err := toStrings(targets["choices"])
	if err != nil {
		return nil, fmt.Errorf("mc1_targets.choices: %w", err)
	}
	labels, err := toInts(targets["labels"])
	if err != nil {
		return nil, fmt.Errorf("mc1_targets.labels: %w", err)
	}
	lettered, err := letteredChoices(choices)
	if err != nil {
		return nil, fmt.Errorf("mc1_targets.choices: %w", err)
	}
	if len(choices) != len(labels) {
		return nil, fmt.Errorf("mc1_targets: %d choices but %d labels", len(choices), len(labels))
	}

	correct := -1
	for i, l := range labels {
		if l == 1 {
			correct = i
			break
		}
	}
	if correct < 0 {
		return nil, fmt.Errorf("mc1_targets: no choice labelled correct")
	}

	return []models.DatasetEntry{{
		Query:    question,
		Choices:  lettered,
		Metadata: map[string]any{"correct_answer": letter(correct)},
	}}, nil
}
