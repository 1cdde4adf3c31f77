package prepper

import (
	"fmt"

	"github.com/spachava753/dscatalog/internal/loader"
	"github.com/spachava753/dscatalog/internal/models"
)

// CommonsenseQA prepares CommonsenseQA records, whose choices arrive as
// parallel label/text lists.
type CommonsenseQA struct{}

// NewCommonsenseQA ignores args.
func NewCommonsenseQA(map[string]any) (loader.Prepper, error) {
	return &CommonsenseQA{}, nil
}

func (p *CommonsenseQA) RequiredKeys() []string {
	return []string{"question", "choices", "answerKey"}
}

func (p *CommonsenseQA) CreateDatasetEntries(item map[string]any) ([]models.DatasetEntry, error) {
	if err := checkRequired(item, p.RequiredKeys()); err != nil {
		return nil, err
	}

	question, err := stringField(item, "question")
	if err != nil {
		return nil, err
	}
	answerKey, err := stringField(item, "answerKey")
	if err != nil {
		return nil, err
	}
	raw, err := mapField(item, "choices")
	if err != nil {
		return nil, err
	}
	if err := checkRequired(raw, []string{"label", "text"}); err != nil {
		return nil, fmt.Errorf("choices: %w", err)
	}

	labels, err := toStrings(raw["label"])
	if err != nil {
		return nil, fmt.Errorf("choices.label: %w", err)
	}
	texts, err := toStrings(raw["text"])
	if err != nil {
		return nil, fmt.Errorf("choices.text: %w", err)
	}
	if len(labels) != len(texts) {
		return nil, fmt.Errorf("choices: %d labels but %d texts", len(labels), len(texts))
	}

	choices := make(map[string]string, len(labels))
	for i, l := range labels {
		choices[l] = texts[i]
	}
	if _, ok := choices[answerKey]; !ok {
		return nil, fmt.Errorf("answerKey %q is not one of the choice labels", answerKey)
	}

	return []models.DatasetEntry{{
		Query:    question,
		Choices:  choices,
		Metadata: map[string]any{"correct_answer": answerKey},
	}}, nil
}
