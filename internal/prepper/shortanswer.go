package prepper

import (
	"github.com/spachava753/dscatalog/internal/loader"
	"github.com/spachava753/dscatalog/internal/models"
)

// ShortAnswer prepares free-form question/answer records.
type ShortAnswer struct{}

// NewShortAnswer ignores args.
func NewShortAnswer(map[string]any) (loader.Prepper, error) {
	return &ShortAnswer{}, nil
}

func (p *ShortAnswer) RequiredKeys() []string {
	return []string{"question", "answer"}
}

func (p *ShortAnswer) CreateDatasetEntries(item map[string]any) ([]models.DatasetEntry, error) {
	if err := checkRequired(item, p.RequiredKeys()); err != nil {
		return nil, err
	}

	question, err := stringField(item, "question")
	if err != nil {
		return nil, err
	}
	answer, err := stringField(item, "answer")
	if err != nil {
		return nil, err
	}

	return []models.DatasetEntry{{
		Query:    question,
		Choices:  map[string]string{},
		Metadata: map[string]any{
			"gold_answer": answer,
			"task_type":   models.TaskShortAnswer,
		},
	}}, nil
}
