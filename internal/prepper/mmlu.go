package prepper

import (
	"fmt"
	"strings"

	"github.com/spachava753/dscatalog/internal/loader"
	"github.com/spachava753/dscatalog/internal/models"
)

// MMLU prepares Massive Multitask Language Understanding records.
type MMLU struct {
	// ConfigName is the subject config the records were drawn from. It is
	// used when a record carries no subject of its own.
	ConfigName string
}

// NewMMLU reads the optional "config_name" argument.
func NewMMLU(args map[string]any) (loader.Prepper, error) {
	name, err := stringArg(args, "config_name", "")
	if err != nil {
		return nil, err
	}
	return &MMLU{ConfigName: name}, nil
}

func (p *MMLU) RequiredKeys() []string {
	return []string{"question", "choices", "answer"}
}

func (p *MMLU) CreateDatasetEntries(item map[string]any) ([]models.DatasetEntry, error) {
	if err := checkRequired(item, p.RequiredKeys()); err != nil {
		return nil, err
	}

	question, err := stringField(item, "question")
	if err != nil {
		return nil, err
	}
	choices, err := toStrings(item["choices"])
	if err != nil {
		return nil, fmt.Errorf("choices: %w", err)
	}

	lettered, err := letteredChoices(choices)
	if err != nil {
		return nil, fmt.Errorf("choices: %w", err)
	}

	answer, err := answerIndex(item["answer"], len(choices))
	if err != nil {
		return nil, fmt.Errorf("answer: %w", err)
	}

	subject := p.ConfigName
	if s, ok := item["subject"].(string); ok && s != "" {
		subject = s
	}

	return []models.DatasetEntry{{
		Query:   question,
		Choices: lettered,
		Metadata: map[string]any{
			"correct_answer": letter(answer),
			"subject":        subject,
		},
	}}, nil
}

// answerIndex accepts a zero-based index or a choice letter.
func answerIndex(v any, n int) (int, error) {
	var idx int
	if s, ok := v.(string); ok {
		s = strings.ToUpper(strings.TrimSpace(s))
		if len(s) != 1 || s[0] < 'A' || s[0] > 'Z' {
			return 0, fmt.Errorf("invalid answer letter %q", s)
		}
		idx = int(s[0] - 'A')
	} else {
		var err error
		if idx, err = toInt(v); err != nil {
			return 0, err
		}
	}
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("index %d out of range for %d choices", idx, n)
	}
	return idx, nil
}
