package prepper

import (
	"fmt"

	"github.com/spachava753/dscatalog/internal/loader"
	"github.com/spachava753/dscatalog/internal/models"
)

const defaultLanguage = "python"

// Code prepares code-completion records: a prompt plus the tests that the
// completion must pass.
type Code struct {
	Language string
}

// NewCode reads the optional "language" argument (default python).
func NewCode(args map[string]any) (loader.Prepper, error) {
	lang, err := stringArg(args, "language", defaultLanguage)
	if err != nil {
		return nil, err
	}
	return &Code{Language: lang}, nil
}

func (p *Code) RequiredKeys() []string {
	return []string{"prompt", "tests"}
}

func (p *Code) CreateDatasetEntries(item map[string]any) ([]models.DatasetEntry, error) {
	if err := checkRequired(item, p.RequiredKeys()); err != nil {
		return nil, err
	}

	prompt, err := stringField(item, "prompt")
	if err != nil {
		return nil, err
	}

	var tests any
	switch t := item["tests"].(type) {
	case string:
		tests = t
	default:
		list, err := toStrings(t)
		if err != nil {
			return nil, fmt.Errorf("tests: %w", err)
		}
		tests = list
	}

	lang := p.Language
	if l, ok := item["language"].(string); ok && l != "" {
		lang = l
	}

	return []models.DatasetEntry{{
		Query:   prompt,
		Choices: map[string]string{},
		Metadata: map[string]any{
			"tests":     tests,
			"language":  lang,
			"task_type": models.TaskCodeCompletion,
		},
	}}, nil
}
