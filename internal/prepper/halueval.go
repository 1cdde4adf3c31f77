package prepper

import (
	"fmt"

	"github.com/spachava753/dscatalog/internal/loader"
	"github.com/spachava753/dscatalog/internal/models"
)

const (
	choiceNotHallucinated = "Not Hallucinated"
	choiceHallucinated    = "Hallucinated"
)

// HaluEval prepares HaluEval QA records. Each record yields two binary
// entries: one for the right answer and one for the hallucinated answer.
type HaluEval struct{}

// NewHaluEval ignores args.
func NewHaluEval(map[string]any) (loader.Prepper, error) {
	return &HaluEval{}, nil
}

func (p *HaluEval) RequiredKeys() []string {
	return []string{"knowledge", "question", "right_answer", "hallucinated_answer"}
}

func (p *HaluEval) CreateDatasetEntries(item map[string]any) ([]models.DatasetEntry, error) {
	if err := checkRequired(item, p.RequiredKeys()); err != nil {
		return nil, err
	}

	fields := make(map[string]string, 4)
	for _, k := range p.RequiredKeys() {
		s, err := stringField(item, k)
		if err != nil {
			return nil, err
		}
		fields[k] = s
	}

	return []models.DatasetEntry{
		haluEntry(fields["knowledge"], fields["question"], fields["right_answer"], "A"),
		haluEntry(fields["knowledge"], fields["question"], fields["hallucinated_answer"], "B"),
	}, nil
}

func haluEntry(knowledge, question, candidate, correct string) models.DatasetEntry {
	query := fmt.Sprintf(
		"Knowledge: %s\nQuestion: %s\nCandidate Answer: %s. Is this candidate answer supported by the provided knowledge?",
		knowledge, question, candidate,
	)
	return models.DatasetEntry{
		Query: query,
		Choices: map[string]string{
			"A": choiceNotHallucinated,
			"B": choiceHallucinated,
		},
		Metadata: map[string]any{"correct_answer": correct},
	}
}
