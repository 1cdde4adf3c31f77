package models

// TaskType identifies the kind of evaluation a dataset supports.
type TaskType string

const (
	TaskMultipleChoice       TaskType = "multiple_choice"
	TaskBinaryClassification TaskType = "binary_classification"
	TaskShortAnswer          TaskType = "short_answer"
	TaskCodeCompletion       TaskType = "code_completion"
)

// Valid reports whether t is one of the known task types.
func (t TaskType) Valid() bool {
	switch t {
	case TaskMultipleChoice, TaskBinaryClassification, TaskShortAnswer, TaskCodeCompletion:
		return true
	}
	return false
}

// DatasetInfo describes a dataset known to the catalog.
type DatasetInfo struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Source      string   `yaml:"source" json:"source"` // upstream identifier, e.g. a hub path
	TaskType    TaskType `yaml:"task_type" json:"task_type"`
}

// DatasetEntry is a single normalized evaluation record.
type DatasetEntry struct {
	Query    string            `json:"query"`
	Choices  map[string]string `json:"choices"`
	Metadata map[string]any    `json:"metadata"`
}

// RecordError describes a raw record that could not be prepared.
type RecordError struct {
	Line    int       `json:"line"`
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
}

// PreparedDataset is the result of running a prepper over a raw record file.
type PreparedDataset struct {
	Name    string         `json:"name"`
	Info    *DatasetInfo   `json:"info"` // nil when the catalog has no metadata for Name
	Source  string         `json:"source"`
	Entries []DatasetEntry `json:"-"`
	Records int            `json:"records"`
	Errors  []RecordError  `json:"errors,omitempty"`
}
