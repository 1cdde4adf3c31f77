package catalog_test

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/spachava753/dscatalog/internal/catalog"
	"github.com/spachava753/dscatalog/internal/loader"
	"github.com/spachava753/dscatalog/internal/models"
	"github.com/spachava753/dscatalog/internal/prepper"
	"github.com/spachava753/dscatalog/internal/registry"
)

func TestInitialize_PopulatesEmptyCollaborators(t *testing.T) {
	metadata := registry.NewMetadataRegistry()
	factory := loader.NewFactory()

	if err := catalog.Initialize(metadata, factory); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if metadata.Size() != 4 {
		t.Errorf("expected 4 metadata entries, got %d", metadata.Size())
	}
	if factory.Size() != 6 {
		t.Errorf("expected 6 prepper bindings, got %d", factory.Size())
	}
}

func TestInitialize_MetadataEntries(t *testing.T) {
	metadata := registry.NewMetadataRegistry()
	if err := catalog.Initialize(metadata, loader.NewFactory()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	want := []models.DatasetInfo{
		{Name: "truthful_qa", Description: "A dataset for measuring truthfulness.", Source: "truthful_qa", TaskType: models.TaskMultipleChoice},
		{Name: "mmlu", Description: "Massive Multitask Language Understanding dataset.", Source: "cais/mmlu", TaskType: models.TaskMultipleChoice},
		{Name: "commonsense_qa", Description: "A dataset for commonsense QA.", Source: "commonsense_qa", TaskType: models.TaskMultipleChoice},
		{Name: "halueval", Description: "Dataset for evaluating hallucination in QA.", Source: "pminervini/HaluEval", TaskType: models.TaskBinaryClassification},
	}

	for _, w := range want {
		got, ok := metadata.Get(w.Name)
		if !ok {
			t.Errorf("%s: not registered", w.Name)
			continue
		}
		if got != w {
			t.Errorf("%s: got %+v, want %+v", w.Name, got, w)
		}
	}
}

func TestInitialize_PrepperTypes(t *testing.T) {
	factory := loader.NewFactory()
	if err := catalog.Initialize(registry.NewMetadataRegistry(), factory); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	want := map[string]reflect.Type{
		"truthful_qa":       reflect.TypeOf(&prepper.TruthfulQA{}),
		"mmlu":              reflect.TypeOf(&prepper.MMLU{}),
		"commonsense_qa":    reflect.TypeOf(&prepper.CommonsenseQA{}),
		"halueval":          reflect.TypeOf(&prepper.HaluEval{}),
		"my_shortanswer_ds": reflect.TypeOf(&prepper.ShortAnswer{}),
		"my_code_ds":        reflect.TypeOf(&prepper.Code{}),
	}

	for name, wantType := range want {
		p, err := factory.Construct(name, nil)
		if err != nil {
			t.Errorf("%s: Construct: %v", name, err)
			continue
		}
		if got := reflect.TypeOf(p); got != wantType {
			t.Errorf("%s: got %v, want %v", name, got, wantType)
		}
	}
}

func TestInitialize_IndependentKeyspaces(t *testing.T) {
	metadata := registry.NewMetadataRegistry()
	factory := loader.NewFactory()
	if err := catalog.Initialize(metadata, factory); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	for _, name := range []string{"my_shortanswer_ds", "my_code_ds"} {
		if _, ok := metadata.Get(name); ok {
			t.Errorf("%s: unexpected metadata entry", name)
		}
		if _, err := factory.Construct(name, nil); err != nil {
			t.Errorf("%s: Construct: %v", name, err)
		}
	}
}

func TestInitialize_DuplicateMetadataFailsFast(t *testing.T) {
	metadata := registry.NewMetadataRegistry()
	factory := loader.NewFactory()

	if err := metadata.Register(models.DatasetInfo{Name: "mmlu", Source: "preexisting"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	err := catalog.Initialize(metadata, factory)

	var dupErr *models.DuplicateKeyError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected *DuplicateKeyError, got %v", err)
	}
	if dupErr.Name != "mmlu" {
		t.Errorf("expected duplicate name mmlu, got %q", dupErr.Name)
	}

	// truthful_qa precedes mmlu; nothing after mmlu was attempted.
	if want := []string{"mmlu", "truthful_qa"}; !slices.Equal(metadata.List(), want) {
		t.Errorf("metadata names = %v, want %v", metadata.List(), want)
	}
	if got, _ := metadata.Get("mmlu"); got.Source != "preexisting" {
		t.Errorf("preexisting mmlu entry was replaced: %+v", got)
	}
	if factory.Size() != 0 {
		t.Errorf("expected no prepper bindings, got %d", factory.Size())
	}
}

func TestInitialize_TwiceFailsOnSecondCall(t *testing.T) {
	metadata := registry.NewMetadataRegistry()
	factory := loader.NewFactory()

	if err := catalog.Initialize(metadata, factory); err != nil {
		t.Fatalf("first Initialize: %v", err)
	}
	if err := catalog.Initialize(metadata, factory); !errors.Is(err, models.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey on second call, got %v", err)
	}
}

func TestInitialize_Deterministic(t *testing.T) {
	m1, f1 := registry.NewMetadataRegistry(), loader.NewFactory()
	m2, f2 := registry.NewMetadataRegistry(), loader.NewFactory()

	if err := catalog.Initialize(m1, f1); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := catalog.Initialize(m2, f2); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if !slices.Equal(m1.List(), m2.List()) {
		t.Errorf("metadata names differ: %v vs %v", m1.List(), m2.List())
	}
	for _, name := range m1.List() {
		a, _ := m1.Get(name)
		b, _ := m2.Get(name)
		if a != b {
			t.Errorf("%s: %+v vs %+v", name, a, b)
		}
	}
	if !slices.Equal(f1.Names(), f2.Names()) {
		t.Errorf("prepper names differ: %v vs %v", f1.Names(), f2.Names())
	}
}

// recorder captures registration calls in order.
type recorder struct {
	calls  []string
	failOn string
}

func (r *recorder) Register(info models.DatasetInfo) error {
	r.calls = append(r.calls, "metadata:"+info.Name)
	if info.Name == r.failOn {
		return &models.DuplicateKeyError{Registry: "recorder", Name: info.Name}
	}
	return nil
}

type bindingRecorder struct {
	*recorder
}

func (r bindingRecorder) Register(name string, _ loader.Constructor) error {
	r.calls = append(r.calls, "prepper:"+name)
	if name == r.failOn {
		return &models.DuplicateKeyError{Registry: "recorder", Name: name}
	}
	return nil
}

func TestInitialize_Order(t *testing.T) {
	rec := &recorder{}
	if err := catalog.Initialize(rec, bindingRecorder{rec}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	want := []string{
		"metadata:truthful_qa",
		"metadata:mmlu",
		"metadata:commonsense_qa",
		"metadata:halueval",
		"prepper:truthful_qa",
		"prepper:mmlu",
		"prepper:commonsense_qa",
		"prepper:halueval",
		"prepper:my_shortanswer_ds",
		"prepper:my_code_ds",
	}
	if !slices.Equal(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestInitialize_PrepperErrorPropagatesUnchanged(t *testing.T) {
	rec := &recorder{failOn: "my_shortanswer_ds"}
	err := catalog.Initialize(rec, bindingRecorder{rec})

	var dupErr *models.DuplicateKeyError
	if !errors.As(err, &dupErr) || dupErr.Registry != "recorder" {
		t.Fatalf("expected recorder's DuplicateKeyError, got %v", err)
	}
	if last := rec.calls[len(rec.calls)-1]; last != "prepper:my_shortanswer_ds" {
		t.Errorf("expected registration to stop at my_shortanswer_ds, last call %s", last)
	}
}
