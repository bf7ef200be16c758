package assembly

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/breedkit/config"
	"github.com/kbukum/breedkit/errors"
	"github.com/kbukum/breedkit/pipeline"
	"github.com/kbukum/breedkit/selection"
	"github.com/kbukum/breedkit/species"
)

func params(values map[string]any) *config.Parameters {
	p := config.NewParameters()
	p.SetAll(values)
	return p
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	for _, name := range []string{"buffered", "check", "first-copy", "force", "generation-switch", "init",
		"multi", "repeat", "reproduce", "stub-pipeline", "unique", "tournament", "random", "best", "bit-flip"} {
		f, ok := r.Get(name)
		if !ok {
			t.Errorf("%s not registered", name)
			continue
		}
		if got := f().Name(); got != name {
			t.Errorf("factory %s builds %s", name, got)
		}
	}
	if _, ok := r.Get(StubSlot); ok {
		t.Error("the stub slot marker must not name a type")
	}

	names := r.List()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("List() not sorted: %v", names)
		}
	}
}

func TestBuild_Tree(t *testing.T) {
	p := params(map[string]any{
		"pipe.type":                   "multi",
		"pipe.num-sources":            2,
		"pipe.source.0.type":          "bit-flip",
		"pipe.source.0.prob":          0.9,
		"pipe.source.0.source.0.type": "tournament",
		"pipe.source.0.source.0.size": 2,
		"pipe.source.1.type":          "reproduce",
		"pipe.source.1.prob":          0.1,
		"pipe.source.1.source.0.type": "random",
	})

	root, err := NewBuilder(nil, p).Build("pipe")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	m, ok := root.(*pipeline.Multi)
	if !ok {
		t.Fatalf("root is %T, want *pipeline.Multi", root)
	}
	flip, ok := m.Source(0).(*species.BitFlip)
	if !ok {
		t.Fatalf("source 0 is %T", m.Source(0))
	}
	if flip.Probability() != 0.9 || flip.Base() != "pipe.source.0" {
		t.Errorf("prob=%v base=%q", flip.Probability(), flip.Base())
	}
	if _, ok := flip.Source(0).(*selection.Tournament); !ok {
		t.Errorf("bit-flip child is %T", flip.Source(0))
	}
	if err := pipeline.Assemble(nil, root); err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
}

func TestBuild_FreshInstances(t *testing.T) {
	p := params(map[string]any{"pipe.type": "reproduce", "pipe.source.0.type": "random"})
	b := NewBuilder(nil, p)
	first, err := b.Build("pipe")
	if err != nil {
		t.Fatal(err)
	}
	second, err := b.Build("pipe")
	if err != nil {
		t.Fatal(err)
	}
	if first == second || first.(pipeline.Composite).Sources()[0] == second.(pipeline.Composite).Sources()[0] {
		t.Error("Build should never share instances between calls")
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
		code   errors.ErrorCode
	}{
		{"missing root type", map[string]any{}, errors.ErrCodeMissingParameter},
		{"unknown type", map[string]any{"pipe.type": "crossover"}, errors.ErrCodeUnknownSource},
		{"stub at the root", map[string]any{"pipe.type": "stub"}, errors.ErrCodeInvalidParameter},
		{"missing child", map[string]any{"pipe.type": "reproduce"}, errors.ErrCodeMissingParameter},
		{"unknown child", map[string]any{"pipe.type": "reproduce", "pipe.source.0.type": "nope"}, errors.ErrCodeUnknownSource},
		{"first child same", map[string]any{"pipe.type": "reproduce", "pipe.source.0.type": "same"}, errors.ErrCodeInvalidParameter},
		{"multi without count", map[string]any{"pipe.type": "multi"}, errors.ErrCodeMissingParameter},
		{"multi with zero count", map[string]any{"pipe.type": "multi", "pipe.num-sources": 0}, errors.ErrCodeInvalidParameter},
		{"bad child parameter", map[string]any{"pipe.type": "force", "pipe.num-inds": 0, "pipe.source.0.type": "random"}, errors.ErrCodeInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder(nil, params(tt.values)).Build("pipe")
			if !errors.HasCode(err, tt.code) {
				t.Fatalf("Build() error = %v, want %s", err, tt.code)
			}
			if !errors.IsFatal(err) {
				t.Error("assembly errors should be fatal")
			}
		})
	}
}

func TestBuild_SameAndStubSlots(t *testing.T) {
	p := params(map[string]any{
		"pipe.type":          "multi",
		"pipe.num-sources":   3,
		"pipe.source.0.type": "random",
		"pipe.source.0.prob": 1,
		"pipe.source.1.type": "same",
		"pipe.source.2.type": "stub",
	})
	root, err := NewBuilder(nil, p).Build("pipe")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	sources := root.(pipeline.Composite).Sources()
	if sources[0] != sources[1] {
		t.Error("same should reuse the previous sibling")
	}
	if sources[2] != nil {
		t.Error("stub should leave the slot empty")
	}
	if err := pipeline.Assemble(nil, root); !errors.HasCode(err, errors.ErrCodeUnfilledStub) {
		t.Errorf("Assemble() error = %v, want UNFILLED_STUB", err)
	}
}

func TestBuild_DefaultBaseFallback(t *testing.T) {
	p := params(map[string]any{
		"pipe.type":                 "force",
		"breed.force.num-inds":      4,
		"breed.force.source.0.type": "random",
	})
	root, err := NewBuilder(nil, p).Build("pipe")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if root.TypicalIndsProduced() != 4 {
		t.Errorf("TypicalIndsProduced() = %d, want 4 from the default base", root.TypicalIndsProduced())
	}
	if got := root.(pipeline.Composite).Sources()[0].Base(); got != "breed.force.source.0" {
		t.Errorf("child base = %q", got)
	}
}

func TestBuild_NestedStubPipelines(t *testing.T) {
	p := params(map[string]any{
		"pipe.type":                        "stub-pipeline",
		"pipe.stub.type":                   "best",
		"pipe.stub.n":                      1,
		"pipe.source.0.type":               "stub-pipeline",
		"pipe.source.0.source.0.type":      "stub",
		"pipe.source.0.stub.type":          "bit-flip",
		"pipe.source.0.stub.source.0.type": "stub",
	})
	root, err := NewBuilder(nil, p).Build("pipe")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := pipeline.Assemble(nil, root); err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	inner := root.(pipeline.Composite).Sources()[0].(*pipeline.Stub)
	flip := inner.Source(0).(*species.BitFlip)
	if _, ok := flip.Source(0).(*selection.Best); !ok {
		t.Fatalf("innermost slot holds %T, want the outer stub", flip.Source(0))
	}

	pop := []pipeline.Individual{species.NewBitVector([]byte{0, 0}), species.NewBitVector([]byte{1, 1})}
	species.Evaluate(pop)
	state := &pipeline.State{
		Population: &pipeline.Population{Subpops: []*pipeline.Subpopulation{{Individuals: pop}}},
		Random:     pipeline.NewRandom(1, 1),
	}
	root.PrepareToProduce(state, 0, 0)
	var out []pipeline.Individual
	if n := root.Produce(1, 1, 0, &out, state, 0, nil); n != 1 {
		t.Fatalf("Produce() = %d, want 1", n)
	}
	if out[0] == pop[1] {
		t.Error("bit-flip should copy the selected individual")
	}
}

func TestDescribe(t *testing.T) {
	p := params(map[string]any{
		"pipe.type":                   "multi",
		"pipe.num-sources":            2,
		"pipe.source.0.type":          "force",
		"pipe.source.0.prob":          0.5,
		"pipe.source.0.num-inds":      3,
		"pipe.source.0.source.0.type": "random",
		"pipe.source.1.type":          "same",
	})
	root, err := NewBuilder(nil, p).Build("pipe")
	if err != nil {
		t.Fatal(err)
	}
	out, err := Describe(root)
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	text := string(out)
	for _, want := range []string{"type: multi", "type: force", "prob: 0.5", "typical: 3", "same: pipe.source.0", "type: random"} {
		if !strings.Contains(text, want) {
			t.Errorf("description missing %q:\n%s", want, text)
		}
	}
}

func TestBuild_FromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "breed.yml")
	doc := `pipe:
  type: unique
  duplicate-retries: 2
  source:
    "0":
      type: tournament
      size: 3
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := config.Load(config.WithConfigFile(path))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	root, err := NewBuilder(nil, p).Build("pipe")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, ok := root.(*pipeline.Unique); !ok {
		t.Fatalf("root is %T", root)
	}
	if _, ok := root.(pipeline.Composite).Sources()[0].(*selection.Tournament); !ok {
		t.Errorf("child is %T", root.(pipeline.Composite).Sources()[0])
	}
}
