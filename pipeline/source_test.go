package pipeline

import (
	"math"
	"testing"

	"github.com/kbukum/breedkit/config"
	"github.com/kbukum/breedkit/errors"
)

func TestSetupPipeline_Topology(t *testing.T) {
	tests := []struct {
		name     string
		src      Composite
		children []Source
	}{
		{"reproduce without child", NewReproduction(), nil},
		{"reproduce with two children", NewReproduction(), []Source{newScripted(), newScripted()}},
		{"first-copy with one child", NewFirstCopy(), []Source{newScripted()}},
		{"multi without children", NewMulti(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.src.SetSources(tt.children)
			err := tt.src.Setup(config.NewParameters(), tt.src.DefaultBase())
			if !errors.HasCode(err, errors.ErrCodeInvalidTopology) {
				t.Fatalf("Setup() error = %v, want INVALID_TOPOLOGY", err)
			}
			if !errors.IsFatal(err) {
				t.Error("topology errors should be fatal")
			}
		})
	}
}

func TestSetupNode_Probability(t *testing.T) {
	p := config.NewParameters()
	leaf := newScripted()
	if err := leaf.Setup(p, "pipe"); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if leaf.Probability() != NoProbability {
		t.Errorf("Probability() = %v, want NoProbability", leaf.Probability())
	}
	if leaf.Base() != "pipe" {
		t.Errorf("Base() = %q, want pipe", leaf.Base())
	}

	p.Set("test.scripted.prob", 0.25)
	if err := leaf.Setup(p, "pipe"); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if leaf.Probability() != 0.25 {
		t.Errorf("Probability() = %v, want default-base value 0.25", leaf.Probability())
	}

	p.Set("pipe.prob", -1.5)
	err := leaf.Setup(p, "pipe")
	if !errors.HasCode(err, errors.ErrCodeInvalidParameter) {
		t.Fatalf("Setup() error = %v, want INVALID_PARAMETER", err)
	}
}

func TestAssemble_UnfilledStub(t *testing.T) {
	r := NewReproduction()
	r.SetSources([]Source{nil})
	if err := r.Setup(config.NewParameters(), "root"); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	err := Assemble(nil, r)
	if !errors.HasCode(err, errors.ErrCodeUnfilledStub) {
		t.Fatalf("Assemble() error = %v, want UNFILLED_STUB", err)
	}
}

func TestPipeline_PrepareAndFinishRecurse(t *testing.T) {
	leaf := newScripted()
	r := NewReproduction()
	outer := NewReproduction()
	setup(t, r, nil, leaf)
	setup(t, outer, nil, r)

	state := newTestState(0, 1)
	outer.PrepareToProduce(state, 0, 0)
	outer.FinishProducing(state, 0, 0)
	if leaf.prepared != 1 || leaf.finished != 1 {
		t.Errorf("prepared=%d finished=%d, want 1 and 1", leaf.prepared, leaf.finished)
	}
}

func TestPipeline_SharedChildVisitedOnce(t *testing.T) {
	leaf := newScripted()
	leaf.SetProbability(1)
	m := NewMulti()
	setup(t, m, nil, leaf, leaf)

	m.PrepareToProduce(newTestState(0, 1), 0, 0)
	if leaf.prepared != 1 {
		t.Errorf("prepared = %d, want 1", leaf.prepared)
	}
}

func TestCumulativeTable(t *testing.T) {
	table, uniform, err := CumulativeTable([]float64{1, 3, 0, 4})
	if err != nil {
		t.Fatalf("CumulativeTable() error = %v", err)
	}
	if uniform {
		t.Error("uniform = true for non-zero weights")
	}
	want := []float64{0.125, 0.5, 0.5, 1}
	for i := range want {
		if math.Abs(table[i]-want[i]) > 1e-12 {
			t.Errorf("table[%d] = %v, want %v", i, table[i], want[i])
		}
	}

	table, uniform, err = CumulativeTable([]float64{0, 0, 0, 0})
	if err != nil || !uniform {
		t.Fatalf("CumulativeTable(zeros) uniform=%v err=%v", uniform, err)
	}
	if table[1] != 0.5 || table[3] != 1 {
		t.Errorf("uniform table = %v", table)
	}

	if _, _, err := CumulativeTable([]float64{1, -1}); err == nil {
		t.Error("expected error for negative weight")
	}
}

func TestPickIndex(t *testing.T) {
	table := []float64{0.125, 0.5, 0.5, 1}
	tests := []struct {
		r    float64
		want int
	}{
		{0, 0},
		{0.124, 0},
		{0.125, 1},
		{0.499, 1},
		{0.5, 3},
		{0.999, 3},
	}
	for _, tt := range tests {
		if got := PickIndex(table, tt.r); got != tt.want {
			t.Errorf("PickIndex(%v) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestLineage(t *testing.T) {
	var nilLineage *Lineage
	nilLineage.Set(0, []int{1})
	if nilLineage.Get(0) != nil {
		t.Error("nil lineage should be inert")
	}

	l := NewLineage()
	l.Set(0, []int{3})
	l.Add(0, 4)
	l.Move(0, 2)
	if got := l.Get(2); !equalInts(got, []int{3, 4}) {
		t.Errorf("Get(2) = %v", got)
	}
	if got := l.Get(0); len(got) != 0 {
		t.Errorf("Get(0) = %v, want empty after Move", got)
	}

	var m Misc
	if m.Lineage() != nil || m.scratch() != nil {
		t.Error("nil Misc should not track lineage")
	}
	if NewMisc().scratch().Lineage() == nil {
		t.Error("scratch of a tracking Misc should track")
	}
}

func TestSelect_Clamp(t *testing.T) {
	state := newTestState(0, 10, 20, 30)
	tests := []struct {
		minN, maxN, want int
	}{
		{1, 5, 1},
		{3, 5, 3},
		{0, 0, 0},
		{0, 4, 1},
	}
	for _, tt := range tests {
		p := &fixedPicker{order: []int{2, 0}}
		var out []Individual
		misc := NewMisc()
		if got := p.Produce(tt.minN, tt.maxN, 0, &out, state, 0, misc); got != tt.want || len(out) != tt.want {
			t.Errorf("Produce(%d,%d) = %d (len %d), want %d", tt.minN, tt.maxN, got, len(out), tt.want)
		}
		if tt.want > 0 {
			if out[0] != state.Subpop(0).Individuals[2] {
				t.Error("selection should hand out the population member itself")
			}
			if got := misc.Lineage().Get(0); !equalInts(got, []int{2}) {
				t.Errorf("parents = %v, want [2]", got)
			}
		}
	}
}
