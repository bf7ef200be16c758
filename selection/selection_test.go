package selection

import (
	"testing"

	"github.com/kbukum/breedkit/config"
	"github.com/kbukum/breedkit/errors"
	"github.com/kbukum/breedkit/pipeline"
)

type scored float64

func (s scored) Fitness() float64                     { return float64(s) }
func (s scored) Duplicate() pipeline.Individual       { return s }
func (s scored) Equal(other pipeline.Individual) bool { return other == pipeline.Individual(s) }
func (s scored) Hash() uint64                         { return uint64(s) }

func newState(fitness ...float64) *pipeline.State {
	inds := make([]pipeline.Individual, len(fitness))
	for i, f := range fitness {
		inds[i] = scored(f)
	}
	return &pipeline.State{
		Population: &pipeline.Population{Subpops: []*pipeline.Subpopulation{{Individuals: inds}}},
		Random:     pipeline.NewRandom(7, 1),
	}
}

func setupWith(t *testing.T, src pipeline.Source, values map[string]any) {
	t.Helper()
	p := config.NewParameters()
	p.SetAll(values)
	if err := src.Setup(p, src.DefaultBase()); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
}

func TestSelectorsSatisfyPipelineSelector(t *testing.T) {
	for _, s := range []pipeline.Selector{NewTournament(), NewRandom(), NewBest()} {
		if s.NumSources() != 0 {
			t.Errorf("%s: NumSources() = %d, want 0", s.Name(), s.NumSources())
		}
	}
}

func TestTournament(t *testing.T) {
	state := newState(1, 9, 3, 5)

	tests := []struct {
		name   string
		values map[string]any
		want   int
	}{
		{"large tournament finds the best", map[string]any{"select.tournament.size": 64}, 1},
		{"pick-worst finds the worst", map[string]any{"select.tournament.size": 64, "select.tournament.pick-worst": true}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewTournament()
			setupWith(t, s, tt.values)
			if got := s.Pick(0, state, 0); got != tt.want {
				t.Errorf("Pick() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTournament_SizeOneIsUniform(t *testing.T) {
	state := newState(1, 9, 3, 5)
	s := NewTournament()
	setupWith(t, s, map[string]any{"select.tournament.size": 1})

	counts := make([]int, 4)
	for i := 0; i < 4000; i++ {
		counts[s.Pick(0, state, 0)]++
	}
	for i, c := range counts {
		if c < 800 || c > 1200 {
			t.Errorf("index %d picked %d times out of 4000", i, c)
		}
	}
}

func TestTournament_RequiresSize(t *testing.T) {
	s := NewTournament()
	err := s.Setup(config.NewParameters(), "pipe")
	if !errors.HasCode(err, errors.ErrCodeMissingParameter) {
		t.Fatalf("Setup() error = %v, want MISSING_PARAMETER", err)
	}

	p := config.NewParameters()
	p.Set("pipe.size", 0)
	if err := s.Setup(p, "pipe"); !errors.HasCode(err, errors.ErrCodeInvalidParameter) {
		t.Fatalf("Setup() error = %v, want INVALID_PARAMETER", err)
	}
}

func TestRandom_ProducesPopulationMembers(t *testing.T) {
	state := newState(1, 2, 3)
	r := NewRandom()
	setupWith(t, r, nil)

	var out []pipeline.Individual
	misc := pipeline.NewMisc()
	if n := r.Produce(1, 5, 0, &out, state, 0, misc); n != 1 {
		t.Fatalf("Produce() = %d, want 1", n)
	}
	parents := misc.Lineage().Get(0)
	if len(parents) != 1 || state.Subpop(0).Individuals[parents[0]] != out[0] {
		t.Errorf("lineage %v does not point at the selected member", parents)
	}
}

func TestBest(t *testing.T) {
	state := newState(4, 8, 1, 7, 2)
	b := NewBest()
	setupWith(t, b, map[string]any{"select.best.n": 2})
	b.PrepareToProduce(state, 0, 0)

	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		seen[b.Pick(0, state, 0)] = true
	}
	if len(seen) != 2 || !seen[1] || !seen[3] {
		t.Errorf("picked %v, want only indices 1 and 3", seen)
	}
}

func TestBest_NLargerThanPopulation(t *testing.T) {
	state := newState(4, 8)
	b := NewBest()
	setupWith(t, b, map[string]any{"select.best.n": 10})
	b.PrepareToProduce(state, 0, 0)
	for i := 0; i < 50; i++ {
		if idx := b.Pick(0, state, 0); idx < 0 || idx > 1 {
			t.Fatalf("Pick() = %d out of range", idx)
		}
	}
}
