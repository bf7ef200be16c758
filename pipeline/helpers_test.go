package pipeline

import (
	"testing"

	"github.com/kbukum/breedkit/config"
)

// intInd is a minimal individual whose genome is a single int.
type intInd struct{ v int }

func (i *intInd) Fitness() float64      { return float64(i.v) }
func (i *intInd) Duplicate() Individual { return &intInd{v: i.v} }
func (i *intInd) Hash() uint64          { return uint64(i.v) }
func (i *intInd) Equal(other Individual) bool {
	o, ok := other.(*intInd)
	return ok && o.v == i.v
}

type counterSpecies struct{ next int }

func (s *counterSpecies) NewIndividual(*State, int) Individual {
	s.next++
	return &intInd{v: 1000 + s.next}
}

// scripted is a leaf that records every request and produces individuals
// with increasing values, or cycles through values when set.
type scripted struct {
	Node
	values   []int
	next     int
	typical  int
	count    func(minN, maxN int) int
	calls    [][2]int
	prepared int
	finished int
	filled   []Source
}

func newScripted(values ...int) *scripted { return &scripted{values: values} }

func (s *scripted) Name() string             { return "scripted" }
func (s *scripted) DefaultBase() config.Path { return "test.scripted" }
func (s *scripted) NumSources() int          { return 0 }

func (s *scripted) Setup(params *config.Parameters, base config.Path) error {
	return s.SetupNode(params, base, s.DefaultBase())
}

func (s *scripted) TypicalIndsProduced() int {
	if s.typical > 0 {
		return s.typical
	}
	return 1
}

func (s *scripted) FillStubs(_ *State, source Source) { s.filled = append(s.filled, source) }
func (s *scripted) PrepareToProduce(*State, int, int) { s.prepared++ }
func (s *scripted) FinishProducing(*State, int, int)  { s.finished++ }

func (s *scripted) Produce(minN, maxN, subpop int, out *[]Individual, state *State, thread int, misc Misc) int {
	s.calls = append(s.calls, [2]int{minN, maxN})
	n := minN
	if s.count != nil {
		n = s.count(minN, maxN)
	}
	for i := 0; i < n; i++ {
		v := s.next + 1
		if len(s.values) > 0 {
			v = s.values[s.next%len(s.values)]
		}
		s.next++
		*out = append(*out, &intInd{v: v})
		misc.Lineage().Set(len(*out)-1, []int{v})
	}
	return n
}

// fixedPicker selects population members by walking a list of indices.
type fixedPicker struct {
	SelectionMethod
	order []int
	next  int
}

func (p *fixedPicker) Name() string             { return "fixed" }
func (p *fixedPicker) DefaultBase() config.Path { return "test.fixed" }

func (p *fixedPicker) Setup(params *config.Parameters, base config.Path) error {
	return p.SetupNode(params, base, p.DefaultBase())
}

func (p *fixedPicker) Pick(int, *State, int) int {
	idx := p.order[p.next%len(p.order)]
	p.next++
	return idx
}

func (p *fixedPicker) Produce(minN, maxN, subpop int, out *[]Individual, state *State, thread int, misc Misc) int {
	return Select(p, minN, maxN, subpop, out, state, thread, misc)
}

func newTestState(generation int, values ...int) *State {
	inds := make([]Individual, len(values))
	for i, v := range values {
		inds[i] = &intInd{v: v}
	}
	return &State{
		Generation: generation,
		Population: &Population{Subpops: []*Subpopulation{{Individuals: inds, Species: &counterSpecies{}}}},
		Random:     NewRandom(42, 1),
	}
}

func values(inds []Individual) []int {
	out := make([]int, len(inds))
	for i, ind := range inds {
		out[i] = ind.(*intInd).v
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// setup installs children, runs Setup with params and assembles the tree.
func setup(t *testing.T, src Source, params map[string]any, children ...Source) {
	t.Helper()
	if c, ok := src.(Composite); ok {
		c.SetSources(children)
	}
	p := config.NewParameters()
	p.SetAll(params)
	if err := src.Setup(p, src.DefaultBase()); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if err := Assemble(nil, src); err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
}
