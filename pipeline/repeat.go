package pipeline

import "github.com/kbukum/breedkit/config"

// Repeat captures one individual from its child on first use in a
// generation and afterwards answers every request with minN copies of it.
type Repeat struct {
	Pipeline
	individual Individual
	parents    []int
}

// NewRepeat returns an unconfigured Repeat.
func NewRepeat() *Repeat { return &Repeat{} }

func (r *Repeat) Name() string             { return "repeat" }
func (r *Repeat) DefaultBase() config.Path { return "breed.repeat" }
func (r *Repeat) NumSources() int          { return 1 }

func (r *Repeat) Setup(params *config.Parameters, base config.Path) error {
	return r.SetupPipeline(params, base, r.DefaultBase(), r.NumSources())
}

func (r *Repeat) PrepareToProduce(state *State, subpop, thread int) {
	r.individual = nil
	r.parents = nil
	r.Pipeline.PrepareToProduce(state, subpop, thread)
}

func (r *Repeat) Produce(minN, maxN, subpop int, out *[]Individual, state *State, thread int, misc Misc) int {
	lin := misc.Lineage()
	if r.individual == nil {
		var captured []Individual
		sm := misc.scratch()
		if r.sources[0].Produce(1, 1, subpop, &captured, state, thread, sm) == 0 {
			return 0
		}
		r.individual = captured[0].Duplicate()
		r.parents = sm.Lineage().Get(0)
	}
	for i := 0; i < minN; i++ {
		*out = append(*out, r.individual.Duplicate())
		lin.Set(len(*out)-1, r.parents)
	}
	return minN
}
