package pipeline

import "github.com/kbukum/breedkit/config"

// FirstCopy takes the first individual of each generation from child 0 and
// everything after it from child 1. It is typically used to carry an elite
// individual through unchanged.
type FirstCopy struct {
	Pipeline
	first bool
}

// NewFirstCopy returns an unconfigured FirstCopy.
func NewFirstCopy() *FirstCopy { return &FirstCopy{} }

func (f *FirstCopy) Name() string             { return "first-copy" }
func (f *FirstCopy) DefaultBase() config.Path { return "breed.first-copy" }
func (f *FirstCopy) NumSources() int          { return 2 }

func (f *FirstCopy) Setup(params *config.Parameters, base config.Path) error {
	return f.SetupPipeline(params, base, f.DefaultBase(), f.NumSources())
}

func (f *FirstCopy) PrepareToProduce(state *State, subpop, thread int) {
	f.first = true
	f.Pipeline.PrepareToProduce(state, subpop, thread)
}

func (f *FirstCopy) Produce(minN, maxN, subpop int, out *[]Individual, state *State, thread int, misc Misc) int {
	total := 0
	if f.first && maxN > 0 {
		f.first = false
		total = f.sources[0].Produce(1, 1, subpop, out, state, thread, misc)
	}
	if total < minN {
		total += f.sources[1].Produce(minN-total, maxN-total, subpop, out, state, thread, misc)
	}
	return total
}
