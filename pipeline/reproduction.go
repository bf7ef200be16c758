package pipeline

import "github.com/kbukum/breedkit/config"

// Reproduction passes its parent's request to its only child unchanged.
type Reproduction struct {
	Pipeline
}

// NewReproduction returns an unconfigured Reproduction.
func NewReproduction() *Reproduction { return &Reproduction{} }

func (r *Reproduction) Name() string             { return "reproduce" }
func (r *Reproduction) DefaultBase() config.Path { return "breed.reproduce" }
func (r *Reproduction) NumSources() int          { return 1 }

func (r *Reproduction) Setup(params *config.Parameters, base config.Path) error {
	return r.SetupPipeline(params, base, r.DefaultBase(), r.NumSources())
}

func (r *Reproduction) Produce(minN, maxN, subpop int, out *[]Individual, state *State, thread int, misc Misc) int {
	return r.sources[0].Produce(minN, maxN, subpop, out, state, thread, misc)
}
