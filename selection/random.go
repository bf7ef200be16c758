package selection

import (
	"github.com/kbukum/breedkit/config"
	"github.com/kbukum/breedkit/pipeline"
)

// Random picks uniformly from the subpopulation.
type Random struct {
	pipeline.SelectionMethod
}

// NewRandom returns an unconfigured Random.
func NewRandom() *Random { return &Random{} }

func (r *Random) Name() string             { return "random" }
func (r *Random) DefaultBase() config.Path { return "select.random" }

func (r *Random) Setup(params *config.Parameters, base config.Path) error {
	return r.SetupNode(params, base, r.DefaultBase())
}

func (r *Random) Pick(subpop int, state *pipeline.State, thread int) int {
	return state.Random[thread].IntN(len(state.Subpop(subpop).Individuals))
}

func (r *Random) Produce(minN, maxN, subpop int, out *[]pipeline.Individual, state *pipeline.State, thread int, misc pipeline.Misc) int {
	return pipeline.Select(r, minN, maxN, subpop, out, state, thread, misc)
}
