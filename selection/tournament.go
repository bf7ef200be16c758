package selection

import (
	"github.com/kbukum/breedkit/config"
	"github.com/kbukum/breedkit/pipeline"
	"github.com/kbukum/breedkit/validation"
)

type tournamentParams struct {
	Size int `param:"size" validate:"gte=1"`
}

// Tournament draws size individuals uniformly with replacement and returns
// the fittest, or the least fit with pick-worst.
type Tournament struct {
	pipeline.SelectionMethod
	size      int
	pickWorst bool
}

// NewTournament returns an unconfigured Tournament.
func NewTournament() *Tournament { return &Tournament{} }

func (t *Tournament) Name() string             { return "tournament" }
func (t *Tournament) DefaultBase() config.Path { return "select.tournament" }

func (t *Tournament) Setup(params *config.Parameters, base config.Path) error {
	def := t.DefaultBase()
	if err := t.SetupNode(params, base, def); err != nil {
		return err
	}
	size, err := params.RequireInt(base.Push("size"), def.Push("size"))
	if err != nil {
		return err
	}
	p := tournamentParams{Size: size}
	if err := validation.Params(base, &p); err != nil {
		return err
	}
	t.size = p.Size
	if t.pickWorst, err = params.Bool(base.Push("pick-worst"), def.Push("pick-worst"), false); err != nil {
		return err
	}
	return nil
}

func (t *Tournament) Pick(subpop int, state *pipeline.State, thread int) int {
	inds := state.Subpop(subpop).Individuals
	r := state.Random[thread]
	best := r.IntN(len(inds))
	for i := 1; i < t.size; i++ {
		j := r.IntN(len(inds))
		if t.beats(inds[j].Fitness(), inds[best].Fitness()) {
			best = j
		}
	}
	return best
}

func (t *Tournament) beats(a, b float64) bool {
	if t.pickWorst {
		return a < b
	}
	return a > b
}

func (t *Tournament) Produce(minN, maxN, subpop int, out *[]pipeline.Individual, state *pipeline.State, thread int, misc pipeline.Misc) int {
	return pipeline.Select(t, minN, maxN, subpop, out, state, thread, misc)
}
