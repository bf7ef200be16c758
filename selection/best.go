package selection

import (
	"cmp"
	"slices"

	"github.com/kbukum/breedkit/config"
	"github.com/kbukum/breedkit/pipeline"
	"github.com/kbukum/breedkit/validation"
)

type bestParams struct {
	N int `param:"n" validate:"gte=1"`
}

// Best picks uniformly among the n fittest members of the subpopulation.
// The ranking is taken once per generation in PrepareToProduce.
type Best struct {
	pipeline.SelectionMethod
	n   int
	top []int
}

// NewBest returns an unconfigured Best.
func NewBest() *Best { return &Best{} }

func (b *Best) Name() string             { return "best" }
func (b *Best) DefaultBase() config.Path { return "select.best" }

func (b *Best) Setup(params *config.Parameters, base config.Path) error {
	def := b.DefaultBase()
	if err := b.SetupNode(params, base, def); err != nil {
		return err
	}
	n, err := params.RequireInt(base.Push("n"), def.Push("n"))
	if err != nil {
		return err
	}
	p := bestParams{N: n}
	if err := validation.Params(base, &p); err != nil {
		return err
	}
	b.n = p.N
	return nil
}

func (b *Best) PrepareToProduce(state *pipeline.State, subpop, thread int) {
	inds := state.Subpop(subpop).Individuals
	order := make([]int, len(inds))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(x, y int) int {
		return cmp.Compare(inds[y].Fitness(), inds[x].Fitness())
	})
	b.top = order[:min(b.n, len(order))]
}

func (b *Best) Pick(subpop int, state *pipeline.State, thread int) int {
	return b.top[state.Random[thread].IntN(len(b.top))]
}

func (b *Best) Produce(minN, maxN, subpop int, out *[]pipeline.Individual, state *pipeline.State, thread int, misc pipeline.Misc) int {
	return pipeline.Select(b, minN, maxN, subpop, out, state, thread, misc)
}
