package species

import (
	"github.com/kbukum/breedkit/config"
	"github.com/kbukum/breedkit/pipeline"
	"github.com/kbukum/breedkit/validation"
)

type bitFlipParams struct {
	MutationProb float64 `param:"mutation-prob" validate:"gte=0,lte=1"`
}

// BitFlip flips each gene of the individuals it receives with probability
// mutation-prob. Without the parameter each gene flips with probability
// 1/len(genes). Every individual is copied before it is changed: whatever
// sits below may hand back members of the current generation.
type BitFlip struct {
	pipeline.Pipeline
	prob float64
}

// NewBitFlip returns an unconfigured BitFlip.
func NewBitFlip() *BitFlip { return &BitFlip{} }

func (f *BitFlip) Name() string             { return "bit-flip" }
func (f *BitFlip) DefaultBase() config.Path { return "vector.bit-flip" }
func (f *BitFlip) NumSources() int          { return 1 }

func (f *BitFlip) Setup(params *config.Parameters, base config.Path) error {
	def := f.DefaultBase()
	if err := f.SetupPipeline(params, base, def, f.NumSources()); err != nil {
		return err
	}
	f.prob = -1
	if !params.Exists(base.Push("mutation-prob"), def.Push("mutation-prob")) {
		return nil
	}
	prob, err := params.Float(base.Push("mutation-prob"), def.Push("mutation-prob"), 0)
	if err != nil {
		return err
	}
	p := bitFlipParams{MutationProb: prob}
	if err := validation.Params(base, &p); err != nil {
		return err
	}
	f.prob = p.MutationProb
	return nil
}

func (f *BitFlip) Produce(minN, maxN, subpop int, out *[]pipeline.Individual, state *pipeline.State, thread int, misc pipeline.Misc) int {
	start := len(*out)
	child := f.Source(0)
	n := child.Produce(minN, maxN, subpop, out, state, thread, misc)

	r := state.Random[thread]
	for i := start; i < start+n; i++ {
		ind := (*out)[i].Duplicate()
		b, ok := ind.(*BitVector)
		if !ok {
			(*out)[i] = ind
			continue
		}
		prob := f.prob
		if prob < 0 {
			prob = 1 / float64(max(len(b.Genes), 1))
		}
		for g := range b.Genes {
			if r.Float64() < prob {
				b.Genes[g] ^= 1
			}
		}
		b.Evaluated = false
		(*out)[i] = b
	}
	return n
}
