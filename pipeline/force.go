package pipeline

import (
	"github.com/kbukum/breedkit/config"
	"github.com/kbukum/breedkit/validation"
)

type forceParams struct {
	NumInds int `param:"num-inds" validate:"gte=1"`
}

// Force drives its child in chunks of exactly num-inds. A request is rounded
// to clamp(num-inds, minN, maxN) and filled by repeated child calls. Output
// taken from a selection method is duplicated.
type Force struct {
	Pipeline
	numInds int
}

// NewForce returns an unconfigured Force.
func NewForce() *Force { return &Force{} }

func (f *Force) Name() string             { return "force" }
func (f *Force) DefaultBase() config.Path { return "breed.force" }
func (f *Force) NumSources() int          { return 1 }
func (f *Force) TypicalIndsProduced() int { return f.numInds }

func (f *Force) Setup(params *config.Parameters, base config.Path) error {
	def := f.DefaultBase()
	if err := f.SetupPipeline(params, base, def, f.NumSources()); err != nil {
		return err
	}
	n, err := params.RequireInt(base.Push("num-inds"), def.Push("num-inds"))
	if err != nil {
		return err
	}
	p := forceParams{NumInds: n}
	if err := validation.Params(base, &p); err != nil {
		return err
	}
	f.numInds = p.NumInds
	return nil
}

func (f *Force) Produce(minN, maxN, subpop int, out *[]Individual, state *State, thread int, misc Misc) int {
	n := clamp(f.numInds, minN, maxN)
	start := len(*out)
	total := 0
	for total < n {
		want := min(f.numInds, n-total)
		got := f.sources[0].Produce(want, want, subpop, out, state, thread, misc)
		if got == 0 {
			break
		}
		total += got
	}
	duplicateSelected(f.sources[0], *out, start)
	return total
}
