package pipeline

import (
	"github.com/kbukum/breedkit/config"
	"github.com/kbukum/breedkit/validation"
)

type bufferedParams struct {
	NumInds int `param:"num-inds" validate:"gte=1"`
}

type buffered struct {
	ind     Individual
	parents []int
}

// Buffered asks its child for fixed-size batches and hands them out in the
// order they were produced. A request for minN individuals returns exactly
// minN unless the child stops producing.
type Buffered struct {
	Pipeline
	size    int
	buffer  []buffered
	scratch []Individual
}

// NewBuffered returns an unconfigured Buffered.
func NewBuffered() *Buffered { return &Buffered{} }

func (b *Buffered) Name() string             { return "buffered" }
func (b *Buffered) DefaultBase() config.Path { return "breed.buffered" }
func (b *Buffered) NumSources() int          { return 1 }

// TypicalIndsProduced is 1: the buffer smooths over the child's batch size.
func (b *Buffered) TypicalIndsProduced() int { return 1 }

func (b *Buffered) Setup(params *config.Parameters, base config.Path) error {
	def := b.DefaultBase()
	if err := b.SetupPipeline(params, base, def, b.NumSources()); err != nil {
		return err
	}
	n, err := params.RequireInt(base.Push("num-inds"), def.Push("num-inds"))
	if err != nil {
		return err
	}
	p := bufferedParams{NumInds: n}
	if err := validation.Params(base, &p); err != nil {
		return err
	}
	b.size = p.NumInds
	return nil
}

func (b *Buffered) PrepareToProduce(state *State, subpop, thread int) {
	b.buffer = b.buffer[:0]
	b.Pipeline.PrepareToProduce(state, subpop, thread)
}

func (b *Buffered) Produce(minN, maxN, subpop int, out *[]Individual, state *State, thread int, misc Misc) int {
	lin := misc.Lineage()
	produced := 0
	for produced < minN {
		if len(b.buffer) == 0 && !b.refill(subpop, state, thread, misc) {
			break
		}
		next := b.buffer[0]
		b.buffer[0] = buffered{}
		b.buffer = b.buffer[1:]

		*out = append(*out, next.ind)
		lin.Set(len(*out)-1, next.parents)
		produced++
	}
	return produced
}

func (b *Buffered) refill(subpop int, state *State, thread int, misc Misc) bool {
	b.scratch = b.scratch[:0]
	sm := misc.scratch()
	n := b.sources[0].Produce(b.size, b.size, subpop, &b.scratch, state, thread, sm)
	for i := 0; i < n; i++ {
		b.buffer = append(b.buffer, buffered{ind: b.scratch[i], parents: sm.Lineage().Get(i)})
	}
	clear(b.scratch)
	return n > 0
}
