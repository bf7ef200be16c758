package pipeline

import (
	"github.com/kbukum/breedkit/config"
	"github.com/kbukum/breedkit/errors"
	"github.com/kbukum/breedkit/validation"
)

const (
	// NoProbability marks a source whose weight was never configured.
	NoProbability = -1.0
	// DynamicSources is returned by NumSources when the child count is read
	// from parameters.
	DynamicSources = -1
)

// Source is one node of a breeding tree.
type Source interface {
	// Name is the type name used in parameter files.
	Name() string
	// DefaultBase is the parameter path consulted when a key is missing
	// under the instance's own base.
	DefaultBase() config.Path
	// Base is the path this instance was set up from.
	Base() config.Path
	// Setup reads the source's parameters. Children must already be set.
	Setup(params *config.Parameters, base config.Path) error

	// Probability is this source's weight when a parent picks among its
	// children, or NoProbability.
	Probability() float64
	SetProbability(p float64)

	// NumSources is the required child count, or DynamicSources.
	NumSources() int
	// TypicalIndsProduced is the batch size this source naturally yields.
	TypicalIndsProduced() int

	// FillStubs binds unfilled child slots in this subtree to source.
	FillStubs(state *State, source Source)
	PrepareToProduce(state *State, subpop, thread int)
	// Produce appends between minN and maxN individuals to out and returns
	// how many were appended.
	Produce(minN, maxN, subpop int, out *[]Individual, state *State, thread int, misc Misc) int
	FinishProducing(state *State, subpop, thread int)
}

// Composite is a Source with children. A nil child is a stub slot.
type Composite interface {
	Source
	Sources() []Source
	SetSources(sources []Source)
}

// Wirer is implemented by sources that derive state from their children
// once every stub slot has been filled.
type Wirer interface {
	Wire() error
}

// Node holds the state shared by every source. Leaves embed it directly.
type Node struct {
	prob float64
	base config.Path
}

type nodeParams struct {
	Prob float64 `param:"prob" validate:"gte=0"`
}

// SetupNode records base and reads the optional probability.
func (n *Node) SetupNode(params *config.Parameters, base, def config.Path) error {
	n.base = base
	n.prob = NoProbability
	if !params.Exists(base.Push("prob"), def.Push("prob")) {
		return nil
	}
	p, err := params.Float(base.Push("prob"), def.Push("prob"), NoProbability)
	if err != nil {
		return err
	}
	np := nodeParams{Prob: p}
	if err := validation.Params(base, &np); err != nil {
		return err
	}
	n.prob = np.Prob
	return nil
}

func (n *Node) Base() config.Path        { return n.base }
func (n *Node) Probability() float64     { return n.prob }
func (n *Node) SetProbability(p float64) { n.prob = p }
func (n *Node) TypicalIndsProduced() int { return 1 }

func (n *Node) FillStubs(*State, Source)          {}
func (n *Node) PrepareToProduce(*State, int, int) {}
func (n *Node) FinishProducing(*State, int, int)  {}

// Pipeline is the base of every composite source.
type Pipeline struct {
	Node
	sources []Source
}

func (p *Pipeline) Sources() []Source { return p.sources }

// Source returns child i.
func (p *Pipeline) Source(i int) Source { return p.sources[i] }

// SetSources installs the children. Nil entries are stub slots.
func (p *Pipeline) SetSources(sources []Source) {
	p.sources = append([]Source(nil), sources...)
}

// SetupPipeline performs the common composite setup: the probability is
// read and the child count is checked against want.
func (p *Pipeline) SetupPipeline(params *config.Parameters, base, def config.Path, want int) error {
	if err := p.SetupNode(params, base, def); err != nil {
		return err
	}
	if want == DynamicSources {
		if len(p.sources) == 0 {
			return errors.InvalidTopology(string(base), 1, 0)
		}
		return nil
	}
	if len(p.sources) != want {
		return errors.InvalidTopology(string(base), want, len(p.sources))
	}
	return nil
}

// TypicalIndsProduced is the smallest typical production among children.
func (p *Pipeline) TypicalIndsProduced() int {
	least := 0
	for _, s := range p.sources {
		if s == nil {
			continue
		}
		if n := s.TypicalIndsProduced(); least == 0 || n < least {
			least = n
		}
	}
	if least == 0 {
		return 1
	}
	return least
}

// maxTypical is the largest typical production among children.
func (p *Pipeline) maxTypical() int {
	most := 1
	for _, s := range p.sources {
		if s != nil && s.TypicalIndsProduced() > most {
			most = s.TypicalIndsProduced()
		}
	}
	return most
}

// FillStubs puts source into every nil slot and recurses into the rest.
// A child shared with its left neighbour is visited once.
func (p *Pipeline) FillStubs(state *State, source Source) {
	for i, s := range p.sources {
		switch {
		case s == nil:
			if source != nil {
				p.sources[i] = source
			}
		case p.sharedWithPrevious(i):
		default:
			s.FillStubs(state, source)
		}
	}
}

func (p *Pipeline) PrepareToProduce(state *State, subpop, thread int) {
	for i, s := range p.sources {
		if s != nil && !p.sharedWithPrevious(i) {
			s.PrepareToProduce(state, subpop, thread)
		}
	}
}

func (p *Pipeline) FinishProducing(state *State, subpop, thread int) {
	for i, s := range p.sources {
		if s != nil && !p.sharedWithPrevious(i) {
			s.FinishProducing(state, subpop, thread)
		}
	}
}

func (p *Pipeline) sharedWithPrevious(i int) bool {
	return i > 0 && p.sources[i] == p.sources[i-1]
}

// Assemble completes a freshly set-up tree: stubs are filled from the top
// with no outer source, every slot is checked, and Wirer hooks run bottom-up.
func Assemble(state *State, root Source) error {
	root.FillStubs(state, nil)
	return wire(root, make(map[Source]bool))
}

func wire(src Source, visited map[Source]bool) error {
	if visited[src] {
		return nil
	}
	visited[src] = true
	if c, ok := src.(Composite); ok {
		for i, child := range c.Sources() {
			if child == nil {
				return errors.UnfilledStub(string(src.Base()), i)
			}
			if err := wire(child, visited); err != nil {
				return err
			}
		}
	}
	if w, ok := src.(Wirer); ok {
		return w.Wire()
	}
	return nil
}

// clamp bounds n to [lo, hi].
func clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}
