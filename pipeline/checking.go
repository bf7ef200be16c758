package pipeline

import (
	"github.com/kbukum/breedkit/config"
	"github.com/kbukum/breedkit/logger"
	"github.com/kbukum/breedkit/validation"
)

// CheckFunc decides whether a produced batch may be kept.
type CheckFunc func(batch []Individual, subpop int, state *State, thread int) bool

type checkingParams struct {
	NumTimes int `param:"num-times" validate:"gte=1"`
}

// Checking asks child 0 for a batch up to num-times times and keeps the
// first batch that passes Check. When every attempt fails the request goes
// to child 1 instead. Rejected batches never reach the output.
type Checking struct {
	Pipeline
	// Check defaults to accepting every batch.
	Check    CheckFunc
	numTimes int
	scratch  []Individual
}

// NewChecking returns an unconfigured Checking with the accept-all check.
func NewChecking() *Checking { return &Checking{} }

func (c *Checking) Name() string             { return "check" }
func (c *Checking) DefaultBase() config.Path { return "breed.check" }
func (c *Checking) NumSources() int          { return 2 }

func (c *Checking) Setup(params *config.Parameters, base config.Path) error {
	def := c.DefaultBase()
	if err := c.SetupPipeline(params, base, def, c.NumSources()); err != nil {
		return err
	}
	n, err := params.RequireInt(base.Push("num-times"), def.Push("num-times"))
	if err != nil {
		return err
	}
	p := checkingParams{NumTimes: n}
	if err := validation.Params(base, &p); err != nil {
		return err
	}
	c.numTimes = p.NumTimes
	return nil
}

// NumTimes is the number of attempts on child 0.
func (c *Checking) NumTimes() int { return c.numTimes }

func (c *Checking) Produce(minN, maxN, subpop int, out *[]Individual, state *State, thread int, misc Misc) int {
	for attempt := 0; attempt < c.numTimes; attempt++ {
		c.scratch = c.scratch[:0]
		sm := misc.scratch()
		n := c.sources[0].Produce(minN, maxN, subpop, &c.scratch, state, thread, sm)
		if !c.valid(c.scratch[:n], subpop, state, thread) {
			continue
		}
		start := len(*out)
		*out = append(*out, c.scratch[:n]...)
		misc.Lineage().copyFrom(sm.Lineage(), start, n)
		clear(c.scratch)
		return n
	}
	clear(c.scratch)

	state.Log.Debug("checks exhausted, using fallback source", logger.Fields(
		logger.FieldSource, string(c.Base()),
		logger.FieldSubpop, subpop,
		logger.FieldThread, thread,
		"attempts", c.numTimes,
	))
	return c.sources[1].Produce(minN, maxN, subpop, out, state, thread, misc)
}

func (c *Checking) valid(batch []Individual, subpop int, state *State, thread int) bool {
	if c.Check == nil {
		return true
	}
	return c.Check(batch, subpop, state, thread)
}
