package pipeline

import "github.com/kbukum/breedkit/config"

// Multi picks one child per call, weighted by the children's probabilities,
// and hands it the whole request. Every child must carry a probability.
type Multi struct {
	Pipeline
	generateMax    bool
	table          []float64
	maxGeneratable int
}

// NewMulti returns an unconfigured Multi.
func NewMulti() *Multi { return &Multi{} }

func (m *Multi) Name() string             { return "multi" }
func (m *Multi) DefaultBase() config.Path { return "breed.multi" }
func (m *Multi) NumSources() int          { return DynamicSources }

func (m *Multi) Setup(params *config.Parameters, base config.Path) error {
	def := m.DefaultBase()
	if err := m.SetupPipeline(params, base, def, m.NumSources()); err != nil {
		return err
	}
	var err error
	if m.generateMax, err = params.Bool(base.Push("generate-max"), def.Push("generate-max"), true); err != nil {
		return err
	}
	for _, s := range m.sources {
		if s == nil {
			// A stub slot: the table is built by Wire once it is filled.
			return nil
		}
	}
	return m.Wire()
}

// Wire builds the cumulative selection table from the children.
func (m *Multi) Wire() error {
	table, err := sourceTable(m, m.sources)
	if err != nil {
		return err
	}
	m.table = table
	m.maxGeneratable = m.maxTypical()
	return nil
}

func (m *Multi) TypicalIndsProduced() int {
	if m.generateMax {
		return m.maxGeneratable
	}
	return m.Pipeline.TypicalIndsProduced()
}

func (m *Multi) Produce(minN, maxN, subpop int, out *[]Individual, state *State, thread int, misc Misc) int {
	child := m.sources[PickIndex(m.table, state.Random[thread].Float64())]
	if m.generateMax {
		k := max(minN, min(maxN, m.maxGeneratable))
		return child.Produce(k, k, subpop, out, state, thread, misc)
	}
	return child.Produce(minN, maxN, subpop, out, state, thread, misc)
}
