package pipeline

import "github.com/kbukum/breedkit/config"

// Initialization creates brand-new individuals from the subpopulation's
// species. It always produces maxN.
type Initialization struct {
	Node
}

// NewInitialization returns an unconfigured Initialization.
func NewInitialization() *Initialization { return &Initialization{} }

func (i *Initialization) Name() string             { return "init" }
func (i *Initialization) DefaultBase() config.Path { return "breed.init" }
func (i *Initialization) NumSources() int          { return 0 }

func (i *Initialization) Setup(params *config.Parameters, base config.Path) error {
	return i.SetupNode(params, base, i.DefaultBase())
}

func (i *Initialization) Produce(minN, maxN, subpop int, out *[]Individual, state *State, thread int, misc Misc) int {
	species := state.Subpop(subpop).Species
	for n := 0; n < maxN; n++ {
		*out = append(*out, species.NewIndividual(state, thread))
	}
	return maxN
}
