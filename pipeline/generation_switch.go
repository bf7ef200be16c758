package pipeline

import (
	"github.com/kbukum/breedkit/config"
	"github.com/kbukum/breedkit/validation"
)

type generationSwitchParams struct {
	SwitchAt int `param:"switch-at" validate:"gte=0"`
}

// GenerationSwitch delegates to child 0 while the generation being read is
// below switch-at and to child 1 from then on. With generate-max set the
// request is rounded to the larger children's typical production. Output
// taken from a selection method is duplicated.
type GenerationSwitch struct {
	Pipeline
	switchAt       int
	generateMax    bool
	maxGeneratable int
}

// NewGenerationSwitch returns an unconfigured GenerationSwitch.
func NewGenerationSwitch() *GenerationSwitch { return &GenerationSwitch{} }

func (g *GenerationSwitch) Name() string             { return "generation-switch" }
func (g *GenerationSwitch) DefaultBase() config.Path { return "breed.generation-switch" }
func (g *GenerationSwitch) NumSources() int          { return 2 }

func (g *GenerationSwitch) Setup(params *config.Parameters, base config.Path) error {
	def := g.DefaultBase()
	if err := g.SetupPipeline(params, base, def, g.NumSources()); err != nil {
		return err
	}
	at, err := params.RequireInt(base.Push("switch-at"), def.Push("switch-at"))
	if err != nil {
		return err
	}
	p := generationSwitchParams{SwitchAt: at}
	if err := validation.Params(base, &p); err != nil {
		return err
	}
	g.switchAt = p.SwitchAt

	if g.generateMax, err = params.Bool(base.Push("generate-max"), def.Push("generate-max"), true); err != nil {
		return err
	}
	return g.Wire()
}

// Wire caches the larger typical production of the children.
func (g *GenerationSwitch) Wire() error {
	g.maxGeneratable = g.maxTypical()
	return nil
}

// SwitchAt is the first generation served by child 1.
func (g *GenerationSwitch) SwitchAt() int { return g.switchAt }

func (g *GenerationSwitch) TypicalIndsProduced() int {
	if g.generateMax {
		return g.maxGeneratable
	}
	return g.Pipeline.TypicalIndsProduced()
}

func (g *GenerationSwitch) Produce(minN, maxN, subpop int, out *[]Individual, state *State, thread int, misc Misc) int {
	child := g.sources[1]
	if state.Generation < g.switchAt {
		child = g.sources[0]
	}
	start := len(*out)
	var n int
	if g.generateMax {
		k := max(minN, min(maxN, g.maxGeneratable))
		n = child.Produce(k, k, subpop, out, state, thread, misc)
	} else {
		n = child.Produce(minN, maxN, subpop, out, state, thread, misc)
	}
	duplicateSelected(child, *out, start)
	return n
}
