package breeder

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kbukum/breedkit/assembly"
	"github.com/kbukum/breedkit/errors"
	"github.com/kbukum/breedkit/logger"
	"github.com/kbukum/breedkit/observability"
	"github.com/kbukum/breedkit/pipeline"
)

// Offspring is the result of breeding one generation.
type Offspring struct {
	Population *pipeline.Population
	// Parents[s][i] lists the parents of individual i of subpopulation s.
	// Nil unless lineage tracking is enabled.
	Parents [][][]int
}

// Breeder owns one breeding tree per subpopulation per thread and the
// per-thread random streams.
type Breeder struct {
	cfg     *Config
	threads []*Thread
	random  []*rand.Rand
	log     *logger.Logger
}

// New validates cfg and builds every thread's trees. Each thread gets trees
// of its own so that no policy state is ever shared between goroutines.
// log is used as given; a nil log is silent.
func New(cfg *Config, builder *assembly.Builder, log *logger.Logger) (*Breeder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}

	b := &Breeder{
		cfg:    cfg,
		random: pipeline.NewRandom(cfg.Seed, cfg.Threads),
		log:    log,
	}
	for t := 0; t < cfg.Threads; t++ {
		th := &Thread{Index: t, log: log}
		for _, sp := range cfg.Subpops {
			root, err := builder.Build(sp.Pipe())
			if err != nil {
				return nil, err
			}
			if err := pipeline.Assemble(nil, root); err != nil {
				return nil, err
			}
			th.Trees = append(th.Trees, root)
			th.Chunks = append(th.Chunks, Partition(sp.Size, cfg.Threads)[t])
		}
		b.threads = append(b.threads, th)
	}

	log.Debug("breeder ready", logger.Fields(
		"threads", cfg.Threads,
		"subpops", len(cfg.Subpops),
	))
	return b, nil
}

// Config returns the breeder's configuration.
func (b *Breeder) Config() *Config { return b.cfg }

// Tree returns the tree thread uses for subpop.
func (b *Breeder) Tree(subpop, thread int) pipeline.Source {
	return b.threads[thread].Trees[subpop]
}

// State returns the breeding view of pop at generation. The random streams
// persist across generations.
func (b *Breeder) State(generation int, pop *pipeline.Population) *pipeline.State {
	return &pipeline.State{
		Generation: generation,
		Population: pop,
		Random:     b.random,
		Log:        b.log,
	}
}

// Breed produces the next generation from state. The population in state
// is only read; the caller decides when to replace it.
func (b *Breeder) Breed(ctx context.Context, state *pipeline.State) (*Offspring, error) {
	if len(state.Population.Subpops) != len(b.cfg.Subpops) {
		return nil, errors.New(errors.ErrCodeInternal,
			fmt.Sprintf("population has %d subpopulations, breeder expects %d", len(state.Population.Subpops), len(b.cfg.Subpops)))
	}

	rc := observability.RunContextFromContext(ctx)
	if rc == nil {
		rc = observability.NewRunContext("", nil)
	}
	ctx, span := rc.StartGeneration(ctx, state.Generation, b.cfg.Threads)
	start := time.Now()

	next := &pipeline.Population{Subpops: make([]*pipeline.Subpopulation, len(b.cfg.Subpops))}
	var parents [][][]int
	if b.cfg.TrackLineage {
		parents = make([][][]int, len(b.cfg.Subpops))
	}
	for s, sp := range b.cfg.Subpops {
		next.Subpops[s] = &pipeline.Subpopulation{
			Individuals: make([]pipeline.Individual, sp.Size),
			Species:     state.Population.Subpops[s].Species,
		}
		if parents != nil {
			parents[s] = make([][]int, sp.Size)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, th := range b.threads {
		g.Go(func() error {
			return th.Run(gctx, state, next, parents, rc)
		})
	}
	err := g.Wait()

	produced := 0
	for _, sp := range b.cfg.Subpops {
		produced += sp.Size
	}
	rc.EndGeneration(ctx, span, produced, err)
	if err != nil {
		b.log.Error("breeding failed", logger.Fields(
			logger.FieldRunID, rc.RunID,
			logger.FieldGeneration, state.Generation,
			logger.FieldError, err.Error(),
		))
		return nil, err
	}

	b.log.Info("generation bred", logger.Fields(
		logger.FieldRunID, rc.RunID,
		logger.FieldGeneration, state.Generation,
		logger.FieldProduced, produced,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return &Offspring{Population: next, Parents: parents}, nil
}

// Evaluator assigns fitness to a newly bred population.
type Evaluator func(ctx context.Context, generation int, pop *pipeline.Population) error

// Evolve evaluates pop, then breeds and evaluates cfg.Generations more
// generations, returning the last population.
func (b *Breeder) Evolve(ctx context.Context, pop *pipeline.Population, evaluate Evaluator) (*pipeline.Population, error) {
	if err := evaluate(ctx, 0, pop); err != nil {
		return nil, err
	}
	for gen := 0; gen < b.cfg.Generations; gen++ {
		off, err := b.Breed(ctx, b.State(gen, pop))
		if err != nil {
			return nil, err
		}
		pop = off.Population
		if err := evaluate(ctx, gen+1, pop); err != nil {
			return nil, err
		}
	}
	return pop, nil
}
