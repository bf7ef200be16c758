package breeder

import (
	"context"
	"time"

	"github.com/kbukum/breedkit/errors"
	"github.com/kbukum/breedkit/logger"
	"github.com/kbukum/breedkit/observability"
	"github.com/kbukum/breedkit/pipeline"
)

// Thread fills one chunk of every subpopulation with its own trees.
type Thread struct {
	Index  int
	Trees  []pipeline.Source
	Chunks []Chunk

	log     *logger.Logger
	scratch []pipeline.Individual
}

// Run breeds the thread's chunk of each subpopulation into next. Chunks of
// different threads never overlap, so writes into next need no locking.
func (t *Thread) Run(ctx context.Context, state *pipeline.State, next *pipeline.Population, parents [][][]int, rc *observability.RunContext) error {
	for s, root := range t.Trees {
		chunk := t.Chunks[s]
		if chunk.Len() == 0 {
			continue
		}
		var lineage [][]int
		if parents != nil {
			lineage = parents[s]
		}

		start := time.Now()
		sctx, span := rc.StartSubpop(ctx, s, t.Index)
		root.PrepareToProduce(state, s, t.Index)
		produced, calls, err := t.fill(sctx, root, s, chunk, state, next.Subpops[s].Individuals, lineage)
		root.FinishProducing(state, s, t.Index)
		rc.EndSubpop(span, produced, calls, err)
		rc.Metrics.RecordChunk(ctx, s, produced, calls, time.Since(start))

		if err != nil {
			if errors.HasCode(err, errors.ErrCodePipelineStalled) {
				rc.Metrics.RecordStall(ctx, s)
			}
			return err
		}
		t.log.Debug("chunk filled", logger.Fields(
			logger.FieldSubpop, s,
			logger.FieldThread, t.Index,
			logger.FieldProduced, chunk.Len(),
			"calls", calls,
		))
	}
	return nil
}

func (t *Thread) fill(ctx context.Context, root pipeline.Source, subpop int, chunk Chunk, state *pipeline.State, into []pipeline.Individual, lineage [][]int) (produced, calls int, err error) {
	for x := chunk.From; x < chunk.To; {
		if err := ctx.Err(); err != nil {
			return x - chunk.From, calls, err
		}
		remaining := chunk.To - x
		var misc pipeline.Misc
		if lineage != nil {
			misc = pipeline.NewMisc()
		}

		t.scratch = t.scratch[:0]
		n := root.Produce(1, remaining, subpop, &t.scratch, state, t.Index, misc)
		calls++
		if n == 0 {
			return x - chunk.From, calls, errors.PipelineStalled(subpop, t.Index, remaining)
		}
		n = min(n, remaining)
		copy(into[x:], t.scratch[:n])
		for i := 0; i < n && lineage != nil; i++ {
			lineage[x+i] = misc.Lineage().Get(i)
		}
		x += n
	}
	clear(t.scratch)
	return chunk.Len(), calls, nil
}
