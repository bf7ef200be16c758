package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kbukum/breedkit/assembly"
	"github.com/kbukum/breedkit/breeder"
	"github.com/kbukum/breedkit/config"
	"github.com/kbukum/breedkit/logger"
	"github.com/kbukum/breedkit/observability"
	"github.com/kbukum/breedkit/pipeline"
	"github.com/kbukum/breedkit/species"
	"github.com/kbukum/breedkit/version"
)

const serviceName = "breedrun"

func newRunCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evolve the configured populations and print the best individual",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, o)
		},
	}
	cmd.Flags().StringVar(&o.otlpEndpoint, "otlp-endpoint", "", "export traces and metrics to this OTLP/HTTP host:port")
	return cmd
}

func run(cmd *cobra.Command, o *options) error {
	ctx := cmd.Context()
	log, err := o.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	params, err := o.params()
	if err != nil {
		return err
	}
	cfg, err := breeder.LoadConfig(params)
	if err != nil {
		return err
	}

	metrics, shutdown, err := o.telemetry(ctx, log)
	if err != nil {
		return err
	}
	defer shutdown()

	rc := observability.NewRunContext(uuid.NewString(), metrics)
	ctx = observability.WithRunContext(ctx, rc)

	b, err := breeder.New(cfg, assembly.NewBuilder(nil, params), logger.Get("breeder"))
	if err != nil {
		return err
	}
	pop, err := initialPopulation(b, params)
	if err != nil {
		return err
	}

	var best *species.BitVector
	evaluate := func(_ context.Context, gen int, pop *pipeline.Population) error {
		for s, sp := range pop.Subpops {
			top := species.Evaluate(sp.Individuals)
			if top == nil {
				continue
			}
			if best == nil || top.Fitness() > best.Fitness() {
				best = top.Duplicate().(*species.BitVector)
			}
			log.Info("generation evaluated", logger.Fields(
				logger.FieldRunID, rc.RunID,
				logger.FieldGeneration, gen,
				logger.FieldSubpop, s,
				"best", top.Fitness(),
			))
		}
		return nil
	}
	if _, err := b.Evolve(ctx, pop, evaluate); err != nil {
		return err
	}

	log.Info("run complete", logger.Fields(
		logger.FieldRunID, rc.RunID,
		logger.FieldDuration, rc.Duration().Milliseconds(),
	))
	if best == nil {
		return fmt.Errorf("run %s produced no individuals", rc.RunID)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "best fitness %g %s\n", best.Fitness(), best)
	return nil
}

// initialPopulation fills every subpopulation with random bit vectors of
// the subpopulation's genome size.
func initialPopulation(b *breeder.Breeder, params *config.Parameters) (*pipeline.Population, error) {
	pop := &pipeline.Population{}
	state := b.State(0, pop)
	for _, sp := range b.Config().Subpops {
		spec, err := species.NewBitVectorSpecies(params, sp.Species)
		if err != nil {
			return nil, err
		}
		sub := &pipeline.Subpopulation{Species: spec}
		for i := 0; i < sp.Size; i++ {
			sub.Individuals = append(sub.Individuals, spec.NewIndividual(state, 0))
		}
		pop.Subpops = append(pop.Subpops, sub)
	}
	return pop, nil
}

// telemetry returns the breeding instruments. Without an endpoint they are
// bound to the global no-op provider.
func (o *options) telemetry(ctx context.Context, log *logger.Logger) (*observability.Metrics, func(), error) {
	noop := func() {}
	if o.otlpEndpoint == "" {
		m, err := observability.NewMetrics(observability.Meter(observability.MeterName))
		return m, noop, err
	}

	tc := observability.DefaultTracerConfig(serviceName)
	tc.Endpoint = o.otlpEndpoint
	tc.ServiceVersion = version.Get().Short()
	tp, err := observability.InitTracer(ctx, &tc)
	if err != nil {
		return nil, noop, err
	}
	mc := observability.DefaultMeterConfig(serviceName)
	mc.Endpoint = o.otlpEndpoint
	mc.ServiceVersion = tc.ServiceVersion
	mp, err := observability.InitMeter(ctx, &mc)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, noop, err
	}
	m, err := observability.NewMetrics(mp.Meter(observability.MeterName))
	if err != nil {
		return nil, noop, err
	}

	shutdown := func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mp.Shutdown(sctx); err != nil {
			log.Warn("meter shutdown", logger.ErrorFields("shutdown", err))
		}
		if err := tp.Shutdown(sctx); err != nil {
			log.Warn("tracer shutdown", logger.ErrorFields("shutdown", err))
		}
	}
	return m, shutdown, nil
}
