package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RunContext holds observability context for one evolutionary run.
type RunContext struct {
	RunID     string
	StartTime time.Time
	Metrics   *Metrics
}

// NewRunContext creates a new run context.
// If metrics is nil, metric recording is silently skipped.
func NewRunContext(runID string, metrics *Metrics) *RunContext {
	return &RunContext{
		RunID:     runID,
		StartTime: time.Now(),
		Metrics:   metrics,
	}
}

// runContextKey is the context key for RunContext.
type runContextKey struct{}

// WithRunContext stores a RunContext in the context.
func WithRunContext(ctx context.Context, rc *RunContext) context.Context {
	return context.WithValue(ctx, runContextKey{}, rc)
}

// RunContextFromContext retrieves the RunContext from context, or nil.
func RunContextFromContext(ctx context.Context) *RunContext {
	if rc, ok := ctx.Value(runContextKey{}).(*RunContext); ok {
		return rc
	}
	return nil
}

// StartGeneration starts the span covering the breeding of one generation.
func (rc *RunContext) StartGeneration(ctx context.Context, generation, threads int) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, SpanGeneration)
	span.SetAttributes(
		attribute.String(AttrRunID, rc.RunID),
		attribute.Int(AttrGeneration, generation),
		attribute.Int(AttrThreads, threads),
	)
	return ctx, span
}

// EndGeneration ends the span and records the generation metric.
func (rc *RunContext) EndGeneration(ctx context.Context, span trace.Span, produced int, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String(AttrError, err.Error()))
	}
	span.SetAttributes(attribute.Int(AttrProduced, produced))
	span.End()

	if err == nil {
		rc.Metrics.RecordGeneration(ctx)
	}
}

// StartSubpop starts the span covering one thread's chunk of subpop.
func (rc *RunContext) StartSubpop(ctx context.Context, subpop, thread int) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, SpanSubpop)
	span.SetAttributes(
		attribute.Int(AttrSubpop, subpop),
		attribute.Int(AttrThread, thread),
	)
	return ctx, span
}

// EndSubpop ends a chunk span.
func (rc *RunContext) EndSubpop(span trace.Span, produced, calls int, err error) {
	span.SetAttributes(
		attribute.Int(AttrProduced, produced),
		attribute.Int(AttrCalls, calls),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Duration returns the elapsed time since the run started.
func (rc *RunContext) Duration() time.Duration {
	return time.Since(rc.StartTime)
}
