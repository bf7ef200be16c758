// Package observability provides OpenTelemetry tracing and metrics for
// breeding runs.
//
// Tracing:
//
//	cfg := observability.DefaultTracerConfig("breedrun")
//	tp, err := observability.InitTracer(ctx, &cfg)
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mcfg := observability.DefaultMeterConfig("breedrun")
//	mp, err := observability.InitMeter(ctx, &mcfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter(observability.MeterName))
//	rc := observability.NewRunContext(runID, metrics)
//	ctx = observability.WithRunContext(ctx, rc)
//
// Without InitMeter/InitTracer the global no-op providers are used, so
// instruments can always be created.
package observability
