// Package observability wires OpenTelemetry metrics and tracing into a run.
//
// Setup installs OTLP/HTTP meter and tracer providers when telemetry is
// enabled; otherwise the global no-op providers stay in place and every
// instrument created here is free to call.
//
//	shutdown, err := observability.Setup(ctx, cfg.Telemetry)
//	defer shutdown(ctx)
//
//	m, _ := observability.NewPipelineMetrics(observability.Meter("contentgen"))
//	m.RecordEmitted(ctx, "hot-topics", 10)
package observability
