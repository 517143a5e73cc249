package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("ponder")

// GetTracer returns the application tracer. Handlers and the seeding
// pipeline start their spans from it:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "seed.run")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
