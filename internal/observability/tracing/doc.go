// Package tracing provides OpenTelemetry tracing for the HTTP surface.
//
// The Middleware wraps the API server's handler chain: it extracts W3C trace
// context from incoming headers, opens a server span per request, and echoes
// the trace ID back in X-Trace-Id so browser clients can correlate a failed
// request with its span.
//
// Example usage:
//
//	import "ponder/internal/observability/tracing"
//
//	mux := http.NewServeMux()
//	mux.Handle("/questions", questionHandler)
//	handler := tracing.Middleware(mux)
//
//	func seedRun(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "seed-run")
//	    defer span.End()
//	    // ... run the pipeline ...
//	}
package tracing
