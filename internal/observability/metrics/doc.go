// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Business metrics (questions, seeding runs)
//   - Database query metrics
//   - Application performance metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "ponder/internal/observability/metrics"
//
//	func seedTitles(titles []string) {
//	    start := time.Now()
//	    // ... seed titles ...
//
//	    metrics.RecordSeedRun("completed", time.Since(start))
//	    metrics.RecordOperationDuration("seed_titles", time.Since(start))
//	}
package metrics
