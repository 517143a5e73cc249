// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes implementations of circuit breakers and retry logic to keep
// remote source-list fetches from cascading failures into seeding runs.
//
// The package supports:
//   - Circuit breakers for outbound HTTP calls (remote source lists)
//   - Retry logic with exponential backoff and jitter
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.SourceFetchConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return fetchSourceList()
//	})
//
//	retryConfig := retry.SourceFetchConfig()
//	err := retry.WithBackoff(ctx, retryConfig, func() error {
//	    return performOperation()
//	})
package resilience
