// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for the logging patterns used across the API server, the cron worker, and the
// one-shot seeder.
//
// Key features:
//   - JSON output for deployed binaries, text output for local runs
//   - Request ID propagation
//   - Context-aware logging
//   - Log level controlled by LOG_LEVEL
//
// Example usage:
//
//	import "ponder/internal/observability/logging"
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("api server started", slog.String("addr", ":8080"))
//	}
//
//	func handleRequest(ctx context.Context) {
//	    logger := logging.WithRequestID(ctx, slog.Default())
//	    logger.Info("listing questions")
//	}
package logging
