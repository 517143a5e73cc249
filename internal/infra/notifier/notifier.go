// Package notifier provides abstraction for sending notifications about
// seeding runs. It defines the Notifier interface which allows different
// notification mechanisms (Discord, Slack, etc.) to be used interchangeably
// through dependency injection.
//
// The package includes implementations for Discord and Slack webhooks and a
// no-op notifier for when notifications are disabled.
package notifier

import (
	"context"

	"ponder/internal/domain/entity"
)

// Notifier is an interface for sending seeding run notifications.
// Implementations should handle rate limiting, retries, and error logging internally.
type Notifier interface {
	// NotifyRun sends a notification about a finished seeding run.
	// The notification should include the run outcome (status, processed count)
	// and the failed titles, if any.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout control
	//   - run: The finished run to report (must not be nil)
	//
	// Returns:
	//   - error: Non-nil if the notification failed after all retry attempts
	//
	// Implementations should:
	//   - Generate a unique request ID for tracing
	//   - Apply rate limiting to prevent API abuse
	//   - Retry transient failures with exponential backoff
	//   - Log all attempts with the request ID for debugging
	//   - Respect context cancellation
	NotifyRun(ctx context.Context, run *entity.SeedRun) error
}
