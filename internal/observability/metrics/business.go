package metrics

import (
	"time"
)

// RecordSeedItem records the outcome of a single seeded title.
// Outcome should be "inserted", "skipped", or "failed".
func RecordSeedItem(outcome string) {
	SeedItemsTotal.WithLabelValues(outcome).Inc()
}

// RecordSeedItemError records a per-title failure during seeding.
// Reason should name the failed step (e.g., "generation_failed", "duplicate_race").
func RecordSeedItemError(reason string) {
	SeedItemErrors.WithLabelValues(reason).Inc()
}

// RecordSeedRun records metrics for a completed seeding run.
// Status should be "completed", "partial", or "cancelled".
func RecordSeedRun(status string, duration time.Duration) {
	SeedRunsTotal.WithLabelValues(status).Inc()
	SeedRunDuration.Observe(duration.Seconds())
}

// UpdateQuestionsTotal updates the total count of questions in the database.
// This gauge should be updated periodically to reflect the current state.
func UpdateQuestionsTotal(count int) {
	QuestionsTotal.Set(float64(count))
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "list_questions", "insert_question").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
