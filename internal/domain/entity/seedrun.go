package entity

import "time"

// SeedRunStatus classifies the overall outcome of a seeding run.
type SeedRunStatus string

// Seeding run outcomes. Cancellation takes precedence: a run stopped early
// stays cancelled even when titles failed before the stop.
const (
	SeedRunCompleted SeedRunStatus = "completed"
	SeedRunPartial   SeedRunStatus = "partial"
	SeedRunCancelled SeedRunStatus = "cancelled"
)

// SeedRun describes the outcome of one seeding run over the source list.
// ProcessedCount counts titles stored this run plus titles already present.
// FailedTitles preserves encounter order and repeats a title that appears
// more than once in the list.
type SeedRun struct {
	ProcessedCount int
	FailedTitles   []string
	Status         SeedRunStatus
	Duration       time.Duration
}
