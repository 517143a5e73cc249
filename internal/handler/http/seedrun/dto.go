// Package seedrun provides the HTTP handler for triggering a seeding run.
// A run walks the configured title list, generates an answer for each title
// not yet stored, and reports the outcome in the response.
package seedrun

// DTO represents the JSON structure for a seeding run report.
type DTO struct {
	Status         string   `json:"status" example:"completed"`
	ProcessedCount int      `json:"processed_count" example:"42"`
	FailedTitles   []string `json:"failed_titles" example:"What is justice?"`
	DurationMS     int64    `json:"duration_ms" example:"153000"`
}
