// Package question provides HTTP handlers for question-related endpoints.
// It includes handlers for listing stored questions with title filtering and
// pagination, and for retrieving a single question by ID.
package question

// DTO represents the JSON structure for question data transfer.
type DTO struct {
	ID      int64  `json:"id" example:"1"`
	Title   string `json:"title" example:"What is justice?"`
	Content string `json:"content" example:"Justice has been debated since antiquity..."`
}
