// Package entity defines the core domain entities and validation logic for the
// application. It contains the fundamental business object Question along with
// its validation rules and domain-specific errors.
package entity

// Question represents a stored question/answer pair.
// Title is the natural key and is unique across all records; Content holds the
// generated answer as Markdown text. A Question is never mutated or deleted
// once created, and ID ordering reflects creation order.
type Question struct {
	ID      int64
	Title   string
	Content string
}
