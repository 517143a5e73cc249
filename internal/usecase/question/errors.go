// Package question provides use cases for reading stored question records.
// It implements listing with title filtering and pagination, and detail
// retrieval, delegating persistence to the question repository.
package question

import "errors"

// Sentinel errors for question use case operations.
var (
	// ErrQuestionNotFound indicates that the requested question was not found.
	// Returned when retrieving an ID that has no record in the repository.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrInvalidQuestionID indicates that the provided question ID is invalid.
	// Question IDs must be positive integers.
	ErrInvalidQuestionID = errors.New("invalid question ID")
)
