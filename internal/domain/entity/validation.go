package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxTitleLength bounds stored titles so a malformed source list cannot push
// arbitrarily large keys into the unique index.
const maxTitleLength = 500

// ValidateTitle validates a candidate question title.
// The title must be non-empty after whitespace trimming and within the length
// bound. Returns a ValidationError identifying the offending field.
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}

	if utf8.RuneCountInString(trimmed) > maxTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must not exceed %d characters", maxTitleLength),
		}
	}

	return nil
}

// ValidateContent validates generated answer content before persistence.
// Content that is empty or whitespace-only is rejected; a record must never
// exist with a blank answer.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Field: "content", Message: "content is required"}
	}
	return nil
}
