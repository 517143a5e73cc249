package generator

import (
	"context"
	"fmt"
)

// NoOp is a generator that returns a canned Markdown answer without calling
// any AI API. This is useful for testing and development when no API key is
// available.
type NoOp struct{}

// NewNoOp creates a new NoOp generator.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Generate returns a placeholder Markdown answer that embeds the question
// title. It never fails.
func (n *NoOp) Generate(_ context.Context, title string) (string, error) {
	return fmt.Sprintf("## %s\n\nThis question awaits a considered answer. "+
		"Philosophy begins in wonder, and *%s* is a question worth sitting with.\n", title, title), nil
}
