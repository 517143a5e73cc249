// Package generator provides clients for the external text-generation service
// that produces question answers. It includes adapters for the OpenAI and
// Claude (Anthropic) APIs plus a no-op implementation for offline development,
// with structured logging and Prometheus metrics.
//
// Generators perform exactly one API attempt per call: no retry, no backoff,
// no circuit breaker. The seeding pipeline records a failed title and moves
// on; recovery is re-running the job, not repair logic here.
package generator

import (
	"errors"
	"fmt"
)

// ErrGeneration is the single failure mode surfaced by generators. Transport
// errors, non-success responses, and unusable output all wrap this sentinel;
// callers do not distinguish transient from permanent causes.
var ErrGeneration = errors.New("generation failed")

// systemPrompt is the persona instruction sent with every call. Only the
// question title varies between calls.
const systemPrompt = "You are a deep philosopher. Answer the question clearly, " +
	"completely but not excessively, and format the answer in standard Markdown."

// buildUserPrompt embeds the question title in the fixed user instruction.
func buildUserPrompt(title string) string {
	return fmt.Sprintf("Please give a philosophical answer to the following question: %s", title)
}
