// Package seed provides the use case for seeding the question store from a
// list of question titles. It implements business logic for walking the list
// in order, generating a Markdown answer for each title not yet stored, and
// persisting the results while collecting per-title failures.
package seed

import "errors"

// Sentinel errors for seed use case operations.
var (
	// ErrSourceListNotFound indicates that the configured source list could
	// not be located. For a file-backed list this means the file is missing.
	ErrSourceListNotFound = errors.New("source list not found")

	// ErrGeneratorNotConfigured indicates that no answer generator was wired
	// into the service. This happens when no AI provider credentials are set.
	ErrGeneratorNotConfigured = errors.New("answer generator not configured")
)
