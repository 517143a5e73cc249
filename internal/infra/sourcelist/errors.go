package sourcelist

import "errors"

// Sentinel errors for source list loading. These cover the transport-level
// failure modes of the HTTP loader; a missing list (file or remote) is
// reported as seed.ErrSourceListNotFound instead.
var (
	// ErrInvalidURL indicates the source list URL is malformed, uses an
	// unsupported scheme, or its hostname cannot be resolved.
	ErrInvalidURL = errors.New("invalid source list URL")

	// ErrPrivateIP indicates the source list URL resolves to a private,
	// loopback, or link-local address.
	ErrPrivateIP = errors.New("source list URL resolves to a private IP")

	// ErrTooManyRedirects indicates the fetch exceeded the configured
	// redirect limit.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrListTooLarge indicates the response body exceeded the configured
	// size limit.
	ErrListTooLarge = errors.New("source list exceeds size limit")
)
