package middleware

// OriginValidator decides whether a browser origin may call the API.
// The only implementation today is the exact-match WhitelistValidator;
// the interface leaves room for pattern-based validation later.
type OriginValidator interface {
	// IsAllowed reports whether origin, as sent in the Origin header,
	// is permitted. An empty origin is never allowed.
	IsAllowed(origin string) bool

	// GetAllowedOrigins returns a copy of the configured origins for
	// logging and debugging.
	GetAllowedOrigins() []string
}

// ConfigSource loads CORS settings. EnvConfigSource reads them from
// environment variables; the interface exists so configuration could
// also come from a file without touching the middleware.
type ConfigSource interface {
	// LoadOrigins returns the allowed origins. At least one origin must
	// be configured, and each must be an http:// or https:// URL
	// without a trailing slash. Fail-closed: an invalid list is an
	// error, not an empty whitelist.
	LoadOrigins() ([]string, error)

	// LoadMethods returns the allowed HTTP methods, defaulting to
	// GET, POST, PUT, DELETE, PATCH and OPTIONS when unconfigured.
	LoadMethods() ([]string, error)

	// LoadHeaders returns the allowed request headers, defaulting to
	// Content-Type, Authorization and X-Request-ID.
	LoadHeaders() ([]string, error)

	// LoadMaxAge returns the preflight cache duration in seconds,
	// defaulting to 86400. Negative values are an error; zero disables
	// preflight caching.
	LoadMaxAge() (int, error)
}

// CORSLogger abstracts the logging backend for CORS events so tests
// can swap in a no-op and production can adapt slog.
type CORSLogger interface {
	// Info records startup configuration events.
	Info(msg string, fields map[string]interface{})

	// Warn records policy violations: rejected origins, malformed
	// Origin headers.
	Warn(msg string, fields map[string]interface{})

	// Debug records per-request processing detail such as preflight
	// handling.
	Debug(msg string, fields map[string]interface{})
}
