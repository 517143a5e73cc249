package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig is the CORS policy for the question API.
type CORSConfig struct {
	// AllowedOrigins is kept for call sites that build a config by
	// hand; validation itself goes through Validator.
	AllowedOrigins []string

	// AllowedMethods, from CORS_ALLOWED_METHODS.
	// Default: GET, POST, PUT, DELETE, PATCH, OPTIONS.
	AllowedMethods []string

	// AllowedHeaders, from CORS_ALLOWED_HEADERS.
	// Default: Content-Type, Authorization, X-Request-ID.
	AllowedHeaders []string

	// AllowCredentials must be true for JWT Bearer authentication.
	AllowCredentials bool

	// MaxAge is the preflight cache lifetime in seconds, from
	// CORS_MAX_AGE. Default 86400.
	MaxAge int

	// Validator decides which origins are allowed.
	Validator OriginValidator

	// Logger receives policy violations and preflight detail.
	Logger CORSLogger
}

// CORS validates the Origin header against the configured validator.
// Same-origin requests (no Origin header) pass straight through. A
// disallowed origin is logged and forwarded without CORS headers, so
// the browser blocks the response. An allowed preflight OPTIONS
// request is answered with 204 and never reaches the next handler.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.Validator.IsAllowed(origin) {
				if config.Logger != nil {
					config.Logger.Warn("CORS: origin not allowed", map[string]interface{}{
						"origin":      origin,
						"path":        r.URL.Path,
						"method":      r.Method,
						"remote_addr": r.RemoteAddr,
					})
				}
				next.ServeHTTP(w, r)
				return
			}

			// Echo the request origin; a wildcard would break credentials.
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))

				if config.Logger != nil {
					config.Logger.Debug("CORS: preflight request", map[string]interface{}{
						"origin":            origin,
						"requested_method":  r.Header.Get("Access-Control-Request-Method"),
						"requested_headers": r.Header.Get("Access-Control-Request-Headers"),
					})
				}

				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
