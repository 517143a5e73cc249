package middleware

import (
	"strings"
)

// WhitelistValidator answers CORS origin checks by exact match against a
// configured list. Origins are normalized (lowercased, trailing slash
// stripped) at construction and again per check, so "HTTPS://Ponder.Example.Org/"
// matches "https://ponder.example.org".
type WhitelistValidator struct {
	allowedOrigins []string
}

// NewWhitelistValidator builds a validator from the configured origin list.
// Blank entries are dropped; duplicates are kept as-is.
func NewWhitelistValidator(origins []string) *WhitelistValidator {
	normalized := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		origin = strings.ToLower(origin)
		origin = strings.TrimSuffix(origin, "/")
		normalized = append(normalized, origin)
	}

	return &WhitelistValidator{
		allowedOrigins: normalized,
	}
}

// IsAllowed reports whether the Origin header value is whitelisted.
// Empty origins are never allowed.
func (v *WhitelistValidator) IsAllowed(origin string) bool {
	if origin == "" {
		return false
	}

	origin = strings.ToLower(strings.TrimSpace(origin))
	origin = strings.TrimSuffix(origin, "/")

	for _, allowed := range v.allowedOrigins {
		if origin == allowed {
			return true
		}
	}

	return false
}

// GetAllowedOrigins returns a copy of the normalized origin list.
func (v *WhitelistValidator) GetAllowedOrigins() []string {
	copy := make([]string, len(v.allowedOrigins))
	for i, origin := range v.allowedOrigins {
		copy[i] = origin
	}
	return copy
}
