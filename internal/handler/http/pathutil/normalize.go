package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
// Pre-compiled at initialization for optimal performance (<1μs per operation).
var pathPatterns = []*PathPattern{
	// JSON API question routes with IDs
	{Pattern: regexp.MustCompile(`^/questions/\d+$`), Template: "/questions/:id"},

	// HTML detail pages with IDs
	{Pattern: regexp.MustCompile(`^/view/\d+$`), Template: "/view/:id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths with IDs (e.g., /questions/123) to template format (e.g., /questions/:id).
// Static paths and list endpoints remain unchanged.
//
// Performance: <1μs per operation (pre-compiled regex patterns)
//
// Examples:
//
//	NormalizePath("/questions/123")         // "/questions/:id"
//	NormalizePath("/questions/456")         // "/questions/:id"
//	NormalizePath("/view/789")              // "/view/:id"
//	NormalizePath("/questions")             // "/questions" (unchanged)
//	NormalizePath("/health")                // "/health" (unchanged)
//	NormalizePath("/metrics")               // "/metrics" (unchanged)
//	NormalizePath("/auth/token")            // "/auth/token" (unchanged)
//	NormalizePath("/unknown/path/123")      // "/unknown/path/123" (no match, return original)
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/questions/123?q=time")  // "/questions/:id"
//	NormalizePath("/questions/123/")        // "/questions/:id"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	// Try to match against known patterns
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	// No match found, return original path
	// This is safe - static paths like /health, /metrics, /auth/token
	// and list endpoints like /questions will pass through unchanged
	return path
}

// GetExpectedCardinality returns the expected number of unique path labels
// after normalization. This is useful for capacity planning and monitoring.
//
// Expected cardinality calculation:
//   - Template endpoints: 2 (/questions/:id, /view/:id)
//   - Static endpoints: ~10 (/, /questions, /seed, /health, /metrics, etc.)
//   - Total: ~12 unique path labels
func GetExpectedCardinality() int {
	// Count template patterns
	templateCount := len(pathPatterns)

	// Estimate static endpoints
	staticCount := 10 // /, /questions, /seed, /health, /metrics, /auth/token, etc.

	// Total expected cardinality
	return templateCount + staticCount
}
