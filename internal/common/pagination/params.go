package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params carries the page and limit a client asked for.
type Params struct {
	Page  int // 1-based
	Limit int
}

// ParseQueryParams reads page and limit from the request query string.
// Missing parameters take the configured defaults; a non-numeric page,
// a page below 1, or a limit outside [1, MaxLimit] is an error.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{
		Page:  config.DefaultPage,
		Limit: config.DefaultLimit,
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > config.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", config.MaxLimit)
		}
		params.Limit = limit
	}

	return params, nil
}
