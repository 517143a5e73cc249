package pagination_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ponder/internal/common/pagination"
)

func TestParseQueryParams(t *testing.T) {
	t.Parallel()

	config := pagination.Config{DefaultPage: 1, DefaultLimit: 20, MaxLimit: 100}

	tests := []struct {
		name      string
		query     string
		want      pagination.Params
		wantError bool
	}{
		{"both parameters", "page=2&limit=30", pagination.Params{Page: 2, Limit: 30}, false},
		{"no parameters use defaults", "", pagination.Params{Page: 1, Limit: 20}, false},
		{"page only", "page=3", pagination.Params{Page: 3, Limit: 20}, false},
		{"limit only", "limit=50", pagination.Params{Page: 1, Limit: 50}, false},
		{"minimum valid", "page=1&limit=1", pagination.Params{Page: 1, Limit: 1}, false},
		{"limit at the cap", "page=1&limit=100", pagination.Params{Page: 1, Limit: 100}, false},
		{"deep page", "page=999", pagination.Params{Page: 999, Limit: 20}, false},
		{"negative page", "page=-1", pagination.Params{}, true},
		{"zero page", "page=0", pagination.Params{}, true},
		{"non-numeric page", "page=abc", pagination.Params{}, true},
		{"negative limit", "limit=-10", pagination.Params{}, true},
		{"zero limit", "limit=0", pagination.Params{}, true},
		{"limit over the cap", "limit=101", pagination.Params{}, true},
		{"non-numeric limit", "limit=xyz", pagination.Params{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/questions?"+tt.query, nil)
			got, err := pagination.ParseQueryParams(req, config)

			if tt.wantError {
				if err == nil {
					t.Error("ParseQueryParams() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseQueryParams() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseQueryParams() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseQueryParams_ErrorMessages(t *testing.T) {
	t.Parallel()

	config := pagination.Config{DefaultPage: 1, DefaultLimit: 20, MaxLimit: 100}

	tests := []struct {
		name     string
		query    string
		contains string
	}{
		{"page error names the parameter", "page=invalid", "page must be a positive integer"},
		{"limit error includes the cap", "limit=200", "limit must be between 1 and 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/questions?"+tt.query, nil)
			_, err := pagination.ParseQueryParams(req, config)

			if err == nil {
				t.Fatalf("ParseQueryParams() error = nil, want error containing %q", tt.contains)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.contains)
			}
		})
	}
}
