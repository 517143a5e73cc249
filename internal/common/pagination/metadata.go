package pagination

// Metadata is the paging block returned alongside a page of questions.
type Metadata struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"` // 1-based
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}
