package pagination

// CalculateOffset converts a 1-based page number into the OFFSET value
// for the question list query. Page 1 reads from offset 0.
func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// CalculateTotalPages returns how many pages the question list spans,
// rounding up so a trailing partial page is counted. An empty list still
// reports one page.
func CalculateTotalPages(total int64, limit int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
