// Package text holds small text-measurement helpers shared by the
// answer generation providers.
package text

// CountRunes returns the number of Unicode code points in s. Question
// titles and generated answers are measured in runes, not bytes, so
// length limits hold for Japanese text and emoji as well as ASCII.
func CountRunes(s string) int {
	return len([]rune(s))
}
