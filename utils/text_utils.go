package utils

import (
	"math"
	"strings"
)

// NormalizeCourseCode canonicalizes a course code for index lookups:
// uppercase, surrounding whitespace removed.
func NormalizeCourseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Round4 rounds to 4 decimal places. Applied only at the output boundary;
// internal computation keeps full precision.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// DeduplicateSlice removes duplicates and blanks from a string slice,
// keeping first-seen order.
func DeduplicateSlice(input []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0)

	for _, val := range input {
		val = strings.TrimSpace(val)
		if val != "" && !seen[val] {
			result = append(result, val)
			seen[val] = true
		}
	}

	return result
}
