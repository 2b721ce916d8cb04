// Package strings provides string slice utilities shared across modules.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
// Used to normalize concern lists coming back from the AI analyzer, which
// occasionally repeats labels or pads them with whitespace.
//
// Example:
//
//	DedupeAndTrim([]string{"  fake_name ", "fake_name", "", "  "})
//	// Returns: []string{"fake_name"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}
