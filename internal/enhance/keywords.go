// Package enhance holds the optional strategic-positioning modifiers applied on
// top of baseline requirement scores: dual-track role alignment,
// experience-level calibration, cross-functional complexity and role-level
// weighting. Every modifier is a pure function of requirement text, self-score
// and an immutable configuration.
package enhance

import "strings"

// Keywords is a list of lower-case substrings matched against requirement text.
type Keywords []string

// Count returns how many keywords occur in text.
func (k Keywords) Count(text string) int {
	lower := strings.ToLower(text)
	n := 0
	for _, kw := range k {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			n++
		}
	}
	return n
}

// Any reports whether at least one keyword occurs in text.
func (k Keywords) Any(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range k {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
