package search

import (
	"regexp"
	"strings"
)

// DefaultMaxQueryLength caps user input before it reaches the ranking query.
// Scoring is expensive; an unbounded query string is an easy abuse vector.
const DefaultMaxQueryLength = 100

var (
	// Characters with special meaning in the tsquery language. A run of them
	// collapses to a single space; malformed input never errors.
	tsquerySpecials = regexp.MustCompile(`[&|!():*'"<>\\]+`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
)

// Sanitize normalizes raw user input for full-text search: trims, truncates
// to DefaultMaxQueryLength runes, strips tsquery operators, collapses
// whitespace and lower-cases. Sanitize is idempotent.
func Sanitize(raw string) string {
	return SanitizeWithLimit(raw, DefaultMaxQueryLength)
}

// SanitizeWithLimit is Sanitize with a caller-chosen rune cap.
func SanitizeWithLimit(raw string, maxLength int) string {
	s := strings.TrimSpace(raw)
	if runes := []rune(s); len(runes) > maxLength {
		s = string(runes[:maxLength])
	}
	s = tsquerySpecials.ReplaceAllString(s, " ")
	s = whitespaceRuns.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// ToSearchExpression turns raw input into a tsquery expression: sanitized
// words joined with the AND operator, each marked for prefix matching so
// "choco" matches "chocolate". This is prefix search off the front of words,
// not edit-distance fuzzy search.
//
// An empty return value means "no usable query"; the caller must skip the
// ranking query entirely rather than hand an empty expression to the engine.
func ToSearchExpression(raw string) string {
	words := strings.Fields(Sanitize(raw))
	if len(words) == 0 {
		return ""
	}
	for i, w := range words {
		words[i] = w + ":*"
	}
	return strings.Join(words, " & ")
}
