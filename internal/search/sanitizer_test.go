package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_StripsQueryOperators(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain words", "chocolate cake", "chocolate cake"},
		{"mixed case", "Chocolate CAKE", "chocolate cake"},
		{"surrounding whitespace", "  tarte tatin \t", "tarte tatin"},
		{"tsquery operators", "choco & cake | pie!", "choco cake pie"},
		{"operator runs", "a &&& b ||| c", "a b c"},
		{"parens and quotes", `(cake) "pie" 'tart'`, "cake pie tart"},
		{"prefix marker", "choco:*", "choco"},
		{"backslash and angles", `a\b <c>`, "a b c"},
		{"only operators", "&|!()", ""},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"accents preserved", "crème brûlée", "crème brûlée"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.input))
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{"Chocolate & CAKE!", "  crème   brûlée  ", "a|b|c", ""}
	for _, input := range inputs {
		once := Sanitize(input)
		assert.Equal(t, once, Sanitize(once), "input %q", input)
	}
}

func TestSanitizeWithLimit_TruncatesByRunes(t *testing.T) {
	long := strings.Repeat("é", 150)
	got := SanitizeWithLimit(long, 100)
	assert.Equal(t, 100, len([]rune(got)))

	// The default limit applies before operator stripping.
	assert.Equal(t, strings.Repeat("a", DefaultMaxQueryLength),
		Sanitize(strings.Repeat("a", 300)))
}

func TestToSearchExpression_PrefixAndConjunction(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single word", "chocolate", "chocolate:*"},
		{"two words", "chocolate cake", "chocolate:* & cake:*"},
		{"operators stripped first", "choco & cake!", "choco:* & cake:*"},
		{"empty input", "", ""},
		{"operators only", "&&|!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToSearchExpression(tt.input))
		})
	}
}
