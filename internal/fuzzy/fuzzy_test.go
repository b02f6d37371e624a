//nolint:testpackage // using package name 'fuzzy' to access unexported helpers for testing
package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindBest(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		candidates []string
		expected   string
	}{
		{
			name:       "exact match excluded",
			input:      "help",
			candidates: []string{"help", "print", "void"},
			expected:   "",
		},
		{
			name:       "missing letter",
			input:      "prnt",
			candidates: []string{"help", "print", "void"},
			expected:   "print",
		},
		{
			name:       "transposition counts once",
			input:      "pirnt",
			candidates: []string{"help", "print"},
			expected:   "print",
		},
		{
			name:       "too far",
			input:      "xyz",
			candidates: []string{"help", "print"},
			expected:   "",
		},
		{
			name:       "input too short",
			input:      "p",
			candidates: []string{"pr"},
			expected:   "",
		},
		{
			name:       "case insensitive",
			input:      "PRINT",
			candidates: []string{"prints"},
			expected:   "prints",
		},
		{
			name:       "longer prefix wins a tie",
			input:      "upper",
			candidates: []string{"supper", "uppers"},
			expected:   "uppers",
		},
		{
			name:       "candidate order breaks full ties",
			input:      "cat",
			candidates: []string{"bat", "hat"},
			expected:   "bat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FindBest(tt.input, tt.candidates, 2))
		})
	}
}

func TestFindBestDisabled(t *testing.T) {
	assert.Empty(t, FindBest("prnt", []string{"print"}, 0))
}

func TestFindMatchesOrdering(t *testing.T) {
	matches := FindMatches("upercase", []string{"upper-case", "uppercase", "lowercase"}, 2)

	values := make([]string, len(matches))
	for i, m := range matches {
		values[i] = m.Value
	}
	assert.Equal(t, []string{"uppercase", "upper-case"}, values)
	assert.Equal(t, 1, matches[0].Distance)
}

func TestSuggestionsLimit(t *testing.T) {
	got := Suggestions("tst", []string{"test", "tests", "text", "zzz"}, 2, 2)
	assert.Len(t, got, 2)
	assert.Equal(t, "test", got[0])
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"ab", "ba", 1},
		{"flag", "flga", 1},
		{"same", "same", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, distance(tt.a, tt.b, 10), "%s -> %s", tt.a, tt.b)
	}

	assert.Equal(t, 3, distance("abcdef", "zzzzzz", 2), "stops past the limit")
}
