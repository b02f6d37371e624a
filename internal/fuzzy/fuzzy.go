// Package fuzzy ranks command and option names against a mistyped input.
// Used by dispatch for "did you mean" hints on unknown commands and arguments.
package fuzzy

import (
	"sort"
	"strings"
)

// minInputLength is the shortest input suggestions are computed for
const minInputLength = 2

// Match is a candidate within the allowed edit distance of the input.
type Match struct {
	Value    string
	Distance int
	Prefix   int // length of the common prefix with the input
}

// FindBest returns the closest candidate, or "" when none is within
// maxDistance edits. Exact matches are never suggested.
func FindBest(input string, candidates []string, maxDistance int) string {
	matches := FindMatches(input, candidates, maxDistance)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Value
}

// FindMatches returns every candidate within maxDistance edits ordered by
// distance, then by longer common prefix, then by candidate order.
// Comparison is case-insensitive and counts adjacent transpositions as one
// edit.
func FindMatches(input string, candidates []string, maxDistance int) []Match {
	if len(input) < minInputLength || maxDistance <= 0 {
		return nil
	}

	input = strings.ToLower(input)
	var matches []Match
	for _, candidate := range candidates {
		lower := strings.ToLower(candidate)
		if lower == input {
			continue
		}
		d := distance(input, lower, maxDistance)
		if d > maxDistance {
			continue
		}
		matches = append(matches, Match{
			Value:    candidate,
			Distance: d,
			Prefix:   commonPrefix(input, lower),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Prefix > matches[j].Prefix
	})
	return matches
}

// Suggestions returns at most limit candidate values in ranking order
func Suggestions(input string, candidates []string, maxDistance, limit int) []string {
	matches := FindMatches(input, candidates, maxDistance)
	out := make([]string, 0, min(len(matches), limit))
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, m.Value)
	}
	return out
}

// distance is the optimal string alignment distance between a and b. It
// stops early and returns limit+1 once the distance must exceed limit.
func distance(a, b string, limit int) int {
	ra, rb := []rune(a), []rune(b)
	if abs(len(ra)-len(rb)) > limit {
		return limit + 1
	}
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// three rows: two back for transpositions
	prev2 := make([]int, len(rb)+1)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		rowMin := i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				cur[j] = min(cur[j], prev2[j-2]+1)
			}
			rowMin = min(rowMin, cur[j])
		}
		if rowMin > limit {
			return limit + 1
		}
		prev2, prev, cur = prev, cur, prev2
	}
	return prev[len(rb)]
}

func commonPrefix(a, b string) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
