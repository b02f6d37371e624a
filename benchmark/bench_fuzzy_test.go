//nolint:testpackage // using package name 'benchmark' to access unexported fields for testing
package benchmark

import (
	"testing"

	fuzzy "github.com/dzonerzy/go-dispatch/internal/fuzzy"
)

// Category: fuzzy (exported paths only)

var candidates = []string{
	"help", "version", "verbose", "config", "output", "input",
	"force", "debug", "port", "host", "timeout", "retry",
}

func BenchmarkFindBest(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		fuzzy.FindBest("hep", candidates, 2)
	}
}

func BenchmarkFindMatches(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		fuzzy.FindMatches("ver", candidates, 2)
	}
}

func BenchmarkSuggestions(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		fuzzy.Suggestions("ver", candidates, 2, 3)
	}
}
