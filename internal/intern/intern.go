// Package intern memoizes string transformations over a small, repeating set
// of inputs, such as option names converted on every lookup.
package intern

import (
	"sync"
)

// DefaultLimit bounds a Table created with a non-positive limit
const DefaultLimit = 1024

// Table caches the results of fn. It is safe for concurrent use.
type Table struct {
	fn    func(string) string
	limit int

	mutex   sync.RWMutex
	results map[string]string
}

// NewTable creates a table for fn keeping at most limit entries. Once full,
// new inputs are computed without being stored.
func NewTable(fn func(string) string, limit int) *Table {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Table{
		fn:      fn,
		limit:   limit,
		results: make(map[string]string, 64),
	}
}

// Get returns fn(s), computing it at most once per stored input
func (t *Table) Get(s string) string {
	// Fast path: read lock for common case
	t.mutex.RLock()
	if out, ok := t.results[s]; ok {
		t.mutex.RUnlock()
		return out
	}
	t.mutex.RUnlock()

	out := t.fn(s)

	t.mutex.Lock()
	defer t.mutex.Unlock()
	if len(t.results) < t.limit {
		t.results[s] = out
	}
	return out
}

// Preload stores fn(s) for every input
func (t *Table) Preload(inputs ...string) {
	for _, s := range inputs {
		t.Get(s)
	}
}

// Len returns the number of stored results
func (t *Table) Len() int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return len(t.results)
}

// Clear removes every stored result
func (t *Table) Clear() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	clear(t.results)
}
