package bench

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Result is one measured cell of the benchmark matrix.
type Result struct {
	Operator     string
	Distribution string
	Density      float64
	MeanNanos    int64
	OperandWords int     // words across both operands
	ResultWords  int
	ResultRatio  float64 // bitmap compression ratio of the result
}

// Table collects results from concurrent workers.
type Table struct {
	mu      sync.Mutex
	results []Result
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// Add inserts a result into the table.
func (t *Table) Add(r Result) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.results = append(t.results, r)
}

// Results returns a copy of all results, sorted by operator, distribution
// and density.
func (t *Table) Results() []Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Result, len(t.results))
	copy(out, t.results)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Operator != out[j].Operator {
			return out[i].Operator < out[j].Operator
		}
		if out[i].Distribution != out[j].Distribution {
			return out[i].Distribution < out[j].Distribution
		}
		return out[i].Density < out[j].Density
	})
	return out
}

// Len returns the number of results.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.results)
}

// Format renders the table for terminal output.
func (t *Table) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-8s %-10s %8s %12s %10s %10s %8s\n",
		"op", "dist", "density", "ns/op", "in-words", "out-words", "ratio")
	for _, r := range t.Results() {
		fmt.Fprintf(&b, "%-8s %-10s %8.3f %12d %10d %10d %8.3f\n",
			r.Operator, r.Distribution, r.Density, r.MeanNanos,
			r.OperandWords, r.ResultWords, r.ResultRatio)
	}
	return b.String()
}
