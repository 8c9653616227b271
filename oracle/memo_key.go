package oracle

import "fmt"

// memoKey renders a position as a stable map key. fmt.Sprintf is adequate
// here: the cache is scoped to a single engine step (spec.md §4.O), never
// persisted or compared across steps, so a hashing dependency buys
// nothing a short-lived map doesn't already have.
func memoKey(w []float64) string {
	return fmt.Sprintf("%v", w)
}
