// Package classes tracks the FREE/OBST classification of vertices for
// tournament-style random sampling and the per-depth OBST histogram
// (exposed via DepthHistogram). NONE vertices are never tracked
// here — they only ever live in the graph's own vertex catalog.
//
// Manager generalizes the "maintain a parallel slice alongside a map"
// pairing used by core.Graph.vertices next to its edge/incidence maps, to
// a per-class slice plus an index map, so removal from either the FREE or
// OBST array is O(1) via swap-with-last instead of an O(n) scan.
package classes

import (
	"errors"
	"math/rand"

	"github.com/katalvlaran/gnp/core"
)

// ErrNotTracked is returned when an operation names a vertex that is not
// currently in the FREE or OBST set.
var ErrNotTracked = errors.New("classes: vertex is not tracked in FREE or OBST")

// Manager holds the auxiliary FREE/OBST arrays and the OBST depth histogram
// described by spec.md §4.S. It does not own the graph; callers pass a
// *core.Graph to SetClass so vertex.Class/Fixed/Depth stay authoritative.
type Manager struct {
	free    []string
	obst    []string
	freeIdx map[string]int // vertex ID -> position in free
	obstIdx map[string]int // vertex ID -> position in obst

	depthHist map[int]int // OBST vertex count by depth (always 0 for OBST, kept for symmetry with NONE depth tracking elsewhere)
}

// NewManager constructs an empty Manager.
func NewManager() *Manager {
	return &Manager{
		freeIdx:   make(map[string]int),
		obstIdx:   make(map[string]int),
		depthHist: make(map[int]int),
	}
}

// SetClass transitions v to newClass, enforcing invariant 4 (spec.md §3):
// a FREE or OBST vertex has fixed=true and depth=0; a NONE vertex has
// fixed=false. It moves v between the FREE/OBST auxiliary arrays — NONE
// vertices are removed from both and left untracked here.
func (m *Manager) SetClass(v *core.Vertex, newClass core.Class) error {
	old := v.Class
	m.removeFromAux(old, v.ID)

	v.Class = newClass
	switch newClass {
	case core.Free:
		v.Fixed = true
		v.Depth = 0
		m.addToAux(&m.free, m.freeIdx, v.ID)
	case core.Obst:
		v.Fixed = true
		v.Depth = 0
		m.addToAux(&m.obst, m.obstIdx, v.ID)
		m.depthHist[0]++
	case core.None:
		v.Fixed = false
		// depth is left to the caller (learner computes it from classified
		// neighbours); SetClass only clears the invariant-4 fixed flag.
	}
	return nil
}

func (m *Manager) addToAux(slice *[]string, idx map[string]int, id string) {
	idx[id] = len(*slice)
	*slice = append(*slice, id)
}

// removeFromAux deletes id from whichever aux array held class, via
// swap-with-last so the op is O(1) instead of an O(n) search+shift.
func (m *Manager) removeFromAux(class core.Class, id string) {
	switch class {
	case core.Free:
		removeSwap(&m.free, m.freeIdx, id)
	case core.Obst:
		if _, ok := m.obstIdx[id]; ok {
			m.depthHist[0]--
		}
		removeSwap(&m.obst, m.obstIdx, id)
	}
}

func removeSwap(slice *[]string, idx map[string]int, id string) {
	i, ok := idx[id]
	if !ok {
		return
	}
	s := *slice
	last := len(s) - 1
	s[i] = s[last]
	idx[s[i]] = i
	s = s[:last]
	*slice = s
	delete(idx, id)
}

// Free returns the current FREE-class vertex IDs. The slice is owned by the
// Manager; callers must not retain or mutate it across further SetClass calls.
func (m *Manager) Free() []string { return m.free }

// Obst returns the current OBST-class vertex IDs, under the same aliasing
// rule as Free.
func (m *Manager) Obst() []string { return m.obst }

// DepthHistogram returns the OBST count at each observed depth. Since
// SetClass always pins OBST depth to 0, every count in practice lands in
// bucket 0; the histogram is exposed as a map for forward-compatibility
// with a future variant that buckets OBST proximity instead of a fixed 0.
func (m *Manager) DepthHistogram() map[int]int {
	out := make(map[int]int, len(m.depthHist))
	for k, v := range m.depthHist {
		out[k] = v
	}
	return out
}

// Tournament draws up to k distinct vertex IDs, without replacement, from
// the FREE or OBST array named by class (spec.md §4.S / §6's `tournament`
// parameter). rng follows builder.WithRand/WithSeed's convention: nil
// means deterministic, returning the first k IDs in array order instead
// of a random subset.
func (m *Manager) Tournament(class core.Class, k int, rng *rand.Rand) []string {
	var pool []string
	switch class {
	case core.Free:
		pool = m.free
	case core.Obst:
		pool = m.obst
	default:
		return nil
	}
	if k <= 0 || len(pool) == 0 {
		return nil
	}
	if k > len(pool) {
		k = len(pool)
	}
	if rng == nil {
		out := make([]string, k)
		copy(out, pool)
		return out
	}

	cp := make([]string, len(pool))
	copy(cp, pool)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(cp)-i)
		cp[i], cp[j] = cp[j], cp[i]
	}
	return cp[:k]
}

// IsTracked reports whether id is currently in the FREE or OBST set.
func (m *Manager) IsTracked(id string) bool {
	_, inFree := m.freeIdx[id]
	_, inObst := m.obstIdx[id]
	return inFree || inObst
}
