package nnindex

import (
	"math/rand"
	"sort"
	"sync"

	gvptree "gonum.org/v1/gonum/spatial/vptree"
)

// vptreeRebuildThreshold is how many Add/Remove/Update calls accumulate
// before VPTree eagerly rebuilds the underlying gonum tree, rather than
// rebuilding on every mutation (the upstream Tree is immutable once built).
const vptreeRebuildThreshold = 32

// vpPoint adapts a Point to gonum's vptree.Comparable contract.
type vpPoint struct {
	p Point
}

// Distance satisfies gonum's vptree.Comparable.
func (v vpPoint) Distance(other gvptree.Comparable) float64 {
	return sqDist(v.p.Position(), other.(vpPoint).p.Position())
}

// VPTree is backed by gonum.org/v1/gonum/spatial/vptree. Because the
// upstream Tree is built once from a static point set, Update/Add/Remove
// are buffered: the tree is rebuilt eagerly once vptreeRebuildThreshold
// mutations have accumulated, and lazily by the next Nearest after any
// mutation, so queries never search a stale tree.
type VPTree struct {
	mu      sync.Mutex
	live    map[int]Point
	nextID  int
	dirty   int
	tree    *gvptree.Tree
	built   bool
	rand    *rand.Rand
	effort  int
}

type vptreeHandle int

// NewVPTree constructs an empty VPTree index. effort controls the gonum
// tree's construction effort (higher values build a better-balanced tree
// at higher construction cost); 10 is a reasonable default for a few
// thousand points per spec.md's expected graph sizes.
func NewVPTree(effort int) *VPTree {
	if effort <= 0 {
		effort = 10
	}
	return &VPTree{
		live:   make(map[int]Point),
		rand:   rand.New(rand.NewSource(1)),
		effort: effort,
	}
}

func (t *VPTree) Add(p Point) interface{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextID
	t.nextID++
	t.live[id] = p
	t.markDirty()
	return vptreeHandle(id)
}

func (t *VPTree) Remove(handle interface{}) error {
	h, ok := handle.(vptreeHandle)
	if !ok {
		return ErrUnknownHandle
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.live[int(h)]; !ok {
		return ErrUnknownHandle
	}
	delete(t.live, int(h))
	t.markDirty()
	return nil
}

// Update marks the tree dirty; the position itself already changed in
// place on the caller's Point, so there is nothing else to copy.
func (t *VPTree) Update(handle interface{}) error {
	h, ok := handle.(vptreeHandle)
	if !ok {
		return ErrUnknownHandle
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.live[int(h)]; !ok {
		return ErrUnknownHandle
	}
	t.markDirty()
	return nil
}

func (t *VPTree) markDirty() {
	t.dirty++
	if t.dirty >= vptreeRebuildThreshold {
		t.rebuildLocked()
	}
}

func (t *VPTree) rebuildLocked() {
	pts := make([]gvptree.Comparable, 0, len(t.live))
	for _, p := range t.live {
		pts = append(pts, vpPoint{p: p})
	}
	if len(pts) == 0 {
		t.tree, t.built = nil, false
		t.dirty = 0
		return
	}
	tree, err := gvptree.New(pts, t.effort, t.rand)
	if err != nil {
		// Degenerate point sets (e.g. all-identical positions) are not a
		// reason to abort the run; fall back to linear search this round.
		t.tree, t.built = nil, false
		t.dirty = 0
		return
	}
	t.tree, t.built = tree, true
	t.dirty = 0
}

func (t *VPTree) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

func (t *VPTree) Nearest(q []float64, k int) ([]Point, error) {
	if k != 1 && k != 2 {
		return nil, ErrBadK
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.live) == 0 {
		return nil, ErrEmptyIndex
	}
	if !t.built || t.dirty > 0 {
		t.rebuildLocked()
	}
	if !t.built {
		return t.linearFallbackLocked(q, k), nil
	}

	query := vpPoint{p: queryPoint{pos: q}}
	kept := make(gvptree.Heap, 0, k)
	t.tree.NearestSet(&kept, query)

	// kept is ordered by the heap's internal (max-first) invariant, not by
	// increasing distance; re-sort explicitly rather than assume an order.
	sort.Slice(kept, func(i, j int) bool { return kept[i].Dist < kept[j].Dist })

	n := k
	if n > len(kept) {
		n = len(kept)
	}
	out := make([]Point, n)
	for i := 0; i < n; i++ {
		out[i] = kept[i].Comparable.(vpPoint).p
	}
	return out, nil
}

// linearFallbackLocked is used only when the gonum tree failed to build
// (degenerate point sets); it never runs on a healthy index.
func (t *VPTree) linearFallbackLocked(q []float64, k int) []Point {
	type cand struct {
		p Point
		d float64
	}
	cands := make([]cand, 0, len(t.live))
	for _, p := range t.live {
		cands = append(cands, cand{p: p, d: sqDist(q, p.Position())})
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].d < cands[j].d })
	if k > len(cands) {
		k = len(cands)
	}
	out := make([]Point, k)
	for i := range out {
		out[i] = cands[i].p
	}
	return out
}

// queryPoint lets an ad-hoc query position masquerade as a Point so it can
// be wrapped in vpPoint for distance comparisons against indexed points.
type queryPoint struct {
	pos []float64
}

func (q queryPoint) Ident() string       { return "" }
func (q queryPoint) Position() []float64 { return q.pos }
