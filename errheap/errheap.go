// Package errheap implements a mergeable priority queue on a vertex's
// materialized error, keyed by vertex ID. It backs the inserter's
// "find the vertex with maximum err" step (spec.md §4.I) and the learner's
// demand for a `min`/`max` query that never blocks a step on a full rebuild.
//
// The queue does not implement a true pairing heap or decrease-key; it
// follows dijkstra.nodePQ's lazy-decrease-key discipline: updateKey pushes
// a fresh entry rather than repositioning the stale one, and a per-vertex
// generation counter lets Pop/Peek discard stale entries cheaply instead
// of hunting for them in the slice.
package errheap

import (
	"container/heap"
	"errors"
)

// ErrEmpty is returned by Min/Pop when the heap holds no live entries.
var ErrEmpty = errors.New("errheap: heap is empty")

// entry is one (vertex, err) pair tracked in the underlying slice-heap.
// gen pins this entry to the generation of vertexID current when it was
// pushed; an entry whose gen no longer matches latest[vertexID] is stale
// and is dropped on pop rather than returned.
type entry struct {
	id  string
	err float64
	gen uint64
}

// innerPQ is a max-heap (largest err first) of *entry, the mirror image of
// dijkstra.nodePQ's min-heap — the inserter wants the vertex with the
// LARGEST accumulated error, not the smallest.
type innerPQ []*entry

func (pq innerPQ) Len() int            { return len(pq) }
func (pq innerPQ) Less(i, j int) bool  { return pq[i].err > pq[j].err }
func (pq innerPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *innerPQ) Push(x interface{}) { *pq = append(*pq, x.(*entry)) }
func (pq *innerPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// Heap is a max-err priority queue keyed by vertex ID. Zero value is not
// usable; construct with New.
type Heap struct {
	pq   innerPQ
	gen  map[string]uint64
	live map[string]float64 // current err for each tracked vertex, for Peek/membership
}

// New constructs an empty Heap.
func New() *Heap {
	return &Heap{
		gen:  make(map[string]uint64),
		live: make(map[string]float64),
	}
}

// Add inserts id with the given err, or is equivalent to UpdateKey if id is
// already tracked.
func (h *Heap) Add(id string, err float64) {
	h.gen[id]++
	h.live[id] = err
	heap.Push(&h.pq, &entry{id: id, err: err, gen: h.gen[id]})
}

// UpdateKey changes id's current err. Lazy: the old heap entry is left in
// place and discarded on pop once its generation no longer matches.
func (h *Heap) UpdateKey(id string, err float64) {
	h.Add(id, err)
}

// Remove drops id from the live set. Any heap entries for id still in the
// slice become stale and are discarded on pop.
func (h *Heap) Remove(id string) {
	delete(h.live, id)
	h.gen[id]++
}

// Len returns the number of distinct live (non-removed) vertices tracked.
func (h *Heap) Len() int {
	return len(h.live)
}

// Max returns the ID and err of the tracked vertex with the largest err,
// without removing it. Runs the same stale-skip loop as Pop, discarding the
// stale entries it passes, and pushes the valid entry back so the set of
// live vertices and their errs is unchanged.
func (h *Heap) Max() (string, float64, error) {
	id, err, popped := h.popValid()
	if popped == nil {
		return "", 0, ErrEmpty
	}
	heap.Push(&h.pq, popped)
	return id, err, nil
}

// Pop removes and returns the ID and err of the tracked vertex with the
// largest err.
func (h *Heap) Pop() (string, float64, error) {
	id, err, popped := h.popValid()
	if popped == nil {
		return "", 0, ErrEmpty
	}
	delete(h.live, id)
	return id, err, nil
}

// popValid drains stale entries off the top of pq until it finds one whose
// generation matches the live generation for its vertex, or the heap runs
// dry. The matching entry (if any) is returned but NOT removed from live.
func (h *Heap) popValid() (string, float64, *entry) {
	for h.pq.Len() > 0 {
		e := heap.Pop(&h.pq).(*entry)
		if h.gen[e.id] != e.gen {
			continue // superseded by a later Add/UpdateKey, or removed
		}
		return e.id, e.err, e
	}
	return "", 0, nil
}
