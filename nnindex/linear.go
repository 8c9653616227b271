package nnindex

import (
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// Linear is an exact O(n) nearest-neighbour scan. It is grounded on
// core.Graph.Degree's style of accepting an O(n)/O(E) scan for correctness
// rather than index upkeep, and is the reference implementation other
// variants are tested against.
type Linear struct {
	mu     sync.RWMutex
	points map[int]Point
	nextID int
}

// NewLinear constructs an empty Linear index.
func NewLinear() *Linear {
	return &Linear{points: make(map[int]Point)}
}

type linearHandle int

func (l *Linear) Add(p Point) interface{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextID
	l.nextID++
	l.points[id] = p
	return linearHandle(id)
}

func (l *Linear) Remove(handle interface{}) error {
	h, ok := handle.(linearHandle)
	if !ok {
		return ErrUnknownHandle
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.points[int(h)]; !ok {
		return ErrUnknownHandle
	}
	delete(l.points, int(h))
	return nil
}

// Update is a no-op: Linear always reads live positions, so there is
// nothing to re-index.
func (l *Linear) Update(handle interface{}) error {
	h, ok := handle.(linearHandle)
	if !ok {
		return ErrUnknownHandle
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if _, ok := l.points[int(h)]; !ok {
		return ErrUnknownHandle
	}
	return nil
}

func (l *Linear) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.points)
}

func (l *Linear) Nearest(q []float64, k int) ([]Point, error) {
	if k != 1 && k != 2 {
		return nil, ErrBadK
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.points) == 0 {
		return nil, ErrEmptyIndex
	}

	type cand struct {
		p Point
		d float64
	}
	cands := make([]cand, 0, len(l.points))
	for _, p := range l.points {
		cands = append(cands, cand{p: p, d: sqDist(q, p.Position())})
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].d < cands[j].d })

	if k > len(cands) {
		k = len(cands)
	}
	out := make([]Point, k)
	for i := 0; i < k; i++ {
		out[i] = cands[i].p
	}
	return out, nil
}

// sqDist computes squared Euclidean distance via gonum/floats, the vector
// arithmetic collaborator spec.md §1 treats as an assumed external service.
func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}
