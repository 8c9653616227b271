// Package nnindex provides 1-NN and 2-NN spatial lookups over a live set of
// positions in R^d, matching spec.md §4.N.
//
// Three concrete implementations satisfy the Index interface: Linear (exact
// O(n) scan), Grid (a uniform hash grid with adaptive ring expansion,
// adapted from gridgraph's bucket/neighbor-offset idiom), and VPTree
// (backed by gonum.org/v1/gonum/spatial/vptree). Callers
// depend only on the Index interface — spec.md §9's "tagged union...
// monomorphic inner loop" design note is realized here as a small,
// closed set of implementations behind one interface rather than a
// type-switch, since the learner never needs to know which one is live.
package nnindex

import "errors"

// ErrEmptyIndex is returned by Nearest when the index holds no points.
var ErrEmptyIndex = errors.New("nnindex: index is empty")

// ErrUnknownHandle is returned by Remove/Update when the handle was not
// produced by this index (or was already removed).
var ErrUnknownHandle = errors.New("nnindex: unknown handle")

// ErrBadK is returned when Nearest is called with k outside {1, 2}.
var ErrBadK = errors.New("nnindex: k must be 1 or 2")

// Point is the minimal contract the index needs from a graph vertex: a
// stable identity and a live position. core.Vertex satisfies this directly.
type Point interface {
	Ident() string
	Position() []float64
}

// Index is the NN-index contract shared by Linear, Grid, and VPTree.
type Index interface {
	// Add registers p and returns an opaque handle for later Remove/Update.
	Add(p Point) interface{}
	// Remove deregisters the point named by handle.
	Remove(handle interface{}) error
	// Update re-indexes after the point's position changed in place.
	Update(handle interface{}) error
	// Nearest returns the k closest live points to q, increasing distance,
	// k ∈ {1, 2}. Returns fewer than k entries if the index holds fewer
	// than k points.
	Nearest(q []float64, k int) ([]Point, error)
	// Len reports how many points are currently indexed.
	Len() int
}
