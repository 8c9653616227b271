// Package pathplan implements the path extractor (spec.md §4.P): given a
// start and goal position, materialize temporary FREE vertices for both,
// run Dijkstra over the FREE/admissible-NONE subgraph, and refine the
// result until every segment is short enough for the oracle to certify.
//
// FindPath is a direct generalization of dijkstra.Dijkstra: the same
// runner shape (dist/prev/visited, lazy-decrease-key min-heap) and the
// same upfront edge-weight validation pass, adapted from static int64
// edge weights to Euclidean distances computed from live vertex positions
// (so the "negative weight" prescan becomes a "NaN distance" prescan —
// geometric distances are never negative by construction).
package pathplan

import "errors"

// ErrNoPath is returned when Dijkstra cannot reach the goal from the
// start — the query fails per spec.md §4.P step 3; the temporary start
// and goal vertices remain in the graph and may be pruned later by the
// caller.
var ErrNoPath = errors.New("pathplan: no path between start and goal")

// ErrBadWeight is returned when an admissible edge's endpoints yield a
// NaN distance (a malformed vertex position slipped into the graph).
var ErrBadWeight = errors.New("pathplan: edge has a NaN distance")

// ErrDimMismatch is returned when start and goal have different lengths.
var ErrDimMismatch = errors.New("pathplan: start and goal dimension mismatch")

// Path is the result of a successful FindPath: the ordered vertex IDs
// from start to goal, after prunePath refinement.
type Path struct {
	// Vertices is the ordered sequence of vertex IDs, start first, goal
	// last, with every consecutive pair at most H apart.
	Vertices []string
	// Valid reports whether prunePath introduced zero new OBST samples.
	// false means an obstacle was discovered mid-segment during
	// refinement and the caller should treat the path as uncertified.
	Valid bool
}

// Options configures FindPath.
type Options struct {
	// MaxDepthFree bounds how many edges a NONE vertex may be from the
	// nearest FREE vertex and still be traversable (spec.md §4.P step 2).
	// The spec leaves the default unspecified (open question); 1 is
	// chosen here so immediate NONE neighbours of the FREE region are
	// usable as stepping stones without admitting unexplored territory.
	MaxDepthFree int
	// H is the maximum segment length prunePath refines down to.
	H float64
}

// DefaultOptions returns MaxDepthFree=1, H=0.1.
func DefaultOptions() Options {
	return Options{MaxDepthFree: 1, H: 0.1}
}

// Option configures Options at FindPath call time.
type Option func(*Options)

// WithMaxDepthFree overrides the default NONE-vertex admissibility depth.
func WithMaxDepthFree(d int) Option {
	return func(o *Options) { o.MaxDepthFree = d }
}

// WithRefinementStep overrides the default refinement resolution h.
func WithRefinementStep(h float64) Option {
	return func(o *Options) { o.H = h }
}
