package core

import "sync"

// Class is the per-vertex classification assigned by the oracle.
type Class int

const (
	// None is the default class: the vertex has not been evaluated, or was
	// created purely for topology (e.g. an Inserter split point).
	None Class = iota
	// Free marks a vertex confirmed to lie in the free configuration space.
	Free
	// Obst marks a vertex confirmed to lie inside an obstacle.
	Obst
)

// String renders the class for logging and SVT dumps.
func (c Class) String() string {
	switch c {
	case Free:
		return "FREE"
	case Obst:
		return "OBST"
	default:
		return "NONE"
	}
}

// Component is a union-find node used to track connected components of
// FREE vertices without a graph traversal. Path compression is applied
// lazily on Find; callers never dereference Parent directly.
//
// Grounded on prim_kruskal.Kruskal's inline find/union closures (path
// compression + union by rank), lifted here so every vertex carries one;
// the path extractor unions the FREE vertices of a certified path. The
// inserter's cut-subnet detects orphans by BFS and does not use it.
type Component struct {
	parent *Component
	rank   int
}

// NewComponent allocates a fresh singleton component.
func NewComponent() *Component {
	c := &Component{}
	c.parent = c
	return c
}

// Find returns the representative of c's set, compressing the path.
func (c *Component) Find() *Component {
	if c.parent != c {
		c.parent = c.parent.Find()
	}
	return c.parent
}

// Union merges the sets containing a and b (union by rank).
func Union(a, b *Component) {
	ra, rb := a.Find(), b.Find()
	if ra == rb {
		return
	}
	if ra.rank < rb.rank {
		ra.parent = rb
	} else if ra.rank > rb.rank {
		rb.parent = ra
	} else {
		rb.parent = ra
		ra.rank++
	}
}

// SameComponent reports whether a and b currently share a root.
func SameComponent(a, b *Component) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Find() == b.Find()
}

// Vertex is a node of the growing graph: a position in R^d plus the
// bookkeeping the learner, inserter, and path extractor share.
//
// Incident is kept in insertion order (not a set) because ECHL's
// "longest incident edge" selection (used to respect the degree cap when
// a new edge would be created) depends on that order, and because
// invariant 2 ("every edge appears in the incident list of both its
// endpoints exactly once") is cheapest to maintain as an ordered slice of
// edge IDs here.
type Vertex struct {
	ID       string
	W        []float64 // position in R^d, owned
	Class    Class
	Fixed    bool
	Err      float64
	ErrEpoch int64
	Depth    int
	Incident []string // edge IDs, insertion order
	Comp     *Component
	NNHandle interface{} // opaque handle into the NN-index
}

// hasIncident reports whether eid is already present (invariant 2 guard).
func (v *Vertex) hasIncident(eid string) bool {
	for _, e := range v.Incident {
		if e == eid {
			return true
		}
	}
	return false
}

// removeIncident deletes eid from the incident list, preserving order of
// the remaining entries.
func (v *Vertex) removeIncident(eid string) {
	for i, e := range v.Incident {
		if e == eid {
			v.Incident = append(v.Incident[:i], v.Incident[i+1:]...)
			return
		}
	}
}

// Edge is an undirected link between two distinct vertices. Age is reset to
// zero when its endpoints are the two winners of an ECHL step; at the end
// of every step each edge incident to the first winner (that one included)
// ages by one, and edges whose Age exceeds age_max are pruned.
type Edge struct {
	ID  string
	U   string
	V   string
	Age int
}

// Other returns the endpoint of e that is not id (id must be U or V).
func (e *Edge) Other(id string) string {
	if e.U == id {
		return e.V
	}
	return e.U
}

// Face is an optional triangular face instantiated by the surface variant
// of ECHL's face-emission step (spec.md §4.L step 5). It carries no
// normal/orientation, only triangle topology.
type Face struct {
	A, B, C string
}

// GraphOption configures a Graph at construction time.
type GraphOption func(*Graph)

// WithMaxDegree caps the incident-list length of every vertex (invariant 3,
// r_max in spec.md). A value ≤ 0 means unbounded.
func WithMaxDegree(rMax int) GraphOption {
	return func(g *Graph) { g.rMax = rMax }
}

// Graph owns all vertices, edges, and faces of the growing graph. It never
// "throws" in the sense of spec.md §4.G: precondition violations return
// sentinel errors rather than panicking.
type Graph struct {
	muVert sync.RWMutex // guards vertices and vertex order
	muEdge sync.RWMutex // guards edges, faces

	rMax int

	nextEdgeID uint64
	nextVertID uint64

	order    []string // vertex IDs, insertion order
	vertices map[string]*Vertex
	edges    map[string]*Edge
	edgeOf   map[[2]string]string // {u,v} (u<v) -> edge ID, for commonEdge/HasEdge
	faces    []Face
}

// NewGraph constructs an empty Graph.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices: make(map[string]*Vertex),
		edges:    make(map[string]*Edge),
		edgeOf:   make(map[[2]string]string),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// pairKey builds the canonical (unordered) lookup key for endpoints u, v.
func pairKey(u, v string) [2]string {
	if u <= v {
		return [2]string{u, v}
	}
	return [2]string{v, u}
}
