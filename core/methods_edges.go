package core

import (
	"sort"
	"strconv"
	"sync/atomic"
)

const edgeIDPrefix = 'e'

func nextEdgeID(g *Graph) string {
	n := atomic.AddUint64(&g.nextEdgeID, 1)
	buf := make([]byte, 0, 1+20)
	buf = append(buf, edgeIDPrefix)
	buf = strconv.AppendUint(buf, n, 10)
	return string(buf)
}

// AddEdge creates an undirected edge between u and v.
//
// Preconditions (spec.md §4.G): u ≠ v, no existing edge between them, and
// (if the graph was built WithMaxDegree) neither endpoint is already at the
// cap — callers that need to respect r_max by evicting the longest
// incident edge first (spec.md §4.L step 2) must do that eviction before
// calling AddEdge; core only refuses to let the invariant be broken.
func (g *Graph) AddEdge(u, v string) (*Edge, error) {
	if u == v {
		return nil, ErrSelfLoop
	}

	g.muVert.RLock()
	vu, ok1 := g.vertices[u]
	vv, ok2 := g.vertices[v]
	g.muVert.RUnlock()
	if !ok1 || !ok2 {
		return nil, ErrVertexNotFound
	}

	g.muEdge.Lock()
	defer g.muEdge.Unlock()

	key := pairKey(u, v)
	if _, exists := g.edgeOf[key]; exists {
		return nil, ErrDuplicateEdge
	}

	g.muVert.Lock()
	if g.rMax > 0 && (len(vu.Incident) >= g.rMax || len(vv.Incident) >= g.rMax) {
		g.muVert.Unlock()
		return nil, ErrDegreeCap
	}

	eid := nextEdgeID(g)
	e := &Edge{ID: eid, U: u, V: v}
	g.edges[eid] = e
	g.edgeOf[key] = eid

	vu.Incident = append(vu.Incident, eid)
	vv.Incident = append(vv.Incident, eid)
	g.muVert.Unlock()

	return e, nil
}

// RemoveEdge detaches e from both endpoints' incident lists and deletes it
// from the catalog. It reports which endpoints (if any) became isolated as
// a result, via the orphaned return value — spec.md §4.G leaves the choice
// of deleting those vertices immediately to the engine (done by the
// learner, per §4.L step 8); core never deletes a vertex on the caller's
// behalf.
func (g *Graph) RemoveEdge(eid string) (orphaned []string, err error) {
	g.muEdge.Lock()
	e, ok := g.edges[eid]
	if !ok {
		g.muEdge.Unlock()
		return nil, ErrEdgeNotFound
	}
	delete(g.edges, eid)
	delete(g.edgeOf, pairKey(e.U, e.V))
	g.muEdge.Unlock()

	g.muVert.Lock()
	defer g.muVert.Unlock()
	for _, id := range [2]string{e.U, e.V} {
		if v, ok := g.vertices[id]; ok {
			v.removeIncident(eid)
			if len(v.Incident) == 0 {
				orphaned = append(orphaned, id)
			}
		}
	}

	return orphaned, nil
}

// HasEdge reports whether an edge between u and v exists.
func (g *Graph) HasEdge(u, v string) bool {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	_, ok := g.edgeOf[pairKey(u, v)]
	return ok
}

// CommonEdge returns the edge between u and v, or nil if none exists.
// Spec.md §4.G describes scanning the shorter incident list in O(deg); the
// hash-map lookup used here is O(1) and satisfies the same contract.
func (g *Graph) CommonEdge(u, v string) *Edge {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	eid, ok := g.edgeOf[pairKey(u, v)]
	if !ok {
		return nil
	}
	return g.edges[eid]
}

// GetEdge returns the edge named eid, or ErrEdgeNotFound.
func (g *Graph) GetEdge(eid string) (*Edge, error) {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	e, ok := g.edges[eid]
	if !ok {
		return nil, ErrEdgeNotFound
	}
	return e, nil
}

// Edges returns all edges sorted by ID ascending (deterministic order for
// SVT dumps and golden tests).
func (g *Graph) Edges() []*Edge {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// EdgeCount returns the number of live edges.
func (g *Graph) EdgeCount() int {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	return len(g.edges)
}

// Neighbors returns the edges incident to id, in insertion order.
func (g *Graph) Neighbors(id string) ([]*Edge, error) {
	g.muVert.RLock()
	v, ok := g.vertices[id]
	g.muVert.RUnlock()
	if !ok {
		return nil, ErrVertexNotFound
	}

	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	out := make([]*Edge, 0, len(v.Incident))
	for _, eid := range v.Incident {
		if e, ok := g.edges[eid]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// NeighborIDs returns the IDs of vertices adjacent to id, in the same
// order as Neighbors.
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	edges, err := g.Neighbors(id)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = e.Other(id)
	}
	return out, nil
}

// AddFace records a triangular face (surface variant of ECHL, spec.md
// §4.L step 5). Faces carry no normal/orientation — see SPEC_FULL.md.
func (g *Graph) AddFace(a, b, c string) {
	g.muEdge.Lock()
	defer g.muEdge.Unlock()
	g.faces = append(g.faces, Face{A: a, B: b, C: c})
}

// Faces returns all recorded faces in insertion order.
func (g *Graph) Faces() []Face {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	out := make([]Face, len(g.faces))
	copy(out, g.faces)
	return out
}
