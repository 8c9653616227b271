package core

import (
	"strconv"
	"sync/atomic"
)

const vertexIDPrefix = 'v'

// nextVertexID returns a new unique textual vertex ID ("v1", "v2", ...):
// an atomic counter rendered without fmt to avoid heap churn in the
// learner's hot loop.
func nextVertexID(g *Graph) string {
	n := atomic.AddUint64(&g.nextVertID, 1)
	buf := make([]byte, 0, 1+20)
	buf = append(buf, vertexIDPrefix)
	buf = strconv.AppendUint(buf, n, 10)
	return string(buf)
}

// AddVertex allocates a vertex at position w, assigns it a fresh ID, and
// registers it in insertion order. w is copied so the caller's slice may be
// reused or mutated afterward.
func (g *Graph) AddVertex(w []float64) *Vertex {
	g.muVert.Lock()
	defer g.muVert.Unlock()

	id := nextVertexID(g)
	pos := make([]float64, len(w))
	copy(pos, w)

	v := &Vertex{
		ID:   id,
		W:    pos,
		Comp: NewComponent(),
	}
	g.vertices[id] = v
	g.order = append(g.order, id)

	return v
}

// HasVertex reports whether id names a live vertex.
func (g *Graph) HasVertex(id string) bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	_, ok := g.vertices[id]
	return ok
}

// GetVertex returns the vertex named id, or ErrVertexNotFound.
//
// The returned pointer aliases live graph state; callers may read W/Class/
// etc. directly (the engine single-threads mutation per spec.md §5) but
// must not add to Incident by hand — use AddEdge/RemoveEdge.
func (g *Graph) GetVertex(id string) (*Vertex, error) {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	v, ok := g.vertices[id]
	if !ok {
		return nil, ErrVertexNotFound
	}
	return v, nil
}

// Vertices returns all vertex IDs in insertion order (spec.md §4.G:
// "Iteration over vertices and edges is in insertion order").
func (g *Graph) Vertices() []string {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// VertexCount returns the number of live vertices.
func (g *Graph) VertexCount() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	return len(g.vertices)
}

// RemoveVertex deletes vertex id. Precondition: id has no incident edges
// (spec.md §3 lifecycle, §4.G RemoveVertex precondition). Violating this
// is a programming error: it returns ErrVertexHasEdges rather than
// silently detaching edges, because the engine (not core) decides the
// order in which edges are torn down.
func (g *Graph) RemoveVertex(id string) error {
	g.muVert.Lock()
	defer g.muVert.Unlock()

	v, ok := g.vertices[id]
	if !ok {
		return ErrVertexNotFound
	}
	if len(v.Incident) > 0 {
		return ErrVertexHasEdges
	}

	delete(g.vertices, id)
	for i, vid := range g.order {
		if vid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}

	return nil
}

// Degree returns len(Incident) for id, or an error if id is unknown.
func (g *Graph) Degree(id string) (int, error) {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	v, ok := g.vertices[id]
	if !ok {
		return 0, ErrVertexNotFound
	}
	return len(v.Incident), nil
}
