package core

// CommonNeighbors returns the IDs of vertices adjacent to both u and v
// (excluding u and v themselves). Used by the learner for the Thales
// refinement and triangulation-cleanup steps (spec.md §4.L steps 3-4).
func (g *Graph) CommonNeighbors(u, v string) ([]string, error) {
	nu, err := g.NeighborIDs(u)
	if err != nil {
		return nil, err
	}
	nv, err := g.NeighborIDs(v)
	if err != nil {
		return nil, err
	}

	inNV := make(map[string]struct{}, len(nv))
	for _, id := range nv {
		inNV[id] = struct{}{}
	}

	var out []string
	for _, id := range nu {
		if id == v || id == u {
			continue
		}
		if _, ok := inNV[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

// LongestIncidentEdge returns the incident edge of id whose other endpoint
// is farthest from id under the supplied distance function, or nil if id
// has no incident edges. Used by the learner to evict an edge before
// creating a new one would exceed r_max (spec.md §4.L step 2).
func (g *Graph) LongestIncidentEdge(id string, dist func(a, b string) float64) (*Edge, error) {
	edges, err := g.Neighbors(id)
	if err != nil {
		return nil, err
	}
	if len(edges) == 0 {
		return nil, nil
	}
	best := edges[0]
	bestDist := dist(id, best.Other(id))
	for _, e := range edges[1:] {
		d := dist(id, e.Other(id))
		if d > bestDist {
			best, bestDist = e, d
		}
	}
	return best, nil
}

// Ident satisfies nnindex.Point.
func (v *Vertex) Ident() string { return v.ID }

// Position satisfies nnindex.Point.
func (v *Vertex) Position() []float64 { return v.W }

// SetPosition overwrites v.W in place (same length required). The engine
// uses this for the learner's "move toward input signal" step, then
// notifies the NN-index via nnindex.Index.Update.
func (v *Vertex) SetPosition(w []float64) {
	copy(v.W, w)
}
