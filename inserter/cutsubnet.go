package inserter

import "github.com/katalvlaran/gnp/core"

// classifyAndCut implements spec.md §4.I step 7 (planning variant): once
// the graph exceeds warm_start vertices, r is classified via the oracle
// and cut-subnet runs from r. If r ends up isolated, it is deleted and, if
// enabled, two coincident triplets seed a potential new island of r's
// class in its place.
func (ins *Inserter) classifyAndCut(r *core.Vertex, eval func(w []float64) core.Class) error {
	class := eval(r.W)
	if err := ins.cm.SetClass(r, class); err != nil {
		return err
	}
	w := append([]float64(nil), r.W...)

	if err := ins.cutSubnet(r); err != nil {
		return err
	}

	deg, err := ins.g.Degree(r.ID)
	switch {
	case err != nil:
		// r was orphaned and deleted as part of its own flood.
	case deg == 0:
		if delErr := ins.deleteVertex(r.ID); delErr != nil {
			return delErr
		}
	default:
		return nil // r kept at least one edge; nothing to seed
	}

	if ins.seedTriplets {
		return ins.seedCoincidentTriplets(w, class)
	}
	return nil
}

// cutSubnet is a breadth-first flood from r (grounded on
// gridgraph.ConnectedComponents's queue-index BFS idiom) that removes
// every edge crossing a class boundary — an edge whose two endpoints are
// both classified (FREE or OBST) and disagree — and deletes any vertex the
// removal orphans. The flood does not cross a boundary edge it just cut.
func (ins *Inserter) cutSubnet(r *core.Vertex) error {
	visited := map[string]bool{r.ID: true}
	queue := []string{r.ID}

	for qi := 0; qi < len(queue); qi++ {
		id := queue[qi]
		v, err := ins.g.GetVertex(id)
		if err != nil {
			continue // id was deleted earlier in this same flood
		}
		edges, err := ins.g.Neighbors(id)
		if err != nil {
			continue
		}
		for _, e := range edges {
			other := e.Other(id)
			ov, err := ins.g.GetVertex(other)
			if err != nil {
				continue
			}
			if crossesBoundary(v.Class, ov.Class) {
				if _, err := ins.deleteEdgeAndOrphans(e.ID); err != nil {
					return err
				}
				continue // do not flood across a cut edge
			}
			if !visited[other] {
				visited[other] = true
				queue = append(queue, other)
			}
		}
	}
	return nil
}

// crossesBoundary reports whether an edge between vertices of class a and
// b crosses a classification boundary: both are classified and disagree.
func crossesBoundary(a, b core.Class) bool {
	return a != core.None && b != core.None && a != b
}

// seedCoincidentTriplets instantiates two 3-cycles (triangles) of new
// vertices at w, all tagged class, mirroring builder.Star/impl_cycle.go's
// deterministic-topology-constructor discipline: vertices are created in a
// fixed order and edges are emitted in a fixed order, just generalized
// from unit-weight abstract graphs to coincident R^d points.
func (ins *Inserter) seedCoincidentTriplets(w []float64, class core.Class) error {
	for t := 0; t < 2; t++ {
		tri := make([]*core.Vertex, 3)
		for i := range tri {
			pos := make([]float64, len(w))
			copy(pos, w)
			v := ins.g.AddVertex(pos)
			v.NNHandle = ins.nn.Add(v)
			if err := ins.cm.SetClass(v, class); err != nil {
				return err
			}
			ins.eh.Add(v.ID, 0)
			tri[i] = v
		}
		for i := 0; i < 3; i++ {
			a, b := tri[i], tri[(i+1)%3]
			if _, err := ins.g.AddEdge(a.ID, b.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
