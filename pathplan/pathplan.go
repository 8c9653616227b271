package pathplan

import (
	"container/heap"
	"errors"
	"math"

	"github.com/katalvlaran/gnp/classes"
	"github.com/katalvlaran/gnp/core"
	"github.com/katalvlaran/gnp/errheap"
	"github.com/katalvlaran/gnp/nnindex"
	"gonum.org/v1/gonum/floats"
)

// FindPath implements spec.md §4.P: materialize temporary FREE vertices at
// start and goal, run Dijkstra over the FREE/admissible-NONE subgraph, and
// certify the result via prunePath. eval classifies a candidate position;
// it is called once per refinement sample (never memoized across calls,
// since each sample is a distinct position).
func FindPath(g *core.Graph, nn nnindex.Index, cm *classes.Manager, eh *errheap.Heap, startW, goalW []float64, eval func(w []float64) core.Class, opts ...Option) (*Path, error) {
	if len(startW) == 0 || len(startW) != len(goalW) {
		return nil, ErrDimMismatch
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	computeDepths(g)

	s := materializeVertex(g, nn, cm, eh, startW)
	connectNearest(g, nn, s)

	gl := materializeVertex(g, nn, cm, eh, goalW)
	connectNearest(g, nn, gl)

	dist, prev, err := runDijkstra(g, cfg.MaxDepthFree, s.ID, gl.ID)
	if err != nil {
		return nil, err
	}
	if math.IsInf(dist[gl.ID], 1) {
		return nil, ErrNoPath
	}

	chain := reconstruct(prev, s.ID, gl.ID)

	refined, valid, err := prunePath(g, nn, cm, eh, chain, eval, cfg.H)
	if err != nil {
		return nil, err
	}

	compressComponents(g, refined)

	return &Path{Vertices: refined, Valid: valid}, nil
}

// materializeVertex adds a fixed FREE vertex at w, wiring it into the
// NN-index and error heap the same way the inserter seeds new vertices.
func materializeVertex(g *core.Graph, nn nnindex.Index, cm *classes.Manager, eh *errheap.Heap, w []float64) *core.Vertex {
	v := g.AddVertex(w)
	_ = cm.SetClass(v, core.Free)
	v.NNHandle = nn.Add(v)
	eh.Add(v.ID, 0)
	return v
}

// connectNearest wires v to its two nearest existing vertices (spec.md
// §4.P step 1). Per spec.md §4.P failure semantics, an index that cannot
// produce candidates (empty, or k out of range) aborts this step silently
// rather than failing the whole query — v may simply end up with no
// connections and Dijkstra will report it unreachable.
func connectNearest(g *core.Graph, nn nnindex.Index, v *core.Vertex) {
	// v is taken out of the index for the query so that it does not occupy
	// one of the two nearest slots itself.
	if v.NNHandle != nil {
		_ = nn.Remove(v.NNHandle)
	}
	pts, err := nn.Nearest(v.W, 2)
	v.NNHandle = nn.Add(v)
	if err != nil {
		return
	}
	for _, p := range pts {
		if p.Ident() == v.ID {
			continue
		}
		other, err := g.GetVertex(p.Ident())
		if err != nil {
			continue
		}
		_ = connect(g, v, other)
	}
}

// connect creates an edge a-b, evicting the longest incident edge of
// either endpoint first if it is already at the degree cap — the same
// discipline learner.connectOrRefresh and inserter.connect use.
func connect(g *core.Graph, a, b *core.Vertex) error {
	_, err := g.AddEdge(a.ID, b.ID)
	if errors.Is(err, core.ErrDegreeCap) {
		if evictErr := evictLongestIncident(g, a); evictErr != nil {
			return evictErr
		}
		if evictErr := evictLongestIncident(g, b); evictErr != nil {
			return evictErr
		}
		_, err = g.AddEdge(a.ID, b.ID)
	}
	if errors.Is(err, core.ErrDuplicateEdge) || errors.Is(err, core.ErrSelfLoop) {
		return nil
	}
	return err
}

func evictLongestIncident(g *core.Graph, v *core.Vertex) error {
	e, err := g.LongestIncidentEdge(v.ID, func(a, b string) float64 { return vertexDist(g, a, b) })
	if err != nil {
		return err
	}
	if e == nil {
		return nil
	}
	_, err = g.RemoveEdge(e.ID)
	return err
}

func vertexDist(g *core.Graph, a, b string) float64 {
	va, errA := g.GetVertex(a)
	vb, errB := g.GetVertex(b)
	if errA != nil || errB != nil {
		return 0
	}
	return floats.Distance(va.W, vb.W, 2)
}

// admissible reports whether v may be traversed by Dijkstra: FREE always
// is, NONE is only within maxDepthFree hops of the nearest FREE vertex
// (per the Depth computeDepths just refreshed), OBST never is.
func admissible(v *core.Vertex, maxDepthFree int) bool {
	switch v.Class {
	case core.Free:
		return true
	case core.None:
		return v.Depth <= maxDepthFree
	default:
		return false
	}
}

// computeDepths runs a multi-source BFS from every FREE vertex (grounded
// on the same gridgraph.ConnectedComponents queue-index idiom cutSubnet
// uses) and records, in each NONE vertex's Depth field, its hop distance
// to the nearest FREE vertex without crossing an OBST vertex. NONE
// vertices unreachable from any FREE vertex are left at a sentinel depth
// so they read as inadmissible regardless of MaxDepthFree.
func computeDepths(g *core.Graph) {
	const unreached = math.MaxInt32

	visited := make(map[string]bool)
	queue := make([]string, 0)
	for _, id := range g.Vertices() {
		v, _ := g.GetVertex(id)
		switch v.Class {
		case core.Free:
			v.Depth = 0
			visited[id] = true
			queue = append(queue, id)
		case core.None:
			v.Depth = unreached
		}
	}

	for qi := 0; qi < len(queue); qi++ {
		id := queue[qi]
		v, err := g.GetVertex(id)
		if err != nil {
			continue
		}
		edges, err := g.Neighbors(id)
		if err != nil {
			continue
		}
		for _, e := range edges {
			other := e.Other(id)
			if visited[other] {
				continue
			}
			ov, err := g.GetVertex(other)
			if err != nil || ov.Class == core.Obst {
				continue
			}
			if ov.Class == core.None {
				ov.Depth = v.Depth + 1
			}
			visited[other] = true
			queue = append(queue, other)
		}
	}
}

// runDijkstra computes shortest Euclidean-distance paths from source,
// restricted to the subgraph admissible(v, maxDepthFree) == true.
func runDijkstra(g *core.Graph, maxDepthFree int, source, goal string) (map[string]float64, map[string]string, error) {
	ids := g.Vertices()
	adm := make(map[string]bool, len(ids))
	for _, id := range ids {
		v, err := g.GetVertex(id)
		if err != nil {
			continue
		}
		if admissible(v, maxDepthFree) {
			adm[id] = true
		}
	}

	// Upfront validation pass, generalizing dijkstra.Dijkstra's negative-
	// weight prescan: a NaN distance (malformed position) fails fast
	// instead of quietly producing a NaN-contaminated shortest path.
	for _, e := range g.Edges() {
		if !adm[e.U] || !adm[e.V] {
			continue
		}
		if math.IsNaN(vertexDist(g, e.U, e.V)) {
			return nil, nil, ErrBadWeight
		}
	}

	dist := make(map[string]float64, len(adm))
	prev := make(map[string]string, len(adm))
	visited := make(map[string]bool, len(adm))
	for id := range adm {
		dist[id] = math.Inf(1)
	}
	dist[source] = 0

	pq := make(nodePQ, 0, len(adm))
	heap.Init(&pq)
	heap.Push(&pq, &nodeItem{id: source, dist: 0})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*nodeItem)
		u, d := item.id, item.dist
		if visited[u] {
			continue
		}
		visited[u] = true
		if u == goal {
			break
		}

		edges, err := g.Neighbors(u)
		if err != nil {
			continue
		}
		for _, e := range edges {
			other := e.Other(u)
			if !adm[other] || visited[other] {
				continue
			}
			newDist := d + vertexDist(g, u, other)
			if newDist >= dist[other] {
				continue
			}
			dist[other] = newDist
			prev[other] = u
			heap.Push(&pq, &nodeItem{id: other, dist: newDist})
		}
	}

	return dist, prev, nil
}

// reconstruct walks prev backward from goal to source and returns the
// path in forward order.
func reconstruct(prev map[string]string, source, goal string) []string {
	chain := []string{goal}
	cur := goal
	for cur != source {
		p, ok := prev[cur]
		if !ok {
			return nil
		}
		chain = append(chain, p)
		cur = p
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// compressComponents implements spec.md §4.P step 5: for every consecutive
// pair of FREE vertices on the certified chain, union their components so
// future same-component checks need no graph traversal.
func compressComponents(g *core.Graph, chain []string) {
	for i := 0; i+1 < len(chain); i++ {
		a, errA := g.GetVertex(chain[i])
		b, errB := g.GetVertex(chain[i+1])
		if errA != nil || errB != nil {
			continue
		}
		if a.Class == core.Free && b.Class == core.Free {
			core.Union(a.Comp, b.Comp)
		}
	}
}
