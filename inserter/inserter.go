// Package inserter implements the periodic growth step (spec.md §4.I):
// every λ steps, split the edge between the two highest-error neighbours
// and, in the planning variant, run cut-subnet to keep class-homogeneous
// regions from merging across a classification boundary.
package inserter

import (
	"errors"

	"github.com/katalvlaran/gnp/classes"
	"github.com/katalvlaran/gnp/core"
	"github.com/katalvlaran/gnp/errheap"
	"github.com/katalvlaran/gnp/nnindex"
	"gonum.org/v1/gonum/floats"
)

// ErrHeapEmpty is returned by Insert when the error heap has no vertex to
// split from — the graph has fewer than two connected vertices.
var ErrHeapEmpty = errors.New("inserter: no vertex with a neighbour available to split")

// Option configures an Inserter at construction time.
type Option func(*Inserter)

// WithAlpha sets the error-decay factor α applied to q and f on insertion
// (spec.md §4.I step 6). Default 0.5.
func WithAlpha(alpha float64) Option {
	return func(ins *Inserter) { ins.alpha = alpha }
}

// WithWarmStart sets the vertex-count threshold beyond which newly
// inserted vertices are classified and cut-subnet runs (spec.md §4.I
// step 7). Default 0 disables the planning-variant behavior.
func WithWarmStart(n int) Option {
	return func(ins *Inserter) { ins.warmStart = n }
}

// WithSeedTriplets enables the "two coincident triplets" heuristic
// (spec.md §9 open question 2) when cut-subnet leaves the newly inserted
// vertex isolated.
func WithSeedTriplets(enabled bool) Option {
	return func(ins *Inserter) { ins.seedTriplets = enabled }
}

// Inserter owns no state beyond its tuning parameters; all mutable state
// lives in the shared Graph, NN-index, class manager and error heap.
type Inserter struct {
	g  *core.Graph
	nn nnindex.Index
	cm *classes.Manager
	eh *errheap.Heap

	alpha        float64
	warmStart    int
	seedTriplets bool
}

// New constructs an Inserter over the given collaborators.
func New(g *core.Graph, nn nnindex.Index, cm *classes.Manager, eh *errheap.Heap, opts ...Option) *Inserter {
	ins := &Inserter{g: g, nn: nn, cm: cm, eh: eh, alpha: 0.5}
	for _, opt := range opts {
		opt(ins)
	}
	return ins
}

// Insert runs one periodic-growth cycle (spec.md §4.I steps 1-7). eval
// classifies a candidate position; it is only called (and only matters)
// once the graph has grown past WithWarmStart.
func (ins *Inserter) Insert(eval func(w []float64) core.Class) error {
	qID, _, err := ins.eh.Max()
	if err != nil {
		return ErrHeapEmpty
	}
	q, err := ins.g.GetVertex(qID)
	if err != nil {
		return err
	}

	f, err := ins.maxErrNeighbor(q)
	if err != nil {
		return err
	}
	if f == nil {
		return ErrHeapEmpty // q has no neighbours to split against
	}

	// q and f are reconnected through r below, so an endpoint this removal
	// leaves isolated is kept rather than deleted.
	if e := ins.g.CommonEdge(q.ID, f.ID); e != nil {
		if _, err := ins.g.RemoveEdge(e.ID); err != nil {
			return err
		}
	}

	mid := make([]float64, len(q.W))
	floats.AddTo(mid, q.W, f.W)
	floats.Scale(0.5, mid)
	r := ins.g.AddVertex(mid)
	r.NNHandle = ins.nn.Add(r)

	if err := ins.connect(r, q); err != nil {
		return err
	}
	if err := ins.connect(r, f); err != nil {
		return err
	}

	q.Err *= ins.alpha
	f.Err *= ins.alpha
	ins.eh.UpdateKey(q.ID, q.Err)
	ins.eh.UpdateKey(f.ID, f.Err)
	r.Err = (q.Err + f.Err) / 2
	ins.eh.Add(r.ID, r.Err)

	if ins.warmStart > 0 && ins.g.VertexCount() > ins.warmStart && eval != nil {
		return ins.classifyAndCut(r, eval)
	}
	return nil
}

// maxErrNeighbor returns q's neighbour with the largest Err, or nil if q
// has no neighbours.
func (ins *Inserter) maxErrNeighbor(q *core.Vertex) (*core.Vertex, error) {
	neighborIDs, err := ins.g.NeighborIDs(q.ID)
	if err != nil {
		return nil, err
	}
	var best *core.Vertex
	for _, id := range neighborIDs {
		v, err := ins.g.GetVertex(id)
		if err != nil {
			continue
		}
		if best == nil || v.Err > best.Err {
			best = v
		}
	}
	return best, nil
}

// connect creates an edge a-b, evicting a's or b's longest incident edge
// first if either is already at the degree cap — the same eviction
// discipline learner.connectOrRefresh uses for the same reason.
func (ins *Inserter) connect(a, b *core.Vertex) error {
	_, err := ins.g.AddEdge(a.ID, b.ID)
	if errors.Is(err, core.ErrDegreeCap) {
		if evictErr := ins.evictLongestIncident(a); evictErr != nil {
			return evictErr
		}
		if evictErr := ins.evictLongestIncident(b); evictErr != nil {
			return evictErr
		}
		_, err = ins.g.AddEdge(a.ID, b.ID)
	}
	return err
}

func (ins *Inserter) evictLongestIncident(v *core.Vertex) error {
	e, err := ins.g.LongestIncidentEdge(v.ID, ins.vertexDist)
	if err != nil {
		return err
	}
	if e == nil {
		return nil
	}
	_, err = ins.deleteEdgeAndOrphans(e.ID)
	return err
}

func (ins *Inserter) vertexDist(a, b string) float64 {
	va, errA := ins.g.GetVertex(a)
	vb, errB := ins.g.GetVertex(b)
	if errA != nil || errB != nil {
		return 0
	}
	return floats.Distance(va.W, vb.W, 2)
}

// deleteEdgeAndOrphans removes eid and deletes any endpoint the removal
// isolates, unwinding it from the NN-index, error heap and class manager.
func (ins *Inserter) deleteEdgeAndOrphans(eid string) ([]string, error) {
	orphaned, err := ins.g.RemoveEdge(eid)
	if err != nil {
		return nil, err
	}
	for _, id := range orphaned {
		if err := ins.deleteVertex(id); err != nil {
			return nil, err
		}
	}
	return orphaned, nil
}

func (ins *Inserter) deleteVertex(id string) error {
	v, err := ins.g.GetVertex(id)
	if err != nil {
		return err
	}
	if v.NNHandle != nil {
		_ = ins.nn.Remove(v.NNHandle)
	}
	ins.eh.Remove(id)
	if ins.cm.IsTracked(id) {
		_ = ins.cm.SetClass(v, core.None)
	}
	return ins.g.RemoveVertex(id)
}
