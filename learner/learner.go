package learner

import (
	"errors"
	"math"

	"github.com/katalvlaran/gnp/classes"
	"github.com/katalvlaran/gnp/core"
	"github.com/katalvlaran/gnp/errheap"
	"github.com/katalvlaran/gnp/nnindex"
	"gonum.org/v1/gonum/floats"
)

// EvalFunc classifies a position in R^d, mirroring oracle.Ops.Eval's
// signature without importing the oracle package (learner and oracle are
// independent leaves; gnp wires them together).
type EvalFunc func(w []float64) core.Class

// Learner runs the ECHL step (spec.md §4.L) over a shared graph, NN-index,
// class manager and error heap. It owns no state those collaborators don't
// already own; epoch and the β-power tables are the only learner-local
// bookkeeping.
type Learner struct {
	g  *core.Graph
	nn nnindex.Index
	cm *classes.Manager
	eh *errheap.Heap

	epsW, epsN   float64
	beta         float64
	ageMax       int
	lambda       int
	hSq          float64
	faceEmission bool

	epoch int64

	betaTable       []float64 // betaTable[k] = beta^k, k in [0, lambda]
	betaLambdaTable []float64 // betaLambdaTable[k] = beta^(lambda*k), k in [0, 1000]
}

// New constructs a Learner over the given collaborators with sane defaults
// (ε_w=0.1, ε_n=0.01, β=0.999, ageMax=50, λ=100), overridden by opts.
func New(g *core.Graph, nn nnindex.Index, cm *classes.Manager, eh *errheap.Heap, opts ...Option) *Learner {
	l := &Learner{
		g: g, nn: nn, cm: cm, eh: eh,
		epsW: 0.1, epsN: 0.01, beta: 0.999, ageMax: 50, lambda: 100,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.rebuildBetaTables()
	return l
}

// Step runs one ECHL iteration for input signal xi (spec.md §4.L).
// eval is the oracle's classification callback; it is invoked at most once
// per step (memoized locally) even if the tie-break path consults it more
// than once.
func (l *Learner) Step(xi []float64, eval EvalFunc) error {
	l.epoch++

	if l.withinObstacleRadius(xi) {
		return nil // obstacle repulsion: skip the step entirely
	}

	cands, err := l.nn.Nearest(xi, 2)
	if err != nil || len(cands) < 2 {
		// Oracle malfunction per spec.md §7: log once, abort this step only.
		logger.Printf("learner: NN returned %d candidates (want 2): %v", len(cands), err)
		return nil
	}
	n1, ok1 := cands[0].(*core.Vertex)
	n2, ok2 := cands[1].(*core.Vertex)
	if !ok1 || !ok2 {
		logger.Printf("learner: NN candidates are not *core.Vertex")
		return nil
	}

	if err := l.connectOrRefresh(n1, n2); err != nil {
		return err
	}

	commonNeighbors, err := l.g.CommonNeighbors(n1.ID, n2.ID)
	if err != nil {
		return err
	}
	if err := l.thalesRefine(n1, n2, commonNeighbors); err != nil {
		return err
	}
	if err := l.triangulationCleanup(commonNeighbors); err != nil {
		return err
	}
	if l.faceEmission {
		l.emitFaces(n1, n2, commonNeighbors)
	}

	var memo *core.Class
	winner := l.selectWinner(n1, n2, xi, eval, &memo)
	if err := l.move(winner, xi); err != nil {
		return err
	}

	l.accumulateError(n1, xi)

	return l.ageAndPrune(n1)
}

// withinObstacleRadius reports whether xi lies within h of any tracked
// OBST vertex (spec.md §4.L obstacle repulsion edge case).
func (l *Learner) withinObstacleRadius(xi []float64) bool {
	if l.hSq <= 0 {
		return false
	}
	for _, id := range l.cm.Obst() {
		v, err := l.g.GetVertex(id)
		if err != nil {
			continue
		}
		if sqDist(xi, v.W) <= l.hSq {
			return true
		}
	}
	return false
}

// connectOrRefresh implements spec.md §4.L step 2: refresh the existing
// n1-n2 edge's age, or create one if the two winners are in compatible
// sets, evicting the longest incident edge of either endpoint first if
// needed to respect r_max.
func (l *Learner) connectOrRefresh(n1, n2 *core.Vertex) error {
	if e := l.g.CommonEdge(n1.ID, n2.ID); e != nil {
		e.Age = 0
		return nil
	}
	if !compatibleSets(n1.Class, n2.Class) {
		return nil
	}

	_, err := l.g.AddEdge(n1.ID, n2.ID)
	if errors.Is(err, core.ErrDegreeCap) {
		if evictErr := l.evictLongestIncident(n1); evictErr != nil {
			return evictErr
		}
		if evictErr := l.evictLongestIncident(n2); evictErr != nil {
			return evictErr
		}
		_, err = l.g.AddEdge(n1.ID, n2.ID)
	}
	if err != nil && !errors.Is(err, core.ErrDuplicateEdge) {
		return err
	}
	return nil
}

// compatibleSets reports whether two classes may be connected directly
// (spec.md §4.L step 2: both NONE, both the same classified set, or
// either is NONE).
func compatibleSets(a, b core.Class) bool {
	return a == core.None || b == core.None || a == b
}

// evictLongestIncident removes v's longest incident edge (by endpoint
// distance) to make room under r_max, deleting any endpoint the removal
// orphans. It is a no-op if v has no incident edges.
func (l *Learner) evictLongestIncident(v *core.Vertex) error {
	e, err := l.g.LongestIncidentEdge(v.ID, l.vertexDist)
	if err != nil {
		return err
	}
	if e == nil {
		return nil
	}
	return l.deleteEdgeAndOrphans(e.ID)
}

// deleteEdgeAndOrphans removes eid and evicts any endpoint that the
// removal leaves isolated, unwinding that vertex from the NN-index, the
// error heap, and the class manager.
func (l *Learner) deleteEdgeAndOrphans(eid string) error {
	orphaned, err := l.g.RemoveEdge(eid)
	if err != nil {
		return err
	}
	for _, id := range orphaned {
		if err := l.deleteVertex(id); err != nil {
			return err
		}
	}
	return nil
}

func (l *Learner) deleteVertex(id string) error {
	v, err := l.g.GetVertex(id)
	if err != nil {
		return err
	}
	if v.NNHandle != nil {
		_ = l.nn.Remove(v.NNHandle)
	}
	l.eh.Remove(id)
	if l.cm.IsTracked(id) {
		_ = l.cm.SetClass(v, core.None)
	}
	return l.g.RemoveVertex(id)
}

// vertexDist is the Euclidean distance between two vertices' current
// positions, via gonum/floats — the assumed R^d arithmetic collaborator
// (spec.md §1).
func (l *Learner) vertexDist(a, b string) float64 {
	va, errA := l.g.GetVertex(a)
	vb, errB := l.g.GetVertex(b)
	if errA != nil || errB != nil {
		return math.Inf(1)
	}
	return floats.Distance(va.W, vb.W, 2)
}

func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

// selectWinner applies the tie-break rule (spec.md §4.L edge cases):
// when n1 and n2 carry different, both-classified sets, the vertex whose
// class matches the oracle's classification of xi is moved instead of the
// default n1. eval is called at most once per step; memo caches the result.
func (l *Learner) selectWinner(n1, n2 *core.Vertex, xi []float64, eval EvalFunc, memo **core.Class) *core.Vertex {
	if n1.Class == core.None || n2.Class == core.None || n1.Class == n2.Class {
		return n1
	}
	if *memo == nil && eval != nil {
		c := eval(xi)
		*memo = &c
	}
	if *memo != nil && **memo == n2.Class {
		return n2
	}
	return n1
}

// move implements spec.md §4.L step 6: the winner steps toward xi by
// ε_w, its unfixed neighbours by ε_n; the NN-index is updated for every
// vertex that actually moved.
func (l *Learner) move(winner *core.Vertex, xi []float64) error {
	if !winner.Fixed {
		stepToward(winner.W, xi, l.epsW)
		if winner.NNHandle != nil {
			if err := l.nn.Update(winner.NNHandle); err != nil {
				return err
			}
		}
	}

	neighborIDs, err := l.g.NeighborIDs(winner.ID)
	if err != nil {
		return err
	}
	for _, id := range neighborIDs {
		m, err := l.g.GetVertex(id)
		if err != nil || m.Fixed {
			continue
		}
		stepToward(m.W, xi, l.epsN)
		if m.NNHandle != nil {
			if err := l.nn.Update(m.NNHandle); err != nil {
				return err
			}
		}
	}
	return nil
}

// stepToward moves w in place by eps toward xi: w += eps*(xi - w).
func stepToward(w, xi []float64, eps float64) {
	delta := make([]float64, len(w))
	floats.SubTo(delta, xi, w)
	floats.Scale(eps, delta)
	floats.Add(w, delta)
}

// accumulateError implements spec.md §4.L step 7 via lazy β-decay
// (spec.md §9): n1.err is only ever materialized when read or written.
func (l *Learner) accumulateError(n1 *core.Vertex, xi []float64) {
	delta := l.epoch - n1.ErrEpoch
	n1.Err = l.betaPow(delta)*n1.Err + sqDist(xi, n1.W)
	n1.ErrEpoch = l.epoch
	l.eh.UpdateKey(n1.ID, n1.Err)
}

// ageAndPrune implements spec.md §4.L step 8: every edge incident to n1
// ages by one; edges beyond ageMax are deleted, and any endpoint the
// deletion orphans is deleted too.
func (l *Learner) ageAndPrune(n1 *core.Vertex) error {
	edges, err := l.g.Neighbors(n1.ID)
	if err != nil {
		return err
	}
	stale := make([]string, 0, len(edges))
	for _, e := range edges {
		e.Age++
		if e.Age > l.ageMax {
			stale = append(stale, e.ID)
		}
	}
	for _, eid := range stale {
		if err := l.deleteEdgeAndOrphans(eid); err != nil {
			return err
		}
	}
	return nil
}
