package learner

import (
	"github.com/katalvlaran/gnp/core"
	"gonum.org/v1/gonum/floats"
)

// thalesEpsilon tolerates float roundoff around the degenerate case where m
// sits exactly on the diametral circle (angle exactly π/2, dot exactly 0):
// per spec.md §7's numerical-degeneracy guidance, a near-zero dot rounds to
// "obtuse" rather than being left to coin-flip on floating-point noise.
const thalesEpsilon = 1e-9

// thalesRefine implements spec.md §4.L step 3: for every common neighbour m
// of n1 and n2, the angle ∠(n1, m, n2) is obtuse — meaning m lies at or
// inside the circle with diameter n1-n2, so n1-n2 cannot be a Delaunay
// edge of the current point set — iff the vectors m→n1 and m→n2 have a
// non-positive dot product. This avoids an acos call entirely and
// generalizes Thales' theorem to R^d, since the obtuse-angle criterion is
// dimension-free (see SPEC_FULL.md).
func (l *Learner) thalesRefine(n1, n2 *core.Vertex, commonNeighbors []string) error {
	if len(commonNeighbors) == 0 {
		return nil
	}
	e := l.g.CommonEdge(n1.ID, n2.ID)
	if e == nil {
		return nil
	}

	toN1 := make([]float64, len(n1.W))
	toN2 := make([]float64, len(n1.W))
	for _, mid := range commonNeighbors {
		m, err := l.g.GetVertex(mid)
		if err != nil {
			continue
		}
		floats.SubTo(toN1, n1.W, m.W)
		floats.SubTo(toN2, n2.W, m.W)
		if floats.Dot(toN1, toN2) < thalesEpsilon {
			return l.deleteEdgeAndOrphans(e.ID)
		}
	}
	return nil
}

// triangulationCleanup implements spec.md §4.L step 4: every edge between
// two common neighbours of n1 and n2 is removed, preventing crossing edges
// in the 2-D case and generalizing to a Gabriel-graph-style pruning in
// higher dimensions.
func (l *Learner) triangulationCleanup(commonNeighbors []string) error {
	for i := 0; i < len(commonNeighbors); i++ {
		for j := i + 1; j < len(commonNeighbors); j++ {
			e := l.g.CommonEdge(commonNeighbors[i], commonNeighbors[j])
			if e == nil {
				continue
			}
			if err := l.deleteEdgeAndOrphans(e.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// emitFaces implements the optional surface variant's face-emission step
// (spec.md §4.L step 5): up to two triangular faces on {n1, n2, m_k} for
// the first two common neighbours. Faces carry no normal/orientation,
// only triangle topology.
func (l *Learner) emitFaces(n1, n2 *core.Vertex, commonNeighbors []string) {
	limit := len(commonNeighbors)
	if limit > 2 {
		limit = 2
	}
	for i := 0; i < limit; i++ {
		l.g.AddFace(n1.ID, n2.ID, commonNeighbors[i])
	}
}
