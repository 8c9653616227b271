package pathplan

import (
	"github.com/katalvlaran/gnp/classes"
	"github.com/katalvlaran/gnp/core"
	"github.com/katalvlaran/gnp/errheap"
	"github.com/katalvlaran/gnp/nnindex"
	"gonum.org/v1/gonum/floats"
)

// prunePath implements spec.md §4.P step 4: split every overlong segment
// of chain at its midpoint, repeatedly, until each piece is at most h
// long, classifying every new sample via eval. It returns the refined
// vertex-ID sequence and whether the refinement stayed free of new OBST
// samples (a certified path).
func prunePath(g *core.Graph, nn nnindex.Index, cm *classes.Manager, eh *errheap.Heap, chain []string, eval func(w []float64) core.Class, h float64) ([]string, bool, error) {
	if len(chain) < 2 {
		return chain, true, nil
	}

	out := []string{chain[0]}
	valid := true
	for i := 0; i+1 < len(chain); i++ {
		a, err := g.GetVertex(chain[i])
		if err != nil {
			return nil, false, err
		}
		b, err := g.GetVertex(chain[i+1])
		if err != nil {
			return nil, false, err
		}
		e := g.CommonEdge(a.ID, b.ID)

		segIDs, segValid, err := splitSegment(g, nn, cm, eh, a, b, e, eval, h)
		if err != nil {
			return nil, false, err
		}
		if !segValid {
			valid = false
		}
		out = append(out, segIDs...)
	}
	return out, valid, nil
}

// splitSegment recursively bisects a-b at its midpoint until the segment
// length is at most h, classifying each midpoint via eval. It returns the
// IDs from (but excluding) a up to and including b, in order.
func splitSegment(g *core.Graph, nn nnindex.Index, cm *classes.Manager, eh *errheap.Heap, a, b *core.Vertex, e *core.Edge, eval func(w []float64) core.Class, h float64) ([]string, bool, error) {
	dist := floats.Distance(a.W, b.W, 2)
	if dist <= h {
		if e == nil {
			if err := connect(g, a, b); err != nil {
				return nil, false, err
			}
		}
		return []string{b.ID}, true, nil
	}

	if e != nil {
		if _, err := g.RemoveEdge(e.ID); err != nil {
			return nil, false, err
		}
	}

	mid := make([]float64, len(a.W))
	floats.AddTo(mid, a.W, b.W)
	floats.Scale(0.5, mid)
	m := g.AddVertex(mid)
	m.NNHandle = nn.Add(m)
	eh.Add(m.ID, 0)

	class := eval(mid)
	valid := class != core.Obst
	if err := cm.SetClass(m, class); err != nil {
		return nil, false, err
	}

	leftIDs, leftValid, err := splitSegment(g, nn, cm, eh, a, m, nil, eval, h)
	if err != nil {
		return nil, false, err
	}
	rightIDs, rightValid, err := splitSegment(g, nn, cm, eh, m, b, nil, eval, h)
	if err != nil {
		return nil, false, err
	}

	ids := append(leftIDs, rightIDs...)
	return ids, valid && leftValid && rightValid, nil
}
