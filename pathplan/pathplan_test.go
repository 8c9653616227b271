package pathplan_test

import (
	"testing"

	"github.com/katalvlaran/gnp/classes"
	"github.com/katalvlaran/gnp/core"
	"github.com/katalvlaran/gnp/errheap"
	"github.com/katalvlaran/gnp/nnindex"
	"github.com/katalvlaran/gnp/pathplan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T) (*core.Graph, nnindex.Index, *classes.Manager, *errheap.Heap) {
	t.Helper()
	g := core.NewGraph()
	nn := nnindex.NewLinear()
	cm := classes.NewManager()
	eh := errheap.New()
	return g, nn, cm, eh
}

func allFree(w []float64) core.Class { return core.Free }

func TestFindPath_EmptyMapUnitSquare(t *testing.T) {
	g, nn, cm, eh := seed(t)

	start := []float64{0.1, 0.1}
	goal := []float64{0.9, 0.9}

	path, err := pathplan.FindPath(g, nn, cm, eh, start, goal, func(w []float64) core.Class { return core.Free },
		pathplan.WithRefinementStep(0.2), pathplan.WithMaxDepthFree(5))
	require.NoError(t, err)
	require.NotNil(t, path)
	assert.True(t, path.Valid)
	require.GreaterOrEqual(t, len(path.Vertices), 2)

	first, err := g.GetVertex(path.Vertices[0])
	require.NoError(t, err)
	assert.InDeltaSlice(t, start, first.W, 1e-9)

	last, err := g.GetVertex(path.Vertices[len(path.Vertices)-1])
	require.NoError(t, err)
	assert.InDeltaSlice(t, goal, last.W, 1e-9)

	for i := 0; i+1 < len(path.Vertices); i++ {
		a, err := g.GetVertex(path.Vertices[i])
		require.NoError(t, err)
		b, err := g.GetVertex(path.Vertices[i+1])
		require.NoError(t, err)
		d := 0.0
		for k := range a.W {
			diff := a.W[k] - b.W[k]
			d += diff * diff
		}
		assert.LessOrEqual(t, d, 0.2*0.2+1e-9)
	}
}

func TestFindPath_NoRouteAcrossImpassableWall(t *testing.T) {
	g, nn, cm, eh := seed(t)

	// Two isolated FREE vertices on either side of an obstacle wall, with
	// no edge connecting them and no other graph to route through: start
	// and goal each connect to their own side and to the OBST wall vertex,
	// which Dijkstra never traverses, so no path exists.
	left := g.AddVertex([]float64{0, 0})
	require.NoError(t, cm.SetClass(left, core.Free))
	left.NNHandle = nn.Add(left)
	eh.Add(left.ID, 0)

	right := g.AddVertex([]float64{10, 10})
	require.NoError(t, cm.SetClass(right, core.Free))
	right.NNHandle = nn.Add(right)
	eh.Add(right.ID, 0)

	wall := g.AddVertex([]float64{5, 5})
	require.NoError(t, cm.SetClass(wall, core.Obst))
	wall.NNHandle = nn.Add(wall)
	eh.Add(wall.ID, 0)

	_, err := pathplan.FindPath(g, nn, cm, eh, []float64{0, 0.01}, []float64{10, 10.01}, allFree,
		pathplan.WithMaxDepthFree(0))
	assert.ErrorIs(t, err, pathplan.ErrNoPath)
}

func TestFindPath_DimMismatch(t *testing.T) {
	g, nn, cm, eh := seed(t)
	_, err := pathplan.FindPath(g, nn, cm, eh, []float64{0, 0}, []float64{1, 1, 1}, allFree)
	assert.ErrorIs(t, err, pathplan.ErrDimMismatch)
}

func TestFindPath_RefinementDetectsObstacleMidSegment(t *testing.T) {
	g, nn, cm, eh := seed(t)

	a := g.AddVertex([]float64{0, 0})
	require.NoError(t, cm.SetClass(a, core.Free))
	a.NNHandle = nn.Add(a)
	eh.Add(a.ID, 0)

	b := g.AddVertex([]float64{1, 0})
	require.NoError(t, cm.SetClass(b, core.Free))
	b.NNHandle = nn.Add(b)
	eh.Add(b.ID, 0)

	_, err := g.AddEdge(a.ID, b.ID)
	require.NoError(t, err)

	calls := 0
	eval := func(w []float64) core.Class {
		calls++
		if w[0] > 0.4 && w[0] < 0.6 {
			return core.Obst
		}
		return core.Free
	}

	path, err := pathplan.FindPath(g, nn, cm, eh, []float64{0, 0}, []float64{1, 0}, eval,
		pathplan.WithRefinementStep(0.3), pathplan.WithMaxDepthFree(5))
	require.NoError(t, err)
	assert.False(t, path.Valid, "a midpoint near x=0.5 should be classified OBST")
	assert.Greater(t, calls, 0)
}
