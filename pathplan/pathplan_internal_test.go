package pathplan

import (
	"math"
	"testing"

	"github.com/katalvlaran/gnp/classes"
	"github.com/katalvlaran/gnp/core"
	"github.com/katalvlaran/gnp/errheap"
	"github.com/katalvlaran/gnp/nnindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDepths_PropagatesFromFreeStoppingAtObst(t *testing.T) {
	g := core.NewGraph()
	cm := classes.NewManager()

	free := g.AddVertex([]float64{0, 0})
	require.NoError(t, cm.SetClass(free, core.Free))

	near := g.AddVertex([]float64{1, 0})
	far := g.AddVertex([]float64{2, 0})
	beyondObst := g.AddVertex([]float64{3, 0})
	obst := g.AddVertex([]float64{2.5, 0})
	require.NoError(t, cm.SetClass(obst, core.Obst))

	_, err := g.AddEdge(free.ID, near.ID)
	require.NoError(t, err)
	_, err = g.AddEdge(near.ID, far.ID)
	require.NoError(t, err)
	_, err = g.AddEdge(far.ID, obst.ID)
	require.NoError(t, err)
	_, err = g.AddEdge(obst.ID, beyondObst.ID)
	require.NoError(t, err)

	computeDepths(g)

	assert.Equal(t, 0, free.Depth)
	assert.Equal(t, 1, near.Depth)
	assert.Equal(t, 2, far.Depth)
	assert.Equal(t, math.MaxInt32, beyondObst.Depth, "depth must not propagate through an OBST vertex")
}

func TestAdmissible_ClassAndDepthRules(t *testing.T) {
	free := &core.Vertex{Class: core.Free, Depth: 99}
	assert.True(t, admissible(free, 0))

	noneClose := &core.Vertex{Class: core.None, Depth: 1}
	assert.True(t, admissible(noneClose, 1))
	assert.False(t, admissible(noneClose, 0))

	obst := &core.Vertex{Class: core.Obst, Depth: 0}
	assert.False(t, admissible(obst, 1000))
}

func TestSplitSegment_RecursesUntilWithinH(t *testing.T) {
	g := core.NewGraph()
	nn := nnindex.NewLinear()
	cm := classes.NewManager()
	eh := errheap.New()

	a := g.AddVertex([]float64{0, 0})
	require.NoError(t, cm.SetClass(a, core.Free))
	a.NNHandle = nn.Add(a)
	eh.Add(a.ID, 0)

	b := g.AddVertex([]float64{1, 0})
	require.NoError(t, cm.SetClass(b, core.Free))
	b.NNHandle = nn.Add(b)
	eh.Add(b.ID, 0)

	e, err := g.AddEdge(a.ID, b.ID)
	require.NoError(t, err)

	ids, valid, err := splitSegment(g, nn, cm, eh, a, b, e, func([]float64) core.Class { return core.Free }, 0.3)
	require.NoError(t, err)
	assert.True(t, valid)
	require.NotEmpty(t, ids)
	assert.Equal(t, b.ID, ids[len(ids)-1])

	prevID := a.ID
	for _, id := range ids {
		pv, err := g.GetVertex(prevID)
		require.NoError(t, err)
		cv, err := g.GetVertex(id)
		require.NoError(t, err)
		d := 0.0
		for k := range pv.W {
			diff := pv.W[k] - cv.W[k]
			d += diff * diff
		}
		assert.LessOrEqual(t, math.Sqrt(d), 0.3+1e-9)
		prevID = id
	}
}

func TestReconstruct_WalksPrevBackToForwardOrder(t *testing.T) {
	prev := map[string]string{"b": "a", "c": "b", "d": "c"}
	chain := reconstruct(prev, "a", "d")
	assert.Equal(t, []string{"a", "b", "c", "d"}, chain)
}
