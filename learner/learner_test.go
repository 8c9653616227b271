package learner_test

import (
	"testing"

	"github.com/katalvlaran/gnp/classes"
	"github.com/katalvlaran/gnp/core"
	"github.com/katalvlaran/gnp/errheap"
	"github.com/katalvlaran/gnp/learner"
	"github.com/katalvlaran/gnp/nnindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedGraph builds a small two-vertex graph and wires it into a fresh
// NN-index, returning everything a Step needs.
func seedGraph(t *testing.T) (*core.Graph, nnindex.Index, *classes.Manager, *errheap.Heap) {
	t.Helper()
	g := core.NewGraph(core.WithMaxDegree(5))
	nn := nnindex.NewLinear()
	cm := classes.NewManager()
	eh := errheap.New()

	a := g.AddVertex([]float64{0, 0})
	b := g.AddVertex([]float64{1, 1})
	a.NNHandle = nn.Add(a)
	b.NNHandle = nn.Add(b)
	eh.Add(a.ID, 0)
	eh.Add(b.ID, 0)

	return g, nn, cm, eh
}

func assertInvariants(t *testing.T, g *core.Graph, rMax int) {
	t.Helper()
	seenPairs := make(map[[2]string]bool)
	for _, e := range g.Edges() {
		assert.NotEqual(t, e.U, e.V, "no self-loops")
		key := [2]string{e.U, e.V}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		assert.False(t, seenPairs[key], "no parallel edges")
		seenPairs[key] = true
	}
	for _, id := range g.Vertices() {
		deg, err := g.Degree(id)
		require.NoError(t, err)
		if rMax > 0 {
			assert.LessOrEqual(t, deg, rMax)
		}
		v, err := g.GetVertex(id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v.Err, 0.0, "err never negative")
		if v.Class == core.Free || v.Class == core.Obst {
			assert.True(t, v.Fixed)
			assert.Equal(t, 0, v.Depth)
		}
	}
}

func TestStep_CreatesEdgeBetweenTwoWinners(t *testing.T) {
	g, nn, cm, eh := seedGraph(t)
	l := learner.New(g, nn, cm, eh, learner.WithEpsW(0.1), learner.WithEpsN(0.01), learner.WithAgeMax(10))

	require.NoError(t, l.Step([]float64{0.4, 0.4}, nil))

	ids := g.Vertices()
	require.Len(t, ids, 2)
	assert.True(t, g.HasEdge(ids[0], ids[1]))
	assertInvariants(t, g, 5)
}

func TestStep_MovesWinnerTowardSignal(t *testing.T) {
	g, nn, cm, eh := seedGraph(t)
	l := learner.New(g, nn, cm, eh, learner.WithEpsW(0.5), learner.WithEpsN(0.0))

	v, err := g.GetVertex(g.Vertices()[0])
	require.NoError(t, err)
	before := append([]float64(nil), v.W...)

	require.NoError(t, l.Step([]float64{0.2, 0.2}, nil))

	assert.NotEqual(t, before, v.W)
}

func TestStep_ObstacleRepulsionSkipsStep(t *testing.T) {
	g, nn, cm, eh := seedGraph(t)
	obst, err := g.GetVertex(g.Vertices()[0])
	require.NoError(t, err)
	require.NoError(t, cm.SetClass(obst, core.Obst))

	l := learner.New(g, nn, cm, eh, learner.WithH(0.5))

	before := append([]float64(nil), obst.W...)
	require.NoError(t, l.Step(obst.W, nil))
	assert.Equal(t, before, obst.W, "step should be skipped entirely near an OBST vertex")
}

func TestStep_RepeatedSignalsHoldInvariants(t *testing.T) {
	g, nn, cm, eh := seedGraph(t)
	l := learner.New(g, nn, cm, eh, learner.WithAgeMax(3), learner.WithLambda(20), learner.WithBeta(0.9))

	signals := [][]float64{
		{0.1, 0.1}, {0.9, 0.9}, {0.5, 0.1}, {0.1, 0.9}, {0.3, 0.3}, {0.7, 0.7},
	}
	for i := 0; i < 50; i++ {
		s := signals[i%len(signals)]
		require.NoError(t, l.Step(s, nil))
		assertInvariants(t, g, 5)
	}
}
