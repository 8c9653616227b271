package classes_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/gnp/classes"
	"github.com/katalvlaran/gnp/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetClass_EnforcesInvariant4(t *testing.T) {
	g := core.NewGraph()
	v := g.AddVertex([]float64{0, 0})
	m := classes.NewManager()

	require.NoError(t, m.SetClass(v, core.Free))
	assert.True(t, v.Fixed)
	assert.Equal(t, 0, v.Depth)
	assert.Contains(t, m.Free(), v.ID)

	require.NoError(t, m.SetClass(v, core.None))
	assert.False(t, v.Fixed)
	assert.NotContains(t, m.Free(), v.ID)
}

func TestSetClass_MovesBetweenFreeAndObst(t *testing.T) {
	g := core.NewGraph()
	v := g.AddVertex([]float64{0, 0})
	m := classes.NewManager()

	require.NoError(t, m.SetClass(v, core.Free))
	require.NoError(t, m.SetClass(v, core.Obst))

	assert.NotContains(t, m.Free(), v.ID)
	assert.Contains(t, m.Obst(), v.ID)
	assert.Equal(t, 1, m.DepthHistogram()[0])
}

func TestRemoveFromAux_IsO1SwapWithLast(t *testing.T) {
	g := core.NewGraph()
	m := classes.NewManager()
	var ids []string
	for i := 0; i < 5; i++ {
		v := g.AddVertex([]float64{float64(i)})
		require.NoError(t, m.SetClass(v, core.Free))
		ids = append(ids, v.ID)
	}

	mid, err := g.GetVertex(ids[2])
	require.NoError(t, err)
	require.NoError(t, m.SetClass(mid, core.None))

	assert.Len(t, m.Free(), 4)
	assert.Equal(t, []string{ids[0], ids[1], ids[4], ids[3]}, m.Free(), "last element fills the removed slot")
	assert.NotContains(t, m.Free(), ids[2])
	for _, id := range []string{ids[0], ids[1], ids[3], ids[4]} {
		assert.Contains(t, m.Free(), id)
	}
}

func TestTournament_NilRngIsDeterministic(t *testing.T) {
	g := core.NewGraph()
	m := classes.NewManager()
	var ids []string
	for i := 0; i < 5; i++ {
		v := g.AddVertex([]float64{float64(i)})
		require.NoError(t, m.SetClass(v, core.Free))
		ids = append(ids, v.ID)
	}

	got := m.Tournament(core.Free, 3, nil)
	assert.Equal(t, ids[:3], got)
}

func TestTournament_SeededRngSamplesWithoutReplacement(t *testing.T) {
	g := core.NewGraph()
	m := classes.NewManager()
	for i := 0; i < 8; i++ {
		v := g.AddVertex([]float64{float64(i)})
		require.NoError(t, m.SetClass(v, core.Obst))
	}

	rng := rand.New(rand.NewSource(7))
	got := m.Tournament(core.Obst, 4, rng)
	assert.Len(t, got, 4)

	seen := make(map[string]bool)
	for _, id := range got {
		assert.False(t, seen[id], "tournament returned a duplicate ID")
		seen[id] = true
		assert.Contains(t, m.Obst(), id)
	}
}

func TestTournament_KLargerThanPoolClamps(t *testing.T) {
	g := core.NewGraph()
	m := classes.NewManager()
	v := g.AddVertex([]float64{0})
	require.NoError(t, m.SetClass(v, core.Free))

	assert.Len(t, m.Tournament(core.Free, 10, nil), 1)
}

func TestIsTracked(t *testing.T) {
	g := core.NewGraph()
	v := g.AddVertex([]float64{0})
	m := classes.NewManager()

	assert.False(t, m.IsTracked(v.ID))
	require.NoError(t, m.SetClass(v, core.Obst))
	assert.True(t, m.IsTracked(v.ID))
}
