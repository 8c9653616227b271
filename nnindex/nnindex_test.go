package nnindex_test

import (
	"testing"

	"github.com/katalvlaran/gnp/nnindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePoint struct {
	id  string
	pos []float64
}

func (f *fakePoint) Ident() string       { return f.id }
func (f *fakePoint) Position() []float64 { return f.pos }

func buildIndex(t *testing.T, idx nnindex.Index, pts []*fakePoint) map[string]interface{} {
	t.Helper()
	handles := make(map[string]interface{}, len(pts))
	for _, p := range pts {
		handles[p.id] = idx.Add(p)
	}
	return handles
}

func samplePoints() []*fakePoint {
	return []*fakePoint{
		{id: "a", pos: []float64{0, 0}},
		{id: "b", pos: []float64{10, 0}},
		{id: "c", pos: []float64{0, 10}},
		{id: "d", pos: []float64{1, 1}},
	}
}

func testNearestBasics(t *testing.T, newIdx func() nnindex.Index) {
	idx := newIdx()
	_, err := idx.Nearest([]float64{0, 0}, 1)
	assert.ErrorIs(t, err, nnindex.ErrEmptyIndex)

	pts := samplePoints()
	buildIndex(t, idx, pts)
	assert.Equal(t, 4, idx.Len())

	got, err := idx.Nearest([]float64{0.1, 0.1}, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Ident())

	got2, err := idx.Nearest([]float64{0.1, 0.1}, 2)
	require.NoError(t, err)
	require.Len(t, got2, 2)
	assert.Equal(t, "a", got2[0].Ident())
	assert.Equal(t, "d", got2[1].Ident())
}

func TestLinear_NearestBasics(t *testing.T) {
	testNearestBasics(t, func() nnindex.Index { return nnindex.NewLinear() })
}

func TestGrid_NearestBasics(t *testing.T) {
	testNearestBasics(t, func() nnindex.Index { return nnindex.NewGrid(2.0) })
}

func TestVPTree_NearestBasics(t *testing.T) {
	testNearestBasics(t, func() nnindex.Index { return nnindex.NewVPTree(8) })
}

func TestLinear_RemoveAndUpdate(t *testing.T) {
	idx := nnindex.NewLinear()
	pts := samplePoints()
	handles := buildIndex(t, idx, pts)

	require.NoError(t, idx.Remove(handles["b"]))
	assert.Equal(t, 3, idx.Len())

	pts[0].pos = []float64{5, 5}
	require.NoError(t, idx.Update(handles["a"]))

	got, err := idx.Nearest([]float64{5, 5}, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", got[0].Ident())

	assert.ErrorIs(t, idx.Remove(handles["b"]), nnindex.ErrUnknownHandle)
}

func TestGrid_UpdateRebucketsAcrossCells(t *testing.T) {
	idx := nnindex.NewGrid(1.0)
	p := &fakePoint{id: "p", pos: []float64{0, 0}}
	h := idx.Add(p)

	p.pos = []float64{5, 5}
	require.NoError(t, idx.Update(h))

	got, err := idx.Nearest([]float64{5, 5}, 1)
	require.NoError(t, err)
	assert.Equal(t, "p", got[0].Ident())
}

func TestNearest_RejectsBadK(t *testing.T) {
	idx := nnindex.NewLinear()
	idx.Add(&fakePoint{id: "a", pos: []float64{0}})
	_, err := idx.Nearest([]float64{0}, 3)
	assert.ErrorIs(t, err, nnindex.ErrBadK)
}
