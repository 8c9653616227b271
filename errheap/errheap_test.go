package errheap_test

import (
	"testing"

	"github.com/katalvlaran/gnp/errheap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeap_MaxReturnsLargestErr(t *testing.T) {
	h := errheap.New()
	h.Add("a", 1.0)
	h.Add("b", 5.0)
	h.Add("c", 3.0)

	id, err, e := h.Max()
	require.NoError(t, e)
	assert.Equal(t, "b", id)
	assert.Equal(t, 5.0, err)
	assert.Equal(t, 3, h.Len())
}

func TestHeap_PopDrainsInDescendingOrder(t *testing.T) {
	h := errheap.New()
	h.Add("a", 1.0)
	h.Add("b", 5.0)
	h.Add("c", 3.0)

	var order []string
	for h.Len() > 0 {
		id, _, err := h.Pop()
		require.NoError(t, err)
		order = append(order, id)
	}
	assert.Equal(t, []string{"b", "c", "a"}, order)
}

func TestHeap_UpdateKeySupersedesStaleEntry(t *testing.T) {
	h := errheap.New()
	h.Add("a", 1.0)
	h.Add("b", 2.0)

	h.UpdateKey("a", 10.0) // a should now outrank b despite the stale entry still in the slice

	id, err, e := h.Max()
	require.NoError(t, e)
	assert.Equal(t, "a", id)
	assert.Equal(t, 10.0, err)
}

func TestHeap_RemoveDropsVertex(t *testing.T) {
	h := errheap.New()
	h.Add("a", 1.0)
	h.Add("b", 5.0)
	h.Remove("b")

	assert.Equal(t, 1, h.Len())
	id, _, e := h.Max()
	require.NoError(t, e)
	assert.Equal(t, "a", id)
}

func TestHeap_EmptyReturnsErrEmpty(t *testing.T) {
	h := errheap.New()
	_, _, err := h.Max()
	assert.ErrorIs(t, err, errheap.ErrEmpty)

	_, _, err = h.Pop()
	assert.ErrorIs(t, err, errheap.ErrEmpty)
}
