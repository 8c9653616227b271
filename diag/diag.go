// Package diag provides dense debugging snapshots of a growing graph,
// adapted from matrix.NewAdjacencyMatrix/ToMatrix: a vertex-ID→index map
// plus an N×N weight matrix, trimmed to exactly the read-only snapshot
// SPEC_FULL.md calls for (no transpose/multiply/eigen operations — nothing
// in GNP-core consumes a matrix algebra beyond the snapshot itself).
package diag

import (
	"github.com/katalvlaran/gnp/core"
	"gonum.org/v1/gonum/floats"
)

// AdjacencyMatrix is a dense N×N snapshot of g: Index maps vertex ID to
// row/column, and Data[i][j] holds the Euclidean distance between i and j
// if an edge exists between them, or 0 otherwise.
type AdjacencyMatrix struct {
	Index map[string]int
	Data  [][]float64
}

// NewAdjacencyMatrix builds a dense snapshot of g. Time O(V+E), memory
// O(V²) — intended for debugging/visualization on graphs small enough
// that a dense matrix is convenient, not for the engine's own hot path.
func NewAdjacencyMatrix(g *core.Graph) (AdjacencyMatrix, error) {
	if g == nil {
		return AdjacencyMatrix{}, core.ErrVertexNotFound
	}
	verts := g.Vertices()
	idx := make(map[string]int, len(verts))
	for i, id := range verts {
		idx[id] = i
	}

	data := make([][]float64, len(verts))
	for i := range data {
		data[i] = make([]float64, len(verts))
	}

	for _, e := range g.Edges() {
		vi, okI := idx[e.U]
		vj, okJ := idx[e.V]
		if !okI || !okJ {
			continue
		}
		vu, errU := g.GetVertex(e.U)
		vv, errV := g.GetVertex(e.V)
		if errU != nil || errV != nil {
			continue
		}
		d := floats.Distance(vu.W, vv.W, 2)
		data[vi][vj] = d
		data[vj][vi] = d
	}

	return AdjacencyMatrix{Index: idx, Data: data}, nil
}

// VertexCount returns the matrix dimension.
func (m AdjacencyMatrix) VertexCount() int { return len(m.Index) }

// EdgeCount returns the number of non-zero entries above the diagonal
// (the matrix is symmetric since the graph is undirected).
func (m AdjacencyMatrix) EdgeCount() int {
	count := 0
	for i := range m.Data {
		for j := i + 1; j < len(m.Data[i]); j++ {
			if m.Data[i][j] != 0 {
				count++
			}
		}
	}
	return count
}
