package matrix

import (
	"fmt"
	"math"
)

// Edge is a minimal weighted connection between two int64-keyed vertices —
// the common shape every caller building an adjacency view already has on
// hand, independent of whatever graph representation produced it.
type Edge struct {
	From, To int64
	Weight   float64
}

// AdjacencyMatrix wraps a Dense Matrix as a graph adjacency representation
// over a fixed int64 vertex ordering. VertexIndex maps id -> row/col in Mat.
type AdjacencyMatrix struct {
	Mat           Matrix
	VertexIndex   map[int64]int
	vertexByIndex []int64
}

// NewAdjacencyMatrix builds a |ids| x |ids| adjacency matrix from ids and
// edges. opts.MetricClosure runs Floyd-Warshall in place afterward, turning
// a sparse adjacency view into an all-pairs shortest-distance matrix.
func NewAdjacencyMatrix(ids []int64, edges []Edge, opts MatrixOptions) (*AdjacencyMatrix, error) {
	if len(ids) == 0 {
		return nil, ErrInvalidDimensions
	}

	idx := make(map[int64]int, len(ids))
	for i, id := range ids {
		idx[id] = i
	}

	mat, err := NewDense(len(ids), len(ids))
	if err != nil {
		return nil, err
	}

	seen := make(map[[2]int]bool)
	for _, e := range edges {
		u, ok := idx[e.From]
		if !ok {
			return nil, fmt.Errorf("matrix: unknown vertex %d: %w", e.From, ErrUnknownVertex)
		}
		v, ok := idx[e.To]
		if !ok {
			return nil, fmt.Errorf("matrix: unknown vertex %d: %w", e.To, ErrUnknownVertex)
		}
		if u == v && !opts.AllowLoops {
			continue
		}
		if !opts.AllowMulti {
			key := [2]int{u, v}
			if !opts.Directed && u > v {
				key = [2]int{v, u}
			}
			if seen[key] {
				continue
			}
			seen[key] = true
		}

		w := 1.0
		if opts.Weighted {
			w = e.Weight
		}
		_ = mat.Set(u, v, w)
		if !opts.Directed {
			_ = mat.Set(v, u, w)
		}
	}

	if opts.MetricClosure {
		if err := applyMetricClosure(mat); err != nil {
			return nil, err
		}
	}

	rev := make([]int64, len(ids))
	for id, i := range idx {
		rev[i] = id
	}
	return &AdjacencyMatrix{Mat: mat, VertexIndex: idx, vertexByIndex: rev}, nil
}

// applyMetricClosure fills zero off-diagonal entries with +Inf and runs
// Floyd-Warshall all-pairs shortest paths in place.
func applyMetricClosure(mat *Dense) error {
	n := mat.Rows()
	if n != mat.Cols() {
		return ErrDimensionMismatch
	}
	for u := 0; u < n; u++ {
		for v := 0; v < n; v++ {
			if u == v {
				continue
			}
			val, _ := mat.At(u, v)
			if val == 0 {
				_ = mat.Set(u, v, math.Inf(1))
			}
		}
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			dik, _ := mat.At(i, k)
			if math.IsInf(dik, 1) {
				continue
			}
			for j := 0; j < n; j++ {
				dkj, _ := mat.At(k, j)
				if math.IsInf(dkj, 1) {
					continue
				}
				dij, _ := mat.At(i, j)
				if dik+dkj < dij {
					_ = mat.Set(i, j, dik+dkj)
				}
			}
		}
	}
	return nil
}

// IDs returns the vertex ids in row/column order.
func (am *AdjacencyMatrix) IDs() []int64 {
	out := make([]int64, len(am.vertexByIndex))
	copy(out, am.vertexByIndex)
	return out
}

// VertexCount returns the number of vertices backing this matrix.
func (am *AdjacencyMatrix) VertexCount() int { return am.Mat.Rows() }

// Neighbors returns all vertex ids reachable from u with a nonzero, finite weight.
func (am *AdjacencyMatrix) Neighbors(u int64) ([]int64, error) {
	srcIdx, ok := am.VertexIndex[u]
	if !ok {
		return nil, fmt.Errorf("Neighbors: unknown vertex %d: %w", u, ErrUnknownVertex)
	}
	var out []int64
	for col := 0; col < am.Mat.Cols(); col++ {
		w, err := am.Mat.At(srcIdx, col)
		if err != nil {
			return nil, err
		}
		if w == 0 || math.IsInf(w, 1) {
			continue
		}
		out = append(out, am.vertexByIndex[col])
	}
	return out, nil
}
