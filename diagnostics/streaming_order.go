package diagnostics

import (
	"math"

	"github.com/hborlik/scwfc/matrix"
)

// StreamingOrder computes an approximate visiting order over every
// finalized placement in snap, starting at start: a nearest-neighbor
// construction over the metric-closed distance matrix, improved by a
// first-improvement 2-opt pass. Meant for asset-streaming or LOD-bake
// ordering in a large generated scene, not for anything on the solver's own
// call path. The distance matrix is metric-closed (Floyd-Warshall) before
// solving so a sparsely-connected finalized graph (most placements only
// edge their spatial neighbors) still yields a complete tour.
func StreamingOrder(snap *Snapshot, start int64) ([]int64, float64, error) {
	am, err := matrix.NewAdjacencyMatrix(snap.IDs, toMatrixEdges(snap.Edges), matrix.NewMatrixOptions(
		matrix.WithDirected(false),
		matrix.WithWeighted(true),
		matrix.WithAllowLoops(false),
		matrix.WithAllowMulti(false),
		matrix.WithMetricClosure(true),
	))
	if err != nil {
		return nil, 0, err
	}

	startIdx, ok := am.VertexIndex[start]
	if !ok {
		return nil, 0, matrix.ErrUnknownVertex
	}

	n := am.Mat.Rows()
	order := nearestNeighborTour(am.Mat, n, startIdx)
	order = twoOpt(order, am.Mat)

	ids := am.IDs()
	out := make([]int64, len(order))
	var total float64
	for i, idx := range order {
		out[i] = ids[idx]
		if i > 0 {
			d, _ := am.Mat.At(order[i-1], idx)
			total += d
		}
	}
	return out, total, nil
}

// nearestNeighborTour greedily visits the closest unvisited vertex at each
// step starting from startIdx, then returns to start, closing the loop.
func nearestNeighborTour(mat matrix.Matrix, n, startIdx int) []int {
	visited := make([]bool, n)
	order := make([]int, 0, n+1)
	order = append(order, startIdx)
	visited[startIdx] = true

	for len(order) < n {
		last := order[len(order)-1]
		best, bestDist := -1, math.Inf(1)
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			d, _ := mat.At(last, j)
			if d < bestDist {
				bestDist, best = d, j
			}
		}
		visited[best] = true
		order = append(order, best)
	}
	return append(order, startIdx)
}

// twoOpt runs first-improvement 2-opt passes over a closed tour (order[0]
// == order[len(order)-1]) until no edge-swap shortens it. The start/end
// anchor is fixed; only the interior is reordered.
func twoOpt(order []int, mat matrix.Matrix) []int {
	improved := true
	for improved {
		improved = false
		for i := 1; i < len(order)-2; i++ {
			for j := i + 1; j < len(order)-1; j++ {
				a, b := order[i-1], order[i]
				c, d := order[j], order[j+1]
				dab, _ := mat.At(a, b)
				dcd, _ := mat.At(c, d)
				dac, _ := mat.At(a, c)
				dbd, _ := mat.At(b, d)
				if dac+dbd < dab+dcd {
					reverseRange(order[i : j+1])
					improved = true
				}
			}
		}
	}
	return order
}

func reverseRange(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
