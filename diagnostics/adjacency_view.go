package diagnostics

import "github.com/hborlik/scwfc/matrix"

// AdjacencyView exposes snap as a dense adjacency matrix (ids in row/column
// order, dense[i][j] the edge weight or 0) for degree-distribution
// reporting. Reuses matrix.NewAdjacencyMatrix, the same constructor
// StreamingOrder uses for its metric-closed distance matrix.
func AdjacencyView(snap *Snapshot) (ids []int64, dense [][]float64, err error) {
	am, err := matrix.NewAdjacencyMatrix(snap.IDs, toMatrixEdges(snap.Edges), matrix.NewMatrixOptions(
		matrix.WithDirected(false),
		matrix.WithWeighted(true),
		matrix.WithAllowLoops(false),
		matrix.WithAllowMulti(false),
	))
	if err != nil {
		return nil, nil, err
	}

	n := am.Mat.Rows()
	ids = am.IDs()
	dense = make([][]float64, n)
	for i := 0; i < n; i++ {
		dense[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			w, err := am.Mat.At(i, j)
			if err != nil {
				return nil, nil, err
			}
			dense[i][j] = w
		}
	}
	return ids, dense, nil
}
