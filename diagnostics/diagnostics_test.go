package diagnostics_test

import (
	"testing"

	"github.com/hborlik/scwfc/diagnostics"
	"github.com/stretchr/testify/require"
)

// triangle builds a 3-vertex weighted undirected Snapshot: 1-2 (w=3),
// 2-3 (w=4), 1-3 (w=10).
func triangle(t *testing.T) *diagnostics.Snapshot {
	t.Helper()
	return &diagnostics.Snapshot{
		IDs: []int64{1, 2, 3},
		Edges: []diagnostics.Edge{
			{From: 1, To: 2, Weight: 3},
			{From: 2, To: 3, Weight: 4},
			{From: 1, To: 3, Weight: 10},
		},
	}
}

func TestConnectivityReportPicksCheapEdges(t *testing.T) {
	mst, total, err := diagnostics.ConnectivityReport(triangle(t))
	require.NoError(t, err)
	require.Len(t, mst, 2)
	require.Equal(t, 7.0, total) // 3 + 4, skips the 10-weight edge
}

func TestShortestPathPrefersCheaperRoute(t *testing.T) {
	path, cost, err := diagnostics.ShortestPath(triangle(t), 1, 3)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 3}, path) // 3+4=7 beats the direct 10-weight edge
	require.Equal(t, 7.0, cost)
}

func TestShortestPathUnreachable(t *testing.T) {
	snap := &diagnostics.Snapshot{
		IDs:   []int64{1, 2, 9},
		Edges: []diagnostics.Edge{{From: 1, To: 2, Weight: 1}},
	}

	_, _, err := diagnostics.ShortestPath(snap, 1, 9)
	require.Error(t, err)
}

func TestAdjacencyViewIsSymmetric(t *testing.T) {
	ids, dense, err := diagnostics.AdjacencyView(triangle(t))
	require.NoError(t, err)
	require.Len(t, ids, 3)
	for i := range dense {
		for j := range dense[i] {
			require.Equal(t, dense[i][j], dense[j][i])
		}
	}
}

func TestStreamingOrderVisitsEveryVertex(t *testing.T) {
	order, _, err := diagnostics.StreamingOrder(triangle(t), 1)
	require.NoError(t, err)
	seen := map[int64]bool{}
	for _, id := range order[:len(order)-1] { // last entry closes the cycle back to start
		seen[id] = true
	}
	require.Len(t, seen, 3)
}

func TestMaxFlowDemoSimpleDiamond(t *testing.T) {
	snap := &diagnostics.Snapshot{
		IDs: []int64{1, 2, 3, 4},
		Edges: []diagnostics.Edge{
			{From: 1, To: 2, Weight: 1},
			{From: 1, To: 3, Weight: 1},
			{From: 2, To: 4, Weight: 1},
			{From: 3, To: 4, Weight: 1},
		},
	}

	cap := map[[2]int64]float64{
		{1, 2}: 2, {2, 1}: 2,
		{1, 3}: 2, {3, 1}: 2,
		{2, 4}: 2, {4, 2}: 2,
		{3, 4}: 2, {4, 3}: 2,
	}
	flow, err := diagnostics.MaxFlowDemo(snap, 1, 4, func(a, b int64) float64 { return cap[[2]int64{a, b}] })
	require.NoError(t, err)
	require.Equal(t, 4.0, flow)
}

func TestTraceSimilarityIdenticalTracesAreZero(t *testing.T) {
	trace := []float64{3, 2, 1, 0}
	dist := diagnostics.TraceSimilarity(trace, trace)
	require.Equal(t, 0.0, dist)
}

func TestTraceSimilarityDivergentTracesAreNonzero(t *testing.T) {
	dist := diagnostics.TraceSimilarity([]float64{3, 2, 1, 0}, []float64{9, 9, 9, 9})
	require.Greater(t, dist, 0.0)
}
