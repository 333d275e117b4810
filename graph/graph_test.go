package graph_test

import (
	"testing"

	"github.com/hborlik/scwfc/graph"
	"github.com/stretchr/testify/require"
)

type intNode int64

func (n intNode) NodeID() int64 { return int64(n) }

func TestUndirectedSymmetric(t *testing.T) {
	g := graph.New[intNode]()
	require.NoError(t, g.AddEdge(1, 2, 1.0))

	require.Equal(t, g.Adjacent(1, 2), g.Adjacent(2, 1))
	require.Contains(t, g.AdjacentNodes(1), int64(2))
	require.Contains(t, g.AdjacentNodes(2), int64(1))
}

func TestRemoveNodeClearsReferences(t *testing.T) {
	g := graph.New[intNode]()
	require.NoError(t, g.AddEdge(1, 2, 1.0))
	require.NoError(t, g.AddEdge(2, 3, 1.0))

	g.RemoveNode(2)

	require.NotContains(t, g.AdjacentNodes(1), int64(2))
	require.NotContains(t, g.AdjacentNodes(3), int64(2))
	require.False(t, g.HasNode(2))
}

func TestInsertionOrderPreserved(t *testing.T) {
	g := graph.New[intNode]()
	require.NoError(t, g.AddEdge(1, 5, 1.0))
	require.NoError(t, g.AddEdge(1, 3, 1.0))
	require.NoError(t, g.AddEdge(1, 9, 1.0))

	require.Equal(t, []int64{5, 3, 9}, g.AdjacentNodes(1))
}

func TestSelfLoopRejectedUndirected(t *testing.T) {
	g := graph.New[intNode]()
	require.ErrorIs(t, g.AddEdge(1, 1, 1.0), graph.ErrSelfLoop)
}

func TestAddEdgeFirstWeightWins(t *testing.T) {
	g := graph.New[intNode]()
	require.NoError(t, g.AddEdge(1, 2, 5.0))
	require.NoError(t, g.AddEdge(1, 2, 9.0))
	require.Equal(t, 5.0, g.Adjacent(1, 2))
}

func TestBFSFindsPath(t *testing.T) {
	g := graph.New[intNode]()
	require.NoError(t, g.AddEdge(1, 2, 1.0))
	require.NoError(t, g.AddEdge(2, 3, 1.0))

	parent, ok := graph.BFS[intNode](g, 1, 3)
	require.True(t, ok)
	require.Equal(t, int64(2), parent[3])
	require.Equal(t, int64(1), parent[2])
}

func TestBFSUnreachable(t *testing.T) {
	g := graph.New[intNode]()
	g.AddNode(1)
	g.AddNode(2)

	_, ok := graph.BFS[intNode](g, 1, 2)
	require.False(t, ok)
}

func TestDenseGraphAdjacency(t *testing.T) {
	d := graph.NewDense[intNode]([]int64{1, 2, 3}, false)
	require.NoError(t, d.SetEdge(1, 2, 2.0))
	require.Equal(t, 2.0, d.Adjacent(1, 2))
	require.Equal(t, 2.0, d.Adjacent(2, 1))
	require.Contains(t, d.AdjacentNodes(1), int64(2))
}
